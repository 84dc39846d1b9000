// internal/app/features/readiness/views/views.go
package readiness

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "readiness",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
