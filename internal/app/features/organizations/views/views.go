// internal/app/features/organizations/views/views.go
package organizations

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "organizations",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
