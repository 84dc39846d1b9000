// internal/app/features/training/views/views.go
package training

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "training",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
