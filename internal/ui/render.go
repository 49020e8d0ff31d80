// Package ui renders the flight board page.
package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"regional-airports/flightboard/internal/models"
	"regional-airports/flightboard/internal/models/dtos"
	"regional-airports/flightboard/internal/registry"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer holds the parsed board templates. Safe for concurrent use.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates once at startup
func NewRenderer() (*Renderer, error) {
	t, err := template.New("index.html").Funcs(funcMap()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{tmpl: t}, nil
}

// RenderBoard executes the page template for one board
func (r *Renderer) RenderBoard(w io.Writer, board *dtos.Board) error {
	return r.tmpl.ExecuteTemplate(w, "index.html", board)
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		// logo maps a flight number to its carrier's logo file, "" when unknown
		"logo": func(flightNumber string) string {
			prefix, _ := registry.CarrierPrefix(flightNumber)
			logo, _ := registry.AirlineLogo(prefix)
			return logo
		},
		"stateClass": func(s models.LifecycleState) string {
			switch s {
			case models.StateInFlight:
				return "state-in-flight"
			case models.StateCompleted:
				return "state-completed"
			case models.StateNotDeparted:
				return "state-not-departed"
			default:
				return "state-unknown"
			}
		},
	}
}
