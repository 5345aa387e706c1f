// Package demo builds the sample diagrams shipped with the stipple CLI.
//
// Every diagram only uses style names shared by the built-in themes
// (border, node, edge, arc, pin, label, caption), so any of them can be
// rendered under any built-in theme and variation.
package demo

import (
	"sort"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stipple/pkg/errors"
	"github.com/matzehuels/stipple/pkg/scene"
	"github.com/matzehuels/stipple/pkg/theme"
)

// Diagram is a named sample scene.
type Diagram struct {
	Name        string
	Description string
	Build       func(th *theme.Theme, logger *log.Logger) (*scene.Scene, error)
}

var diagrams = map[string]Diagram{
	"frame": {
		Name:        "frame",
		Description: "a single bordered rectangle filling the canvas",
		Build:       Frame,
	},
	"arc": {
		Name:        "arc",
		Description: "two nodes joined by an arc of radius 300",
		Build:       ArcPair,
	},
	"automaton": {
		Name:        "automaton",
		Description: "a four-state automaton with every joint kind",
		Build:       Automaton,
	},
	"gallery": {
		Name:        "gallery",
		Description: "every crumb kind, drawn twice at two scales",
		Build:       Gallery,
	},
}

// Names lists the available diagrams in sorted order.
func Names() []string {
	names := make([]string, 0, len(diagrams))
	for name := range diagrams {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every diagram, sorted by name.
func All() []Diagram {
	out := make([]Diagram, 0, len(diagrams))
	for _, name := range Names() {
		out = append(out, diagrams[name])
	}
	return out
}

// Get returns the diagram called name.
func Get(name string) (Diagram, error) {
	d, ok := diagrams[name]
	if !ok {
		return Diagram{}, errors.New(errors.ErrCodeNotFound, "unknown diagram %q", name)
	}
	return d, nil
}

// style looks up a style by name, falling back to the theme default.
func style(th *theme.Theme, name string) theme.StyleID {
	id, _ := th.StyleID(name)
	return id
}
