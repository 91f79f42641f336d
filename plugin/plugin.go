// Package plugin defines the capability bundle every diagram kind implements and the
// registry that selects the right one for a source document. It models the "plugin
// polymorphism" re-architecture guidance from the original design notes as a closed set of
// registered bundles rather than an open class hierarchy: a [Plugin] is a plain value, and
// [Registry] holds a fixed, explicitly registered list.
package plugin

import (
	"github.com/meridian-diagrams/meridian/diagram"
)

// LayoutResult is the output of a Layout: every node's grid rectangle and every edge's routed
// polyline.
type LayoutResult struct {
	Nodes map[string]NodeBox
	Edges []EdgeRoute
	Width int
	Height int
}

// NodeBox is a node's position and size in character cells.
type NodeBox struct {
	X, Y, Width, Height int
}

// EdgeRoute is a single edge's orthogonal route, plus any junction and label anchor.
type EdgeRoute struct {
	EdgeIndex  int // index into Database.Edges()
	Waypoints  []diagram.Point
	Junction   *diagram.Point
	LabelAt    *diagram.Point
}

// Detector classifies source text into a diagram kind.
type Detector interface {
	// Confidence returns a score in [0, 1] reflecting how well source matches this plugin's
	// diagram kind. An empty or whitespace-only source must score 0.
	Confidence(source string) float32
	// Patterns returns the literal tokens this detector looks for, for diagnostics.
	Patterns() []string
}

// Parser fills a [diagram.Database] from source text.
type Parser interface {
	Parse(source string, db *diagram.Database) error
}

// Layout computes node positions and edge routes from a populated database.
type Layout interface {
	Layout(db *diagram.Database) (*LayoutResult, error)
}

// Renderer rasterizes a database and its layout into a string.
type Renderer interface {
	Render(db *diagram.Database, layout *LayoutResult) (string, error)
}

// Plugin bundles the four capabilities needed to go from source text to rendered output for one
// diagram kind, plus a factory for that kind's empty database.
type Plugin struct {
	Name        string
	NewDatabase func() *diagram.Database
	Detector    Detector
	Parser      Parser
	Layout      Layout
	Renderer    Renderer
}

// Registry holds the closed set of registered plugins, in registration order. Registration
// order is also the detector tie-break order (§4.3): the first-registered plugin wins a
// confidence tie.
type Registry struct {
	plugins []Plugin
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a plugin. Plugins are tried for detection in registration order.
func (r *Registry) Register(p Plugin) {
	r.plugins = append(r.plugins, p)
}

// Plugins returns the registered plugins in registration order.
func (r *Registry) Plugins() []Plugin {
	return r.plugins
}

// Select returns the plugin with the highest detector confidence for source. Ties are broken by
// registration order. It returns ok=false if every plugin scores 0 or the registry is empty.
func (r *Registry) Select(source string) (Plugin, bool) {
	var best Plugin
	var bestScore float32 = -1
	var found bool

	for _, p := range r.plugins {
		score := p.Detector.Confidence(source)
		if score > bestScore {
			bestScore = score
			best = p
			found = score > 0
		}
	}

	return best, found
}
