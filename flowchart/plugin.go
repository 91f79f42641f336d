package flowchart

import (
	"github.com/meridian-diagrams/meridian/diagram"
	"github.com/meridian-diagrams/meridian/plugin"
)

// NewPlugin bundles the flowchart detector, parser, layout engine, and renderer into a
// [plugin.Plugin] ready for registration with a [plugin.Registry].
func NewPlugin() plugin.Plugin {
	return plugin.Plugin{
		Name:        "flowchart",
		NewDatabase: func() *diagram.Database { return diagram.NewDatabase(diagram.TopDown) },
		Detector:    Detector{},
		Parser:      &Parser{},
		Layout:      Layout{},
		Renderer:    Renderer{},
	}
}
