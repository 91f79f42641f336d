// Package orchestrator wires the registered diagram plugins together into the single
// entrypoint the rest of the system uses: detect a diagram kind, parse it, lay it out, and
// rasterize it. It is the "plugin polymorphism" dispatch fabric the design notes describe: a
// closed, explicitly registered set of [plugin.Plugin] values rather than an open hierarchy.
package orchestrator

import (
	"fmt"

	"github.com/meridian-diagrams/meridian/diagram"
	"github.com/meridian-diagrams/meridian/plugin"
)

// Orchestrator runs the full text-to-grid pipeline: detector verdict picks a plugin, whose
// parser, layout engine, and renderer are then run in sequence against a fresh database.
type Orchestrator struct {
	registry *plugin.Registry
}

// New creates an Orchestrator whose registry holds exactly the given plugins, in the order
// passed; [Default] supplies the built-in set. Registration order doubles as the detector
// tie-break order (spec.md §4.3).
func New(plugins ...plugin.Plugin) *Orchestrator {
	r := plugin.NewRegistry()
	for _, p := range plugins {
		r.Register(p)
	}
	return &Orchestrator{registry: r}
}

// Registry exposes the underlying plugin registry, mainly so callers (the CLI's "tree"
// inspection command, diagnostics) can enumerate what is registered without re-detecting.
func (o *Orchestrator) Registry() *plugin.Registry {
	return o.registry
}

// Result is the full output of one pipeline run: the parsed database, its layout, and the
// rendered string, plus which plugin was selected. Kept together so callers that want to
// inspect intermediate stages (the CLI's "tree" command) don't need to re-run the pipeline.
type Result struct {
	Plugin string
	DB     *diagram.Database
	Layout *plugin.LayoutResult
	Output string
}

// Run selects a plugin by detector confidence, then parses, lays out, and renders source
// against it. It returns a [diagram.UnknownDiagramTypeError] if no registered plugin scores
// above 0.
func (o *Orchestrator) Run(source string) (*Result, error) {
	p, ok := o.registry.Select(source)
	if !ok {
		return nil, &diagram.UnknownDiagramTypeError{}
	}

	db := p.NewDatabase()
	if err := p.Parser.Parse(source, db); err != nil {
		return nil, err
	}

	layout, err := p.Layout.Layout(db)
	if err != nil {
		return nil, err
	}

	output, err := p.Renderer.Render(db, layout)
	if err != nil {
		return nil, err
	}

	return &Result{Plugin: p.Name, DB: db, Layout: layout, Output: output}, nil
}

// Render is the package-level convenience matching spec.md §6's top-level
// `render(source) -> Result<string>` surface: it builds the default registry and runs the
// pipeline once. Callers that render repeatedly should build an [Orchestrator] themselves to
// avoid rebuilding the registry every call.
func Render(source string) (string, error) {
	res, err := Default().Run(source)
	if err != nil {
		return "", err
	}
	return res.Output, nil
}

// Default returns an Orchestrator with every built-in plugin registered. It is the registry
// every subcommand in cmd/meridian shares.
func Default() *Orchestrator {
	return New(builtinPlugins()...)
}

// Detect runs every registered plugin's detector against source and returns the selected
// plugin's name, for diagnostics (the CLI's "detect" subcommand) without running the rest of
// the pipeline.
func (o *Orchestrator) Detect(source string) (string, float32, error) {
	var best plugin.Plugin
	var bestScore float32 = -1
	found := false
	for _, p := range o.registry.Plugins() {
		score := p.Detector.Confidence(source)
		if score > bestScore {
			bestScore = score
			best = p
			found = score > 0
		}
	}
	if !found {
		return "", 0, &diagram.UnknownDiagramTypeError{}
	}
	return best.Name, bestScore, nil
}

// mustComplete panics if p is missing a required capability; used by builtinPlugins to catch a
// wiring mistake early rather than surfacing a nil-pointer panic deep in a pipeline run.
func mustComplete(p plugin.Plugin) plugin.Plugin {
	if p.Name == "" || p.NewDatabase == nil || p.Detector == nil || p.Parser == nil || p.Layout == nil || p.Renderer == nil {
		panic(fmt.Sprintf("orchestrator: plugin %q is missing a required capability", p.Name))
	}
	return p
}
