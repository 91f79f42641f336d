package plugin

import (
	"testing"

	"github.com/meridian-diagrams/meridian/diagram"
	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"
)

type constDetector struct {
	score float32
}

func (d constDetector) Confidence(source string) float32 { return d.score }
func (d constDetector) Patterns() []string                { return nil }

func TestRegistrySelectPicksHighestConfidence(t *testing.T) {
	r := NewRegistry()
	r.Register(Plugin{Name: "low", Detector: constDetector{score: 0.2}})
	r.Register(Plugin{Name: "high", Detector: constDetector{score: 0.9}})

	got, ok := r.Select("anything")
	require.True(t, ok)
	assert.EqualValues(t, got.Name, "high")
}

func TestRegistrySelectTieBreaksByRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	r.Register(Plugin{Name: "first", Detector: constDetector{score: 0.5}})
	r.Register(Plugin{Name: "second", Detector: constDetector{score: 0.5}})

	got, ok := r.Select("anything")
	require.True(t, ok)
	assert.EqualValues(t, got.Name, "first")
}

func TestRegistrySelectNoneMatch(t *testing.T) {
	r := NewRegistry()
	r.Register(Plugin{Name: "only", Detector: constDetector{score: 0}})

	_, ok := r.Select("")
	assert.EqualValues(t, ok, false)
}

func TestLayoutResultShape(t *testing.T) {
	lr := &LayoutResult{
		Nodes: map[string]NodeBox{"A": {X: 0, Y: 0, Width: 5, Height: 3}},
		Edges: []EdgeRoute{{EdgeIndex: 0, Waypoints: []diagram.Point{{X: 0, Y: 0}}}},
	}
	require.True(t, len(lr.Edges) == 1)
	assert.EqualValues(t, lr.Nodes["A"].Width, 5)
}
