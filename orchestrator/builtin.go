package orchestrator

import (
	"github.com/meridian-diagrams/meridian/classdiagram"
	"github.com/meridian-diagrams/meridian/flowchart"
	"github.com/meridian-diagrams/meridian/gitgraph"
	"github.com/meridian-diagrams/meridian/plugin"
	"github.com/meridian-diagrams/meridian/sequencediagram"
	"github.com/meridian-diagrams/meridian/statediagram"
)

// builtinPlugins returns every shipped plugin in the registration order the detector's tie
// break rule depends on: flowchart first, since it is the deeply specified plugin and the most
// common diagram kind, then the shallow plugins in the order spec.md §1 lists them.
func builtinPlugins() []plugin.Plugin {
	return []plugin.Plugin{
		mustComplete(flowchart.NewPlugin()),
		mustComplete(classdiagram.NewPlugin()),
		mustComplete(sequencediagram.NewPlugin()),
		mustComplete(statediagram.NewPlugin()),
		mustComplete(gitgraph.NewPlugin()),
	}
}
