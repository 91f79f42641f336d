package flowchart

import "strings"

// Detector scores source text on how strongly it looks like a flowchart: the header keyword
// ("graph" or "flowchart") must open the first non-blank, non-comment line.
type Detector struct{}

// Confidence implements [plugin.Detector]. Empty or whitespace-only source scores 0.
func (Detector) Confidence(source string) float32 {
	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "%%") {
			continue
		}
		fields := strings.Fields(trimmed)
		if len(fields) == 0 {
			return 0
		}
		switch fields[0] {
		case "flowchart":
			return 1
		case "graph":
			return 0.9
		default:
			return 0
		}
	}
	return 0
}

// Patterns implements [plugin.Detector].
func (Detector) Patterns() []string {
	return []string{"graph", "flowchart", "-->"}
}
