package models

// ToolID identifies one of the six forensic tools.
type ToolID string

const (
	ToolHeaderAnalyzer    ToolID = "header-analyzer"
	ToolLinkInspector     ToolID = "link-inspector"
	ToolLinguisticScanner ToolID = "linguistic-scanner"
	ToolTimelineMapper    ToolID = "timeline-mapper"
	ToolDomainResearcher  ToolID = "domain-researcher"
	ToolPatternDetector   ToolID = "pattern-detector"
)

// AllTools lists the tools in display order.
var AllTools = []ToolID{
	ToolHeaderAnalyzer,
	ToolLinkInspector,
	ToolLinguisticScanner,
	ToolTimelineMapper,
	ToolDomainResearcher,
	ToolPatternDetector,
}

// Valid reports whether t is a known tool.
func (t ToolID) Valid() bool {
	for _, known := range AllTools {
		if t == known {
			return true
		}
	}
	return false
}

// ToolInfo is the catalog description of a tool.
type ToolInfo struct {
	ID          ToolID `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Emoji       string `yaml:"emoji" json:"emoji"`
	Description string `yaml:"description" json:"description"`
	Uses        string `yaml:"uses" json:"uses"`
}
