package models

// DiscoveryKind is the outcome of a flag/safe decision.
type DiscoveryKind string

const (
	DiscoveryThreat        DiscoveryKind = "threat"
	DiscoverySafe          DiscoveryKind = "safe"
	DiscoveryFalsePositive DiscoveryKind = "false-positive"
	DiscoveryFalseNegative DiscoveryKind = "false-negative"
)

// GeneralPhishing is the threat tag recorded when a phishing email is flagged
// but the tool in hand produced no specific hypothesis. No artifact type
// exists for it.
const GeneralPhishing = "general-phishing"

// Discovery is one entry in the per-site discovery log.
type Discovery struct {
	Layer       int           `json:"layer"`
	Kind        DiscoveryKind `json:"type"`
	ThreatType  string        `json:"threatType,omitempty"`
	IsCorrect   bool          `json:"isCorrect"`
	Description string        `json:"description"`
}
