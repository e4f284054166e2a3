// Package analysis implements the forensics tools. Each tool maps an email to
// a Result holding narrative findings and a set of threat-tag hypotheses.
//
// Analysis is a pure function of (tool, email): the verdict depends only on
// the email's ground-truth legitimacy flag and its embedded threat category.
// Text scans over the body (links, urgency words) only feed narrative detail.
package analysis

import (
	"fmt"
	"slices"
	"time"

	"github.com/dmitrijs2005/emaildig/internal/common"
	"github.com/dmitrijs2005/emaildig/internal/models"
)

// Section is one block of findings, e.g. "Red Flags Detected" with bullets.
type Section struct {
	Title   string   `json:"title"`
	Lines   []string `json:"lines,omitempty"`
	Bullets []string `json:"bullets,omitempty"`
}

// Result is the output of one tool invocation. It is not persisted.
type Result struct {
	Tool     models.ToolID `json:"tool"`
	Findings []Section     `json:"findings"`

	// Threats holds artifact-type ids hypothesised by the tool. Empty for a
	// legitimate email, non-empty otherwise.
	Threats []string `json:"threats"`
}

// Suspicious reports whether the tool produced any threat hypothesis.
func (r Result) Suspicious() bool {
	return len(r.Threats) > 0
}

// Analyzer is implemented by every forensics tool.
type Analyzer interface {
	Tool() models.ToolID
	Analyze(email models.Email) Result
}

// DefaultReferenceTime is the "now" the timeline mapper measures email age
// against, so results stay reproducible.
var DefaultReferenceTime = time.Date(2024, time.April, 1, 9, 0, 0, 0, time.UTC)

// Engine dispatches tool invocations to analyzers.
type Engine struct {
	analyzers map[models.ToolID]Analyzer
}

// Option configures an Engine.
type Option func(*options)

type options struct {
	reference time.Time
}

// WithReferenceTime sets the instant the timeline mapper treats as "now".
func WithReferenceTime(t time.Time) Option {
	return func(o *options) { o.reference = t }
}

// NewEngine returns an Engine with all six tools registered.
func NewEngine(opts ...Option) *Engine {
	o := options{reference: DefaultReferenceTime}
	for _, opt := range opts {
		opt(&o)
	}

	tools := []Analyzer{
		headerAnalyzer{},
		linkInspector{},
		linguisticScanner{},
		timelineMapper{reference: o.reference},
		domainResearcher{},
		patternDetector{},
	}

	e := &Engine{analyzers: make(map[models.ToolID]Analyzer, len(tools))}
	for _, a := range tools {
		e.analyzers[a.Tool()] = a
	}
	return e
}

// Analyze runs the tool against the email.
func (e *Engine) Analyze(tool models.ToolID, email models.Email) (Result, error) {
	a, ok := e.analyzers[tool]
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", common.ErrUnknownTool, tool)
	}
	r := a.Analyze(email)
	r.Tool = tool
	return r, nil
}

var defaultEngine = NewEngine()

// Analyze runs the tool against the email using the default engine.
func Analyze(tool models.ToolID, email models.Email) (Result, error) {
	return defaultEngine.Analyze(tool, email)
}

// hypotheses looks the threat category up in a per-tool table. Unknown
// categories get the fallback tag.
func hypotheses(table map[string][]string, threat, fallback string) []string {
	if tags, ok := table[threat]; ok && len(tags) > 0 {
		return slices.Clone(tags)
	}
	return []string{fallback}
}
