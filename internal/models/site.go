package models

import (
	"fmt"
	"strings"
)

// Difficulty is the tier of an excavation site.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Valid reports whether d is one of the known tiers.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// Email is one layer of an excavation site.
type Email struct {
	// Layer is 1-based and unique within a site.
	Layer int `yaml:"layer" json:"layer"`

	// IsLegitimate is the ground truth used for scoring.
	IsLegitimate bool `yaml:"legitimate" json:"isLegitimate"`

	// Threat is the embedded threat category; set iff the email is not legitimate.
	Threat string `yaml:"threat,omitempty" json:"threat,omitempty"`

	From      string `yaml:"from" json:"from"`
	To        string `yaml:"to" json:"to"`
	Subject   string `yaml:"subject" json:"subject"`
	Date      string `yaml:"date" json:"date"`
	MessageID string `yaml:"message_id" json:"messageId"`
	Body      string `yaml:"body" json:"body"`
}

// SenderDomain returns the part of From after '@', or "" when there is none.
func (e Email) SenderDomain() string {
	i := strings.LastIndex(e.From, "@")
	if i < 0 {
		return ""
	}
	return e.From[i+1:]
}

// Site is a named sequence of layered emails.
type Site struct {
	ID          string     `yaml:"id" json:"id"`
	Name        string     `yaml:"name" json:"name"`
	Icon        string     `yaml:"icon" json:"icon"`
	Difficulty  Difficulty `yaml:"difficulty" json:"difficulty"`
	Description string     `yaml:"description" json:"description"`
	Layers      int        `yaml:"layers" json:"layers"`
	Emails      []Email    `yaml:"emails" json:"emails"`
}

// Email returns the email at the given layer.
func (s *Site) Email(layer int) (*Email, bool) {
	for i := range s.Emails {
		if s.Emails[i].Layer == layer {
			return &s.Emails[i], true
		}
	}
	return nil, false
}

// Validate checks the site invariants: a declared layer count equal to the
// number of emails, layers covering exactly 1..Layers, and a threat category
// present iff the email is not legitimate.
func (s *Site) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("site id is required")
	}
	if s.Name == "" {
		return fmt.Errorf("site %s: name is required", s.ID)
	}
	if !s.Difficulty.Valid() {
		return fmt.Errorf("site %s: unknown difficulty %q", s.ID, s.Difficulty)
	}
	if s.Layers < 1 {
		return fmt.Errorf("site %s: layer count must be positive, got %d", s.ID, s.Layers)
	}
	if len(s.Emails) != s.Layers {
		return fmt.Errorf("site %s: declares %d layers but has %d emails", s.ID, s.Layers, len(s.Emails))
	}

	seen := make(map[int]struct{}, len(s.Emails))
	for _, e := range s.Emails {
		if e.Layer < 1 || e.Layer > s.Layers {
			return fmt.Errorf("site %s: layer %d out of range 1..%d", s.ID, e.Layer, s.Layers)
		}
		if _, dup := seen[e.Layer]; dup {
			return fmt.Errorf("site %s: duplicate layer %d", s.ID, e.Layer)
		}
		seen[e.Layer] = struct{}{}

		if e.IsLegitimate && e.Threat != "" {
			return fmt.Errorf("site %s layer %d: legitimate email carries threat %q", s.ID, e.Layer, e.Threat)
		}
		if !e.IsLegitimate && e.Threat == "" {
			return fmt.Errorf("site %s layer %d: phishing email has no threat category", s.ID, e.Layer)
		}
	}
	return nil
}
