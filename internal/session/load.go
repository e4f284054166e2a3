package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/emaildig/internal/models"
)

// Load restores the saved game. A missing slot leaves the defaults in place.
// A corrupt document is logged and ignored. Documents written by older
// versions are merged field by field over the defaults: unknown keys are
// dropped and a field of the wrong type keeps its default.
//
// On a read error the defaults are kept and the error is returned.
func (m *Manager) Load(ctx context.Context) error {
	m.state = models.DefaultGameState()
	m.journaled = false

	doc, err := m.store.Load(ctx, m.key)
	if err != nil {
		return fmt.Errorf("failed to load saved game: %w", err)
	}
	if doc == nil {
		m.log.Debug(ctx, "no saved game", "slot", m.key)
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(doc, &fields); err != nil {
		m.log.Warn(ctx, "saved game is corrupt, starting fresh", "slot", m.key, "error", err)
		return nil
	}

	m.state = m.merge(ctx, fields)
	m.log.Info(ctx, "saved game loaded",
		"slot", m.key,
		"level", m.state.ExperienceLevel,
		"artifacts", m.state.ArtifactsFound,
		"sites", m.state.SitesExcavated,
	)
	return nil
}

func (m *Manager) merge(ctx context.Context, fields map[string]json.RawMessage) models.GameState {
	s := models.DefaultGameState()

	// take decodes one field into a temporary; a half-decoded value is
	// reported as failure and never copied into the state
	take := func(key string, dst any) bool {
		raw, ok := fields[key]
		if !ok || string(raw) == "null" {
			return false
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			m.log.Warn(ctx, "ignoring malformed saved field", "field", key, "error", err)
			return false
		}
		return true
	}

	var (
		level      string
		found      int
		excavated  int
		layer      int
		discovered []models.Discovery
		artifacts  []models.UnlockedArtifact
		completed  []string
	)
	if take("experienceLevel", &level) && level != "" {
		s.ExperienceLevel = level
	}
	if take("artifactsFound", &found) && found > 0 {
		s.ArtifactsFound = found
	}
	if take("sitesExcavated", &excavated) && excavated > 0 {
		s.SitesExcavated = excavated
	}
	if take("currentLayer", &layer) && layer > 0 {
		s.CurrentLayer = layer
	}
	if take("discoveries", &discovered) {
		s.Discoveries = discovered
	}
	if take("unlockedArtifacts", &artifacts) {
		s.UnlockedArtifacts = artifacts
	}
	if take("completedSites", &completed) {
		s.CompletedSites = completed
	}

	s.CurrentSite = m.resolveSite(ctx, fields["currentSite"])
	if site := m.site(s.CurrentSite); site != nil {
		s.CurrentLayer = min(s.CurrentLayer, site.Layers)
	}
	return s
}

// resolveSite accepts a site id or, from older saves, the whole site object.
// Ids missing from the catalog resolve to no site.
func (m *Manager) resolveSite(ctx context.Context, raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var id string
	if err := json.Unmarshal(raw, &id); err != nil {
		var legacy struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(raw, &legacy); err != nil {
			m.log.Warn(ctx, "ignoring malformed saved field", "field", "currentSite", "error", err)
			return ""
		}
		id = legacy.ID
	}

	if id == "" {
		return ""
	}
	if _, err := m.cat.Site(id); err != nil {
		m.log.Warn(ctx, "saved site is not in the catalog", "site", id)
		return ""
	}
	return id
}
