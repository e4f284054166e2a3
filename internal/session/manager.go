package session

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/emaildig/internal/catalog"
	"github.com/dmitrijs2005/emaildig/internal/common"
	"github.com/dmitrijs2005/emaildig/internal/logging"
	"github.com/dmitrijs2005/emaildig/internal/models"
)

// DefaultKey is the save slot name.
const DefaultKey = common.StateKey

type Option func(*Manager)

// WithKey changes the save slot name.
func WithKey(key string) Option {
	return func(m *Manager) { m.key = key }
}

// WithClock replaces time.Now for artifact and journal timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithIDs replaces the uuid generator for artifact and journal ids.
func WithIDs(next func() string) Option {
	return func(m *Manager) { m.newID = next }
}

type Manager struct {
	cat   *catalog.Catalog
	store Store
	log   logging.Logger

	key   string
	now   func() time.Time
	newID func() string

	state models.GameState
	// journaled is set once the current visit of a site has been written
	// to the journal, so repeated completion does not log it twice.
	journaled bool
}

// NewManager returns a Manager holding the default state. Call Load to
// restore a saved game.
func NewManager(cat *catalog.Catalog, store Store, log logging.Logger, opts ...Option) *Manager {
	m := &Manager{
		cat:   cat,
		store: store,
		log:   log,
		key:   DefaultKey,
		now:   time.Now,
		newID: uuid.NewString,
		state: models.DefaultGameState(),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Summary describes the outcome of CompleteSite.
type Summary struct {
	Site     *models.Site
	Accuracy int
	Correct  int
	Total    int
	// FirstCompletion is false when the site had been completed before.
	FirstCompletion bool
	PreviousLevel   string
	Level           string
}

// LeveledUp reports whether completion moved the player to a new level.
func (s Summary) LeveledUp() bool {
	return s.Level != s.PreviousLevel
}

// State returns a deep copy of the current state.
func (m *Manager) State() models.GameState {
	return m.state.Clone()
}

// CurrentSite returns the selected site or nil.
func (m *Manager) CurrentSite() *models.Site {
	return m.site(m.state.CurrentSite)
}

func (m *Manager) site(id string) *models.Site {
	if id == "" {
		return nil
	}
	site, err := m.cat.Site(id)
	if err != nil {
		return nil
	}
	return site
}

// CurrentLayer returns the 1-based layer being excavated.
func (m *Manager) CurrentLayer() int {
	return m.state.CurrentLayer
}

// CurrentEmail returns the email at the current layer of the selected site,
// or nil when no site is selected.
func (m *Manager) CurrentEmail() *models.Email {
	site := m.CurrentSite()
	if site == nil {
		return nil
	}
	email, ok := site.Email(m.state.CurrentLayer)
	if !ok {
		return nil
	}
	return email
}

// SelectSite makes id the current site, starting at layer 1 with an empty
// discovery log.
func (m *Manager) SelectSite(id string) error {
	site, err := m.cat.Site(id)
	if err != nil {
		return err
	}
	m.state.CurrentSite = site.ID
	m.state.CurrentLayer = 1
	m.state.Discoveries = []models.Discovery{}
	m.journaled = false
	return nil
}

// AdvanceLayer moves to the next layer. At the last layer it does nothing
// and returns false.
func (m *Manager) AdvanceLayer() (bool, error) {
	site := m.CurrentSite()
	if site == nil {
		return false, common.ErrNoSiteSelected
	}
	if m.state.CurrentLayer >= site.Layers {
		return false, nil
	}
	m.state.CurrentLayer++
	return true, nil
}

// IsLastLayer reports whether the current layer is the last of the site.
func (m *Manager) IsLastLayer() bool {
	site := m.CurrentSite()
	return site != nil && m.state.CurrentLayer >= site.Layers
}

// AppendDiscoveries adds ds to the log in order.
func (m *Manager) AppendDiscoveries(ds ...models.Discovery) {
	m.state.Discoveries = append(m.state.Discoveries, ds...)
}

// UnlockArtifact records an artifact of type tag at the current site unless
// one is already there. It reports whether a new artifact was created.
func (m *Manager) UnlockArtifact(tag, evidence string) bool {
	site := m.CurrentSite()
	if site == nil || m.state.HasArtifact(tag, site.Name) {
		return false
	}
	m.state.UnlockedArtifacts = append(m.state.UnlockedArtifacts, models.UnlockedArtifact{
		ID:           m.newID(),
		Type:         tag,
		Site:         site.Name,
		Layer:        m.state.CurrentLayer,
		Evidence:     evidence,
		DiscoveredAt: m.now().UTC(),
	})
	m.state.ArtifactsFound++
	return true
}

// Accuracy is the share of correct discoveries at the current site, in
// whole percent.
func (m *Manager) Accuracy() int {
	return models.Accuracy(m.state.Discoveries)
}

// CompleteSite marks the current site as excavated, recomputes the
// experience level and saves the game. A save error is returned together
// with the summary; the in-memory state is kept either way.
func (m *Manager) CompleteSite(ctx context.Context) (Summary, error) {
	site := m.CurrentSite()
	if site == nil {
		return Summary{}, common.ErrNoSiteSelected
	}

	first := !slices.Contains(m.state.CompletedSites, site.ID)
	if first {
		m.state.CompletedSites = append(m.state.CompletedSites, site.ID)
		m.state.SitesExcavated++
	}

	prev := m.state.ExperienceLevel
	m.state.ExperienceLevel = models.ExperienceLevelFor(m.state.ArtifactsFound)

	sum := Summary{
		Site:            site,
		Accuracy:        m.Accuracy(),
		Total:           len(m.state.Discoveries),
		FirstCompletion: first,
		PreviousLevel:   prev,
		Level:           m.state.ExperienceLevel,
	}
	falsePositives := 0
	for _, d := range m.state.Discoveries {
		if d.IsCorrect {
			sum.Correct++
		}
		if d.Kind == models.DiscoveryFalsePositive {
			falsePositives++
		}
	}

	var rec *models.Excavation
	if !m.journaled {
		rec = &models.Excavation{
			ID:              m.newID(),
			SiteID:          site.ID,
			SiteName:        site.Name,
			Layers:          m.state.CurrentLayer,
			Discoveries:     sum.Total,
			Correct:         sum.Correct,
			FalsePositives:  falsePositives,
			Accuracy:        sum.Accuracy,
			ArtifactsFound:  len(m.ArtifactsAtSite(site.Name)),
			ExperienceLevel: m.state.ExperienceLevel,
			CompletedAt:     m.now().UTC(),
		}
	}

	log := m.log.With("site", site.ID)
	log.Info(ctx, "site completed", "accuracy", sum.Accuracy, "discoveries", sum.Total, "first", first)
	if sum.LeveledUp() {
		log.Info(ctx, "experience level changed", "from", prev, "to", sum.Level)
	}

	if err := m.save(ctx, rec); err != nil {
		log.Error(ctx, "failed to save game", "error", err)
		return sum, err
	}
	if rec != nil {
		m.journaled = true
	}
	return sum, nil
}

// IsCompleted reports whether the site has been fully excavated.
func (m *Manager) IsCompleted(id string) bool {
	return slices.Contains(m.state.CompletedSites, id)
}

// LayerProgress returns one flag per layer of the site: true for layers
// already dug through. Every layer of a completed site counts; for the
// current site it is the layers before the current one.
func (m *Manager) LayerProgress(id string) []bool {
	site, err := m.cat.Site(id)
	if err != nil {
		return nil
	}
	done := make([]bool, site.Layers)
	completed := m.IsCompleted(id)
	current := m.state.CurrentSite == id
	for i := range done {
		done[i] = completed || (current && i < m.state.CurrentLayer-1)
	}
	return done
}

// ArtifactsAtSite returns the artifacts unlocked at the named site.
func (m *Manager) ArtifactsAtSite(name string) []models.UnlockedArtifact {
	var out []models.UnlockedArtifact
	for _, a := range m.state.UnlockedArtifacts {
		if a.Site == name {
			out = append(out, a)
		}
	}
	return out
}

// History returns the journal of completed excavations, newest first.
func (m *Manager) History(ctx context.Context) ([]models.Excavation, error) {
	return m.store.History(ctx)
}

// Reset starts a new game: the slot is cleared and the state returns to
// defaults. The journal is kept.
func (m *Manager) Reset(ctx context.Context) error {
	m.state = models.DefaultGameState()
	m.journaled = false
	if err := m.store.Clear(ctx, m.key); err != nil {
		return fmt.Errorf("failed to clear saved game: %w", err)
	}
	m.log.Info(ctx, "game reset", "slot", m.key)
	return nil
}

// Wipe erases every save slot and the journal, then starts a new game.
func (m *Manager) Wipe(ctx context.Context) error {
	m.state = models.DefaultGameState()
	m.journaled = false
	if err := m.store.Wipe(ctx); err != nil {
		return fmt.Errorf("failed to erase saved games: %w", err)
	}
	m.log.Info(ctx, "all saved games erased")
	return nil
}

// SlotInfo summarises one save slot.
type SlotInfo struct {
	Key string
	// Active marks the slot this session saves to.
	Active          bool
	Corrupt         bool
	ExperienceLevel string
	ArtifactsFound  int
	SitesExcavated  int
}

// Slots lists the saved games in the store, sorted by slot name. Documents
// are read the same way Load reads them.
func (m *Manager) Slots(ctx context.Context) ([]SlotInfo, error) {
	docs, err := m.store.Slots(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list save slots: %w", err)
	}

	out := make([]SlotInfo, 0, len(docs))
	for key, doc := range docs {
		info := SlotInfo{Key: key, Active: key == m.key}
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(doc, &fields); err != nil {
			info.Corrupt = true
		} else {
			st := m.merge(ctx, fields)
			info.ExperienceLevel = st.ExperienceLevel
			info.ArtifactsFound = st.ArtifactsFound
			info.SitesExcavated = st.SitesExcavated
		}
		out = append(out, info)
	}
	slices.SortFunc(out, func(a, b SlotInfo) int { return strings.Compare(a.Key, b.Key) })
	return out, nil
}

func (m *Manager) save(ctx context.Context, rec *models.Excavation) error {
	doc, err := json.Marshal(m.state)
	if err != nil {
		return fmt.Errorf("failed to encode game state: %w", err)
	}
	if err := m.store.Checkpoint(ctx, m.key, doc, rec); err != nil {
		return fmt.Errorf("failed to save game state: %w", err)
	}
	return nil
}
