package session

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/emaildig/internal/catalog"
	"github.com/dmitrijs2005/emaildig/internal/common"
	"github.com/dmitrijs2005/emaildig/internal/logging"
	"github.com/dmitrijs2005/emaildig/internal/models"
	"github.com/dmitrijs2005/emaildig/internal/storage"
)

var fixedNow = time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newManager(t *testing.T, store Store, opts ...Option) *Manager {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	if store == nil {
		store = storage.NewMemory()
	}
	opts = append([]Option{WithClock(func() time.Time { return fixedNow }), WithIDs(sequentialIDs())}, opts...)
	return NewManager(cat, store, logging.Nop(), opts...)
}

// failingStore fails every write.
type failingStore struct {
	*storage.Memory
	err error
}

func (f failingStore) Checkpoint(ctx context.Context, key string, doc []byte, rec *models.Excavation) error {
	return f.err
}

func (f failingStore) Clear(ctx context.Context, key string) error {
	return f.err
}

func TestNewManager_DefaultState(t *testing.T) {
	m := newManager(t, nil)

	if diff := cmp.Diff(models.DefaultGameState(), m.State()); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
	assert.Nil(t, m.CurrentSite())
	assert.Nil(t, m.CurrentEmail())
	assert.Equal(t, 0, m.Accuracy())
}

func TestSelectSite(t *testing.T) {
	m := newManager(t, nil)

	err := m.SelectSite("atlantis")
	require.ErrorIs(t, err, common.ErrUnknownSite)
	assert.Empty(t, m.State().CurrentSite)

	require.NoError(t, m.SelectSite("corporate-chain"))
	_, err = m.AdvanceLayer()
	require.NoError(t, err)
	m.AppendDiscoveries(models.Discovery{Layer: 1, Kind: models.DiscoverySafe, IsCorrect: true})

	require.NoError(t, m.SelectSite("bank-notification"))
	st := m.State()
	assert.Equal(t, "bank-notification", st.CurrentSite)
	assert.Equal(t, 1, st.CurrentLayer)
	assert.Empty(t, st.Discoveries)
	assert.NotNil(t, st.Discoveries)
	require.NotNil(t, m.CurrentEmail())
	assert.Equal(t, 1, m.CurrentEmail().Layer)
}

func TestAdvanceLayer(t *testing.T) {
	m := newManager(t, nil)

	_, err := m.AdvanceLayer()
	require.ErrorIs(t, err, common.ErrNoSiteSelected)

	require.NoError(t, m.SelectSite("bank-notification")) // 4 layers
	for want := 2; want <= 4; want++ {
		moved, err := m.AdvanceLayer()
		require.NoError(t, err)
		assert.True(t, moved)
		assert.Equal(t, want, m.State().CurrentLayer)
	}
	assert.True(t, m.IsLastLayer())

	moved, err := m.AdvanceLayer()
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Equal(t, 4, m.State().CurrentLayer)
}

func TestUnlockArtifact_OncePerTypeAndSite(t *testing.T) {
	m := newManager(t, nil)

	assert.False(t, m.UnlockArtifact("spoofed-identity", "x"), "no site selected")

	require.NoError(t, m.SelectSite("corporate-chain"))
	_, _ = m.AdvanceLayer()

	assert.True(t, m.UnlockArtifact("spoofed-identity", "subject"))
	assert.False(t, m.UnlockArtifact("spoofed-identity", "other subject"))
	assert.True(t, m.UnlockArtifact("malicious-link", "subject"))

	st := m.State()
	assert.Equal(t, 2, st.ArtifactsFound)
	want := models.UnlockedArtifact{
		ID:           "id-1",
		Type:         "spoofed-identity",
		Site:         "Corporate Email Chain",
		Layer:        2,
		Evidence:     "subject",
		DiscoveredAt: fixedNow,
	}
	assert.Empty(t, cmp.Diff(want, st.UnlockedArtifacts[0]))

	// same type at another site is a new artifact
	require.NoError(t, m.SelectSite("bank-notification"))
	assert.True(t, m.UnlockArtifact("spoofed-identity", "subject"))
	assert.Equal(t, 3, m.State().ArtifactsFound)
	assert.Len(t, m.ArtifactsAtSite("Corporate Email Chain"), 2)
	assert.Len(t, m.ArtifactsAtSite("Banking Alert Thread"), 1)
}

func TestState_IsACopy(t *testing.T) {
	m := newManager(t, nil)
	require.NoError(t, m.SelectSite("corporate-chain"))
	m.AppendDiscoveries(models.Discovery{Layer: 1, Kind: models.DiscoverySafe, IsCorrect: true})

	st := m.State()
	st.Discoveries[0].IsCorrect = false
	st.CompletedSites = append(st.CompletedSites, "x")

	assert.True(t, m.State().Discoveries[0].IsCorrect)
	assert.Empty(t, m.State().CompletedSites)
}

func TestAccuracy(t *testing.T) {
	m := newManager(t, nil)
	require.NoError(t, m.SelectSite("corporate-chain"))

	m.AppendDiscoveries(
		models.Discovery{Kind: models.DiscoverySafe, IsCorrect: true},
		models.Discovery{Kind: models.DiscoveryThreat, IsCorrect: true},
		models.Discovery{Kind: models.DiscoveryFalseNegative, IsCorrect: false},
	)
	assert.Equal(t, 67, m.Accuracy())
}

func TestCompleteSite_CountsOnce(t *testing.T) {
	store := storage.NewMemory()
	m := newManager(t, store)
	ctx := context.Background()

	_, err := m.CompleteSite(ctx)
	require.ErrorIs(t, err, common.ErrNoSiteSelected)

	require.NoError(t, m.SelectSite("corporate-chain"))
	m.AppendDiscoveries(
		models.Discovery{Layer: 1, Kind: models.DiscoverySafe, IsCorrect: true},
		models.Discovery{Layer: 2, Kind: models.DiscoveryFalsePositive, IsCorrect: false},
	)

	sum, err := m.CompleteSite(ctx)
	require.NoError(t, err)
	assert.True(t, sum.FirstCompletion)
	assert.Equal(t, 50, sum.Accuracy)
	assert.Equal(t, 1, sum.Correct)
	assert.Equal(t, 2, sum.Total)
	assert.Equal(t, "corporate-chain", sum.Site.ID)

	sum, err = m.CompleteSite(ctx)
	require.NoError(t, err)
	assert.False(t, sum.FirstCompletion)

	st := m.State()
	assert.Equal(t, 1, st.SitesExcavated)
	assert.Equal(t, []string{"corporate-chain"}, st.CompletedSites)
	assert.True(t, m.IsCompleted("corporate-chain"))

	hist, err := m.History(ctx)
	require.NoError(t, err)
	require.Len(t, hist, 1, "one journal entry per visit")
	assert.Equal(t, 1, hist[0].FalsePositives)
	assert.Equal(t, fixedNow, hist[0].CompletedAt)

	// a fresh visit of the same site is journaled again but not recounted
	require.NoError(t, m.SelectSite("corporate-chain"))
	_, err = m.CompleteSite(ctx)
	require.NoError(t, err)
	hist, err = m.History(ctx)
	require.NoError(t, err)
	assert.Len(t, hist, 2)
	assert.Equal(t, 1, m.State().SitesExcavated)
}

func TestCompleteSite_ExperienceThresholds(t *testing.T) {
	tests := []struct {
		artifacts int
		want      string
	}{
		{0, models.LevelNovice},
		{4, models.LevelNovice},
		{5, models.LevelJunior},
		{9, models.LevelJunior},
		{10, models.LevelExperienced},
		{15, models.LevelSenior},
		{20, models.LevelExpert},
		{24, models.LevelExpert},
		{25, models.LevelMaster},
		{40, models.LevelMaster},
	}

	for _, tt := range tests {
		t.Run(tt.want+fmt.Sprint(tt.artifacts), func(t *testing.T) {
			store := storage.NewMemory()
			doc := fmt.Sprintf(`{"artifactsFound":%d}`, tt.artifacts)
			require.NoError(t, store.Put(context.Background(), DefaultKey, []byte(doc)))

			m := newManager(t, store)
			require.NoError(t, m.Load(context.Background()))
			require.NoError(t, m.SelectSite("academic-research"))

			sum, err := m.CompleteSite(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, sum.Level)
			assert.Equal(t, tt.want, m.State().ExperienceLevel)
			assert.Equal(t, tt.want != models.LevelNovice, sum.LeveledUp())
		})
	}
}

func TestCompleteSite_SaveErrorKeepsState(t *testing.T) {
	boom := errors.New("disk full")
	m := newManager(t, failingStore{Memory: storage.NewMemory(), err: boom})

	require.NoError(t, m.SelectSite("corporate-chain"))
	_, err := m.CompleteSite(context.Background())
	require.ErrorIs(t, err, boom)

	assert.Equal(t, 1, m.State().SitesExcavated)
	assert.True(t, m.IsCompleted("corporate-chain"))
}

func TestLayerProgress(t *testing.T) {
	m := newManager(t, nil)

	assert.Nil(t, m.LayerProgress("nowhere"))
	assert.Equal(t, []bool{false, false, false, false}, m.LayerProgress("bank-notification"))

	require.NoError(t, m.SelectSite("bank-notification"))
	_, _ = m.AdvanceLayer()
	_, _ = m.AdvanceLayer()
	assert.Equal(t, []bool{true, true, false, false}, m.LayerProgress("bank-notification"))

	_, err := m.CompleteSite(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true, true, true}, m.LayerProgress("bank-notification"))
}

func TestReset(t *testing.T) {
	store := storage.NewMemory()
	m := newManager(t, store)
	ctx := context.Background()

	require.NoError(t, m.SelectSite("corporate-chain"))
	m.UnlockArtifact("spoofed-identity", "s")
	_, err := m.CompleteSite(ctx)
	require.NoError(t, err)

	require.NoError(t, m.Reset(ctx))
	assert.Empty(t, cmp.Diff(models.DefaultGameState(), m.State()))

	doc, err := store.Load(ctx, DefaultKey)
	require.NoError(t, err)
	assert.Nil(t, doc)

	hist, err := store.History(ctx)
	require.NoError(t, err)
	assert.Len(t, hist, 1, "journal survives a reset")

	boom := errors.New("locked")
	failing := newManager(t, failingStore{Memory: storage.NewMemory(), err: boom})
	require.ErrorIs(t, failing.Reset(ctx), boom)
}

func TestSlots(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	require.NoError(t, store.Put(ctx, "zeta", []byte(`{"experienceLevel":"Expert Digger","artifactsFound":21,"sitesExcavated":3}`)))
	require.NoError(t, store.Put(ctx, "broken", []byte(`{oops`)))

	m := newManager(t, store)
	require.NoError(t, m.SelectSite("bank-notification"))
	m.UnlockArtifact("spoofed-identity", "s")
	_, err := m.CompleteSite(ctx)
	require.NoError(t, err)

	slots, err := m.Slots(ctx)
	require.NoError(t, err)

	want := []SlotInfo{
		{Key: "broken", Corrupt: true},
		{Key: DefaultKey, Active: true, ExperienceLevel: "Novice Digger", ArtifactsFound: 1, SitesExcavated: 1},
		{Key: "zeta", ExperienceLevel: "Expert Digger", ArtifactsFound: 21, SitesExcavated: 3},
	}
	assert.Empty(t, cmp.Diff(want, slots))
}

func TestWipe(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	require.NoError(t, store.Put(ctx, "other", []byte(`{}`)))

	m := newManager(t, store)
	require.NoError(t, m.SelectSite("corporate-chain"))
	_, err := m.CompleteSite(ctx)
	require.NoError(t, err)

	require.NoError(t, m.Wipe(ctx))
	assert.Empty(t, cmp.Diff(models.DefaultGameState(), m.State()))

	slots, err := m.Slots(ctx)
	require.NoError(t, err)
	assert.Empty(t, slots)
	hist, err := m.History(ctx)
	require.NoError(t, err)
	assert.Empty(t, hist)

	// a fresh visit is journaled again
	require.NoError(t, m.SelectSite("corporate-chain"))
	_, err = m.CompleteSite(ctx)
	require.NoError(t, err)
	hist, err = m.History(ctx)
	require.NoError(t, err)
	assert.Len(t, hist, 1)
}
