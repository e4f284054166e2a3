package analysis

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/emaildig/internal/catalog"
	"github.com/dmitrijs2005/emaildig/internal/common"
	"github.com/dmitrijs2005/emaildig/internal/models"
)

func catalogEmails(t *testing.T) []models.Email {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)

	var out []models.Email
	for _, s := range c.Sites() {
		out = append(out, s.Emails...)
	}
	require.NotEmpty(t, out)
	return out
}

func TestAnalyze_LegitimateEmailsHaveNoHypotheses(t *testing.T) {
	for _, email := range catalogEmails(t) {
		if !email.IsLegitimate {
			continue
		}
		for _, tool := range models.AllTools {
			r, err := Analyze(tool, email)
			require.NoError(t, err)
			assert.Empty(t, r.Threats, "%s on %s", tool, email.MessageID)
			assert.False(t, r.Suspicious())
			assert.NotEmpty(t, r.Findings, "%s on %s", tool, email.MessageID)
		}
	}
}

func TestAnalyze_PhishingEmailsAlwaysHaveHypotheses(t *testing.T) {
	for _, email := range catalogEmails(t) {
		if email.IsLegitimate {
			continue
		}
		for _, tool := range models.AllTools {
			r, err := Analyze(tool, email)
			require.NoError(t, err)
			assert.NotEmpty(t, r.Threats, "%s on %s", tool, email.MessageID)
			assert.Equal(t, tool, r.Tool)
		}
	}
}

func TestAnalyze_UnknownThreatFallsBack(t *testing.T) {
	email := models.Email{Layer: 1, Threat: "quantum-phish", From: "x@evil.example", Date: "2024-03-01 03:00:00"}

	want := map[models.ToolID][]string{
		models.ToolHeaderAnalyzer:    {TagSpoofedIdentity},
		models.ToolLinkInspector:     {TagSocialEngineering},
		models.ToolLinguisticScanner: {TagSocialEngineering},
		models.ToolTimelineMapper:    {TagSocialEngineering},
		models.ToolDomainResearcher:  {TagSpoofedIdentity},
		models.ToolPatternDetector:   {TagSocialEngineering},
	}
	for tool, tags := range want {
		r, err := Analyze(tool, email)
		require.NoError(t, err)
		assert.Equal(t, tags, r.Threats, tool)
	}
}

func TestAnalyze_ToolMappings(t *testing.T) {
	tests := []struct {
		tool   models.ToolID
		threat string
		want   []string
	}{
		{models.ToolHeaderAnalyzer, "credential-harvesting", []string{TagSpoofedIdentity}},
		{models.ToolHeaderAnalyzer, "ceo-impersonation", []string{TagSpoofedIdentity}},
		{models.ToolPatternDetector, "ceo-impersonation", []string{TagCEOFraud}},
		{models.ToolPatternDetector, "credential-harvesting", []string{TagCredentialHarvest}},
		{models.ToolPatternDetector, "advanced-spear-phishing", []string{TagAdvancedPersistent}},
		{models.ToolPatternDetector, "fake-security-alert", []string{TagSocialEngineering}},
		{models.ToolPatternDetector, "account-takeover-attempt", []string{TagCredentialHarvest}},
		{models.ToolPatternDetector, "urgency-tactics", []string{TagUrgencyTactics}},
		{models.ToolPatternDetector, "sophisticated-clone", []string{TagSocialEngineering}},
		{models.ToolPatternDetector, "supply-chain-attack", []string{TagSupplyChainAttack}},
		{models.ToolPatternDetector, "document-harvesting", []string{TagDangerousAttachment}},
		{models.ToolLinkInspector, "credential-harvesting", []string{TagMaliciousLink}},
		{models.ToolLinkInspector, "ceo-impersonation", []string{TagSocialEngineering}},
		{models.ToolLinguisticScanner, "urgency-tactics", []string{TagUrgencyTactics, TagSocialEngineering}},
		{models.ToolLinguisticScanner, "fake-security-alert", []string{TagSocialEngineering}},
		{models.ToolTimelineMapper, "supply-chain-attack", []string{TagSupplyChainAttack}},
		{models.ToolDomainResearcher, "fake-collaboration", []string{TagSpoofedIdentity}},
	}

	for _, tt := range tests {
		t.Run(string(tt.tool)+"/"+tt.threat, func(t *testing.T) {
			r, err := Analyze(tt.tool, models.Email{Threat: tt.threat, From: "a@b.example"})
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, r.Threats); diff != "" {
				t.Fatalf("threats mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAnalyze_VerdictIgnoresBodyText(t *testing.T) {
	scary := "URGENT! Click now to verify your password: https://evil.example/login"

	legit := models.Email{IsLegitimate: true, Body: scary, From: "hr@company.com", Date: "2024-03-15 09:00:00"}
	bland := models.Email{Threat: "credential-harvesting", Body: "Hello.", From: "hr@company.com", Date: "2024-03-15 09:00:00"}

	for _, tool := range models.AllTools {
		r, err := Analyze(tool, legit)
		require.NoError(t, err)
		assert.Empty(t, r.Threats, tool)

		r, err = Analyze(tool, bland)
		require.NoError(t, err)
		assert.NotEmpty(t, r.Threats, tool)
	}
}

func TestAnalyze_IsDeterministic(t *testing.T) {
	for _, email := range catalogEmails(t) {
		for _, tool := range models.AllTools {
			a, err := Analyze(tool, email)
			require.NoError(t, err)
			b, err := Analyze(tool, email)
			require.NoError(t, err)
			require.Empty(t, cmp.Diff(a, b))
		}
	}
}

func TestAnalyze_ReturnedThreatsAreIndependentCopies(t *testing.T) {
	email := models.Email{Threat: "urgency-tactics"}
	r, err := Analyze(models.ToolLinguisticScanner, email)
	require.NoError(t, err)
	r.Threats[0] = "tampered"

	again, err := Analyze(models.ToolLinguisticScanner, email)
	require.NoError(t, err)
	assert.Equal(t, TagUrgencyTactics, again.Threats[0])
}

func TestAnalyze_UnknownTool(t *testing.T) {
	_, err := Analyze("x-ray", models.Email{})
	require.ErrorIs(t, err, common.ErrUnknownTool)
}

func TestTimelineMapper_UsesReferenceTime(t *testing.T) {
	e := NewEngine(WithReferenceTime(time.Date(2024, 3, 15, 21, 30, 0, 0, time.UTC)))
	email := models.Email{Threat: "urgency-tactics", Date: "2024-03-15 14:45:00"}

	r, err := e.Analyze(models.ToolTimelineMapper, email)
	require.NoError(t, err)
	require.NotEmpty(t, r.Findings)
	assert.Contains(t, r.Findings[0].Lines, "Time Since Sent: 7 hours ago")
	assert.Contains(t, r.Findings[0].Lines, "Send Time: 14:45")
}

func TestTimelineMapper_OffHoursAnomaly(t *testing.T) {
	r, err := Analyze(models.ToolTimelineMapper, models.Email{Threat: "x", Date: "2024-03-13 05:30:00"})
	require.NoError(t, err)
	require.Len(t, r.Findings, 2)
	assert.Equal(t, "⚠️ Timing Anomalies", r.Findings[1].Title)

	r, err = Analyze(models.ToolTimelineMapper, models.Email{Threat: "x", Date: "garbage"})
	require.NoError(t, err)
	assert.Contains(t, r.Findings[0].Lines, "Time Since Sent: unknown (unreadable timestamp)")
	assert.NotEmpty(t, r.Threats)
}

func TestLinkInspector_ListsLinks(t *testing.T) {
	email := models.Email{
		Threat: "credential-harvesting",
		Body:   "see https://a.example/x and http://b.example/y",
	}
	r, err := Analyze(models.ToolLinkInspector, email)
	require.NoError(t, err)
	assert.Contains(t, r.Findings[0].Lines, "Links Found: 2")
	assert.Equal(t, []string{"SUSPICIOUS: https://a.example/x", "SUSPICIOUS: http://b.example/y"}, r.Findings[0].Bullets)
}

func TestHeaderAnalyzer_Narratives(t *testing.T) {
	r, err := Analyze(models.ToolHeaderAnalyzer, models.Email{Threat: "fake-security-alert"})
	require.NoError(t, err)
	assert.Contains(t, r.Findings[0].Lines, "Sender Authentication: FAILED")

	r, err = Analyze(models.ToolHeaderAnalyzer, models.Email{Threat: "ceo-impersonation"})
	require.NoError(t, err)
	assert.Contains(t, r.Findings[0].Lines, "Sender Authentication: SUSPICIOUS")
}

func TestPatternDetector_ProfileFallback(t *testing.T) {
	r, err := Analyze(models.ToolPatternDetector, models.Email{Threat: "fake-collaboration"})
	require.NoError(t, err)
	assert.Contains(t, r.Findings[0].Lines, "Attack Pattern: Generic Phishing")
	assert.Contains(t, r.Findings[0].Lines, "Target Profile: General population")
}
