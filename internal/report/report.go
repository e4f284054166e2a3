// Package report builds the end-of-site excavation report.
package report

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/emaildig/internal/catalog"
	"github.com/dmitrijs2005/emaildig/internal/format"
	"github.com/dmitrijs2005/emaildig/internal/models"
)

const (
	TitleExcellent = "🏆 EXCELLENT EXCAVATION!"
	TitleGood      = "⭐ GOOD ARCHAEOLOGICAL WORK!"
	TitleLearning  = "📚 LEARNING EXPERIENCE!"
)

// Report is the completion screen of a site.
type Report struct {
	Title              string
	SiteName           string
	LayersExcavated    int
	CorrectDiscoveries int
	Accuracy           int
	ThreatsIdentified  int
	FalsePositives     int
	Artifacts          []models.UnlockedArtifact
	Narrative          string
}

// Title returns the headline for an accuracy.
func Title(accuracy int) string {
	switch {
	case accuracy >= 80:
		return TitleExcellent
	case accuracy >= 60:
		return TitleGood
	}
	return TitleLearning
}

// Build summarises the completed site from the session state.
func Build(site *models.Site, state models.GameState, accuracy int) Report {
	r := Report{
		Title:           Title(accuracy),
		SiteName:        site.Name,
		LayersExcavated: site.Layers,
		Accuracy:        accuracy,
	}

	correctThreats := 0
	for _, d := range state.Discoveries {
		if d.IsCorrect {
			r.CorrectDiscoveries++
		}
		switch d.Kind {
		case models.DiscoveryThreat:
			r.ThreatsIdentified++
			if d.IsCorrect {
				correctThreats++
			}
		case models.DiscoveryFalsePositive:
			r.FalsePositives++
		}
	}

	for _, a := range state.UnlockedArtifacts {
		if a.Site == site.Name {
			r.Artifacts = append(r.Artifacts, a)
		}
	}

	r.Narrative = narrative(site.Name, accuracy, correctThreats, r.FalsePositives)
	return r
}

func narrative(siteName string, accuracy, threats, falsePositives int) string {
	parts := []string{fmt.Sprintf("Excavation of %s has been completed.", siteName)}

	switch {
	case accuracy >= 80:
		parts = append(parts, "Your forensic analysis was highly accurate, correctly identifying most threats while avoiding false positives.")
	case accuracy >= 60:
		parts = append(parts, "Your analysis showed good understanding of phishing tactics, with room for improvement in accuracy.")
	default:
		parts = append(parts, "This excavation provided valuable learning opportunities. Consider reviewing the forensics tools and their applications.")
	}

	if threats > 0 {
		parts = append(parts, fmt.Sprintf("You successfully identified %d distinct phishing threats buried in the email layers.", threats))
	}
	if falsePositives > 0 {
		parts = append(parts, fmt.Sprintf("Note: %d false positive(s) were recorded, which could impact response effectiveness in real scenarios.", falsePositives))
	}

	parts = append(parts, "Continue excavating other sites to build your expertise in digital forensics and phishing detection.")
	return strings.Join(parts, " ")
}

// Render lays the report out as the title, a summary table, the artifacts
// found at the site and the narrative.
func Render(r Report, cat *catalog.Catalog, mode format.Mode) string {
	var b strings.Builder

	if mode == format.Markdown {
		fmt.Fprintf(&b, "## %s\n\n", r.Title)
	} else {
		fmt.Fprintf(&b, "%s\n\n", r.Title)
	}

	summary := format.NewTable(mode)
	summary.Header("Metric", "Value")
	summary.Row("Layers Excavated", r.LayersExcavated)
	summary.Row("Correct Discoveries", r.CorrectDiscoveries)
	summary.Row("Accuracy Rate", format.Percent(r.Accuracy))
	summary.Row("Threats Identified", r.ThreatsIdentified)
	summary.Columns(format.ColumnConfig{Number: 2, Align: format.AlignRight})
	b.WriteString(summary.String())
	b.WriteString("\n\n")

	if len(r.Artifacts) == 0 {
		b.WriteString("No new artifacts discovered at this site.\n\n")
	} else {
		arts := format.NewTable(mode)
		arts.Header("Artifact", "Rarity", "Layer")
		for _, a := range r.Artifacts {
			t := cat.Describe(a.Type)
			arts.Row(t.Icon+" "+t.Name, string(t.Rarity), a.Layer)
		}
		b.WriteString(arts.String())
		b.WriteString("\n\n")
	}

	b.WriteString(r.Narrative)
	b.WriteString("\n")
	return b.String()
}
