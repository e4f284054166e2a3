package cli

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/emaildig/internal/analysis"
	"github.com/dmitrijs2005/emaildig/internal/catalog"
	"github.com/dmitrijs2005/emaildig/internal/format"
	"github.com/dmitrijs2005/emaildig/internal/models"
	"github.com/dmitrijs2005/emaildig/internal/session"
)

func renderSites(sites []models.Site, sess *session.Manager, mode format.Mode) string {
	tb := format.NewTable(mode)
	tb.Title("🗺️ Excavation Sites")
	tb.Header("ID", "Site", "Difficulty", "Layers", "Status")
	for _, s := range sites {
		status := ""
		if sess.IsCompleted(s.ID) {
			status = "✅ Fully Excavated"
		}
		tb.Row(s.ID, s.Icon+" "+s.Name, string(s.Difficulty), format.LayerDots(sess.LayerProgress(s.ID)), status)
	}
	return tb.String()
}

func renderLayer(site *models.Site, layer int, email *models.Email) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s %s: layer %d of %d\n", site.Icon, site.Name, layer, site.Layers)
	fmt.Fprintf(&b, "%s\n\n", site.Description)
	fmt.Fprintf(&b, "From:       %s\n", email.From)
	fmt.Fprintf(&b, "To:         %s\n", email.To)
	fmt.Fprintf(&b, "Subject:    %s\n", email.Subject)
	fmt.Fprintf(&b, "Date:       %s\n", email.Date)
	fmt.Fprintf(&b, "Message-ID: %s\n", email.MessageID)
	b.WriteString(strings.Repeat("─", 60) + "\n")
	b.WriteString(analysis.Highlight(email.Body, email.IsLegitimate))
	b.WriteString("\n" + strings.Repeat("─", 60) + "\n")
	if layer >= site.Layers {
		b.WriteString("Last layer. 'dig' documents your findings.\n")
	}
	return b.String()
}

func renderTools(tools []models.ToolInfo, mode format.Mode) string {
	tb := format.NewTable(mode)
	tb.Title("🧰 Forensics Toolkit")
	tb.Header("ID", "Tool", "Description", "Best used for")
	for _, t := range tools {
		tb.Row(string(t.ID), t.Emoji+" "+t.Name, t.Description, t.Uses)
	}
	tb.Columns(
		format.ColumnConfig{Number: 3, MaxWidth: 40},
		format.ColumnConfig{Number: 4, MaxWidth: 40},
	)
	return tb.String()
}

func renderResult(tool models.ToolInfo, res analysis.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n🔍 %s Analysis\n", tool.Name)
	for _, s := range res.Findings {
		fmt.Fprintf(&b, "\n%s\n", s.Title)
		for _, l := range s.Lines {
			fmt.Fprintf(&b, "  %s\n", l)
		}
		for _, l := range s.Bullets {
			fmt.Fprintf(&b, "  • %s\n", l)
		}
	}
	if res.Suspicious() {
		fmt.Fprintf(&b, "\n⚠️  %d threat indicator(s) found\n", len(res.Threats))
	} else {
		b.WriteString("\n✅ No threat indicators found\n")
	}
	b.WriteString("\n")
	return b.String()
}

func discoveryIcon(d models.Discovery) string {
	switch {
	case d.Kind == models.DiscoveryThreat:
		return "🚨"
	case d.IsCorrect:
		return "✅"
	}
	return "❌"
}

func renderDiscovery(d models.Discovery) string {
	return fmt.Sprintf("%s Layer %d: %s", discoveryIcon(d), d.Layer, d.Description)
}

func renderLog(ds []models.Discovery) string {
	if len(ds) == 0 {
		return "No discoveries yet. Use your tools to analyze the email layers.\n"
	}
	var b strings.Builder
	for _, d := range ds {
		b.WriteString(renderDiscovery(d) + "\n")
	}
	return b.String()
}

func renderArtifacts(cat *catalog.Catalog, arts []models.UnlockedArtifact, mode format.Mode) string {
	if len(arts) == 0 {
		return "🏺 No Artifacts Discovered Yet\n" +
			"Begin excavating email sites to uncover digital artifacts and evidence of phishing attempts.\n"
	}
	tb := format.NewTable(mode)
	tb.Title("🏺 Artifact Collection")
	tb.Header("Artifact", "Rarity", "Discovered at", "Evidence")
	for _, a := range arts {
		t := cat.Describe(a.Type)
		tb.Row(t.Icon+" "+t.Name, string(t.Rarity), fmt.Sprintf("%s - Layer %d", a.Site, a.Layer), format.Truncate(a.Evidence, 48))
	}
	return tb.String() + "\n"
}

func renderStats(st models.GameState, site *models.Site, accuracy int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Experience level: %s\n", st.ExperienceLevel)
	fmt.Fprintf(&b, "Artifacts found:  %d\n", st.ArtifactsFound)
	fmt.Fprintf(&b, "Sites excavated:  %d\n", st.SitesExcavated)
	if site != nil {
		fmt.Fprintf(&b, "Current dig:      %s, layer %d of %d, accuracy %s over %d decisions\n",
			site.Name, st.CurrentLayer, site.Layers, format.Percent(accuracy), len(st.Discoveries))
	}
	return b.String()
}

func renderHistory(hist []models.Excavation, mode format.Mode) string {
	if len(hist) == 0 {
		return "No completed excavations yet.\n"
	}
	tb := format.NewTable(mode)
	tb.Title("📜 Excavation Journal")
	tb.Header("Completed", "Site", "Accuracy", "Correct", "False +", "Artifacts", "Rank")
	for _, e := range hist {
		tb.Row(
			e.CompletedAt.Local().Format("2006-01-02 15:04"),
			e.SiteName,
			format.Percent(e.Accuracy),
			fmt.Sprintf("%d/%d", e.Correct, e.Discoveries),
			e.FalsePositives,
			e.ArtifactsFound,
			e.ExperienceLevel,
		)
	}
	artifacts := 0
	for _, e := range hist {
		artifacts += e.ArtifactsFound
	}
	tb.Footer(fmt.Sprintf("%d digs", len(hist)), "", "", "", "", artifacts, "")
	tb.Columns(format.ColumnConfig{Number: 3, Align: format.AlignRight})
	return tb.String() + "\n"
}

func renderSlots(slots []session.SlotInfo, mode format.Mode) string {
	if len(slots) == 0 {
		return "No saved games yet.\n"
	}
	tb := format.NewTable(mode)
	tb.Title("💾 Save Slots")
	tb.Header("Slot", "Rank", "Artifacts", "Sites", "")
	for _, sl := range slots {
		active := ""
		if sl.Active {
			active = "◀ playing"
		}
		if sl.Corrupt {
			tb.Row(sl.Key, "(unreadable)", "", "", active)
			continue
		}
		tb.Row(sl.Key, sl.ExperienceLevel, sl.ArtifactsFound, sl.SitesExcavated, active)
	}
	return tb.String() + "\n"
}

const guide = `How to dig
  1. 'sites' lists the excavation sites; 'select <site-id>' starts one.
  2. Each layer holds one email. 'show' prints it again.
  3. 'use <tool-id>' runs a forensics tool ('tools' lists them).
  4. Decide: 'flag' if the email is phishing, 'safe' if it is legitimate.
     Correct threat calls unlock artifacts for your collection.
  5. 'dig' moves to the next layer; on the last one it documents your
     findings and completes the site.

Suspicious text in a phishing email body is marked: **urgent words**
and [[links or requests for credentials]].
`
