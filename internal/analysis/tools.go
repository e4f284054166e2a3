package analysis

import (
	"fmt"
	"math"
	"time"

	"github.com/dmitrijs2005/emaildig/internal/models"
)

// EmailDateLayout is the timestamp format used by catalog emails.
const EmailDateLayout = "2006-01-02 15:04:05"

type headerAnalyzer struct{}

func (headerAnalyzer) Tool() models.ToolID { return models.ToolHeaderAnalyzer }

func (headerAnalyzer) Analyze(email models.Email) Result {
	const title = "🔍 Header Analysis Results"

	if email.IsLegitimate {
		return Result{Findings: []Section{{
			Title: title,
			Lines: []string{
				"Sender Authentication: PASSED",
				"SPF Record: Valid",
				"DKIM Signature: Valid",
				"Headers appear legitimate with proper authentication.",
			},
		}}}
	}

	r := Result{Threats: []string{TagSpoofedIdentity}}
	if headerAuthFailures[email.Threat] {
		r.Findings = []Section{
			{
				Title: title,
				Lines: []string{
					"Sender Authentication: FAILED",
					"SPF Record: Not found for sending domain",
					"DKIM Signature: Invalid or missing",
					"Domain Mismatch: Sending domain differs from claimed organization",
				},
			},
			{
				Title: "⚠️ Red Flags Detected",
				Bullets: []string{
					"Domain spoofing attempt detected",
					"Missing or invalid authentication records",
					"Suspicious routing path through unknown servers",
				},
			},
		}
		return r
	}

	r.Findings = []Section{{
		Title: title,
		Lines: []string{
			"Sender Authentication: SUSPICIOUS",
			"Headers show potential inconsistencies that warrant further investigation.",
		},
	}}
	return r
}

type linkInspector struct{}

func (linkInspector) Tool() models.ToolID { return models.ToolLinkInspector }

func (linkInspector) Analyze(email models.Email) Result {
	const title = "🔗 Link Analysis Results"
	links := ExtractLinks(email.Body)

	if email.IsLegitimate {
		s := Section{Title: title}
		if len(links) == 0 {
			s.Lines = []string{"No links detected in this email."}
		} else {
			s.Lines = []string{
				fmt.Sprintf("Links Found: %d", len(links)),
				"All links appear to point to legitimate domains.",
			}
		}
		return Result{Findings: []Section{s}}
	}

	r := Result{Threats: hypotheses(linkTags, email.Threat, TagSocialEngineering)}
	if len(links) == 0 {
		r.Findings = []Section{
			{Title: title, Lines: []string{"No links detected in this email."}},
			{
				Title: "⚠️ Security Risks",
				Bullets: []string{
					"Request relies on the reader acting outside the email",
					"Payment or data is requested through a side channel",
				},
			},
		}
		return r
	}

	found := Section{Title: title, Lines: []string{fmt.Sprintf("Links Found: %d", len(links))}}
	for _, l := range links {
		found.Bullets = append(found.Bullets, "SUSPICIOUS: "+l)
	}
	r.Findings = []Section{
		found,
		{
			Title: "⚠️ Security Risks",
			Bullets: []string{
				"Domain does not match legitimate organization",
				"Links may redirect to malicious sites",
				"Potential credential harvesting destination",
			},
		},
	}
	return r
}

type linguisticScanner struct{}

func (linguisticScanner) Tool() models.ToolID { return models.ToolLinguisticScanner }

func (linguisticScanner) Analyze(email models.Email) Result {
	const title = "📝 Linguistic Analysis Results"

	if email.IsLegitimate {
		return Result{Findings: []Section{{
			Title: title,
			Lines: []string{
				"Language patterns appear professional and legitimate.",
				"No aggressive urgency tactics or manipulation detected.",
			},
		}}}
	}

	return Result{
		Findings: []Section{
			{
				Title: title,
				Lines: []string{
					fmt.Sprintf("Urgency Indicators: %d found", CountUrgency(email.Body)),
					fmt.Sprintf("Threat Language: %d found", CountThreatLanguage(email.Body)),
					fmt.Sprintf("Action Requests: %d found", CountActionRequests(email.Body)),
				},
			},
			{
				Title: "⚠️ Social Engineering Tactics",
				Bullets: []string{
					"High-pressure language designed to rush decisions",
					"Fear-based messaging about consequences",
					"Requests for immediate action",
				},
			},
		},
		Threats: hypotheses(linguisticTags, email.Threat, TagSocialEngineering),
	}
}

type timelineMapper struct {
	reference time.Time
}

func (timelineMapper) Tool() models.ToolID { return models.ToolTimelineMapper }

func (m timelineMapper) Analyze(email models.Email) Result {
	s := Section{Title: "🕰️ Timeline Analysis Results"}
	s.Lines = append(s.Lines, "Email Timestamp: "+email.Date)

	sent, err := time.ParseInLocation(EmailDateLayout, email.Date, time.UTC)
	offHours := false
	if err != nil {
		s.Lines = append(s.Lines, "Time Since Sent: unknown (unreadable timestamp)")
	} else {
		hours := math.Round(m.reference.Sub(sent).Hours())
		s.Lines = append(s.Lines,
			fmt.Sprintf("Time Since Sent: %.0f hours ago", hours),
			fmt.Sprintf("Send Time: %d:%02d", sent.Hour(), sent.Minute()),
		)
		offHours = sent.Hour() < 6 || sent.Hour() > 22
	}

	r := Result{Findings: []Section{s}}
	if email.IsLegitimate {
		return r
	}

	if offHours {
		r.Findings = append(r.Findings, Section{
			Title: "⚠️ Timing Anomalies",
			Lines: []string{"Email sent outside normal business hours, which is suspicious for official communications."},
		})
	} else {
		r.Findings = append(r.Findings, Section{
			Title: "⚠️ Sequence Anomalies",
			Lines: []string{"Message arrives as a follow-up in an escalating thread, a common campaign timing pattern."},
		})
	}
	r.Threats = hypotheses(timelineTags, email.Threat, TagSocialEngineering)
	return r
}

type domainResearcher struct{}

func (domainResearcher) Tool() models.ToolID { return models.ToolDomainResearcher }

func (domainResearcher) Analyze(email models.Email) Result {
	const title = "🌐 Domain Analysis Results"
	domain := email.SenderDomain()

	if email.IsLegitimate {
		return Result{Findings: []Section{{
			Title: title,
			Lines: []string{
				"Sender Domain: " + domain,
				"Domain Age: Established (5+ years)",
				"Reputation Score: Excellent (9.5/10)",
				"Domain has legitimate business presence and good reputation.",
			},
		}}}
	}

	return Result{
		Findings: []Section{
			{
				Title: title,
				Lines: []string{
					"Sender Domain: " + domain,
					"Domain Age: Recently registered (suspicious)",
					"Reputation Score: Poor (0.2/10)",
					"Registration Country: Unknown/Privacy Protected",
				},
			},
			{
				Title: "⚠️ Domain Red Flags",
				Bullets: []string{
					"Domain designed to mimic legitimate organization",
					"No established web presence or business records",
					"Registration privacy protection enabled",
				},
			},
		},
		Threats: []string{TagSpoofedIdentity},
	}
}

type patternDetector struct{}

func (patternDetector) Tool() models.ToolID { return models.ToolPatternDetector }

func (patternDetector) Analyze(email models.Email) Result {
	const title = "📊 Pattern Analysis Results"

	if email.IsLegitimate {
		return Result{Findings: []Section{{
			Title: title,
			Lines: []string{
				"No malicious patterns detected in this email.",
				"Communication follows legitimate business email patterns.",
			},
		}}}
	}

	return Result{
		Findings: []Section{
			{
				Title: title,
				Lines: []string{
					"Attack Pattern: " + lookupOr(patternNames, email.Threat, "Generic Phishing"),
					"Campaign Indicators: Matches known attack templates",
					"Target Profile: " + lookupOr(targetProfiles, email.Threat, "General population"),
				},
			},
			{
				Title: "⚠️ Campaign Characteristics",
				Bullets: []string{
					"Part of a larger coordinated attack campaign",
					"Uses social engineering and urgency tactics",
					"Targets specific user behaviors and responses",
				},
			},
		},
		Threats: hypotheses(patternTags, email.Threat, TagSocialEngineering),
	}
}
