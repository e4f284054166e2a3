package analysis

import (
	"regexp"
	"strings"
)

var (
	linkPattern       = regexp.MustCompile(`(?i)https?://\S+`)
	urgencyPattern    = regexp.MustCompile(`(?i)urgent|immediate|quickly|now|asap|deadline|expires|limited time|act fast`)
	threatPattern     = regexp.MustCompile(`(?i)suspend|close|terminate|delete|remove|block`)
	actionPattern     = regexp.MustCompile(`(?i)click|verify|confirm|update|download|install`)
	infoRequestSource = `password|username|social security|bank account|credit card|verify|confirm|update`

	highlightPattern = regexp.MustCompile(`(?i)(https?://\S+)|(urgent|immediate|quickly|now|asap|deadline|expires|limited time|act fast)|(` + infoRequestSource + `)`)
)

// ExtractLinks returns the http(s) URLs found in body, in order.
func ExtractLinks(body string) []string {
	return linkPattern.FindAllString(body, -1)
}

// CountUrgency counts urgency words such as "urgent" or "deadline".
func CountUrgency(body string) int {
	return len(urgencyPattern.FindAllStringIndex(body, -1))
}

// CountThreatLanguage counts threat words such as "suspend" or "block".
func CountThreatLanguage(body string) int {
	return len(threatPattern.FindAllStringIndex(body, -1))
}

// CountActionRequests counts call-to-action words such as "click" or "verify".
func CountActionRequests(body string) int {
	return len(actionPattern.FindAllStringIndex(body, -1))
}

// Highlight marks suspicious fragments of a phishing email body for display.
// Links and requests for information are wrapped in [[...]], urgency words
// in **...**. Legitimate bodies are returned unchanged.
func Highlight(body string, legitimate bool) string {
	if legitimate {
		return body
	}

	var b strings.Builder
	last := 0
	for _, m := range highlightPattern.FindAllStringSubmatchIndex(body, -1) {
		b.WriteString(body[last:m[0]])
		frag := body[m[0]:m[1]]
		switch {
		case m[4] >= 0:
			b.WriteString("**" + frag + "**")
		default:
			b.WriteString("[[" + frag + "]]")
		}
		last = m[1]
	}
	b.WriteString(body[last:])
	return b.String()
}
