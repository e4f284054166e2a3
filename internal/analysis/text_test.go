package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	body := "URGENT: click to verify now or we will suspend and block your account. Deadline expires today."

	assert.Equal(t, 4, CountUrgency(body))        // URGENT, now, Deadline, expires
	assert.Equal(t, 2, CountThreatLanguage(body)) // suspend, block
	assert.Equal(t, 2, CountActionRequests(body)) // click, verify
	assert.Empty(t, ExtractLinks(body))
}

func TestHighlight(t *testing.T) {
	body := "Act quickly: verify at https://evil.example/verify today"

	assert.Equal(t, body, Highlight(body, true))
	assert.Equal(t,
		"Act **quickly**: [[verify]] at [[https://evil.example/verify]] today",
		Highlight(body, false))
}

func TestHighlight_NoMatches(t *testing.T) {
	assert.Equal(t, "Hello team.", Highlight("Hello team.", false))
}
