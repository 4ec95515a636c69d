package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_Keywords(t *testing.T) {
	n := NewNormalizer(nil)

	tests := []struct {
		raw  string
		want string
	}{
		{"Account Issue", "Account Management"},
		{"billing question", "Account Management"},
		{"Software Installation", "Software"},
		{"application crash", "Software"},
		{"Hardware Failure", "Hardware"},
		{"Printer not working", "Hardware"},
		{"Network outage", "Network"},
		{"wifi down", "Network"},
		{"no internet access", "Network"},
		{"Server migration", "Server"},
		{"cloud storage", "Server"},
		{"Security incident", "Security"},
		{"password reset", "Security"},
		{"Something else entirely", DefaultBucket},
		{"", DefaultBucket},
	}
	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.want, n.Normalize(tc.raw))
		})
	}
}

func TestNormalize_FirstMatchingGroupWins(t *testing.T) {
	n := NewNormalizer(nil)
	// "billing software" hits the account/billing group before software.
	assert.Equal(t, "Account Management", n.Normalize("billing software"))
}

func TestNormalize_OverridesBeforeKeywords(t *testing.T) {
	n := NewNormalizer(map[string]string{
		"Remote Support":   "Level 1",
		"Network Hardware": "Network",
	})

	assert.Equal(t, "Level 1", n.Normalize("Remote Support"))
	// Override wins even though "hardware" would keyword-match first.
	assert.Equal(t, "Network", n.Normalize("Network Hardware"))
	// Overrides are exact raw-label matches, not keyword matches.
	assert.Equal(t, DefaultBucket, n.Normalize("remote support"))
}
