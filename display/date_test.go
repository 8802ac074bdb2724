package display

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDate(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*60*60)

	tests := []struct {
		name     string
		locale   string
		location *time.Location
		raw      string
		expected string
	}{
		{
			name:     "english UTC",
			locale:   "en",
			raw:      "2025-07-04T14:58:47.167Z",
			expected: "04 July 2025 at 14:58",
		},
		{
			name:     "regional english falls back to english",
			locale:   "en-GB",
			raw:      "2025-12-31T23:05:00Z",
			expected: "31 December 2025 at 23:05",
		},
		{
			name:     "brazilian portuguese",
			locale:   "pt-BR",
			raw:      "2025-07-04T14:58:47.167Z",
			expected: "04 de julho de 2025 às 14:58",
		},
		{
			name:     "portuguese in local time zone",
			locale:   "pt",
			location: saoPaulo,
			raw:      "2025-03-01T01:30:00Z",
			expected: "28 de fevereiro de 2025 às 22:30",
		},
		{
			name:     "zoneless value keeps its wall time",
			locale:   "en",
			location: saoPaulo,
			raw:      "2025-07-04 14:58:47",
			expected: "04 July 2025 at 14:58",
		},
		{
			name:     "unsupported locale uses english",
			locale:   "ja",
			raw:      "2025-07-03T15:36:29.500Z",
			expected: "03 July 2025 at 15:36",
		},
		{
			name:     "garbage locale uses english",
			locale:   "!!",
			raw:      "2025-07-03T15:36:29.500Z",
			expected: "03 July 2025 at 15:36",
		},
		{
			name:     "unparseable input returned unchanged",
			locale:   "pt-BR",
			raw:      "not-a-date",
			expected: "not-a-date",
		},
		{
			name:     "sentinel returned unchanged",
			locale:   "en",
			raw:      "No expiry date is set as the package is still used/locked.",
			expected: "No expiry date is set as the package is still used/locked.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFormatter(tt.locale, tt.location)
			assert.Equal(t, tt.expected, f.FormatDate(tt.raw))
		})
	}
}

func TestPackageLevelFormatDate(t *testing.T) {
	assert.Equal(t, "not-a-date", FormatDate("not-a-date"))
	assert.Equal(t, "04 July 2025 at 14:58", FormatDate("2025-07-04T14:58:47.167Z"))
}

func TestFormatterLocale(t *testing.T) {
	assert.Equal(t, "pt-BR", NewFormatter("pt-BR", nil).Locale())
	assert.Equal(t, "en", NewFormatter("", nil).Locale())
}
