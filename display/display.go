// Package display turns package metadata into operator facing strings: file sizes,
// localized timestamps and expiry badges. Every function here is total; malformed
// input degrades to a readable fallback instead of an error.
package display

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/sorenmh/infrastructure-shared/package-browser/models"
)

// Severity classifies how close a package is to expiring
type Severity string

const (
	SeverityNone    Severity = "none"
	SeverityOK      Severity = "ok"
	SeverityWarning Severity = "warning"
	SeverityExpired Severity = "expired"
	SeverityUnknown Severity = "unknown"
)

// WarningWindowDays is the number of days before expiry at which a package is flagged.
const WarningWindowDays = 7

// noExpiryMarker matches the locked sentinel and any rewording the API uses for it.
const noExpiryMarker = "No expiry date"

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// Expiry is the result of ClassifyExpiry
type Expiry struct {
	Label    string   `json:"label"`
	Severity Severity `json:"severity"`
}

// Model converts the expiry into its API representation
func (e Expiry) Model() models.Expiry {
	return models.Expiry{Label: e.Label, Severity: string(e.Severity)}
}

// FormatFileSize renders a byte count using 1024-based units with two decimals,
// e.g. 165696000 -> "158.02 MB".
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}

	i := 0
	for unit := int64(1024); i < len(sizeUnits)-1 && bytes >= unit; unit *= 1024 {
		i++
	}

	value := float64(bytes) / math.Pow(1024, float64(i))
	return fmt.Sprintf("%.2f %s", value, sizeUnits[i])
}

// ParseTimestamp parses the timestamp formats the packages API emits. Values
// without a zone are read as UTC.
func ParseTimestamp(raw string) (time.Time, error) {
	return ParseTimestampIn(raw, time.UTC)
}

// ParseTimestampIn is like ParseTimestamp but reads values without a zone in loc.
func ParseTimestampIn(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	layouts := []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05.999999999",
		"2006-01-02 15:04:05.999999999Z07:00",
		"2006-01-02 15:04:05.999999999",
		"2006-01-02",
	}

	var lastErr error
	for _, layout := range layouts {
		t, err := time.ParseInLocation(layout, raw, loc)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// ClassifyExpiry turns an expiryDate value into a badge label and severity,
// measured against now. An expiryDate without a zone is read in now's location.
func ClassifyExpiry(expiryDate string, now time.Time) Expiry {
	if strings.Contains(expiryDate, noExpiryMarker) {
		return Expiry{Label: "no expiration", Severity: SeverityNone}
	}

	expiry, err := ParseTimestampIn(expiryDate, now.Location())
	if err != nil {
		return Expiry{Label: "invalid date", Severity: SeverityUnknown}
	}

	days := int(math.Ceil(expiry.Sub(now).Hours() / 24))
	switch {
	case days <= 0:
		return Expiry{Label: "expired", Severity: SeverityExpired}
	case days <= WarningWindowDays:
		return Expiry{Label: expiresIn(days), Severity: SeverityWarning}
	default:
		return Expiry{Label: expiresIn(days), Severity: SeverityOK}
	}
}

func expiresIn(days int) string {
	if days == 1 {
		return "expires in 1 day"
	}
	return fmt.Sprintf("expires in %d days", days)
}
