package display

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
)

// DefaultLocale is used when no locale is configured or the configured one is unsupported.
const DefaultLocale = "en"

var (
	supportedLocales = []language.Tag{
		language.English,
		language.BrazilianPortuguese,
	}
	localeMatcher = language.NewMatcher(supportedLocales)
)

type dateLayout struct {
	months  [12]string
	pattern string // day, month, year, hour, minute
}

var layouts = map[language.Tag]dateLayout{
	language.English: {
		months: [12]string{
			"January", "February", "March", "April", "May", "June",
			"July", "August", "September", "October", "November", "December",
		},
		pattern: "%02d %s %d at %02d:%02d",
	},
	language.BrazilianPortuguese: {
		months: [12]string{
			"janeiro", "fevereiro", "março", "abril", "maio", "junho",
			"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
		},
		pattern: "%02d de %s de %d às %02d:%02d",
	},
}

// Formatter renders timestamps in a fixed long form for one locale and time zone
type Formatter struct {
	locale   language.Tag
	location *time.Location
}

// NewFormatter creates a formatter for the given BCP 47 locale and time zone. Unknown
// locales fall back to English, a nil location to UTC.
func NewFormatter(locale string, location *time.Location) *Formatter {
	if location == nil {
		location = time.UTC
	}
	return &Formatter{
		locale:   matchLocale(locale),
		location: location,
	}
}

// Locale returns the resolved locale tag
func (f *Formatter) Locale() string {
	return f.locale.String()
}

// FormatDate renders raw as e.g. "04 July 2025 at 14:58". Values without a zone are read
// in the formatter's time zone. If raw is not a timestamp it is returned unchanged.
func (f *Formatter) FormatDate(raw string) string {
	t, err := ParseTimestampIn(raw, f.location)
	if err != nil {
		return raw
	}
	return f.Format(t)
}

// Format renders t in the formatter's locale and time zone
func (f *Formatter) Format(t time.Time) string {
	t = t.In(f.location)
	layout := layouts[f.locale]
	return fmt.Sprintf(layout.pattern, t.Day(), layout.months[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}

var defaultFormatter = NewFormatter(DefaultLocale, time.UTC)

// FormatDate formats raw with the default English/UTC formatter
func FormatDate(raw string) string {
	return defaultFormatter.FormatDate(raw)
}

func matchLocale(locale string) language.Tag {
	tag, err := language.Parse(locale)
	if err != nil {
		return language.English
	}
	_, index, confidence := localeMatcher.Match(tag)
	if confidence == language.No {
		return language.English
	}
	return supportedLocales[index]
}
