// Package chrome holds the page decorations that do not depend on the
// ledger: the current-date banner and the cosmetic logout.
package chrome

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// LogoutMessage is the acknowledgment shown after logging out.
const LogoutMessage = "Logged out successfully!"

var (
	// DefaultTag is used when nothing better can be resolved.
	DefaultTag = language.MustParse("en-IN")

	supported = []language.Tag{
		DefaultTag,
		language.AmericanEnglish,
		language.BritishEnglish,
		language.Italian,
	}
	matcher = language.NewMatcher(supported)
)

var (
	italianWeekdays = [...]string{"domenica", "lunedì", "martedì", "mercoledì", "giovedì", "venerdì", "sabato"}
	italianMonths   = [...]string{"gennaio", "febbraio", "marzo", "aprile", "maggio", "giugno", "luglio", "agosto", "settembre", "ottobre", "novembre", "dicembre"}
)

// ParseTag parses a BCP 47 tag, falling back to DefaultTag.
func ParseTag(s string) language.Tag {
	tag, err := language.Parse(strings.TrimSpace(s))
	if err != nil {
		return DefaultTag
	}
	return Match(tag)
}

// Match returns the supported tag closest to tag, or DefaultTag.
func Match(tags ...language.Tag) language.Tag {
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return DefaultTag
	}
	return supported[idx]
}

// ResolveTag picks the display locale from an Accept-Language header.
func ResolveTag(acceptLanguage string, fallback language.Tag) language.Tag {
	acceptLanguage = strings.TrimSpace(acceptLanguage)
	if acceptLanguage == "" {
		return fallback
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return fallback
	}
	return supported[idx]
}

// LongDate renders t as weekday, day, month and year in the conventions of
// tag, e.g. "Sunday, 18 October 2026" for en-IN.
func LongDate(t time.Time, tag language.Tag) string {
	base, _ := tag.Base()
	region, _ := tag.Region()
	switch {
	case base.String() == "it":
		return fmt.Sprintf("%s %d %s %d", italianWeekdays[t.Weekday()], t.Day(), italianMonths[t.Month()-1], t.Year())
	case base.String() == "en" && region.String() == "US":
		return t.Format("Monday, January 2, 2006")
	default:
		return t.Format("Monday, 2 January 2006")
	}
}
