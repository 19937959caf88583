// internal/scraper/dates.go
package scraper

import (
	"regexp"
	"strings"
	"time"
)

const canonicalDateLayout = "2006-01-02"

// datePattern pairs a substring pattern with the layouts used to parse the
// matched text. Layout variants cover optional commas and short month names.
type datePattern struct {
	re      *regexp.Regexp
	layouts []string
}

var datePatterns = []datePattern{
	{regexp.MustCompile(`\d{4}-\d{2}-\d{2}`), []string{"2006-01-02"}},
	{regexp.MustCompile(`\d{2}/\d{2}/\d{4}`), []string{"02/01/2006"}},
	{regexp.MustCompile(`\d{2}-\d{2}-\d{4}`), []string{"02-01-2006"}},
	{regexp.MustCompile(`(?i)[a-z]+\s+\d{1,2},?\s+\d{4}`), []string{"January 2, 2006", "January 2 2006", "Jan 2, 2006", "Jan 2 2006"}},
	{regexp.MustCompile(`(?i)\d{1,2}\s+[a-z]+\s+\d{4}`), []string{"2 January 2006", "2 Jan 2006"}},
}

// fallbackLayouts are tried against the whole trimmed input when no substring
// pattern yields a parseable date. Day-first comes before month-first, so
// ambiguous slash dates resolve day-first.
var fallbackLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// NormalizeDate converts free-form date text to canonical YYYY-MM-DD. Input
// that cannot be recognized is returned trimmed but otherwise unchanged;
// empty input yields an empty string.
func NormalizeDate(text string) string {
	if text == "" {
		return ""
	}
	text = strings.TrimSpace(text)

	for _, p := range datePatterns {
		match := p.re.FindString(text)
		if match == "" {
			continue
		}
		for _, layout := range p.layouts {
			if t, err := time.Parse(layout, titleCaseWords(match)); err == nil {
				return t.Format(canonicalDateLayout)
			}
		}
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, titleCaseWords(text)); err == nil {
			return t.Format(canonicalDateLayout)
		}
	}

	return text
}

// titleCaseWords normalizes the case of alphabetic words so month names in
// any case ("JUNE", "june") satisfy time.Parse, which is case-sensitive.
func titleCaseWords(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	startOfWord := true
	for _, r := range s {
		isAlpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		switch {
		case isAlpha && startOfWord:
			b.WriteString(strings.ToUpper(string(r)))
			startOfWord = false
		case isAlpha:
			b.WriteString(strings.ToLower(string(r)))
		default:
			b.WriteRune(r)
			startOfWord = true
		}
	}
	return b.String()
}

// IsInRange reports whether a canonical date falls within [start, end]
// inclusive. Empty or unparseable dates are always in range, so records with
// unusable dates are kept rather than silently dropped.
func IsInRange(date, start, end string) bool {
	if date == "" {
		return true
	}
	d, err := time.Parse(canonicalDateLayout, date)
	if err != nil {
		return true
	}
	s, err := time.Parse(canonicalDateLayout, start)
	if err != nil {
		return true
	}
	e, err := time.Parse(canonicalDateLayout, end)
	if err != nil {
		return true
	}
	return !d.Before(s) && !d.After(e)
}
