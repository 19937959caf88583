// internal/scraper/rating.go
package scraper

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	ratingTextRe = regexp.MustCompile(`(?i)(\d+\.?\d*)\s*/\s*5|(\d+\.?\d*)\s*out of\s*5|(\d+\.?\d*)\s*stars`)
	ariaRatingRe = regexp.MustCompile(`(?i)star|rating`)
	numberRe     = regexp.MustCompile(`\d+\.?\d*`)
)

// ExtractRating derives a 0-5 rating from a review card. Signals are tried
// in fixed priority order: visible text, accessibility labels, then the
// card's own class names. Returns false when no signal yields a number.
func ExtractRating(card *goquery.Selection) (float64, bool) {
	if m := ratingTextRe.FindStringSubmatch(card.Text()); m != nil {
		for _, group := range m[1:] {
			if group == "" {
				continue
			}
			if v, err := strconv.ParseFloat(group, 64); err == nil {
				return v, true
			}
		}
	}

	if v, ok := ratingFromAriaLabel(card); ok {
		return v, true
	}

	return ratingFromClassNames(card)
}

// ratingFromAriaLabel takes the first descendant whose aria-label mentions
// stars or ratings and extracts the first numeric token from that label.
// Only the first matching element is considered.
func ratingFromAriaLabel(card *goquery.Selection) (float64, bool) {
	var rating float64
	var found bool
	card.Find("[aria-label]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		label, _ := s.Attr("aria-label")
		if !ariaRatingRe.MatchString(label) {
			return true
		}
		if token := numberRe.FindString(label); token != "" {
			if v, err := strconv.ParseFloat(token, 64); err == nil {
				rating, found = v, true
			}
		}
		return false
	})
	return rating, found
}

// ratingFromClassNames approximates a star count from class tokens when a
// site renders ratings purely as styled star elements.
func ratingFromClassNames(card *goquery.Selection) (float64, bool) {
	class, exists := card.Attr("class")
	if !exists {
		return 0, false
	}
	lower := strings.ToLower(class)
	if !strings.Contains(lower, "star") {
		return 0, false
	}
	stars := 1.0
	for _, token := range strings.Fields(lower) {
		if strings.Contains(token, "filled") {
			stars++
		}
		if strings.Contains(token, "active") {
			stars++
		}
	}
	if stars > 5.0 {
		stars = 5.0
	}
	return stars, true
}
