// internal/scraper/extractor.go
package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"reviewscraper/internal/model"
)

// fieldCandidate is one guess for locating a field inside a review card:
// a set of tag names plus an optional class-attribute pattern. Review sites
// rarely expose stable markup, so each field carries an ordered list of
// guesses and the first hit in document order wins.
type fieldCandidate struct {
	tags  []string
	class *regexp.Regexp
}

// fieldSpec is the ordered candidate list for one record field.
type fieldSpec []fieldCandidate

// recordSpec is the declarative mapping from a review card to a Review.
// One generic extraction procedure consumes these; only the candidate
// tables differ per source.
type recordSpec struct {
	title    fieldSpec
	body     fieldSpec
	date     fieldSpec
	reviewer fieldSpec
	info     fieldSpec

	// fallbackDate substitutes for cards that carry no date element at all.
	fallbackDate string
}

// find returns the first descendant matching this candidate, or nil.
func (fc fieldCandidate) find(root *goquery.Selection) *goquery.Selection {
	var match *goquery.Selection
	root.Find(strings.Join(fc.tags, ", ")).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if fc.class != nil {
			class, _ := s.Attr("class")
			if !fc.class.MatchString(class) {
				return true
			}
		}
		match = s
		return false
	})
	return match
}

// findText walks the candidate list in order and returns the trimmed visible
// text of the first match.
func (fs fieldSpec) findText(root *goquery.Selection) (string, bool) {
	for _, cand := range fs {
		if sel := cand.find(root); sel != nil {
			return strings.TrimSpace(sel.Text()), true
		}
	}
	return "", false
}

// extractReview maps one review card to a Review using the source's record
// spec. Missing fields come back empty rather than failing the card.
func extractReview(card *goquery.Selection, spec recordSpec) *model.Review {
	title, _ := spec.title.findText(card)
	body, _ := spec.body.findText(card)
	reviewer, _ := spec.reviewer.findText(card)

	dateText, ok := spec.date.findText(card)
	if !ok {
		dateText = spec.fallbackDate
	}

	review := &model.Review{
		Title:        model.Truncate(title, model.MaxTitleLen),
		Description:  model.Truncate(body, model.MaxDescriptionLen),
		Date:         NormalizeDate(dateText),
		ReviewerName: model.Truncate(reviewer, model.MaxReviewerLen),
	}

	if rating, ok := ExtractRating(card); ok {
		review.Rating = &rating
	}

	if len(spec.info) > 0 {
		if info, ok := spec.info.findText(card); ok && strings.Contains(strings.ToLower(info), "role") {
			review.ReviewerRole = info
		}
	}

	return review
}

// cardCandidate locates review cards within a page: a base selector plus an
// optional class-attribute pattern applied to each match.
type cardCandidate struct {
	selector string
	class    *regexp.Regexp
}

// findCards tries each candidate in order and returns all cards matched by
// the first candidate that yields any.
func findCards(doc *goquery.Document, candidates []cardCandidate) []*goquery.Selection {
	for _, cand := range candidates {
		var cards []*goquery.Selection
		doc.Find(cand.selector).Each(func(_ int, s *goquery.Selection) {
			if cand.class != nil {
				class, _ := s.Attr("class")
				if !cand.class.MatchString(class) {
					return
				}
			}
			cards = append(cards, s)
		})
		if len(cards) > 0 {
			return cards
		}
	}
	return nil
}

// hasControl reports whether a page contains the given control element, such
// as a next-page link.
func hasControl(doc *goquery.Document, cand cardCandidate) bool {
	found := false
	doc.Find(cand.selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if cand.class != nil {
			class, _ := s.Attr("class")
			if !cand.class.MatchString(class) {
				return true
			}
		}
		found = true
		return false
	})
	return found
}
