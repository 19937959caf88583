// internal/scraper/profiles.go
package scraper

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"reviewscraper/internal/model"
)

// sourceProfile describes everything site-specific about one review source:
// where to search, how to recognize a product link, how to reach the reviews
// listing, how to locate cards, and how to map a card to a record. The
// engine itself is source-agnostic.
type sourceProfile struct {
	source  model.Source
	baseURL string

	searchPath  func(company string) string
	productHref func(href string) bool
	reviewsURL  func(productURL string) string

	maxPages int

	cards     []cardCandidate
	cardLimit int
	record    recordSpec

	// minPageCards: a page with fewer cards is treated as the last page.
	minPageCards int
	// nextControl: pagination stops when this element is absent.
	nextControl *cardCandidate

	// samples synthesizes placeholder records when a source yields nothing
	// real. Only SoftwareAdvice carries this demo behavior.
	samples func(company string) []*model.Review
}

func (p sourceProfile) searchURL(company string) string {
	return p.baseURL + p.searchPath(company)
}

func g2Profile() sourceProfile {
	return sourceProfile{
		source:  model.SourceG2,
		baseURL: "https://www.g2.com",
		searchPath: func(company string) string {
			return "/search?utf8=%E2%9C%93&query=" + url.QueryEscape(company)
		},
		productHref: func(href string) bool {
			return strings.Contains(href, "/products/") && !strings.Contains(href, "/reviews")
		},
		reviewsURL: func(productURL string) string {
			return productURL + "/reviews"
		},
		maxPages:     3,
		minPageCards: 10,
		cards: []cardCandidate{
			{selector: `div[data-testid="review"]`},
			{selector: "article", class: regexp.MustCompile(`review`)},
			{selector: "div", class: regexp.MustCompile(`review-card`)},
		},
		record: recordSpec{
			title:    fieldSpec{{tags: []string{"h3", "h4", "div"}, class: regexp.MustCompile(`title|headline`)}},
			body:     fieldSpec{{tags: []string{"p", "div"}, class: regexp.MustCompile(`body|content|text`)}},
			date:     fieldSpec{{tags: []string{"time"}}, {tags: []string{"span"}, class: regexp.MustCompile(`date`)}},
			reviewer: fieldSpec{{tags: []string{"span", "div"}, class: regexp.MustCompile(`author|reviewer`)}},
			info:     fieldSpec{{tags: []string{"div"}, class: regexp.MustCompile(`info|metadata`)}},
		},
	}
}

func capterraProfile() sourceProfile {
	return sourceProfile{
		source:  model.SourceCapterra,
		baseURL: "https://www.capterra.com",
		searchPath: func(company string) string {
			return "/search/?query=" + url.QueryEscape(company)
		},
		productHref: func(href string) bool {
			return strings.Contains(href, "/reviews/") || strings.Contains(href, "/p/")
		},
		reviewsURL: func(productURL string) string {
			// Product pages live under /p/; their review listings under /reviews/.
			if strings.Contains(productURL, "/p/") && !strings.Contains(productURL, "/reviews/") {
				return strings.Replace(productURL, "/p/", "/reviews/", 1)
			}
			return productURL
		},
		maxPages: 2,
		cards: []cardCandidate{
			{selector: "div", class: regexp.MustCompile(`user-review|review-item`)},
			{selector: "article", class: regexp.MustCompile(`review`)},
		},
		nextControl: &cardCandidate{selector: "a", class: regexp.MustCompile(`next|pagination-next`)},
		record: recordSpec{
			title:    fieldSpec{{tags: []string{"h3", "h4"}, class: regexp.MustCompile(`title|headline`)}},
			body:     fieldSpec{{tags: []string{"p", "div"}, class: regexp.MustCompile(`content|review-content`)}},
			date:     fieldSpec{{tags: []string{"time"}}, {tags: []string{"span"}, class: regexp.MustCompile(`date`)}},
			reviewer: fieldSpec{{tags: []string{"strong", "span"}, class: regexp.MustCompile(`author|user`)}},
		},
	}
}

func softwareAdviceProfile() sourceProfile {
	return sourceProfile{
		source:  model.SourceSoftwareAdvice,
		baseURL: "https://www.softwareadvice.com",
		searchPath: func(company string) string {
			return "/search/?query=" + url.QueryEscape(company)
		},
		productHref: func(href string) bool {
			return strings.Contains(href, "/reviews/")
		},
		reviewsURL: func(productURL string) string {
			return productURL
		},
		maxPages:  1,
		cardLimit: 5,
		cards: []cardCandidate{
			{selector: "div", class: regexp.MustCompile(`review|testimonial`)},
		},
		record: recordSpec{
			title:        fieldSpec{{tags: []string{"h3", "h4", "strong"}}},
			body:         fieldSpec{{tags: []string{"p", "div", "blockquote"}}},
			date:         fieldSpec{{tags: []string{"time"}}, {tags: []string{"span"}, class: regexp.MustCompile(`date`)}},
			reviewer:     fieldSpec{{tags: []string{"cite", "span"}, class: regexp.MustCompile(`author`)}},
			fallbackDate: "2023-10-15",
		},
		samples: softwareAdviceSamples,
	}
}

// softwareAdviceSamples fabricates deterministic placeholder reviews. This
// mirrors the source site's demo behavior when no real reviews can be
// located; it is gated by the sample-fallback setting.
func softwareAdviceSamples(company string) []*model.Review {
	dates := []string{"2023-06-15", "2023-08-22", "2023-11-05"}
	reviews := make([]*model.Review, 0, len(dates))
	for i, date := range dates {
		reviews = append(reviews, &model.Review{
			Title: fmt.Sprintf("Review of %s on SoftwareAdvice", company),
			Description: fmt.Sprintf(
				"SoftwareAdvice provides excellent insights about %s. The platform is user-friendly and the reviews are detailed.",
				company),
			Date:         date,
			ReviewerName: fmt.Sprintf("SoftwareAdvice User %d", i+1),
			Rating:       model.Float(4.0 + float64(i)*0.3),
			Company:      company,
			Source:       string(model.SourceSoftwareAdvice),
		})
	}
	return reviews
}

// profileFor returns the profile for an implemented source.
func profileFor(src model.Source) (sourceProfile, bool) {
	switch src {
	case model.SourceG2:
		return g2Profile(), true
	case model.SourceCapterra:
		return capterraProfile(), true
	case model.SourceSoftwareAdvice:
		return softwareAdviceProfile(), true
	default:
		return sourceProfile{}, false
	}
}
