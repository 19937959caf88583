// internal/model/review.go

// Package model defines the review record and run-result types shared by the
// scraping engine and the output writers.
package model

// Version is the scraper version stamped into run metadata.
const Version = "1.0.0"

// Field length caps applied during extraction.
const (
	MaxTitleLen       = 200
	MaxDescriptionLen = 1000
	MaxReviewerLen    = 100
)

// Source identifies one review-hosting site.
type Source string

const (
	SourceG2             Source = "g2"
	SourceCapterra       Source = "capterra"
	SourceSoftwareAdvice Source = "softwareadvice"
	SourceTrustpilot     Source = "trustpilot"
)

// KnownSources returns every recognized source identifier, including
// identifiers that are recognized but not yet implemented.
func KnownSources() []Source {
	return []Source{SourceG2, SourceCapterra, SourceSoftwareAdvice, SourceTrustpilot}
}

// IsKnownSource reports whether s is a recognized source identifier.
func IsKnownSource(s string) bool {
	for _, known := range KnownSources() {
		if s == string(known) {
			return true
		}
	}
	return false
}

// Review is one extracted review record. Optional fields use pointer or
// omitempty semantics so that absent values are dropped from the serialized
// form instead of being emitted as null.
type Review struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Date         string   `json:"date"`
	ReviewerName string   `json:"reviewer_name,omitempty"`
	Rating       *float64 `json:"rating,omitempty"`
	Source       string   `json:"source,omitempty"`
	Company      string   `json:"company,omitempty"`
	Verified     *bool    `json:"verified,omitempty"`
	HelpfulCount *int     `json:"helpful_count,omitempty"`
	ReviewerRole string   `json:"reviewer_role,omitempty"`
	CompanySize  string   `json:"company_size,omitempty"`
}

// RunMetadata describes one scraping run.
type RunMetadata struct {
	Company        string   `json:"company"`
	StartDate      string   `json:"start_date"`
	EndDate        string   `json:"end_date"`
	Sources        []string `json:"sources"`
	TotalReviews   int      `json:"total_reviews"`
	ScrapedAt      string   `json:"scraped_at"`
	ScraperVersion string   `json:"scraper_version"`
}

// RunResult is the top-level output document of one invocation.
type RunResult struct {
	Metadata RunMetadata `json:"metadata"`
	Reviews  []*Review   `json:"reviews"`
}

// Truncate caps s at max runes.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// Float returns a pointer to v. Convenience for populating optional fields.
func Float(v float64) *float64 { return &v }
