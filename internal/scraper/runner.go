// internal/scraper/runner.go
package scraper

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	apperrors "reviewscraper/internal/errors"
	"reviewscraper/internal/model"
)

// Params are the inputs of one scraping run.
type Params struct {
	Company   string
	StartDate string
	EndDate   string
	Sources   []string
}

// Runner validates inputs, dispatches per-source scraping in request order,
// and assembles the final run result.
type Runner struct {
	engine *Engine
	logger zerolog.Logger
	now    func() time.Time
}

// NewRunner creates a runner around the given engine.
func NewRunner(engine *Engine, logger zerolog.Logger) *Runner {
	return &Runner{
		engine: engine,
		logger: logger,
		now:    time.Now,
	}
}

// Validate checks run parameters. All problems are collected into one
// ValidationError. Only the first requested source is checked against the
// known identifiers; later entries are handled at dispatch time.
func (r *Runner) Validate(p Params) error {
	var problems []string

	if len(strings.TrimSpace(p.Company)) < 2 {
		problems = append(problems, "company name must be at least 2 characters")
	}

	start, startErr := time.Parse(canonicalDateLayout, p.StartDate)
	end, endErr := time.Parse(canonicalDateLayout, p.EndDate)
	if startErr != nil || endErr != nil {
		problems = append(problems, "dates must be in YYYY-MM-DD format")
	} else {
		if start.After(end) {
			problems = append(problems, "start date must be before end date")
		}
		if end.After(r.now()) {
			r.logger.Warn().Str("end_date", p.EndDate).Msg("end date is in the future")
		}
	}

	if len(p.Sources) == 0 {
		problems = append(problems, "at least one source is required")
	} else if !model.IsKnownSource(strings.ToLower(p.Sources[0])) {
		problems = append(problems, "source must be one of: g2, capterra, softwareadvice, trustpilot")
	}

	if len(problems) > 0 {
		for _, problem := range problems {
			r.logger.Error().Msg(problem)
		}
		return apperrors.NewValidation(problems)
	}
	return nil
}

// Run executes one full scraping run. Validation failures abort before any
// network activity; per-source failures only shrink the result.
func (r *Runner) Run(ctx context.Context, p Params) (*model.RunResult, error) {
	if err := r.Validate(p); err != nil {
		return nil, err
	}

	all := []*model.Review{}
	for _, requested := range p.Sources {
		src := model.Source(strings.ToLower(requested))

		var reviews []*model.Review
		switch src {
		case model.SourceG2, model.SourceCapterra, model.SourceSoftwareAdvice:
			reviews = r.engine.ScrapeSource(ctx, src, p.Company, p.StartDate, p.EndDate)
		case model.SourceTrustpilot:
			r.logger.Info().Msg("trustpilot scraping not implemented in this version")
		default:
			r.logger.Warn().Str("source", requested).Msg("unknown source")
			continue
		}

		all = append(all, reviews...)
		r.logger.Info().Str("source", requested).Int("reviews", len(reviews)).Msg("source collected")

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	return &model.RunResult{
		Metadata: model.RunMetadata{
			Company:        p.Company,
			StartDate:      p.StartDate,
			EndDate:        p.EndDate,
			Sources:        p.Sources,
			TotalReviews:   len(all),
			ScrapedAt:      r.now().Format(time.RFC3339),
			ScraperVersion: model.Version,
		},
		Reviews: all,
	}, nil
}
