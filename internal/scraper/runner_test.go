// internal/scraper/runner_test.go
package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	apperrors "reviewscraper/internal/errors"
	"reviewscraper/internal/model"
)

// pageHandler serves the same HTML body for every request.
func pageHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	})
}

func TestRunnerValidate(t *testing.T) {
	tests := []struct {
		name     string
		params   Params
		problems []string
	}{
		{
			name: "valid",
			params: Params{
				Company:   "TestCo",
				StartDate: "2023-01-01",
				EndDate:   "2023-12-31",
				Sources:   []string{"g2"},
			},
		},
		{
			name: "company too short",
			params: Params{
				Company:   " a ",
				StartDate: "2023-01-01",
				EndDate:   "2023-12-31",
				Sources:   []string{"g2"},
			},
			problems: []string{"company name must be at least 2 characters"},
		},
		{
			name: "malformed dates",
			params: Params{
				Company:   "TestCo",
				StartDate: "01/01/2023",
				EndDate:   "2023-12-31",
				Sources:   []string{"g2"},
			},
			problems: []string{"dates must be in YYYY-MM-DD format"},
		},
		{
			name: "start after end",
			params: Params{
				Company:   "TestCo",
				StartDate: "2023-12-31",
				EndDate:   "2023-01-01",
				Sources:   []string{"g2"},
			},
			problems: []string{"start date must be before end date"},
		},
		{
			name: "no sources",
			params: Params{
				Company:   "TestCo",
				StartDate: "2023-01-01",
				EndDate:   "2023-12-31",
			},
			problems: []string{"at least one source is required"},
		},
		{
			name: "unknown first source",
			params: Params{
				Company:   "TestCo",
				StartDate: "2023-01-01",
				EndDate:   "2023-12-31",
				Sources:   []string{"yelp", "g2"},
			},
			problems: []string{"source must be one of: g2, capterra, softwareadvice, trustpilot"},
		},
		{
			name: "unknown later source tolerated",
			params: Params{
				Company:   "TestCo",
				StartDate: "2023-01-01",
				EndDate:   "2023-12-31",
				Sources:   []string{"g2", "yelp"},
			},
		},
		{
			name: "multiple problems collected",
			params: Params{
				Company:   "x",
				StartDate: "bad",
				EndDate:   "2023-12-31",
			},
			problems: []string{
				"company name must be at least 2 characters",
				"dates must be in YYYY-MM-DD format",
				"at least one source is required",
			},
		},
	}

	runner := NewRunner(nil, zerolog.Nop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runner.Validate(tt.params)
			if len(tt.problems) == 0 {
				if err != nil {
					t.Fatalf("Validate returned %v, want nil", err)
				}
				return
			}
			verr, ok := apperrors.AsValidation(err)
			if !ok {
				t.Fatalf("Validate returned %T, want *ValidationError", err)
			}
			if len(verr.Problems) != len(tt.problems) {
				t.Fatalf("got problems %v, want %v", verr.Problems, tt.problems)
			}
			for i, want := range tt.problems {
				if verr.Problems[i] != want {
					t.Errorf("problem %d = %q, want %q", i, verr.Problems[i], want)
				}
			}
		})
	}
}

func TestRunnerValidateFutureEndDateAccepted(t *testing.T) {
	runner := NewRunner(nil, zerolog.Nop())
	runner.now = func() time.Time { return time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC) }

	err := runner.Validate(Params{
		Company:   "TestCo",
		StartDate: "2023-01-01",
		EndDate:   "2024-12-31",
		Sources:   []string{"g2"},
	})
	if err != nil {
		t.Fatalf("future end date should only warn, got %v", err)
	}
}

func TestRunnerRunEmptySources(t *testing.T) {
	// All pages 404 past the search, so every source contributes nothing and
	// sample fallback never fires (SoftwareAdvice is not requested here).
	server := httptest.NewServer(pageHandler(`<html><body>no results</body></html>`))
	defer server.Close()

	client := NewClient(ClientConfig{Delay: time.Millisecond, Timeout: 5 * time.Second})
	defer client.Close()
	engine := NewEngine(client, zerolog.Nop(),
		WithBaseURL(model.SourceG2, server.URL),
		WithBaseURL(model.SourceCapterra, server.URL),
	)
	runner := NewRunner(engine, zerolog.Nop())
	runner.now = func() time.Time { return time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC) }

	result, err := runner.Run(context.Background(), Params{
		Company:   "TestCo",
		StartDate: "2023-01-01",
		EndDate:   "2023-12-31",
		Sources:   []string{"g2", "capterra"},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Reviews == nil {
		t.Error("Reviews is nil, want empty slice")
	}
	if len(result.Reviews) != 0 {
		t.Errorf("got %d reviews, want 0", len(result.Reviews))
	}
	meta := result.Metadata
	if meta.TotalReviews != 0 {
		t.Errorf("TotalReviews = %d", meta.TotalReviews)
	}
	if meta.Company != "TestCo" || meta.StartDate != "2023-01-01" || meta.EndDate != "2023-12-31" {
		t.Errorf("metadata = %+v", meta)
	}
	if meta.ScraperVersion != model.Version {
		t.Errorf("ScraperVersion = %q", meta.ScraperVersion)
	}
	if meta.ScrapedAt != "2024-01-15T12:00:00Z" {
		t.Errorf("ScrapedAt = %q", meta.ScrapedAt)
	}
	if len(meta.Sources) != 2 || meta.Sources[0] != "g2" {
		t.Errorf("Sources = %v", meta.Sources)
	}
}

func TestRunnerRunTrustpilotAndUnknownSkipped(t *testing.T) {
	server := httptest.NewServer(pageHandler(`<html><body><a href="/about">About</a></body></html>`))
	defer server.Close()

	client := NewClient(ClientConfig{Delay: time.Millisecond, Timeout: 5 * time.Second})
	defer client.Close()
	engine := NewEngine(client, zerolog.Nop(),
		WithBaseURL(model.SourceSoftwareAdvice, server.URL),
	)
	runner := NewRunner(engine, zerolog.Nop())

	result, err := runner.Run(context.Background(), Params{
		Company:   "TestCo",
		StartDate: "2023-01-01",
		EndDate:   "2023-12-31",
		Sources:   []string{"trustpilot", "yelp", "softwareadvice"},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Trustpilot and the unknown source contribute nothing; SoftwareAdvice
	// lands on an empty search page and falls back to its samples.
	if len(result.Reviews) != 3 {
		t.Fatalf("got %d reviews, want 3 samples", len(result.Reviews))
	}
	for _, r := range result.Reviews {
		if r.Source != "softwareadvice" {
			t.Errorf("review source = %q", r.Source)
		}
	}
}

func TestRunnerRunValidationFailure(t *testing.T) {
	runner := NewRunner(nil, zerolog.Nop())
	_, err := runner.Run(context.Background(), Params{})
	if err == nil {
		t.Fatal("Run accepted empty params")
	}
	if _, ok := apperrors.AsValidation(err); !ok {
		t.Fatalf("got %T, want validation error", err)
	}
	if apperrors.ExitCode(err) != 1 {
		t.Errorf("ExitCode = %d, want 1", apperrors.ExitCode(err))
	}
}

func TestRunnerRunCancelledContext(t *testing.T) {
	server := httptest.NewServer(pageHandler(`<html><body></body></html>`))
	defer server.Close()

	client := NewClient(ClientConfig{Delay: time.Millisecond, Timeout: 5 * time.Second})
	defer client.Close()
	engine := NewEngine(client, zerolog.Nop(), WithBaseURL(model.SourceG2, server.URL))
	runner := NewRunner(engine, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Run(ctx, Params{
		Company:   "TestCo",
		StartDate: "2023-01-01",
		EndDate:   "2023-12-31",
		Sources:   []string{"g2"},
	})
	if err == nil || !strings.Contains(err.Error(), "context canceled") {
		t.Fatalf("got %v, want context cancellation", err)
	}
}
