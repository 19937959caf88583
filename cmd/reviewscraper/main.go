// cmd/reviewscraper/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"reviewscraper/internal/config"
	apperrors "reviewscraper/internal/errors"
	"reviewscraper/internal/model"
	"reviewscraper/internal/monitoring"
	"reviewscraper/internal/output"
	"reviewscraper/internal/scraper"
)

type options struct {
	company    string
	start      string
	end        string
	source     string
	outputPath string
	format     string
	configPath string
	delay      float64
	verbose    bool
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("reviewscraper", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs) }

	fs.StringVar(&opts.company, "company", "", "company name to search for")
	fs.StringVar(&opts.company, "c", "", "shorthand for -company")
	fs.StringVar(&opts.start, "start", "", "start date (YYYY-MM-DD)")
	fs.StringVar(&opts.end, "end", "", "end date (YYYY-MM-DD)")
	fs.StringVar(&opts.source, "source", "", `source(s): g2, capterra, softwareadvice, or "all"`)
	fs.StringVar(&opts.outputPath, "output", "", "output file (default from config, reviews.json)")
	fs.StringVar(&opts.outputPath, "o", "", "shorthand for -output")
	fs.StringVar(&opts.format, "format", "", "output format: json, csv, excel, sqlite")
	fs.StringVar(&opts.configPath, "config", "", "optional YAML configuration file")
	fs.Float64Var(&opts.delay, "delay", 0, "delay between requests in seconds")
	fs.BoolVar(&opts.verbose, "verbose", false, "enable verbose logging")
	fs.BoolVar(&opts.verbose, "v", false, "shorthand for -verbose")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	return opts, nil
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintln(os.Stderr, "reviewscraper - scrape product reviews from multiple sources")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  reviewscraper -company <name> -start <YYYY-MM-DD> -end <YYYY-MM-DD> -source <sources> [options]")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Options:")
	fs.PrintDefaults()
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Examples:")
	fmt.Fprintln(os.Stderr, "  reviewscraper -company Slack -start 2023-01-01 -end 2023-12-31 -source g2")
	fmt.Fprintln(os.Stderr, "  reviewscraper -company Zoom -start 2023-06-01 -end 2023-12-31 -source g2,capterra")
	fmt.Fprintln(os.Stderr, "  reviewscraper -company Notion -start 2023-01-01 -end 2023-12-31 -source all -v")
}

// parseSources expands "all" and normalizes a comma-separated source list.
func parseSources(arg string) []string {
	if strings.EqualFold(strings.TrimSpace(arg), "all") {
		var sources []string
		for _, src := range model.KnownSources() {
			sources = append(sources, string(src))
		}
		return sources
	}
	var sources []string
	for _, token := range strings.Split(arg, ",") {
		token = strings.ToLower(strings.TrimSpace(token))
		if token != "" {
			sources = append(sources, token)
		}
	}
	return sources
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, err := parseFlags(args)
	if err != nil {
		return 1
	}

	cfg := config.Default()
	if opts.configPath != "" {
		cfg, err = config.Load(opts.configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	// Flags override file settings.
	if opts.delay > 0 {
		cfg.Request.Delay = (time.Duration(opts.delay * float64(time.Second))).String()
	}
	if opts.outputPath != "" {
		cfg.Output.File = opts.outputPath
	}
	if opts.format != "" {
		cfg.Output.Format = opts.format
	}
	if opts.verbose {
		cfg.Logging.Level = "debug"
	}

	logger, closeLogs, err := monitoring.NewLogger(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open log file: %v\n", err)
		return 1
	}
	defer closeLogs()

	manager, err := output.NewManager(cfg.Output.Format, cfg.Output.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	sources := parseSources(opts.source)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := scraper.NewClient(scraper.ClientConfig{
		Timeout:   cfg.TimeoutDuration(),
		Delay:     cfg.DelayDuration(),
		UserAgent: cfg.Request.UserAgent,
		Headers:   cfg.Request.Headers,
	})
	defer client.Close()

	metrics := monitoring.NewMetrics()
	engineOpts := []scraper.EngineOption{
		scraper.WithMetrics(metrics),
		scraper.WithSampleFallback(cfg.SampleFallbackEnabled()),
	}
	for src, pages := range cfg.Sources.MaxPages {
		engineOpts = append(engineOpts, scraper.WithPageCap(model.Source(src), pages))
	}
	engine := scraper.NewEngine(client, logger, engineOpts...)
	runner := scraper.NewRunner(engine, logger)

	params := scraper.Params{
		Company:   opts.company,
		StartDate: opts.start,
		EndDate:   opts.end,
		Sources:   sources,
	}

	logger.Info().
		Str("company", params.Company).
		Str("start", params.StartDate).
		Str("end", params.EndDate).
		Strs("sources", params.Sources).
		Msg("starting review scraper")

	result, err := runner.Run(ctx, params)
	if err != nil {
		if verr, ok := apperrors.AsValidation(err); ok {
			for _, problem := range verr.Problems {
				fmt.Fprintf(os.Stderr, "Error: %s\n", problem)
			}
		} else {
			logger.Error().Err(err).Msg("scraping failed")
		}
		return apperrors.ExitCode(err)
	}

	if err := manager.Write(result); err != nil {
		logger.Error().Err(err).Msg("failed to write results")
		return 1
	}
	logger.Info().Int("reviews", result.Metadata.TotalReviews).Str("file", manager.File()).Msg("results saved")

	printSummary(result, manager.File())
	if opts.verbose {
		for _, line := range metrics.Summary() {
			logger.Debug().Str("metric", line.Metric).Str("source", line.Source).Float64("value", line.Value).Msg("run counter")
		}
	}
	return 0
}

func printSummary(result *model.RunResult, file string) {
	meta := result.Metadata
	banner := strings.Repeat("=", 60)

	fmt.Println()
	fmt.Println(banner)
	fmt.Println("SCRAPING COMPLETE")
	fmt.Println(banner)
	fmt.Printf("Company: %s\n", meta.Company)
	fmt.Printf("Sources: %s\n", strings.Join(meta.Sources, ", "))
	fmt.Printf("Total Reviews: %d\n", meta.TotalReviews)
	fmt.Printf("Output File: %s\n", file)
	fmt.Printf("Scraped At: %s\n", meta.ScrapedAt)
	fmt.Println(banner)

	if len(result.Reviews) == 0 {
		return
	}
	fmt.Println("\nSAMPLE REVIEWS:")
	for i, review := range result.Reviews {
		if i == 3 {
			break
		}
		fmt.Printf("\n[%d] %s - %s\n", i+1, orUnknown(review.Source), orUnknown(review.Date))
		fmt.Printf("    Title: %s\n", model.Truncate(review.Title, 60))
		if review.Rating != nil {
			fmt.Printf("    Rating: %.1f\n", *review.Rating)
		}
		if review.ReviewerName != "" {
			fmt.Printf("    Reviewer: %s\n", review.ReviewerName)
		}
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
