// Package scrape wires the pipeline stages behind the CLI: fetch,
// extract, filter, classify, export.
package scrape

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/urfave/cli/v2"

	"bullion-scraper/internal/common"
	"bullion-scraper/models"
	"bullion-scraper/pkg/detector"
	"bullion-scraper/pkg/export"
	"bullion-scraper/pkg/extractor"
	"bullion-scraper/pkg/fetcher"
	"bullion-scraper/pkg/history"
	"bullion-scraper/pkg/metals"
	"bullion-scraper/pkg/prices"
)

// Flags accepted by the scrape command (also the app default action).
var Flags = []cli.Flag{
	&cli.StringFlag{Name: "config", Usage: "path to a YAML config file"},
	&cli.StringFlag{Name: "url", Usage: "page to scrape", DefaultText: models.DefaultURL},
	&cli.StringFlag{Name: "user-agent", Usage: "User-Agent header for the request"},
	&cli.IntFlag{Name: "timeout", Usage: "fetch timeout in seconds", Value: 15},
	&cli.Float64Flag{Name: "threshold", Usage: "minimum value for a number to count as a price", Value: prices.DefaultThreshold},
	&cli.StringFlag{Name: "json-out", Usage: "JSON output path", Value: "prices.json"},
	&cli.StringFlag{Name: "csv-out", Usage: "CSV output path (empty disables the CSV export)", Value: "prices.csv"},
	&cli.BoolFlag{Name: "history", Usage: "update the daily gold/silver history files"},
	&cli.StringFlag{Name: "history-dir", Usage: "directory for the history files", Value: "data/history"},
	&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "only log errors and skip the summary"},
}

// Action runs the whole pipeline once and exits non-zero on a fetch
// failure or when any export could not be written.
func Action(c *cli.Context) error {
	cfg, err := BuildConfig(c)
	if err != nil {
		logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
		logger.Error("invalid configuration", "error", err)
		return cli.Exit(fmt.Sprintf("Error: %v", err), 2)
	}

	logLevel := cfg.LogLevel()
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	result, err := Run(c.Context, cfg, logger)
	if err != nil {
		// Fetch or parse failure: nothing is exported.
		logger.Error("scrape failed", "error", err)
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}

	failedExports := 0

	if err := export.WriteJSON(cfg.Output.JSONPath, result); err != nil {
		logger.Error("json export failed", "path", cfg.Output.JSONPath, "error", err)
		failedExports++
	} else {
		logger.Info("json export written", "path", cfg.Output.JSONPath)
	}

	if cfg.Output.CSVPath != "" {
		if err := export.WriteCSV(cfg.Output.CSVPath, result); err != nil {
			logger.Error("csv export failed", "path", cfg.Output.CSVPath, "error", err)
			failedExports++
		} else {
			logger.Info("csv export written", "path", cfg.Output.CSVPath)
		}
	}

	if cfg.History.Enabled {
		if err := UpdateHistory(cfg.History.Dir, result); err != nil {
			logger.Error("history update failed", "dir", cfg.History.Dir, "error", err)
			failedExports++
		} else {
			logger.Info("history updated", "dir", cfg.History.Dir)
		}
	}

	if !c.Bool("quiet") {
		PrintSummary(os.Stdout, result)
	}

	if failedExports > 0 {
		return cli.Exit(fmt.Sprintf("Error: %d export(s) failed", failedExports), 1)
	}
	return nil
}

// BuildConfig assembles the runtime configuration from the optional
// config file and the CLI flag overrides.
func BuildConfig(c *cli.Context) (*models.Config, error) {
	cfg := models.DefaultConfig()

	if c.IsSet("config") {
		loaded, err := models.LoadConfig(c.String("config"))
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if c.IsSet("url") {
		cleaned := common.SanitizeURL(c.String("url"))
		if !common.IsValidURL(cleaned) {
			return nil, fmt.Errorf("malformed url: %q", c.String("url"))
		}
		cfg.Scraper.URL = cleaned
	}
	if c.IsSet("user-agent") {
		cfg.Scraper.UserAgent = c.String("user-agent")
	}
	if c.IsSet("timeout") {
		cfg.Scraper.TimeoutSec = c.Int("timeout")
	}
	if c.IsSet("threshold") {
		cfg.Filter.Threshold = c.Float64("threshold")
	}
	if c.IsSet("json-out") {
		cfg.Output.JSONPath = c.String("json-out")
	}
	if c.IsSet("csv-out") {
		cfg.Output.CSVPath = c.String("csv-out")
	}
	if c.IsSet("history") {
		cfg.History.Enabled = c.Bool("history")
	}
	if c.IsSet("history-dir") {
		cfg.History.Dir = c.String("history-dir")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Run executes the fetch, extract, filter and classify stages and
// assembles the result. It writes nothing to disk.
func Run(ctx context.Context, cfg *models.Config, logger *slog.Logger) (*models.ScrapeResult, error) {
	f := fetcher.NewFetcher(cfg.Timeout(), cfg.Scraper.UserAgent)

	logger.Info("fetching page", "url", cfg.Scraper.URL, "timeout", cfg.Timeout().String())
	body, err := f.Fetch(ctx, cfg.Scraper.URL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	tables := extractor.Tables(doc)
	docText := extractor.DocumentText(doc)
	logger.Info("extracted tables", "count", len(tables))

	// The document text already carries every table cell's text nodes,
	// so one scan covers both; scanning cells again would double-count.
	filter := prices.NewFilter(cfg.Filter.Threshold)
	valid := filter.Scan(docText)
	logger.Info("filtered prices", "count", len(valid), "threshold", cfg.Filter.Threshold)

	return &models.ScrapeResult{
		SourceURL:   cfg.Scraper.URL,
		Timestamp:   time.Now().Format(time.RFC3339),
		Page:        detector.Analyze(cfg.Scraper.URL, body, docText),
		Tables:      tables,
		ValidPrices: valid,
		Metals:      metals.Classify(tables),
	}, nil
}

// UpdateHistory records today's category averages for each metal that
// appeared on the page.
func UpdateHistory(dir string, result *models.ScrapeResult) error {
	if result.Metals == nil {
		return nil
	}

	store, err := history.NewStore(dir)
	if err != nil {
		return err
	}

	date := result.Timestamp
	if len(date) >= 10 {
		date = date[:10]
	}

	for metal, rows := range map[string][]models.MetalRow{
		"gold":   result.Metals.Gold,
		"silver": result.Metals.Silver,
	} {
		if len(rows) == 0 {
			continue
		}
		avgs := metals.Averages(rows)
		entry := history.Entry{
			Date:        date,
			K18:         avgs[metals.Carat18],
			K21:         avgs[metals.Carat21],
			K22:         avgs[metals.Carat22],
			Traditional: avgs[metals.Traditional],
		}
		if err := store.Update(metal, entry); err != nil {
			return err
		}
	}
	return nil
}
