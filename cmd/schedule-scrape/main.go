// Package main provides the schedule scraper: it pulls the team's schedule
// and results from the Sports-Reference schedule page and saves a clean CSV
// per season.
package main

import (
	"flag"
	"fmt"
	"os"

	"grizstats/internal/cli"
	"grizstats/internal/fetch"
	"grizstats/internal/htmltable"
	"grizstats/internal/logger"
	"grizstats/internal/pipeline"
	"grizstats/internal/preview"
	"grizstats/internal/recordset"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")

	var seasons cli.Seasons

	flag.Var(&seasons, "season", "Season end year(s). Example: 2024 (for 2023-24). Repeatable or comma-separated.")
	flag.Parse()

	cfg, err := cli.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.Pipeline.Logging.Level)

	if len(seasons) == 0 {
		log.Error("at least one --season is required")
		flag.PrintDefaults()
		os.Exit(1)
	}

	fmt.Println("🏀 Schedule Scraper")
	fmt.Printf("Seasons: %s\n\n", seasons.String())

	fetcher := fetch.NewFetcherWithPolicy(&cfg.Pipeline.Retry)

	// One captured instant per invocation, shared by every output row.
	stamp := pipeline.NewStamp()

	for _, season := range seasons {
		url := cfg.ScheduleURL(season)

		fmt.Printf("⏳ Fetching schedule: %s\n", url)

		body, statusCode, duration, err := fetcher.GetWithMetrics(url)
		if err != nil {
			log.Error("schedule fetch failed", "season", season, "status", statusCode, "error", err)
			os.Exit(1)
		}

		fmt.Printf("✅ Fetched %d bytes (%.2fs)\n", len(body), duration.Seconds())

		raw, err := htmltable.Extract(body, "schedule")
		if err != nil {
			log.Error("schedule table extraction failed", "season", season, "error", err)
			os.Exit(1)
		}

		clean := pipeline.ProcessScrapedSchedule(raw, season, url, stamp)

		outputPath := cfg.RawSchedulePath(season)

		fmt.Printf("Writing file (overwrites if exists): %s\n", outputPath)

		if err := clean.WriteCSVFile(outputPath); err != nil {
			log.Error("schedule write failed", "season", season, "error", err)
			os.Exit(1)
		}

		printSummary(outputPath, clean)
	}

	fmt.Println("\n✨ Schedule scraping complete!")
}

func printSummary(path string, rs *recordset.RecordSet) {
	fmt.Println("\n--------------------------------------")
	fmt.Printf("Saved: %s\n", path)
	fmt.Printf("Rows: %d\n", rs.Len())
	fmt.Printf("Columns: %v\n", rs.Columns)
	fmt.Print(preview.Head(rs, 8))
}
