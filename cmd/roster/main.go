// Package main provides the roster loader: it reads manually exported
// Sports-Reference roster CSVs, cleans column names and types, adds a
// consistent player key for joins, and saves a processed roster table per
// season.
package main

import (
	"flag"
	"fmt"
	"os"

	"grizstats/internal/cli"
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

	fmt.Println("🏀 Roster Loader")
	fmt.Printf("Seasons: %s\n\n", seasons.String())

	entity := cfg.Pipeline.Team.FilePrefix + "_roster"

	stamp := pipeline.NewStamp()

	for _, season := range seasons {
		rawFile := cfg.RosterExportPath(season)

		fmt.Printf("📂 Reading: %s\n", rawFile)

		raw, err := recordset.ReadCSVFile(rawFile)
		if err != nil {
			log.Error("roster export read failed", "season", season, "error", err)
			os.Exit(1)
		}

		clean := pipeline.ProcessRoster(raw, season, rawFile, stamp)

		outputPath := cfg.ProcessedPath(entity, season, false)

		fmt.Printf("Writing file (overwrites if exists): %s\n", outputPath)

		if err := clean.WriteCSVFile(outputPath); err != nil {
			log.Error("roster write failed", "season", season, "error", err)
			os.Exit(1)
		}

		printSummary(outputPath, clean)
	}

	fmt.Println("\n✨ Roster processing complete!")
}

func printSummary(path string, rs *recordset.RecordSet) {
	fmt.Println("\n--------------------------------------")
	fmt.Printf("Saved: %s\n", path)
	fmt.Printf("Rows: %d\n", rs.Len())
	fmt.Printf("Columns: %v\n", rs.Columns)
	fmt.Print(preview.Head(rs, 10))
}
