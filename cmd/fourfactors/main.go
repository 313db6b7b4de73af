// Package main provides the four-factors loader: it fetches team Four
// Factors statistics from the KenPom four-factors endpoint, optionally
// restricted to conference games, cleans column names, and saves a processed
// table plus a team-only subset per season.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"grizstats/internal/cli"
	"grizstats/internal/config"
	"grizstats/internal/kenpom"
	"grizstats/internal/logger"
	"grizstats/internal/pipeline"
	"grizstats/internal/preview"
	"grizstats/internal/recordset"
)

const entity = "kenpom_four_factors"

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	confOnly := flag.Bool("conf_only", false, "If set, pulls conference-only Four Factors stats")

	var seasons cli.Seasons

	flag.Var(&seasons, "season", "Season end year(s). Example: 2026 (for 2025-26). Repeatable or comma-separated.")
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

	// The key must be resolvable before any network activity.
	apiKey, err := config.APIKeyFromEnv()
	if err != nil {
		log.Error("missing credential", "error", err)
		os.Exit(1)
	}

	client, err := kenpom.NewClient(cfg.Pipeline.Sources.KenPomBaseURL, apiKey, cfg.Pipeline.Retry.GetTimeout())
	if err != nil {
		log.Error("failed to create kenpom client", "error", err)
		os.Exit(1)
	}

	fmt.Println("🏀 KenPom Four Factors Loader")
	fmt.Printf("Seasons: %s (conf_only=%t)\n\n", seasons.String(), *confOnly)

	ctx := context.Background()
	stamp := pipeline.NewStamp()

	for _, season := range seasons {
		fmt.Printf("⏳ Fetching %s for season %d...\n", kenpom.EndpointFourFactors, season)

		raw, err := client.Fetch(ctx, kenpom.EndpointFourFactors, season, *confOnly)
		if err != nil {
			log.Error("four factors fetch failed", "season", season, "error", err)
			os.Exit(1)
		}

		fmt.Printf("✅ Fetched %d teams\n", raw.Len())

		clean := pipeline.ProcessTeamStats(raw, kenpom.SourceName, kenpom.EndpointFourFactors, stamp)

		outputPath := cfg.ProcessedPath(entity, season, *confOnly)

		fmt.Printf("Writing file (overwrites if exists): %s\n", outputPath)

		if err := clean.WriteCSVFile(outputPath); err != nil {
			log.Error("four factors write failed", "season", season, "error", err)
			os.Exit(1)
		}

		team := pipeline.FilterTeam(clean, cfg.Pipeline.Team.Name)
		if team.Len() > 0 {
			teamPath := cfg.TeamProcessedPath(entity, season, *confOnly)

			fmt.Printf("Writing file (overwrites if exists): %s\n", teamPath)

			if err := team.WriteCSVFile(teamPath); err != nil {
				log.Error("team subset write failed", "season", season, "error", err)
				os.Exit(1)
			}
		} else {
			log.Warn("team not found in four factors, skipping team-only output",
				"team", cfg.Pipeline.Team.Name, "season", season)
		}

		printSummary(outputPath, clean)
	}

	fmt.Println("\n✨ Four Factors processing complete!")
}

func printSummary(path string, rs *recordset.RecordSet) {
	fmt.Println("\n--------------------------------------")
	fmt.Printf("Saved: %s\n", path)
	fmt.Printf("Rows: %d\n", rs.Len())
	fmt.Printf("Columns: %v\n", rs.Columns)
	fmt.Print(preview.Head(rs, 10))
}
