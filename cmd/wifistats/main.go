// Wifistats - WiFi Client Session Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wifistats

// Package main is the entry point for the wifistats report generator.
//
// Wifistats turns raw WiFi controller client-session exports (CSV files, or
// ZIP archives of CSV files) into a formatted spreadsheet report: session and
// unique-user counts broken down by site, SSID, building/floor and day.
//
// # Usage
//
// Input files are positional arguments; everything else comes from flags,
// an optional YAML config file, or environment variables (flags win):
//
//	wifistats -out report.xlsx -sites "Site A,Site B" sessions.csv export.zip
//
// Restrict the date range and collapse floors into buildings:
//
//	wifistats -out report.xlsx -sites "Site A" \
//	  -from 2024-01-01 -to 2024-01-31 \
//	  -aggregate-floors -tab-per-building \
//	  january.zip
//
// Inspect the date range covered by the inputs without generating a report:
//
//	wifistats -print-range sessions.csv
//
// # Configuration
//
// Settings are loaded via Koanf v2 with layered sources (highest wins):
// command-line flags, environment variables (WIFISTATS_OUTPUT,
// WIFISTATS_SITES, ...), a YAML config file, built-in defaults. The config
// file is looked up at wifistats.yaml, wifistats.yml or
// /etc/wifistats/wifistats.yaml unless -config or CONFIG_PATH names one.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/tomtom215/wifistats/internal/config"
	"github.com/tomtom215/wifistats/internal/ingest"
	"github.com/tomtom215/wifistats/internal/logging"
	"github.com/tomtom215/wifistats/internal/report"
)

const version = "1.0.0"

func main() {
	var (
		configPath      = flag.String("config", "", "Path to YAML config file")
		outputPath      = flag.String("out", "", "Output workbook path (.xlsx)")
		sites           = flag.String("sites", "", "Comma-separated site names to report on")
		dateFrom        = flag.String("from", "", "Lower session-date bound, inclusive (YYYY-MM-DD)")
		dateTo          = flag.String("to", "", "Upper session-date bound, inclusive (YYYY-MM-DD)")
		aggregateFloors = flag.Bool("aggregate-floors", false, "Collapse per-floor rows into building totals")
		tabPerBuilding  = flag.Bool("tab-per-building", false, "One sheet per building (requires -aggregate-floors)")
		printRange      = flag.Bool("print-range", false, "Print the date range covered by the inputs and exit")
		summaryPath     = flag.String("summary", "", "Write a JSON run summary to this path")
		logLevel        = flag.String("log-level", "", "Log level (trace, debug, info, warn, error)")
		logFormat       = flag.String("log-format", "", "Log format (console or json)")
		showVersion     = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("wifistats %s\n", version)
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Flags set on the command line override file and environment values.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "out":
			cfg.Report.OutputPath = *outputPath
		case "sites":
			cfg.Report.Sites = splitSites(*sites)
		case "from":
			cfg.Report.DateFrom = *dateFrom
		case "to":
			cfg.Report.DateTo = *dateTo
		case "aggregate-floors":
			cfg.Report.AggregateFloors = *aggregateFloors
		case "tab-per-building":
			cfg.Report.TabPerBuilding = *tabPerBuilding
		case "summary":
			cfg.Report.SummaryPath = *summaryPath
		case "log-level":
			cfg.Logging.Level = *logLevel
		case "log-format":
			cfg.Logging.Format = *logFormat
		}
	})
	if err := cfg.Validate(); err != nil {
		logging.Fatal().Err(err).Msg("Invalid configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	inputs := flag.Args()
	if len(inputs) == 0 {
		fmt.Fprintln(os.Stderr, "usage: wifistats [flags] file.csv|file.zip ...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	records, stats, err := ingest.Ingest(inputs)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to read input files")
	}
	if len(records) == 0 {
		logging.Fatal().
			Int("files", stats.Files).
			Msg("No session records found in the input files")
	}

	if *printRange {
		earliest, latest, ok := ingest.DateBounds(records)
		if !ok {
			logging.Fatal().Msg("No records with valid timestamps in the input files")
		}
		fmt.Printf("%s to %s\n", earliest.Format("2006-01-02"), latest.Format("2006-01-02"))
		return
	}

	params := report.Params{
		OutputPath:      cfg.Report.OutputPath,
		Sites:           cfg.Report.Sites,
		DateFrom:        cfg.DateFromTime(),
		DateTo:          cfg.DateToTime(),
		AggregateFloors: cfg.Report.AggregateFloors,
		TabPerBuilding:  cfg.Report.TabPerBuilding,
		SummaryPath:     cfg.Report.SummaryPath,
	}

	summary, err := report.Build(records, params)
	switch {
	case errors.Is(err, report.ErrNoMatchingRows):
		logging.Fatal().
			Strs("sites", params.Sites).
			Msg("No rows match the selected sites and date range")
	case err != nil:
		logging.Fatal().Err(err).Msg("Failed to generate report")
	}

	if params.SummaryPath != "" {
		if err := summary.WriteJSON(params.SummaryPath); err != nil {
			logging.Fatal().Err(err).Msg("Failed to write run summary")
		}
	}

	logging.Info().
		Str("output", summary.OutputPath).
		Int("sheets", len(summary.Sheets)).
		Int("records", summary.RecordsInRange).
		Msg("Report complete")
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// splitSites parses the comma-separated -sites flag value.
func splitSites(value string) []string {
	var out []string
	for _, s := range strings.Split(value, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
