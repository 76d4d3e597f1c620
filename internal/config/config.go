// Wifistats - WiFi Client Session Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wifistats

// Package config holds the application configuration loaded from defaults,
// an optional YAML config file, and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file for persistent settings
//  3. Environment Variables: Override any setting
//
// Command-line flags are applied on top by cmd/wifistats and take precedence
// over all of the above.
package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Report  ReportConfig  `koanf:"report"`
	Logging LoggingConfig `koanf:"logging"`
}

// ReportConfig carries the report-generation settings that would otherwise be
// supplied per run on the command line. Input files are always positional
// arguments, never configuration.
type ReportConfig struct {
	// OutputPath is where the workbook is written.
	OutputPath string `koanf:"output_path"`

	// Sites is the set of site names to report on.
	Sites []string `koanf:"sites"`

	// DateFrom / DateTo bound the inclusive session-date filter,
	// formatted as YYYY-MM-DD. Empty means unbounded on that side.
	DateFrom string `koanf:"date_from"`
	DateTo   string `koanf:"date_to"`

	// AggregateFloors replaces per-floor breakdown rows with
	// building-level totals.
	AggregateFloors bool `koanf:"aggregate_floors"`

	// TabPerBuilding adds one sheet per distinct building. Only
	// meaningful together with AggregateFloors.
	TabPerBuilding bool `koanf:"tab_per_building"`

	// SummaryPath, when set, is where the JSON run summary is written.
	SummaryPath string `koanf:"summary_path"`
}

// LoggingConfig mirrors logging.Config for file/env configuration.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// dateFormat is the config-file date format for the range bounds.
const dateFormat = "2006-01-02"

// Validate checks the configuration for internal consistency. Presence of
// run-required settings (output path, sites) is checked later against the
// merged flag+config values, not here.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "", "trace", "debug", "info", "warn", "warning", "error", "fatal", "disabled":
	default:
		return fmt.Errorf("invalid logging.level %q", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("invalid logging.format %q (must be json or console)", c.Logging.Format)
	}

	from, err := c.parseBound(c.Report.DateFrom, "report.date_from")
	if err != nil {
		return err
	}
	to, err := c.parseBound(c.Report.DateTo, "report.date_to")
	if err != nil {
		return err
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return fmt.Errorf("report.date_to %s is before report.date_from %s", c.Report.DateTo, c.Report.DateFrom)
	}

	if c.Report.TabPerBuilding && !c.Report.AggregateFloors {
		return fmt.Errorf("report.tab_per_building requires report.aggregate_floors")
	}

	return nil
}

// DateFromTime returns the parsed lower date bound, zero when unset.
func (c *Config) DateFromTime() time.Time {
	t, _ := c.parseBound(c.Report.DateFrom, "report.date_from")
	return t
}

// DateToTime returns the parsed upper date bound, zero when unset.
func (c *Config) DateToTime() time.Time {
	t, _ := c.parseBound(c.Report.DateTo, "report.date_to")
	return t
}

func (c *Config) parseBound(value, key string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q (want YYYY-MM-DD)", key, value)
	}
	return t, nil
}
