// Wifistats - WiFi Client Session Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wifistats

package report

import (
	"fmt"
	"os"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Summary describes one report run: what went in, what was written, and the
// per-sheet tallies. It is logged and, when requested, written as JSON next
// to the workbook for scripted consumers.
type Summary struct {
	RunID           uuid.UUID      `json:"run_id"`
	GeneratedAt     time.Time      `json:"generated_at"`
	OutputPath      string         `json:"output_path"`
	Sites           []string       `json:"sites"`
	Records         int            `json:"records"`
	RecordsInRange  int            `json:"records_in_range"`
	DayColumns      int            `json:"day_columns"`
	AggregateFloors bool           `json:"aggregate_floors"`
	Sheets          []SheetSummary `json:"sheets"`
}

// SheetSummary is the whole-range tally of one written sheet.
type SheetSummary struct {
	Name     string `json:"name"`
	Sessions int    `json:"sessions"`
	Users    int    `json:"users"`
}

// WriteJSON writes the summary to path as indented JSON.
func (s *Summary) WriteJSON(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write summary %s: %w", path, err)
	}
	return nil
}
