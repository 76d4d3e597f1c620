// Wifistats - WiFi Client Session Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wifistats

package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/tomtom215/wifistats/internal/logging"
	"github.com/tomtom215/wifistats/internal/models"
)

// Build generates the report workbook at p.OutputPath from the ingested
// records and returns a summary of what was written.
//
// Every record's timestamps must normalize: one bad row aborts the whole
// report, since every aggregate depends on every row being comparable. The
// records slice is not modified; normalization works on a copy.
func Build(records []models.SessionRecord, p Params) (*Summary, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	runID := uuid.New()
	logger := logging.With().Str("run_id", runID.String()).Logger()

	// Normalize timestamps and derive fields on a private copy.
	normalized := make([]models.SessionRecord, len(records))
	copy(normalized, records)
	for i := range normalized {
		if err := normalized[i].Normalize(); err != nil {
			return nil, fmt.Errorf("record %s (location %q): %w",
				normalized[i].ID(), normalized[i].Location, err)
		}
	}

	filtered := filterRange(normalized, p.DateFrom, p.DateTo)
	days := dayColumns(filtered)

	logger.Info().
		Int("records", len(normalized)).
		Int("in_range", len(filtered)).
		Int("day_columns", len(days)).
		Strs("sites", p.Sites).
		Msg("Building report")

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logging.Warn().Err(err).Msg("Error closing workbook")
		}
	}()

	styles, err := newStyleSet(f)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		RunID:           runID,
		GeneratedAt:     time.Now(),
		OutputPath:      p.OutputPath,
		Sites:           p.Sites,
		Records:         len(normalized),
		RecordsInRange:  len(filtered),
		DayColumns:      len(days),
		AggregateFloors: p.AggregateFloors,
	}

	wb := &workbook{f: f, styles: styles, days: days, namer: newSheetNamer(), summary: summary}
	selection := filterSites(filtered, p.Sites)

	// Combined sheet over the union of selected sites
	if len(p.Sites) > 1 {
		if err := wb.addSheet(combinedSheetName, selection, p.AggregateFloors); err != nil {
			return nil, err
		}
	}

	// One sheet per selected site; empty sites are skipped, not rendered
	for _, site := range p.Sites {
		subset := filterSites(filtered, []string{site})
		if len(subset) == 0 {
			logger.Warn().Str("site", site).Msg("Site has no rows in range, sheet skipped")
			continue
		}
		if err := wb.addSheet(site, subset, p.AggregateFloors); err != nil {
			return nil, err
		}
	}

	// Per-building sheets, only when floors are being aggregated
	if p.AggregateFloors && p.TabPerBuilding {
		buildings := groupBy(selection, func(r models.SessionRecord) string { return r.Building() })
		sort.Slice(buildings, func(i, j int) bool { return buildings[i].Key < buildings[j].Key })
		for _, b := range buildings {
			if err := wb.addSheet(buildingSheetPrefix+b.Key, b.Records, true); err != nil {
				return nil, err
			}
		}
	}

	if len(wb.summary.Sheets) == 0 {
		return nil, ErrNoMatchingRows
	}

	if err := f.SaveAs(p.OutputPath); err != nil {
		return nil, fmt.Errorf("write workbook %s: %w", p.OutputPath, err)
	}

	logger.Info().
		Str("output", p.OutputPath).
		Int("sheets", len(wb.summary.Sheets)).
		Msg("Report written")

	return summary, nil
}

// workbook tracks per-run rendering state: the shared day grid, the sheet
// namer, and whether the format's default sheet is still unclaimed.
type workbook struct {
	f       *excelize.File
	styles  *styleSet
	days    []time.Time
	namer   *sheetNamer
	summary *Summary
	sheets  int
}

// addSheet creates (or claims, for the first sheet, the workbook default)
// a uniquely named sheet and renders the subset into it.
func (wb *workbook) addSheet(baseName string, records []models.SessionRecord, aggregateFloors bool) error {
	name := wb.namer.name(baseName)

	if wb.sheets == 0 {
		// A new workbook starts with one default sheet; rename it
		// instead of leaving an empty tab behind.
		if err := wb.f.SetSheetName(wb.f.GetSheetName(0), name); err != nil {
			return fmt.Errorf("name sheet %q: %w", name, err)
		}
	} else {
		if _, err := wb.f.NewSheet(name); err != nil {
			return fmt.Errorf("add sheet %q: %w", name, err)
		}
	}
	wb.sheets++

	if err := renderSheet(wb.f, wb.styles, name, records, wb.days, aggregateFloors); err != nil {
		return err
	}

	t := tally(records)
	wb.summary.Sheets = append(wb.summary.Sheets, SheetSummary{
		Name:     name,
		Sessions: t.Sessions,
		Users:    t.Users,
	})

	logging.Debug().
		Str("sheet", name).
		Int("sessions", t.Sessions).
		Int("users", t.Users).
		Msg("Sheet rendered")

	return nil
}
