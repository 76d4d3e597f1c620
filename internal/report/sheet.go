// Wifistats - WiFi Client Session Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wifistats

package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tomtom215/wifistats/internal/models"
)

// Grid geometry. Columns A-E hold the labels and whole-range totals; day
// column pairs start at F. All coordinates are 1-based.
const (
	colLocation  = 1 // A: location / building / sublocation labels
	colSSID      = 2 // B: SSID labels
	colSessions  = 3 // C: whole-range session counts
	colUsers     = 4 // D: whole-range user counts
	colFirstDay  = 6 // F: first day pair
	rowDayHeader = 6 // merged per-day date headers
	rowSubHeader = 7 // Sessions/Users sub-headers
	rowDayTotals = 8 // per-day sheet totals
	rowFirstData = 9 // first location block row
)

const (
	labelColWidth = 20.5
	valueColWidth = 14.8
)

// timestampDisplayFormat renders the time-stamps box values.
const timestampDisplayFormat = "2006-01-02 15:04:05"

// levelSpec describes one breakdown level rendered inside a location block.
// The location summary row and both sub-levels share the same row shape;
// only the label column, indent and styles differ.
type levelSpec struct {
	key        func(models.SessionRecord) string
	labelCol   int
	indent     string
	labelStyle int
	valueStyle int
}

// sheetWriter wraps an excelize file with a sticky error so the grid layout
// reads as layout, not error plumbing.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (w *sheetWriter) cell(col, row int, value interface{}, styleID int) {
	if w.err != nil {
		return
	}
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		w.err = err
		return
	}
	if value != nil {
		if err := w.f.SetCellValue(w.sheet, name, value); err != nil {
			w.err = err
			return
		}
	}
	if styleID != 0 {
		w.err = w.f.SetCellStyle(w.sheet, name, name, styleID)
	}
}

func (w *sheetWriter) merge(fromCol, fromRow, toCol, toRow int, value interface{}, styleID int) {
	if w.err != nil {
		return
	}
	from, err := excelize.CoordinatesToCellName(fromCol, fromRow)
	if err != nil {
		w.err = err
		return
	}
	to, err := excelize.CoordinatesToCellName(toCol, toRow)
	if err != nil {
		w.err = err
		return
	}
	if err := w.f.MergeCell(w.sheet, from, to); err != nil {
		w.err = err
		return
	}
	if err := w.f.SetCellValue(w.sheet, from, value); err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellStyle(w.sheet, from, to, styleID)
}

func (w *sheetWriter) colWidth(fromCol, toCol int, width float64) {
	if w.err != nil {
		return
	}
	from, err := excelize.ColumnNumberToName(fromCol)
	if err != nil {
		w.err = err
		return
	}
	to, err := excelize.ColumnNumberToName(toCol)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetColWidth(w.sheet, from, to, width)
}

// renderSheet writes one report sheet for the given record subset. The sheet
// must already exist in the workbook. All sheets of a run share the same day
// columns so their grids line up.
func renderSheet(f *excelize.File, styles *styleSet, sheetName string, records []models.SessionRecord, days []time.Time, aggregateFloors bool) error {
	w := &sheetWriter{f: f, sheet: sheetName}

	w.colWidth(colLocation, colLocation, labelColWidth)
	w.colWidth(colSSID, colFirstDay+2*len(days)+6, valueColWidth)

	total := tally(records)

	// Title band and sheet label
	w.merge(colLocation, 1, 5, 1, "WiFi Statistics Summary Report", styles.title)
	w.merge(colLocation, 2, colLocation, 7, sheetName, styles.sheetLabel)

	// Client user summary block
	w.cell(colSessions, 4, "Client User Summary", styles.bold)
	w.cell(colSessions, 5, "Number of Sessions", styles.columnTitle)
	w.cell(colUsers, 5, "Number of Users", styles.columnTitle)
	w.cell(colSessions, 6, total.Sessions, 0)
	w.cell(colUsers, 6, total.Users, 0)

	// Static headers
	w.cell(colLocation, 8, "Locations", styles.header)
	w.cell(colSSID, 8, "SSID", styles.header)
	w.cell(colSessions, 8, "Number of Sessions", styles.header)
	w.cell(colUsers, 8, "Number of Users", styles.header)
	w.cell(5, 8, "", styles.header)

	// Day headers and per-day sheet totals
	sheetDayTallies := dayTallies(records, days)
	for i, day := range days {
		base := colFirstDay + i*2
		w.merge(base, rowDayHeader, base+1, rowDayHeader, day.Format("02-Jan"), styles.dayHeader)
		w.cell(base, rowSubHeader, "Sessions", styles.headerDaySep)
		w.cell(base+1, rowSubHeader, "Users", styles.header)
		w.cell(base, rowDayTotals, sheetDayTallies[i].Sessions, styles.daySessions[i%2])
		w.cell(base+1, rowDayTotals, sheetDayTallies[i].Users, styles.dayUsers[i%2])
	}

	// Time-stamps box to the right of the day grid
	if earliest, latest, ok := endTimeBounds(records); ok {
		boxCol := colFirstDay + 2*len(days) + 2
		w.cell(boxCol, 5, "Time Stamps from Client Summary", styles.bold)
		w.cell(boxCol, 6, "Start time:", 0)
		w.cell(boxCol+1, 6, earliest.Format(timestampDisplayFormat), 0)
		w.cell(boxCol, 7, "End time:", 0)
		w.cell(boxCol+1, 7, latest.Format(timestampDisplayFormat), 0)
	}

	// Location blocks: one summary row per location, then the SSID
	// breakdown, then buildings (floor aggregation) or raw sublocations.
	groupKey := func(r models.SessionRecord) string { return r.Sublocation }
	if aggregateFloors {
		groupKey = func(r models.SessionRecord) string { return r.Building() }
	}
	levels := []levelSpec{
		{
			key:        func(r models.SessionRecord) string { return r.SSID },
			labelCol:   colSSID,
			indent:     "    ",
			labelStyle: styles.ssidName,
			valueStyle: styles.ssid,
		},
		{
			key:        groupKey,
			labelCol:   colLocation,
			indent:     "        ",
			labelStyle: styles.subSiteLoc,
			valueStyle: styles.subSite,
		},
	}

	row := rowFirstData
	for _, loc := range groupBy(records, func(r models.SessionRecord) string { return r.Location }) {
		writeDataRow(w, styles, row, levelSpec{
			labelCol:   colLocation,
			indent:     "    ",
			labelStyle: styles.mainSiteLoc,
			valueStyle: styles.mainSite,
		}, loc.Key, loc.Records, days)
		row++

		for _, level := range levels {
			for _, sub := range groupBy(loc.Records, level.key) {
				writeDataRow(w, styles, row, level, sub.Key, sub.Records, days)
				row++
			}
		}
	}

	if w.err != nil {
		return fmt.Errorf("render sheet %q: %w", sheetName, w.err)
	}
	return nil
}

// writeDataRow writes one breakdown row: indented label, whole-range tally,
// and the per-day tally pairs with alternating banding.
func writeDataRow(w *sheetWriter, styles *styleSet, row int, level levelSpec, label string, records []models.SessionRecord, days []time.Time) {
	t := tally(records)
	w.cell(level.labelCol, row, level.indent+label, level.labelStyle)
	w.cell(colSessions, row, t.Sessions, level.valueStyle)
	w.cell(colUsers, row, t.Users, level.valueStyle)

	for i, dt := range dayTallies(records, days) {
		base := colFirstDay + i*2
		w.cell(base, row, dt.Sessions, styles.daySessions[i%2])
		w.cell(base+1, row, dt.Users, styles.dayUsers[i%2])
	}
}

// endTimeBounds returns the earliest and latest normalized end times of the
// subset; ok is false for an empty subset (the box is omitted then).
func endTimeBounds(records []models.SessionRecord) (earliest, latest time.Time, ok bool) {
	for _, r := range records {
		if !ok || r.EndedAt.Before(earliest) {
			earliest = r.EndedAt
		}
		if !ok || r.EndedAt.After(latest) {
			latest = r.EndedAt
		}
		ok = true
	}
	return earliest, latest, ok
}
