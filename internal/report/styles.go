// Wifistats - WiFi Client Session Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wifistats

package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Layout colors. The dark band and grey tones follow the established report
// template so regenerated reports drop into existing decks unchanged.
const (
	colorBand      = "5C5B5A" // title / header band fill
	colorWhite     = "FFFFFF"
	colorSSIDRow   = "C0C0C0" // SSID row fill
	colorDayEven   = "F2F2F2" // even day column banding
	colorDayOdd    = "FFFFFF" // odd day column banding
	colorSeparator = "808080" // vertical day separator borders
	colorSiteRule  = "0000EE" // underline below location summary rows
	colorSubRule   = "800080" // underline below building/floor rows
)

// Border styles (spreadsheet border weight indices).
const (
	borderThin   = 1
	borderMedium = 2
)

// styleSet is the fixed table of named style IDs used by sheet rendering.
// All styles are registered once per workbook; the renderer only ever refers
// to these IDs.
type styleSet struct {
	title        int // merged report title band
	sheetLabel   int // merged sheet-name label
	header       int // static and day sub-headers
	headerDaySep int // day sub-header with leading vertical separator
	dayHeader    int // merged per-day date header
	columnTitle  int // underlined summary column titles
	bold         int // plain bold annotations

	mainSite    int // location summary values
	mainSiteLoc int // location summary label
	subSite     int // building/sublocation values
	subSiteLoc  int // building/sublocation label
	ssid        int // SSID row values
	ssidName    int // SSID row label

	// Day cell styles indexed by column parity (0 even, 1 odd) for the
	// alternating banding.
	daySessions [2]int
	dayUsers    [2]int
}

// newStyleSet registers every style with the workbook and returns the table.
func newStyleSet(f *excelize.File) (*styleSet, error) {
	s := &styleSet{}

	type styleTarget struct {
		dst   *int
		style *excelize.Style
	}

	bandFill := excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{colorBand}}
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center"}

	rowBorder := func(extra ...excelize.Border) []excelize.Border {
		borders := []excelize.Border{
			{Type: "top", Style: borderThin},
			{Type: "bottom", Style: borderThin},
		}
		return append(borders, extra...)
	}

	targets := []styleTarget{
		{&s.title, &excelize.Style{
			Alignment: center,
			Fill:      bandFill,
			Font:      &excelize.Font{Color: colorWhite, Size: 14},
		}},
		{&s.sheetLabel, &excelize.Style{
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
			Fill:      bandFill,
			Font:      &excelize.Font{Color: colorWhite, Size: 12},
		}},
		{&s.header, &excelize.Style{
			Alignment: center,
			Fill:      bandFill,
			Font:      &excelize.Font{Color: colorWhite, Size: 10},
			Border:    []excelize.Border{{Type: "bottom", Style: borderMedium}},
		}},
		{&s.headerDaySep, &excelize.Style{
			Alignment: center,
			Fill:      bandFill,
			Font:      &excelize.Font{Color: colorWhite, Size: 10},
			Border: []excelize.Border{
				{Type: "bottom", Style: borderMedium},
				{Type: "left", Style: borderMedium, Color: colorSeparator},
			},
		}},
		{&s.dayHeader, &excelize.Style{
			Alignment: center,
			Font:      &excelize.Font{Bold: true, Size: 10},
			Border: []excelize.Border{
				{Type: "bottom", Style: borderMedium},
				{Type: "left", Style: borderMedium, Color: colorSeparator},
			},
		}},
		{&s.columnTitle, &excelize.Style{
			Alignment: &excelize.Alignment{Horizontal: "center"},
			Font:      &excelize.Font{Size: 10, Underline: "single"},
		}},
		{&s.bold, &excelize.Style{
			Font: &excelize.Font{Bold: true},
		}},
		{&s.mainSite, &excelize.Style{
			Alignment: &excelize.Alignment{Horizontal: "right"},
			Font:      &excelize.Font{Bold: true, Size: 10},
			Border:    []excelize.Border{{Type: "bottom", Style: borderThin, Color: colorSiteRule}},
		}},
		{&s.mainSiteLoc, &excelize.Style{
			Alignment: &excelize.Alignment{Horizontal: "left"},
			Font:      &excelize.Font{Bold: true, Size: 10},
			Border:    []excelize.Border{{Type: "bottom", Style: borderThin, Color: colorSiteRule}},
		}},
		{&s.subSite, &excelize.Style{
			Alignment: &excelize.Alignment{Horizontal: "right"},
			Font:      &excelize.Font{Size: 10},
			Border:    []excelize.Border{{Type: "bottom", Style: borderThin, Color: colorSubRule}},
		}},
		{&s.subSiteLoc, &excelize.Style{
			Alignment: &excelize.Alignment{Horizontal: "left"},
			Font:      &excelize.Font{Size: 10},
			Border:    []excelize.Border{{Type: "bottom", Style: borderThin, Color: colorSubRule}},
		}},
		{&s.ssid, &excelize.Style{
			Alignment: &excelize.Alignment{Horizontal: "right"},
			Font:      &excelize.Font{Size: 10},
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{colorSSIDRow}},
		}},
		{&s.ssidName, &excelize.Style{
			Alignment: &excelize.Alignment{Horizontal: "left"},
			Font:      &excelize.Font{Size: 10},
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{colorSSIDRow}},
		}},
	}

	dayFills := [2]string{colorDayEven, colorDayOdd}
	for parity, fill := range dayFills {
		targets = append(targets,
			styleTarget{&s.daySessions[parity], &excelize.Style{
				Alignment: &excelize.Alignment{Horizontal: "right"},
				Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fill}},
				Border: rowBorder(
					excelize.Border{Type: "left", Style: borderMedium, Color: colorSeparator},
					excelize.Border{Type: "right", Style: borderMedium, Color: colorSeparator},
				),
			}},
			styleTarget{&s.dayUsers[parity], &excelize.Style{
				Alignment: &excelize.Alignment{Horizontal: "right"},
				Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fill}},
				Border:    rowBorder(),
			}},
		)
	}

	for _, t := range targets {
		id, err := f.NewStyle(t.style)
		if err != nil {
			return nil, fmt.Errorf("register style: %w", err)
		}
		*t.dst = id
	}

	return s, nil
}
