// Wifistats - WiFi Client Session Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wifistats

package report

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/xuri/excelize/v2"

	"github.com/tomtom215/wifistats/internal/models"
)

func sessionRec(location, sublocation, ssid, mac, start, end string) models.SessionRecord {
	return models.SessionRecord{
		Location:    location,
		Sublocation: sublocation,
		SSID:        ssid,
		ClientMAC:   mac,
		StartTime:   start,
		EndTime:     end,
	}
}

func twoSessionFixture() []models.SessionRecord {
	return []models.SessionRecord{
		sessionRec("Site A", "Bldg1|F1", "Guest", "AA:BB:CC:00:00:01",
			"2024-01-01 08:00:00", "2024-01-01 08:30:00"),
		sessionRec("Site A", "Bldg1|F2", "Guest", "AA:BB:CC:00:00:02",
			"2024-01-01 08:45:00", "2024-01-01 09:15:00"),
	}
}

func buildParams(t *testing.T, sites ...string) Params {
	t.Helper()
	return Params{
		OutputPath: filepath.Join(t.TempDir(), "report.xlsx"),
		Sites:      sites,
	}
}

func openWorkbook(t *testing.T, path string) *excelize.File {
	t.Helper()
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func cellValue(t *testing.T, f *excelize.File, sheet, cell string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, cell)
	if err != nil {
		t.Fatalf("get %s!%s: %v", sheet, cell, err)
	}
	return v
}

func TestBuildParamsValidation(t *testing.T) {
	t.Parallel()

	records := twoSessionFixture()

	t.Run("missing output path", func(t *testing.T) {
		_, err := Build(records, Params{Sites: []string{"Site A"}})
		if err == nil {
			t.Fatal("expected validation error")
		}
	})

	t.Run("no sites", func(t *testing.T) {
		_, err := Build(records, Params{OutputPath: filepath.Join(t.TempDir(), "r.xlsx")})
		if err == nil {
			t.Fatal("expected validation error")
		}
	})

	t.Run("tab per building without floor aggregation", func(t *testing.T) {
		p := buildParams(t, "Site A")
		p.TabPerBuilding = true
		_, err := Build(records, p)
		if !errors.Is(err, errTabPerBuildingWithoutAggregate) {
			t.Fatalf("err = %v, want errTabPerBuildingWithoutAggregate", err)
		}
	})

	t.Run("inverted date range", func(t *testing.T) {
		p := buildParams(t, "Site A")
		p.DateFrom = day(2024, 1, 5)
		p.DateTo = day(2024, 1, 1)
		_, err := Build(records, p)
		if !errors.Is(err, errInvertedDateRange) {
			t.Fatalf("err = %v, want errInvertedDateRange", err)
		}
	})
}

func TestBuildNoRecords(t *testing.T) {
	t.Parallel()

	_, err := Build(nil, buildParams(t, "Site A"))
	if !errors.Is(err, ErrNoRecords) {
		t.Fatalf("err = %v, want ErrNoRecords", err)
	}
}

func TestBuildBadTimestampAborts(t *testing.T) {
	t.Parallel()

	records := twoSessionFixture()
	records[1].EndTime = "not-a-date"

	p := buildParams(t, "Site A")
	_, err := Build(records, p)
	if err == nil {
		t.Fatal("expected error for unparseable timestamp")
	}
	if !strings.Contains(err.Error(), "invalid date format") {
		t.Errorf("err = %v, want invalid date format", err)
	}
	if _, statErr := os.Stat(p.OutputPath); !errors.Is(statErr, os.ErrNotExist) {
		t.Error("workbook written despite aborted run")
	}
}

func TestBuildInputNotModified(t *testing.T) {
	t.Parallel()

	records := twoSessionFixture()
	if _, err := Build(records, buildParams(t, "Site A")); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !records[0].EndedAt.IsZero() || !records[0].SessionDate.IsZero() {
		t.Error("Build normalized the caller's records in place")
	}
}

func TestBuildEndToEnd(t *testing.T) {
	t.Parallel()

	p := buildParams(t, "Site A")
	summary, err := Build(twoSessionFixture(), p)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if summary.Records != 2 || summary.RecordsInRange != 2 {
		t.Errorf("summary records = %d/%d, want 2/2", summary.Records, summary.RecordsInRange)
	}
	if summary.DayColumns != 1 {
		t.Errorf("summary.DayColumns = %d, want 1", summary.DayColumns)
	}
	if len(summary.Sheets) != 1 {
		t.Fatalf("got %d sheets in summary, want 1", len(summary.Sheets))
	}
	if s := summary.Sheets[0]; s.Name != "Site A" || s.Sessions != 2 || s.Users != 2 {
		t.Errorf("sheet summary = %+v, want {Site A 2 2}", s)
	}

	f := openWorkbook(t, p.OutputPath)
	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != "Site A" {
		t.Fatalf("sheet list = %v, want [Site A]", sheets)
	}

	checks := []struct {
		cell string
		want string
	}{
		{"A1", "WiFi Statistics Summary Report"},
		{"A2", "Site A"},
		{"C4", "Client User Summary"},
		{"C5", "Number of Sessions"},
		{"D5", "Number of Users"},
		{"C6", "2"},
		{"D6", "2"},
		{"A8", "Locations"},
		{"B8", "SSID"},

		// single day column pair at F/G
		{"F6", "01-Jan"},
		{"F7", "Sessions"},
		{"G7", "Users"},
		{"F8", "2"},
		{"G8", "2"},

		// time stamps box two columns right of the day grid
		{"J5", "Time Stamps from Client Summary"},
		{"J6", "Start time:"},
		{"K6", "2024-01-01 08:30:00"},
		{"J7", "End time:"},
		{"K7", "2024-01-01 09:15:00"},

		// location block: summary, SSID breakdown, sublocation breakdown
		{"A9", "    Site A"},
		{"C9", "2"},
		{"D9", "2"},
		{"F9", "2"},
		{"G9", "2"},
		{"B10", "    Guest"},
		{"C10", "2"},
		{"D10", "2"},
		{"A11", "        Bldg1|F1"},
		{"C11", "1"},
		{"D11", "1"},
		{"F11", "1"},
		{"A12", "        Bldg1|F2"},
		{"C12", "1"},
		{"D12", "1"},
	}
	for _, c := range checks {
		if got := cellValue(t, f, "Site A", c.cell); got != c.want {
			t.Errorf("%s = %q, want %q", c.cell, got, c.want)
		}
	}
}

func TestBuildCombinedSheet(t *testing.T) {
	t.Parallel()

	records := append(twoSessionFixture(),
		sessionRec("Site B", "Annex|F1", "Corp", "AA:BB:CC:00:00:03",
			"2024-01-02 10:00:00", "2024-01-02 11:00:00"))

	p := buildParams(t, "Site A", "Site B")
	summary, err := Build(records, p)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	f := openWorkbook(t, p.OutputPath)
	sheets := f.GetSheetList()
	want := []string{"Report", "Site A", "Site B"}
	if len(sheets) != len(want) {
		t.Fatalf("sheet list = %v, want %v", sheets, want)
	}
	for i := range want {
		if sheets[i] != want[i] {
			t.Errorf("sheets[%d] = %q, want %q", i, sheets[i], want[i])
		}
	}

	// The combined sheet covers both sites and both days.
	if got := cellValue(t, f, "Report", "C6"); got != "3" {
		t.Errorf("combined sessions = %q, want 3", got)
	}
	if got := cellValue(t, f, "Report", "H6"); got != "02-Jan" {
		t.Errorf("second day header = %q, want 02-Jan", got)
	}

	// Single-site sheets still carry the shared day grid.
	if got := cellValue(t, f, "Site A", "H6"); got != "02-Jan" {
		t.Errorf("Site A second day header = %q, want 02-Jan", got)
	}
	if got := cellValue(t, f, "Site A", "H8"); got != "0" {
		t.Errorf("Site A sessions on its empty day = %q, want 0", got)
	}

	if len(summary.Sheets) != 3 {
		t.Errorf("got %d sheets in summary, want 3", len(summary.Sheets))
	}
}

func TestBuildSkipsEmptySite(t *testing.T) {
	t.Parallel()

	p := buildParams(t, "Site A", "Ghost")
	summary, err := Build(twoSessionFixture(), p)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	f := openWorkbook(t, p.OutputPath)
	for _, sheet := range f.GetSheetList() {
		if sheet == "Ghost" {
			t.Error("empty site rendered as a sheet")
		}
	}
	if len(summary.Sheets) != 2 {
		t.Errorf("got %d sheets, want 2 (Report + Site A)", len(summary.Sheets))
	}
}

func TestBuildNoMatchingRows(t *testing.T) {
	t.Parallel()

	_, err := Build(twoSessionFixture(), buildParams(t, "Ghost"))
	if !errors.Is(err, ErrNoMatchingRows) {
		t.Fatalf("err = %v, want ErrNoMatchingRows", err)
	}
}

func TestBuildAggregateFloors(t *testing.T) {
	t.Parallel()

	p := buildParams(t, "Site A")
	p.AggregateFloors = true
	if _, err := Build(twoSessionFixture(), p); err != nil {
		t.Fatalf("Build: %v", err)
	}

	f := openWorkbook(t, p.OutputPath)

	// Both floors collapse into one building row.
	if got := cellValue(t, f, "Site A", "A11"); got != "        Bldg1" {
		t.Errorf("A11 = %q, want building-level label", got)
	}
	if got := cellValue(t, f, "Site A", "C11"); got != "2" {
		t.Errorf("building sessions = %q, want 2", got)
	}
	if got := cellValue(t, f, "Site A", "A12"); got != "" {
		t.Errorf("A12 = %q, want empty (no second breakdown row)", got)
	}
}

func TestBuildTabPerBuilding(t *testing.T) {
	t.Parallel()

	records := append(twoSessionFixture(),
		sessionRec("Site A", "Annex|F1", "Corp", "AA:BB:CC:00:00:03",
			"2024-01-01 10:00:00", "2024-01-01 11:00:00"))

	p := buildParams(t, "Site A")
	p.AggregateFloors = true
	p.TabPerBuilding = true
	if _, err := Build(records, p); err != nil {
		t.Fatalf("Build: %v", err)
	}

	f := openWorkbook(t, p.OutputPath)
	sheets := f.GetSheetList()
	want := []string{"Site A", "Bldg - Annex", "Bldg - Bldg1"}
	if len(sheets) != len(want) {
		t.Fatalf("sheet list = %v, want %v", sheets, want)
	}
	for i := range want {
		if sheets[i] != want[i] {
			t.Errorf("sheets[%d] = %q, want %q", i, sheets[i], want[i])
		}
	}

	if got := cellValue(t, f, "Bldg - Bldg1", "C6"); got != "2" {
		t.Errorf("Bldg1 sessions = %q, want 2", got)
	}
	if got := cellValue(t, f, "Bldg - Annex", "C6"); got != "1" {
		t.Errorf("Annex sessions = %q, want 1", got)
	}
}

func TestBuildDateFilter(t *testing.T) {
	t.Parallel()

	records := append(twoSessionFixture(),
		sessionRec("Site A", "Bldg1|F1", "Guest", "AA:BB:CC:00:00:04",
			"2024-01-05 10:00:00", "2024-01-05 11:00:00"))

	p := buildParams(t, "Site A")
	p.DateFrom = day(2024, 1, 1)
	p.DateTo = day(2024, 1, 1)
	summary, err := Build(records, p)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if summary.Records != 3 {
		t.Errorf("summary.Records = %d, want 3", summary.Records)
	}
	if summary.RecordsInRange != 2 {
		t.Errorf("summary.RecordsInRange = %d, want 2", summary.RecordsInRange)
	}
	if summary.DayColumns != 1 {
		t.Errorf("summary.DayColumns = %d, want 1", summary.DayColumns)
	}

	f := openWorkbook(t, p.OutputPath)
	if got := cellValue(t, f, "Site A", "H6"); got != "" {
		t.Errorf("H6 = %q, want no second day column", got)
	}
}

func TestSummaryWriteJSON(t *testing.T) {
	t.Parallel()

	p := buildParams(t, "Site A")
	summary, err := Build(twoSessionFixture(), p)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	path := filepath.Join(t.TempDir(), "summary.json")
	if err := summary.WriteJSON(path); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	var decoded Summary
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal summary: %v", err)
	}
	if decoded.RunID != summary.RunID {
		t.Errorf("RunID = %s, want %s", decoded.RunID, summary.RunID)
	}
	if decoded.Records != 2 || len(decoded.Sheets) != 1 {
		t.Errorf("decoded = %+v, want 2 records and 1 sheet", decoded)
	}
}
