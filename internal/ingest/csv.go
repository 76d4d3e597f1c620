// Wifistats - WiFi Client Session Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wifistats

package ingest

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/tomtom215/wifistats/internal/models"
)

// expectedHeaders enumerates every column the parser understands. The first
// four are the trigger columns: a row containing all of them, in any order
// and position, is the header row. The remaining columns are optional; a file
// without them simply yields records with those fields empty.
var expectedHeaders = []string{
	"location", "sublocation", "associate_vlan", "device_mac", "client_mac",
	"start_time", "end_time", "client_ip", "client_host_name", "client_os_name",
	"bssid", "ssid",
}

// triggerHeaderCount is how many of expectedHeaders (from the front) must all
// be present in a row for it to be recognized as the header row.
const triggerHeaderCount = 4

// columnMap maps each recognized header name to its column index in one file.
// It is built once per file from the detected header row.
type columnMap map[string]int

// isHeaderRow reports whether row contains every trigger column name.
func isHeaderRow(row []string) bool {
	for _, want := range expectedHeaders[:triggerHeaderCount] {
		found := false
		for _, cell := range row {
			if cell == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// buildColumnMap maps the expected headers that are actually present in the
// header row to their indices. Unknown columns are ignored.
func buildColumnMap(header []string) columnMap {
	cm := make(columnMap, len(expectedHeaders))
	for _, key := range expectedHeaders {
		for idx, cell := range header {
			if cell == key {
				cm[key] = idx
				break
			}
		}
	}
	return cm
}

// parseCSV scans r for the header row, then converts every subsequent row of
// sufficient length into a SessionRecord of trimmed values. Rows shorter than
// the number of mapped columns are counted as skipped. A reader whose header
// row is never found contributes zero records and headerFound=false; that is
// not an error.
func parseCSV(r io.Reader) (records []models.SessionRecord, skipped int, headerFound bool, err error) {
	reader := csv.NewReader(stripBOM(r))
	reader.FieldsPerRecord = -1

	var cm columnMap
	for {
		row, err := reader.Read()
		if err == io.EOF {
			return nil, 0, false, nil // header never found
		}
		if err != nil {
			return nil, 0, false, fmt.Errorf("scan for header row: %w", err)
		}
		if isHeaderRow(row) {
			cm = buildColumnMap(row)
			break
		}
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, skipped, true, fmt.Errorf("read data row: %w", err)
		}
		if len(row) < len(cm) {
			skipped++
			continue
		}

		var rec models.SessionRecord
		for key, idx := range cm {
			applyField(&rec, key, strings.TrimSpace(row[idx]))
		}
		records = append(records, rec)
	}

	return records, skipped, true, nil
}

// applyField assigns a named CSV cell to the matching record field.
func applyField(rec *models.SessionRecord, key, value string) {
	switch key {
	case "location":
		rec.Location = value
	case "sublocation":
		rec.Sublocation = value
	case "associate_vlan":
		rec.AssociateVLAN = value
	case "device_mac":
		rec.DeviceMAC = value
	case "client_mac":
		rec.ClientMAC = value
	case "start_time":
		rec.StartTime = value
	case "end_time":
		rec.EndTime = value
	case "client_ip":
		rec.ClientIP = value
	case "client_host_name":
		rec.ClientHostName = value
	case "client_os_name":
		rec.ClientOSName = value
	case "bssid":
		rec.BSSID = value
	case "ssid":
		rec.SSID = value
	}
}

// stripBOM removes a UTF-8 byte order mark from the start of r if present.
// Controller exports written on Windows routinely carry one.
func stripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	head, err := br.Peek(3)
	if err == nil && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
		_, _ = br.Discard(3)
	}
	return br
}
