// Wifistats - WiFi Client Session Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wifistats

package report

import (
	"fmt"
	"strings"
)

// maxSheetNameLen is the spreadsheet format's sheet-name limit.
const maxSheetNameLen = 31

// combinedSheetName is the sheet covering the union of all selected sites,
// emitted when more than one site is selected.
const combinedSheetName = "Report"

// buildingSheetPrefix prefixes per-building sheet names.
const buildingSheetPrefix = "Bldg - "

// sheetNamer produces workbook-unique sheet names within the 31-character
// limit. Truncation can collide (two long building names sharing a prefix);
// collisions get a numeric suffix instead of silently overwriting a sheet.
type sheetNamer struct {
	taken map[string]struct{}
}

func newSheetNamer() *sheetNamer {
	return &sheetNamer{taken: make(map[string]struct{})}
}

// invalidSheetChars are rejected by the spreadsheet format in sheet names.
var invalidSheetChars = strings.NewReplacer(
	":", "-", "\\", "-", "/", "-", "?", "-", "*", "-", "[", "-", "]", "-",
)

// name returns a sanitized, truncated, unique sheet name for base.
func (n *sheetNamer) name(base string) string {
	base = invalidSheetChars.Replace(base)
	candidate := truncate(base, maxSheetNameLen)

	if _, ok := n.taken[candidate]; ok {
		for i := 2; ; i++ {
			suffix := fmt.Sprintf(" (%d)", i)
			candidate = truncate(base, maxSheetNameLen-len(suffix)) + suffix
			if _, ok := n.taken[candidate]; !ok {
				break
			}
		}
	}

	n.taken[candidate] = struct{}{}
	return candidate
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
