// Wifistats - WiFi Client Session Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wifistats

package models

import (
	"fmt"
	"time"
)

// TimestampFormats lists the accepted textual timestamp formats, tried in
// order. Controller exports use the first form; older exports use the short
// US form without seconds.
var TimestampFormats = []string{
	"2006-01-02 15:04:05",
	"1/2/06 15:04",
}

// NormalizeTimestamp parses a timestamp in one of the accepted formats.
// It returns the first successful parse, or an error naming the offending
// value when no format matches.
func NormalizeTimestamp(value string) (time.Time, error) {
	for _, format := range TimestampFormats {
		if t, err := time.Parse(format, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date format: %q", value)
}
