// Wifistats - WiFi Client Session Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wifistats

package ingest

import "time"

// Stats tracks the progress and outcome of one ingestion run.
type Stats struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	// Files is the number of CSV files parsed, including files extracted
	// from archives.
	Files int `json:"files"`

	// Archives is the number of ZIP archives opened.
	Archives int `json:"archives"`

	// BytesRead is the total size of all CSV files parsed.
	BytesRead int64 `json:"bytes_read"`

	// Records is the number of session records produced.
	Records int `json:"records"`

	// SkippedRows counts data rows dropped for being shorter than the
	// file's mapped header set.
	SkippedRows int `json:"skipped_rows"`

	// HeaderlessFiles counts CSV files whose header row was never found.
	// Such files contribute zero records but do not fail the run.
	HeaderlessFiles int `json:"headerless_files"`
}

// Duration returns the elapsed time of the ingestion run.
func (s *Stats) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}
