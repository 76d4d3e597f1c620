// Wifistats - WiFi Client Session Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wifistats

package report

import "errors"

// Sentinel errors for the no-data and parameter failure classes. Each aborts
// the run before any output is produced.
var (
	// ErrNoRecords is returned when Build is called with no ingested records.
	ErrNoRecords = errors.New("no records loaded")

	// ErrNoMatchingRows is returned when no record survives the site and
	// date-range filters, so there is nothing to render.
	ErrNoMatchingRows = errors.New("no rows matched the selected sites and date range")

	errTabPerBuildingWithoutAggregate = errors.New("tab-per-building requires aggregate-floors")
	errInvertedDateRange              = errors.New("date_to is before date_from")
)
