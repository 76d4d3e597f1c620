// Wifistats - WiFi Client Session Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wifistats

// Package report builds the formatted spreadsheet report from ingested
// session records: it normalizes and filters the records, aggregates session
// and unique-user counts across location, SSID, building/floor and per-day
// dimensions, and renders one fixed-layout sheet per reporting scope.
package report

import (
	"time"

	"github.com/tomtom215/wifistats/internal/validation"
)

// Params carries the user's filter and aggregation choices for one report run.
type Params struct {
	// OutputPath is the workbook destination.
	OutputPath string `validate:"required"`

	// Sites is the set of selected site names. At least one is required;
	// selecting more than one adds a combined "Report" sheet.
	Sites []string `validate:"min=1,dive,required"`

	// DateFrom / DateTo bound the inclusive session-date filter. A zero
	// value leaves that side unbounded. Time-of-day is ignored; bounds
	// are compared at day granularity.
	DateFrom time.Time
	DateTo   time.Time

	// AggregateFloors replaces the per-floor (sublocation) breakdown rows
	// with building-level totals.
	AggregateFloors bool

	// TabPerBuilding emits one sheet per distinct building within the
	// selection. Requires AggregateFloors.
	TabPerBuilding bool

	// SummaryPath, when set, is where the JSON run summary is written.
	SummaryPath string
}

// Validate checks the parameters. TabPerBuilding without AggregateFloors is
// rejected; the original form greys the per-building option out unless floor
// aggregation is on.
func (p *Params) Validate() error {
	if err := validation.ValidateStruct(p); err != nil {
		return err
	}
	if p.TabPerBuilding && !p.AggregateFloors {
		return errTabPerBuildingWithoutAggregate
	}
	if !p.DateFrom.IsZero() && !p.DateTo.IsZero() && p.DateTo.Before(p.DateFrom) {
		return errInvertedDateRange
	}
	return nil
}
