// Wifistats - WiFi Client Session Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wifistats

package report

import (
	"sort"
	"time"

	"github.com/tomtom215/wifistats/internal/models"
)

// Tally is the uniform aggregate computed at every granularity of the report:
// whole sheet, location, SSID, building/sublocation, and each per-day cell.
// Sessions is the row count of the subset, Users the number of distinct
// client MACs in it.
type Tally struct {
	Sessions int `json:"sessions"`
	Users    int `json:"users"`
}

// tally computes the Tally for a record subset.
func tally(records []models.SessionRecord) Tally {
	macs := make(map[string]struct{}, len(records))
	for _, r := range records {
		macs[r.ClientMAC] = struct{}{}
	}
	return Tally{Sessions: len(records), Users: len(macs)}
}

// group is one key's records within a grouped subset.
type group struct {
	Key     string
	Records []models.SessionRecord
}

// groupBy partitions records by the given key, preserving first-appearance
// order of the keys. Every output number in the report is a Tally over one
// of these groups (or an intersection of them), so the same partitioning is
// reused at every nesting level.
func groupBy(records []models.SessionRecord, key func(models.SessionRecord) string) []group {
	index := make(map[string]int)
	var groups []group
	for _, r := range records {
		k := key(r)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, group{Key: k})
		}
		groups[i].Records = append(groups[i].Records, r)
	}
	return groups
}

// filterDay returns the records whose session date equals day.
func filterDay(records []models.SessionRecord, day time.Time) []models.SessionRecord {
	var out []models.SessionRecord
	for _, r := range records {
		if r.SessionDate.Equal(day) {
			out = append(out, r)
		}
	}
	return out
}

// dayTallies computes the Tally of records for each day column in order.
func dayTallies(records []models.SessionRecord, days []time.Time) []Tally {
	out := make([]Tally, len(days))
	for i, day := range days {
		out[i] = tally(filterDay(records, day))
	}
	return out
}

// dayColumns returns the sorted, deduplicated session dates across the
// filtered record set. Every sheet of a run shares this column grid, so a
// sheet without data on some day still lines up with the others.
func dayColumns(records []models.SessionRecord) []time.Time {
	seen := make(map[time.Time]struct{})
	var days []time.Time
	for _, r := range records {
		if _, ok := seen[r.SessionDate]; ok {
			continue
		}
		seen[r.SessionDate] = struct{}{}
		days = append(days, r.SessionDate)
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// filterSites returns the records whose location is in sites.
func filterSites(records []models.SessionRecord, sites []string) []models.SessionRecord {
	want := make(map[string]struct{}, len(sites))
	for _, s := range sites {
		want[s] = struct{}{}
	}
	var out []models.SessionRecord
	for _, r := range records {
		if _, ok := want[r.Location]; ok {
			out = append(out, r)
		}
	}
	return out
}

// filterRange applies the inclusive session-date filter. Zero bounds leave
// that side unbounded; both bounds are compared at day granularity.
func filterRange(records []models.SessionRecord, from, to time.Time) []models.SessionRecord {
	if from.IsZero() && to.IsZero() {
		return records
	}
	fromDay := models.TruncateDay(from)
	toDay := models.TruncateDay(to)

	var out []models.SessionRecord
	for _, r := range records {
		if !from.IsZero() && r.SessionDate.Before(fromDay) {
			continue
		}
		if !to.IsZero() && r.SessionDate.After(toDay) {
			continue
		}
		out = append(out, r)
	}
	return out
}
