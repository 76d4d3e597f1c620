// Wifistats - WiFi Client Session Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wifistats

// Package models defines the data structures shared by ingestion and report
// generation: the WiFi client session record and its derived fields.
package models

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SessionRecord represents one client connection event parsed from a
// controller CSV export.
//
// The string fields hold the trimmed cell values exactly as ingested; optional
// columns absent from a file's header row are empty strings. StartedAt,
// EndedAt and the fields derived from them are zero until Normalize is called
// by the report builder, which is the one stage where an unparseable
// timestamp is a hard error (aggregate correctness depends on every row being
// comparable).
type SessionRecord struct {
	Location       string `json:"location"`
	Sublocation    string `json:"sublocation"`
	AssociateVLAN  string `json:"associate_vlan,omitempty"`
	DeviceMAC      string `json:"device_mac,omitempty"`
	ClientMAC      string `json:"client_mac"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	ClientIP       string `json:"client_ip,omitempty"`
	ClientHostName string `json:"client_host_name,omitempty"`
	ClientOSName   string `json:"client_os_name,omitempty"`
	BSSID          string `json:"bssid,omitempty"`
	SSID           string `json:"ssid"`

	// Derived fields, populated by Normalize.
	StartedAt time.Time `json:"-"`
	EndedAt   time.Time `json:"-"`

	// ConnectedTime is EndedAt - StartedAt in seconds. A negative value
	// (end before start) is accepted and preserved as-is.
	ConnectedTime float64 `json:"-"`

	// SessionDate is EndedAt truncated to the calendar day.
	SessionDate time.Time `json:"-"`
}

// Normalize parses StartTime and EndTime and populates the derived fields.
// Both timestamps must match one of the accepted formats.
func (r *SessionRecord) Normalize() error {
	start, err := NormalizeTimestamp(r.StartTime)
	if err != nil {
		return fmt.Errorf("start_time: %w", err)
	}
	end, err := NormalizeTimestamp(r.EndTime)
	if err != nil {
		return fmt.Errorf("end_time: %w", err)
	}

	r.StartedAt = start
	r.EndedAt = end
	r.ConnectedTime = end.Sub(start).Seconds()
	r.SessionDate = TruncateDay(end)
	return nil
}

// Building returns the building portion of the sublocation: the substring
// before the first '|', or the whole sublocation when no '|' is present,
// trimmed of surrounding whitespace. Sublocations follow the "building|floor"
// convention but free text is accepted.
func (r *SessionRecord) Building() string {
	name, _, _ := strings.Cut(r.Sublocation, "|")
	return strings.TrimSpace(name)
}

// ID returns a deterministic UUID for the record, derived from the client
// MAC and raw timestamps. Re-ingesting the same row always produces the same
// ID, which keeps log correlation stable across runs.
func (r *SessionRecord) ID() uuid.UUID {
	input := fmt.Sprintf("wifistats:%s:%s:%s:%s", r.ClientMAC, r.StartTime, r.EndTime, r.BSSID)
	hash := sha256.Sum256([]byte(input))

	id, err := uuid.FromBytes(hash[:16])
	if err != nil {
		// Cannot happen with 16 bytes of input
		return uuid.New()
	}

	// Set version 5 and variant bits
	id[6] = (id[6] & 0x0f) | 0x50
	id[8] = (id[8] & 0x3f) | 0x80

	return id
}

// TruncateDay strips the time-of-day component, keeping the timestamp's
// location.
func TruncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
