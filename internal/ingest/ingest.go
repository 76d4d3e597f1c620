// Wifistats - WiFi Client Session Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wifistats

// Package ingest parses WiFi client-session CSV exports, optionally bundled
// in ZIP archives, into normalized session records.
//
// Controller exports are heterogeneous: header rows appear at varying
// offsets, optional columns come and go, and archives mix CSVs with other
// files. The parser scans each file for a row containing the four trigger
// columns (location, sublocation, associate_vlan, device_mac), maps whichever
// of the twelve expected columns are present, and converts the remaining rows
// into records. An unreadable file or corrupt archive aborts the whole run;
// a file whose header row is never found silently contributes zero records.
package ingest

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/tomtom215/wifistats/internal/logging"
	"github.com/tomtom215/wifistats/internal/models"
)

// Ingest parses the given CSV and/or ZIP files and returns the combined
// session records, in input order. ZIP archives have their contained CSV
// entries extracted to a scratch directory that is removed before Ingest
// returns. Any unreadable file or malformed archive fails the whole call.
func Ingest(paths []string) ([]models.SessionRecord, *Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	defer func() { stats.EndTime = time.Now() }()

	tmpDir, err := os.MkdirTemp("", "wifistats-ingest-*")
	if err != nil {
		return nil, stats, fmt.Errorf("create scratch directory: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			logging.Warn().Err(err).Str("dir", tmpDir).Msg("Failed to remove scratch directory")
		}
	}()

	var combined []models.SessionRecord
	for _, path := range paths {
		switch {
		case strings.HasSuffix(strings.ToLower(path), ".csv"):
			records, err := ingestCSV(path, stats)
			if err != nil {
				return nil, stats, err
			}
			combined = append(combined, records...)

		case strings.HasSuffix(strings.ToLower(path), ".zip"):
			records, err := ingestArchive(path, tmpDir, stats)
			if err != nil {
				return nil, stats, err
			}
			combined = append(combined, records...)

		default:
			return nil, stats, fmt.Errorf("unsupported file type: %s", path)
		}
	}

	stats.Records = len(combined)
	logging.Info().
		Int("files", stats.Files).
		Int("archives", stats.Archives).
		Str("bytes_read", humanize.Bytes(uint64(stats.BytesRead))).
		Int("records", stats.Records).
		Int("skipped_rows", stats.SkippedRows).
		Dur("duration", stats.Duration()).
		Msg("Ingestion completed")

	return combined, stats, nil
}

// ingestCSV parses a single CSV file.
func ingestCSV(path string, stats *Stats) ([]models.SessionRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			logging.Warn().Err(closeErr).Str("file", path).Msg("Error closing CSV file")
		}
	}()

	if info, err := f.Stat(); err == nil {
		stats.BytesRead += info.Size()
	}

	records, skipped, headerFound, err := parseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	stats.Files++
	stats.SkippedRows += skipped
	if !headerFound {
		stats.HeaderlessFiles++
		logging.Warn().Str("file", path).Msg("Header row not found, file contributed no records")
	}

	logging.Debug().
		Str("file", path).
		Int("records", len(records)).
		Int("skipped_rows", skipped).
		Msg("Parsed CSV file")

	return records, nil
}

// ingestArchive extracts every CSV entry of a ZIP archive into the scratch
// directory and parses each one.
func ingestArchive(path, tmpDir string, stats *Stats) ([]models.SessionRecord, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", path, err)
	}
	defer func() {
		if closeErr := r.Close(); closeErr != nil {
			logging.Warn().Err(closeErr).Str("archive", path).Msg("Error closing archive")
		}
	}()

	stats.Archives++

	var combined []models.SessionRecord
	for i, entry := range r.File {
		if entry.FileInfo().IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name), ".csv") {
			continue
		}

		// Entry names are untrusted; flatten them into the scratch
		// directory with an index prefix to avoid traversal and
		// collisions across archives.
		extracted := filepath.Join(tmpDir, fmt.Sprintf("%d-%s", i, filepath.Base(entry.Name)))
		if err := extractEntry(entry, extracted); err != nil {
			return nil, fmt.Errorf("extract %s from %s: %w", entry.Name, path, err)
		}

		records, err := ingestCSV(extracted, stats)
		if err != nil {
			return nil, err
		}
		combined = append(combined, records...)
	}

	return combined, nil
}

// extractEntry writes one archive entry to dest.
func extractEntry(entry *zip.File, dest string) error {
	rc, err := entry.Open()
	if err != nil {
		return err
	}
	defer func() {
		_ = rc.Close()
	}()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// DateBounds scans the records' end times and returns the earliest and
// latest parseable timestamps. Unlike report building, this scan tolerates
// unparseable rows: it drives the date-range selection, not the aggregates.
// ok is false when no record carries a valid end time.
func DateBounds(records []models.SessionRecord) (earliest, latest time.Time, ok bool) {
	for _, rec := range records {
		if rec.EndTime == "" {
			continue
		}
		t, err := models.NormalizeTimestamp(rec.EndTime)
		if err != nil {
			continue
		}
		if !ok || t.Before(earliest) {
			earliest = t
		}
		if !ok || t.After(latest) {
			latest = t
		}
		ok = true
	}
	return earliest, latest, ok
}
