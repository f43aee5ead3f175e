// Package export serializes scan log entries to CSV and JSON and reads them
// back, for reporting and for migrating logs between machines.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/vkarlsson/scantrack/pkg/types"
)

// Export formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// envelopeVersion identifies the JSON export layout.
const envelopeVersion = "1.0"

// csvHeader is the column layout of CSV exports.
var csvHeader = []string{"ID", "Barcode", "Category", "Action", "Timestamp", "Metadata"}

// envelope wraps JSON exports with provenance fields.
type envelope struct {
	ExportedAt   string        `json:"exported_at"`
	Version      string        `json:"version"`
	TotalRecords int           `json:"total_records"`
	Entries      []types.Entry `json:"entries"`
}

// FileName returns a timestamped default export file name.
func FileName(format string, now time.Time) string {
	return fmt.Sprintf("scantrack-%s.%s", now.Format("2006-01-02_15-04-05"), format)
}

// WriteCSV writes entries as CSV. Timestamps are RFC 3339 with nanoseconds
// so they round-trip losslessly; metadata is embedded as a JSON object.
func WriteCSV(w io.Writer, entries []types.Entry) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, e := range entries {
		metadata := ""
		if len(e.Metadata) > 0 {
			raw, err := json.Marshal(e.Metadata)
			if err != nil {
				return fmt.Errorf("encoding metadata for entry %d: %w", e.ID, err)
			}
			metadata = string(raw)
		}

		record := []string{
			strconv.FormatInt(e.ID, 10),
			e.Barcode,
			e.Category,
			e.Action,
			e.Timestamp.UTC().Format(time.RFC3339Nano),
			metadata,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing entry %d: %w", e.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV reads entries from a CSV export produced by WriteCSV.
func ReadCSV(r io.Reader) ([]types.Entry, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}
	if len(header) != len(csvHeader) {
		return nil, fmt.Errorf("unexpected csv header with %d columns", len(header))
	}

	var entries []types.Entry
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv record: %w", err)
		}

		var e types.Entry
		e.ID, err = strconv.ParseInt(record[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing id %q: %w", record[0], err)
		}
		e.Barcode = record[1]
		e.Category = record[2]
		e.Action = record[3]
		e.Timestamp, err = time.Parse(time.RFC3339Nano, record[4])
		if err != nil {
			return nil, fmt.Errorf("parsing timestamp %q: %w", record[4], err)
		}
		if record[5] != "" {
			if err := json.Unmarshal([]byte(record[5]), &e.Metadata); err != nil {
				return nil, fmt.Errorf("decoding metadata %q: %w", record[5], err)
			}
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// WriteJSON writes entries wrapped in an export envelope.
func WriteJSON(w io.Writer, entries []types.Entry, now time.Time) error {
	env := envelope{
		ExportedAt:   now.UTC().Format(time.RFC3339Nano),
		Version:      envelopeVersion,
		TotalRecords: len(entries),
		Entries:      entries,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(env); err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}
	return nil
}

// ReadJSON reads entries from a JSON export produced by WriteJSON.
func ReadJSON(r io.Reader) ([]types.Entry, error) {
	var env envelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("decoding export: %w", err)
	}
	return env.Entries, nil
}
