package app

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"fittrack/internal/domain"
)

// csvHeader is the column layout of the CSV export and import.
var csvHeader = []string{"date", "weight", "steps", "caloriesBurned"}

// ImportResult reports what an import changed.
type ImportResult struct {
	Entries         int  `json:"entries"`
	ProfileReplaced bool `json:"profileReplaced"`
}

// TransferService exports and imports the whole data set.
type TransferService struct {
	store *Store
}

// NewTransferService creates a TransferService over store.
func NewTransferService(store *Store) *TransferService {
	return &TransferService{store: store}
}

// ExportJSON writes the stored data as indented JSON, entries oldest first.
func (s *TransferService) ExportJSON(ctx context.Context, w io.Writer) error {
	data, err := s.store.Snapshot(ctx)
	if err != nil {
		return err
	}
	data.Entries = domain.SortEntriesAsc(data.Entries)
	if data.Entries == nil {
		data.Entries = []domain.DailyEntry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportCSV writes one row per entry, oldest first, with empty cells for
// fields that were not logged.
func (s *TransferService) ExportCSV(ctx context.Context, w io.Writer) error {
	data, err := s.store.Snapshot(ctx)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, e := range domain.SortEntriesAsc(data.Entries) {
		row := []string{e.Date.String(), "", "", ""}
		if e.Weight != nil {
			row[1] = strconv.FormatFloat(*e.Weight, 'f', -1, 64)
		}
		if e.Steps != nil {
			row[2] = strconv.Itoa(*e.Steps)
		}
		if e.CaloriesBurned != nil {
			row[3] = strconv.Itoa(*e.CaloriesBurned)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// backupDoc is the loosely typed shape of an import, so that a missing or
// mistyped "entries" can be told apart from an empty list.
type backupDoc struct {
	Profile json.RawMessage `json:"profile"`
	Entries json.RawMessage `json:"entries"`
}

// ParseBackup validates a JSON backup and returns its profile (nil when
// absent) and entries. Any problem is reported as ErrInvalidBackup.
func ParseBackup(b []byte) (*domain.UserProfile, []domain.DailyEntry, error) {
	var doc backupDoc
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	raw := bytes.TrimSpace(doc.Entries)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, nil, fmt.Errorf("%w: entries must be an array", ErrInvalidBackup)
	}

	var entries []domain.DailyEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	for i, e := range entries {
		if err := validateEntry(e); err != nil {
			return nil, nil, fmt.Errorf("%w: entry %d: %v", ErrInvalidBackup, i, err)
		}
	}

	var profile *domain.UserProfile
	if p := bytes.TrimSpace(doc.Profile); len(p) > 0 && !bytes.Equal(p, []byte("null")) {
		profile = new(domain.UserProfile)
		if err := json.Unmarshal(p, profile); err != nil {
			return nil, nil, fmt.Errorf("%w: profile: %v", ErrInvalidBackup, err)
		}
		if err := ValidateProfile(*profile); err != nil {
			return nil, nil, fmt.Errorf("%w: profile: %v", ErrInvalidBackup, err)
		}
	}
	return profile, entries, nil
}

// ImportJSON merges a JSON backup into the store. Entries replace stored
// entries with the same date, and a present profile replaces the stored one.
// Nothing is written unless the whole backup is valid.
func (s *TransferService) ImportJSON(ctx context.Context, r io.Reader) (ImportResult, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("%w: read backup: %w", ErrInvalidBackup, err)
	}
	profile, entries, err := ParseBackup(b)
	if err != nil {
		return ImportResult{}, err
	}
	return s.merge(ctx, profile, entries)
}

// ParseCSV reads rows in the export layout. The header row is required and a
// single bad row rejects the whole file.
func ParseCSV(r io.Reader) ([]domain.DailyEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: missing header", ErrInvalidBackup)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidBackup, err)
	}
	for i, col := range csvHeader {
		if !strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff")), col) {
			return nil, fmt.Errorf("%w: header must be %s", ErrInvalidBackup, strings.Join(csvHeader, ","))
		}
	}

	var entries []domain.DailyEntry
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidBackup, err)
		}
		e, err := parseCSVRow(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidBackup, line, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func parseCSVRow(rec []string) (domain.DailyEntry, error) {
	d, err := domain.ParseDate(rec[0])
	if err != nil {
		return domain.DailyEntry{}, err
	}
	e := domain.DailyEntry{Date: d}
	if v := strings.TrimSpace(rec[1]); v != "" {
		w, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return domain.DailyEntry{}, fmt.Errorf("weight %q: %w", v, err)
		}
		e.Weight = &w
	}
	if v := strings.TrimSpace(rec[2]); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return domain.DailyEntry{}, fmt.Errorf("steps %q: %w", v, err)
		}
		e.Steps = &n
	}
	if v := strings.TrimSpace(rec[3]); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return domain.DailyEntry{}, fmt.Errorf("caloriesBurned %q: %w", v, err)
		}
		e.CaloriesBurned = &n
	}
	return e, validateEntry(e)
}

// ImportCSV merges CSV rows into the store with the same rules as ImportJSON.
func (s *TransferService) ImportCSV(ctx context.Context, r io.Reader) (ImportResult, error) {
	entries, err := ParseCSV(r)
	if err != nil {
		return ImportResult{}, err
	}
	return s.merge(ctx, nil, entries)
}

func (s *TransferService) merge(ctx context.Context, profile *domain.UserProfile, entries []domain.DailyEntry) (ImportResult, error) {
	now := s.store.Now().UnixMilli()
	_, err := s.store.Update(ctx, func(d *domain.FitnessData) error {
		if profile != nil {
			p := *profile
			d.Profile = &p
		}
		for _, e := range entries {
			e = e.Clone()
			if e.Timestamp == 0 {
				e.Timestamp = now
			}
			d.Upsert(e)
		}
		return nil
	})
	if err != nil {
		return ImportResult{}, err
	}
	return ImportResult{Entries: len(entries), ProfileReplaced: profile != nil}, nil
}
