// Package history maintains flat-file daily price history per metal:
// one CSV and one JSON file, one entry per date, updated in place when
// the scraper runs again on the same day.
package history

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// Entry is one day's average price per carat category.
type Entry struct {
	Date        string `json:"date"`
	K18         int    `json:"k18"`
	K21         int    `json:"k21"`
	K22         int    `json:"k22"`
	Traditional int    `json:"traditional"`
}

var csvHeader = []string{"date", "k18", "k21", "k22", "traditional"}

// Store reads and writes the history files under one directory.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Update upserts the entry into <metal>_history.csv and
// <metal>_history.json, keeping entries sorted by date.
func (s *Store) Update(metal string, entry Entry) error {
	entries, err := s.Load(metal)
	if err != nil {
		return err
	}

	replaced := false
	for i := range entries {
		if entries[i].Date == entry.Date {
			entries[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date < entries[j].Date
	})

	if err := s.writeCSV(metal, entries); err != nil {
		return err
	}
	return s.writeJSON(metal, entries)
}

// Load reads the CSV history for a metal. A missing file yields an
// empty history; malformed rows are skipped.
func (s *Store) Load(metal string) ([]Entry, error) {
	path := s.csvPath(metal)

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var entries []Entry
	for i, rec := range records {
		if i == 0 || len(rec) < 5 {
			continue // header or malformed row
		}
		entries = append(entries, Entry{
			Date:        rec[0],
			K18:         atoiOrZero(rec[1]),
			K21:         atoiOrZero(rec[2]),
			K22:         atoiOrZero(rec[3]),
			Traditional: atoiOrZero(rec[4]),
		})
	}
	return entries, nil
}

func (s *Store) writeCSV(metal string, entries []Entry) error {
	path := s.csvPath(metal)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	records := [][]string{csvHeader}
	for _, e := range entries {
		records = append(records, []string{
			e.Date,
			strconv.Itoa(e.K18),
			strconv.Itoa(e.K21),
			strconv.Itoa(e.K22),
			strconv.Itoa(e.Traditional),
		})
	}

	if err := w.WriteAll(records); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func (s *Store) writeJSON(metal string, entries []Entry) error {
	path := s.jsonPath(metal)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (s *Store) csvPath(metal string) string {
	return filepath.Join(s.dir, metal+"_history.csv")
}

func (s *Store) jsonPath(metal string) string {
	return filepath.Join(s.dir, metal+"_history.json")
}

func atoiOrZero(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
