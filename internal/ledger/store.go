// Package ledger persists the inventory as a flat CSV file with a fixed
// column set. Every mutation is a full read-modify-write; the store assumes
// a single writer.
package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// IDAllocation describes how item identifiers are minted.
type IDAllocation struct {
	Prefix string
	Start  int
	Width  int
}

// Store reads and writes the ledger file.
type Store struct {
	path  string
	alloc IDAllocation
}

// NewStore returns a Store over the ledger file at path.
func NewStore(path string, alloc IDAllocation) *Store {
	if alloc.Prefix == "" {
		alloc.Prefix = "DP"
	}
	if alloc.Start <= 0 {
		alloc.Start = 1
	}
	if alloc.Width <= 0 {
		alloc.Width = 3
	}
	return &Store{path: path, alloc: alloc}
}

// Path returns the ledger file location.
func (s *Store) Path() string { return s.path }

// LoadAll returns every ledger row in file order. A missing or empty
// ledger yields no items. Rows with missing columns are tolerated; absent
// values read as empty strings.
func (s *Store) LoadAll() ([]Item, error) {
	file, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read ledger header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	var items []Item
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read ledger row: %w", err)
		}
		items = append(items, itemFromFields(func(column string) string {
			i, ok := index[column]
			if !ok || i >= len(record) {
				return ""
			}
			return record[i]
		}))
	}
	return items, nil
}

// FindByID returns the item with the given identifier, or nil when absent.
func (s *Store) FindByID(id string) (*Item, error) {
	items, err := s.LoadAll()
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, nil
}

// NextID mints the next identifier: one past the highest number ever
// allocated. A high-water mark persisted beside the ledger keeps deleted
// identifiers from being reissued, even when the highest row is removed.
// Malformed ids in the ledger are skipped.
func (s *Store) NextID() (string, error) {
	items, err := s.LoadAll()
	if err != nil {
		return "", err
	}
	highest := s.alloc.Start - 1
	for i := range items {
		suffix, ok := strings.CutPrefix(items[i].ID, s.alloc.Prefix)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	if hwm, err := s.readHighWater(); err != nil {
		return "", err
	} else if hwm > highest {
		highest = hwm
	}

	next := highest + 1
	if err := s.writeHighWater(next); err != nil {
		return "", err
	}
	return s.FormatID(next), nil
}

func (s *Store) highWaterPath() string { return s.path + ".seq" }

// readHighWater returns the highest number minted so far, zero when no
// marker file exists yet.
func (s *Store) readHighWater() (int, error) {
	data, err := os.ReadFile(s.highWaterPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("read id marker: %w", err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("parse id marker: %w", err)
	}
	return n, nil
}

func (s *Store) writeHighWater(n int) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create ledger directory: %w", err)
	}
	if err := os.WriteFile(s.highWaterPath(), []byte(strconv.Itoa(n)+"\n"), 0o644); err != nil {
		return fmt.Errorf("write id marker: %w", err)
	}
	return nil
}

// FormatID renders a numeric identifier with the configured prefix and
// zero padding.
func (s *Store) FormatID(n int) string {
	return fmt.Sprintf("%s%0*d", s.alloc.Prefix, s.alloc.Width, n)
}

// Append writes one new row, creating the ledger with its header when the
// file is missing or empty.
func (s *Store) Append(item Item) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("ensure ledger directory: %w", err)
	}

	needHeader := true
	if info, err := os.Stat(s.path); err == nil && info.Size() > 0 {
		needHeader = false
	}

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if needHeader {
		if err := writer.Write(Columns); err != nil {
			return fmt.Errorf("write ledger header: %w", err)
		}
	}
	if err := writer.Write(item.record()); err != nil {
		return fmt.Errorf("write ledger row: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush ledger: %w", err)
	}
	return file.Close()
}

// Rewrite replaces the entire ledger with the given rows in order, header
// first. Used by update and delete, which mutate in memory and write back.
func (s *Store) Rewrite(items []Item) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("ensure ledger directory: %w", err)
	}

	file, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create ledger: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(Columns); err != nil {
		return fmt.Errorf("write ledger header: %w", err)
	}
	for i := range items {
		if err := writer.Write(items[i].record()); err != nil {
			return fmt.Errorf("write ledger row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush ledger: %w", err)
	}
	return file.Close()
}
