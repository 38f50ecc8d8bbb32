// Package store provides trade plan persistence interfaces and implementations.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	apperr "stock-manager/internal/errors"
	"stock-manager/internal/models"
)

// FileStore implements PlanStore on a flat JSON document. The whole
// record set is rewritten on every mutation via a temp file and rename,
// so a concurrent reader never observes a partially written file.
type FileStore struct {
	path string
	opts Options
	mu   sync.Mutex
}

// fileDocument is the on-disk layout. The id counter is persisted so ids
// stay stable and are never reused after a delete.
type fileDocument struct {
	NextID int64              `json:"next_id"`
	Plans  []models.TradePlan `json:"plans"`
}

// NewFileStore creates a store backed by the JSON document at path. A
// missing file is treated as an empty collection and created on first
// write.
func NewFileStore(path string, opts Options) (*FileStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, apperr.Storage("create data directory", err)
	}
	return &FileStore{path: path, opts: opts}, nil
}

// Close is a no-op; the file is not held open between operations.
func (s *FileStore) Close() error {
	return nil
}

// Create persists a new plan and assigns the next id from the counter.
func (s *FileStore) Create(ctx context.Context, plan *models.TradePlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}

	if s.opts.UniqueSymbol && symbolTaken(doc.Plans, plan.Symbol, 0) {
		return fmt.Errorf("create plan %q: %w", plan.Symbol, apperr.ErrDuplicateSymbol)
	}

	plan.ID = doc.NextID
	doc.NextID++
	doc.Plans = append(doc.Plans, *plan)
	return s.save(doc)
}

// ListAll returns all plans in insertion order.
func (s *FileStore) ListAll(ctx context.Context) ([]models.TradePlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return doc.Plans, nil
}

// UpdateByID replaces all fields of the plan at id, keeping its position
// and id.
func (s *FileStore) UpdateByID(ctx context.Context, id int64, plan *models.TradePlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}

	idx := indexByID(doc.Plans, id)
	if idx < 0 {
		return fmt.Errorf("update plan %d: %w", id, apperr.ErrNotFound)
	}
	if s.opts.UniqueSymbol && symbolTaken(doc.Plans, plan.Symbol, id) {
		return fmt.Errorf("update plan %d to %q: %w", id, plan.Symbol, apperr.ErrDuplicateSymbol)
	}

	plan.ID = id
	doc.Plans[idx] = *plan
	return s.save(doc)
}

// DeleteByID removes the plan at id.
func (s *FileStore) DeleteByID(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}

	idx := indexByID(doc.Plans, id)
	if idx < 0 {
		return fmt.Errorf("delete plan %d: %w", id, apperr.ErrNotFound)
	}
	doc.Plans = append(doc.Plans[:idx], doc.Plans[idx+1:]...)
	return s.save(doc)
}

// load reads the document. A missing or corrupt file yields an empty
// collection; the next successful write replaces it.
func (s *FileStore) load() (*fileDocument, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &fileDocument{NextID: 1, Plans: []models.TradePlan{}}, nil
		}
		return nil, apperr.Storage("read data file", err)
	}

	doc := &fileDocument{}
	if err := json.Unmarshal(data, doc); err == nil && doc.NextID >= 1 {
		if doc.Plans == nil {
			doc.Plans = []models.TradePlan{}
		}
		return doc, nil
	}

	// Legacy layout: a bare array of records. Ids may be missing there,
	// so the counter restarts above the highest one present.
	var plans []models.TradePlan
	if err := json.Unmarshal(data, &plans); err == nil {
		next := int64(1)
		for _, p := range plans {
			if p.ID >= next {
				next = p.ID + 1
			}
		}
		return &fileDocument{NextID: next, Plans: plans}, nil
	}

	return &fileDocument{NextID: 1, Plans: []models.TradePlan{}}, nil
}

// save writes the document atomically: temp file in the same directory,
// then rename over the target.
func (s *FileStore) save(doc *fileDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return apperr.Storage("encode data file", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return apperr.Storage("write data file", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return apperr.Storage("replace data file", err)
	}
	return nil
}

func indexByID(plans []models.TradePlan, id int64) int {
	for i, p := range plans {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// symbolTaken reports whether another plan (any id other than exceptID)
// already uses symbol.
func symbolTaken(plans []models.TradePlan, symbol string, exceptID int64) bool {
	for _, p := range plans {
		if p.Symbol == symbol && p.ID != exceptID {
			return true
		}
	}
	return false
}
