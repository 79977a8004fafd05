// Package seed loads the bundled reference datasets into empty tables.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/conorfennell/vocabdeck/internal/domain"
	"github.com/conorfennell/vocabdeck/internal/storage"
)

// Store is the subset of storage the seeder needs.
type Store interface {
	Count(ctx context.Context, table string) (int, error)
	InsertIrregularVerbs(ctx context.Context, verbs []domain.IrregularVerb) (int, error)
	InsertPhrasalVerbs(ctx context.Context, verbs []domain.PhrasalVerb) (int, error)
}

// Seeder populates the reference tables from JSON array files. It is safe
// for concurrent use.
type Seeder struct {
	// mu makes the emptiness check and the insert one step.
	mu sync.Mutex

	store          Store
	dir            string
	irregularVerbs string
	phrasalVerbs   string
}

// Result reports how many rows each table gained.
type Result struct {
	IrregularVerbs int `json:"irregular_verbs"`
	PhrasalVerbs   int `json:"phrasal_verbs"`
}

// New returns a seeder reading irregularFile and phrasalFile from dir.
func New(store Store, dir, irregularFile, phrasalFile string) *Seeder {
	return &Seeder{
		store:          store,
		dir:            dir,
		irregularVerbs: irregularFile,
		phrasalVerbs:   phrasalFile,
	}
}

// Seed fills each reference table that is empty and has a dataset file.
// Populated tables and missing files are skipped silently.
func (s *Seeder) Seed(ctx context.Context) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res Result

	n, err := seedTable(ctx, s.store, storage.TableIrregularVerbs, filepath.Join(s.dir, s.irregularVerbs), s.store.InsertIrregularVerbs)
	if err != nil {
		return res, err
	}
	res.IrregularVerbs = n

	n, err = seedTable(ctx, s.store, storage.TablePhrasalVerbs, filepath.Join(s.dir, s.phrasalVerbs), s.store.InsertPhrasalVerbs)
	if err != nil {
		return res, err
	}
	res.PhrasalVerbs = n

	return res, nil
}

func seedTable[T any](ctx context.Context, store Store, table, path string, insert func(context.Context, []T) (int, error)) (int, error) {
	count, err := store.Count(ctx, table)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		slog.Debug("Reference table already populated", "table", table, "rows", count)
		return 0, nil
	}

	records, err := readDataset[T](path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("Dataset file not found, skipping", "table", table, "path", path)
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	n, err := insert(ctx, records)
	if err != nil {
		return 0, fmt.Errorf("failed to seed %s: %w", table, err)
	}
	if n == 0 {
		slog.Debug("Dataset file is empty", "table", table, "path", path)
		return 0, nil
	}
	slog.Info("Seeded reference table", "table", table, "rows", n)
	return n, nil
}

func readDataset[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode dataset %s: %w", path, err)
	}
	return records, nil
}
