package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dgraph-io/badger/v3"

	"github.com/switchyard/switchyard/internal/domain"
	"github.com/switchyard/switchyard/internal/xjson"
)

const runKeyPrefix = "run:"

// RunStore archives finished execution records in badger, keyed by run id.
// An empty directory opens an in-memory database, which is what the tests
// use.
type RunStore struct {
	db     *badger.DB
	logger *slog.Logger
}

func NewRunStore(dataDir string, logger *slog.Logger) (*RunStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	opts := badger.DefaultOptions(dataDir)
	if dataDir == "" {
		opts = opts.WithInMemory(true)
	}
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open run store: %w", err)
	}

	return &RunStore{
		db:     db,
		logger: logger.With("component", "run-store"),
	}, nil
}

func (s *RunStore) SaveRun(ctx context.Context, record *domain.ExecutionRecord) error {
	if record == nil || record.RunID == "" {
		return domain.NewValidationError("record", "record must carry a run id")
	}

	data, err := xjson.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to serialize run %s: %w", record.RunID, err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(runKey(record.RunID)), data)
	})
	if err != nil {
		return fmt.Errorf("failed to persist run %s: %w", record.RunID, err)
	}

	s.logger.Debug("run archived", "run_id", record.RunID, "size", len(data))
	return nil
}

func (s *RunStore) GetRun(ctx context.Context, runID string) (*domain.ExecutionRecord, error) {
	var data []byte

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(runKey(runID)))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return fmt.Errorf("%w: %s", domain.ErrRunNotFound, runID)
			}
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}

	var record domain.ExecutionRecord
	if err := xjson.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to decode run %s: %w", runID, err)
	}
	return &record, nil
}

func (s *RunStore) ListRuns(ctx context.Context) ([]string, error) {
	var ids []string

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(runKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := string(it.Item().Key())
			ids = append(ids, strings.TrimPrefix(key, runKeyPrefix))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *RunStore) DeleteRun(ctx context.Context, runID string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(runKey(runID)))
	})
}

func (s *RunStore) Close() error {
	return s.db.Close()
}

func runKey(runID string) string {
	return runKeyPrefix + runID
}
