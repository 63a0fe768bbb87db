package quarantine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"

	"attr-mapper/internal/record"
)

const defaultSequenceBandwidth = 100

// Store persists quarantined records in BadgerDB.
type Store struct {
	db     *badger.DB
	seq    *badger.Sequence
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used by the store and by BadgerDB itself.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source used to stamp entries.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// Open opens a quarantine store in dir, creating the directory if needed.
// With inMemory set, dir is ignored and nothing touches the disk.
func Open(dir string, inMemory bool, opts ...Option) (*Store, error) {
	s := &Store{
		logger: slog.Default(),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	var bopts badger.Options

	if inMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := ensureDir(dir); err != nil {
			return nil, err
		}

		bopts = badger.DefaultOptions(dir)
	}

	bopts.Logger = &badgerLoggerAdapter{logger: s.logger}
	bopts.Compression = options.None

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("failed to open quarantine store: %w", err)
	}

	seq, err := db.GetSequence([]byte(entryIDSeq), defaultSequenceBandwidth)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open quarantine sequence: %w", err)
	}

	s.db = db
	s.seq = seq

	return s, nil
}

func ensureDir(dir string) error {
	if dir == "" {
		return errors.New("quarantine directory is required")
	}

	info, err := os.Stat(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}

		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}

		return nil
	}

	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	return nil
}

// Close releases the ID sequence and closes the database.
func (s *Store) Close() error {
	if s.db.IsClosed() {
		return nil
	}

	seqErr := s.seq.Release()
	dbErr := s.db.Close()

	return errors.Join(seqErr, dbErr)
}

// IsClosed returns true if the store is closed.
func (s *Store) IsClosed() bool {
	return s.db.IsClosed()
}

// Put stores rec with the reason it was rejected and returns the entry ID.
// IDs start at 1 and increase with every Put.
func (s *Store) Put(ctx context.Context, rec *record.Record, reason string) (uint64, error) {
	if rec == nil {
		return 0, ErrNilRecord
	}

	if err := s.check(ctx); err != nil {
		return 0, err
	}

	payload, err := record.Encode(rec.Value)
	if err != nil {
		return 0, fmt.Errorf("%w: payload: %v", ErrSerializationFailed, err)
	}

	next, err := s.seq.Next()
	if err != nil {
		return 0, fmt.Errorf("failed to allocate quarantine id: %w", err)
	}

	id := next + 1
	entry := &Entry{
		ID:            id,
		Topic:         rec.Topic,
		Partition:     rec.Partition,
		Offset:        rec.Offset,
		Key:           rec.Key,
		Reason:        reason,
		Payload:       payload,
		QuarantinedAt: s.now().UTC(),
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(makeEntryKey(id), marshalEntry(entry))
	})
	if err != nil {
		return 0, fmt.Errorf("failed to store quarantine entry: %w", err)
	}

	s.logger.Debug("record quarantined", "id", id, "origin", rec.Origin(), "reason", reason)

	return id, nil
}

// Get returns the entry with the given ID.
func (s *Store) Get(ctx context.Context, id uint64) (*Entry, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}

	var entry *Entry

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(makeEntryKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}

		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			entry, err = unmarshalEntry(id, val)
			return err
		})
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// List returns up to limit entries in insertion order. A limit of 0 or less
// returns every entry.
func (s *Store) List(ctx context.Context, limit int) ([]*Entry, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}

	var entries []*Entry

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(entryPrefix)

		iter := txn.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			item := iter.Item()

			id, ok := parseEntryKey(item.Key())
			if !ok {
				continue
			}

			err := item.Value(func(val []byte) error {
				entry, err := unmarshalEntry(id, val)
				if err != nil {
					return err
				}

				entries = append(entries, entry)

				return nil
			})
			if err != nil {
				return err
			}

			if limit > 0 && len(entries) >= limit {
				return nil
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// Count returns the number of stored entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	if err := s.check(ctx); err != nil {
		return 0, err
	}

	count := 0

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(entryPrefix)
		opts.PrefetchValues = false

		iter := txn.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if _, ok := parseEntryKey(iter.Item().Key()); ok {
				count++
			}
		}

		return nil
	})

	return count, err
}

// Delete removes a single entry.
func (s *Store) Delete(ctx context.Context, id uint64) error {
	if err := s.check(ctx); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		key := makeEntryKey(id)

		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}

			return err
		}

		return txn.Delete(key)
	})
}

// Purge removes every entry and returns how many were removed.
func (s *Store) Purge(ctx context.Context) (int, error) {
	count, err := s.Count(ctx)
	if err != nil {
		return 0, err
	}

	if count == 0 {
		return 0, nil
	}

	if err := s.db.DropPrefix([]byte(entryPrefix)); err != nil {
		return 0, fmt.Errorf("failed to purge quarantine: %w", err)
	}

	s.logger.Info("quarantine purged", "entries", count)

	return count, nil
}

func (s *Store) check(ctx context.Context) error {
	if s.db.IsClosed() {
		return ErrStoreClosed
	}

	return ctx.Err()
}
