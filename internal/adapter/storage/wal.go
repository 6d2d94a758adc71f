package storage

import (
	"github.com/pkg/errors"
	"github.com/vadiminshakov/gowal"
	"go.uber.org/zap"
)

// WalConfig holds the durable store settings.
type WalConfig struct {
	Dir              string
	SegmentThreshold int
	MaxSegments      int
	SyncOnWrite      bool
}

// WalStore is a durable KVStore backed by an append-only log. Every Set
// appends the full value for its key, a Delete appends a tombstone, and
// opening the store replays the log last-write-wins into memory.
type WalStore struct {
	wal    *gowal.Wal
	data   map[string]string
	logger *zap.Logger
}

// NewWalStore opens (or creates) the log directory and replays it.
func NewWalStore(cfg WalConfig, logger *zap.Logger) (*WalStore, error) {
	w, err := gowal.NewWAL(gowal.Config{
		Dir:              cfg.Dir,
		Prefix:           "seg_",
		SegmentThreshold: cfg.SegmentThreshold,
		MaxSegments:      cfg.MaxSegments,
		IsInSyncDiskMode: cfg.SyncOnWrite,
	})
	if err != nil {
		return nil, errors.Wrap(err, "error init wal")
	}

	s := &WalStore{
		wal:    w,
		data:   make(map[string]string),
		logger: logger,
	}

	for m := range w.Iterator() {
		if len(m.Value) == 0 {
			delete(s.data, m.Key)
			continue
		}
		s.data[m.Key] = string(m.Value)
	}

	logger.Info("storage recovered", zap.String("dir", cfg.Dir), zap.Int("keys", len(s.data)))

	return s, nil
}

func (s *WalStore) Get(key string) (string, bool, error) {
	value, ok := s.data[key]
	return value, ok, nil
}

func (s *WalStore) Set(key, value string) error {
	if err := s.append(key, []byte(value)); err != nil {
		return errors.Wrapf(err, "error writing key %s", key)
	}

	s.data[key] = value
	return s.reanchor(key)
}

func (s *WalStore) Delete(key string) error {
	if _, ok := s.data[key]; !ok {
		return nil
	}

	// Tombstone: an empty value marks the key deleted on replay.
	if err := s.append(key, nil); err != nil {
		return errors.Wrapf(err, "error deleting key %s", key)
	}

	delete(s.data, key)
	return s.reanchor(key)
}

func (s *WalStore) append(key string, value []byte) error {
	return s.wal.Write(s.wal.CurrentIndex()+1, key, value)
}

// reanchor re-appends every live key except the one just written. The
// log drops its oldest segments past MaxSegments, so a key whose last
// write is old would otherwise vanish from a replay once enough other
// writes rotate it out; re-appending the full key set on every
// mutation keeps the newest segments a complete snapshot.
func (s *WalStore) reanchor(skip string) error {
	for key, value := range s.data {
		if key == skip {
			continue
		}
		if err := s.append(key, []byte(value)); err != nil {
			return errors.Wrapf(err, "error re-appending key %s", key)
		}
	}
	return nil
}

// Close flushes and closes the underlying log.
func (s *WalStore) Close() error {
	return s.wal.Close()
}
