// AI Tools Explorer - Directory and Recommendation Backend
// Copyright 2026 AI Tools Explorer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aitools-explorer/backend

package ratelimit

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/aitools-explorer/backend/internal/logging"
)

// BadgerLimiter is a fixed-window limiter whose counters live in a Badger
// store, so rate-limit state survives process restarts. Counter keys carry a
// TTL of two windows; Badger garbage-collects stale buckets on its own.
type BadgerLimiter struct {
	db       *badger.DB
	requests int
	window   time.Duration
	now      func() time.Time
}

// NewBadgerLimiter opens (or creates) the store at path. An empty path opens
// an in-memory Badger instance, used by tests.
func NewBadgerLimiter(path string, requests int, window time.Duration) (*BadgerLimiter, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open ratelimit store: %w", err)
	}
	return &BadgerLimiter{
		db:       db,
		requests: requests,
		window:   window,
		now:      time.Now,
	}, nil
}

// Allow reports whether the key has remaining quota in the current window
// and consumes one unit if so. On store errors the request is allowed; a
// broken throttle store must not take the endpoints down with it.
func (l *BadgerLimiter) Allow(key string) bool {
	bucket := windowBucket(l.now(), l.window)
	storeKey := []byte(fmt.Sprintf("rl:%s:%d", key, bucket))

	allowed := true
	err := l.db.Update(func(txn *badger.Txn) error {
		var count uint64
		item, err := txn.Get(storeKey)
		switch {
		case errors.Is(err, badger.ErrKeyNotFound):
			count = 0
		case err != nil:
			return fmt.Errorf("failed to read counter: %w", err)
		default:
			if err := item.Value(func(val []byte) error {
				if len(val) == 8 {
					count = binary.BigEndian.Uint64(val)
				}
				return nil
			}); err != nil {
				return fmt.Errorf("failed to decode counter: %w", err)
			}
		}

		if count >= uint64(l.requests) {
			allowed = false
			return nil
		}

		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, count+1)
		entry := badger.NewEntry(storeKey, buf).WithTTL(2 * l.window)
		return txn.SetEntry(entry)
	})
	if err != nil {
		logging.Warn().Err(err).Str("key", key).Msg("Ratelimit store update failed, allowing request")
		return true
	}
	return allowed
}

// Close closes the underlying store.
func (l *BadgerLimiter) Close() error {
	if err := l.db.Close(); err != nil {
		return fmt.Errorf("failed to close ratelimit store: %w", err)
	}
	return nil
}
