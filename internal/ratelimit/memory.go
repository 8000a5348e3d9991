// AI Tools Explorer - Directory and Recommendation Backend
// Copyright 2026 AI Tools Explorer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aitools-explorer/backend

package ratelimit

import (
	"sync"
	"time"
)

// maxMemoryKeys bounds the key map. When exceeded, expired entries are
// evicted; if everything is live the map grows anyway rather than dropping
// live counters.
const maxMemoryKeys = 10000

type memoryEntry struct {
	bucket int64
	count  int
}

// MemoryLimiter is a fixed-window in-memory limiter. State resets on
// restart; documented best-effort.
type MemoryLimiter struct {
	mu       sync.Mutex
	entries  map[string]*memoryEntry
	requests int
	window   time.Duration
	now      func() time.Time
}

// NewMemoryLimiter allows requests per window per key.
func NewMemoryLimiter(requests int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		entries:  make(map[string]*memoryEntry),
		requests: requests,
		window:   window,
		now:      time.Now,
	}
}

// Allow reports whether the key has remaining quota in the current window
// and consumes one unit if so.
func (l *MemoryLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	bucket := windowBucket(l.now(), l.window)

	if len(l.entries) >= maxMemoryKeys {
		l.evictExpired(bucket)
	}

	entry, ok := l.entries[key]
	if !ok || entry.bucket != bucket {
		l.entries[key] = &memoryEntry{bucket: bucket, count: 1}
		return true
	}
	if entry.count >= l.requests {
		return false
	}
	entry.count++
	return true
}

// Close is a no-op for the in-memory backing.
func (l *MemoryLimiter) Close() error { return nil }

func (l *MemoryLimiter) evictExpired(currentBucket int64) {
	for key, entry := range l.entries {
		if entry.bucket != currentBucket {
			delete(l.entries, key)
		}
	}
}
