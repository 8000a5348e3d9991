// AI Tools Explorer - Directory and Recommendation Backend
// Copyright 2026 AI Tools Explorer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aitools-explorer/backend

// Package ratelimit provides the injected per-key throttle used by the
// notification and email endpoints. Two backings exist: a bounded in-memory
// map (best-effort, resets on restart) and a Badger store whose counters
// survive restarts.
package ratelimit

import "time"

// Limiter answers whether one more request is allowed for a key right now.
// Keys are caller IPs at the API boundary.
type Limiter interface {
	Allow(key string) bool
	Close() error
}

// windowBucket maps a timestamp to its fixed-window index. Counting is
// fixed-window rather than sliding: simple, and honest about its burst
// allowance at window edges.
func windowBucket(now time.Time, window time.Duration) int64 {
	return now.UnixNano() / int64(window)
}
