// AI Tools Explorer - Directory and Recommendation Backend
// Copyright 2026 AI Tools Explorer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aitools-explorer/backend

package database

import "errors"

// ErrNotFound is returned when a lookup matches no row. Callers map it to a
// 404 at the API boundary.
var ErrNotFound = errors.New("record not found")
