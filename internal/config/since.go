// Copyright 2026 The RepoScan Authors
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"time"
)

// ParseSince converts a --since/config `since` value into a Unix timestamp
// suitable for RepositoryScanner.Scan's from_timestamp argument. Accepts
// either an RFC 3339 timestamp ("2024-01-01T00:00:00Z") or a duration
// relative to now ("720h" = go back 30 days). An empty string means "no
// filter" (timestamp 0).
func ParseSince(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Unix(), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("since %q: not an RFC 3339 timestamp or a duration: %w", s, err)
	}
	return time.Now().Add(-d).Unix(), nil
}
