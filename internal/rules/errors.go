// Copyright 2026 The RepoScan Authors
// SPDX-License-Identifier: MIT

package rules

import (
	"errors"
	"fmt"
)

// ErrInvalidRule is the umbrella sentinel for every configuration-time
// failure raised by RulesEngine.Add* and CheckPattern. Callers that only
// care "was this a rule-configuration problem" should check against this;
// callers that need the specific kind should check against the sentinels
// below, which all wrap ErrInvalidRule.
var ErrInvalidRule = errors.New("invalid rule")

var (
	// ErrEmptyName is raised when a rule name is the empty string.
	ErrEmptyName = errors.New("empty name")
	// ErrEmptyPattern is raised when a pattern string is empty.
	ErrEmptyPattern = errors.New("empty pattern")
	// ErrInvalidRegex is raised when a pattern fails to compile.
	ErrInvalidRegex = errors.New("invalid regex")
	// ErrWrongGroupCount is raised when a pattern compiles but has the
	// wrong number of capturing groups for its role (1 for a content rule's
	// match pattern and for CheckPattern, 0 for whitelist/blacklist patterns).
	// Skip extensions and skip substrings are plain strings and are never
	// group-checked.
	ErrWrongGroupCount = errors.New("wrong capturing group count")
)

// invalidRule builds an error that satisfies errors.Is against both
// ErrInvalidRule and the more specific kind, with a human-readable detail
// describing the offending pattern.
func invalidRule(kind error, detail string) error {
	return fmt.Errorf("%w: %w: %s", ErrInvalidRule, kind, detail)
}
