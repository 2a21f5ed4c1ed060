// Copyright 2026 The RepoScan Authors
// SPDX-License-Identifier: MIT

// Package rules implements the rules engine: compiled content-match and
// file-path rules, plus lexical path-skip sets, evaluated with no I/O of
// its own. One RulesEngine is built up incrementally via the Add* methods
// and then shared read-only across scanner workers.
package rules

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// ContentRule pairs a match pattern (exactly one capturing group) with
// optional whitelist/blacklist filters (zero capturing groups each) applied
// to each captured substring.
type ContentRule struct {
	Name      string
	MatchRe   *regexp.Regexp
	Whitelist []*regexp.Regexp
	Blacklist []*regexp.Regexp
}

// FilePathRule matches a regex against a full file path. Capturing groups
// are permitted but ignored; the path itself is the reported match text.
type FilePathRule struct {
	Name   string
	PathRe *regexp.Regexp
}

// Match is a single rule hit returned by ScanFile or accumulated into a
// ScanResult by the scanner.
type Match struct {
	RuleName  string
	MatchText string
}

// RulesEngine holds compiled rules and path-filter sets. It has no I/O and
// no concurrency state beyond the mutex guarding its own rule lists; once
// rule loading is done, ScanFile and ShouldScanFilePath are safe to call
// concurrently from any number of goroutines.
type RulesEngine struct {
	mu sync.RWMutex

	contentRules  []ContentRule
	filePathRules []FilePathRule

	extensionsToSkip     map[string]struct{}
	pathSubstringsToSkip []string
}

// New returns an empty RulesEngine ready for Add* calls.
func New() *RulesEngine {
	return &RulesEngine{
		extensionsToSkip: make(map[string]struct{}),
	}
}

// AddContentRule validates and appends a content rule. name must be
// non-empty; pattern must compile and have exactly one capturing group;
// every whitelist/blacklist pattern must compile and have zero capturing
// groups.
func (e *RulesEngine) AddContentRule(name, pattern string, whitelist, blacklist []string) error {
	if name == "" {
		return invalidRule(ErrEmptyName, "content rule name")
	}
	re, err := compileWithGroupCount(pattern, 1, "match")
	if err != nil {
		return err
	}
	wl, err := compileAllZeroGroup(whitelist, "whitelist")
	if err != nil {
		return err
	}
	bl, err := compileAllZeroGroup(blacklist, "blacklist")
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.contentRules = append(e.contentRules, ContentRule{
		Name:      name,
		MatchRe:   re,
		Whitelist: wl,
		Blacklist: bl,
	})
	return nil
}

// AddFilePathRule validates and appends a file-path rule. Capturing groups
// in pattern are permitted but have no effect on the reported match text.
func (e *RulesEngine) AddFilePathRule(name, pattern string) error {
	if name == "" {
		return invalidRule(ErrEmptyName, "file path rule name")
	}
	if pattern == "" {
		return invalidRule(ErrEmptyPattern, "file path rule pattern")
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return invalidRule(ErrInvalidRegex, fmt.Sprintf("file path pattern %q: %v", pattern, err))
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.filePathRules = append(e.filePathRules, FilePathRule{Name: name, PathRe: re})
	return nil
}

// AddFileExtensionToSkip registers an extension (without leading dot) that
// disqualifies a path from scanning when it is the path's final
// dot-delimited segment.
func (e *RulesEngine) AddFileExtensionToSkip(ext string) error {
	if ext == "" {
		return invalidRule(ErrEmptyPattern, "file extension")
	}
	ext = strings.TrimPrefix(ext, ".")

	e.mu.Lock()
	defer e.mu.Unlock()
	e.extensionsToSkip[ext] = struct{}{}
	return nil
}

// AddFilePathToSkip registers a raw substring that disqualifies any path
// containing it, anywhere, from scanning.
func (e *RulesEngine) AddFilePathToSkip(substr string) error {
	if substr == "" {
		return invalidRule(ErrEmptyPattern, "file path substring")
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.pathSubstringsToSkip = append(e.pathSubstringsToSkip, substr)
	return nil
}

// ShouldScanFilePath reports whether path should be considered for
// scanning: false iff path ends in a registered extension, or contains a
// registered path substring. Purely lexical; performs no filesystem access.
func (e *RulesEngine) ShouldScanFilePath(path string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if ext := finalExtension(path); ext != "" {
		if _, skip := e.extensionsToSkip[ext]; skip {
			return false
		}
	}
	for _, sub := range e.pathSubstringsToSkip {
		if strings.Contains(path, sub) {
			return false
		}
	}
	return true
}

// ScanFile evaluates every file-path rule against path, then every content
// rule against content (if non-empty), and returns the accumulated matches
// in rule-list order: all file-path matches first, then all content
// matches. Returns nil if nothing matched.
func (e *RulesEngine) ScanFile(path string, content []byte) []Match {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var matches []Match

	for _, r := range e.filePathRules {
		if r.PathRe.MatchString(path) {
			matches = append(matches, Match{RuleName: r.Name, MatchText: path})
		}
	}

	if len(content) > 0 {
		for _, r := range e.contentRules {
			for _, sub := range r.MatchRe.FindAllSubmatch(content, -1) {
				capture := string(sub[1])
				if matchesAny(r.Blacklist, capture) {
					continue
				}
				if len(r.Whitelist) > 0 && !matchesAny(r.Whitelist, capture) {
					continue
				}
				matches = append(matches, Match{RuleName: r.Name, MatchText: capture})
			}
		}
	}

	return matches
}

// CheckPattern validates pattern as a content rule's match pattern (must
// compile, exactly one capturing group) and returns every captured
// substring found in content. It is a standalone diagnostic: it does not
// consult or mutate the engine's rule lists.
func (e *RulesEngine) CheckPattern(content, pattern string) ([]string, error) {
	re, err := compileWithGroupCount(pattern, 1, "check")
	if err != nil {
		return nil, err
	}
	var out []string
	for _, sub := range re.FindAllStringSubmatch(content, -1) {
		out = append(out, sub[1])
	}
	return out, nil
}

// compileWithGroupCount compiles pattern and requires its capturing-group
// count (regexp.Regexp.NumSubexp) to equal want.
func compileWithGroupCount(pattern string, want int, role string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, invalidRule(ErrEmptyPattern, role+" pattern")
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, invalidRule(ErrInvalidRegex, fmt.Sprintf("%s pattern %q: %v", role, pattern, err))
	}
	if re.NumSubexp() != want {
		return nil, invalidRule(ErrWrongGroupCount, fmt.Sprintf(
			"%s pattern %q: want %d capturing group(s), got %d", role, pattern, want, re.NumSubexp()))
	}
	return re, nil
}

// compileAllZeroGroup compiles every pattern in patterns, requiring each to
// have zero capturing groups, tagging errors with kind for diagnostics.
func compileAllZeroGroup(patterns []string, kind string) ([]*regexp.Regexp, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := compileWithGroupCount(p, 0, kind)
		if err != nil {
			return nil, err
		}
		out = append(out, re)
	}
	return out, nil
}

// matchesAny reports whether s matches any of res.
func matchesAny(res []*regexp.Regexp, s string) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// finalExtension returns the final dot-delimited segment of path's base
// name, without the leading dot, or "" if the base name has no dot.
func finalExtension(path string) string {
	base := path
	if idx := strings.LastIndexByte(path, '/'); idx >= 0 {
		base = path[idx+1:]
	}
	idx := strings.LastIndexByte(base, '.')
	if idx < 0 {
		return ""
	}
	return base[idx+1:]
}
