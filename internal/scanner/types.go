// Copyright 2026 The RepoScan Authors
// SPDX-License-Identifier: MIT

package scanner

// ScanResult is one rule hit, carrying both the match (from rules.Match) and
// the commit/file metadata that produced it. This is the wire shape crossing
// into internal/output and internal/mcpserver.
type ScanResult struct {
	RuleName      string `json:"rule_name"`
	MatchText     string `json:"match_text"`
	FilePath      string `json:"file_path"`
	FileOID       string `json:"file_oid"`
	CommitID      string `json:"commit_id"`
	CommitMessage string `json:"commit_message"`
	AuthorName    string `json:"author_name"`
	AuthorEmail   string `json:"author_email"`
	CommitTime    string `json:"commit_time"`
}

// commitMeta is the cached, per-commit metadata shared by every ScanResult
// produced from jobs belonging to that commit. Built once per commit id on
// first dispatch and retained for the rest of the scan.
type commitMeta struct {
	id      string
	message string
	author  string
	email   string
	time    string
}
