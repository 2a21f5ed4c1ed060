// Copyright 2026 The RepoScan Authors
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/corvidsec/reposcan/internal/scanner"
)

func init() {
	RegisterFormatter(NewSARIFFormatter())
}

// SARIFFormatter writes results as a SARIF v2.1.0 JSON document, one SARIF
// rule per distinct reposcan rule name.
type SARIFFormatter struct {
	// Version is the reposcan version to embed in the SARIF tool component.
	// If empty, "dev" is used.
	Version string
}

// Compile-time interface check.
var _ Formatter = (*SARIFFormatter)(nil)

// NewSARIFFormatter returns a new SARIFFormatter with default settings.
func NewSARIFFormatter() *SARIFFormatter {
	return &SARIFFormatter{}
}

// Name returns the format name.
func (f *SARIFFormatter) Name() string { return "sarif" }

// Format writes all results as a SARIF v2.1.0 document to w.
func (f *SARIFFormatter) Format(results []scanner.ScanResult, w io.Writer) error {
	if results == nil {
		results = []scanner.ScanResult{}
	}

	doc := f.buildDocument(results)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal sarif: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write sarif: %w", err)
	}
	if _, err := w.Write([]byte("\n")); err != nil {
		return fmt.Errorf("write sarif trailing newline: %w", err)
	}
	return nil
}

// SARIF document types — only exported for JSON marshaling.

type sarifDocument struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string                  `json:"id"`
	ShortDescription sarifMultiformatMessage `json:"shortDescription"`
	DefaultConfig    *sarifReportingConfig   `json:"defaultConfiguration,omitempty"`
}

type sarifMultiformatMessage struct {
	Text string `json:"text"`
}

type sarifReportingConfig struct {
	Level string `json:"level"`
}

type sarifResult struct {
	RuleID     string                     `json:"ruleId"`
	RuleIndex  int                        `json:"ruleIndex"`
	Level      string                     `json:"level"`
	Message    sarifMultiformatMessage    `json:"message"`
	Locations  []sarifLocation            `json:"locations,omitempty"`
	Properties map[string]json.RawMessage `json:"properties,omitempty"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
}

type sarifArtifactLocation struct {
	URI       string `json:"uri"`
	URIBaseID string `json:"uriBaseId,omitempty"`
}

func (f *SARIFFormatter) buildDocument(results []scanner.ScanResult) sarifDocument {
	rules, ruleIndex := buildSARIFRules(results)
	sarifResults := f.buildResults(results, ruleIndex)

	version := f.Version
	if version == "" {
		version = "dev"
	}

	return sarifDocument{
		Schema:  "https://json.schemastore.org/sarif-2.1.0.json",
		Version: "2.1.0",
		Runs: []sarifRun{
			{
				Tool: sarifTool{
					Driver: sarifDriver{
						Name:           "reposcan",
						Version:        version,
						InformationURI: "https://github.com/corvidsec/reposcan",
						Rules:          rules,
					},
				},
				Results: sarifResults,
			},
		},
	}
}

// buildSARIFRules collects unique rule names into SARIF rule objects, in
// sorted order, and returns a map from rule name to rule index.
func buildSARIFRules(results []scanner.ScanResult) ([]sarifRule, map[string]int) {
	ruleIndex := make(map[string]int)
	var names []string
	for _, r := range results {
		if _, exists := ruleIndex[r.RuleName]; !exists {
			ruleIndex[r.RuleName] = -1
			names = append(names, r.RuleName)
		}
	}
	slices.Sort(names)

	rules := make([]sarifRule, len(names))
	for i, name := range names {
		ruleIndex[name] = i
		rules[i] = sarifRule{
			ID:               name,
			ShortDescription: sarifMultiformatMessage{Text: fmt.Sprintf("reposcan rule %q matched", name)},
			DefaultConfig:    &sarifReportingConfig{Level: "error"},
		}
	}
	return rules, ruleIndex
}

func (f *SARIFFormatter) buildResults(results []scanner.ScanResult, ruleIndex map[string]int) []sarifResult {
	out := make([]sarifResult, 0, len(results))
	for _, r := range results {
		res := sarifResult{
			RuleID:    r.RuleName,
			RuleIndex: ruleIndex[r.RuleName],
			Level:     "error",
			Message:   sarifMultiformatMessage{Text: fmt.Sprintf("%s matched in commit %s", r.RuleName, r.CommitID)},
			Locations: []sarifLocation{
				{
					PhysicalLocation: sarifPhysicalLocation{
						ArtifactLocation: sarifArtifactLocation{
							URI:       r.FilePath,
							URIBaseID: "%SRCROOT%",
						},
					},
				},
			},
			Properties: map[string]json.RawMessage{
				"commit_id":      mustMarshal(r.CommitID),
				"commit_time":    mustMarshal(r.CommitTime),
				"author_name":    mustMarshal(r.AuthorName),
				"author_email":   mustMarshal(r.AuthorEmail),
				"file_oid":       mustMarshal(r.FileOID),
				"commit_message": mustMarshal(r.CommitMessage),
			},
		}
		out = append(out, res)
	}
	return out
}

func mustMarshal(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("mustMarshal: %v", err))
	}
	return data
}
