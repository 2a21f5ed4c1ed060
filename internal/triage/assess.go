// Copyright 2026 The RepoScan Authors
// SPDX-License-Identifier: MIT

package triage

import (
	"context"
	"fmt"
	"strings"

	"github.com/corvidsec/reposcan/internal/scanner"
)

// Verdict is the model's plausibility call on a single match.
type Verdict string

const (
	VerdictLikelySecret Verdict = "likely_secret"
	VerdictLikelyNoise  Verdict = "likely_noise"
	VerdictUnsure       Verdict = "unsure"
)

// Assessment is the triage outcome for one scanner.ScanResult.
type Assessment struct {
	RuleName   string  `json:"rule_name"`
	FilePath   string  `json:"file_path"`
	CommitID   string  `json:"commit_id"`
	Verdict    Verdict `json:"verdict"`
	Rationale  string  `json:"rationale"`
	RawContent string  `json:"-"`
}

const systemPrompt = `You review secret-scanner matches for a security engineer. For each
match you are given the rule name, the file path, and the matched text. Decide
whether the match is a real, exploitable credential or a false positive such as
a placeholder, example, test fixture, or generated documentation value.

Respond with exactly two lines:
VERDICT: one of likely_secret, likely_noise, unsure
RATIONALE: one sentence explaining the call`

// Assess sends a single ScanResult to provider and parses its verdict.
// A malformed or empty model response yields VerdictUnsure rather than an
// error, since triage is advisory and must not abort a batch over one
// unparsable reply.
func Assess(ctx context.Context, provider Provider, result scanner.ScanResult) (Assessment, error) {
	prompt := fmt.Sprintf(
		"rule: %s\nfile: %s\nmatched text: %s\n",
		result.RuleName, result.FilePath, result.MatchText,
	)

	resp, err := provider.Complete(ctx, Request{
		Prompt:       prompt,
		SystemPrompt: systemPrompt,
		MaxTokens:    256,
	})
	if err != nil {
		return Assessment{}, fmt.Errorf("triage: assessment failed for %s:%s: %w", result.FilePath, result.RuleName, err)
	}

	verdict, rationale := parseVerdict(resp.Content)

	return Assessment{
		RuleName:   result.RuleName,
		FilePath:   result.FilePath,
		CommitID:   result.CommitID,
		Verdict:    verdict,
		Rationale:  rationale,
		RawContent: resp.Content,
	}, nil
}

// AssessAll runs Assess over every result in order, stopping at the first
// hard error (a provider failure, not a parse failure).
func AssessAll(ctx context.Context, provider Provider, results []scanner.ScanResult) ([]Assessment, error) {
	out := make([]Assessment, 0, len(results))
	for _, r := range results {
		a, err := Assess(ctx, provider, r)
		if err != nil {
			return out, err
		}
		out = append(out, a)
	}
	return out, nil
}

func parseVerdict(content string) (Verdict, string) {
	verdict := VerdictUnsure
	rationale := ""

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(strings.ToUpper(line), "VERDICT:"):
			raw := strings.TrimSpace(line[strings.Index(line, ":")+1:])
			switch Verdict(strings.ToLower(raw)) {
			case VerdictLikelySecret:
				verdict = VerdictLikelySecret
			case VerdictLikelyNoise:
				verdict = VerdictLikelyNoise
			default:
				verdict = VerdictUnsure
			}
		case strings.HasPrefix(strings.ToUpper(line), "RATIONALE:"):
			rationale = strings.TrimSpace(line[strings.Index(line, ":")+1:])
		}
	}

	return verdict, rationale
}
