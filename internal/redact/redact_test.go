// Copyright 2026 The RepoScan Authors
// SPDX-License-Identifier: MIT

package redact

import (
	"os"
	"testing"
)

func TestString_RedactsKnownEnvVars(t *testing.T) {
	const secret = "sk-ant-REDACTED" //nolint:gosec // fake test credential
	t.Setenv("ANTHROPIC_API_KEY", secret)
	ResetForTest()

	input := "error: auth failed with key sk-ant-REDACTED for triage"
	got := String(input)

	if got == input {
		t.Error("expected secret to be redacted, but string was unchanged")
	}
	if expected := "error: auth failed with key [REDACTED] for triage"; got != expected {
		t.Errorf("got %q, want %q", got, expected)
	}
}

func TestString_NoSecretSetIsNoop(t *testing.T) {
	os.Unsetenv("ANTHROPIC_API_KEY") //nolint:errcheck // test cleanup
	ResetForTest()

	input := "some normal error message"
	got := String(input)

	if got != input {
		t.Errorf("expected no change, got %q", got)
	}
}

func TestString_ShortValuesIgnored(t *testing.T) {
	// Values under 4 chars could cause false-positive redaction.
	t.Setenv("ANTHROPIC_API_KEY", "abc")
	ResetForTest()

	input := "abc is in the string abc"
	got := String(input)

	if got != input {
		t.Errorf("expected no redaction for short values, got %q", got)
	}
}

func TestString_CachesAcrossCalls(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "test-token-aaaa")
	ResetForTest()

	input := "token: test-token-aaaa"
	expected := "token: [REDACTED]"

	if got := String(input); got != expected {
		t.Errorf("got %q, want %q", got, expected)
	}
	if got := String(input); got != expected {
		t.Errorf("got %q, want %q", got, expected)
	}
}
