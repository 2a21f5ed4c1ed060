// Copyright 2026 The RepoScan Authors
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"strings"
)

// Validate checks structural correctness of cfg that isn't already enforced
// by RulesEngine.Add* (empty pack names, negative worker counts, an
// unparseable since value), returning every problem found at once.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.Workers < 0 {
		errs = append(errs, fmt.Sprintf("workers: must be non-negative, got %d", cfg.Workers))
	}

	if cfg.Since != "" {
		if _, err := ParseSince(cfg.Since); err != nil {
			errs = append(errs, err.Error())
		}
	}

	seen := make(map[string]bool)
	for i, pack := range cfg.RulePacks {
		if pack.Name == "" {
			errs = append(errs, fmt.Sprintf("rule_packs[%d]: name is required", i))
			continue
		}
		if seen[pack.Name] {
			errs = append(errs, fmt.Sprintf("rule_packs: duplicate pack name %q", pack.Name))
		}
		seen[pack.Name] = true
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
