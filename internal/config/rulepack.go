// Copyright 2026 The RepoScan Authors
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"

	"github.com/corvidsec/reposcan/internal/rules"
)

// Apply loads every rule pack in cfg onto engine, in order. A failure
// anywhere aborts and identifies the offending pack and rule so the user
// can fix their config file before any scan starts.
func (c *Config) Apply(engine *rules.RulesEngine) error {
	for _, pack := range c.RulePacks {
		if err := pack.apply(engine); err != nil {
			return fmt.Errorf("rule pack %q: %w", pack.Name, err)
		}
	}
	return nil
}

func (p *RulePack) apply(engine *rules.RulesEngine) error {
	for _, cr := range p.ContentRules {
		if err := engine.AddContentRule(cr.Name, cr.Pattern, cr.Whitelist, cr.Blacklist); err != nil {
			return fmt.Errorf("content rule %q: %w", cr.Name, err)
		}
	}
	for _, fr := range p.FilePathRules {
		if err := engine.AddFilePathRule(fr.Name, fr.Pattern); err != nil {
			return fmt.Errorf("file path rule %q: %w", fr.Name, err)
		}
	}
	for _, ext := range p.SkipExtensions {
		if err := engine.AddFileExtensionToSkip(ext); err != nil {
			return fmt.Errorf("skip extension %q: %w", ext, err)
		}
	}
	for _, sub := range p.SkipPaths {
		if err := engine.AddFilePathToSkip(sub); err != nil {
			return fmt.Errorf("skip path %q: %w", sub, err)
		}
	}
	return nil
}
