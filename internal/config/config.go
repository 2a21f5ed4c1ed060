// Copyright 2026 The RepoScan Authors
// SPDX-License-Identifier: MIT

// Package config loads .reposcan.yaml / .reposcan.toml rule-pack and
// scanner-default configuration from a repository root.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// YAMLFileName and TOMLFileName are the two accepted config file names in a
// repository root, tried in that order.
const (
	YAMLFileName = ".reposcan.yaml"
	TOMLFileName = ".reposcan.toml"
)

// Config is the contents of a .reposcan.yaml or .reposcan.toml file: named,
// reusable rule packs plus scanner defaults that CLI flags can override.
type Config struct {
	RulePacks []RulePack `yaml:"rule_packs,omitempty" toml:"rule_packs,omitempty"`
	Branches  string     `yaml:"branches,omitempty"   toml:"branches,omitempty"`
	Since     string     `yaml:"since,omitempty"      toml:"since,omitempty"`
	Workers   int        `yaml:"workers,omitempty"    toml:"workers,omitempty"`
}

// RulePack is a named bundle of content/path rules and path-skip filters,
// loaded wholesale onto a rules.RulesEngine.
type RulePack struct {
	Name           string               `yaml:"name"                      toml:"name"`
	ContentRules   []ContentRuleConfig  `yaml:"content_rules,omitempty"   toml:"content_rules,omitempty"`
	FilePathRules  []FilePathRuleConfig `yaml:"file_path_rules,omitempty" toml:"file_path_rules,omitempty"`
	SkipExtensions []string             `yaml:"skip_extensions,omitempty" toml:"skip_extensions,omitempty"`
	SkipPaths      []string             `yaml:"skip_paths,omitempty"      toml:"skip_paths,omitempty"`
}

// ContentRuleConfig mirrors rules.RulesEngine.AddContentRule's arguments.
type ContentRuleConfig struct {
	Name      string   `yaml:"name"                toml:"name"`
	Pattern   string   `yaml:"pattern"             toml:"pattern"`
	Whitelist []string `yaml:"whitelist,omitempty" toml:"whitelist,omitempty"`
	Blacklist []string `yaml:"blacklist,omitempty" toml:"blacklist,omitempty"`
}

// FilePathRuleConfig mirrors rules.RulesEngine.AddFilePathRule's arguments.
type FilePathRuleConfig struct {
	Name    string `yaml:"name"    toml:"name"`
	Pattern string `yaml:"pattern" toml:"pattern"`
}

// Load reads the config file from repoPath, trying .reposcan.yaml then
// .reposcan.toml. If neither exists, it returns a zero-value Config and a
// nil error — an unconfigured repository is not an error.
func Load(repoPath string) (*Config, error) {
	if cfg, ok, err := loadYAML(filepath.Join(repoPath, YAMLFileName)); ok || err != nil {
		return cfg, err
	}
	if cfg, ok, err := loadTOML(filepath.Join(repoPath, TOMLFileName)); ok || err != nil {
		return cfg, err
	}
	return &Config{}, nil
}

func loadYAML(path string) (*Config, bool, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided repo path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, true, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, true, err
	}
	return &cfg, true, nil
}

func loadTOML(path string) (*Config, bool, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided repo path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, true, err
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, true, err
	}
	return &cfg, true, nil
}
