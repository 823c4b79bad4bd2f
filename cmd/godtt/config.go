package main

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config holds all configuration for the godtt CLI.
type Config struct {
	Expr   string   `koanf:"expr"`
	Twists []string `koanf:"twist"`
	Moves  []string `koanf:"move"`
	DbPath string   `koanf:"db"`
	Add    bool     `koanf:"add"`
}

// loadConfig layers the configuration sources, later ones winning:
// defaults, then godtt.toml, then GODTT_* environment variables, then flags.
func loadConfig(f *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"expr":  "",
		"twist": []string{},
		"move":  []string{},
		"db":    "",
		"add":   false,
	}
	if err := k.Load(makeMapProvider(defaults), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	// the config file is optional
	_ = k.Load(file.Provider("godtt.toml"), toml.Parser())

	// GODTT_DB=tracks.db sets "db", and so on
	if err := k.Load(env.Provider("GODTT_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(
			strings.TrimPrefix(s, "GODTT_")), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	if f != nil {
		if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// mapProvider feeds a literal map to koanf, for the defaults layer.
type mapProvider struct {
	m map[string]interface{}
}

func makeMapProvider(m map[string]interface{}) *mapProvider {
	return &mapProvider{m: m}
}

func (p *mapProvider) Read() (map[string]interface{}, error) {
	return p.m, nil
}

func (p *mapProvider) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("not implemented")
}
