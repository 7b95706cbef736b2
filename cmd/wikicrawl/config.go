package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"
)

// AppName is used for the XDG configuration directory.
const AppName = "wikicrawl"

// DefaultConfigFile is looked up in the working directory.
const DefaultConfigFile = "wikicrawl.yaml"

// DefaultConfigPaths returns the configuration files searched when --config
// is not given: the working directory first, then the XDG config directory.
func DefaultConfigPaths() []string {
	return []string{
		DefaultConfigFile,
		filepath.Join(XDGConfigDir(), "config.yaml"),
	}
}

// XDGConfigDir returns the XDG config directory for wikicrawl.
// On Linux: ~/.config/wikicrawl
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// FindConfigFile returns the first path that exists, or "".
func FindConfigFile(paths ...string) string {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// YAMLConfig is a kong configuration loader for a flat YAML mapping of flag
// names to values, for example:
//
//	max-depth: 3
//	workers: 8
//	delay: 2s
//	keyword: [vedas, upanishad]
//
// Keys may use dashes or underscores. Flags given on the command line win.
func YAMLConfig(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return kong.ResolverFunc(func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		v, ok := values[flag.Name]
		if !ok {
			v, ok = values[strings.ReplaceAll(flag.Name, "-", "_")]
		}
		if !ok || v == nil {
			return nil, nil
		}
		return configValue(v), nil
	}), nil
}

// configValue renders a YAML value as the string kong would read from the
// command line. Lists become comma-separated.
func configValue(v any) string {
	if list, ok := v.([]any); ok {
		parts := make([]string, 0, len(list))
		for _, item := range list {
			parts = append(parts, fmt.Sprint(item))
		}
		return strings.Join(parts, ",")
	}
	return fmt.Sprint(v)
}
