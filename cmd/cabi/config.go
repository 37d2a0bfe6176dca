package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/callsite/cabi/ctypes"
)

// fileConfig is an optional cabi.toml discovered by walking up from the
// working directory. Every field is optional; flags win over the file.
type fileConfig struct {
	Path   string       `toml:"-"`
	Output outputConfig `toml:"output"`
	Target targetConfig `toml:"target"`
}

type outputConfig struct {
	Format string `toml:"format"`
	Color  string `toml:"color"`
}

type targetConfig struct {
	Triple string `toml:"triple"`
}

func findCabiToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "cabi.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadFileConfig(startDir string) (*fileConfig, bool, error) {
	path, ok, err := findCabiToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := parseFileConfig(path)
	if err != nil {
		return nil, true, err
	}
	return cfg, true, nil
}

func parseFileConfig(path string) (*fileConfig, error) {
	var cfg fileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	cfg.Path = path

	switch cfg.Output.Format {
	case "", "pretty", "json":
	default:
		return nil, fmt.Errorf("%s: [output].format must be pretty or json, got %q", path, cfg.Output.Format)
	}
	switch cfg.Output.Color {
	case "", "auto", "on", "off":
	default:
		return nil, fmt.Errorf("%s: [output].color must be auto, on or off, got %q", path, cfg.Output.Color)
	}
	return &cfg, nil
}

// resolveFormat applies flag > file > built-in default precedence.
func resolveFormat(cmd *cobra.Command) (string, error) {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return "", err
	}
	if !cmd.Flags().Changed("format") && fileCfg != nil && fileCfg.Output.Format != "" {
		format = fileCfg.Output.Format
	}
	switch format {
	case "pretty", "json":
		return format, nil
	default:
		return "", fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
}

func resolveTarget() (ctypes.Target, error) {
	triple := flagTarget
	if triple == "" && fileCfg != nil {
		triple = fileCfg.Target.Triple
	}
	return ctypes.TargetByTriple(triple)
}
