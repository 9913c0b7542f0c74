package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"

	"sfclint/internal/diag"
)

// Файлы конфигурации в порядке приоритета внутри одной директории.
var FileNames = []string{"sfclint.toml", ".sfclint.yaml", ".sfclint.yml"}

type fileConfig struct {
	Rules  rulesSection  `toml:"rules" yaml:"rules"`
	Output outputSection `toml:"output" yaml:"output"`
}

type rulesSection struct {
	MaxParams        *int     `toml:"max_params,omitempty" yaml:"max_params,omitempty"`
	MaxFunctionLines *int     `toml:"max_function_lines,omitempty" yaml:"max_function_lines,omitempty"`
	MaxNestingDepth  *int     `toml:"max_nesting_depth,omitempty" yaml:"max_nesting_depth,omitempty"`
	BooleanPrefixes  []string `toml:"boolean_prefixes,omitempty" yaml:"boolean_prefixes,omitempty"`
	AttributeOrder   []string `toml:"attribute_order,omitempty" yaml:"attribute_order,omitempty"`
	Disabled         []string `toml:"disabled" yaml:"disabled"`
}

type outputSection struct {
	Source string `toml:"source,omitempty" yaml:"source,omitempty"`
}

// Find walks up from startDir looking for a configuration file.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads one configuration file. Missing keys keep their defaults.
func Load(path string) (Config, error) {
	// #nosec G304 -- path comes from Find or the --config flag
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return Config{}, fmt.Errorf("%s: failed to parse YAML: %w", path, err)
		}
	default:
		if _, err := toml.Decode(string(data), &fc); err != nil {
			return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
		}
	}
	cfg, err := fc.apply(Default())
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadFor finds and loads the configuration governing startDir.
// Without a configuration file it returns Default and an empty path.
func LoadFor(startDir string) (Config, string, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, "", err
	}
	if !ok {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	if err != nil {
		return Config{}, path, err
	}
	return cfg, path, nil
}

func (fc fileConfig) apply(cfg Config) (Config, error) {
	r := fc.Rules
	if r.MaxParams != nil {
		cfg.MaxParams = *r.MaxParams
	}
	if r.MaxFunctionLines != nil {
		cfg.MaxFunctionLines = *r.MaxFunctionLines
	}
	if r.MaxNestingDepth != nil {
		cfg.MaxNestingDepth = *r.MaxNestingDepth
	}
	if r.BooleanPrefixes != nil {
		cfg.BooleanPrefixes = r.BooleanPrefixes
	}
	if r.AttributeOrder != nil {
		cfg.AttributeOrder = r.AttributeOrder
	}
	disabled, err := ParseDisabled(r.Disabled)
	if err != nil {
		return Config{}, fmt.Errorf("[rules].disabled: %w", err)
	}
	cfg.Disabled = disabled
	if s := strings.TrimSpace(fc.Output.Source); s != "" {
		cfg.Source = s
	}
	return cfg, nil
}

// ParseDisabled resolves rule IDs or names into codes.
func ParseDisabled(names []string) ([]diag.Code, error) {
	if len(names) == 0 {
		return nil, nil
	}
	out := make([]diag.Code, 0, len(names))
	for _, n := range names {
		code, ok := diag.ParseCode(n)
		if !ok {
			return nil, fmt.Errorf("unknown rule %q", n)
		}
		out = append(out, code)
	}
	return out, nil
}

// WriteTOML renders cfg as a complete sfclint.toml.
func WriteTOML(w io.Writer, cfg Config) error {
	disabled := make([]string, 0, len(cfg.Disabled))
	for _, c := range cfg.Disabled {
		disabled = append(disabled, c.ID())
	}
	fc := fileConfig{
		Rules: rulesSection{
			MaxParams:        &cfg.MaxParams,
			MaxFunctionLines: &cfg.MaxFunctionLines,
			MaxNestingDepth:  &cfg.MaxNestingDepth,
			BooleanPrefixes:  cfg.BooleanPrefixes,
			AttributeOrder:   cfg.AttributeOrder,
			Disabled:         disabled,
		},
		Output: outputSection{Source: cfg.Source},
	}
	if err := toml.NewEncoder(w).Encode(fc); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
