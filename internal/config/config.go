// Package config holds the rule settings of one project and loads them from
// sfclint.toml or .sfclint.yaml.
package config

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"sfclint/internal/diag"
)

const (
	DefaultMaxParams        = 2
	DefaultMaxFunctionLines = 80
	DefaultMaxNestingDepth  = 4
	DefaultSource           = "sfclint"
)

// Config is passed into the analyzers when they are constructed.
// Values are never shared between projects.
type Config struct {
	MaxParams        int         `msgpack:"max_params"`
	MaxFunctionLines int         `msgpack:"max_function_lines"`
	MaxNestingDepth  int         `msgpack:"max_nesting_depth"`
	BooleanPrefixes  []string    `msgpack:"boolean_prefixes"`
	AttributeOrder   []string    `msgpack:"attribute_order"`
	Disabled         []diag.Code `msgpack:"disabled"`
	Source           string      `msgpack:"source"`
}

// Default returns a fresh configuration with the built-in style guide values.
func Default() Config {
	return Config{
		MaxParams:        DefaultMaxParams,
		MaxFunctionLines: DefaultMaxFunctionLines,
		MaxNestingDepth:  DefaultMaxNestingDepth,
		BooleanPrefixes:  []string{"is", "has", "can", "visible", "show", "loading"},
		AttributeOrder: []string{
			"is",
			"for",
			"if,else-if,else,show,cloak",
			"pre,once",
			"id",
			"ref,key",
			"slot",
			"model",
			"defaultValueProp,attribute,bind",
			"on",
			"html,text",
		},
		Source: DefaultSource,
	}
}

// Clone returns a deep copy so callers can adjust slices freely.
func (c Config) Clone() Config {
	out := c
	out.BooleanPrefixes = append([]string(nil), c.BooleanPrefixes...)
	out.AttributeOrder = append([]string(nil), c.AttributeOrder...)
	out.Disabled = append([]diag.Code(nil), c.Disabled...)
	return out
}

// Enabled reports whether the rule has not been switched off.
func (c Config) Enabled(code diag.Code) bool {
	for _, d := range c.Disabled {
		if d == code {
			return false
		}
	}
	return true
}

// Validate checks the numeric limits and table contents.
func (c Config) Validate() error {
	switch {
	case c.MaxParams < 0:
		return fmt.Errorf("max_params must be >= 0, got %d", c.MaxParams)
	case c.MaxFunctionLines < 1:
		return fmt.Errorf("max_function_lines must be >= 1, got %d", c.MaxFunctionLines)
	case c.MaxNestingDepth < 0:
		return fmt.Errorf("max_nesting_depth must be >= 0, got %d", c.MaxNestingDepth)
	}
	for i, p := range c.BooleanPrefixes {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("boolean_prefixes[%d] is empty", i)
		}
	}
	seen := make(map[string]int)
	for i, group := range c.AttributeOrder {
		for _, name := range strings.Split(group, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				return fmt.Errorf("attribute_order[%d] has an empty name", i)
			}
			if prev, ok := seen[name]; ok {
				return fmt.Errorf("attribute_order: %q listed in groups %d and %d", name, prev, i)
			}
			seen[name] = i
		}
	}
	return nil
}

// Digest identifies the settings that influence analysis output.
// Cached diagnostics are keyed by it.
func (c Config) Digest() string {
	payload, err := msgpack.Marshal(c)
	if err != nil {
		// Config has only plain fields; Marshal failing is a programmer error.
		panic(fmt.Errorf("config digest: %w", err))
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:16])
}
