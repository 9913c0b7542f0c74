package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"sfclint/internal/config"
	"sfclint/internal/driver"
)

// loadConfig returns the configuration for startDir: the --config file when
// given, otherwise the nearest sfclint.toml/.sfclint.yaml, otherwise defaults.
func loadConfig(cmd *cobra.Command, startDir string) (config.Config, string, error) {
	explicit, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Config{}, "", fmt.Errorf("failed to get config flag: %w", err)
	}
	if explicit != "" {
		cfg, err := config.Load(explicit)
		if err != nil {
			return config.Config{}, explicit, err
		}
		return cfg, explicit, nil
	}
	return config.LoadFor(startDir)
}

// startDirFor picks the directory the configuration search begins at.
func startDirFor(target string) string {
	if st, err := os.Stat(target); err == nil && !st.IsDir() {
		return filepath.Dir(target)
	}
	return target
}

// newAnalyzer builds an analyzer from the configuration governing target.
func newAnalyzer(cmd *cobra.Command, target string) (*driver.Analyzer, error) {
	cfg, _, err := loadConfig(cmd, startDirFor(target))
	if err != nil {
		return nil, err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	return driver.NewAnalyzer(cfg, driver.Options{MaxDiagnostics: maxDiagnostics}), nil
}

// useColor resolves --color against the terminal state of stdout.
func useColor(cmd *cobra.Command) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch colorFlag {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto", "":
		return isTerminal(os.Stdout) && os.Getenv("NO_COLOR") == "", nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}
}
