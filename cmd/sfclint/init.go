package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"sfclint/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default sfclint.toml",
	Long: `Write sfclint.toml with every rule setting at its default value into the
given directory (the current directory when omitted). The directory is created
when it does not exist. An existing configuration file is never overwritten.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringSlice("disable", nil, "rules to list as disabled (IDs or names)")
}

// runInit resolves the target directory, refuses to touch a directory that
// already has a configuration file, and writes the defaults as TOML.
func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) > 0 && args[0] != "" {
		target = args[0]
	}
	target, err := filepath.Abs(target)
	if err != nil {
		return err
	}

	if st, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err = os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", target, err)
			}
		} else {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	for _, name := range config.FileNames {
		existing := filepath.Join(target, name)
		if _, err := os.Stat(existing); err == nil {
			return fmt.Errorf("already configured: %s exists", existing)
		}
	}

	cfg := config.Default()
	disable, err := cmd.Flags().GetStringSlice("disable")
	if err != nil {
		return err
	}
	if cfg.Disabled, err = config.ParseDisabled(disable); err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.WriteString("# sfclint configuration\n")
	if err := config.WriteTOML(&buf, cfg); err != nil {
		return err
	}
	path := filepath.Join(target, config.FileNames[0])
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	rel := path
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, path); err2 == nil {
			rel = r
		}
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", rel)
	return err
}
