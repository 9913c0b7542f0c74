package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"sfclint/internal/config"
	"sfclint/internal/diagfmt"
	"sfclint/internal/driver"
	"sfclint/internal/trace"
)

var watchCmd = &cobra.Command{
	Use:   "watch [flags] [directory]",
	Short: "Re-lint components whenever they change",
	Long:  "Lint every component under the directory once, then re-lint changed .vue files. Editing the configuration file re-lints everything.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().Duration("debounce", 200*time.Millisecond, "quiet period before re-linting changed files")
	watchCmd.Flags().String("format", "pretty", "output format (pretty|short)")
}

type watchSession struct {
	cmd      *cobra.Command
	root     string
	format   string
	color    bool
	analyzer *driver.Analyzer
	out      io.Writer
}

func runWatch(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	st, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", root)
	}
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return fmt.Errorf("failed to get debounce flag: %w", err)
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "short" {
		return fmt.Errorf("unsupported watch format %q (must be pretty or short)", format)
	}
	color, err := useColor(cmd)
	if err != nil {
		return err
	}

	s := &watchSession{cmd: cmd, root: root, format: format, color: color, out: cmd.OutOrStdout()}
	if err := s.reloadAnalyzer(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch init failed: %w", err)
	}
	defer watcher.Close()

	if err := addWatchRecursive(watcher, root); err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}

	files, err := driver.ListComponentFiles(root)
	if err != nil {
		return err
	}
	s.lint(cmd.Context(), files)
	fmt.Fprintf(cmd.ErrOrStderr(), "watching %s (Ctrl+C to stop)\n", root)

	return s.loop(cmd.Context(), watcher, debounce)
}

func (s *watchSession) reloadAnalyzer() error {
	analyzer, err := newAnalyzer(s.cmd, s.root)
	if err != nil {
		return err
	}
	s.analyzer = analyzer
	return nil
}

func (s *watchSession) loop(ctx context.Context, watcher *fsnotify.Watcher, debounce time.Duration) error {
	tracer := trace.FromContext(ctx)
	pending := make(map[string]struct{})
	relintAll := false

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			switch {
			case isConfigFile(ev.Name):
				relintAll = true
			case ev.Has(fsnotify.Create) && isDir(ev.Name):
				if skipWatchDir(filepath.Base(ev.Name)) {
					continue
				}
				if err := addWatchRecursive(watcher, ev.Name); err != nil {
					trace.Error(tracer, trace.ScopeCommand, "watch:add", err, map[string]string{"path": ev.Name})
				}
				relintAll = true
			case strings.HasSuffix(ev.Name, driver.ComponentExt):
				if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
					delete(pending, ev.Name)
					continue
				}
				pending[ev.Name] = struct{}{}
			default:
				continue
			}
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(s.cmd.ErrOrStderr(), "watch error: %v\n", err)

		case <-timer.C:
			if relintAll {
				relintAll = false
				clear(pending)
				if err := s.reloadAnalyzer(); err != nil {
					// конфиг сломан: оставляем прежний анализатор
					fmt.Fprintf(s.cmd.ErrOrStderr(), "error: %v\n", err)
				}
				files, err := driver.ListComponentFiles(s.root)
				if err != nil {
					fmt.Fprintf(s.cmd.ErrOrStderr(), "error: %v\n", err)
					continue
				}
				s.lint(ctx, files)
				continue
			}
			if len(pending) == 0 {
				continue
			}
			files := make([]string, 0, len(pending))
			for f := range pending {
				files = append(files, f)
			}
			clear(pending)
			sort.Strings(files)
			s.lint(ctx, files)
		}
	}
}

// lint анализирует файлы и печатает результат одним блоком.
func (s *watchSession) lint(ctx context.Context, files []string) {
	if len(files) == 0 {
		return
	}
	fset, results, err := s.analyzer.AnalyzeFiles(ctx, s.root, files, driver.RunOptions{})
	if err != nil {
		if ctx.Err() == nil {
			fmt.Fprintf(s.cmd.ErrOrStderr(), "error: %v\n", err)
		}
		return
	}
	reports, _ := collectReports(s.cmd.ErrOrStderr(), results)

	fmt.Fprintf(s.out, "[%s] linted %d file(s)\n", time.Now().Format("15:04:05"), len(files))
	switch s.format {
	case "short":
		err = diagfmt.Short(s.out, fset, reports, diagfmt.PathModeRelative)
	default:
		err = diagfmt.Pretty(s.out, fset, reports, diagfmt.PrettyOpts{Color: s.color, PathMode: diagfmt.PathModeRelative})
	}
	if err != nil {
		fmt.Fprintf(s.cmd.ErrOrStderr(), "error: %v\n", err)
	}
}

func addWatchRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipWatchDir(d.Name()) {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}

func skipWatchDir(name string) bool {
	return name == "node_modules" || (strings.HasPrefix(name, ".") && name != ".")
}

func isConfigFile(path string) bool {
	base := filepath.Base(path)
	for _, name := range config.FileNames {
		if base == name {
			return true
		}
	}
	return false
}

func isDir(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.IsDir()
}
