package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"sfclint/internal/driver"
	"sfclint/internal/fix"
	"sfclint/internal/source"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <file.vue|directory>...",
	Short: "Apply available fixes to components",
	Long:  "Lint the components, then apply the fixes attached to the diagnostics according to the chosen strategy.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFix,
}

func init() {
	fixCmd.Flags().Bool("all", false, "apply all safe fixes")
	fixCmd.Flags().Bool("once", false, "apply the first available fix (default)")
	fixCmd.Flags().String("id", "", "apply fix with a specific identifier (see diag --format json)")
	fixCmd.Flags().Bool("unsafe", false, "with --all, also apply renames that leave other references untouched")
	fixCmd.Flags().Bool("dry-run", false, "print the fixed content instead of writing files")
	fixCmd.Flags().Bool("list", false, "list fix identifiers without applying anything")
}

func runFix(cmd *cobra.Command, args []string) error {
	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	applyOnceFlag, err := cmd.Flags().GetBool("once")
	if err != nil {
		return err
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return err
	}
	unsafe, err := cmd.Flags().GetBool("unsafe")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}
	list, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}

	if targetID != "" && (applyAll || applyOnceFlag) {
		return fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnceFlag {
		return fmt.Errorf("--all and --once are mutually exclusive")
	}
	if unsafe && !applyAll {
		return fmt.Errorf("--unsafe requires --all")
	}

	mode := fix.ApplyModeOnce
	if targetID != "" {
		mode = fix.ApplyModeID
	} else if applyAll {
		mode = fix.ApplyModeAll
	}
	opts := fix.ApplyOptions{
		Mode:     mode,
		TargetID: targetID,
		Unsafe:   unsafe,
		DryRun:   dryRun,
	}

	cleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	files, err := driver.ExpandTargets(args)
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}
	analyzer, err := newAnalyzer(cmd, args[0])
	if err != nil {
		return err
	}
	baseDir, err := os.Getwd()
	if err != nil {
		return err
	}

	// кэш не нужен: после правки содержимое всё равно другое
	fs, results, err := analyzer.AnalyzeFiles(cmd.Context(), baseDir, files, driver.RunOptions{})
	if err != nil {
		return fmt.Errorf("fix: analysis failed: %w", err)
	}

	targets := make([]fix.FileDiagnostics, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", r.Err)
			continue
		}
		targets = append(targets, fix.FileDiagnostics{File: r.FileID, Diagnostics: r.Diagnostics})
	}

	if list {
		return listFixes(cmd.OutOrStdout(), fs, targets)
	}

	res, applyErr := fix.Apply(fs, targets, opts)
	return handleApplyResult(cmd.OutOrStdout(), res, applyErr, dryRun)
}

func listFixes(out io.Writer, fs *source.FileSet, targets []fix.FileDiagnostics) error {
	count := 0
	for _, t := range targets {
		f := fs.Get(t.File)
		for _, d := range t.Diagnostics {
			if d.Fix == nil {
				continue
			}
			count++
			if _, err := fmt.Fprintf(out, "%s  %s:%d:%d  %s (%s)\n",
				fix.FixID(t.File, d), f.Path, d.Range.Start.Line+1, d.Range.Start.Character+1,
				d.Fix.Title, fix.ApplicabilityOf(d.Code)); err != nil {
				return err
			}
		}
	}
	if count == 0 {
		_, err := fmt.Fprintln(out, "No applicable fixes found.")
		return err
	}
	return nil
}

func handleApplyResult(out io.Writer, res *fix.ApplyResult, applyErr error, dryRun bool) error {
	if res == nil {
		return applyErr
	}
	var printErr error

	if len(res.Applied) > 0 {
		verb := "Applied"
		if dryRun {
			verb = "Would apply"
		}
		_, printErr = fmt.Fprintf(out, "%s %d fix(es):\n", verb, len(res.Applied))
		if printErr != nil {
			return printErr
		}
		for _, item := range res.Applied {
			_, printErr = fmt.Fprintf(out, "  %s [%s] %s (%s)\n", item.Title, item.ID, item.Path, item.Applicability)
			if printErr != nil {
				return printErr
			}
		}
	}

	if len(res.Skipped) > 0 {
		_, printErr = fmt.Fprintf(out, "Skipped %d fix(es):\n", len(res.Skipped))
		if printErr != nil {
			return printErr
		}
		for _, item := range res.Skipped {
			_, printErr = fmt.Fprintf(out, "  %s [%s]: %s\n", item.Title, item.ID, item.Reason)
			if printErr != nil {
				return printErr
			}
		}
	}

	if dryRun {
		for _, change := range res.FileChanges {
			_, printErr = fmt.Fprintf(out, "--- %s (%d edits)\n%s", change.Path, change.EditCount, change.Content)
			if printErr != nil {
				return printErr
			}
		}
	}

	if applyErr != nil {
		if errors.Is(applyErr, fix.ErrNoFixes) && len(res.Applied) == 0 {
			_, printErr = fmt.Fprintln(out, "No applicable fixes found.")
			return printErr
		}
		return applyErr
	}
	return nil
}
