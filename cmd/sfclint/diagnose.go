package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"sfclint/internal/diag"
	"sfclint/internal/diagfmt"
	"sfclint/internal/driver"
	"sfclint/internal/observ"
	"sfclint/internal/source"
	"sfclint/internal/trace"
	"sfclint/internal/version"
)

const cacheAppName = "sfclint"

var diagCmd = &cobra.Command{
	Use:   "diag [flags] <file.vue|directory>...",
	Short: "Lint components and print diagnostics",
	Long:  `Run the template and script rules over the given .vue files or all *.vue files within the given directories`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDiagnose,
}

// init registers CLI flags for the diag command used by runDiagnose.
func init() {
	diagCmd.Flags().String("format", "pretty", "output format (pretty|json|sarif|short)")
	diagCmd.Flags().Bool("warnings-as-errors", false, "exit with status 1 when any warning is reported")
	diagCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	diagCmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	diagCmd.Flags().String("path-mode", "relative", "how to print file paths (auto|absolute|relative|basename)")
	diagCmd.Flags().Int8("context", 0, "source lines of context before each diagnostic (pretty)")
	diagCmd.Flags().Bool("no-cache", false, "disable the persistent diagnostics cache")
	diagCmd.Flags().String("ui", "auto", "progress display (auto|on|off)")
}

type diagOptions struct {
	format           string
	warningsAsErrors bool
	jobs             int
	suggest          bool
	pathMode         diagfmt.PathMode
	context          int8
	noCache          bool
	ui               uiMode
	timings          bool
	color            bool
}

func readDiagOptions(cmd *cobra.Command) (diagOptions, error) {
	var opts diagOptions
	var err error

	if opts.format, err = cmd.Flags().GetString("format"); err != nil {
		return opts, fmt.Errorf("failed to get format flag: %w", err)
	}
	switch opts.format {
	case "pretty", "json", "sarif", "short":
	default:
		return opts, fmt.Errorf("unknown format: %s", opts.format)
	}
	if opts.warningsAsErrors, err = cmd.Flags().GetBool("warnings-as-errors"); err != nil {
		return opts, fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	if opts.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return opts, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if opts.suggest, err = cmd.Flags().GetBool("suggest"); err != nil {
		return opts, fmt.Errorf("failed to get suggest flag: %w", err)
	}
	pathMode, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return opts, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	var ok bool
	if opts.pathMode, ok = diagfmt.ParsePathMode(pathMode); !ok {
		return opts, fmt.Errorf("invalid --path-mode value %q", pathMode)
	}
	if opts.context, err = cmd.Flags().GetInt8("context"); err != nil {
		return opts, fmt.Errorf("failed to get context flag: %w", err)
	}
	if opts.noCache, err = cmd.Flags().GetBool("no-cache"); err != nil {
		return opts, fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return opts, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if opts.ui, err = readUIMode(uiFlag); err != nil {
		return opts, err
	}
	if opts.timings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return opts, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if opts.color, err = useColor(cmd); err != nil {
		return opts, err
	}
	return opts, nil
}

// runDiagnose executes the "diag" command: it expands the targets, lints them
// in parallel, prints the diagnostics in the chosen format and sets the exit
// status (1 for warnings with --warnings-as-errors, 2 for unreadable files).
func runDiagnose(cmd *cobra.Command, args []string) error {
	opts, err := readDiagOptions(cmd)
	if err != nil {
		return err
	}
	cleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeCommand, "diag", 0)
	defer span.End("")

	var timer *observ.Timer
	if opts.timings {
		timer = observ.NewTimer()
	}

	phase := timer.Begin("expand")
	files, err := driver.ExpandTargets(args)
	timer.End(phase, fmt.Sprintf("files=%d", len(files)))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "no .vue files found")
		return nil
	}

	analyzer, err := newAnalyzer(cmd, args[0])
	if err != nil {
		return err
	}

	runOpts := driver.RunOptions{Jobs: opts.jobs}
	if !opts.noCache {
		cache, cacheErr := driver.OpenDiskCache(cacheAppName)
		if cacheErr != nil {
			trace.Error(tracer, trace.ScopeCommand, "cache:open", cacheErr, nil)
		} else {
			runOpts.Cache = cache
		}
	}

	baseDir, err := os.Getwd()
	if err != nil {
		return err
	}

	phase = timer.Begin("analyze")
	var (
		fs      *source.FileSet
		results []driver.FileResult
	)
	if shouldUseTUI(opts.ui, len(files)) {
		fs, results, err = runAnalyzeWithUI(ctx, "sfclint diag", analyzer, baseDir, files, runOpts)
	} else {
		fs, results, err = analyzer.AnalyzeFiles(ctx, baseDir, files, runOpts)
	}
	timer.End(phase, analyzeNote(results))
	if err != nil {
		return err
	}

	phase = timer.Begin("format")
	reports, failed := collectReports(cmd.ErrOrStderr(), results)
	if err := writeDiagnostics(cmd.OutOrStdout(), fs, reports, opts, args); err != nil {
		return err
	}
	timer.End(phase, opts.format)

	if timer != nil {
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	}

	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	switch {
	case failed > 0:
		return &exitError{code: 2}
	case hasBlocking(reports, opts.warningsAsErrors):
		return &exitError{code: 1}
	}
	return nil
}

// collectReports prints per-file failures and keeps the rest for formatting.
func collectReports(errOut io.Writer, results []driver.FileResult) ([]diagfmt.FileReport, int) {
	reports := make([]diagfmt.FileReport, 0, len(results))
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(errOut, "error: %v\n", r.Err)
			continue
		}
		reports = append(reports, diagfmt.FileReport{File: r.FileID, Diagnostics: r.Diagnostics})
	}
	return reports, failed
}

func writeDiagnostics(w io.Writer, fs *source.FileSet, reports []diagfmt.FileReport, opts diagOptions, args []string) error {
	switch opts.format {
	case "pretty":
		return diagfmt.Pretty(w, fs, reports, diagfmt.PrettyOpts{
			Color:     opts.color,
			Context:   opts.context,
			PathMode:  opts.pathMode,
			ShowFixes: opts.suggest,
		})
	case "json":
		return diagfmt.JSON(w, fs, reports, diagfmt.JSONOpts{
			PathMode:     opts.pathMode,
			IncludeFixes: opts.suggest,
		})
	case "sarif":
		return diagfmt.Sarif(w, fs, reports, diagfmt.SarifRunMeta{
			ToolName:       "sfclint",
			ToolVersion:    version.Version,
			InvocationArgs: append([]string{"diag"}, args...),
		})
	case "short":
		return diagfmt.Short(w, fs, reports, opts.pathMode)
	}
	return fmt.Errorf("unknown format: %s", opts.format)
}

// hasBlocking сообщает, должен ли запуск завершиться с кодом 1.
func hasBlocking(reports []diagfmt.FileReport, warningsAsErrors bool) bool {
	threshold := diag.SevError
	if warningsAsErrors {
		threshold = diag.SevWarning
	}
	for _, r := range reports {
		for _, d := range r.Diagnostics {
			if d.Severity >= threshold {
				return true
			}
		}
	}
	return false
}

func analyzeNote(results []driver.FileResult) string {
	cached := 0
	for _, r := range results {
		if r.Cached {
			cached++
		}
	}
	parts := []string{fmt.Sprintf("files=%d", len(results))}
	if cached > 0 {
		parts = append(parts, fmt.Sprintf("cached=%d", cached))
	}
	return strings.Join(parts, " ")
}
