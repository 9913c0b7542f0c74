package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"sfclint/internal/driver"
	"sfclint/internal/source"
	"sfclint/internal/ui"
)

type analyzeOutcome struct {
	fileSet *source.FileSet
	results []driver.FileResult
	err     error
}

// runAnalyzeWithUI runs the analysis in the background and renders its
// progress events until the run finishes.
func runAnalyzeWithUI(ctx context.Context, title string, analyzer *driver.Analyzer, baseDir string, files []string, opts driver.RunOptions) (*source.FileSet, []driver.FileResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan analyzeOutcome, 1)

	go func() {
		runOpts := opts
		runOpts.Progress = driver.ChannelSink{Ch: events}
		fs, results, err := analyzer.AnalyzeFiles(ctx, baseDir, files, runOpts)
		outcomeCh <- analyzeOutcome{fileSet: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// модель больше не читает канал (ошибка или Ctrl+C); дочитываем сами,
	// чтобы анализ не завис на отправке
	go func() {
		for range events {
		}
	}()
	var outcome analyzeOutcome
	select {
	case outcome = <-outcomeCh:
	default:
		// программа вышла раньше анализа: пользователь прервал
		cancel()
		outcome = <-outcomeCh
	}
	if uiErr != nil && outcome.err == nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}
