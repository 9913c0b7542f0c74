package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"sfclint/internal/diag"
	"sfclint/internal/source"
	"sfclint/internal/trace"
)

// ComponentExt is the extension of files the CLI picks up.
const ComponentExt = ".vue"

// FileResult содержит результат анализа одного файла.
type FileResult struct {
	Path        string        // Путь к файлу
	FileID      source.FileID // ID файла в FileSet; 0 и Err != nil при ошибке загрузки
	Diagnostics []diag.Diagnostic
	Cached      bool  // диагностики взяты из дискового кэша
	Err         error // ошибка загрузки или разбиения компонента
}

// RunOptions control a multi-file run.
type RunOptions struct {
	Jobs     int          // <= 0 means GOMAXPROCS
	Cache    *DiskCache   // nil disables the disk cache
	Progress ProgressSink // nil disables progress events
}

// skipDir reports directories that never hold project components.
func skipDir(name string) bool {
	return name == "node_modules" || (strings.HasPrefix(name, ".") && name != "." && name != "..")
}

// ListComponentFiles возвращает отсортированный список всех *.vue файлов в директории.
func ListComponentFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ComponentExt) {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// ExpandTargets turns CLI arguments into a sorted, de-duplicated file list.
// Directories are walked; files are taken as given whatever their extension.
func ExpandTargets(targets []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	for _, target := range targets {
		st, err := os.Stat(target)
		if err != nil {
			return nil, err
		}
		var found []string
		if st.IsDir() {
			found, err = ListComponentFiles(target)
			if err != nil {
				return nil, err
			}
		} else {
			found = []string{target}
		}
		for _, f := range found {
			if _, dup := seen[f]; dup {
				continue
			}
			seen[f] = struct{}{}
			files = append(files, f)
		}
	}
	sort.Strings(files)
	return files, nil
}

// AnalyzeDir анализирует все *.vue файлы в директории параллельно.
func (a *Analyzer) AnalyzeDir(ctx context.Context, dir string, opts RunOptions) (*source.FileSet, []FileResult, error) {
	files, err := ListComponentFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	results, err := a.analyzeLoaded(ctx, fileSet, files, opts)
	return fileSet, results, err
}

// AnalyzeFiles анализирует перечисленные файлы параллельно. Результаты идут
// в порядке files.
func (a *Analyzer) AnalyzeFiles(ctx context.Context, baseDir string, files []string, opts RunOptions) (*source.FileSet, []FileResult, error) {
	fileSet := source.NewFileSetWithBase(baseDir)
	results, err := a.analyzeLoaded(ctx, fileSet, files, opts)
	return fileSet, results, err
}

func (a *Analyzer) analyzeLoaded(ctx context.Context, fileSet *source.FileSet, files []string, opts RunOptions) ([]FileResult, error) {
	if len(files) == 0 {
		return nil, nil
	}
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeCommand, "analyze:files", 0)
	defer span.End(fmt.Sprintf("files=%d", len(files)))

	// FileSet не потокобезопасен: загружаем всё заранее
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
		fileID, err := fileSet.Load(path)
		if err != nil {
			// Сохраняем ошибку загрузки для последующей обработки
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]FileResult, len(files))
	digest := a.cfg.Digest()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, hadError := loadErrors[path]; hadError {
				results[i] = FileResult{Path: path, Err: fmt.Errorf("load %s: %w", path, loadErr)}
				emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr})
				return nil
			}
			file := fileSet.Get(fileIDs[path])
			results[i] = a.analyzeFile(gctx, path, file, digest, opts)
			return nil
		})
	}

	// Ждём завершения всех горутин
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// analyzeFile runs one pass, consulting the disk cache first. Cache
// failures only cost a re-analysis. Events and results carry path as the
// caller spelled it.
func (a *Analyzer) analyzeFile(ctx context.Context, path string, file *source.File, digest string, opts RunOptions) FileResult {
	res := FileResult{Path: path, FileID: file.ID}
	started := time.Now()
	tracer := trace.FromContext(ctx)

	var key Digest
	if opts.Cache != nil {
		key = cacheKey(file.Content, digest)
		payload, ok, err := opts.Cache.Get(key)
		if err != nil {
			trace.Error(tracer, trace.ScopeDocument, "cache:get", err, map[string]string{"path": path})
		}
		if ok {
			res.Diagnostics = payload.Diagnostics
			res.Cached = true
			emit(opts.Progress, Event{File: path, Stage: StageAnalyze, Status: StatusCached, Elapsed: time.Since(started)})
			return res
		}
	}

	emit(opts.Progress, Event{File: path, Stage: StageAnalyze, Status: StatusWorking})
	diags, err := a.Analyze(ctx, string(file.Content))
	if err != nil {
		res.Err = fmt.Errorf("%s: %w", path, err)
		emit(opts.Progress, Event{File: path, Stage: StageAnalyze, Status: StatusError, Err: err, Elapsed: time.Since(started)})
		return res
	}
	res.Diagnostics = diags

	if opts.Cache != nil {
		payload := &DiskPayload{Path: file.Path, ConfigDigest: digest, Diagnostics: diags}
		if err := opts.Cache.Put(key, payload); err != nil {
			trace.Error(tracer, trace.ScopeDocument, "cache:put", err, map[string]string{"path": path})
		}
	}
	emit(opts.Progress, Event{File: path, Stage: StageAnalyze, Status: StatusDone, Elapsed: time.Since(started)})
	return res
}
