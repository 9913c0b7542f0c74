package driver

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"sfclint/internal/config"
	"sfclint/internal/diag"
	"sfclint/internal/observ"
	"sfclint/internal/sfc"
	"sfclint/internal/source"
	"sfclint/internal/trace"
)

const component = "<template>\n" +
	"  <div onClick=\"go\"></div>\n" +
	"</template>\n" +
	"<script lang=\"ts\">\n" +
	"class A {\n" +
	"  save(a, b, c) {\n" +
	"    return a > 18;\n" +
	"  }\n" +
	"}\n" +
	"</script>\n" +
	"<style>\n" +
	".a { color: red; }\n" +
	"</style>\n"

// styleStub reports one warning at the style region start.
type styleStub struct{}

func (styleStub) Analyze(_ context.Context, region *sfc.Region, rep diag.Reporter) {
	if region == nil {
		return
	}
	rep.Report(diag.UnknownCode, diag.SevInfo, source.Range{Start: region.Range.Start, End: region.Range.Start}, "style", nil)
}

func codes(diags []diag.Diagnostic) []diag.Code {
	out := make([]diag.Code, len(diags))
	for i, d := range diags {
		out[i] = d.Code
	}
	return out
}

func TestAnalyzeConcatenatesRegionsInOrder(t *testing.T) {
	a := NewAnalyzer(config.Default(), Options{Style: styleStub{}})
	diags, err := a.Analyze(context.Background(), component)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	got := codes(diags)
	want := []diag.Code{diag.TplAttributeNaming, diag.ScrArgumentCount, diag.ScrMagicNumber, diag.UnknownCode}
	if len(got) != len(want) {
		t.Fatalf("codes = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("codes = %v, want %v", got, want)
		}
	}
	if diags[0].Range.Start.Line != 1 || diags[1].Range.Start.Line != 5 {
		t.Fatalf("unexpected lines: %v, %v", diags[0].Range, diags[1].Range)
	}
	for _, d := range diags {
		if d.Source != "sfclint" {
			t.Fatalf("source = %q", d.Source)
		}
	}
}

func TestAnalyzeTemplateWithExpressions(t *testing.T) {
	text := "<template>\n  <div :fooBar=\"x\">{{ xs.filter(x => x > 1).length }} {{ a < b }}</div>\n</template>\n"
	diags, err := NewAnalyzer(config.Default(), Options{}).Analyze(context.Background(), text)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if got := codes(diags); len(got) != 1 || got[0] != diag.TplAttributeNaming {
		t.Fatalf("codes = %v, want [TPL002]", got)
	}
}

func TestAnalyzeSkipsBrokenRegion(t *testing.T) {
	text := "<template>\n  <div onClick=\"go\"></div>\n</template>\n" +
		"<script lang=\"ts\">\nclass A {\n  save(a, b, c {\n}\n</script>\n"
	ring := trace.NewRingTracer(16, trace.LevelError)
	ctx := trace.WithTracer(context.Background(), ring)

	diags, err := NewAnalyzer(config.Default(), Options{}).Analyze(ctx, text)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(diags) != 1 || diags[0].Code != diag.TplAttributeNaming {
		t.Fatalf("expected only the template warning, got %+v", diags)
	}
	var failed bool
	for _, ev := range ring.Snapshot() {
		if ev.Kind == trace.KindError && ev.Name == "parse:script" {
			failed = true
		}
	}
	if !failed {
		t.Fatalf("expected a parse:script error event, got %+v", ring.Snapshot())
	}
}

func TestAnalyzeNoRegions(t *testing.T) {
	diags, err := NewAnalyzer(config.Default(), Options{}).Analyze(context.Background(), "just text\n")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("expected nothing, got %+v", diags)
	}
}

func TestAnalyzeDisabledRulesAndCustomSource(t *testing.T) {
	cfg := config.Default()
	cfg.Disabled = []diag.Code{diag.ScrMagicNumber, diag.TplAttributeNaming}
	cfg.Source = "vue-lint"
	diags, err := NewAnalyzer(cfg, Options{}).Analyze(context.Background(), component)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(diags) != 1 || diags[0].Code != diag.ScrArgumentCount || diags[0].Source != "vue-lint" {
		t.Fatalf("unexpected diagnostics %+v", diags)
	}
}

func TestAnalyzeMaxDiagnostics(t *testing.T) {
	diags, err := NewAnalyzer(config.Default(), Options{MaxDiagnostics: 2}).Analyze(context.Background(), component)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(diags) != 2 || diags[0].Code != diag.TplAttributeNaming {
		t.Fatalf("expected the first two diagnostics, got %+v", diags)
	}
}

func TestAnalyzeTimedRecordsPhases(t *testing.T) {
	timer := observ.NewTimer()
	if _, err := NewAnalyzer(config.Default(), Options{}).AnalyzeTimed(context.Background(), component, timer); err != nil {
		t.Fatalf("AnalyzeTimed: %v", err)
	}
	report := timer.Report()
	if len(report.Phases) != 4 || report.Phases[0].Name != "split" || report.Phases[3].Name != "style" {
		t.Fatalf("unexpected phases %+v", report.Phases)
	}
	if report.Phases[2].Note != "diags=2" {
		t.Fatalf("script note = %q", report.Phases[2].Note)
	}
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *recordingSink) count(status Status) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, ev := range s.events {
		if ev.Status == status {
			n++
		}
	}
	return n
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestListComponentFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.vue"), component)
	writeFile(t, filepath.Join(dir, "a", "c.vue"), component)
	writeFile(t, filepath.Join(dir, "notes.txt"), "x")
	writeFile(t, filepath.Join(dir, "node_modules", "dep", "d.vue"), component)
	writeFile(t, filepath.Join(dir, ".git", "e.vue"), component)

	files, err := ListComponentFiles(dir)
	if err != nil {
		t.Fatalf("ListComponentFiles: %v", err)
	}
	want := []string{filepath.Join(dir, "a", "c.vue"), filepath.Join(dir, "b.vue")}
	if len(files) != len(want) || files[0] != want[0] || files[1] != want[1] {
		t.Fatalf("files = %v, want %v", files, want)
	}
}

func TestExpandTargetsDeduplicates(t *testing.T) {
	dir := t.TempDir()
	one := filepath.Join(dir, "one.vue")
	writeFile(t, one, component)
	files, err := ExpandTargets([]string{dir, one})
	if err != nil {
		t.Fatalf("ExpandTargets: %v", err)
	}
	if len(files) != 1 || files[0] != one {
		t.Fatalf("files = %v", files)
	}
	if _, err := ExpandTargets([]string{filepath.Join(dir, "missing.vue")}); err == nil {
		t.Fatal("expected error for a missing target")
	}
}

func TestAnalyzeDirUsesCache(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.vue"), component)
	writeFile(t, filepath.Join(dir, "b.vue"), "<template>\n  <p id=\"x\"></p>\n</template>\n")
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}
	a := NewAnalyzer(config.Default(), Options{})

	sink := &recordingSink{}
	_, first, err := a.AnalyzeDir(context.Background(), dir, RunOptions{Jobs: 2, Cache: cache, Progress: sink})
	if err != nil {
		t.Fatalf("AnalyzeDir: %v", err)
	}
	if len(first) != 2 || first[0].Cached || len(first[0].Diagnostics) != 3 || len(first[1].Diagnostics) != 0 {
		t.Fatalf("unexpected first run %+v", first)
	}
	if sink.count(StatusDone) != 2 || sink.count(StatusQueued) != 2 {
		t.Fatalf("unexpected progress events %+v", sink.events)
	}

	_, second, err := a.AnalyzeDir(context.Background(), dir, RunOptions{Cache: cache})
	if err != nil {
		t.Fatalf("AnalyzeDir: %v", err)
	}
	if !second[0].Cached || len(second[0].Diagnostics) != 3 {
		t.Fatalf("expected cached result, got %+v", second[0])
	}
	for i, d := range second[0].Diagnostics {
		if d.Range != first[0].Diagnostics[i].Range || d.Code != first[0].Diagnostics[i].Code {
			t.Fatalf("cached diagnostic %d differs: %+v vs %+v", i, d, first[0].Diagnostics[i])
		}
	}

	// другая конфигурация — другой ключ
	cfg := config.Default()
	cfg.MaxParams = 5
	_, third, err := NewAnalyzer(cfg, Options{}).AnalyzeDir(context.Background(), dir, RunOptions{Cache: cache})
	if err != nil {
		t.Fatalf("AnalyzeDir: %v", err)
	}
	if third[0].Cached || len(third[0].Diagnostics) != 2 {
		t.Fatalf("expected a fresh pass, got %+v", third[0])
	}
}

func TestAnalyzeFilesReportsLoadErrors(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.vue")
	writeFile(t, good, component)
	missing := filepath.Join(dir, "missing.vue")

	_, results, err := NewAnalyzer(config.Default(), Options{}).AnalyzeFiles(context.Background(), dir, []string{good, missing}, RunOptions{})
	if err != nil {
		t.Fatalf("AnalyzeFiles: %v", err)
	}
	if results[0].Err != nil || len(results[0].Diagnostics) != 3 {
		t.Fatalf("unexpected good result %+v", results[0])
	}
	if results[1].Err == nil {
		t.Fatal("expected load error for missing file")
	}
}

func TestAnalyzeFilesCancelled(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.vue")
	writeFile(t, path, component)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := NewAnalyzer(config.Default(), Options{}).AnalyzeFiles(ctx, dir, []string{path}, RunOptions{}); err == nil {
		t.Fatal("expected context error")
	}
}
