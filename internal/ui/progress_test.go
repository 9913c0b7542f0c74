package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"sfclint/internal/driver"
)

func newTestModel(files ...string) *progressModel {
	m := NewProgressModel("sfclint diag", files, nil)
	return m.(*progressModel)
}

func TestApplyEventStatuses(t *testing.T) {
	m := newTestModel("a.vue", "b.vue", "c.vue")

	m.applyEvent(driver.Event{File: "a.vue", Stage: driver.StageAnalyze, Status: driver.StatusWorking})
	if m.items[0].status != "analyzing" {
		t.Fatalf("status = %q, want analyzing", m.items[0].status)
	}
	m.applyEvent(driver.Event{File: "a.vue", Stage: driver.StageAnalyze, Status: driver.StatusDone})
	m.applyEvent(driver.Event{File: "b.vue", Stage: driver.StageAnalyze, Status: driver.StatusCached})
	m.applyEvent(driver.Event{File: "c.vue", Stage: driver.StageLoad, Status: driver.StatusError, Err: errors.New("gone")})

	want := []string{"done", "cached", "error"}
	for i, w := range want {
		if m.items[i].status != w {
			t.Fatalf("items[%d].status = %q, want %q", i, m.items[i].status, w)
		}
	}
	if m.finished() != 3 || m.cached != 1 || m.failed != 1 {
		t.Fatalf("finished=%d cached=%d failed=%d", m.finished(), m.cached, m.failed)
	}
	if m.percent() != 1.0 {
		t.Fatalf("percent = %v", m.percent())
	}
}

func TestApplyEventIgnoresLateAndUnknown(t *testing.T) {
	m := newTestModel("a.vue")
	m.applyEvent(driver.Event{File: "a.vue", Stage: driver.StageAnalyze, Status: driver.StatusDone})
	m.applyEvent(driver.Event{File: "a.vue", Stage: driver.StageAnalyze, Status: driver.StatusWorking})
	if m.items[0].status != "done" {
		t.Fatalf("final status overwritten: %q", m.items[0].status)
	}
	if cmd := m.applyEvent(driver.Event{File: "other.vue", Status: driver.StatusDone}); cmd != nil {
		t.Fatal("unknown file should not produce a command")
	}
}

func TestPercentByStage(t *testing.T) {
	m := newTestModel("a.vue", "b.vue")
	if m.percent() != 0 {
		t.Fatalf("queued percent = %v", m.percent())
	}
	m.applyEvent(driver.Event{File: "a.vue", Stage: driver.StageAnalyze, Status: driver.StatusWorking})
	if got := m.percent(); got != 0.25 {
		t.Fatalf("percent = %v, want 0.25", got)
	}
}

func TestViewAndDone(t *testing.T) {
	m := newTestModel("src/components/Button.vue")
	m.applyEvent(driver.Event{File: "src/components/Button.vue", Stage: driver.StageAnalyze, Status: driver.StatusError})

	view := m.View()
	if !strings.Contains(view, "sfclint diag (1/1)") {
		t.Fatalf("header missing:\n%s", view)
	}
	if !strings.Contains(view, "src/components/Button.vue") || !strings.Contains(view, "errors: 1") {
		t.Fatalf("unexpected view:\n%s", view)
	}

	_, cmd := m.Update(doneMsg{})
	if !m.done || cmd == nil {
		t.Fatal("doneMsg should finish the model")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected quit command")
	}
	if !strings.Contains(m.View(), "done:") {
		t.Fatalf("done header missing:\n%s", m.View())
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("a-very-long-component-name.vue", 10); got != "a-ve..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("abcdef", 2); got != "ab" {
		t.Fatalf("truncate = %q", got)
	}
}
