package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aalvaropc/memoform/internal/domain"
)

func typeText(t *testing.T, m tea.Model, s string) tea.Model {
	t.Helper()
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func press(m tea.Model, k tea.KeyType) (tea.Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: k})
}

func asModel(t *testing.T, m tea.Model) model {
	t.Helper()
	mm, ok := m.(model)
	if !ok {
		t.Fatalf("expected model, got %T", m)
	}
	return mm
}

func TestTypingUpdatesFibonacci(t *testing.T) {
	var m tea.Model = newModel(Deps{Config: domain.DefaultConfig()})

	m = typeText(t, m, "10")
	mm := asModel(t, m)

	if got := mm.form.FibonacciInput(); got != "10" {
		t.Fatalf("expected fib input 10, got %q", got)
	}
	if got := mm.form.FibonacciDisplayValue(); got != "55" {
		t.Fatalf("expected 55, got %q", got)
	}
	// "1" then "10": two distinct dependencies.
	if st := mm.form.CacheStats(); st.Computations != 2 {
		t.Fatalf("expected 2 computations, got %+v", st)
	}
	if !strings.Contains(mm.View(), "55") {
		t.Fatalf("expected view to show 55:\n%s", mm.View())
	}
}

func TestTabSwitchesToNameWithoutRecompute(t *testing.T) {
	var m tea.Model = newModel(Deps{Config: domain.DefaultConfig()})
	m = typeText(t, m, "7")
	before := asModel(t, m).form.CacheStats()

	m, cmd := press(m, tea.KeyTab)
	if cmd == nil {
		t.Fatalf("expected focus command")
	}
	m = typeText(t, m, "Ada")
	mm := asModel(t, m)

	if mm.focus != fieldName {
		t.Fatalf("expected focus on name, got %d", mm.focus)
	}
	if mm.form.NameDisplayValue() != "Ada" {
		t.Fatalf("expected name Ada, got %q", mm.form.NameDisplayValue())
	}
	if mm.form.FibonacciInput() != "7" {
		t.Fatalf("expected fib input untouched, got %q", mm.form.FibonacciInput())
	}
	if mm.form.CacheStats() != before {
		t.Fatalf("name typing changed cache stats: %+v -> %+v", before, mm.form.CacheStats())
	}

	view := mm.View()
	if !strings.Contains(view, "13") || !strings.Contains(view, "Ada") {
		t.Fatalf("expected view with 13 and Ada:\n%s", view)
	}
}

func TestFocusWrapsAround(t *testing.T) {
	var m tea.Model = newModel(Deps{Config: domain.DefaultConfig()})

	m, _ = press(m, tea.KeyShiftTab)
	if asModel(t, m).focus != fieldName {
		t.Fatalf("expected shift+tab from fib to wrap to name")
	}
	m, _ = press(m, tea.KeyDown)
	if asModel(t, m).focus != fieldFib {
		t.Fatalf("expected down from name to wrap to fib")
	}
}

func TestBackspaceToEmptyShowsBlank(t *testing.T) {
	var m tea.Model = newModel(Deps{Config: domain.DefaultConfig()})
	m = typeText(t, m, "5")
	m, _ = press(m, tea.KeyBackspace)
	mm := asModel(t, m)

	if mm.form.FibonacciInput() != "" {
		t.Fatalf("expected empty fib input, got %q", mm.form.FibonacciInput())
	}
	if mm.form.FibonacciDisplayValue() != "" {
		t.Fatalf("expected blank display, got %q", mm.form.FibonacciDisplayValue())
	}
}

func TestInvalidInputShowsHint(t *testing.T) {
	var m tea.Model = newModel(Deps{Config: domain.DefaultConfig()})
	m = typeText(t, m, "x")
	view := asModel(t, m).View()

	if !strings.Contains(view, "invalid input") {
		t.Fatalf("expected fallback text in view:\n%s", view)
	}
	if !strings.Contains(view, "Enter a whole number") {
		t.Fatalf("expected hint in view:\n%s", view)
	}
}

func TestDebugViewShowsCacheStats(t *testing.T) {
	var m tea.Model = newModel(Deps{Config: domain.DefaultConfig(), Debug: true, WorkspaceRoot: "/ws"})
	m = typeText(t, m, "3")

	view := asModel(t, m).View()
	if !strings.Contains(view, "cache: 1 computed / 0 hits") {
		t.Fatalf("expected cache stats in view:\n%s", view)
	}
	if !strings.Contains(view, "Workspace: /ws") {
		t.Fatalf("expected workspace banner in view:\n%s", view)
	}
}

func TestEscQuits(t *testing.T) {
	var m tea.Model = newModel(Deps{Config: domain.DefaultConfig()})

	_, cmd := press(m, tea.KeyEsc)
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestWindowResizeSetsInputWidth(t *testing.T) {
	var m tea.Model = newModel(Deps{Config: domain.DefaultConfig()})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	mm := asModel(t, m)

	if mm.inputs[fieldFib].Width != 68 || mm.inputs[fieldName].Width != 68 {
		t.Fatalf("expected input width 68, got %d/%d", mm.inputs[fieldFib].Width, mm.inputs[fieldName].Width)
	}
	if mm.outputWidth() != 68 {
		t.Fatalf("expected output width 68, got %d", mm.outputWidth())
	}
}

func TestDebugViewShowsLogBanner(t *testing.T) {
	since := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	m := newModel(Deps{Config: domain.DefaultConfig(), Debug: true, LogPath: "/ws/.memoform/logs/memoform.log", LogSince: since})

	view := m.View()
	if !strings.Contains(view, "log: /ws/.memoform/logs/memoform.log (since 03:04:05)") {
		t.Fatalf("expected log banner in view:\n%s", view)
	}

	m = newModel(Deps{Config: domain.DefaultConfig(), LogPath: "/ws/x.log"})
	if strings.Contains(m.View(), "/ws/x.log") {
		t.Fatalf("expected no log banner without --debug")
	}
}
