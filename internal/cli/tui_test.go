package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/switchpuzzle/pkg/puzzle"
	"github.com/matzehuels/switchpuzzle/pkg/route"
)

func sampleModel(t *testing.T) ReportListModel {
	t.Helper()
	p, err := puzzle.Decode([]byte(samplePuzzle), puzzle.FormatTOML)
	if err != nil {
		t.Fatal(err)
	}
	in, err := p.Build()
	if err != nil {
		t.Fatal(err)
	}
	reports, err := route.Evaluate(in)
	if err != nil {
		t.Fatal(err)
	}
	return NewReportListModel(in, reports)
}

func press(m ReportListModel, key string) (ReportListModel, tea.Cmd) {
	var msg tea.KeyMsg
	switch key {
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, cmd := m.Update(msg)
	return next.(ReportListModel), cmd
}

func TestReportListNavigation(t *testing.T) {
	m := sampleModel(t)

	m, _ = press(m, "down")
	if m.Cursor != 1 {
		t.Errorf("Cursor = %d after down, want 1", m.Cursor)
	}
	m, _ = press(m, "down")
	if m.Cursor != 1 {
		t.Errorf("Cursor = %d past the end, want 1", m.Cursor)
	}
	m, _ = press(m, "k")
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d after k, want 0", m.Cursor)
	}
	m, _ = press(m, "G")
	if m.Cursor != 1 {
		t.Errorf("Cursor = %d after G, want 1", m.Cursor)
	}

	r, ok := m.Selected()
	if !ok || r.Reached {
		t.Errorf("Selected() = %+v, %v; want the missed route", r, ok)
	}
}

func TestReportListToggleReached(t *testing.T) {
	m := sampleModel(t)
	m, _ = press(m, "down")
	m, _ = press(m, "r")

	if !m.OnlyReached || m.Cursor != 0 {
		t.Fatalf("toggle: OnlyReached=%v Cursor=%d", m.OnlyReached, m.Cursor)
	}
	if n := len(m.visible()); n != 1 {
		t.Errorf("visible = %d, want 1", n)
	}
	r, ok := m.Selected()
	if !ok || !r.Reached {
		t.Errorf("Selected() = %+v, want the reached route", r)
	}
}

func TestReportListView(t *testing.T) {
	m := sampleModel(t)
	view := m.View()

	for _, want := range []string{"Routes from 1234 to 2314", "2134 (1) -> 1324 (1)", "[1/2]", "Path 1: 2134 (1)"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	empty := NewReportListModel(m.Input, nil)
	if !strings.Contains(empty.View(), "no routes") {
		t.Error("empty model should say there are no routes")
	}
}

func TestReportListQuit(t *testing.T) {
	m := sampleModel(t)
	if _, cmd := press(m, "q"); cmd == nil {
		t.Error("q should return a quit command")
	}
	if _, cmd := press(m, "j"); cmd != nil {
		t.Error("navigation should not return a command")
	}
}

func TestReportListWindowSize(t *testing.T) {
	m := sampleModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	if h := next.(ReportListModel).Height; h != 5 {
		t.Errorf("Height = %d, want minimum 5", h)
	}
}
