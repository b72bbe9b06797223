package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

func openRunsStore(t *testing.T, runs int) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	b := snake.GridBounds(20, 10, 12)
	for i := 0; i < runs; i++ {
		id, err := store.BeginRun(int64(i+1), b)
		if err != nil {
			t.Fatalf("BeginRun() failed: %v", err)
		}
		if i%2 == 0 {
			store.FinishRun(id, uint64(10*(i+1)))
		}
	}
	return store
}

func updateRuns(t *testing.T, m RunsModel, msg tea.Msg) (RunsModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	rm, ok := next.(RunsModel)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return rm, cmd
}

func TestRunsModelEmpty(t *testing.T) {
	m := NewRunsModel(openRunsStore(t, 0), 80, 24)
	if !strings.Contains(m.View(), "No runs journaled yet") {
		t.Error("empty journal should say so")
	}

	m, _ = updateRuns(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Selected() != "" {
		t.Error("enter on an empty table should not select")
	}
}

func TestRunsModelSelect(t *testing.T) {
	store := openRunsStore(t, 3)
	m := NewRunsModel(store, 120, 30)
	if len(m.runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(m.runs))
	}
	if !strings.Contains(m.View(), "cell size") {
		t.Error("wide layout should show the details pane")
	}

	m, _ = updateRuns(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := updateRuns(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should quit the browser")
	}
	if m.Selected() != m.runs[1].ID {
		t.Errorf("selected %q, expected the second run %q", m.Selected(), m.runs[1].ID)
	}
}

func TestRunsModelDelete(t *testing.T) {
	store := openRunsStore(t, 2)
	m := NewRunsModel(store, 80, 24)

	m, _ = updateRuns(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	if len(m.runs) != 1 {
		t.Fatalf("Expected 1 run after delete, got %d", len(m.runs))
	}
	runs, err := store.ListRuns(10)
	if err != nil || len(runs) != 1 {
		t.Errorf("store has %d runs (err %v), expected 1", len(runs), err)
	}
}

func TestRunsModelQuit(t *testing.T) {
	m := NewRunsModel(openRunsStore(t, 1), 80, 24)
	m, cmd := updateRuns(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil || m.View() != "" {
		t.Error("esc should quit with an empty view")
	}
	if m.Selected() != "" {
		t.Error("quit should not select a run")
	}
}
