package cli

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/mindlayout/pkg/core/layout"
	"github.com/matzehuels/mindlayout/pkg/core/tree"
)

func browseTree() *tree.Node {
	root := tree.Sized("Root", 100, 40,
		tree.Sized("A", 60, 30,
			tree.Sized("A1", 50, 24),
		),
		tree.Sized("B", 60, 30),
	)
	tree.AssignIDs(root)
	return root
}

func newTestBrowser(t *testing.T, save string) BrowseModel {
	t.Helper()
	d := layout.NewDriver()
	t.Cleanup(d.Close)
	return NewBrowseModel(browseTree(), layout.DefaultConfig(), d, save)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send applies msg and runs the returned command, feeding its message back.
func send(t *testing.T, m BrowseModel, msg tea.Msg) BrowseModel {
	t.Helper()
	next, cmd := m.Update(msg)
	bm := next.(BrowseModel)
	if cmd != nil {
		next, _ = bm.Update(cmd())
		bm = next.(BrowseModel)
	}
	return bm
}

func TestBrowseInitialLayout(t *testing.T) {
	m := newTestBrowser(t, "")
	if len(m.rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(m.rows))
	}
	if !m.Pending() {
		t.Error("layout should be pending before Init runs")
	}

	m = send(t, m, m.Init()())
	if m.Pending() {
		t.Error("layout should be shown after the first result")
	}
	if m.err != nil {
		t.Fatalf("layout error: %v", m.err)
	}
	if len(m.placed) != 4 {
		t.Errorf("placed = %d, want 4", len(m.placed))
	}
	if m.bounds.Width() <= 0 {
		t.Error("bounds should be non-empty")
	}
}

func TestBrowseNavigate(t *testing.T) {
	m := newTestBrowser(t, "")
	m = send(t, m, key("up"))
	if m.Cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.Cursor)
	}
	for range 10 {
		m = send(t, m, key("j"))
	}
	if m.Cursor != 3 {
		t.Errorf("cursor = %d, want 3", m.Cursor)
	}
	if got := m.Selected().Data.Text; got != "B" {
		t.Errorf("selected = %q, want B", got)
	}
}

func TestBrowseToggle(t *testing.T) {
	m := newTestBrowser(t, "")
	m = send(t, m, m.Init()())

	m = send(t, m, key("down"))
	m = send(t, m, key("enter"))

	if m.Selected().IsExpanded() {
		t.Error("A should be collapsed")
	}
	if len(m.rows) != 3 {
		t.Errorf("rows = %d, want 3", len(m.rows))
	}
	if !m.Modified {
		t.Error("model should be marked modified")
	}
	if m.Pending() {
		t.Error("relayout should have been applied")
	}
	if len(m.placed) != 3 {
		t.Errorf("placed = %d, want 3 after folding", len(m.placed))
	}
	if !strings.Contains(m.View(), "▸ A") {
		t.Errorf("view should show A as folded:\n%s", m.View())
	}
}

func TestBrowseToggleLeaf(t *testing.T) {
	m := newTestBrowser(t, "")
	m.Cursor = 3
	next, cmd := m.Update(key(" "))
	if cmd != nil {
		t.Error("toggling a leaf should not relayout")
	}
	if next.(BrowseModel).Modified {
		t.Error("toggling a leaf should not modify the tree")
	}
}

func TestBrowseCycleStrategy(t *testing.T) {
	m := newTestBrowser(t, "")
	m = send(t, m, key("s"))
	if m.cfg.Strategy != layout.OrganizationStructure {
		t.Errorf("strategy = %v, want organization", m.cfg.Strategy)
	}
	m = send(t, m, key("s"))
	if m.cfg.Strategy != layout.Logical {
		t.Errorf("strategy = %v, want logical", m.cfg.Strategy)
	}
}

func TestBrowseDropsStaleResults(t *testing.T) {
	m := newTestBrowser(t, "")
	m.requested = 3

	m = m.applyLayout(layoutMsg{seq: 2, err: layout.ErrSuperseded})
	if m.shown != 0 || m.err != nil {
		t.Error("superseded runs should be ignored")
	}

	m = m.applyLayout(layoutMsg{seq: 3, x: &layout.Export{}})
	m = m.applyLayout(layoutMsg{seq: 1, err: errors.New("late failure")})
	if m.shown != 3 || m.err != nil {
		t.Errorf("older results should be dropped, shown = %d err = %v", m.shown, m.err)
	}
}

func TestBrowseSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yaml")
	m := newTestBrowser(t, path)
	m.Cursor = 1
	m = send(t, m, key(" "))
	m = send(t, m, key("w"))

	if m.Modified {
		t.Errorf("save should clear the modified flag (status %q)", m.status)
	}
	saved, err := tree.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if saved.Children[0].IsExpanded() {
		t.Error("saved tree should keep the fold state")
	}
}

func TestBrowseSaveWithoutPath(t *testing.T) {
	m := newTestBrowser(t, "")
	next, cmd := m.Update(key("w"))
	if cmd != nil {
		t.Error("save without a path should not run a command")
	}
	if next.(BrowseModel).status == "" {
		t.Error("save without a path should report a status")
	}
}

func TestOutline(t *testing.T) {
	root := browseTree()
	root.Children[0].Data.Expand = false
	rows := outline(root)
	var got []string
	for _, r := range rows {
		got = append(got, strings.Repeat(" ", r.depth)+r.node.Data.Text)
	}
	want := []string{"Root", " A", " B"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("outline = %q, want %q", got, want)
	}
}
