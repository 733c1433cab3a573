package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mindlayout/pkg/core/geometry"
	"github.com/matzehuels/mindlayout/pkg/core/layout"
	"github.com/matzehuels/mindlayout/pkg/core/tree"
	"github.com/matzehuels/mindlayout/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorValue)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorMuted)
)

// browseCommand creates the interactive outline browser.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		flags layoutFlags
		save  string
	)

	cmd := &cobra.Command{
		Use:   "browse [tree.json|tree.yaml]",
		Short: "Browse a content tree and fold nodes interactively",
		Long: `Browse a content tree as an outline.

Folding a node or switching the strategy re-runs the layout in the
background; the panel shows the position of the selected node and the
bounds of the latest layout. Press w to write the tree with its fold
state to --save.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBrowse(cmd.OutOrStdout(), args[0], flags, save)
		},
	}

	cmd.Flags().StringVarP(&flags.strategy, "strategy", "s", pipeline.DefaultStrategy, "layout strategy: mindmap, logical, organization")
	cmd.Flags().StringVar(&flags.lineStyle, "line-style", "", "override the theme line style")
	cmd.Flags().StringVar(&flags.themePath, "theme", "", "theme file (.toml, .yaml or .json)")
	cmd.Flags().Float64Var(&flags.width, "width", pipeline.DefaultWidth, "frame width")
	cmd.Flags().Float64Var(&flags.height, "height", pipeline.DefaultHeight, "frame height")
	cmd.Flags().StringVar(&save, "save", "", "file to write the tree to when pressing w")

	return cmd
}

// runBrowse loads the tree and runs the browser until the user quits.
func (c *CLI) runBrowse(w io.Writer, input string, flags layoutFlags, save string) error {
	root, err := loadTree(input)
	if err != nil {
		return fmt.Errorf("load tree %s: %w", input, err)
	}
	if _, err := pipeline.Prepare(root); err != nil {
		return err
	}
	tree.AssignIDs(root)

	opts := flags.options()
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}
	cfg, err := opts.LayoutConfig()
	if err != nil {
		return err
	}

	driver := layout.NewDriver()
	defer driver.Close()

	m := NewBrowseModel(root, cfg, driver, save)
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(BrowseModel); ok && fm.Modified && save == "" {
		say(w, markWarn, "Fold state not saved (use --save)")
	}
	return nil
}

// =============================================================================
// BrowseModel - Interactive outline
// =============================================================================

// outlineRow is one visible line of the outline.
type outlineRow struct {
	node  *tree.Node
	depth int
}

// layoutMsg delivers a finished layout run. seq orders requests.
type layoutMsg struct {
	seq int
	x   *layout.Export
	err error
}

// savedMsg reports the outcome of writing the tree.
type savedMsg struct {
	path string
	err  error
}

// BrowseModel is the bubbletea model for the outline browser.
type BrowseModel struct {
	Cursor   int
	Offset   int
	Height   int
	Modified bool

	root     *tree.Node
	cfg      layout.Config
	driver   *layout.Driver
	savePath string

	rows      []outlineRow
	requested int
	shown     int
	placed    map[string]layout.ExportNode
	bounds    geometry.Rect
	status    string
	err       error
}

// NewBrowseModel creates a browser over root. The tree must be measured
// and carry ids; fold state changes are applied to it in place.
func NewBrowseModel(root *tree.Node, cfg layout.Config, driver *layout.Driver, savePath string) BrowseModel {
	return BrowseModel{
		Height:    15,
		root:      root,
		cfg:       cfg,
		driver:    driver,
		savePath:  savePath,
		rows:      outline(root),
		requested: 1,
	}
}

// outline flattens the visible part of the tree in depth-first order.
func outline(root *tree.Node) []outlineRow {
	var rows []outlineRow
	tree.Walk(root, tree.Children, func(n, _ *tree.Node, _ bool, layer, _ int) bool {
		rows = append(rows, outlineRow{node: n, depth: layer})
		return !n.IsExpanded()
	}, nil)
	return rows
}

// layoutCmd queues a layout of a snapshot of the tree. The snapshot keeps
// the worker from observing later fold changes.
func (m BrowseModel) layoutCmd(seq int) tea.Cmd {
	run := m.driver.Layout(context.Background(), m.root.Clone(), m.cfg, nil)
	return func() tea.Msg {
		res, err := run.Wait(context.Background())
		if err != nil {
			return layoutMsg{seq: seq, err: err}
		}
		return layoutMsg{seq: seq, x: res.Export()}
	}
}

// saveCmd writes a snapshot of the tree to the save path.
func (m BrowseModel) saveCmd() tea.Cmd {
	snapshot, path := m.root.Clone(), m.savePath
	return func() tea.Msg {
		return savedMsg{path: path, err: saveTree(path, snapshot)}
	}
}

func saveTree(path string, root *tree.Node) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if tree.IsYAML(path) {
		err = tree.WriteYAML(f, root)
	} else {
		err = tree.WriteJSON(f, root)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

func (m BrowseModel) Init() tea.Cmd {
	return m.layoutCmd(m.requested)
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.rows)-1 {
				m.Cursor++
			}
		case " ", "enter":
			return m.toggle()
		case "s":
			return m.cycleStrategy()
		case "w":
			if m.savePath == "" {
				m.status = "no --save file given"
				return m, nil
			}
			return m, m.saveCmd()
		}
		m.scroll()
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-14, 5)
		m.scroll()
	case layoutMsg:
		return m.applyLayout(msg), nil
	case savedMsg:
		if msg.err != nil {
			m.status = "save failed: " + msg.err.Error()
		} else {
			m.status = "saved " + msg.path
			m.Modified = false
		}
	}
	return m, nil
}

// toggle folds or unfolds the selected node and requests a new layout.
func (m BrowseModel) toggle() (tea.Model, tea.Cmd) {
	if len(m.rows) == 0 {
		return m, nil
	}
	n := m.rows[m.Cursor].node
	if len(n.Children) == 0 {
		return m, nil
	}
	n.Data.Expand = !n.Data.Expand
	m.rows = outline(m.root)
	m.Cursor = min(m.Cursor, len(m.rows)-1)
	m.Modified = true
	m.scroll()
	m.requested++
	return m, m.layoutCmd(m.requested)
}

// cycleStrategy switches to the next layout strategy.
func (m BrowseModel) cycleStrategy() (tea.Model, tea.Cmd) {
	for i, k := range layout.Kinds {
		if k == m.cfg.Strategy {
			m.cfg.Strategy = layout.Kinds[(i+1)%len(layout.Kinds)]
			break
		}
	}
	m.requested++
	return m, m.layoutCmd(m.requested)
}

// applyLayout records a finished run. Superseded runs and results older
// than the one on screen are dropped.
func (m BrowseModel) applyLayout(msg layoutMsg) BrowseModel {
	if errors.Is(msg.err, layout.ErrSuperseded) || msg.seq < m.shown {
		return m
	}
	m.shown = msg.seq
	if msg.err != nil {
		m.err = msg.err
		return m
	}
	m.err = nil
	m.bounds = msg.x.Bounds
	m.placed = make(map[string]layout.ExportNode, len(msg.x.Nodes))
	for _, n := range msg.x.Nodes {
		m.placed[n.ContentID] = n
	}
	return m
}

// scroll keeps the cursor inside the visible window.
func (m *BrowseModel) scroll() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

// Selected returns the node under the cursor.
func (m BrowseModel) Selected() *tree.Node {
	if len(m.rows) == 0 {
		return nil
	}
	return m.rows[m.Cursor].node
}

// Pending reports whether a requested layout has not been shown yet.
func (m BrowseModel) Pending() bool { return m.shown < m.requested }

func (m BrowseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Mind Map Outline"))
	b.WriteString(listDimStyle.Render("  " + m.cfg.Strategy.String()))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ␣ fold  s strategy  w save  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.rows))
	for i := m.Offset; i < end; i++ {
		row := m.rows[i]
		line := strings.Repeat("  ", row.depth) + marker(row.node) + " " + oneLine(row.node.Data.Text)
		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render("▸ " + line))
		case row.node.IsExpanded() || len(row.node.Children) == 0:
			b.WriteString(listNormalStyle.Render("  " + line))
		default:
			b.WriteString(listDimStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.detail())
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(markFail.String() + " " + m.err.Error())
	case m.Pending():
		b.WriteString(listDimStyle.Render("computing layout..."))
	case m.status != "":
		b.WriteString(listDimStyle.Render(m.status))
	default:
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.rows))))
	}
	return b.String()
}

// detail renders the placement of the selected node and the layout bounds.
func (m BrowseModel) detail() string {
	rows := [][]string{
		{"Visible", fmt.Sprintf("%d of %d nodes", len(m.rows), tree.Count(m.root))},
		{"Bounds", fmt.Sprintf("%.0f × %.0f", m.bounds.Width(), m.bounds.Height())},
	}
	if sel := m.Selected(); sel != nil {
		if n, ok := m.placed[sel.Data.ID]; ok {
			dir := n.Dir
			if dir == "" {
				dir = "—"
			}
			rows = append(rows,
				[]string{"Position", fmt.Sprintf("%.1f, %.1f", n.Left, n.Top)},
				[]string{"Box", fmt.Sprintf("%.0f × %.0f", n.Width, n.Height)},
				[]string{"Layer", fmt.Sprintf("%d", n.Layer)},
				[]string{"Direction", dir},
			)
		}
	}

	keyStyle := lipgloss.NewStyle().Foreground(colorLabel)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorMuted)).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return keyStyle
			}
			return lipgloss.NewStyle().Foreground(colorValue)
		}).
		Render()
}

func marker(n *tree.Node) string {
	switch {
	case len(n.Children) == 0:
		return "·"
	case n.IsExpanded():
		return "▾"
	default:
		return "▸"
	}
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
