package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Palette
// =============================================================================

// The accent is the line color of the default theme, so terminal output
// and rendered maps share a look.
var (
	colorAccent = lipgloss.Color("#549688")
	colorOK     = lipgloss.Color("35")
	colorWarn   = lipgloss.Color("220")
	colorFail   = lipgloss.Color("167")
	colorValue  = lipgloss.Color("255")
	colorLabel  = lipgloss.Color("245")
	colorMuted  = lipgloss.Color("240")
)

var (
	// StyleTitle is used for headings such as the browse outline title.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	// StyleHighlight marks strategy names and other key values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)

	// StyleDim is used for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorMuted)

	styleValue = lipgloss.NewStyle().Foreground(colorValue)
	styleLabel = lipgloss.NewStyle().Foreground(colorLabel).Width(12)
	styleWarn  = lipgloss.NewStyle().Foreground(colorWarn)
)

// =============================================================================
// Status lines
// =============================================================================

// mark is the leading symbol of a status line.
type mark int

const (
	markOK mark = iota
	markFail
	markWarn
	markNote
)

func (m mark) String() string {
	switch m {
	case markOK:
		return lipgloss.NewStyle().Foreground(colorOK).Render("✓")
	case markFail:
		return lipgloss.NewStyle().Foreground(colorFail).Render("✗")
	case markWarn:
		return styleWarn.Render("!")
	default:
		return lipgloss.NewStyle().Foreground(colorLabel).Render("›")
	}
}

// say writes one status line to w.
func say(w io.Writer, m mark, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if m == markWarn {
		msg = styleWarn.Render(msg)
	}
	fmt.Fprintln(w, m.String()+" "+msg)
}

// detail writes an indented secondary line.
func detail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// wrote lists a file a command produced.
func wrote(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render("→")+" "+styleValue.Render(path))
}

// field writes a labeled value, for example a theme setting.
func field(w io.Writer, label, value string) {
	fmt.Fprintln(w, styleLabel.Render(label)+" "+styleValue.Render(value))
}

// suggest points at the command a user is likely to run next.
func suggest(w io.Writer, what, command string) {
	fmt.Fprintln(w, StyleDim.Render(what+":")+" "+StyleHighlight.Render(command))
}

// =============================================================================
// Map summary
// =============================================================================

// mapSummary describes a finished layout or render run.
type mapSummary struct {
	Strategy string
	Nodes    int // every node in the tree
	Visible  int // nodes not hidden by a folded ancestor
	Measured int // boxes sized from their text
	Cached   bool
}

// parts returns the unstyled fragments of the summary line. Folded and
// measured counts only appear when they add something.
func (s mapSummary) parts() []string {
	parts := []string{s.Strategy}
	parts = append(parts, plural(s.Nodes, "node"))
	if s.Visible != s.Nodes {
		parts = append(parts, fmt.Sprintf("%d folded away", s.Nodes-s.Visible))
	}
	if s.Measured > 0 {
		parts = append(parts, fmt.Sprintf("%d measured", s.Measured))
	}
	if s.Cached {
		parts = append(parts, "cached")
	} else {
		parts = append(parts, "fresh")
	}
	return parts
}

// printSummary writes the summary as one indented, dot-separated line.
func printSummary(w io.Writer, s mapSummary) {
	parts := s.parts()
	styled := make([]string, len(parts))
	for i, p := range parts {
		switch {
		case i == 0:
			styled[i] = StyleHighlight.Render(p)
		case p == "cached":
			styled[i] = lipgloss.NewStyle().Foreground(colorOK).Render(p)
		default:
			styled[i] = StyleDim.Render(p)
		}
	}
	fmt.Fprintln(w, "  "+strings.Join(styled, StyleDim.Render(" · ")))
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
