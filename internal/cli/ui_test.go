package cli

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestMapSummaryParts(t *testing.T) {
	tests := []struct {
		name string
		s    mapSummary
		want []string
	}{
		{
			name: "all visible",
			s:    mapSummary{Strategy: "mindmap", Nodes: 5, Visible: 5},
			want: []string{"mindmap", "5 nodes", "fresh"},
		},
		{
			name: "folded and measured",
			s:    mapSummary{Strategy: "logical", Nodes: 9, Visible: 6, Measured: 9, Cached: true},
			want: []string{"logical", "9 nodes", "3 folded away", "9 measured", "cached"},
		},
		{
			name: "single node",
			s:    mapSummary{Strategy: "organization", Nodes: 1, Visible: 1},
			want: []string{"organization", "1 node", "fresh"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.parts(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parts() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, mapSummary{Strategy: "mindmap", Nodes: 7, Visible: 6, Cached: true})

	out := buf.String()
	for _, want := range []string{"mindmap", "7 nodes", "1 folded away", "cached"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q: %q", want, out)
		}
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("summary should be one line: %q", out)
	}
}

func TestStatusLines(t *testing.T) {
	var buf bytes.Buffer
	say(&buf, markOK, "Rendered %s layout", "logical")
	say(&buf, markWarn, "Fold state not saved")
	wrote(&buf, "plan.svg")
	field(&buf, "Line style", "curve")

	out := buf.String()
	for _, want := range []string{"✓", "Rendered logical layout", "!", "Fold state not saved", "→", "plan.svg", "Line style", "curve"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderReportsSummary(t *testing.T) {
	input := writeTestTree(t)
	base := filepath.Join(t.TempDir(), "plan")

	out, err := execute(t, "render", input, "-f", "svg", "-o", base+".svg", "-s", "organization", "--no-cache")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"Rendered", "organization", "7 nodes", "1 folded away", "fresh", base + ".svg"} {
		if !strings.Contains(out, want) {
			t.Errorf("render output missing %q:\n%s", want, out)
		}
	}
}
