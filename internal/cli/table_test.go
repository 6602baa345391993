package cli

import (
	"strings"
	"testing"
)

func TestNewTable(t *testing.T) {
	table := NewTable([]string{"#", "Hex", "Share"})

	if table == nil {
		t.Fatal("NewTable returned nil")
	}
	if len(table.headers) != 3 {
		t.Errorf("Expected 3 headers, got %d", len(table.headers))
	}
	if table.padding != 2 {
		t.Errorf("Expected padding of 2, got %d", table.padding)
	}
}

func TestTableAddRowNormalisesLength(t *testing.T) {
	table := NewTable([]string{"Hex", "Share"})

	table.AddRow([]string{"#ff0000"})
	table.AddRow([]string{"#00ff00", "50.0%", "extra"})

	for i, row := range table.rows {
		if len(row) != 2 {
			t.Errorf("row %d has %d cells, want 2", i, len(row))
		}
	}
	if table.rows[0][1] != "" {
		t.Errorf("padded cell = %q, want empty", table.rows[0][1])
	}
}

func TestTableRender(t *testing.T) {
	table := NewTable([]string{"#", "Hex", "Share"})
	table.SetAlign(0, AlignRight)
	table.SetAlign(2, AlignRight)
	table.AddRow([]string{"1", "#ff0000", "75.0%"})
	table.AddRow([]string{"10", "#0000ff", "5.0%"})

	want := strings.Join([]string{
		" #  Hex      Share",
		"--  -------  -----",
		" 1  #ff0000  75.0%",
		"10  #0000ff   5.0%",
		"",
	}, "\n")

	if got := table.Render(); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestTableRenderLastColumnUnpadded(t *testing.T) {
	table := NewTable([]string{"Hex", "Preview"})
	table.AddRow([]string{"#fff", "\033[48;2;255;255;255m  \033[0m"})
	table.AddRow([]string{"#000", "x"})

	lines := strings.Split(table.Render(), "\n")
	if lines[3] != "#000  x" {
		t.Errorf("last column padded: %q", lines[3])
	}
}

func TestTableRenderEmpty(t *testing.T) {
	if got := NewTable(nil).Render(); got != "" {
		t.Errorf("Render() = %q, want empty", got)
	}
}

func TestPadding(t *testing.T) {
	tests := []struct {
		s     string
		width int
		left  string
		right string
	}{
		{"ab", 4, "  ab", "ab  "},
		{"abcd", 2, "abcd", "abcd"},
		{"", 1, " ", " "},
	}

	for _, tt := range tests {
		if got := padLeft(tt.s, tt.width); got != tt.left {
			t.Errorf("padLeft(%q, %d) = %q, want %q", tt.s, tt.width, got, tt.left)
		}
		if got := padRight(tt.s, tt.width); got != tt.right {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.s, tt.width, got, tt.right)
		}
	}
}
