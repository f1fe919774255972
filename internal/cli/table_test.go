package cli

import (
	"strings"
	"testing"
)

func TestTableAddRow(t *testing.T) {
	table := NewTable([]string{"ID", "NAME"})

	table.AddRow([]string{"1"})
	table.AddRow([]string{"2", "Ocean", "extra"})

	if len(table.rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(table.rows))
	}
	if len(table.rows[0]) != 2 || table.rows[0][1] != "" {
		t.Errorf("short row not padded: %q", table.rows[0])
	}
	if len(table.rows[1]) != 2 {
		t.Errorf("long row not trimmed: %q", table.rows[1])
	}
}

func TestTableRender(t *testing.T) {
	table := NewTable([]string{"ID", "NAME", "MODE"})
	table.AddRow([]string{"12", "Ocean", "vibrant"})
	table.AddRow([]string{"3", "Sand", "cohesive"})

	want := "" +
		"ID  NAME   MODE\n" +
		"--  -----  --------\n" +
		"12  Ocean  vibrant\n" +
		"3   Sand   cohesive\n"
	if got := table.Render(); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestTableTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{in: "Morning Light", width: 0, want: "Morning Light"},
		{in: "Morning Light", width: 20, want: "Morning Light"},
		{in: "Morning Light", width: 7, want: "Mornin…"},
		{in: "Ünïcödé", width: 4, want: "Ünï…"},
		{in: "abc", width: 1, want: "…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}

	table := NewTable([]string{"NAME"})
	table.SetColumnMaxWidth(0, 5)
	table.AddRow([]string{"Very long palette name"})
	if !strings.Contains(table.Render(), "Very…") {
		t.Errorf("Render() did not truncate:\n%s", table.Render())
	}
}

func TestTableEmpty(t *testing.T) {
	if got := NewTable(nil).Render(); got != "" {
		t.Errorf("Render() with no headers = %q", got)
	}
}
