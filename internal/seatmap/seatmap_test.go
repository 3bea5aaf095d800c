package seatmap

import (
	"testing"
)

func TestLayout_Grid(t *testing.T) {
	layout := DefaultLayout()
	grid := layout.Grid()

	if len(grid) != 50 {
		t.Fatalf("Expected 50 seats, got %d", len(grid))
	}
	if grid[0] != "A1" {
		t.Errorf("Expected first seat A1, got %s", grid[0])
	}
	if grid[9] != "A10" {
		t.Errorf("Expected tenth seat A10, got %s", grid[9])
	}
	if grid[10] != "B1" {
		t.Errorf("Expected eleventh seat B1, got %s", grid[10])
	}
	if grid[49] != "E10" {
		t.Errorf("Expected last seat E10, got %s", grid[49])
	}
}

func TestLayout_GridCustomSize(t *testing.T) {
	layout := Layout{Rows: 2, SeatsPerRow: 3}
	grid := layout.Grid()

	want := []string{"A1", "A2", "A3", "B1", "B2", "B3"}
	if len(grid) != len(want) {
		t.Fatalf("Expected %d seats, got %d", len(want), len(grid))
	}
	for i := range want {
		if grid[i] != want[i] {
			t.Errorf("Seat %d: expected %s, got %s", i, want[i], grid[i])
		}
	}
}

func TestLayout_Valid(t *testing.T) {
	tests := []struct {
		name   string
		layout Layout
		want   bool
	}{
		{"default", DefaultLayout(), true},
		{"single seat", Layout{1, 1}, true},
		{"max rows", Layout{26, 10}, true},
		{"too many rows", Layout{27, 10}, false},
		{"zero rows", Layout{0, 10}, false},
		{"zero columns", Layout{5, 0}, false},
		{"negative", Layout{-1, 10}, false},
	}

	for _, tt := range tests {
		if got := tt.layout.Valid(); got != tt.want {
			t.Errorf("%s: Valid() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestLayout_Contains(t *testing.T) {
	layout := DefaultLayout() // 5x10, A1..E10

	valid := []string{"A1", "A10", "C5", "E10"}
	for _, label := range valid {
		if !layout.Contains(label) {
			t.Errorf("Expected %s inside 5x10 grid", label)
		}
	}

	invalid := []string{"F1", "A11", "A0", "a1", "1A", "", "A", "A01", "ZZ1"}
	for _, label := range invalid {
		if layout.Contains(label) {
			t.Errorf("Expected %s outside 5x10 grid", label)
		}
	}
}

func TestParseLabel(t *testing.T) {
	row, col, ok := ParseLabel("B7")
	if !ok || row != 1 || col != 7 {
		t.Errorf("ParseLabel(B7) = (%d, %d, %v), want (1, 7, true)", row, col, ok)
	}

	if _, _, ok := ParseLabel("B07"); ok {
		t.Error("Expected leading zero to be rejected")
	}
	if _, _, ok := ParseLabel("B-1"); ok {
		t.Error("Expected negative column to be rejected")
	}

	if got := FormatLabel(1, 7); got != "B7" {
		t.Errorf("FormatLabel(1, 7) = %s, want B7", got)
	}
}

// Grid − available = occupied, union is the grid, intersection empty.
func TestReconcile_Partition(t *testing.T) {
	layout := DefaultLayout()
	available := []string{"A1", "A2", "B5"}

	av := Reconcile(layout, available)

	if len(av.Available) != 3 {
		t.Fatalf("Expected 3 available, got %d", len(av.Available))
	}
	if len(av.Occupied) != 47 {
		t.Fatalf("Expected 47 occupied, got %d", len(av.Occupied))
	}

	seen := make(map[string]int)
	for _, l := range av.Available {
		seen[l]++
	}
	for _, l := range av.Occupied {
		seen[l]++
	}

	for _, l := range layout.Grid() {
		if seen[l] != 1 {
			t.Errorf("Seat %s appears %d times across available+occupied, want exactly 1", l, seen[l])
		}
	}
	if len(seen) != layout.Size() {
		t.Errorf("Union covers %d seats, want %d", len(seen), layout.Size())
	}
}

func TestReconcile_EmptyAvailable(t *testing.T) {
	layout := DefaultLayout()

	// nil and empty both normalize to "nothing available"
	for _, available := range [][]string{nil, {}} {
		av := Reconcile(layout, available)
		if len(av.Available) != 0 {
			t.Errorf("Expected no available seats, got %d", len(av.Available))
		}
		if len(av.Occupied) != 50 {
			t.Errorf("Expected 50 occupied seats, got %d", len(av.Occupied))
		}
	}
}

func TestReconcile_IgnoresForeignLabels(t *testing.T) {
	layout := DefaultLayout()
	av := Reconcile(layout, []string{"A1", "Z9", "A99", "garbage"})

	if len(av.Available) != 1 || av.Available[0] != "A1" {
		t.Errorf("Expected available = [A1], got %v", av.Available)
	}
}

func TestReconcile_RowMajorOrder(t *testing.T) {
	layout := DefaultLayout()
	av := Reconcile(layout, []string{"B5", "A2", "A1"})

	want := []string{"A1", "A2", "B5"}
	for i, l := range av.Available {
		if l != want[i] {
			t.Errorf("Available[%d] = %s, want %s", i, l, want[i])
		}
	}

	if av.Occupied[0] != "A3" {
		t.Errorf("Expected first occupied A3, got %s", av.Occupied[0])
	}
}

func TestReconcileOccupied(t *testing.T) {
	layout := Layout{Rows: 2, SeatsPerRow: 3}
	av := ReconcileOccupied(layout, []string{"A2", "B1"})

	wantAvailable := []string{"A1", "A3", "B2", "B3"}
	if len(av.Available) != len(wantAvailable) {
		t.Fatalf("Expected %d available, got %d", len(wantAvailable), len(av.Available))
	}
	for i, l := range av.Available {
		if l != wantAvailable[i] {
			t.Errorf("Available[%d] = %s, want %s", i, l, wantAvailable[i])
		}
	}
}

func TestSortLabels(t *testing.T) {
	labels := []string{"B10", "B2", "A10", "A9"}
	SortLabels(labels)

	want := []string{"A9", "A10", "B2", "B10"}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("labels[%d] = %s, want %s", i, labels[i], want[i])
		}
	}
}
