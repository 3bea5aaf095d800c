package seatmap

import (
	"testing"
)

func newTestSelection(available []string) *Selection {
	av := Reconcile(DefaultLayout(), available)
	return NewSelection(av, MaxSelection)
}

func TestSelection_AddAndRemove(t *testing.T) {
	sel := newTestSelection([]string{"A1", "A2", "B5"})

	if got := sel.Toggle("A1"); got != Added {
		t.Fatalf("Toggle(A1) = %v, want Added", got)
	}
	if got := sel.Toggle("A2"); got != Added {
		t.Fatalf("Toggle(A2) = %v, want Added", got)
	}
	if got := sel.Toggle("B5"); got != Added {
		t.Fatalf("Toggle(B5) = %v, want Added", got)
	}

	seats := sel.Seats()
	want := []string{"A1", "A2", "B5"}
	if len(seats) != len(want) {
		t.Fatalf("Expected %d seats, got %d", len(want), len(seats))
	}
	for i := range want {
		if seats[i] != want[i] {
			t.Errorf("Seats[%d] = %s, want %s", i, seats[i], want[i])
		}
	}

	// Removing takes out exactly that seat and no other
	if got := sel.Toggle("A2"); got != Removed {
		t.Fatalf("Toggle(A2) again = %v, want Removed", got)
	}
	seats = sel.Seats()
	if len(seats) != 2 || seats[0] != "A1" || seats[1] != "B5" {
		t.Errorf("After removal expected [A1 B5], got %v", seats)
	}
}

func TestSelection_RejectOccupied(t *testing.T) {
	// C1 is not in the available list, so it is occupied
	sel := newTestSelection([]string{"A1", "A2", "B5"})
	sel.Toggle("A1")

	if got := sel.Toggle("C1"); got != RejectedOccupied {
		t.Fatalf("Toggle(C1) = %v, want RejectedOccupied", got)
	}

	// Rejection must not change state
	if sel.Count() != 1 {
		t.Errorf("Expected count 1 after rejection, got %d", sel.Count())
	}
	if seats := sel.Seats(); len(seats) != 1 || seats[0] != "A1" {
		t.Errorf("Expected selection [A1], got %v", seats)
	}
}

func TestSelection_CapAtSix(t *testing.T) {
	available := []string{"A1", "A2", "A3", "A4", "A5", "A6", "A7"}
	sel := newTestSelection(available)

	for _, label := range available[:6] {
		if got := sel.Toggle(label); got != Added {
			t.Fatalf("Toggle(%s) = %v, want Added", label, got)
		}
	}

	if got := sel.Toggle("A7"); got != RejectedFull {
		t.Fatalf("7th Toggle = %v, want RejectedFull", got)
	}
	if sel.Count() != 6 {
		t.Errorf("Count = %d after rejected 7th seat, want 6", sel.Count())
	}

	// At capacity, removal still works and frees a slot
	if got := sel.Toggle("A1"); got != Removed {
		t.Fatalf("Toggle(A1) at capacity = %v, want Removed", got)
	}
	if got := sel.Toggle("A7"); got != Added {
		t.Fatalf("Toggle(A7) after freeing a slot = %v, want Added", got)
	}
}

func TestSelection_RejectUnknownLabel(t *testing.T) {
	sel := newTestSelection([]string{"A1"})

	for _, label := range []string{"F1", "A11", "", "xx"} {
		if got := sel.Toggle(label); got != RejectedUnknown {
			t.Errorf("Toggle(%q) = %v, want RejectedUnknown", label, got)
		}
	}
	if sel.Count() != 0 {
		t.Errorf("Expected empty selection, got %d seats", sel.Count())
	}
}

func TestSelection_CountNeverExceedsMax(t *testing.T) {
	layout := DefaultLayout()
	av := Reconcile(layout, layout.Grid()) // everything free
	sel := NewSelection(av, MaxSelection)

	for _, label := range layout.Grid() {
		sel.Toggle(label)
		if sel.Count() > MaxSelection {
			t.Fatalf("Count %d exceeded max %d", sel.Count(), MaxSelection)
		}
	}
	if sel.Count() != MaxSelection {
		t.Errorf("Count = %d, want %d", sel.Count(), MaxSelection)
	}
}

func TestToggleResult_String(t *testing.T) {
	if Added.String() != "added" {
		t.Errorf("Added.String() = %s", Added.String())
	}
	if RejectedFull.String() != "rejected_full" {
		t.Errorf("RejectedFull.String() = %s", RejectedFull.String())
	}
}
