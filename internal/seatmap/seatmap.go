// Package seatmap holds the pure seat-grid logic: enumerating a studio
// layout, diffing it against booked seats, and the selection rules
// enforced at booking time. Nothing here touches the database.
package seatmap

import (
	"fmt"
	"sort"
	"strconv"
)

const (
	// DefaultRows / DefaultSeatsPerRow seed new studios. Layouts are
	// per-studio; these are only a starting point.
	DefaultRows        = 5
	DefaultSeatsPerRow = 10

	// MaxRows is bound by single-letter row labels (A..Z).
	MaxRows = 26
)

// Layout describes the seat grid of one studio.
type Layout struct {
	Rows        int
	SeatsPerRow int
}

func DefaultLayout() Layout {
	return Layout{Rows: DefaultRows, SeatsPerRow: DefaultSeatsPerRow}
}

func (l Layout) Valid() bool {
	return l.Rows >= 1 && l.Rows <= MaxRows && l.SeatsPerRow >= 1
}

// Size is the total number of seats in the grid.
func (l Layout) Size() int {
	return l.Rows * l.SeatsPerRow
}

// Grid enumerates every seat label in row-major order: A1..A10, B1..B10.
func (l Layout) Grid() []string {
	if !l.Valid() {
		return nil
	}

	grid := make([]string, 0, l.Size())
	for r := 0; r < l.Rows; r++ {
		row := string(rune('A' + r))
		for c := 1; c <= l.SeatsPerRow; c++ {
			grid = append(grid, row+strconv.Itoa(c))
		}
	}
	return grid
}

// Contains reports whether label names a seat inside this layout.
func (l Layout) Contains(label string) bool {
	row, col, ok := ParseLabel(label)
	if !ok {
		return false
	}
	return row < l.Rows && col >= 1 && col <= l.SeatsPerRow
}

// ParseLabel splits a seat label like "B7" into a zero-based row index
// and a one-based column. Lowercase rows and leading zeros are rejected.
func ParseLabel(label string) (row, col int, ok bool) {
	if len(label) < 2 {
		return 0, 0, false
	}

	r := label[0]
	if r < 'A' || r > 'Z' {
		return 0, 0, false
	}

	digits := label[1:]
	if digits[0] == '0' {
		return 0, 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 {
		return 0, 0, false
	}

	return int(r - 'A'), n, true
}

// FormatLabel is the inverse of ParseLabel.
func FormatLabel(row, col int) string {
	return fmt.Sprintf("%c%d", rune('A'+row), col)
}

// Availability is the reconciled view of one schedule's grid.
type Availability struct {
	Layout    Layout
	Available []string
	Occupied  []string
}

// Reconcile computes occupied = grid − available. The available list is
// the single source of truth from storage; a nil or empty list means a
// fully occupied grid. Labels outside the layout are dropped. Both
// result slices come back in row-major order.
func Reconcile(layout Layout, available []string) Availability {
	grid := layout.Grid()

	free := make(map[string]bool, len(available))
	for _, label := range available {
		if layout.Contains(label) {
			free[label] = true
		}
	}

	av := Availability{
		Layout:    layout,
		Available: make([]string, 0, len(free)),
		Occupied:  make([]string, 0, len(grid)-len(free)),
	}
	for _, label := range grid {
		if free[label] {
			av.Available = append(av.Available, label)
		} else {
			av.Occupied = append(av.Occupied, label)
		}
	}
	return av
}

// ReconcileOccupied is Reconcile with the occupied set as input, which
// is what the ticket_seats table naturally yields.
func ReconcileOccupied(layout Layout, occupied []string) Availability {
	grid := layout.Grid()

	taken := make(map[string]bool, len(occupied))
	for _, label := range occupied {
		if layout.Contains(label) {
			taken[label] = true
		}
	}

	available := make([]string, 0, len(grid)-len(taken))
	for _, label := range grid {
		if !taken[label] {
			available = append(available, label)
		}
	}
	return Reconcile(layout, available)
}

// IsAvailable reports whether label is free in this availability view.
func (a Availability) IsAvailable(label string) bool {
	for _, l := range a.Available {
		if l == label {
			return true
		}
	}
	return false
}

// SortLabels orders seat labels row-major in place (B2 before B10,
// lexicographic sort would get this wrong).
func SortLabels(labels []string) {
	sort.Slice(labels, func(i, j int) bool {
		ri, ci, oki := ParseLabel(labels[i])
		rj, cj, okj := ParseLabel(labels[j])
		if !oki || !okj {
			return labels[i] < labels[j]
		}
		if ri != rj {
			return ri < rj
		}
		return ci < cj
	})
}
