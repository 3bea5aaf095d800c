package seatmap

// MaxSelection is the hard cap on seats per booking.
const MaxSelection = 6

// ToggleResult is the outcome of one seat click.
type ToggleResult int

const (
	Added ToggleResult = iota
	Removed
	RejectedOccupied
	RejectedFull
	RejectedUnknown
)

func (r ToggleResult) String() string {
	switch r {
	case Added:
		return "added"
	case Removed:
		return "removed"
	case RejectedOccupied:
		return "rejected_occupied"
	case RejectedFull:
		return "rejected_full"
	case RejectedUnknown:
		return "rejected_unknown"
	default:
		return "unknown"
	}
}

// Selection is the seat-picking state machine. Rules:
//   - toggling a free, unselected seat adds it while count < max
//   - the max+1'th add is rejected and nothing changes
//   - toggling a selected seat removes exactly that seat
//   - toggling an occupied seat is rejected outright
//
// A rejection never mutates the selection.
type Selection struct {
	layout   Layout
	occupied map[string]bool
	selected []string
	max      int
}

// NewSelection builds a selection over an availability view. max <= 0
// falls back to MaxSelection.
func NewSelection(av Availability, max int) *Selection {
	if max <= 0 {
		max = MaxSelection
	}

	occupied := make(map[string]bool, len(av.Occupied))
	for _, label := range av.Occupied {
		occupied[label] = true
	}

	return &Selection{
		layout:   av.Layout,
		occupied: occupied,
		max:      max,
	}
}

func (s *Selection) Toggle(label string) ToggleResult {
	if !s.layout.Contains(label) {
		return RejectedUnknown
	}

	if i := s.index(label); i >= 0 {
		s.selected = append(s.selected[:i], s.selected[i+1:]...)
		return Removed
	}

	if s.occupied[label] {
		return RejectedOccupied
	}

	if len(s.selected) >= s.max {
		return RejectedFull
	}

	s.selected = append(s.selected, label)
	return Added
}

// Seats returns the selected labels in row-major order.
func (s *Selection) Seats() []string {
	out := make([]string, len(s.selected))
	copy(out, s.selected)
	SortLabels(out)
	return out
}

func (s *Selection) Count() int {
	return len(s.selected)
}

func (s *Selection) index(label string) int {
	for i, l := range s.selected {
		if l == label {
			return i
		}
	}
	return -1
}
