package entity

// Studio is a screening room. SeatRows and SeatsPerRow define the seat
// grid for every schedule shown in this studio; layouts are per-studio,
// not a global constant.
type Studio struct {
	Base
	Name        string `db:"name"`
	SeatRows    int    `db:"seat_rows"`
	SeatsPerRow int    `db:"seats_per_row"`
}
