package entity

import "github.com/google/uuid"

// TicketSeat pins one seat label (e.g. "A1") to a ticket. ScheduleID is
// denormalized so the occupied-seat query for a schedule needs no join
// through tickets.
type TicketSeat struct {
	BaseSimple
	TicketID   uuid.UUID `db:"ticket_id"`
	ScheduleID uuid.UUID `db:"schedule_id"`
	SeatLabel  string    `db:"seat_label"`
}
