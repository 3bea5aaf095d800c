package entity

import (
	"github.com/google/uuid"
)

type TicketStatus string

const (
	TicketStatusPending        TicketStatus = "pending"
	TicketStatusWaitingPayment TicketStatus = "waiting_payment"
	TicketStatusConfirmed      TicketStatus = "confirmed"
	TicketStatusUsed           TicketStatus = "used"
	TicketStatusCancelled      TicketStatus = "cancelled"
	TicketStatusExpired        TicketStatus = "expired"
)

// Blocking reports whether a ticket in this status still occupies its
// seats. Cancelled and expired tickets release seats back to the grid.
func (s TicketStatus) Blocking() bool {
	return s != TicketStatusCancelled && s != TicketStatusExpired
}

type Ticket struct {
	Base
	OrderID        string       `db:"order_id"`
	UserID         uuid.UUID    `db:"user_id"`
	ScheduleID     uuid.UUID    `db:"schedule_id"`
	TotalSeats     int          `db:"total_seats"`
	TotalPrice     int64        `db:"total_price"`
	Status         TicketStatus `db:"status"`
	ValidationCode string       `db:"validation_code"`
}
