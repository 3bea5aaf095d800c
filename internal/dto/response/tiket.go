package response

import (
	"time"

	"tiket-bioskop/internal/data/entity"
)

type TicketResponse struct {
	ID         string              `json:"id"`
	OrderID    string              `json:"order_id"`
	UserID     string              `json:"user_id"`
	ScheduleID string              `json:"schedule_id"`
	FilmTitle  string              `json:"film_title,omitempty"`
	StudioName string              `json:"studio_name,omitempty"`
	ShowDate   string              `json:"show_date,omitempty"`
	ShowTime   string              `json:"show_time,omitempty"`
	Seats      []string            `json:"seats"`
	TotalSeats int                 `json:"total_seats"`
	TotalPrice int64               `json:"total_price"`
	Status     entity.TicketStatus `json:"status"`
	Payment    *PaymentResponse    `json:"payment,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
}

// TicketSummary is the flat per-ticket record the checkout page groups.
type TicketSummary struct {
	TicketID   string   `json:"ticket_id"`
	ScheduleID string   `json:"schedule_id"`
	FilmTitle  string   `json:"film_title"`
	StudioName string   `json:"studio_name"`
	ShowDate   string   `json:"show_date"`
	ShowTime   string   `json:"show_time"`
	Seats      []string `json:"seats"`
	TotalPrice int64    `json:"total_price"`
}

// BatchTicketItem is the per-item outcome of a batch booking request.
type BatchTicketItem struct {
	ScheduleID string          `json:"schedule_id"`
	Ticket     *TicketResponse `json:"ticket,omitempty"`
	Error      string          `json:"error,omitempty"`
}

type BatchTicketResponse struct {
	Tickets []BatchTicketItem `json:"tickets"`
	Created int               `json:"created"`
	Failed  int               `json:"failed"`
}

type ValidateTicketResponse struct {
	Valid  bool            `json:"valid"`
	Ticket *TicketResponse `json:"ticket,omitempty"`
	Reason string          `json:"reason,omitempty"`
}
