package response

import (
	"time"

	"tiket-bioskop/internal/data/entity"
)

type PaymentResponse struct {
	ID        string               `json:"id"`
	TicketID  string               `json:"ticket_id"`
	UserID    string               `json:"user_id"`
	Method    entity.PaymentMethod `json:"method"`
	Amount    int64                `json:"amount"`
	Status    entity.PaymentStatus `json:"status"`
	CreatedAt time.Time            `json:"created_at"`
}

// CheckoutGroup is one schedule's bucket in the checkout view.
type CheckoutGroup struct {
	ScheduleID string          `json:"schedule_id"`
	FilmTitle  string          `json:"film_title,omitempty"`
	ShowDate   string          `json:"show_date,omitempty"`
	ShowTime   string          `json:"show_time,omitempty"`
	Tickets    []TicketSummary `json:"tickets"`
	Subtotal   int64           `json:"subtotal"`
}

// CheckoutResponse aggregates tickets by schedule before payment.
// Tickets that could not be resolved are listed, not silently dropped.
type CheckoutResponse struct {
	Groups          []CheckoutGroup `json:"groups"`
	GrandTotal      int64           `json:"grand_total"`
	FailedTicketIDs []string        `json:"failed_ticket_ids,omitempty"`
}

func PaymentToResponse(payment *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:        payment.ID.String(),
		TicketID:  payment.TicketID.String(),
		UserID:    payment.UserID.String(),
		Method:    payment.Method,
		Amount:    payment.Amount,
		Status:    payment.Status,
		CreatedAt: payment.CreatedAt,
	}
}
