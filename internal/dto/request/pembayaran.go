package request

type CreatePaymentRequest struct {
	TicketID string `json:"ticket_id" validate:"required,uuid4"`
	Method   string `json:"method" validate:"required,oneof=transfer ewallet card cash"`
	Amount   int64  `json:"amount" validate:"required,min=1000"`
}

type UpdatePaymentRequest struct {
	Status string `json:"status" validate:"required,oneof=pending paid failed"`
}

type CheckoutRequest struct {
	TicketIDs []string `json:"ticket_ids" validate:"required,min=1,max=50,dive,uuid4"`
}
