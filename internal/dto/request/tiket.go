package request

// The per-booking seat cap is enforced by the ticket service from
// config, not here, so raising it never needs a DTO change.
type CreateTicketRequest struct {
	ScheduleID string   `json:"schedule_id" validate:"required,uuid4"`
	Seats      []string `json:"seats" validate:"required,min=1,dive,min=2,max=4"`
}

type BatchCreateTicketRequest struct {
	Tickets []CreateTicketRequest `json:"tickets" validate:"required,min=1,max=10,dive"`
}

type ValidateTicketRequest struct {
	Code string `json:"code" validate:"required,min=10"`
}
