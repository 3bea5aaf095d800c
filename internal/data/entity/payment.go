package entity

import (
	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

type PaymentMethod string

const (
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodEwallet  PaymentMethod = "ewallet"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodCash     PaymentMethod = "cash"
)

type Payment struct {
	Base
	TicketID uuid.UUID     `db:"ticket_id"`
	UserID   uuid.UUID     `db:"user_id"`
	Method   PaymentMethod `db:"method"`
	Amount   int64         `db:"amount"`
	Status   PaymentStatus `db:"status"`
}
