package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const (
	TypeTicketExpire = "ticket:expire"

	// QueueBookings holds all booking-lifecycle tasks.
	QueueBookings = "bookings"
)

type TicketExpirePayload struct {
	TicketID string `json:"ticket_id"`
}

// Scheduler enqueues delayed booking-lifecycle tasks.
type Scheduler struct {
	client *asynq.Client
	window time.Duration
	log    *zap.Logger
}

func NewScheduler(client *asynq.Client, paymentWindow time.Duration, log *zap.Logger) *Scheduler {
	return &Scheduler{
		client: client,
		window: paymentWindow,
		log:    log.With(zap.String("component", "scheduler")),
	}
}

// ScheduleTicketExpiry arms the payment-window timer for a new ticket.
// The handler is a no-op for tickets already confirmed by then.
func (s *Scheduler) ScheduleTicketExpiry(ctx context.Context, ticketID uuid.UUID) error {
	payload, err := json.Marshal(TicketExpirePayload{TicketID: ticketID.String()})
	if err != nil {
		return fmt.Errorf("marshal expire payload: %w", err)
	}

	task := asynq.NewTask(TypeTicketExpire, payload)
	info, err := s.client.EnqueueContext(ctx, task,
		asynq.ProcessIn(s.window),
		asynq.Queue(QueueBookings),
		asynq.MaxRetry(3),
	)
	if err != nil {
		return fmt.Errorf("enqueue ticket expiry: %w", err)
	}

	s.log.Debug("Ticket expiry scheduled",
		zap.String("ticket_id", ticketID.String()),
		zap.String("task_id", info.ID),
		zap.Duration("process_in", s.window),
	)

	return nil
}
