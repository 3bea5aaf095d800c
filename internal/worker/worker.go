package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"tiket-bioskop/internal/data/entity"
	"tiket-bioskop/internal/data/repository"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Worker processes booking-lifecycle tasks.
type Worker struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewWorker(repo *repository.Repository, log *zap.Logger) *Worker {
	return &Worker{
		repo: repo,
		log:  log.With(zap.String("component", "worker")),
	}
}

// HandleTicketExpire releases seats of tickets that sat out the payment
// window. The conditional transition makes the task safe to retry and
// safe to race against a concurrent payment.
func (w *Worker) HandleTicketExpire(ctx context.Context, t *asynq.Task) error {
	var payload TicketExpirePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal expire payload: %w", err)
	}

	ticketID, err := uuid.Parse(payload.TicketID)
	if err != nil {
		return fmt.Errorf("invalid ticket ID %s: %w", payload.TicketID, err)
	}

	for _, from := range []entity.TicketStatus{
		entity.TicketStatusPending,
		entity.TicketStatusWaitingPayment,
	} {
		changed, err := w.repo.Ticket.UpdateStatusIf(ctx, ticketID, from, entity.TicketStatusExpired)
		if err != nil {
			return fmt.Errorf("expire ticket %s: %w", ticketID.String(), err)
		}
		if changed {
			if err := w.repo.TicketSeat.DeleteByTicketID(ctx, ticketID); err != nil {
				// Availability already excludes expired tickets
				w.log.Warn("Failed to delete seats of expired ticket",
					zap.Error(err), zap.String("ticket_id", ticketID.String()))
			}
			w.log.Info("Ticket expired, seats released",
				zap.String("ticket_id", ticketID.String()),
				zap.String("was", string(from)),
			)
			return nil
		}
	}

	// Already confirmed, cancelled, or expired. Nothing to do.
	return nil
}

// Run starts the asynq server and blocks until shutdown.
func Run(redisOpt asynq.RedisClientOpt, w *Worker, log *zap.Logger) error {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			QueueBookings: 10,
			"default":     1,
		},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeTicketExpire, w.HandleTicketExpire)

	log.Info("Starting booking worker")
	if err := srv.Run(mux); err != nil {
		return fmt.Errorf("run asynq server: %w", err)
	}

	return nil
}
