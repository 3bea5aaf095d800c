package worker

import (
	"context"
	"encoding/json"
	"testing"

	"tiket-bioskop/internal/data/entity"
	"tiket-bioskop/internal/data/repository"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

type fakeTicketRepo struct {
	repository.TicketRepository
	tickets map[uuid.UUID]*entity.Ticket
}

func (f *fakeTicketRepo) UpdateStatusIf(_ context.Context, id uuid.UUID, from, to entity.TicketStatus) (bool, error) {
	ticket, ok := f.tickets[id]
	if !ok || ticket.Status != from {
		return false, nil
	}
	ticket.Status = to
	return true, nil
}

type fakeSeatRepo struct {
	repository.TicketSeatRepository
	deleted []uuid.UUID
}

func (f *fakeSeatRepo) DeleteByTicketID(_ context.Context, ticketID uuid.UUID) error {
	f.deleted = append(f.deleted, ticketID)
	return nil
}

func expireTask(t *testing.T, ticketID uuid.UUID) *asynq.Task {
	t.Helper()
	payload, err := json.Marshal(TicketExpirePayload{TicketID: ticketID.String()})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return asynq.NewTask(TypeTicketExpire, payload)
}

func TestHandleTicketExpireReleasesUnpaid(t *testing.T) {
	for _, status := range []entity.TicketStatus{
		entity.TicketStatusPending,
		entity.TicketStatusWaitingPayment,
	} {
		t.Run(string(status), func(t *testing.T) {
			ticket := &entity.Ticket{Base: entity.Base{ID: uuid.New()}, Status: status}
			seats := &fakeSeatRepo{}
			repo := &repository.Repository{
				Ticket:     &fakeTicketRepo{tickets: map[uuid.UUID]*entity.Ticket{ticket.ID: ticket}},
				TicketSeat: seats,
			}
			w := NewWorker(repo, zap.NewNop())

			if err := w.HandleTicketExpire(context.Background(), expireTask(t, ticket.ID)); err != nil {
				t.Fatalf("HandleTicketExpire: %v", err)
			}
			if ticket.Status != entity.TicketStatusExpired {
				t.Errorf("status = %s, want expired", ticket.Status)
			}
			if len(seats.deleted) != 1 || seats.deleted[0] != ticket.ID {
				t.Errorf("seat rows freed = %v, want [%s]", seats.deleted, ticket.ID)
			}
		})
	}
}

func TestHandleTicketExpireLeavesConfirmedAlone(t *testing.T) {
	ticket := &entity.Ticket{Base: entity.Base{ID: uuid.New()}, Status: entity.TicketStatusConfirmed}
	seats := &fakeSeatRepo{}
	repo := &repository.Repository{
		Ticket:     &fakeTicketRepo{tickets: map[uuid.UUID]*entity.Ticket{ticket.ID: ticket}},
		TicketSeat: seats,
	}
	w := NewWorker(repo, zap.NewNop())

	if err := w.HandleTicketExpire(context.Background(), expireTask(t, ticket.ID)); err != nil {
		t.Fatalf("HandleTicketExpire: %v", err)
	}
	if ticket.Status != entity.TicketStatusConfirmed {
		t.Errorf("status = %s, paid ticket must keep its seats", ticket.Status)
	}
	if len(seats.deleted) != 0 {
		t.Errorf("seat rows freed = %v, want none", seats.deleted)
	}
}

func TestHandleTicketExpireRejectsBadPayload(t *testing.T) {
	repo := &repository.Repository{}
	w := NewWorker(repo, zap.NewNop())

	task := asynq.NewTask(TypeTicketExpire, []byte("not json"))
	if err := w.HandleTicketExpire(context.Background(), task); err == nil {
		t.Error("expected error for malformed payload")
	}
}
