package usecase

import (
	"context"
	"fmt"
	"time"

	"tiket-bioskop/internal/data/entity"
	"tiket-bioskop/internal/data/repository"
	"tiket-bioskop/internal/hold"

	"github.com/google/uuid"
)

// Fakes embed the repository interface so only the methods a test
// exercises need an override; anything else panics loudly.

type fakeScheduleRepo struct {
	repository.ScheduleRepository
	schedules map[uuid.UUID]*entity.Schedule
}

func (f *fakeScheduleRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Schedule, error) {
	return f.schedules[id], nil
}

type fakeStudioRepo struct {
	repository.StudioRepository
	studios map[uuid.UUID]*entity.Studio
}

func (f *fakeStudioRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Studio, error) {
	return f.studios[id], nil
}

type fakeFilmRepo struct {
	repository.FilmRepository
	films map[uuid.UUID]*entity.Film
}

func (f *fakeFilmRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Film, error) {
	return f.films[id], nil
}

type fakeTicketRepo struct {
	repository.TicketRepository
	tickets     map[uuid.UUID]*entity.Ticket
	byCode      map[string]*entity.Ticket
	created     []*entity.Ticket
	seatRepo    *fakeTicketSeatRepo
	failBook    error
	transitions []string
}

// CreateWithSeats checks the written seat rows atomically, the way the
// real transaction does; the availability read may lag behind via
// gridView on the seat fake.
func (f *fakeTicketRepo) CreateWithSeats(_ context.Context, ticket *entity.Ticket, seats []*entity.TicketSeat) error {
	if f.failBook != nil {
		return f.failBook
	}
	for _, seat := range seats {
		for _, taken := range f.seatRepo.occupied[seat.ScheduleID] {
			if taken == seat.SeatLabel {
				return fmt.Errorf("seats %s: %w", seat.SeatLabel, repository.ErrSeatTaken)
			}
		}
	}
	if f.tickets == nil {
		f.tickets = make(map[uuid.UUID]*entity.Ticket)
	}
	f.tickets[ticket.ID] = ticket
	f.created = append(f.created, ticket)
	for _, seat := range seats {
		f.seatRepo.byTicket[seat.TicketID] = append(f.seatRepo.byTicket[seat.TicketID], seat.SeatLabel)
		f.seatRepo.occupied[seat.ScheduleID] = append(f.seatRepo.occupied[seat.ScheduleID], seat.SeatLabel)
	}
	return nil
}

func (f *fakeTicketRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Ticket, error) {
	return f.tickets[id], nil
}

func (f *fakeTicketRepo) FindByValidationCode(_ context.Context, code string) (*entity.Ticket, error) {
	return f.byCode[code], nil
}

func (f *fakeTicketRepo) UpdateStatusIf(_ context.Context, id uuid.UUID, from, to entity.TicketStatus) (bool, error) {
	f.transitions = append(f.transitions, string(from)+"->"+string(to))
	ticket, ok := f.tickets[id]
	if !ok || ticket.Status != from {
		return false, nil
	}
	ticket.Status = to
	return true, nil
}

func (f *fakeTicketRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.TicketStatus) error {
	f.tickets[id].Status = status
	return nil
}

type fakeTicketSeatRepo struct {
	repository.TicketSeatRepository
	occupied map[uuid.UUID][]string
	byTicket map[uuid.UUID][]string
	// gridView, when set, is what the availability read reports instead
	// of occupied, simulating a read taken before a concurrent insert.
	gridView map[uuid.UUID][]string
}

func (f *fakeTicketSeatRepo) FindOccupiedLabelsBySchedule(_ context.Context, scheduleID uuid.UUID) ([]string, error) {
	if f.gridView != nil {
		return f.gridView[scheduleID], nil
	}
	return f.occupied[scheduleID], nil
}

func (f *fakeTicketSeatRepo) FindLabelsByTicketID(_ context.Context, ticketID uuid.UUID) ([]string, error) {
	return f.byTicket[ticketID], nil
}

func (f *fakeTicketSeatRepo) DeleteByTicketID(_ context.Context, ticketID uuid.UUID) error {
	freed := f.byTicket[ticketID]
	delete(f.byTicket, ticketID)
	for scheduleID, labels := range f.occupied {
		var kept []string
		for _, label := range labels {
			blocked := false
			for _, gone := range freed {
				if label == gone {
					blocked = true
					break
				}
			}
			if !blocked {
				kept = append(kept, label)
			}
		}
		f.occupied[scheduleID] = kept
	}
	return nil
}

type fakePaymentRepo struct {
	repository.PaymentRepository
	byTicket map[uuid.UUID]*entity.Payment
	byID     map[uuid.UUID]*entity.Payment
	created  []*entity.Payment
}

func (f *fakePaymentRepo) FindByTicketID(_ context.Context, ticketID uuid.UUID) (*entity.Payment, error) {
	return f.byTicket[ticketID], nil
}

func (f *fakePaymentRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Payment, error) {
	return f.byID[id], nil
}

func (f *fakePaymentRepo) Create(_ context.Context, payment *entity.Payment) error {
	if f.byTicket == nil {
		f.byTicket = make(map[uuid.UUID]*entity.Payment)
	}
	if f.byID == nil {
		f.byID = make(map[uuid.UUID]*entity.Payment)
	}
	f.byTicket[payment.TicketID] = payment
	f.byID[payment.ID] = payment
	f.created = append(f.created, payment)
	return nil
}

func (f *fakePaymentRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.PaymentStatus) error {
	if payment, ok := f.byID[id]; ok {
		payment.Status = status
	}
	return nil
}

// fakeHoldStore mimics the redis hold set for one schedule at a time.
type fakeHoldStore struct {
	held map[uuid.UUID][]string
	max  int
}

func (f *fakeHoldStore) Toggle(_ context.Context, _, userID uuid.UUID, label string) (bool, error) {
	labels := f.held[userID]
	for i, l := range labels {
		if l == label {
			f.held[userID] = append(labels[:i], labels[i+1:]...)
			return false, nil
		}
	}
	for other, ls := range f.held {
		if other == userID {
			continue
		}
		for _, l := range ls {
			if l == label {
				return false, hold.ErrSeatHeld
			}
		}
	}
	if f.max > 0 && len(labels) >= f.max {
		return false, hold.ErrHoldFull
	}
	if f.held == nil {
		f.held = make(map[uuid.UUID][]string)
	}
	f.held[userID] = append(labels, label)
	return true, nil
}

func (f *fakeHoldStore) HeldSeats(_ context.Context, _, userID uuid.UUID) ([]string, error) {
	return f.held[userID], nil
}

func (f *fakeHoldStore) Release(_ context.Context, _, userID uuid.UUID) error {
	delete(f.held, userID)
	return nil
}

type fakeExpiryScheduler struct {
	scheduled []uuid.UUID
}

func (f *fakeExpiryScheduler) ScheduleTicketExpiry(_ context.Context, ticketID uuid.UUID) error {
	f.scheduled = append(f.scheduled, ticketID)
	return nil
}

// newBookingFixture wires a repository around one film, one 5x10
// studio, and one schedule showing tomorrow at the given price.
func newBookingFixture(price int64) (*repository.Repository, uuid.UUID, *fakeTicketRepo, *fakeTicketSeatRepo) {
	filmID := uuid.New()
	studioID := uuid.New()
	scheduleID := uuid.New()

	seats := &fakeTicketSeatRepo{
		occupied: map[uuid.UUID][]string{},
		byTicket: map[uuid.UUID][]string{},
	}
	tickets := &fakeTicketRepo{
		tickets:  map[uuid.UUID]*entity.Ticket{},
		seatRepo: seats,
	}

	repo := &repository.Repository{
		Film: &fakeFilmRepo{films: map[uuid.UUID]*entity.Film{
			filmID: {Base: entity.Base{ID: filmID}, Title: "Laskar Pelangi", DurationInMinutes: 124},
		}},
		Studio: &fakeStudioRepo{studios: map[uuid.UUID]*entity.Studio{
			studioID: {Base: entity.Base{ID: studioID}, Name: "Studio 1", SeatRows: 5, SeatsPerRow: 10},
		}},
		Schedule: &fakeScheduleRepo{schedules: map[uuid.UUID]*entity.Schedule{
			scheduleID: {
				Base:     entity.Base{ID: scheduleID},
				FilmID:   filmID,
				StudioID: studioID,
				ShowDate: time.Now().Add(24 * time.Hour),
				ShowTime: time.Date(0, 1, 1, 19, 30, 0, 0, time.UTC),
				Price:    price,
			},
		}},
		Ticket:     tickets,
		TicketSeat: seats,
		Payment:    &fakePaymentRepo{},
	}

	return repo, scheduleID, tickets, seats
}
