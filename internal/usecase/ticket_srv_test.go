package usecase

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"tiket-bioskop/internal/data/entity"
	"tiket-bioskop/internal/dto/request"
	"tiket-bioskop/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func testConfig(maxSeats int) *utils.Config {
	return &utils.Config{
		Booking: utils.BookingConfig{
			PaymentWindow:     15 * time.Minute,
			MaxSeatsPerTicket: maxSeats,
		},
	}
}

func TestCreateTicketComputesTotal(t *testing.T) {
	repo, scheduleID, tickets, _ := newBookingFixture(50000)
	scheduler := &fakeExpiryScheduler{}
	svc := NewTicketService(repo, nil, scheduler, testConfig(6), zap.NewNop())

	resp, err := svc.CreateTicket(context.Background(), uuid.New(), &request.CreateTicketRequest{
		ScheduleID: scheduleID.String(),
		Seats:      []string{"B2", "A1", "A2"},
	})
	if err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}

	if resp.TotalPrice != 150000 {
		t.Errorf("total price = %d, want 150000", resp.TotalPrice)
	}
	if resp.TotalSeats != 3 {
		t.Errorf("total seats = %d, want 3", resp.TotalSeats)
	}
	if resp.Status != entity.TicketStatusWaitingPayment {
		t.Errorf("status = %s, want waiting_payment", resp.Status)
	}

	// Seats come back row-major regardless of request order
	want := []string{"A1", "A2", "B2"}
	for i, label := range want {
		if resp.Seats[i] != label {
			t.Errorf("seats[%d] = %s, want %s", i, resp.Seats[i], label)
		}
	}

	if len(tickets.created) != 1 {
		t.Fatalf("created %d tickets, want 1", len(tickets.created))
	}
	if len(scheduler.scheduled) != 1 {
		t.Errorf("scheduled %d expiries, want 1", len(scheduler.scheduled))
	}
	if tickets.created[0].ValidationCode == "" {
		t.Error("validation code is empty")
	}
}

func TestCreateTicketRejectsOccupiedSeat(t *testing.T) {
	repo, scheduleID, tickets, seats := newBookingFixture(50000)
	seats.occupied[scheduleID] = []string{"C5"}
	svc := NewTicketService(repo, nil, &fakeExpiryScheduler{}, testConfig(6), zap.NewNop())

	_, err := svc.CreateTicket(context.Background(), uuid.New(), &request.CreateTicketRequest{
		ScheduleID: scheduleID.String(),
		Seats:      []string{"C5"},
	})
	if err == nil {
		t.Fatal("expected error for occupied seat")
	}
	if !strings.Contains(err.Error(), "already booked") {
		t.Errorf("error = %q, want already booked", err)
	}
	if len(tickets.created) != 0 {
		t.Errorf("created %d tickets, want 0", len(tickets.created))
	}
}

func TestCreateTicketRejectsUnknownSeat(t *testing.T) {
	repo, scheduleID, _, _ := newBookingFixture(50000)
	svc := NewTicketService(repo, nil, &fakeExpiryScheduler{}, testConfig(6), zap.NewNop())

	// F1 is outside a 5-row studio
	_, err := svc.CreateTicket(context.Background(), uuid.New(), &request.CreateTicketRequest{
		ScheduleID: scheduleID.String(),
		Seats:      []string{"F1"},
	})
	if err == nil || !strings.Contains(err.Error(), "not in the studio layout") {
		t.Errorf("error = %v, want layout rejection", err)
	}
}

func TestCreateTicketRejectsDuplicateSeat(t *testing.T) {
	repo, scheduleID, _, _ := newBookingFixture(50000)
	svc := NewTicketService(repo, nil, &fakeExpiryScheduler{}, testConfig(6), zap.NewNop())

	_, err := svc.CreateTicket(context.Background(), uuid.New(), &request.CreateTicketRequest{
		ScheduleID: scheduleID.String(),
		Seats:      []string{"A1", "A1"},
	})
	if err == nil || !strings.Contains(err.Error(), "duplicate seat") {
		t.Errorf("error = %v, want duplicate rejection", err)
	}
}

func TestCreateTicketEnforcesSeatCap(t *testing.T) {
	repo, scheduleID, _, _ := newBookingFixture(50000)
	svc := NewTicketService(repo, nil, &fakeExpiryScheduler{}, testConfig(2), zap.NewNop())

	_, err := svc.CreateTicket(context.Background(), uuid.New(), &request.CreateTicketRequest{
		ScheduleID: scheduleID.String(),
		Seats:      []string{"A1", "A2", "A3"},
	})
	if err == nil || !strings.Contains(err.Error(), "cannot book more than 2 seats") {
		t.Errorf("error = %v, want cap rejection", err)
	}
}

func TestCreateTicketRejectsConflictBehindStaleGrid(t *testing.T) {
	repo, scheduleID, tickets, seats := newBookingFixture(50000)
	// The availability read reports A1 free while the booking insert
	// knows it is taken, the interleaving a concurrent booking produces.
	seats.occupied[scheduleID] = []string{"A1"}
	seats.gridView = map[uuid.UUID][]string{scheduleID: {}}
	svc := NewTicketService(repo, nil, &fakeExpiryScheduler{}, testConfig(6), zap.NewNop())

	_, err := svc.CreateTicket(context.Background(), uuid.New(), &request.CreateTicketRequest{
		ScheduleID: scheduleID.String(),
		Seats:      []string{"A1"},
	})
	if err == nil {
		t.Fatal("expected error when seat insert loses the race")
	}
	if !strings.Contains(err.Error(), "already booked") {
		t.Errorf("error = %q, want already booked", err)
	}
	if len(tickets.created) != 0 {
		t.Errorf("created %d tickets, want 0", len(tickets.created))
	}
	if len(seats.occupied[scheduleID]) != 1 {
		t.Errorf("occupied = %v, want only the winner's A1", seats.occupied[scheduleID])
	}
}

func TestCreateTicketAllowsConfiguredCapAboveDefault(t *testing.T) {
	repo, scheduleID, _, _ := newBookingFixture(50000)
	svc := NewTicketService(repo, nil, &fakeExpiryScheduler{}, testConfig(8), zap.NewNop())

	seats := make([]string, 0, 7)
	for i := 1; i <= 7; i++ {
		seats = append(seats, fmt.Sprintf("A%d", i))
	}

	resp, err := svc.CreateTicket(context.Background(), uuid.New(), &request.CreateTicketRequest{
		ScheduleID: scheduleID.String(),
		Seats:      seats,
	})
	if err != nil {
		t.Fatalf("CreateTicket with raised cap: %v", err)
	}
	if resp.TotalSeats != 7 {
		t.Errorf("total seats = %d, want 7", resp.TotalSeats)
	}
}

func TestCancelTicketFreesSeatRows(t *testing.T) {
	repo, scheduleID, tickets, seats := newBookingFixture(50000)
	svc := NewTicketService(repo, nil, &fakeExpiryScheduler{}, testConfig(6), zap.NewNop())

	resp, err := svc.CreateTicket(context.Background(), uuid.New(), &request.CreateTicketRequest{
		ScheduleID: scheduleID.String(),
		Seats:      []string{"A1"},
	})
	if err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}
	ticketID := uuid.MustParse(resp.ID)

	if err := svc.CancelTicket(context.Background(), ticketID); err != nil {
		t.Fatalf("CancelTicket: %v", err)
	}
	if tickets.tickets[ticketID].Status != entity.TicketStatusCancelled {
		t.Errorf("status = %s, want cancelled", tickets.tickets[ticketID].Status)
	}
	if len(seats.byTicket[ticketID]) != 0 {
		t.Errorf("seat rows survived cancellation: %v", seats.byTicket[ticketID])
	}

	// The freed seat must be bookable again
	if _, err := svc.CreateTicket(context.Background(), uuid.New(), &request.CreateTicketRequest{
		ScheduleID: scheduleID.String(),
		Seats:      []string{"A1"},
	}); err != nil {
		t.Errorf("rebooking freed seat: %v", err)
	}
}

func TestCreateTicketRejectsPastSchedule(t *testing.T) {
	repo, scheduleID, _, _ := newBookingFixture(50000)
	sched := repo.Schedule.(*fakeScheduleRepo).schedules[scheduleID]
	sched.ShowDate = time.Now().Add(-48 * time.Hour)
	svc := NewTicketService(repo, nil, &fakeExpiryScheduler{}, testConfig(6), zap.NewNop())

	_, err := svc.CreateTicket(context.Background(), uuid.New(), &request.CreateTicketRequest{
		ScheduleID: scheduleID.String(),
		Seats:      []string{"A1"},
	})
	if err == nil || !strings.Contains(err.Error(), "past schedule") {
		t.Errorf("error = %v, want past schedule rejection", err)
	}
}

func TestCreateTicketBatchReportsPerItem(t *testing.T) {
	repo, scheduleID, _, seats := newBookingFixture(50000)
	seats.occupied[scheduleID] = []string{"D4"}
	svc := NewTicketService(repo, nil, &fakeExpiryScheduler{}, testConfig(6), zap.NewNop())

	resp, err := svc.CreateTicketBatch(context.Background(), uuid.New(), &request.BatchCreateTicketRequest{
		Tickets: []request.CreateTicketRequest{
			{ScheduleID: scheduleID.String(), Seats: []string{"A1"}},
			{ScheduleID: scheduleID.String(), Seats: []string{"D4"}},
		},
	})
	if err != nil {
		t.Fatalf("CreateTicketBatch: %v", err)
	}

	if resp.Created != 1 || resp.Failed != 1 {
		t.Errorf("created/failed = %d/%d, want 1/1", resp.Created, resp.Failed)
	}
	if resp.Tickets[0].Ticket == nil {
		t.Error("first item should carry a ticket")
	}
	if resp.Tickets[1].Error == "" {
		t.Error("second item should carry an error")
	}
}

func TestValidateTicketBurnsCodeOnce(t *testing.T) {
	repo, _, tickets, _ := newBookingFixture(50000)
	ticket := &entity.Ticket{
		Base:           entity.Base{ID: uuid.New()},
		OrderID:        "TIX-20260101-100000-0001",
		UserID:         uuid.New(),
		ScheduleID:     uuid.New(),
		Status:         entity.TicketStatusConfirmed,
		ValidationCode: "4f2a1c7e-1111-2222-3333-444455556666",
	}
	tickets.tickets[ticket.ID] = ticket
	tickets.byCode = map[string]*entity.Ticket{ticket.ValidationCode: ticket}

	svc := NewTicketService(repo, nil, &fakeExpiryScheduler{}, testConfig(6), zap.NewNop())

	resp, err := svc.ValidateTicket(context.Background(), &request.ValidateTicketRequest{Code: ticket.ValidationCode})
	if err != nil {
		t.Fatalf("ValidateTicket: %v", err)
	}
	if !resp.Valid {
		t.Fatalf("first scan invalid: %s", resp.Reason)
	}
	if resp.Ticket.Status != entity.TicketStatusUsed {
		t.Errorf("status = %s, want used", resp.Ticket.Status)
	}

	// Second scan of the same code must lose
	resp, err = svc.ValidateTicket(context.Background(), &request.ValidateTicketRequest{Code: ticket.ValidationCode})
	if err != nil {
		t.Fatalf("ValidateTicket second scan: %v", err)
	}
	if resp.Valid {
		t.Error("second scan should be rejected")
	}
}

func TestValidateTicketUnknownCode(t *testing.T) {
	repo, _, tickets, _ := newBookingFixture(50000)
	tickets.byCode = map[string]*entity.Ticket{}
	svc := NewTicketService(repo, nil, &fakeExpiryScheduler{}, testConfig(6), zap.NewNop())

	resp, err := svc.ValidateTicket(context.Background(), &request.ValidateTicketRequest{Code: "not-a-real-code"})
	if err != nil {
		t.Fatalf("ValidateTicket: %v", err)
	}
	if resp.Valid {
		t.Error("unknown code should be invalid")
	}
	if resp.Reason != "code not recognized" {
		t.Errorf("reason = %q", resp.Reason)
	}
}

func TestValidateTicketRejectsUnpaid(t *testing.T) {
	repo, _, tickets, _ := newBookingFixture(50000)
	ticket := &entity.Ticket{
		Base:           entity.Base{ID: uuid.New()},
		Status:         entity.TicketStatusWaitingPayment,
		ValidationCode: "9b8c7d6e-aaaa-bbbb-cccc-ddddeeeeffff",
	}
	tickets.tickets[ticket.ID] = ticket
	tickets.byCode = map[string]*entity.Ticket{ticket.ValidationCode: ticket}

	svc := NewTicketService(repo, nil, &fakeExpiryScheduler{}, testConfig(6), zap.NewNop())

	resp, err := svc.ValidateTicket(context.Background(), &request.ValidateTicketRequest{Code: ticket.ValidationCode})
	if err != nil {
		t.Fatalf("ValidateTicket: %v", err)
	}
	if resp.Valid {
		t.Error("waiting_payment ticket should not validate")
	}
	if !strings.Contains(resp.Reason, "waiting_payment") {
		t.Errorf("reason = %q, want status mention", resp.Reason)
	}
}

func TestGetTicketEnforcesOwnership(t *testing.T) {
	repo, scheduleID, tickets, _ := newBookingFixture(50000)
	owner := uuid.New()
	ticket := &entity.Ticket{
		Base:       entity.Base{ID: uuid.New()},
		UserID:     owner,
		ScheduleID: scheduleID,
		Status:     entity.TicketStatusConfirmed,
	}
	tickets.tickets[ticket.ID] = ticket

	svc := NewTicketService(repo, nil, &fakeExpiryScheduler{}, testConfig(6), zap.NewNop())

	if _, err := svc.GetTicket(context.Background(), ticket.ID, uuid.New(), false); err == nil {
		t.Error("stranger should not read the ticket")
	}
	if _, err := svc.GetTicket(context.Background(), ticket.ID, owner, false); err != nil {
		t.Errorf("owner read failed: %v", err)
	}
	if _, err := svc.GetTicket(context.Background(), ticket.ID, uuid.New(), true); err != nil {
		t.Errorf("admin read failed: %v", err)
	}
}
