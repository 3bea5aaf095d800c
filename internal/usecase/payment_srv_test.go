package usecase

import (
	"context"
	"strings"
	"testing"

	"tiket-bioskop/internal/data/entity"
	"tiket-bioskop/internal/dto/request"
	"tiket-bioskop/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func TestBuildCheckoutGroupsBySchedule(t *testing.T) {
	schedA := uuid.New().String()
	schedB := uuid.New().String()

	resp := buildCheckout([]response.TicketSummary{
		{TicketID: "t1", ScheduleID: schedA, FilmTitle: "Film A", TotalPrice: 50000},
		{TicketID: "t2", ScheduleID: schedA, FilmTitle: "Film A", TotalPrice: 75000},
		{TicketID: "t3", ScheduleID: schedB, FilmTitle: "Film B", TotalPrice: 60000},
	})

	if len(resp.Groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(resp.Groups))
	}

	// First-seen order: schedule A leads
	if resp.Groups[0].ScheduleID != schedA {
		t.Errorf("first group = %s, want %s", resp.Groups[0].ScheduleID, schedA)
	}
	if resp.Groups[0].Subtotal != 125000 {
		t.Errorf("schedule A subtotal = %d, want 125000", resp.Groups[0].Subtotal)
	}
	if len(resp.Groups[0].Tickets) != 2 {
		t.Errorf("schedule A tickets = %d, want 2", len(resp.Groups[0].Tickets))
	}
	if resp.Groups[1].Subtotal != 60000 {
		t.Errorf("schedule B subtotal = %d, want 60000", resp.Groups[1].Subtotal)
	}
	if resp.GrandTotal != 185000 {
		t.Errorf("grand total = %d, want 185000", resp.GrandTotal)
	}
}

func TestBuildCheckoutSingleTicket(t *testing.T) {
	resp := buildCheckout([]response.TicketSummary{
		{TicketID: "t1", ScheduleID: "s1", TotalPrice: 40000},
	})

	if len(resp.Groups) != 1 || resp.GrandTotal != 40000 {
		t.Errorf("groups=%d grand=%d, want 1/40000", len(resp.Groups), resp.GrandTotal)
	}
}

func TestCheckoutListsFailedTickets(t *testing.T) {
	repo, scheduleID, tickets, _ := newBookingFixture(50000)
	userID := uuid.New()

	good := &entity.Ticket{
		Base:       entity.Base{ID: uuid.New()},
		UserID:     userID,
		ScheduleID: scheduleID,
		TotalPrice: 100000,
		Status:     entity.TicketStatusWaitingPayment,
	}
	foreign := &entity.Ticket{
		Base:       entity.Base{ID: uuid.New()},
		UserID:     uuid.New(),
		ScheduleID: scheduleID,
		TotalPrice: 999999,
		Status:     entity.TicketStatusWaitingPayment,
	}
	tickets.tickets[good.ID] = good
	tickets.tickets[foreign.ID] = foreign
	missing := uuid.New()

	svc := NewPaymentService(repo, zap.NewNop())

	resp, err := svc.Checkout(context.Background(), userID, &request.CheckoutRequest{
		TicketIDs: []string{good.ID.String(), foreign.ID.String(), missing.String()},
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	// Unresolved tickets are listed, never silently dropped
	if len(resp.FailedTicketIDs) != 2 {
		t.Fatalf("failed = %v, want 2 entries", resp.FailedTicketIDs)
	}
	if resp.GrandTotal != 100000 {
		t.Errorf("grand total = %d, want 100000 (failed tickets excluded)", resp.GrandTotal)
	}
	if len(resp.Groups) != 1 {
		t.Errorf("groups = %d, want 1", len(resp.Groups))
	}
}

func TestCheckoutFailsWhenNothingResolves(t *testing.T) {
	repo, _, tickets, _ := newBookingFixture(50000)
	tickets.tickets = map[uuid.UUID]*entity.Ticket{}
	svc := NewPaymentService(repo, zap.NewNop())

	_, err := svc.Checkout(context.Background(), uuid.New(), &request.CheckoutRequest{
		TicketIDs: []string{uuid.New().String()},
	})
	if err == nil || !strings.Contains(err.Error(), "no tickets could be resolved") {
		t.Errorf("error = %v, want total failure", err)
	}
}

func TestCreatePaymentConfirmsTicket(t *testing.T) {
	repo, scheduleID, tickets, _ := newBookingFixture(50000)
	userID := uuid.New()
	ticket := &entity.Ticket{
		Base:       entity.Base{ID: uuid.New()},
		UserID:     userID,
		ScheduleID: scheduleID,
		TotalPrice: 100000,
		Status:     entity.TicketStatusWaitingPayment,
	}
	tickets.tickets[ticket.ID] = ticket

	svc := NewPaymentService(repo, zap.NewNop())

	resp, err := svc.CreatePayment(context.Background(), userID, &request.CreatePaymentRequest{
		TicketID: ticket.ID.String(),
		Method:   "ewallet",
		Amount:   100000,
	})
	if err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}

	if resp.Status != entity.PaymentStatusPaid {
		t.Errorf("payment status = %s, want paid", resp.Status)
	}
	if ticket.Status != entity.TicketStatusConfirmed {
		t.Errorf("ticket status = %s, want confirmed", ticket.Status)
	}
}

func TestCreatePaymentRejectsWrongAmount(t *testing.T) {
	repo, scheduleID, tickets, _ := newBookingFixture(50000)
	userID := uuid.New()
	ticket := &entity.Ticket{
		Base:       entity.Base{ID: uuid.New()},
		UserID:     userID,
		ScheduleID: scheduleID,
		TotalPrice: 100000,
		Status:     entity.TicketStatusWaitingPayment,
	}
	tickets.tickets[ticket.ID] = ticket

	svc := NewPaymentService(repo, zap.NewNop())

	_, err := svc.CreatePayment(context.Background(), userID, &request.CreatePaymentRequest{
		TicketID: ticket.ID.String(),
		Method:   "card",
		Amount:   99000,
	})
	if err == nil || !strings.Contains(err.Error(), "does not match") {
		t.Errorf("error = %v, want amount mismatch", err)
	}
	if ticket.Status != entity.TicketStatusWaitingPayment {
		t.Errorf("ticket status changed to %s", ticket.Status)
	}
}

func TestCreatePaymentRejectsExpiredTicket(t *testing.T) {
	repo, scheduleID, tickets, _ := newBookingFixture(50000)
	userID := uuid.New()
	ticket := &entity.Ticket{
		Base:       entity.Base{ID: uuid.New()},
		UserID:     userID,
		ScheduleID: scheduleID,
		TotalPrice: 100000,
		Status:     entity.TicketStatusExpired,
	}
	tickets.tickets[ticket.ID] = ticket

	svc := NewPaymentService(repo, zap.NewNop())

	_, err := svc.CreatePayment(context.Background(), userID, &request.CreatePaymentRequest{
		TicketID: ticket.ID.String(),
		Method:   "transfer",
		Amount:   100000,
	})
	if err == nil || !strings.Contains(err.Error(), "expired") {
		t.Errorf("error = %v, want expired rejection", err)
	}
}

func TestUpdatePaymentStatusFailedReleasesTicket(t *testing.T) {
	repo, scheduleID, tickets, _ := newBookingFixture(50000)
	userID := uuid.New()
	ticket := &entity.Ticket{
		Base:       entity.Base{ID: uuid.New()},
		UserID:     userID,
		ScheduleID: scheduleID,
		TotalPrice: 100000,
		Status:     entity.TicketStatusConfirmed,
	}
	tickets.tickets[ticket.ID] = ticket

	payment := &entity.Payment{
		Base:     entity.Base{ID: uuid.New()},
		TicketID: ticket.ID,
		UserID:   userID,
		Amount:   100000,
		Status:   entity.PaymentStatusPaid,
	}
	payments := repo.Payment.(*fakePaymentRepo)
	payments.byID = map[uuid.UUID]*entity.Payment{payment.ID: payment}
	payments.byTicket = map[uuid.UUID]*entity.Payment{ticket.ID: payment}

	svc := NewPaymentService(repo, zap.NewNop())

	resp, err := svc.UpdatePaymentStatus(context.Background(), payment.ID, &request.UpdatePaymentRequest{Status: "failed"})
	if err != nil {
		t.Fatalf("UpdatePaymentStatus: %v", err)
	}
	if resp.Status != entity.PaymentStatusFailed {
		t.Errorf("payment status = %s, want failed", resp.Status)
	}
	// A reversed payment puts the confirmed ticket back in the queue
	if ticket.Status != entity.TicketStatusWaitingPayment {
		t.Errorf("ticket status = %s, want waiting_payment", ticket.Status)
	}
}

func TestUpdatePaymentStatusFailedLeavesUnconfirmedAlone(t *testing.T) {
	repo, scheduleID, tickets, _ := newBookingFixture(50000)
	userID := uuid.New()
	ticket := &entity.Ticket{
		Base:       entity.Base{ID: uuid.New()},
		UserID:     userID,
		ScheduleID: scheduleID,
		TotalPrice: 100000,
		Status:     entity.TicketStatusExpired,
	}
	tickets.tickets[ticket.ID] = ticket

	payment := &entity.Payment{
		Base:     entity.Base{ID: uuid.New()},
		TicketID: ticket.ID,
		UserID:   userID,
		Amount:   100000,
		Status:   entity.PaymentStatusPending,
	}
	payments := repo.Payment.(*fakePaymentRepo)
	payments.byID = map[uuid.UUID]*entity.Payment{payment.ID: payment}

	svc := NewPaymentService(repo, zap.NewNop())

	if _, err := svc.UpdatePaymentStatus(context.Background(), payment.ID, &request.UpdatePaymentRequest{Status: "failed"}); err != nil {
		t.Fatalf("UpdatePaymentStatus: %v", err)
	}
	if ticket.Status != entity.TicketStatusExpired {
		t.Errorf("ticket status = %s, want expired untouched", ticket.Status)
	}
}

func TestCreatePaymentRejectsStranger(t *testing.T) {
	repo, scheduleID, tickets, _ := newBookingFixture(50000)
	ticket := &entity.Ticket{
		Base:       entity.Base{ID: uuid.New()},
		UserID:     uuid.New(),
		ScheduleID: scheduleID,
		TotalPrice: 100000,
		Status:     entity.TicketStatusWaitingPayment,
	}
	tickets.tickets[ticket.ID] = ticket

	svc := NewPaymentService(repo, zap.NewNop())

	_, err := svc.CreatePayment(context.Background(), uuid.New(), &request.CreatePaymentRequest{
		TicketID: ticket.ID.String(),
		Method:   "cash",
		Amount:   100000,
	})
	if err == nil || !strings.Contains(err.Error(), "unauthorized") {
		t.Errorf("error = %v, want unauthorized", err)
	}
}
