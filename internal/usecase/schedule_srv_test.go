package usecase

import (
	"context"
	"testing"

	"tiket-bioskop/internal/dto/request"
	"tiket-bioskop/internal/seatmap"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func TestToggleHoldAddsFreeSeat(t *testing.T) {
	repo, scheduleID, _, _ := newBookingFixture(50000)
	userID := uuid.New()
	holds := &fakeHoldStore{held: map[uuid.UUID][]string{}, max: 6}
	svc := NewScheduleService(repo, holds, zap.NewNop())

	resp, err := svc.ToggleHold(context.Background(), scheduleID, userID, &request.ToggleHoldRequest{SeatLabel: "B3"})
	if err != nil {
		t.Fatalf("ToggleHold: %v", err)
	}
	if resp.Result != seatmap.Added.String() {
		t.Errorf("result = %s, want %s", resp.Result, seatmap.Added.String())
	}
	if len(resp.HeldSeats) != 1 || resp.HeldSeats[0] != "B3" {
		t.Errorf("held = %v, want [B3]", resp.HeldSeats)
	}
}

func TestToggleHoldRejectsOccupiedSeat(t *testing.T) {
	repo, scheduleID, _, seats := newBookingFixture(50000)
	seats.occupied[scheduleID] = []string{"C5"}
	userID := uuid.New()
	holds := &fakeHoldStore{held: map[uuid.UUID][]string{}, max: 6}
	svc := NewScheduleService(repo, holds, zap.NewNop())

	resp, err := svc.ToggleHold(context.Background(), scheduleID, userID, &request.ToggleHoldRequest{SeatLabel: "C5"})
	if err != nil {
		t.Fatalf("ToggleHold: %v", err)
	}
	if resp.Result != seatmap.RejectedOccupied.String() {
		t.Errorf("result = %s, want %s", resp.Result, seatmap.RejectedOccupied.String())
	}
	if len(resp.HeldSeats) != 0 {
		t.Errorf("held = %v, want empty", resp.HeldSeats)
	}
}

func TestToggleHoldRemovesSeatBookedMeanwhile(t *testing.T) {
	repo, scheduleID, _, seats := newBookingFixture(50000)
	userID := uuid.New()
	// The user held A1, then someone else's booking filled it. The
	// toggle must still take A1 out of the user's hold set.
	holds := &fakeHoldStore{held: map[uuid.UUID][]string{userID: {"A1"}}, max: 6}
	seats.occupied[scheduleID] = []string{"A1"}
	svc := NewScheduleService(repo, holds, zap.NewNop())

	resp, err := svc.ToggleHold(context.Background(), scheduleID, userID, &request.ToggleHoldRequest{SeatLabel: "A1"})
	if err != nil {
		t.Fatalf("ToggleHold: %v", err)
	}
	if resp.Result != seatmap.Removed.String() {
		t.Errorf("result = %s, want %s", resp.Result, seatmap.Removed.String())
	}
	if len(resp.HeldSeats) != 0 {
		t.Errorf("held = %v, want empty after removal", resp.HeldSeats)
	}
}
