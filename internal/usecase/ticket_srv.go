package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tiket-bioskop/internal/data/entity"
	"tiket-bioskop/internal/data/repository"
	"tiket-bioskop/internal/dto/request"
	"tiket-bioskop/internal/dto/response"
	"tiket-bioskop/internal/qr"
	"tiket-bioskop/internal/seatmap"
	"tiket-bioskop/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ExpiryScheduler arms the payment-window timer for a new ticket.
type ExpiryScheduler interface {
	ScheduleTicketExpiry(ctx context.Context, ticketID uuid.UUID) error
}

type TicketService interface {
	CreateTicket(ctx context.Context, userID uuid.UUID, req *request.CreateTicketRequest) (*response.TicketResponse, error)
	CreateTicketBatch(ctx context.Context, userID uuid.UUID, req *request.BatchCreateTicketRequest) (*response.BatchTicketResponse, error)
	GetMyTickets(ctx context.Context, userID uuid.UUID, page request.PaginatedRequest) (*response.PaginatedResponse[response.TicketResponse], error)
	GetTicket(ctx context.Context, ticketID, requesterID uuid.UUID, isAdmin bool) (*response.TicketResponse, error)
	GetTicketSummary(ctx context.Context, ticketID, requesterID uuid.UUID, isAdmin bool) (*response.TicketSummary, error)
	GetTicketQR(ctx context.Context, ticketID, requesterID uuid.UUID, isAdmin bool, size int) ([]byte, error)
	ValidateTicket(ctx context.Context, req *request.ValidateTicketRequest) (*response.ValidateTicketResponse, error)
	GetTickets(ctx context.Context, page request.PaginatedRequest) (*response.PaginatedResponse[response.TicketResponse], error)
	CancelTicket(ctx context.Context, ticketID uuid.UUID) error
}

type ticketService struct {
	repo      *repository.Repository
	holds     SeatHolds
	scheduler ExpiryScheduler
	maxSeats  int
	log       *zap.Logger
}

func NewTicketService(
	repo *repository.Repository,
	holds SeatHolds,
	scheduler ExpiryScheduler,
	config *utils.Config,
	log *zap.Logger,
) TicketService {
	maxSeats := seatmap.MaxSelection
	if config != nil && config.Booking.MaxSeatsPerTicket > 0 {
		maxSeats = config.Booking.MaxSeatsPerTicket
	}
	return &ticketService{
		repo:      repo,
		holds:     holds,
		scheduler: scheduler,
		maxSeats:  maxSeats,
		log:       log.With(zap.String("service", "ticket")),
	}
}

// CreateTicket books seats for one schedule. The requested seats are
// replayed through the selection rules against the live grid, so every
// click-time invariant holds again at submission time.
func (s *ticketService) CreateTicket(ctx context.Context, userID uuid.UUID, req *request.CreateTicketRequest) (*response.TicketResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create ticket validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	scheduleID, err := uuid.Parse(req.ScheduleID)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule ID")
	}

	schedule, err := s.repo.Schedule.FindByID(ctx, scheduleID)
	if err != nil {
		s.log.Error("Failed to find schedule", zap.Error(err), zap.String("schedule_id", scheduleID.String()))
		return nil, fmt.Errorf("failed to find schedule")
	}
	if schedule == nil {
		return nil, fmt.Errorf("schedule %s not found", scheduleID.String())
	}

	if schedule.ShowDate.Before(time.Now().Truncate(24 * time.Hour)) {
		return nil, fmt.Errorf("cannot book a past schedule")
	}

	av, _, err := loadAvailability(ctx, s.repo, schedule)
	if err != nil {
		s.log.Error("Failed to load availability",
			zap.Error(err), zap.String("schedule_id", scheduleID.String()))
		return nil, err
	}

	selection := seatmap.NewSelection(av, s.maxSeats)
	for _, label := range req.Seats {
		switch selection.Toggle(label) {
		case seatmap.Added:
			// keep going
		case seatmap.Removed:
			return nil, fmt.Errorf("duplicate seat %s", label)
		case seatmap.RejectedOccupied:
			return nil, fmt.Errorf("seat %s is already booked", label)
		case seatmap.RejectedFull:
			return nil, fmt.Errorf("cannot book more than %d seats", s.maxSeats)
		case seatmap.RejectedUnknown:
			return nil, fmt.Errorf("seat %s is not in the studio layout", label)
		}
	}

	seats := selection.Seats()
	now := time.Now()
	ticket := &entity.Ticket{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OrderID:        utils.GenerateOrderID(),
		UserID:         userID,
		ScheduleID:     scheduleID,
		TotalSeats:     len(seats),
		TotalPrice:     schedule.Price * int64(len(seats)),
		Status:         entity.TicketStatusWaitingPayment,
		ValidationCode: utils.GenerateValidationCode(),
	}

	seatRows := make([]*entity.TicketSeat, 0, len(seats))
	for _, label := range seats {
		seatRows = append(seatRows, &entity.TicketSeat{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			TicketID:   ticket.ID,
			ScheduleID: scheduleID,
			SeatLabel:  label,
		})
	}

	// The transaction re-checks the grid under a per-schedule lock, so
	// a booking that raced past the availability read still loses here.
	if err := s.repo.Ticket.CreateWithSeats(ctx, ticket, seatRows); err != nil {
		if errors.Is(err, repository.ErrSeatTaken) {
			s.log.Warn("Seat conflict at booking time",
				zap.Error(err),
				zap.String("schedule_id", scheduleID.String()),
				zap.Strings("seats", seats),
			)
			return nil, fmt.Errorf("seat is already booked")
		}
		s.log.Error("Failed to create ticket", zap.Error(err), zap.String("order_id", ticket.OrderID))
		return nil, fmt.Errorf("failed to create ticket")
	}

	if s.scheduler != nil {
		if err := s.scheduler.ScheduleTicketExpiry(ctx, ticket.ID); err != nil {
			// The ticket stands; it just will not auto-expire
			s.log.Warn("Failed to schedule ticket expiry",
				zap.Error(err), zap.String("ticket_id", ticket.ID.String()))
		}
	}

	if s.holds != nil {
		if err := s.holds.Release(ctx, scheduleID, userID); err != nil {
			s.log.Warn("Failed to release hold after booking",
				zap.Error(err), zap.String("schedule_id", scheduleID.String()))
		}
	}

	s.log.Info("Ticket created",
		zap.String("ticket_id", ticket.ID.String()),
		zap.String("order_id", ticket.OrderID),
		zap.String("user_id", userID.String()),
		zap.Int("seats", len(seats)),
		zap.Int64("total_price", ticket.TotalPrice),
	)

	resp := s.buildTicketResponse(ctx, ticket, seats)
	return &resp, nil
}

// CreateTicketBatch books several schedules in one call. Items are
// independent: one failure does not undo the others, and each outcome
// is reported per item.
func (s *ticketService) CreateTicketBatch(ctx context.Context, userID uuid.UUID, req *request.BatchCreateTicketRequest) (*response.BatchTicketResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Batch ticket validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	resp := &response.BatchTicketResponse{
		Tickets: make([]response.BatchTicketItem, 0, len(req.Tickets)),
	}

	for i := range req.Tickets {
		item := response.BatchTicketItem{ScheduleID: req.Tickets[i].ScheduleID}

		ticket, err := s.CreateTicket(ctx, userID, &req.Tickets[i])
		if err != nil {
			item.Error = err.Error()
			resp.Failed++
		} else {
			item.Ticket = ticket
			resp.Created++
		}

		resp.Tickets = append(resp.Tickets, item)
	}

	return resp, nil
}

func (s *ticketService) GetMyTickets(ctx context.Context, userID uuid.UUID, page request.PaginatedRequest) (*response.PaginatedResponse[response.TicketResponse], error) {
	tickets, err := s.repo.Ticket.FindByUserID(ctx, userID, page.Limit(), page.Offset())
	if err != nil {
		s.log.Error("Failed to get user tickets", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to get tickets")
	}

	total, err := s.repo.Ticket.CountByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to count user tickets", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to get tickets")
	}

	items := make([]response.TicketResponse, 0, len(tickets))
	for _, ticket := range tickets {
		items = append(items, s.buildTicketResponse(ctx, ticket, nil))
	}

	return response.NewPaginatedResponse(items, page.Page, page.Limit(), total), nil
}

func (s *ticketService) GetTicket(ctx context.Context, ticketID, requesterID uuid.UUID, isAdmin bool) (*response.TicketResponse, error) {
	ticket, err := s.loadOwnedTicket(ctx, ticketID, requesterID, isAdmin)
	if err != nil {
		return nil, err
	}

	resp := s.buildTicketResponse(ctx, ticket, nil)
	return &resp, nil
}

// GetTicketSummary returns the flat checkout record for one ticket.
func (s *ticketService) GetTicketSummary(ctx context.Context, ticketID, requesterID uuid.UUID, isAdmin bool) (*response.TicketSummary, error) {
	ticket, err := s.loadOwnedTicket(ctx, ticketID, requesterID, isAdmin)
	if err != nil {
		return nil, err
	}

	summary := s.buildTicketSummary(ctx, ticket)
	return &summary, nil
}

// GetTicketQR renders the ticket's validation code as a PNG.
func (s *ticketService) GetTicketQR(ctx context.Context, ticketID, requesterID uuid.UUID, isAdmin bool, size int) ([]byte, error) {
	ticket, err := s.loadOwnedTicket(ctx, ticketID, requesterID, isAdmin)
	if err != nil {
		return nil, err
	}

	if ticket.Status != entity.TicketStatusConfirmed && ticket.Status != entity.TicketStatusUsed {
		return nil, fmt.Errorf("cannot render QR for %s ticket", string(ticket.Status))
	}

	png, err := qr.TicketPNG(ticket.ValidationCode, size)
	if err != nil {
		s.log.Error("Failed to render ticket QR",
			zap.Error(err), zap.String("ticket_id", ticket.ID.String()))
		return nil, fmt.Errorf("failed to render QR")
	}

	return png, nil
}

// ValidateTicket burns a validation code at the gate. Only a confirmed
// ticket passes; the conditional transition makes a double scan lose.
func (s *ticketService) ValidateTicket(ctx context.Context, req *request.ValidateTicketRequest) (*response.ValidateTicketResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	ticket, err := s.repo.Ticket.FindByValidationCode(ctx, req.Code)
	if err != nil {
		s.log.Error("Failed to look up validation code", zap.Error(err))
		return nil, fmt.Errorf("failed to validate ticket")
	}
	if ticket == nil {
		return &response.ValidateTicketResponse{
			Valid:  false,
			Reason: "code not recognized",
		}, nil
	}

	if ticket.Status != entity.TicketStatusConfirmed {
		resp := s.buildTicketResponse(ctx, ticket, nil)
		return &response.ValidateTicketResponse{
			Valid:  false,
			Ticket: &resp,
			Reason: fmt.Sprintf("ticket is %s", string(ticket.Status)),
		}, nil
	}

	changed, err := s.repo.Ticket.UpdateStatusIf(ctx, ticket.ID,
		entity.TicketStatusConfirmed, entity.TicketStatusUsed)
	if err != nil {
		s.log.Error("Failed to mark ticket used",
			zap.Error(err), zap.String("ticket_id", ticket.ID.String()))
		return nil, fmt.Errorf("failed to validate ticket")
	}
	if !changed {
		resp := s.buildTicketResponse(ctx, ticket, nil)
		return &response.ValidateTicketResponse{
			Valid:  false,
			Ticket: &resp,
			Reason: "ticket already used",
		}, nil
	}

	ticket.Status = entity.TicketStatusUsed

	s.log.Info("Ticket validated",
		zap.String("ticket_id", ticket.ID.String()),
		zap.String("order_id", ticket.OrderID),
	)

	resp := s.buildTicketResponse(ctx, ticket, nil)
	return &response.ValidateTicketResponse{
		Valid:  true,
		Ticket: &resp,
	}, nil
}

func (s *ticketService) GetTickets(ctx context.Context, page request.PaginatedRequest) (*response.PaginatedResponse[response.TicketResponse], error) {
	tickets, err := s.repo.Ticket.FindAll(ctx, page.Limit(), page.Offset())
	if err != nil {
		s.log.Error("Failed to get tickets", zap.Error(err))
		return nil, fmt.Errorf("failed to get tickets")
	}

	total, err := s.repo.Ticket.Count(ctx)
	if err != nil {
		s.log.Error("Failed to count tickets", zap.Error(err))
		return nil, fmt.Errorf("failed to get tickets")
	}

	items := make([]response.TicketResponse, 0, len(tickets))
	for _, ticket := range tickets {
		items = append(items, s.buildTicketResponse(ctx, ticket, nil))
	}

	return response.NewPaginatedResponse(items, page.Page, page.Limit(), total), nil
}

func (s *ticketService) CancelTicket(ctx context.Context, ticketID uuid.UUID) error {
	ticket, err := s.repo.Ticket.FindByID(ctx, ticketID)
	if err != nil {
		s.log.Error("Failed to find ticket", zap.Error(err), zap.String("ticket_id", ticketID.String()))
		return fmt.Errorf("failed to find ticket")
	}
	if ticket == nil {
		return fmt.Errorf("ticket %s not found", ticketID.String())
	}

	if ticket.Status == entity.TicketStatusUsed {
		return fmt.Errorf("cannot cancel a used ticket")
	}
	if !ticket.Status.Blocking() {
		return fmt.Errorf("ticket is already %s", string(ticket.Status))
	}

	if err := s.repo.Ticket.UpdateStatus(ctx, ticketID, entity.TicketStatusCancelled); err != nil {
		s.log.Error("Failed to cancel ticket", zap.Error(err), zap.String("ticket_id", ticketID.String()))
		return fmt.Errorf("failed to cancel ticket")
	}

	// Availability already excludes cancelled tickets; the rows just
	// should not linger.
	if err := s.repo.TicketSeat.DeleteByTicketID(ctx, ticketID); err != nil {
		s.log.Warn("Failed to delete seats of cancelled ticket",
			zap.Error(err), zap.String("ticket_id", ticketID.String()))
	}

	s.log.Info("Ticket cancelled, seats released", zap.String("ticket_id", ticketID.String()))
	return nil
}

// loadOwnedTicket fetches a ticket and enforces ownership unless the
// requester is an admin.
func (s *ticketService) loadOwnedTicket(ctx context.Context, ticketID, requesterID uuid.UUID, isAdmin bool) (*entity.Ticket, error) {
	ticket, err := s.repo.Ticket.FindByID(ctx, ticketID)
	if err != nil {
		s.log.Error("Failed to find ticket", zap.Error(err), zap.String("ticket_id", ticketID.String()))
		return nil, fmt.Errorf("failed to find ticket")
	}
	if ticket == nil {
		return nil, fmt.Errorf("ticket %s not found", ticketID.String())
	}

	if !isAdmin && ticket.UserID != requesterID {
		return nil, fmt.Errorf("unauthorized to access this ticket")
	}

	return ticket, nil
}

// buildTicketResponse assembles the full ticket view. Seat labels may
// be passed in to skip a lookup; enrichment lookups degrade to blank
// fields instead of failing the whole response.
func (s *ticketService) buildTicketResponse(ctx context.Context, ticket *entity.Ticket, seats []string) response.TicketResponse {
	if seats == nil {
		labels, err := s.repo.TicketSeat.FindLabelsByTicketID(ctx, ticket.ID)
		if err != nil {
			s.log.Warn("Failed to load ticket seats",
				zap.Error(err), zap.String("ticket_id", ticket.ID.String()))
		}
		seats = labels
	}
	if seats == nil {
		seats = []string{}
	}
	seatmap.SortLabels(seats)

	resp := response.TicketResponse{
		ID:         ticket.ID.String(),
		OrderID:    ticket.OrderID,
		UserID:     ticket.UserID.String(),
		ScheduleID: ticket.ScheduleID.String(),
		Seats:      seats,
		TotalSeats: ticket.TotalSeats,
		TotalPrice: ticket.TotalPrice,
		Status:     ticket.Status,
		CreatedAt:  ticket.CreatedAt,
	}

	schedule, err := s.repo.Schedule.FindByID(ctx, ticket.ScheduleID)
	if err == nil && schedule != nil {
		resp.ShowDate = schedule.ShowDate.Format("2006-01-02")
		resp.ShowTime = schedule.ShowTime.Format("15:04")

		if film, err := s.repo.Film.FindByID(ctx, schedule.FilmID); err == nil && film != nil {
			resp.FilmTitle = film.Title
		}
		if studio, err := s.repo.Studio.FindByID(ctx, schedule.StudioID); err == nil && studio != nil {
			resp.StudioName = studio.Name
		}
	}

	if payment, err := s.repo.Payment.FindByTicketID(ctx, ticket.ID); err == nil && payment != nil {
		p := response.PaymentToResponse(payment)
		resp.Payment = &p
	}

	return resp
}

func (s *ticketService) buildTicketSummary(ctx context.Context, ticket *entity.Ticket) response.TicketSummary {
	full := s.buildTicketResponse(ctx, ticket, nil)
	return response.TicketSummary{
		TicketID:   full.ID,
		ScheduleID: full.ScheduleID,
		FilmTitle:  full.FilmTitle,
		StudioName: full.StudioName,
		ShowDate:   full.ShowDate,
		ShowTime:   full.ShowTime,
		Seats:      full.Seats,
		TotalPrice: full.TotalPrice,
	}
}
