package usecase

import (
	"context"
	"fmt"
	"time"

	"tiket-bioskop/internal/data/entity"
	"tiket-bioskop/internal/data/repository"
	"tiket-bioskop/internal/dto/request"
	"tiket-bioskop/internal/dto/response"
	"tiket-bioskop/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PaymentService interface {
	Checkout(ctx context.Context, userID uuid.UUID, req *request.CheckoutRequest) (*response.CheckoutResponse, error)
	CreatePayment(ctx context.Context, userID uuid.UUID, req *request.CreatePaymentRequest) (*response.PaymentResponse, error)
	GetPayments(ctx context.Context, page request.PaginatedRequest) (*response.PaginatedResponse[response.PaymentResponse], error)
	UpdatePaymentStatus(ctx context.Context, paymentID uuid.UUID, req *request.UpdatePaymentRequest) (*response.PaymentResponse, error)
}

type paymentService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewPaymentService(repo *repository.Repository, log *zap.Logger) PaymentService {
	return &paymentService{
		repo: repo,
		log:  log.With(zap.String("service", "payment")),
	}
}

// Checkout aggregates the caller's tickets by schedule before payment.
// Tickets that cannot be resolved are reported in failed_ticket_ids and
// excluded from the totals; the call fails only when nothing resolves.
func (s *paymentService) Checkout(ctx context.Context, userID uuid.UUID, req *request.CheckoutRequest) (*response.CheckoutResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Checkout validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	var (
		summaries []response.TicketSummary
		failed    []string
	)

	for _, raw := range req.TicketIDs {
		ticketID, err := uuid.Parse(raw)
		if err != nil {
			failed = append(failed, raw)
			continue
		}

		summary, err := s.summarizeTicket(ctx, ticketID, userID)
		if err != nil {
			s.log.Warn("Ticket dropped from checkout",
				zap.Error(err),
				zap.String("ticket_id", raw),
				zap.String("user_id", userID.String()),
			)
			failed = append(failed, raw)
			continue
		}

		summaries = append(summaries, *summary)
	}

	if len(summaries) == 0 {
		return nil, fmt.Errorf("no tickets could be resolved")
	}

	resp := buildCheckout(summaries)
	resp.FailedTicketIDs = failed

	return resp, nil
}

// CreatePayment pays one ticket in full. The gateway is simulated: the
// payment settles immediately and confirms the ticket.
func (s *paymentService) CreatePayment(ctx context.Context, userID uuid.UUID, req *request.CreatePaymentRequest) (*response.PaymentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create payment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	ticketID, err := uuid.Parse(req.TicketID)
	if err != nil {
		return nil, fmt.Errorf("invalid ticket ID")
	}

	ticket, err := s.repo.Ticket.FindByID(ctx, ticketID)
	if err != nil {
		s.log.Error("Failed to find ticket", zap.Error(err), zap.String("ticket_id", ticketID.String()))
		return nil, fmt.Errorf("failed to find ticket")
	}
	if ticket == nil {
		return nil, fmt.Errorf("ticket %s not found", ticketID.String())
	}

	if ticket.UserID != userID {
		return nil, fmt.Errorf("unauthorized to pay this ticket")
	}

	switch ticket.Status {
	case entity.TicketStatusPending, entity.TicketStatusWaitingPayment:
		// payable
	default:
		return nil, fmt.Errorf("ticket is %s", string(ticket.Status))
	}

	if req.Amount != ticket.TotalPrice {
		return nil, fmt.Errorf("amount %d does not match ticket total %d", req.Amount, ticket.TotalPrice)
	}

	existing, err := s.repo.Payment.FindByTicketID(ctx, ticketID)
	if err != nil {
		s.log.Error("Failed to check existing payment", zap.Error(err), zap.String("ticket_id", ticketID.String()))
		return nil, fmt.Errorf("failed to create payment")
	}
	if existing != nil && existing.Status == entity.PaymentStatusPaid {
		return nil, fmt.Errorf("ticket is already paid")
	}

	now := time.Now()
	payment := &entity.Payment{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		TicketID: ticketID,
		UserID:   userID,
		Method:   entity.PaymentMethod(req.Method),
		Amount:   req.Amount,
		Status:   entity.PaymentStatusPaid,
	}

	if err := s.repo.Payment.Create(ctx, payment); err != nil {
		s.log.Error("Failed to create payment", zap.Error(err), zap.String("ticket_id", ticketID.String()))
		return nil, fmt.Errorf("failed to create payment")
	}

	if err := s.confirmTicket(ctx, ticket); err != nil {
		// Payment stands; the ticket will be fixed up by an admin status update
		s.log.Error("Failed to confirm ticket after payment",
			zap.Error(err), zap.String("ticket_id", ticketID.String()))
	}

	s.log.Info("Payment settled",
		zap.String("payment_id", payment.ID.String()),
		zap.String("ticket_id", ticketID.String()),
		zap.Int64("amount", payment.Amount),
		zap.String("method", req.Method),
	)

	resp := response.PaymentToResponse(payment)
	return &resp, nil
}

func (s *paymentService) GetPayments(ctx context.Context, page request.PaginatedRequest) (*response.PaginatedResponse[response.PaymentResponse], error) {
	payments, err := s.repo.Payment.FindAll(ctx, page.Limit(), page.Offset())
	if err != nil {
		s.log.Error("Failed to get payments", zap.Error(err))
		return nil, fmt.Errorf("failed to get payments")
	}

	total, err := s.repo.Payment.Count(ctx)
	if err != nil {
		s.log.Error("Failed to count payments", zap.Error(err))
		return nil, fmt.Errorf("failed to get payments")
	}

	items := make([]response.PaymentResponse, 0, len(payments))
	for _, payment := range payments {
		items = append(items, response.PaymentToResponse(payment))
	}

	return response.NewPaginatedResponse(items, page.Page, page.Limit(), total), nil
}

// UpdatePaymentStatus is the admin/webhook path for settling or failing
// a payment out of band.
func (s *paymentService) UpdatePaymentStatus(ctx context.Context, paymentID uuid.UUID, req *request.UpdatePaymentRequest) (*response.PaymentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	payment, err := s.repo.Payment.FindByID(ctx, paymentID)
	if err != nil {
		s.log.Error("Failed to find payment", zap.Error(err), zap.String("payment_id", paymentID.String()))
		return nil, fmt.Errorf("failed to find payment")
	}
	if payment == nil {
		return nil, fmt.Errorf("payment %s not found", paymentID.String())
	}

	status := entity.PaymentStatus(req.Status)
	if err := s.repo.Payment.UpdateStatus(ctx, paymentID, status); err != nil {
		s.log.Error("Failed to update payment status",
			zap.Error(err), zap.String("payment_id", paymentID.String()))
		return nil, fmt.Errorf("failed to update payment")
	}
	payment.Status = status
	payment.UpdatedAt = time.Now()

	switch status {
	case entity.PaymentStatusPaid:
		ticket, err := s.repo.Ticket.FindByID(ctx, payment.TicketID)
		if err == nil && ticket != nil {
			if err := s.confirmTicket(ctx, ticket); err != nil {
				s.log.Error("Failed to confirm ticket after payment update",
					zap.Error(err), zap.String("ticket_id", ticket.ID.String()))
			}
		}
	case entity.PaymentStatusFailed:
		// A reversed payment puts a confirmed ticket back in the
		// payment queue. Other statuses are left alone.
		changed, err := s.repo.Ticket.UpdateStatusIf(ctx, payment.TicketID,
			entity.TicketStatusConfirmed, entity.TicketStatusWaitingPayment)
		if err != nil {
			s.log.Error("Failed to release ticket after failed payment",
				zap.Error(err), zap.String("ticket_id", payment.TicketID.String()))
		} else if changed {
			s.log.Info("Ticket released to waiting_payment",
				zap.String("ticket_id", payment.TicketID.String()))
		}
	}

	s.log.Info("Payment status updated",
		zap.String("payment_id", paymentID.String()),
		zap.String("status", req.Status),
	)

	resp := response.PaymentToResponse(payment)
	return &resp, nil
}

// confirmTicket moves a payable ticket to confirmed. Expiry may have
// raced the payment; in that case confirmation is refused.
func (s *paymentService) confirmTicket(ctx context.Context, ticket *entity.Ticket) error {
	for _, from := range []entity.TicketStatus{
		entity.TicketStatusWaitingPayment,
		entity.TicketStatusPending,
	} {
		changed, err := s.repo.Ticket.UpdateStatusIf(ctx, ticket.ID, from, entity.TicketStatusConfirmed)
		if err != nil {
			return err
		}
		if changed {
			ticket.Status = entity.TicketStatusConfirmed
			return nil
		}
	}
	return fmt.Errorf("ticket %s is no longer payable", ticket.ID.String())
}

// summarizeTicket resolves one checkout line. Ownership is enforced;
// only payable tickets belong on a checkout page.
func (s *paymentService) summarizeTicket(ctx context.Context, ticketID, userID uuid.UUID) (*response.TicketSummary, error) {
	ticket, err := s.repo.Ticket.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, fmt.Errorf("ticket %s not found", ticketID.String())
	}
	if ticket.UserID != userID {
		return nil, fmt.Errorf("ticket %s belongs to another user", ticketID.String())
	}
	if ticket.Status != entity.TicketStatusPending && ticket.Status != entity.TicketStatusWaitingPayment {
		return nil, fmt.Errorf("ticket %s is %s", ticketID.String(), string(ticket.Status))
	}

	summary := response.TicketSummary{
		TicketID:   ticket.ID.String(),
		ScheduleID: ticket.ScheduleID.String(),
		TotalPrice: ticket.TotalPrice,
	}

	seats, err := s.repo.TicketSeat.FindLabelsByTicketID(ctx, ticket.ID)
	if err != nil {
		s.log.Warn("Failed to load seats for checkout",
			zap.Error(err), zap.String("ticket_id", ticket.ID.String()))
	}
	if seats == nil {
		seats = []string{}
	}
	summary.Seats = seats

	// Schedule details are display only; a miss degrades to blanks
	schedule, err := s.repo.Schedule.FindByID(ctx, ticket.ScheduleID)
	if err == nil && schedule != nil {
		summary.ShowDate = schedule.ShowDate.Format("2006-01-02")
		summary.ShowTime = schedule.ShowTime.Format("15:04")
		if film, err := s.repo.Film.FindByID(ctx, schedule.FilmID); err == nil && film != nil {
			summary.FilmTitle = film.Title
		}
		if studio, err := s.repo.Studio.FindByID(ctx, schedule.StudioID); err == nil && studio != nil {
			summary.StudioName = studio.Name
		}
	}

	return &summary, nil
}

// buildCheckout groups ticket summaries by schedule in first-seen
// order. Subtotals and the grand total are exact integer rupiah sums.
func buildCheckout(summaries []response.TicketSummary) *response.CheckoutResponse {
	var (
		order  []string
		groups = make(map[string]*response.CheckoutGroup)
		grand  int64
	)

	for _, summary := range summaries {
		group, ok := groups[summary.ScheduleID]
		if !ok {
			group = &response.CheckoutGroup{
				ScheduleID: summary.ScheduleID,
				FilmTitle:  summary.FilmTitle,
				ShowDate:   summary.ShowDate,
				ShowTime:   summary.ShowTime,
			}
			groups[summary.ScheduleID] = group
			order = append(order, summary.ScheduleID)
		}

		group.Tickets = append(group.Tickets, summary)
		group.Subtotal += summary.TotalPrice
		grand += summary.TotalPrice
	}

	resp := &response.CheckoutResponse{
		Groups:     make([]response.CheckoutGroup, 0, len(order)),
		GrandTotal: grand,
	}
	for _, scheduleID := range order {
		resp.Groups = append(resp.Groups, *groups[scheduleID])
	}

	return resp
}
