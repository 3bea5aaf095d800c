package repository

import (
	"context"
	"fmt"

	"tiket-bioskop/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TicketSeatRepository interface {
	FindLabelsByTicketID(ctx context.Context, ticketID uuid.UUID) ([]string, error)
	// FindOccupiedLabelsBySchedule returns seat labels held by tickets
	// that still block the grid (not cancelled, not expired). This list
	// is the single source of truth for availability.
	FindOccupiedLabelsBySchedule(ctx context.Context, scheduleID uuid.UUID) ([]string, error)
	// DeleteByTicketID frees the seat rows of a ticket that stopped
	// blocking (cancelled or expired).
	DeleteByTicketID(ctx context.Context, ticketID uuid.UUID) error
}

type ticketSeatRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTicketSeatRepository(db database.PgxIface, log *zap.Logger) TicketSeatRepository {
	return &ticketSeatRepository{
		db:  db,
		log: log.With(zap.String("repository", "ticket_seat")),
	}
}

func (r *ticketSeatRepository) FindLabelsByTicketID(ctx context.Context, ticketID uuid.UUID) ([]string, error) {
	query := `
		SELECT seat_label
		FROM ticket_seats
		WHERE ticket_id = $1
		ORDER BY seat_label
	`

	rows, err := r.db.Query(ctx, query, ticketID)
	if err != nil {
		r.log.Error("Failed to find seats by ticket ID",
			zap.Error(err),
			zap.String("ticket_id", ticketID.String()),
		)
		return nil, fmt.Errorf("find seats by ticket ID %s: %w", ticketID.String(), err)
	}
	defer rows.Close()

	var labels []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			r.log.Error("Failed to scan seat row", zap.Error(err))
			return nil, fmt.Errorf("scan seat row: %w", err)
		}
		labels = append(labels, label)
	}

	return labels, nil
}

func (r *ticketSeatRepository) FindOccupiedLabelsBySchedule(ctx context.Context, scheduleID uuid.UUID) ([]string, error) {
	query := `
		SELECT ts.seat_label
		FROM ticket_seats ts
		JOIN tickets t ON t.id = ts.ticket_id
		WHERE ts.schedule_id = $1
		  AND t.status NOT IN ('cancelled', 'expired')
	`

	rows, err := r.db.Query(ctx, query, scheduleID)
	if err != nil {
		r.log.Error("Failed to find occupied seats",
			zap.Error(err),
			zap.String("schedule_id", scheduleID.String()),
		)
		return nil, fmt.Errorf("find occupied seats for schedule %s: %w", scheduleID.String(), err)
	}
	defer rows.Close()

	var labels []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			r.log.Error("Failed to scan occupied seat row", zap.Error(err))
			return nil, fmt.Errorf("scan occupied seat row: %w", err)
		}
		labels = append(labels, label)
	}

	return labels, nil
}

func (r *ticketSeatRepository) DeleteByTicketID(ctx context.Context, ticketID uuid.UUID) error {
	query := `DELETE FROM ticket_seats WHERE ticket_id = $1`

	if _, err := r.db.Exec(ctx, query, ticketID); err != nil {
		r.log.Error("Failed to delete ticket seats",
			zap.Error(err),
			zap.String("ticket_id", ticketID.String()),
		)
		return fmt.Errorf("delete seats for ticket %s: %w", ticketID.String(), err)
	}

	return nil
}
