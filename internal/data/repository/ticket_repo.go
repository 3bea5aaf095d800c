package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tiket-bioskop/internal/data/entity"
	"tiket-bioskop/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ErrSeatTaken reports that at least one requested seat is already held
// by a blocking ticket. Checked inside the booking transaction, so a
// concurrent booking of the same seat always loses here.
var ErrSeatTaken = errors.New("seat taken")

type TicketRepository interface {
	// CreateWithSeats inserts a ticket and its seat rows in one
	// transaction. A per-schedule advisory lock serializes concurrent
	// bookings, so the availability re-check and the inserts cannot
	// interleave with another caller's.
	CreateWithSeats(ctx context.Context, ticket *entity.Ticket, seats []*entity.TicketSeat) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Ticket, error)
	FindByValidationCode(ctx context.Context, code string) (*entity.Ticket, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Ticket, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Ticket, error)
	Count(ctx context.Context) (int64, error)
	UpdateStatus(ctx context.Context, ticketID uuid.UUID, status entity.TicketStatus) error
	// UpdateStatusIf transitions only from one expected status; reports
	// whether a row changed. Used for expiry and validation so two
	// concurrent transitions cannot both win.
	UpdateStatusIf(ctx context.Context, ticketID uuid.UUID, from, to entity.TicketStatus) (bool, error)
}

type ticketRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTicketRepository(db database.PgxIface, log *zap.Logger) TicketRepository {
	return &ticketRepository{
		db:  db,
		log: log.With(zap.String("repository", "ticket")),
	}
}

const ticketColumns = `id, order_id, user_id, schedule_id, total_seats, total_price, status, validation_code, created_at, updated_at`

func (r *ticketRepository) CreateWithSeats(ctx context.Context, ticket *entity.Ticket, seats []*entity.TicketSeat) error {
	if len(seats) == 0 {
		return fmt.Errorf("booking %s carries no seats", ticket.OrderID)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin booking transaction",
			zap.Error(err),
			zap.String("order_id", ticket.OrderID),
		)
		return fmt.Errorf("begin booking transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// One lock per schedule; released automatically at commit/rollback
	lockQuery := `SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))`
	if _, err := tx.Exec(ctx, lockQuery, ticket.ScheduleID); err != nil {
		return fmt.Errorf("lock schedule %s: %w", ticket.ScheduleID.String(), err)
	}

	labels := make([]string, 0, len(seats))
	for _, seat := range seats {
		labels = append(labels, seat.SeatLabel)
	}

	taken, err := r.takenLabels(ctx, tx, ticket.ScheduleID, labels)
	if err != nil {
		return err
	}
	if len(taken) > 0 {
		return fmt.Errorf("seats %s: %w", strings.Join(taken, ", "), ErrSeatTaken)
	}

	ticketQuery := `
		INSERT INTO tickets (id, order_id, user_id, schedule_id, total_seats, total_price, status, validation_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = tx.Exec(ctx, ticketQuery,
		ticket.ID,
		ticket.OrderID,
		ticket.UserID,
		ticket.ScheduleID,
		ticket.TotalSeats,
		ticket.TotalPrice,
		ticket.Status,
		ticket.ValidationCode,
		ticket.CreatedAt,
		ticket.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create ticket",
			zap.Error(err),
			zap.String("order_id", ticket.OrderID),
			zap.String("user_id", ticket.UserID.String()),
		)
		return fmt.Errorf("create ticket %s: %w", ticket.OrderID, err)
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO ticket_seats (id, ticket_id, schedule_id, seat_label, created_at) VALUES `)
	args := make([]any, 0, len(seats)*5)
	for i, seat := range seats {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 5
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4, base+5)
		args = append(args, seat.ID, seat.TicketID, seat.ScheduleID, seat.SeatLabel, seat.CreatedAt)
	}
	if _, err := tx.Exec(ctx, sb.String(), args...); err != nil {
		r.log.Error("Failed to create ticket seats",
			zap.Error(err),
			zap.String("ticket_id", ticket.ID.String()),
			zap.Int("count", len(seats)),
		)
		return fmt.Errorf("create %d ticket seats: %w", len(seats), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit booking %s: %w", ticket.OrderID, err)
	}

	return nil
}

// takenLabels reports which of the requested labels are already held by
// a blocking ticket on the schedule, as seen inside the transaction.
func (r *ticketRepository) takenLabels(ctx context.Context, tx pgx.Tx, scheduleID uuid.UUID, labels []string) ([]string, error) {
	query := `
		SELECT ts.seat_label
		FROM ticket_seats ts
		JOIN tickets t ON t.id = ts.ticket_id
		WHERE ts.schedule_id = $1
		  AND ts.seat_label = ANY($2)
		  AND t.status NOT IN ('cancelled', 'expired')
	`

	rows, err := tx.Query(ctx, query, scheduleID, labels)
	if err != nil {
		return nil, fmt.Errorf("check seats for schedule %s: %w", scheduleID.String(), err)
	}
	defer rows.Close()

	var taken []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, fmt.Errorf("scan taken seat row: %w", err)
		}
		taken = append(taken, label)
	}

	return taken, rows.Err()
}

func (r *ticketRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`

	ticket, err := r.scanTicket(r.db.QueryRow(ctx, query, id))
	if err != nil {
		r.log.Error("Failed to find ticket by ID",
			zap.Error(err),
			zap.String("ticket_id", id.String()),
		)
		return nil, fmt.Errorf("find ticket by ID %s: %w", id.String(), err)
	}

	return ticket, nil
}

func (r *ticketRepository) FindByValidationCode(ctx context.Context, code string) (*entity.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE validation_code = $1`

	ticket, err := r.scanTicket(r.db.QueryRow(ctx, query, code))
	if err != nil {
		r.log.Error("Failed to find ticket by validation code", zap.Error(err))
		return nil, fmt.Errorf("find ticket by validation code: %w", err)
	}

	return ticket, nil
}

func (r *ticketRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find tickets by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find tickets by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	return r.scanTickets(rows)
}

func (r *ticketRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM tickets WHERE user_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		r.log.Error("Failed to count tickets by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count tickets by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *ticketRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find tickets", zap.Error(err))
		return nil, fmt.Errorf("find tickets: %w", err)
	}
	defer rows.Close()

	return r.scanTickets(rows)
}

func (r *ticketRepository) Count(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM tickets`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		r.log.Error("Failed to count tickets", zap.Error(err))
		return 0, fmt.Errorf("count tickets: %w", err)
	}

	return count, nil
}

func (r *ticketRepository) UpdateStatus(ctx context.Context, ticketID uuid.UUID, status entity.TicketStatus) error {
	query := `UPDATE tickets SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, ticketID, status)
	if err != nil {
		r.log.Error("Failed to update ticket status",
			zap.Error(err),
			zap.String("ticket_id", ticketID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update ticket %s status to %s: %w", ticketID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("ticket %s not found", ticketID.String())
	}

	return nil
}

func (r *ticketRepository) UpdateStatusIf(ctx context.Context, ticketID uuid.UUID, from, to entity.TicketStatus) (bool, error) {
	query := `UPDATE tickets SET status = $3, updated_at = NOW() WHERE id = $1 AND status = $2`

	result, err := r.db.Exec(ctx, query, ticketID, from, to)
	if err != nil {
		r.log.Error("Failed to transition ticket status",
			zap.Error(err),
			zap.String("ticket_id", ticketID.String()),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
		)
		return false, fmt.Errorf("transition ticket %s from %s to %s: %w",
			ticketID.String(), string(from), string(to), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *ticketRepository) scanTicket(row pgx.Row) (*entity.Ticket, error) {
	var ticket entity.Ticket
	err := row.Scan(
		&ticket.ID,
		&ticket.OrderID,
		&ticket.UserID,
		&ticket.ScheduleID,
		&ticket.TotalSeats,
		&ticket.TotalPrice,
		&ticket.Status,
		&ticket.ValidationCode,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) scanTickets(rows pgx.Rows) ([]*entity.Ticket, error) {
	var tickets []*entity.Ticket
	for rows.Next() {
		var ticket entity.Ticket
		err := rows.Scan(
			&ticket.ID,
			&ticket.OrderID,
			&ticket.UserID,
			&ticket.ScheduleID,
			&ticket.TotalSeats,
			&ticket.TotalPrice,
			&ticket.Status,
			&ticket.ValidationCode,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan ticket row", zap.Error(err))
			return nil, fmt.Errorf("scan ticket row: %w", err)
		}
		tickets = append(tickets, &ticket)
	}

	return tickets, nil
}
