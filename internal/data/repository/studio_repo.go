package repository

import (
	"context"
	"fmt"

	"tiket-bioskop/internal/data/entity"
	"tiket-bioskop/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type StudioRepository interface {
	Create(ctx context.Context, studio *entity.Studio) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Studio, error)
	FindAll(ctx context.Context) ([]*entity.Studio, error)
	Update(ctx context.Context, studio *entity.Studio) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type studioRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewStudioRepository(db database.PgxIface, log *zap.Logger) StudioRepository {
	return &studioRepository{
		db:  db,
		log: log.With(zap.String("repository", "studio")),
	}
}

func (r *studioRepository) Create(ctx context.Context, studio *entity.Studio) error {
	query := `
		INSERT INTO studios (id, name, seat_rows, seats_per_row, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		studio.ID,
		studio.Name,
		studio.SeatRows,
		studio.SeatsPerRow,
		studio.CreatedAt,
		studio.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create studio",
			zap.Error(err),
			zap.String("name", studio.Name),
		)
		return fmt.Errorf("create studio %s: %w", studio.Name, err)
	}

	return nil
}

func (r *studioRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Studio, error) {
	query := `
		SELECT id, name, seat_rows, seats_per_row, created_at, updated_at
		FROM studios
		WHERE id = $1
	`

	var studio entity.Studio
	err := r.db.QueryRow(ctx, query, id).Scan(
		&studio.ID,
		&studio.Name,
		&studio.SeatRows,
		&studio.SeatsPerRow,
		&studio.CreatedAt,
		&studio.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find studio by ID",
			zap.Error(err),
			zap.String("studio_id", id.String()),
		)
		return nil, fmt.Errorf("find studio by ID %s: %w", id.String(), err)
	}

	return &studio, nil
}

func (r *studioRepository) FindAll(ctx context.Context) ([]*entity.Studio, error) {
	query := `
		SELECT id, name, seat_rows, seats_per_row, created_at, updated_at
		FROM studios
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find studios", zap.Error(err))
		return nil, fmt.Errorf("find studios: %w", err)
	}
	defer rows.Close()

	var studios []*entity.Studio
	for rows.Next() {
		var studio entity.Studio
		err := rows.Scan(
			&studio.ID,
			&studio.Name,
			&studio.SeatRows,
			&studio.SeatsPerRow,
			&studio.CreatedAt,
			&studio.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan studio row", zap.Error(err))
			return nil, fmt.Errorf("scan studio row: %w", err)
		}
		studios = append(studios, &studio)
	}

	return studios, nil
}

func (r *studioRepository) Update(ctx context.Context, studio *entity.Studio) error {
	query := `
		UPDATE studios
		SET name = $2, seat_rows = $3, seats_per_row = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		studio.ID,
		studio.Name,
		studio.SeatRows,
		studio.SeatsPerRow,
		studio.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update studio",
			zap.Error(err),
			zap.String("studio_id", studio.ID.String()),
		)
		return fmt.Errorf("update studio %s: %w", studio.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("studio %s not found", studio.ID.String())
	}

	return nil
}

func (r *studioRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM studios WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete studio",
			zap.Error(err),
			zap.String("studio_id", id.String()),
		)
		return fmt.Errorf("delete studio %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("studio %s not found", id.String())
	}

	return nil
}
