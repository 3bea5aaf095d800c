package repository

import (
	"context"
	"fmt"
	"strings"

	"tiket-bioskop/internal/data/entity"
	"tiket-bioskop/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// FilmFilter narrows catalog listings. Empty fields match everything.
type FilmFilter struct {
	Genre  string
	Rating string
}

type FilmRepository interface {
	Create(ctx context.Context, film *entity.Film) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Film, error)
	FindAll(ctx context.Context, filter FilmFilter, limit, offset int) ([]*entity.Film, error)
	Count(ctx context.Context, filter FilmFilter) (int64, error)
	Update(ctx context.Context, film *entity.Film) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type filmRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewFilmRepository(db database.PgxIface, log *zap.Logger) FilmRepository {
	return &filmRepository{
		db:  db,
		log: log.With(zap.String("repository", "film")),
	}
}

func (r *filmRepository) Create(ctx context.Context, film *entity.Film) error {
	query := `
		INSERT INTO films (id, title, description, poster_url, duration_in_minutes, content_rating, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		film.ID,
		film.Title,
		film.Description,
		film.PosterURL,
		film.DurationInMinutes,
		film.ContentRating,
		film.CreatedAt,
		film.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create film",
			zap.Error(err),
			zap.String("title", film.Title),
		)
		return fmt.Errorf("create film %s: %w", film.Title, err)
	}

	return nil
}

func (r *filmRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Film, error) {
	query := `
		SELECT id, title, description, poster_url, duration_in_minutes, content_rating, created_at, updated_at
		FROM films
		WHERE id = $1
	`

	var film entity.Film
	err := r.db.QueryRow(ctx, query, id).Scan(
		&film.ID,
		&film.Title,
		&film.Description,
		&film.PosterURL,
		&film.DurationInMinutes,
		&film.ContentRating,
		&film.CreatedAt,
		&film.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find film by ID",
			zap.Error(err),
			zap.String("film_id", id.String()),
		)
		return nil, fmt.Errorf("find film by ID %s: %w", id.String(), err)
	}

	return &film, nil
}

// filmFilterClause builds the WHERE clause for a filter. Args start at
// $1; the caller appends its own placeholders after the returned args.
func filmFilterClause(filter FilmFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)

	if filter.Genre != "" {
		args = append(args, filter.Genre)
		conds = append(conds, fmt.Sprintf(
			`f.id IN (SELECT fg.film_id FROM film_genres fg JOIN genres g ON g.id = fg.genre_id WHERE g.name = $%d)`,
			len(args)))
	}
	if filter.Rating != "" {
		args = append(args, filter.Rating)
		conds = append(conds, fmt.Sprintf(`f.content_rating = $%d`, len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *filmRepository) FindAll(ctx context.Context, filter FilmFilter, limit, offset int) ([]*entity.Film, error) {
	where, args := filmFilterClause(filter)
	query := fmt.Sprintf(`
		SELECT f.id, f.title, f.description, f.poster_url, f.duration_in_minutes, f.content_rating, f.created_at, f.updated_at
		FROM films f%s
		ORDER BY f.title
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find films",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find films: %w", err)
	}
	defer rows.Close()

	var films []*entity.Film
	for rows.Next() {
		var film entity.Film
		err := rows.Scan(
			&film.ID,
			&film.Title,
			&film.Description,
			&film.PosterURL,
			&film.DurationInMinutes,
			&film.ContentRating,
			&film.CreatedAt,
			&film.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan film row", zap.Error(err))
			return nil, fmt.Errorf("scan film row: %w", err)
		}
		films = append(films, &film)
	}

	return films, nil
}

func (r *filmRepository) Count(ctx context.Context, filter FilmFilter) (int64, error) {
	where, args := filmFilterClause(filter)
	query := `SELECT COUNT(*) FROM films f` + where

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count films", zap.Error(err))
		return 0, fmt.Errorf("count films: %w", err)
	}

	return count, nil
}

func (r *filmRepository) Update(ctx context.Context, film *entity.Film) error {
	query := `
		UPDATE films
		SET title = $2, description = $3, poster_url = $4, duration_in_minutes = $5,
		    content_rating = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		film.ID,
		film.Title,
		film.Description,
		film.PosterURL,
		film.DurationInMinutes,
		film.ContentRating,
		film.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update film",
			zap.Error(err),
			zap.String("film_id", film.ID.String()),
		)
		return fmt.Errorf("update film %s: %w", film.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("film %s not found", film.ID.String())
	}

	return nil
}

func (r *filmRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM films WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete film",
			zap.Error(err),
			zap.String("film_id", id.String()),
		)
		return fmt.Errorf("delete film %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("film %s not found", id.String())
	}

	r.log.Info("Film deleted", zap.String("film_id", id.String()))
	return nil
}
