package repository

import (
	"context"
	"fmt"
	"time"

	"tiket-bioskop/internal/data/entity"
	"tiket-bioskop/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type GenreRepository interface {
	FindOrCreateByName(ctx context.Context, name string) (*entity.Genre, error)
	FindNamesByFilmID(ctx context.Context, filmID uuid.UUID) ([]string, error)
	// ReplaceFilmGenres rewrites the film's genre links in one pass.
	ReplaceFilmGenres(ctx context.Context, filmID uuid.UUID, genreIDs []uuid.UUID) error
}

type genreRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewGenreRepository(db database.PgxIface, log *zap.Logger) GenreRepository {
	return &genreRepository{
		db:  db,
		log: log.With(zap.String("repository", "genre")),
	}
}

func (r *genreRepository) FindOrCreateByName(ctx context.Context, name string) (*entity.Genre, error) {
	query := `SELECT id, name, created_at FROM genres WHERE name = $1`

	var genre entity.Genre
	err := r.db.QueryRow(ctx, query, name).Scan(&genre.ID, &genre.Name, &genre.CreatedAt)
	if err == nil {
		return &genre, nil
	}
	if err != pgx.ErrNoRows {
		r.log.Error("Failed to find genre", zap.Error(err), zap.String("name", name))
		return nil, fmt.Errorf("find genre %s: %w", name, err)
	}

	genre = entity.Genre{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Name: name,
	}

	insert := `INSERT INTO genres (id, name, created_at) VALUES ($1, $2, $3)`
	if _, err := r.db.Exec(ctx, insert, genre.ID, genre.Name, genre.CreatedAt); err != nil {
		r.log.Error("Failed to create genre", zap.Error(err), zap.String("name", name))
		return nil, fmt.Errorf("create genre %s: %w", name, err)
	}

	return &genre, nil
}

func (r *genreRepository) FindNamesByFilmID(ctx context.Context, filmID uuid.UUID) ([]string, error) {
	query := `
		SELECT g.name
		FROM genres g
		JOIN film_genres fg ON fg.genre_id = g.id
		WHERE fg.film_id = $1
		ORDER BY g.name
	`

	rows, err := r.db.Query(ctx, query, filmID)
	if err != nil {
		r.log.Error("Failed to find genres by film ID",
			zap.Error(err),
			zap.String("film_id", filmID.String()),
		)
		return nil, fmt.Errorf("find genres by film ID %s: %w", filmID.String(), err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			r.log.Error("Failed to scan genre row", zap.Error(err))
			return nil, fmt.Errorf("scan genre row: %w", err)
		}
		names = append(names, name)
	}

	return names, nil
}

func (r *genreRepository) ReplaceFilmGenres(ctx context.Context, filmID uuid.UUID, genreIDs []uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM film_genres WHERE film_id = $1`, filmID); err != nil {
		r.log.Error("Failed to clear film genres",
			zap.Error(err),
			zap.String("film_id", filmID.String()),
		)
		return fmt.Errorf("clear film genres %s: %w", filmID.String(), err)
	}

	now := time.Now()
	for _, genreID := range genreIDs {
		query := `INSERT INTO film_genres (id, film_id, genre_id, created_at) VALUES ($1, $2, $3, $4)`
		if _, err := r.db.Exec(ctx, query, uuid.New(), filmID, genreID, now); err != nil {
			r.log.Error("Failed to link film genre",
				zap.Error(err),
				zap.String("film_id", filmID.String()),
				zap.String("genre_id", genreID.String()),
			)
			return fmt.Errorf("link film %s genre %s: %w", filmID.String(), genreID.String(), err)
		}
	}

	return nil
}
