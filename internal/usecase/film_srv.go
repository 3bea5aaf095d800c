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

type FilmService interface {
	GetFilms(ctx context.Context, filter repository.FilmFilter, page request.PaginatedRequest) (*response.PaginatedResponse[response.FilmResponse], error)
	GetFilm(ctx context.Context, filmID uuid.UUID) (*response.FilmResponse, error)
	CreateFilm(ctx context.Context, req *request.CreateFilmRequest) (*response.FilmResponse, error)
	UpdateFilm(ctx context.Context, filmID uuid.UUID, req *request.UpdateFilmRequest) (*response.FilmResponse, error)
	DeleteFilm(ctx context.Context, filmID uuid.UUID) error
}

type filmService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewFilmService(repo *repository.Repository, log *zap.Logger) FilmService {
	return &filmService{
		repo: repo,
		log:  log.With(zap.String("service", "film")),
	}
}

func (s *filmService) GetFilms(ctx context.Context, filter repository.FilmFilter, page request.PaginatedRequest) (*response.PaginatedResponse[response.FilmResponse], error) {
	films, err := s.repo.Film.FindAll(ctx, filter, page.Limit(), page.Offset())
	if err != nil {
		s.log.Error("Failed to get films", zap.Error(err))
		return nil, fmt.Errorf("failed to get films")
	}

	total, err := s.repo.Film.Count(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count films", zap.Error(err))
		return nil, fmt.Errorf("failed to get films")
	}

	items := make([]response.FilmResponse, 0, len(films))
	for _, film := range films {
		genres, err := s.repo.Genre.FindNamesByFilmID(ctx, film.ID)
		if err != nil {
			// A film without its genre list is still worth returning
			s.log.Warn("Failed to load genres for film",
				zap.Error(err), zap.String("film_id", film.ID.String()))
			genres = nil
		}
		items = append(items, response.FilmToResponse(film, genres))
	}

	return response.NewPaginatedResponse(items, page.Page, page.Limit(), total), nil
}

func (s *filmService) GetFilm(ctx context.Context, filmID uuid.UUID) (*response.FilmResponse, error) {
	film, err := s.repo.Film.FindByID(ctx, filmID)
	if err != nil {
		s.log.Error("Failed to get film", zap.Error(err), zap.String("film_id", filmID.String()))
		return nil, fmt.Errorf("failed to get film")
	}
	if film == nil {
		return nil, fmt.Errorf("film %s not found", filmID.String())
	}

	genres, err := s.repo.Genre.FindNamesByFilmID(ctx, film.ID)
	if err != nil {
		s.log.Warn("Failed to load genres for film",
			zap.Error(err), zap.String("film_id", film.ID.String()))
		genres = nil
	}

	resp := response.FilmToResponse(film, genres)
	return &resp, nil
}

func (s *filmService) CreateFilm(ctx context.Context, req *request.CreateFilmRequest) (*response.FilmResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create film validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	film := &entity.Film{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:             req.Title,
		Description:       req.Description,
		PosterURL:         req.PosterURL,
		DurationInMinutes: req.DurationInMinutes,
		ContentRating:     entity.ContentRating(req.ContentRating),
	}

	if err := s.repo.Film.Create(ctx, film); err != nil {
		s.log.Error("Failed to create film", zap.Error(err), zap.String("title", req.Title))
		return nil, fmt.Errorf("failed to create film")
	}

	genres, err := s.linkGenres(ctx, film.ID, req.Genres)
	if err != nil {
		return nil, err
	}

	s.log.Info("Film created",
		zap.String("film_id", film.ID.String()),
		zap.String("title", film.Title))

	resp := response.FilmToResponse(film, genres)
	return &resp, nil
}

func (s *filmService) UpdateFilm(ctx context.Context, filmID uuid.UUID, req *request.UpdateFilmRequest) (*response.FilmResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update film validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	film, err := s.repo.Film.FindByID(ctx, filmID)
	if err != nil {
		s.log.Error("Failed to find film", zap.Error(err), zap.String("film_id", filmID.String()))
		return nil, fmt.Errorf("failed to find film")
	}
	if film == nil {
		return nil, fmt.Errorf("film %s not found", filmID.String())
	}

	if req.Title != nil {
		film.Title = *req.Title
	}
	if req.Description != nil {
		film.Description = req.Description
	}
	if req.PosterURL != nil {
		film.PosterURL = req.PosterURL
	}
	if req.DurationInMinutes != nil {
		film.DurationInMinutes = *req.DurationInMinutes
	}
	if req.ContentRating != nil {
		film.ContentRating = entity.ContentRating(*req.ContentRating)
	}
	film.UpdatedAt = time.Now()

	if err := s.repo.Film.Update(ctx, film); err != nil {
		s.log.Error("Failed to update film", zap.Error(err), zap.String("film_id", filmID.String()))
		return nil, fmt.Errorf("failed to update film")
	}

	var genres []string
	if req.Genres != nil {
		genres, err = s.linkGenres(ctx, film.ID, req.Genres)
		if err != nil {
			return nil, err
		}
	} else {
		genres, err = s.repo.Genre.FindNamesByFilmID(ctx, film.ID)
		if err != nil {
			s.log.Warn("Failed to load genres for film",
				zap.Error(err), zap.String("film_id", film.ID.String()))
			genres = nil
		}
	}

	s.log.Info("Film updated", zap.String("film_id", film.ID.String()))

	resp := response.FilmToResponse(film, genres)
	return &resp, nil
}

func (s *filmService) DeleteFilm(ctx context.Context, filmID uuid.UUID) error {
	// A film with schedules cannot be removed without orphaning tickets
	schedules, err := s.repo.Schedule.FindByFilmID(ctx, filmID)
	if err != nil {
		s.log.Error("Failed to check schedules for film",
			zap.Error(err), zap.String("film_id", filmID.String()))
		return fmt.Errorf("failed to delete film")
	}
	if len(schedules) > 0 {
		return fmt.Errorf("cannot delete film with %d schedules", len(schedules))
	}

	if err := s.repo.Film.Delete(ctx, filmID); err != nil {
		s.log.Error("Failed to delete film", zap.Error(err), zap.String("film_id", filmID.String()))
		return err
	}

	return nil
}

// linkGenres resolves genre names to rows, creating missing ones, and
// rewrites the film's links. Returns the names in the stored order.
func (s *filmService) linkGenres(ctx context.Context, filmID uuid.UUID, names []string) ([]string, error) {
	genreIDs := make([]uuid.UUID, 0, len(names))
	resolved := make([]string, 0, len(names))

	for _, name := range names {
		genre, err := s.repo.Genre.FindOrCreateByName(ctx, name)
		if err != nil {
			s.log.Error("Failed to resolve genre", zap.Error(err), zap.String("name", name))
			return nil, fmt.Errorf("failed to resolve genre %s", name)
		}
		genreIDs = append(genreIDs, genre.ID)
		resolved = append(resolved, genre.Name)
	}

	if err := s.repo.Genre.ReplaceFilmGenres(ctx, filmID, genreIDs); err != nil {
		s.log.Error("Failed to link genres", zap.Error(err), zap.String("film_id", filmID.String()))
		return nil, fmt.Errorf("failed to link genres")
	}

	return resolved, nil
}
