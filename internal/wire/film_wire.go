package wire

import (
	"tiket-bioskop/internal/adaptor"
	"tiket-bioskop/internal/data/repository"
	"tiket-bioskop/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireFilm(
	r chi.Router,
	filmHandler *adaptor.FilmHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Public catalog
	r.Get("/api/films", filmHandler.GetFilms)
	r.Get("/api/films/{id}", filmHandler.GetFilm)

	// Admin catalog management
	r.Route("/api/admin/films", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		r.Post("/", filmHandler.CreateFilm)
		r.Put("/{id}", filmHandler.UpdateFilm)
		r.Delete("/{id}", filmHandler.DeleteFilm)
	})
}
