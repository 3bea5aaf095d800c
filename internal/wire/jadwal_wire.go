package wire

import (
	"tiket-bioskop/internal/adaptor"
	"tiket-bioskop/internal/data/repository"
	"tiket-bioskop/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireJadwal(
	r chi.Router,
	jadwalHandler *adaptor.JadwalHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Public: browse schedules and the live seat grid. The fixed
	// /film segment is wired before {id} so chi matches it first.
	r.Get("/api/jadwals", jadwalHandler.GetSchedules)
	r.Get("/api/jadwals/film/{id}", jadwalHandler.GetSchedulesByFilm)
	r.Get("/api/jadwals/{id}", jadwalHandler.GetSchedule)
	r.Get("/api/jadwals/{id}/kursi-kosong", jadwalHandler.GetSeatAvailability)
	r.Get("/api/studios", jadwalHandler.GetStudios)

	// Protected: seat holds while picking
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		r.Post("/api/jadwals/{id}/kursi/hold", jadwalHandler.ToggleHold)
		r.Delete("/api/jadwals/{id}/kursi/hold", jadwalHandler.ReleaseHold)
	})

	// Admin schedule management
	r.Route("/api/admin/jadwals", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		r.Post("/", jadwalHandler.CreateSchedule)
		r.Put("/{id}", jadwalHandler.UpdateSchedule)
		r.Delete("/{id}", jadwalHandler.DeleteSchedule)
	})

	// Admin studio management
	r.Route("/api/admin/studios", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		r.Post("/", jadwalHandler.CreateStudio)
		r.Put("/{id}", jadwalHandler.UpdateStudio)
		r.Delete("/{id}", jadwalHandler.DeleteStudio)
	})
}
