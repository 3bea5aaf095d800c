package wire

import (
	"net/http"

	"tiket-bioskop/internal/adaptor"
	"tiket-bioskop/internal/data/repository"
	"tiket-bioskop/internal/hold"
	"tiket-bioskop/internal/usecase"
	"tiket-bioskop/pkg/middleware"
	"tiket-bioskop/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type App struct {
	Router *chi.Mux
}

// Wiring builds the service graph and the router.
func Wiring(
	repo *repository.Repository,
	holds *hold.Store,
	scheduler usecase.ExpiryScheduler,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, holds, scheduler, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireAuth(r, handler.Auth, repo, logger)
	wireFilm(r, handler.Film, repo, logger)
	wireJadwal(r, handler.Jadwal, repo, logger)
	wireTiket(r, handler.Tiket, repo, logger)
	wirePembayaran(r, handler.Payment, repo, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
