package wire

import (
	"tiket-bioskop/internal/adaptor"
	"tiket-bioskop/internal/data/repository"
	"tiket-bioskop/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireTiket(
	r chi.Router,
	tiketHandler *adaptor.TiketHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Protected booking routes. Fixed paths (me, batch) are wired
	// before {id} so chi does not swallow them as IDs.
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		r.Post("/api/tikets", tiketHandler.CreateTicket)
		r.Post("/api/tikets/batch", tiketHandler.CreateTicketBatch)
		r.Get("/api/tikets/me", tiketHandler.GetMyTickets)
		r.Get("/api/tikets/{id}", tiketHandler.GetTicket)
		r.Get("/api/tikets/{id}/summary", tiketHandler.GetTicketSummary)
		r.Get("/api/tikets/{id}/qr", tiketHandler.GetTicketQR)
	})

	// Gate scanning and ticket administration
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		r.Post("/api/tikets/validate", tiketHandler.ValidateTicket)
		r.Get("/api/admin/tikets", tiketHandler.GetTickets)
		r.Put("/api/admin/tikets/{id}/cancel", tiketHandler.CancelTicket)
	})
}
