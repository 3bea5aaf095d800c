package wire

import (
	"tiket-bioskop/internal/adaptor"
	"tiket-bioskop/internal/data/repository"
	"tiket-bioskop/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePembayaran(
	r chi.Router,
	paymentHandler *adaptor.PaymentHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Protected payment routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		r.Post("/api/pembayarans/checkout", paymentHandler.Checkout)
		r.Post("/api/pembayarans", paymentHandler.CreatePayment)
	})

	// Admin payment management
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		r.Get("/api/pembayarans", paymentHandler.GetPayments)
		r.Put("/api/pembayarans/{id}", paymentHandler.UpdatePaymentStatus)
	})
}
