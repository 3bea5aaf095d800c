package usecase

import (
	"tiket-bioskop/internal/data/repository"
	"tiket-bioskop/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth     AuthService
	User     UserService
	Film     FilmService
	Schedule ScheduleService
	Ticket   TicketService
	Payment  PaymentService
}

func NewService(
	repo *repository.Repository,
	holds SeatHolds,
	scheduler ExpiryScheduler,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:     NewAuthService(repo, config, log),
		User:     NewUserService(repo.User, log),
		Film:     NewFilmService(repo, log),
		Schedule: NewScheduleService(repo, holds, log),
		Ticket:   NewTicketService(repo, holds, scheduler, config, log),
		Payment:  NewPaymentService(repo, log),
	}
}
