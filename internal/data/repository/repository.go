package repository

import (
	"tiket-bioskop/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User       UserRepository
	Session    SessionRepository
	Film       FilmRepository
	Genre      GenreRepository
	Studio     StudioRepository
	Schedule   ScheduleRepository
	Ticket     TicketRepository
	TicketSeat TicketSeatRepository
	Payment    PaymentRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:       NewUserRepository(db, log),
		Session:    NewSessionRepository(db, log),
		Film:       NewFilmRepository(db, log),
		Genre:      NewGenreRepository(db, log),
		Studio:     NewStudioRepository(db, log),
		Schedule:   NewScheduleRepository(db, log),
		Ticket:     NewTicketRepository(db, log),
		TicketSeat: NewTicketSeatRepository(db, log),
		Payment:    NewPaymentRepository(db, log),
	}
}
