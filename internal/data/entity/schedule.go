package entity

import (
	"time"

	"github.com/google/uuid"
)

type Schedule struct {
	Base
	FilmID   uuid.UUID `db:"film_id"`
	StudioID uuid.UUID `db:"studio_id"`
	ShowDate time.Time `db:"show_date"`
	ShowTime time.Time `db:"show_time"`
	Price    int64     `db:"price"` // integer rupiah, no fractional units
}
