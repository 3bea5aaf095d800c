package entity

import "github.com/google/uuid"

type FilmGenre struct {
	BaseSimple
	FilmID  uuid.UUID `db:"film_id"`
	GenreID uuid.UUID `db:"genre_id"`
}
