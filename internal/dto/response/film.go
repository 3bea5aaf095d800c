package response

import (
	"time"

	"tiket-bioskop/internal/data/entity"
)

type FilmResponse struct {
	ID                string               `json:"id"`
	Title             string               `json:"title"`
	Description       *string              `json:"description,omitempty"`
	PosterURL         *string              `json:"poster_url,omitempty"`
	DurationInMinutes int                  `json:"duration_in_minutes"`
	ContentRating     entity.ContentRating `json:"content_rating"`
	Genres            []string             `json:"genres"`
	CreatedAt         time.Time            `json:"created_at"`
}

func FilmToResponse(film *entity.Film, genres []string) FilmResponse {
	if genres == nil {
		genres = []string{}
	}
	return FilmResponse{
		ID:                film.ID.String(),
		Title:             film.Title,
		Description:       film.Description,
		PosterURL:         film.PosterURL,
		DurationInMinutes: film.DurationInMinutes,
		ContentRating:     film.ContentRating,
		Genres:            genres,
		CreatedAt:         film.CreatedAt,
	}
}
