package entity

type ContentRating string

const (
	RatingGeneral  ContentRating = "general"
	RatingChildren ContentRating = "children"
	RatingTeen     ContentRating = "teen"
	RatingAdult    ContentRating = "adult"
)

type Film struct {
	Base
	Title             string        `db:"title"`
	Description       *string       `db:"description"`
	PosterURL         *string       `db:"poster_url"`
	DurationInMinutes int           `db:"duration_in_minutes"`
	ContentRating     ContentRating `db:"content_rating"`
}
