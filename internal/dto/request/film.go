package request

type CreateFilmRequest struct {
	Title             string   `json:"title" validate:"required,min=1,max=200"`
	Description       *string  `json:"description,omitempty"`
	PosterURL         *string  `json:"poster_url,omitempty" validate:"omitempty,url"`
	DurationInMinutes int      `json:"duration_in_minutes" validate:"required,min=1,max=600"`
	ContentRating     string   `json:"content_rating" validate:"required,oneof=general children teen adult"`
	Genres            []string `json:"genres" validate:"required,min=1,dive,min=1,max=50"`
}

type UpdateFilmRequest struct {
	Title             *string  `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description       *string  `json:"description,omitempty"`
	PosterURL         *string  `json:"poster_url,omitempty" validate:"omitempty,url"`
	DurationInMinutes *int     `json:"duration_in_minutes,omitempty" validate:"omitempty,min=1,max=600"`
	ContentRating     *string  `json:"content_rating,omitempty" validate:"omitempty,oneof=general children teen adult"`
	Genres            []string `json:"genres,omitempty" validate:"omitempty,min=1,dive,min=1,max=50"`
}
