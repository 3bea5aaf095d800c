package request

type CreateScheduleRequest struct {
	FilmID   string `json:"film_id" validate:"required,uuid4"`
	StudioID string `json:"studio_id" validate:"required,uuid4"`
	ShowDate string `json:"show_date" validate:"required,datetime=2006-01-02"`
	ShowTime string `json:"show_time" validate:"required,datetime=15:04"`
	Price    int64  `json:"price" validate:"required,min=1000"`
}

type UpdateScheduleRequest struct {
	ShowDate *string `json:"show_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ShowTime *string `json:"show_time,omitempty" validate:"omitempty,datetime=15:04"`
	Price    *int64  `json:"price,omitempty" validate:"omitempty,min=1000"`
}

type CreateStudioRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=50"`
	SeatRows    int    `json:"seat_rows" validate:"required,min=1,max=26"`
	SeatsPerRow int    `json:"seats_per_row" validate:"required,min=1,max=50"`
}

type UpdateStudioRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=50"`
	SeatRows    *int    `json:"seat_rows,omitempty" validate:"omitempty,min=1,max=26"`
	SeatsPerRow *int    `json:"seats_per_row,omitempty" validate:"omitempty,min=1,max=50"`
}

// ToggleHoldRequest toggles one seat in the caller's hold set for a
// schedule, mirroring a seat click.
type ToggleHoldRequest struct {
	SeatLabel string `json:"seat_label" validate:"required,min=2,max=4"`
}
