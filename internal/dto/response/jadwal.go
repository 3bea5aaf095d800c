package response

import (
	"time"

	"tiket-bioskop/internal/data/entity"
)

type StudioResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	SeatRows    int    `json:"seat_rows"`
	SeatsPerRow int    `json:"seats_per_row"`
	TotalSeats  int    `json:"total_seats"`
}

type ScheduleResponse struct {
	ID         string    `json:"id"`
	FilmID     string    `json:"film_id"`
	FilmTitle  string    `json:"film_title,omitempty"`
	StudioID   string    `json:"studio_id"`
	StudioName string    `json:"studio_name,omitempty"`
	ShowDate   string    `json:"show_date"`
	ShowTime   string    `json:"show_time"`
	Price      int64     `json:"price"`
	CreatedAt  time.Time `json:"created_at"`
}

// SeatAvailabilityResponse is the kursi-kosong payload. Available and
// occupied partition the full grid; both are row-major.
type SeatAvailabilityResponse struct {
	ScheduleID  string   `json:"schedule_id"`
	StudioName  string   `json:"studio_name"`
	SeatRows    int      `json:"seat_rows"`
	SeatsPerRow int      `json:"seats_per_row"`
	Available   []string `json:"available_seats"`
	Occupied    []string `json:"occupied_seats"`
}

// HoldResponse reports a seat-click outcome and the resulting hold set.
type HoldResponse struct {
	Result    string   `json:"result"`
	HeldSeats []string `json:"held_seats"`
}

func StudioToResponse(studio *entity.Studio) StudioResponse {
	return StudioResponse{
		ID:          studio.ID.String(),
		Name:        studio.Name,
		SeatRows:    studio.SeatRows,
		SeatsPerRow: studio.SeatsPerRow,
		TotalSeats:  studio.SeatRows * studio.SeatsPerRow,
	}
}

func ScheduleToResponse(schedule *entity.Schedule, film *entity.Film, studio *entity.Studio) ScheduleResponse {
	resp := ScheduleResponse{
		ID:        schedule.ID.String(),
		FilmID:    schedule.FilmID.String(),
		StudioID:  schedule.StudioID.String(),
		ShowDate:  schedule.ShowDate.Format("2006-01-02"),
		ShowTime:  schedule.ShowTime.Format("15:04"),
		Price:     schedule.Price,
		CreatedAt: schedule.CreatedAt,
	}
	if film != nil {
		resp.FilmTitle = film.Title
	}
	if studio != nil {
		resp.StudioName = studio.Name
	}
	return resp
}
