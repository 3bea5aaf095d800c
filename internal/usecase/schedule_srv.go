package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tiket-bioskop/internal/data/entity"
	"tiket-bioskop/internal/data/repository"
	"tiket-bioskop/internal/dto/request"
	"tiket-bioskop/internal/dto/response"
	"tiket-bioskop/internal/hold"
	"tiket-bioskop/internal/seatmap"
	"tiket-bioskop/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SeatHolds is the slice of the redis hold store the services use.
type SeatHolds interface {
	Toggle(ctx context.Context, scheduleID, userID uuid.UUID, label string) (bool, error)
	HeldSeats(ctx context.Context, scheduleID, userID uuid.UUID) ([]string, error)
	Release(ctx context.Context, scheduleID, userID uuid.UUID) error
}

type ScheduleService interface {
	GetSchedules(ctx context.Context, page request.PaginatedRequest) (*response.PaginatedResponse[response.ScheduleResponse], error)
	GetSchedule(ctx context.Context, scheduleID uuid.UUID) (*response.ScheduleResponse, error)
	GetSchedulesByFilm(ctx context.Context, filmID uuid.UUID) ([]response.ScheduleResponse, error)
	GetSeatAvailability(ctx context.Context, scheduleID uuid.UUID) (*response.SeatAvailabilityResponse, error)
	ToggleHold(ctx context.Context, scheduleID, userID uuid.UUID, req *request.ToggleHoldRequest) (*response.HoldResponse, error)
	ReleaseHold(ctx context.Context, scheduleID, userID uuid.UUID) error

	CreateSchedule(ctx context.Context, req *request.CreateScheduleRequest) (*response.ScheduleResponse, error)
	UpdateSchedule(ctx context.Context, scheduleID uuid.UUID, req *request.UpdateScheduleRequest) (*response.ScheduleResponse, error)
	DeleteSchedule(ctx context.Context, scheduleID uuid.UUID) error

	GetStudios(ctx context.Context) ([]response.StudioResponse, error)
	CreateStudio(ctx context.Context, req *request.CreateStudioRequest) (*response.StudioResponse, error)
	UpdateStudio(ctx context.Context, studioID uuid.UUID, req *request.UpdateStudioRequest) (*response.StudioResponse, error)
	DeleteStudio(ctx context.Context, studioID uuid.UUID) error
}

type scheduleService struct {
	repo  *repository.Repository
	holds SeatHolds
	log   *zap.Logger
}

func NewScheduleService(repo *repository.Repository, holds SeatHolds, log *zap.Logger) ScheduleService {
	return &scheduleService{
		repo:  repo,
		holds: holds,
		log:   log.With(zap.String("service", "schedule")),
	}
}

func (s *scheduleService) GetSchedules(ctx context.Context, page request.PaginatedRequest) (*response.PaginatedResponse[response.ScheduleResponse], error) {
	schedules, err := s.repo.Schedule.FindAll(ctx, page.Limit(), page.Offset())
	if err != nil {
		s.log.Error("Failed to get schedules", zap.Error(err))
		return nil, fmt.Errorf("failed to get schedules")
	}

	total, err := s.repo.Schedule.Count(ctx)
	if err != nil {
		s.log.Error("Failed to count schedules", zap.Error(err))
		return nil, fmt.Errorf("failed to get schedules")
	}

	items := make([]response.ScheduleResponse, 0, len(schedules))
	for _, schedule := range schedules {
		items = append(items, s.enrichSchedule(ctx, schedule))
	}

	return response.NewPaginatedResponse(items, page.Page, page.Limit(), total), nil
}

func (s *scheduleService) GetSchedule(ctx context.Context, scheduleID uuid.UUID) (*response.ScheduleResponse, error) {
	schedule, err := s.repo.Schedule.FindByID(ctx, scheduleID)
	if err != nil {
		s.log.Error("Failed to get schedule", zap.Error(err), zap.String("schedule_id", scheduleID.String()))
		return nil, fmt.Errorf("failed to get schedule")
	}
	if schedule == nil {
		return nil, fmt.Errorf("schedule %s not found", scheduleID.String())
	}

	resp := s.enrichSchedule(ctx, schedule)
	return &resp, nil
}

func (s *scheduleService) GetSchedulesByFilm(ctx context.Context, filmID uuid.UUID) ([]response.ScheduleResponse, error) {
	film, err := s.repo.Film.FindByID(ctx, filmID)
	if err != nil {
		s.log.Error("Failed to find film", zap.Error(err), zap.String("film_id", filmID.String()))
		return nil, fmt.Errorf("failed to find film")
	}
	if film == nil {
		return nil, fmt.Errorf("film %s not found", filmID.String())
	}

	schedules, err := s.repo.Schedule.FindByFilmID(ctx, filmID)
	if err != nil {
		s.log.Error("Failed to get schedules by film", zap.Error(err), zap.String("film_id", filmID.String()))
		return nil, fmt.Errorf("failed to get schedules")
	}

	items := make([]response.ScheduleResponse, 0, len(schedules))
	for _, schedule := range schedules {
		items = append(items, s.enrichSchedule(ctx, schedule))
	}

	return items, nil
}

// GetSeatAvailability rebuilds the grid view for a schedule. The
// occupied list comes from seats of tickets that still block; the
// available list is the rest of the studio's grid.
func (s *scheduleService) GetSeatAvailability(ctx context.Context, scheduleID uuid.UUID) (*response.SeatAvailabilityResponse, error) {
	schedule, err := s.repo.Schedule.FindByID(ctx, scheduleID)
	if err != nil {
		s.log.Error("Failed to find schedule", zap.Error(err), zap.String("schedule_id", scheduleID.String()))
		return nil, fmt.Errorf("failed to find schedule")
	}
	if schedule == nil {
		return nil, fmt.Errorf("schedule %s not found", scheduleID.String())
	}

	av, studio, err := loadAvailability(ctx, s.repo, schedule)
	if err != nil {
		s.log.Error("Failed to load seat availability",
			zap.Error(err), zap.String("schedule_id", scheduleID.String()))
		return nil, err
	}

	return &response.SeatAvailabilityResponse{
		ScheduleID:  schedule.ID.String(),
		StudioName:  studio.Name,
		SeatRows:    av.Layout.Rows,
		SeatsPerRow: av.Layout.SeatsPerRow,
		Available:   av.Available,
		Occupied:    av.Occupied,
	}, nil
}

// ToggleHold applies one seat click against the live grid and the
// caller's redis hold set. Clicks on occupied seats and clicks past the
// per-booking cap are rejected without touching the hold. A seat the
// caller already holds may always be toggled off, even when the grid
// has since filled it.
func (s *scheduleService) ToggleHold(ctx context.Context, scheduleID, userID uuid.UUID, req *request.ToggleHoldRequest) (*response.HoldResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	schedule, err := s.repo.Schedule.FindByID(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to find schedule")
	}
	if schedule == nil {
		return nil, fmt.Errorf("schedule %s not found", scheduleID.String())
	}

	av, _, err := loadAvailability(ctx, s.repo, schedule)
	if err != nil {
		return nil, err
	}

	alreadyHeld := false
	if held, err := s.holds.HeldSeats(ctx, scheduleID, userID); err == nil {
		for _, label := range held {
			if label == req.SeatLabel {
				alreadyHeld = true
				break
			}
		}
	} else {
		s.log.Warn("Failed to list held seats", zap.Error(err))
	}

	result := seatmap.Added
	switch {
	case !av.Layout.Contains(req.SeatLabel):
		result = seatmap.RejectedUnknown
	case !alreadyHeld && !av.IsAvailable(req.SeatLabel):
		result = seatmap.RejectedOccupied
	default:
		added, err := s.holds.Toggle(ctx, scheduleID, userID, req.SeatLabel)
		switch {
		case errors.Is(err, hold.ErrSeatHeld):
			result = seatmap.RejectedOccupied
		case errors.Is(err, hold.ErrHoldFull):
			result = seatmap.RejectedFull
		case err != nil:
			s.log.Error("Failed to toggle hold",
				zap.Error(err),
				zap.String("schedule_id", scheduleID.String()),
				zap.String("seat", req.SeatLabel),
			)
			return nil, fmt.Errorf("failed to toggle hold")
		case !added:
			result = seatmap.Removed
		}
	}

	held, err := s.holds.HeldSeats(ctx, scheduleID, userID)
	if err != nil {
		s.log.Warn("Failed to list held seats", zap.Error(err))
		held = nil
	}
	if held == nil {
		held = []string{}
	}

	return &response.HoldResponse{
		Result:    result.String(),
		HeldSeats: held,
	}, nil
}

func (s *scheduleService) ReleaseHold(ctx context.Context, scheduleID, userID uuid.UUID) error {
	if err := s.holds.Release(ctx, scheduleID, userID); err != nil {
		s.log.Error("Failed to release hold",
			zap.Error(err),
			zap.String("schedule_id", scheduleID.String()),
			zap.String("user_id", userID.String()),
		)
		return fmt.Errorf("failed to release hold")
	}
	return nil
}

func (s *scheduleService) CreateSchedule(ctx context.Context, req *request.CreateScheduleRequest) (*response.ScheduleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create schedule validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	filmID, err := uuid.Parse(req.FilmID)
	if err != nil {
		return nil, fmt.Errorf("invalid film ID")
	}
	studioID, err := uuid.Parse(req.StudioID)
	if err != nil {
		return nil, fmt.Errorf("invalid studio ID")
	}

	film, err := s.repo.Film.FindByID(ctx, filmID)
	if err != nil {
		return nil, fmt.Errorf("failed to find film")
	}
	if film == nil {
		return nil, fmt.Errorf("film %s not found", filmID.String())
	}

	studio, err := s.repo.Studio.FindByID(ctx, studioID)
	if err != nil {
		return nil, fmt.Errorf("failed to find studio")
	}
	if studio == nil {
		return nil, fmt.Errorf("studio %s not found", studioID.String())
	}

	showDate, _ := time.Parse("2006-01-02", req.ShowDate)
	showTime, _ := time.Parse("15:04", req.ShowTime)

	if showDate.Before(time.Now().Truncate(24 * time.Hour)) {
		return nil, fmt.Errorf("show date is in the past")
	}

	now := time.Now()
	schedule := &entity.Schedule{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		FilmID:   filmID,
		StudioID: studioID,
		ShowDate: showDate,
		ShowTime: showTime,
		Price:    req.Price,
	}

	if err := s.repo.Schedule.Create(ctx, schedule); err != nil {
		s.log.Error("Failed to create schedule", zap.Error(err))
		return nil, fmt.Errorf("failed to create schedule")
	}

	s.log.Info("Schedule created",
		zap.String("schedule_id", schedule.ID.String()),
		zap.String("film_id", filmID.String()),
		zap.String("studio_id", studioID.String()),
	)

	resp := response.ScheduleToResponse(schedule, film, studio)
	return &resp, nil
}

func (s *scheduleService) UpdateSchedule(ctx context.Context, scheduleID uuid.UUID, req *request.UpdateScheduleRequest) (*response.ScheduleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update schedule validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	schedule, err := s.repo.Schedule.FindByID(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to find schedule")
	}
	if schedule == nil {
		return nil, fmt.Errorf("schedule %s not found", scheduleID.String())
	}

	if req.ShowDate != nil {
		showDate, _ := time.Parse("2006-01-02", *req.ShowDate)
		schedule.ShowDate = showDate
	}
	if req.ShowTime != nil {
		showTime, _ := time.Parse("15:04", *req.ShowTime)
		schedule.ShowTime = showTime
	}
	if req.Price != nil {
		schedule.Price = *req.Price
	}
	schedule.UpdatedAt = time.Now()

	if err := s.repo.Schedule.Update(ctx, schedule); err != nil {
		s.log.Error("Failed to update schedule", zap.Error(err), zap.String("schedule_id", scheduleID.String()))
		return nil, fmt.Errorf("failed to update schedule")
	}

	resp := s.enrichSchedule(ctx, schedule)
	return &resp, nil
}

func (s *scheduleService) DeleteSchedule(ctx context.Context, scheduleID uuid.UUID) error {
	occupied, err := s.repo.TicketSeat.FindOccupiedLabelsBySchedule(ctx, scheduleID)
	if err != nil {
		s.log.Error("Failed to check booked seats",
			zap.Error(err), zap.String("schedule_id", scheduleID.String()))
		return fmt.Errorf("failed to delete schedule")
	}
	if len(occupied) > 0 {
		return fmt.Errorf("cannot delete schedule with %d booked seats", len(occupied))
	}

	if err := s.repo.Schedule.Delete(ctx, scheduleID); err != nil {
		s.log.Error("Failed to delete schedule", zap.Error(err), zap.String("schedule_id", scheduleID.String()))
		return err
	}

	return nil
}

func (s *scheduleService) GetStudios(ctx context.Context) ([]response.StudioResponse, error) {
	studios, err := s.repo.Studio.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get studios", zap.Error(err))
		return nil, fmt.Errorf("failed to get studios")
	}

	items := make([]response.StudioResponse, 0, len(studios))
	for _, studio := range studios {
		items = append(items, response.StudioToResponse(studio))
	}

	return items, nil
}

func (s *scheduleService) CreateStudio(ctx context.Context, req *request.CreateStudioRequest) (*response.StudioResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create studio validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	layout := seatmap.Layout{Rows: req.SeatRows, SeatsPerRow: req.SeatsPerRow}
	if !layout.Valid() {
		return nil, fmt.Errorf("invalid seat layout %dx%d", req.SeatRows, req.SeatsPerRow)
	}

	now := time.Now()
	studio := &entity.Studio{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.Name,
		SeatRows:    req.SeatRows,
		SeatsPerRow: req.SeatsPerRow,
	}

	if err := s.repo.Studio.Create(ctx, studio); err != nil {
		s.log.Error("Failed to create studio", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("failed to create studio")
	}

	s.log.Info("Studio created",
		zap.String("studio_id", studio.ID.String()),
		zap.Int("seats", layout.Size()),
	)

	resp := response.StudioToResponse(studio)
	return &resp, nil
}

func (s *scheduleService) UpdateStudio(ctx context.Context, studioID uuid.UUID, req *request.UpdateStudioRequest) (*response.StudioResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update studio validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	studio, err := s.repo.Studio.FindByID(ctx, studioID)
	if err != nil {
		return nil, fmt.Errorf("failed to find studio")
	}
	if studio == nil {
		return nil, fmt.Errorf("studio %s not found", studioID.String())
	}

	if req.Name != nil {
		studio.Name = *req.Name
	}
	if req.SeatRows != nil {
		studio.SeatRows = *req.SeatRows
	}
	if req.SeatsPerRow != nil {
		studio.SeatsPerRow = *req.SeatsPerRow
	}

	layout := seatmap.Layout{Rows: studio.SeatRows, SeatsPerRow: studio.SeatsPerRow}
	if !layout.Valid() {
		return nil, fmt.Errorf("invalid seat layout %dx%d", studio.SeatRows, studio.SeatsPerRow)
	}

	studio.UpdatedAt = time.Now()

	if err := s.repo.Studio.Update(ctx, studio); err != nil {
		s.log.Error("Failed to update studio", zap.Error(err), zap.String("studio_id", studioID.String()))
		return nil, fmt.Errorf("failed to update studio")
	}

	resp := response.StudioToResponse(studio)
	return &resp, nil
}

func (s *scheduleService) DeleteStudio(ctx context.Context, studioID uuid.UUID) error {
	if err := s.repo.Studio.Delete(ctx, studioID); err != nil {
		s.log.Error("Failed to delete studio", zap.Error(err), zap.String("studio_id", studioID.String()))
		return err
	}
	return nil
}

// enrichSchedule fills the film and studio names best effort. A lookup
// failure degrades to a bare schedule rather than failing the list.
func (s *scheduleService) enrichSchedule(ctx context.Context, schedule *entity.Schedule) response.ScheduleResponse {
	film, err := s.repo.Film.FindByID(ctx, schedule.FilmID)
	if err != nil {
		s.log.Warn("Failed to load film for schedule",
			zap.Error(err), zap.String("schedule_id", schedule.ID.String()))
		film = nil
	}

	studio, err := s.repo.Studio.FindByID(ctx, schedule.StudioID)
	if err != nil {
		s.log.Warn("Failed to load studio for schedule",
			zap.Error(err), zap.String("schedule_id", schedule.ID.String()))
		studio = nil
	}

	return response.ScheduleToResponse(schedule, film, studio)
}

// loadAvailability reconciles a schedule's grid from its studio layout
// and the seats of blocking tickets.
func loadAvailability(ctx context.Context, repo *repository.Repository, schedule *entity.Schedule) (seatmap.Availability, *entity.Studio, error) {
	studio, err := repo.Studio.FindByID(ctx, schedule.StudioID)
	if err != nil {
		return seatmap.Availability{}, nil, fmt.Errorf("failed to find studio")
	}
	if studio == nil {
		return seatmap.Availability{}, nil, fmt.Errorf("studio %s not found", schedule.StudioID.String())
	}

	layout := seatmap.Layout{Rows: studio.SeatRows, SeatsPerRow: studio.SeatsPerRow}
	if !layout.Valid() {
		layout = seatmap.DefaultLayout()
	}

	occupied, err := repo.TicketSeat.FindOccupiedLabelsBySchedule(ctx, schedule.ID)
	if err != nil {
		return seatmap.Availability{}, nil, fmt.Errorf("failed to load occupied seats")
	}

	return seatmap.ReconcileOccupied(layout, occupied), studio, nil
}
