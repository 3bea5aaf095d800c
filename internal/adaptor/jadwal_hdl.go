package adaptor

import (
	"encoding/json"
	"net/http"

	"tiket-bioskop/internal/dto/request"
	"tiket-bioskop/internal/usecase"
	"tiket-bioskop/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// JadwalHandler serves schedules, per-schedule seat availability, seat
// holds, and the studio admin surface.
type JadwalHandler struct {
	service usecase.ScheduleService
	log     *zap.Logger
}

func NewJadwalHandler(service usecase.ScheduleService, log *zap.Logger) *JadwalHandler {
	return &JadwalHandler{
		service: service,
		log:     log.With(zap.String("handler", "jadwal")),
	}
}

// GetSchedules handles GET /api/jadwals (public)
func (h *JadwalHandler) GetSchedules(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePagination(r)

	resp, err := h.service.GetSchedules(r.Context(), request.PaginatedRequest{Page: page, PerPage: perPage})
	if err != nil {
		handleServiceError(h.log, w, err, "get schedules")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// GetSchedule handles GET /api/jadwals/{id} (public)
func (h *JadwalHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid schedule ID", nil)
		return
	}

	resp, err := h.service.GetSchedule(r.Context(), scheduleID)
	if err != nil {
		handleServiceError(h.log, w, err, "get schedule")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// GetSchedulesByFilm handles GET /api/jadwals/film/{id} (public)
func (h *JadwalHandler) GetSchedulesByFilm(w http.ResponseWriter, r *http.Request) {
	filmID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid film ID", nil)
		return
	}

	resp, err := h.service.GetSchedulesByFilm(r.Context(), filmID)
	if err != nil {
		handleServiceError(h.log, w, err, "get schedules by film")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// GetSeatAvailability handles GET /api/jadwals/{id}/kursi-kosong (public)
func (h *JadwalHandler) GetSeatAvailability(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid schedule ID", nil)
		return
	}

	resp, err := h.service.GetSeatAvailability(r.Context(), scheduleID)
	if err != nil {
		handleServiceError(h.log, w, err, "get seat availability")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// ToggleHold handles POST /api/jadwals/{id}/kursi/hold (protected)
func (h *JadwalHandler) ToggleHold(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	scheduleID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid schedule ID", nil)
		return
	}

	var req request.ToggleHoldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.ToggleHold(r.Context(), scheduleID, userID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "toggle hold")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// ReleaseHold handles DELETE /api/jadwals/{id}/kursi/hold (protected)
func (h *JadwalHandler) ReleaseHold(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	scheduleID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid schedule ID", nil)
		return
	}

	if err := h.service.ReleaseHold(r.Context(), scheduleID, userID); err != nil {
		handleServiceError(h.log, w, err, "release hold")
		return
	}

	utils.ResponseSuccess(w, "Hold released", nil)
}

// CreateSchedule handles POST /api/admin/jadwals (admin only)
func (h *JadwalHandler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req request.CreateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.CreateSchedule(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create schedule")
		return
	}

	utils.ResponseCreated(w, "Schedule created", resp)
}

// UpdateSchedule handles PUT /api/admin/jadwals/{id} (admin only)
func (h *JadwalHandler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid schedule ID", nil)
		return
	}

	var req request.UpdateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.UpdateSchedule(r.Context(), scheduleID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update schedule")
		return
	}

	utils.ResponseSuccess(w, "Schedule updated", resp)
}

// DeleteSchedule handles DELETE /api/admin/jadwals/{id} (admin only)
func (h *JadwalHandler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid schedule ID", nil)
		return
	}

	if err := h.service.DeleteSchedule(r.Context(), scheduleID); err != nil {
		handleServiceError(h.log, w, err, "delete schedule")
		return
	}

	utils.ResponseSuccess(w, "Schedule deleted", nil)
}

// GetStudios handles GET /api/studios (public)
func (h *JadwalHandler) GetStudios(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.GetStudios(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "get studios")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// CreateStudio handles POST /api/admin/studios (admin only)
func (h *JadwalHandler) CreateStudio(w http.ResponseWriter, r *http.Request) {
	var req request.CreateStudioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.CreateStudio(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create studio")
		return
	}

	utils.ResponseCreated(w, "Studio created", resp)
}

// UpdateStudio handles PUT /api/admin/studios/{id} (admin only)
func (h *JadwalHandler) UpdateStudio(w http.ResponseWriter, r *http.Request) {
	studioID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid studio ID", nil)
		return
	}

	var req request.UpdateStudioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.UpdateStudio(r.Context(), studioID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update studio")
		return
	}

	utils.ResponseSuccess(w, "Studio updated", resp)
}

// DeleteStudio handles DELETE /api/admin/studios/{id} (admin only)
func (h *JadwalHandler) DeleteStudio(w http.ResponseWriter, r *http.Request) {
	studioID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid studio ID", nil)
		return
	}

	if err := h.service.DeleteStudio(r.Context(), studioID); err != nil {
		handleServiceError(h.log, w, err, "delete studio")
		return
	}

	utils.ResponseSuccess(w, "Studio deleted", nil)
}
