package adaptor

import (
	"encoding/json"
	"net/http"

	"tiket-bioskop/internal/data/repository"
	"tiket-bioskop/internal/dto/request"
	"tiket-bioskop/internal/usecase"
	"tiket-bioskop/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type FilmHandler struct {
	service usecase.FilmService
	log     *zap.Logger
}

func NewFilmHandler(service usecase.FilmService, log *zap.Logger) *FilmHandler {
	return &FilmHandler{
		service: service,
		log:     log.With(zap.String("handler", "film")),
	}
}

// GetFilms handles GET /api/films (public). Supports optional genre
// and rating query filters.
func (h *FilmHandler) GetFilms(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePagination(r)
	filter := repository.FilmFilter{
		Genre:  r.URL.Query().Get("genre"),
		Rating: r.URL.Query().Get("rating"),
	}

	resp, err := h.service.GetFilms(r.Context(), filter, request.PaginatedRequest{Page: page, PerPage: perPage})
	if err != nil {
		handleServiceError(h.log, w, err, "get films")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// GetFilm handles GET /api/films/{id} (public)
func (h *FilmHandler) GetFilm(w http.ResponseWriter, r *http.Request) {
	filmID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid film ID", nil)
		return
	}

	resp, err := h.service.GetFilm(r.Context(), filmID)
	if err != nil {
		handleServiceError(h.log, w, err, "get film")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// CreateFilm handles POST /api/admin/films (admin only)
func (h *FilmHandler) CreateFilm(w http.ResponseWriter, r *http.Request) {
	var req request.CreateFilmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.CreateFilm(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create film")
		return
	}

	utils.ResponseCreated(w, "Film created", resp)
}

// UpdateFilm handles PUT /api/admin/films/{id} (admin only)
func (h *FilmHandler) UpdateFilm(w http.ResponseWriter, r *http.Request) {
	filmID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid film ID", nil)
		return
	}

	var req request.UpdateFilmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.UpdateFilm(r.Context(), filmID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update film")
		return
	}

	utils.ResponseSuccess(w, "Film updated", resp)
}

// DeleteFilm handles DELETE /api/admin/films/{id} (admin only)
func (h *FilmHandler) DeleteFilm(w http.ResponseWriter, r *http.Request) {
	filmID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid film ID", nil)
		return
	}

	if err := h.service.DeleteFilm(r.Context(), filmID); err != nil {
		handleServiceError(h.log, w, err, "delete film")
		return
	}

	utils.ResponseSuccess(w, "Film deleted", nil)
}
