package adaptor

import (
	"encoding/json"
	"net/http"

	"tiket-bioskop/internal/data/entity"
	"tiket-bioskop/internal/dto/request"
	"tiket-bioskop/internal/qr"
	"tiket-bioskop/internal/usecase"
	"tiket-bioskop/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TiketHandler struct {
	service usecase.TicketService
	log     *zap.Logger
}

func NewTiketHandler(service usecase.TicketService, log *zap.Logger) *TiketHandler {
	return &TiketHandler{
		service: service,
		log:     log.With(zap.String("handler", "tiket")),
	}
}

// CreateTicket handles POST /api/tikets (protected)
func (h *TiketHandler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.CreateTicket(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create ticket")
		return
	}

	utils.ResponseCreated(w, "Ticket created", resp)
}

// CreateTicketBatch handles POST /api/tikets/batch (protected)
func (h *TiketHandler) CreateTicketBatch(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.BatchCreateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.CreateTicketBatch(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create ticket batch")
		return
	}

	// 201 even when some items failed; the per-item errors tell the story
	utils.ResponseCreated(w, "Batch processed", resp)
}

// GetMyTickets handles GET /api/tikets/me (protected)
func (h *TiketHandler) GetMyTickets(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	page, perPage := parsePagination(r)

	resp, err := h.service.GetMyTickets(r.Context(), userID, request.PaginatedRequest{Page: page, PerPage: perPage})
	if err != nil {
		handleServiceError(h.log, w, err, "get my tickets")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// GetTicket handles GET /api/tikets/{id} (protected)
func (h *TiketHandler) GetTicket(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	ticketID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid ticket ID", nil)
		return
	}

	resp, err := h.service.GetTicket(r.Context(), ticketID, userID, isAdmin(r))
	if err != nil {
		handleServiceError(h.log, w, err, "get ticket")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// GetTicketSummary handles GET /api/tikets/{id}/summary (protected)
func (h *TiketHandler) GetTicketSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	ticketID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid ticket ID", nil)
		return
	}

	resp, err := h.service.GetTicketSummary(r.Context(), ticketID, userID, isAdmin(r))
	if err != nil {
		handleServiceError(h.log, w, err, "get ticket summary")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// GetTicketQR handles GET /api/tikets/{id}/qr (protected). Responds
// with a PNG, not the JSON envelope.
func (h *TiketHandler) GetTicketQR(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	ticketID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid ticket ID", nil)
		return
	}

	size := utils.ParseInt(r.URL.Query().Get("size"), qr.DefaultSize)

	png, err := h.service.GetTicketQR(r.Context(), ticketID, userID, isAdmin(r), size)
	if err != nil {
		handleServiceError(h.log, w, err, "get ticket QR")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// ValidateTicket handles POST /api/tikets/validate (admin only)
func (h *TiketHandler) ValidateTicket(w http.ResponseWriter, r *http.Request) {
	var req request.ValidateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.ValidateTicket(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "validate ticket")
		return
	}

	// The scan always gets 200; valid/reason carries the verdict
	utils.ResponseSuccess(w, "success", resp)
}

// GetTickets handles GET /api/admin/tikets (admin only)
func (h *TiketHandler) GetTickets(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePagination(r)

	resp, err := h.service.GetTickets(r.Context(), request.PaginatedRequest{Page: page, PerPage: perPage})
	if err != nil {
		handleServiceError(h.log, w, err, "get tickets")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// CancelTicket handles PUT /api/admin/tikets/{id}/cancel (admin only)
func (h *TiketHandler) CancelTicket(w http.ResponseWriter, r *http.Request) {
	ticketID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid ticket ID", nil)
		return
	}

	if err := h.service.CancelTicket(r.Context(), ticketID); err != nil {
		handleServiceError(h.log, w, err, "cancel ticket")
		return
	}

	utils.ResponseSuccess(w, "Ticket cancelled", nil)
}

func isAdmin(r *http.Request) bool {
	role, ok := utils.GetRoleFromContext(r.Context())
	return ok && role == string(entity.RoleAdmin)
}
