package get_requester_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/api/handlers"
	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/api/middleware"
	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/service/bookings"
	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/service/bookings/models"
)

const (
	msgInvalidRequesterID = "некорректный ID студента"
	msgInvalidStatus      = "некорректный статус записи"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/requesters/{requesterId}/bookings
// Query params: status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "требуется заголовок X-User-ID")
		return
	}

	// Извлекаем requesterId из URL
	vars := mux.Vars(r)
	requesterID, err := strconv.ParseInt(vars["requesterId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /requesters/{id}/bookings - Invalid requester ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequesterID)
		return
	}

	req := &models.GetRequesterBookingsRequest{
		RequesterID: requesterID,
		UserID:      userID,
	}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	// Получаем историю записей
	result, err := h.service.GetRequesterBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /requesters/{id}/bookings - Access denied: requester_id=%d, user_id=%d",
				requesterID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /requesters/{id}/bookings - Invalid input: requester_id=%d, error=%v",
				requesterID, err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /requesters/{id}/bookings - Failed to get bookings: requester_id=%d, error=%v",
				requesterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /requesters/{id}/bookings - Bookings retrieved successfully: requester_id=%d, count=%d",
		requesterID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
