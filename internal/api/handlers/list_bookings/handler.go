package list_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/api/handlers"
	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/api/middleware"
	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/domain"
	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/service/bookings"
	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/service/bookings/models"
)

const (
	msgInvalidCounselorID = "некорректный ID консультанта"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidFilter      = "некорректные параметры фильтра"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service            BookingService
	defaultCounselorID int64
	logger             Logger
}

func NewHandler(service BookingService, defaultCounselorID int64, logger Logger) *Handler {
	return &Handler{
		service:            service,
		defaultCounselorID: defaultCounselorID,
		logger:             logger,
	}
}

// Handle GET /api/v1/bookings
// Query params: counselorId, date | startDate+endDate, status, includeInactive
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "требуется заголовок X-User-ID")
		return
	}

	query := r.URL.Query()

	counselorID := h.defaultCounselorID
	if raw := query.Get("counselorId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Warn("GET /bookings - Invalid counselor ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCounselorID)
			return
		}
		counselorID = parsed
	}

	req := &models.ListBookingsRequest{
		UserID:      userID,
		CounselorID: counselorID,
	}

	// date задает один день; startDate/endDate задают период
	if raw := query.Get("date"); raw != "" {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /bookings - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.StartDate = &date
		req.EndDate = &date
	} else {
		if raw := query.Get("startDate"); raw != "" {
			date, err := time.Parse(domain.DateFormat, raw)
			if err != nil {
				h.logger.Warn("GET /bookings - Invalid start date: %v", err)
				handlers.RespondBadRequest(w, msgInvalidDate)
				return
			}
			req.StartDate = &date
		}
		if raw := query.Get("endDate"); raw != "" {
			date, err := time.Parse(domain.DateFormat, raw)
			if err != nil {
				h.logger.Warn("GET /bookings - Invalid end date: %v", err)
				handlers.RespondBadRequest(w, msgInvalidDate)
				return
			}
			req.EndDate = &date
		}
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}
	if query.Get("includeInactive") == "true" {
		req.IncludeInactive = true
	}

	// Получаем список записей
	result, err := h.service.ListBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /bookings - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings - Invalid filter: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /bookings - Failed to list bookings: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings - Bookings listed successfully: user_id=%d, count=%d", userID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
