package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/api/handlers"
	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/domain"
	getAvailability "github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/usecase/get_availability"
)

const (
	msgMissingDate        = "дата обязательна"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidCounselorID = "некорректный ID консультанта"
	msgInvalidInput       = "некорректные параметры запроса"
)

type Handler struct {
	useCase            GetAvailabilityUseCase
	defaultCounselorID int64
	logger             Logger
}

func NewHandler(useCase GetAvailabilityUseCase, defaultCounselorID int64, logger Logger) *Handler {
	return &Handler{
		useCase:            useCase,
		defaultCounselorID: defaultCounselorID,
		logger:             logger,
	}
}

// Handle GET /api/v1/availability
// Query params: date (required, YYYY-MM-DD), counselorId (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	counselorID := h.defaultCounselorID
	if raw := query.Get("counselorId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Warn("GET /availability - Invalid counselor ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCounselorID)
			return
		}
		counselorID = parsed
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		CounselorID: counselorID,
		Date:        date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: date=%s, error=%v", dateStr, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /availability - Failed to get availability: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /availability - Availability retrieved successfully: date=%s, free=%d, occupied=%d, is_full=%v",
		dateStr, len(response.Free), len(response.Occupied), response.IsFull)
	handlers.RespondJSON(w, http.StatusOK, response)
}
