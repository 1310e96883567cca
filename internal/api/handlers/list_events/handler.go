package list_events

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/api/handlers"
	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/domain"
	listEvents "github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/usecase/list_events"
)

const (
	msgMissingRange       = "параметры start и end обязательны"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidCounselorID = "некорректный ID консультанта"
	msgInvalidRange       = "конец периода раньше начала"
	msgRangeTooLarge      = "слишком большой период"
	msgInvalidInput       = "некорректные параметры запроса"
)

type Handler struct {
	useCase            ListEventsUseCase
	defaultCounselorID int64
	logger             Logger
}

func NewHandler(useCase ListEventsUseCase, defaultCounselorID int64, logger Logger) *Handler {
	return &Handler{
		useCase:            useCase,
		defaultCounselorID: defaultCounselorID,
		logger:             logger,
	}
}

// Handle GET /api/v1/calendar-events
// Query params: start (required), end (required), counselorId (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	startStr := query.Get("start")
	endStr := query.Get("end")
	if startStr == "" || endStr == "" {
		h.logger.Warn("GET /calendar-events - Missing range params")
		handlers.RespondBadRequest(w, msgMissingRange)
		return
	}

	startDate, err := time.Parse(domain.DateFormat, startStr)
	if err != nil {
		h.logger.Warn("GET /calendar-events - Invalid start date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	endDate, err := time.Parse(domain.DateFormat, endStr)
	if err != nil {
		h.logger.Warn("GET /calendar-events - Invalid end date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	counselorID := h.defaultCounselorID
	if raw := query.Get("counselorId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Warn("GET /calendar-events - Invalid counselor ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCounselorID)
			return
		}
		counselorID = parsed
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), &listEvents.Request{
		CounselorID: counselorID,
		StartDate:   startDate,
		EndDate:     endDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, listEvents.ErrInvalidRange):
			h.logger.Warn("GET /calendar-events - Invalid range: start=%s, end=%s", startStr, endStr)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, listEvents.ErrRangeTooLarge):
			h.logger.Warn("GET /calendar-events - Range too large: start=%s, end=%s", startStr, endStr)
			handlers.RespondBadRequest(w, msgRangeTooLarge)

		case errors.Is(err, listEvents.ErrInvalidInput):
			h.logger.Warn("GET /calendar-events - Invalid input: error=%v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /calendar-events - Failed to list events: start=%s, end=%s, error=%v",
				startStr, endStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /calendar-events - Events retrieved successfully: start=%s, end=%s, events_count=%d",
		startStr, endStr, len(response.Events))
	handlers.RespondJSON(w, http.StatusOK, response)
}
