package decide_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/api/handlers"
	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/api/middleware"
	decideBooking "github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/usecase/decide_booking"
	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/pkg/metrics"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBookingID   = "некорректный ID заявки"
	msgInvalidOutcome     = "некорректное решение, ожидается approved или rejected"
	msgBookingNotFound    = "заявка не найдена"
	msgAlreadyDecided     = "по заявке уже принято решение"
	msgSlotConflict       = "слот уже занят другой одобренной записью"
	msgDeciderNotAllowed  = "принимать решения могут только сотрудники отдела"
)

type Handler struct {
	useCase DecideBookingUseCase
	metrics *metrics.Metrics
	logger  Logger
}

func NewHandler(useCase DecideBookingUseCase, m *metrics.Metrics, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		metrics: m,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/decision
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	deciderID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "требуется заголовок X-User-ID")
		return
	}

	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/decision - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req DecideBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/decision - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	outcome, ok := decideBooking.ParseOutcome(req.Outcome)
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/decision - Invalid outcome: booking_id=%d, outcome=%s", bookingID, req.Outcome)
		handlers.RespondBadRequest(w, msgInvalidOutcome)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), &decideBooking.Request{
		BookingID: bookingID,
		Outcome:   outcome,
		DeciderID: deciderID,
	})
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, decideBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/decision - Invalid input: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidOutcome)

		case errors.Is(err, decideBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/decision - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, decideBooking.ErrAlreadyDecided):
			h.logger.Warn("PATCH /bookings/{id}/decision - Already decided: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyDecided)

		case errors.Is(err, decideBooking.ErrSlotConflict):
			h.metrics.IncSlotConflict()
			h.logger.Warn("PATCH /bookings/{id}/decision - Slot conflict: booking_id=%d, decider_id=%d", bookingID, deciderID)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, decideBooking.ErrDeciderNotAllowed):
			h.logger.Warn("PATCH /bookings/{id}/decision - Decider not allowed: booking_id=%d, decider_id=%d", bookingID, deciderID)
			handlers.RespondForbidden(w, msgDeciderNotAllowed)

		default:
			h.logger.Error("PATCH /bookings/{id}/decision - Failed to decide booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.metrics.IncBookingDecision(result.Status)
	h.logger.Info("PATCH /bookings/{id}/decision - Decision applied: booking_id=%d, outcome=%s, decider_id=%d, rejected_siblings=%d",
		bookingID, result.Status, deciderID, result.RejectedSiblings)
	handlers.RespondJSON(w, http.StatusOK, response)
}
