package submit_booking

import (
	"errors"
	"net/http"

	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/api/handlers"
	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/api/middleware"
	submitBooking "github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/usecase/submit_booking"
	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/pkg/metrics"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDateFormat    = "некорректный формат даты записи, ожидается YYYY-MM-DD"
	msgInvalidInput         = "некорректные данные заявки"
	msgInvalidBookingDate   = "запись на эту дату невозможна"
	msgInvalidSlot          = "выбранное время не входит в расписание приема"
	msgRequesterNotFound    = "студент не найден"
	msgRequesterNotEligible = "студент не допущен к записи на консультацию"
	msgDailyLimitReached    = "достигнут лимит активных заявок на эту дату"
)

type Handler struct {
	useCase            SubmitBookingUseCase
	defaultCounselorID int64
	metrics            *metrics.Metrics
	logger             Logger
}

func NewHandler(useCase SubmitBookingUseCase, defaultCounselorID int64, m *metrics.Metrics, logger Logger) *Handler {
	return &Handler{
		useCase:            useCase,
		defaultCounselorID: defaultCounselorID,
		metrics:            m,
		logger:             logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "требуется заголовок X-User-ID")
		return
	}

	var req SubmitBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(requesterID, h.defaultCounselorID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateFormat)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, submitBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: requester_id=%d, error=%v", requesterID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, submitBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: requester_id=%d, date=%s", requesterID, req.BookingDate)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, submitBooking.ErrInvalidSlot):
			h.logger.Warn("POST /bookings - Invalid slot: requester_id=%d, start_time=%s", requesterID, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, submitBooking.ErrRequesterNotFound):
			h.logger.Warn("POST /bookings - Requester not found: requester_id=%d", requesterID)
			handlers.RespondNotFound(w, msgRequesterNotFound)

		case errors.Is(err, submitBooking.ErrRequesterNotEligible):
			h.logger.Warn("POST /bookings - Requester not eligible: requester_id=%d", requesterID)
			handlers.RespondForbidden(w, msgRequesterNotEligible)

		case errors.Is(err, submitBooking.ErrDailyLimitReached):
			h.logger.Warn("POST /bookings - Daily limit reached: requester_id=%d, date=%s", requesterID, req.BookingDate)
			handlers.RespondError(w, http.StatusConflict, msgDailyLimitReached)

		default:
			h.logger.Error("POST /bookings - Failed to submit booking: requester_id=%d, error=%v", requesterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.metrics.IncBookingSubmitted()
	h.logger.Info("POST /bookings - Booking submitted successfully: booking_id=%d, requester_id=%d, date=%s, slot=%s",
		result.ID, requesterID, req.BookingDate, req.StartTime)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
