package update_policy

import (
	"errors"
	"net/http"

	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/api/handlers"
	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/api/middleware"
	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/service/policy"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные параметры политики"
	msgForbidden          = "изменять политику могут только сотрудники отдела"
)

type Handler struct {
	service            PolicyService
	defaultCounselorID int64
	logger             Logger
}

func NewHandler(service PolicyService, defaultCounselorID int64, logger Logger) *Handler {
	return &Handler{
		service:            service,
		defaultCounselorID: defaultCounselorID,
		logger:             logger,
	}
}

// Handle PUT /api/v1/policy
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "требуется заголовок X-User-ID")
		return
	}

	var req UpdatePolicyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /policy - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), req.ToServiceRequest(userID, h.defaultCounselorID))
	if err != nil {
		switch {
		case errors.Is(err, policy.ErrAccessDenied):
			h.logger.Warn("PUT /policy - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, policy.ErrInvalidInput):
			h.logger.Warn("PUT /policy - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /policy - Failed to update policy: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /policy - Policy updated successfully: counselor_id=%d, max_active_per_day=%d, auto_reject_siblings=%v",
		result.CounselorID, result.MaxActivePerDay, result.AutoRejectSiblings)
	handlers.RespondJSON(w, http.StatusOK, result)
}
