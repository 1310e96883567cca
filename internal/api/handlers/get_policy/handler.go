package get_policy

import (
	"net/http"
	"strconv"

	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/api/handlers"
)

const (
	msgInvalidCounselorID = "некорректный ID консультанта"
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

// Handle GET /api/v1/policy
// Query params: counselorId (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	counselorID := h.defaultCounselorID
	if raw := r.URL.Query().Get("counselorId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Warn("GET /policy - Invalid counselor ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCounselorID)
			return
		}
		counselorID = parsed
	}

	result, err := h.service.Get(r.Context(), counselorID)
	if err != nil {
		h.logger.Error("GET /policy - Failed to get policy: counselor_id=%d, error=%v", counselorID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /policy - Policy retrieved successfully: counselor_id=%d, is_default=%v",
		counselorID, result.IsDefault)
	handlers.RespondJSON(w, http.StatusOK, result)
}
