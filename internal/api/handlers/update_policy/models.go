package update_policy

import (
	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/service/policy/models"
)

// UpdatePolicyRequest HTTP request model
type UpdatePolicyRequest struct {
	CounselorID        *int64 `json:"counselorId,omitempty"`
	MaxActivePerDay    int    `json:"maxActivePerDay"`
	AutoRejectSiblings bool   `json:"autoRejectSiblings"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdatePolicyRequest) ToServiceRequest(userID, defaultCounselorID int64) *models.UpdatePolicyRequest {
	counselorID := defaultCounselorID
	if r.CounselorID != nil {
		counselorID = *r.CounselorID
	}

	return &models.UpdatePolicyRequest{
		UserID:             userID,
		CounselorID:        counselorID,
		MaxActivePerDay:    r.MaxActivePerDay,
		AutoRejectSiblings: r.AutoRejectSiblings,
	}
}
