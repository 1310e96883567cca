package models

import (
	"time"

	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/domain"
)

// UpdatePolicyRequest запрос на обновление политики планировщика
type UpdatePolicyRequest struct {
	UserID             int64 `json:"userId"`
	CounselorID        int64 `json:"counselorId"`
	MaxActivePerDay    int   `json:"maxActivePerDay"`
	AutoRejectSiblings bool  `json:"autoRejectSiblings"`
}

// PolicyResponse ответ с политикой планировщика
type PolicyResponse struct {
	CounselorID        int64      `json:"counselorId"`
	MaxActivePerDay    int        `json:"maxActivePerDay"`
	AutoRejectSiblings bool       `json:"autoRejectSiblings"`
	IsDefault          bool       `json:"isDefault"` // true, если запись в БД отсутствует
	UpdatedAt          *time.Time `json:"updatedAt,omitempty"`
}

// FromDomainPolicy конвертирует domain модель в DTO
func FromDomainPolicy(p *domain.SchedulerPolicy, isDefault bool) *PolicyResponse {
	resp := &PolicyResponse{
		CounselorID:        p.CounselorID,
		MaxActivePerDay:    p.MaxActivePerDay,
		AutoRejectSiblings: p.AutoRejectSiblings,
		IsDefault:          isDefault,
	}
	if !isDefault {
		updatedAt := p.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}
