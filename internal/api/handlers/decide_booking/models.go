package decide_booking

import (
	"time"

	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/domain"
	decideBooking "github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/usecase/decide_booking"
)

// DecideBookingRequest HTTP request model
type DecideBookingRequest struct {
	Outcome string `json:"outcome"` // "approved" или "rejected"
}

// DecisionResponse HTTP response model
type DecisionResponse struct {
	ID               int64  `json:"id"`
	RequesterID      int64  `json:"requesterId"`
	CounselorID      int64  `json:"counselorId"`
	BookingDate      string `json:"bookingDate"`
	StartTime        string `json:"startTime"`
	Status           string `json:"status"`
	DecidedBy        int64  `json:"decidedBy"`
	DecidedAt        string `json:"decidedAt"`
	RejectedSiblings int64  `json:"rejectedSiblings"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *decideBooking.Response) *DecisionResponse {
	return &DecisionResponse{
		ID:               resp.ID,
		RequesterID:      resp.RequesterID,
		CounselorID:      resp.CounselorID,
		BookingDate:      resp.Date.Format(domain.DateFormat),
		StartTime:        resp.StartTime.String(),
		Status:           resp.Status,
		DecidedBy:        resp.DecidedBy,
		DecidedAt:        resp.DecidedAt.Format(time.RFC3339),
		RejectedSiblings: resp.RejectedSiblings,
	}
}
