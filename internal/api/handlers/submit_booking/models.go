package submit_booking

import (
	"time"

	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/domain"
	submitBooking "github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/usecase/submit_booking"
	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/pkg/types"
)

// SubmitBookingRequest HTTP request model
type SubmitBookingRequest struct {
	CounselorID *int64 `json:"counselorId,omitempty"` // по умолчанию единственный консультант отдела
	Topic       string `json:"topic"`
	Contact     string `json:"contact"`
	BookingDate string `json:"bookingDate"` // "2025-06-10"
	StartTime   string `json:"startTime"`   // "08:00"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          int64  `json:"id"`
	RequesterID int64  `json:"requesterId"`
	CounselorID int64  `json:"counselorId"`
	Topic       string `json:"topic"`
	Contact     string `json:"contact"`
	BookingDate string `json:"bookingDate"`
	StartTime   string `json:"startTime"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SubmitBookingRequest) ToUseCaseRequest(requesterID, defaultCounselorID int64) (*submitBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	counselorID := defaultCounselorID
	if r.CounselorID != nil {
		counselorID = *r.CounselorID
	}

	return &submitBooking.Request{
		RequesterID: requesterID,
		CounselorID: counselorID,
		Topic:       r.Topic,
		Contact:     r.Contact,
		Date:        bookingDate,
		StartTime:   startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *submitBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:          resp.ID,
		RequesterID: resp.RequesterID,
		CounselorID: resp.CounselorID,
		Topic:       resp.Topic,
		Contact:     resp.Contact,
		BookingDate: resp.Date.Format(domain.DateFormat),
		StartTime:   resp.StartTime.String(),
		Status:      resp.Status,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
	}
}
