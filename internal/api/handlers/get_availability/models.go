package get_availability

import (
	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/domain"
	getAvailability "github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date        string             `json:"date"`
	CounselorID int64              `json:"counselorId"`
	Free        []string           `json:"free"`
	Occupied    []OccupiedSlotItem `json:"occupied"`
	IsFull      bool               `json:"isFull"`
}

// OccupiedSlotItem занятый слот в HTTP ответе
type OccupiedSlotItem struct {
	StartTime     string `json:"startTime"`
	BookingID     int64  `json:"bookingId"`
	RequesterName string `json:"requesterName"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	free := make([]string, 0, len(resp.Free))
	for _, slot := range resp.Free {
		free = append(free, slot.String())
	}

	occupied := make([]OccupiedSlotItem, 0, len(resp.Occupied))
	for _, slot := range resp.Occupied {
		occupied = append(occupied, OccupiedSlotItem{
			StartTime:     slot.StartTime.String(),
			BookingID:     slot.BookingID,
			RequesterName: slot.RequesterName,
		})
	}

	return &AvailabilityResponse{
		Date:        resp.Date.Format(domain.DateFormat),
		CounselorID: resp.CounselorID,
		Free:        free,
		Occupied:    occupied,
		IsFull:      resp.IsFull,
	}
}
