package list_events

import (
	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/domain"
	listEvents "github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/usecase/list_events"
)

// CalendarEventsResponse HTTP response model
type CalendarEventsResponse struct {
	CounselorID int64               `json:"counselorId"`
	StartDate   string              `json:"startDate"`
	EndDate     string              `json:"endDate"`
	Events      []CalendarEventItem `json:"events"`
}

// CalendarEventItem одно событие календаря в HTTP ответе
type CalendarEventItem struct {
	Date      string  `json:"date"`
	StartTime *string `json:"startTime,omitempty"` // отсутствует для события "день занят"
	Label     string  `json:"label"`
	BookingID *int64  `json:"bookingId,omitempty"`
	IsFull    bool    `json:"isFull"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *listEvents.Response) *CalendarEventsResponse {
	events := make([]CalendarEventItem, 0, len(resp.Events))
	for _, e := range resp.Events {
		item := CalendarEventItem{
			Date:      e.Date.Format(domain.DateFormat),
			Label:     e.Label,
			BookingID: e.BookingID,
			IsFull:    e.IsFull,
		}
		if e.StartTime != nil {
			startTime := e.StartTime.String()
			item.StartTime = &startTime
		}
		events = append(events, item)
	}

	return &CalendarEventsResponse{
		CounselorID: resp.CounselorID,
		StartDate:   resp.StartDate.Format(domain.DateFormat),
		EndDate:     resp.EndDate.Format(domain.DateFormat),
		Events:      events,
	}
}
