package decide_booking

import (
	"time"

	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/domain"
	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/pkg/types"
)

// Outcome результат решения по заявке
type Outcome string

const (
	OutcomeApproved Outcome = "approved"
	OutcomeRejected Outcome = "rejected"
)

// ParseOutcome валидирует строковое представление решения
func ParseOutcome(s string) (Outcome, bool) {
	switch Outcome(s) {
	case OutcomeApproved, OutcomeRejected:
		return Outcome(s), true
	default:
		return "", false
	}
}

// Request модель запроса на решение по заявке
type Request struct {
	BookingID int64   // ID заявки
	Outcome   Outcome // approved или rejected
	DeciderID int64   // ID сотрудника, принимающего решение
}

// Response модель ответа с заявкой после решения
type Response struct {
	ID               int64            // ID заявки
	RequesterID      int64            // ID студента
	CounselorID      int64            // ID консультанта
	Date             time.Time        // Дата записи
	StartTime        types.TimeString // Слот
	Status           string           // Статус после решения
	DecidedBy        int64            // Кто принял решение
	DecidedAt        time.Time        // Когда принято решение
	RejectedSiblings int64            // Сколько конкурирующих заявок отклонено автоматически
}

func buildResponse(b *domain.Booking, deciderID int64, decidedAt time.Time, rejectedSiblings int64) *Response {
	return &Response{
		ID:               b.ID,
		RequesterID:      b.RequesterID,
		CounselorID:      b.CounselorID,
		Date:             b.BookingDate,
		StartTime:        b.StartTime,
		Status:           string(b.Status),
		DecidedBy:        deciderID,
		DecidedAt:        decidedAt,
		RejectedSiblings: rejectedSiblings,
	}
}
