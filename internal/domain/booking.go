package domain

import (
	"time"

	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/pkg/types"
)

// BookingStatus represents the lifecycle status of a counseling booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusApproved  BookingStatus = "approved"
	StatusRejected  BookingStatus = "rejected"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents one student's request for a counseling slot
// Записи никогда не удаляются физически: отклонённые и отменённые
// остаются для аудита, но не занимают слот
type Booking struct {
	ID          int64
	RequesterID int64 // студент, подавший заявку
	CounselorID int64
	Topic       string // описание проблемы, свободный текст
	Contact     string // контактный телефон
	BookingDate time.Time
	StartTime   types.TimeString
	Status      BookingStatus

	// Заполняются только при решении approve/reject
	DecidedBy *int64
	DecidedAt *time.Time

	CancelReason *string
	CancelledAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still competes for its slot
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusApproved
}

// IsPending returns true if the booking awaits a decision
func (b *Booking) IsPending() bool {
	return b.Status == StatusPending
}

// OccupiesSlot returns true if the booking counts toward slot occupancy
// Только approved-записи занимают слот; pending-заявки могут
// сосуществовать на одном слоте
func (b *Booking) OccupiesSlot() bool {
	return b.Status == StatusApproved
}

// IsDecided returns true if an approver has already decided the booking
func (b *Booking) IsDecided() bool {
	return b.Status == StatusApproved || b.Status == StatusRejected
}

// CanBeCancelled returns true if the requester may still cancel the booking
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusApproved
}

// ParseBookingStatus валидирует строковое представление статуса
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return BookingStatus(s), true
	default:
		return "", false
	}
}

// BookingsFilter фильтр выборки записей
type BookingsFilter struct {
	CounselorID     int64             // Обязательный параметр
	StartDate       *time.Time        // Начало периода (опционально)
	EndDate         *time.Time        // Конец периода (опционально)
	StartTime       *types.TimeString // Фильтр по конкретному слоту (опционально)
	Status          *BookingStatus    // Фильтр по статусу (опционально)
	IncludeInactive bool              // Включать ли отклонённые и отменённые записи
}
