package models

import (
	"time"

	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/domain"
)

// Request модели

// CancelBookingRequest запрос на отмену записи
type CancelBookingRequest struct {
	UserID int64  `json:"userId"`
	Reason string `json:"reason"`
}

// GetRequesterBookingsRequest запрос истории записей студента
type GetRequesterBookingsRequest struct {
	RequesterID int64   `json:"requesterId"`
	UserID      int64   `json:"userId"`
	Status      *string `json:"status,omitempty"`
}

// ListBookingsRequest запрос списка записей (для сотрудников)
type ListBookingsRequest struct {
	UserID          int64      `json:"userId"`
	CounselorID     int64      `json:"counselorId"`
	StartDate       *time.Time `json:"startDate,omitempty"`
	EndDate         *time.Time `json:"endDate,omitempty"`
	Status          *string    `json:"status,omitempty"`
	IncludeInactive bool       `json:"includeInactive,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		CounselorID:     r.CounselorID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, ok := domain.ParseBookingStatus(*r.Status)
		if !ok {
			return filter, ErrInvalidStatus
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными записи
type BookingResponse struct {
	ID          int64  `json:"id"`
	RequesterID int64  `json:"requesterId"`
	CounselorID int64  `json:"counselorId"`
	Topic       string `json:"topic"`
	Contact     string `json:"contact"`
	BookingDate string `json:"bookingDate"` // "2025-06-10"
	StartTime   string `json:"startTime"`   // "08:00"
	Status      string `json:"status"`

	DecidedBy    *int64  `json:"decidedBy,omitempty"`
	DecidedAt    *string `json:"decidedAt,omitempty"` // ISO 8601
	CancelReason *string `json:"cancelReason,omitempty"`
	CancelledAt  *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком записей
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:           b.ID,
		RequesterID:  b.RequesterID,
		CounselorID:  b.CounselorID,
		Topic:        b.Topic,
		Contact:      b.Contact,
		BookingDate:  b.BookingDate.Format(domain.DateFormat),
		StartTime:    b.StartTime.String(),
		Status:       string(b.Status),
		DecidedBy:    b.DecidedBy,
		CancelReason: b.CancelReason,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}

	if b.DecidedAt != nil {
		decidedAt := b.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &decidedAt
	}
	if b.CancelledAt != nil {
		cancelledAt := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}
	return resp
}
