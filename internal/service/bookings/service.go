package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/domain"
	bookingRepo "github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/infra/storage/booking"
	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/service/bookings/models"
)

// Service сервис чтения и отмены записей
// Решения approve/reject сюда не входят - они проходят только через
// usecase decide_booking, чтобы инвариант занятости имел одну точку входа
type Service struct {
	bookingRepo    BookingRepository
	identityClient IdentityServiceClient
	logger         Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	bookingRepo BookingRepository,
	identityClient IdentityServiceClient,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:    bookingRepo,
		identityClient: identityClient,
		logger:         logger,
	}
}

// GetByID получает запись по ID
// Студент видит только свою запись; сотрудник - любую
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if b.RequesterID != userID {
		if err := s.checkStaffAccess(ctx, userID); err != nil {
			s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
			return nil, err
		}
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(b), nil
}

// GetRequesterBookings получает историю записей студента
// Студент видит только свою историю; сотрудник - любую
func (s *Service) GetRequesterBookings(ctx context.Context, req *models.GetRequesterBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetRequesterBookings: fetching bookings for requester=%d, user=%d", req.RequesterID, req.UserID)

	if req.RequesterID != req.UserID {
		if err := s.checkStaffAccess(ctx, req.UserID); err != nil {
			s.logger.Warn("GetRequesterBookings: access denied for user=%d", req.UserID)
			return nil, err
		}
	}

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, ok := domain.ParseBookingStatus(*req.Status)
		if !ok {
			s.logger.Warn("GetRequesterBookings: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByRequesterID(ctx, req.RequesterID, domainStatus)
	if err != nil {
		s.logger.Error("GetRequesterBookings: repository error for requester=%d: %v", req.RequesterID, err)
		return nil, fmt.Errorf("%w: GetRequesterBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetRequesterBookings: successfully fetched %d bookings for requester=%d",
		len(bookings), req.RequesterID)
	return models.FromDomainBookingList(bookings), nil
}

// ListBookings получает записи консультанта с гибкой фильтрацией
// Доступно только сотрудникам; основной источник для экрана одобрения
func (s *Service) ListBookings(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListBookings: user=%d, counselor=%d", req.UserID, req.CounselorID)

	if err := s.checkStaffAccess(ctx, req.UserID); err != nil {
		s.logger.Warn("ListBookings: access denied for user=%d", req.UserID)
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListBookings: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListBookings: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListBookings: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет запись по инициативе студента
// Отменить можно только свою pending- или approved-запись;
// отмена approved-записи освобождает слот
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	if len(req.Reason) > domain.MaxCancelReasonLength {
		return fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxCancelReasonLength)
	}

	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if b.RequesterID != req.UserID {
		s.logger.Warn("Cancel: user=%d is not the owner of booking id=%d", req.UserID, bookingID)
		return ErrAccessDenied
	}

	if !b.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d has status %s and cannot be cancelled", bookingID, b.Status)
		return ErrCannotCancel
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, strings.TrimSpace(req.Reason)); err != nil {
		if errors.Is(err, bookingRepo.ErrNotCancellable) {
			// Статус изменился между чтением и отменой
			s.logger.Warn("Cancel: booking id=%d became non-cancellable concurrently", bookingID)
			return ErrCannotCancel
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}

// checkStaffAccess проверяет, что пользователь - сотрудник отдела
func (s *Service) checkStaffAccess(ctx context.Context, userID int64) error {
	student, err := s.identityClient.GetStudent(ctx, userID)
	if err != nil {
		s.logger.Error("checkStaffAccess: failed to get user id=%d: %v", userID, err)
		return ErrAccessDenied
	}

	if !student.IsStaff {
		return ErrAccessDenied
	}

	return nil
}
