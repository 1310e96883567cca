package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/domain"
	bookingRepo "github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/infra/storage/booking"
	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/integrations/identityservice"
	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/service/bookings/models"
	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeBookingRepo struct {
	bookings   map[int64]*domain.Booking
	cancelErr  error
	lastCancel struct {
		id     int64
		reason string
	}
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	return repo
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (r *fakeBookingRepo) GetByRequesterID(_ context.Context, requesterID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if b.RequesterID != requesterID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (r *fakeBookingRepo) GetWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if b.CounselorID != filter.CounselorID {
			continue
		}
		if !filter.IncludeInactive && !b.IsActive() {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (r *fakeBookingRepo) Cancel(_ context.Context, id int64, reason string) error {
	if r.cancelErr != nil {
		return r.cancelErr
	}
	r.lastCancel.id = id
	r.lastCancel.reason = reason
	if b, ok := r.bookings[id]; ok {
		b.Status = domain.StatusCancelled
	}
	return nil
}

type fakeIdentity struct {
	students map[int64]*identityservice.Student
}

func (c *fakeIdentity) GetStudent(_ context.Context, studentID int64) (*identityservice.Student, error) {
	s, ok := c.students[studentID]
	if !ok {
		return nil, identityservice.ErrStudentNotFound
	}
	return s, nil
}

const (
	studentID = int64(100)
	otherID   = int64(101)
	staffID   = int64(900)
)

func newTestService(repo *fakeBookingRepo) *Service {
	identity := &fakeIdentity{students: map[int64]*identityservice.Student{
		studentID: {ID: studentID, FullName: "Иванов Иван", IsEligible: true},
		otherID:   {ID: otherID, FullName: "Петрова Анна", IsEligible: true},
		staffID:   {ID: staffID, FullName: "Сотрудник", IsStaff: true},
	}}
	return NewService(repo, identity, nopLogger{})
}

func ownBooking(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:          1,
		RequesterID: studentID,
		CounselorID: 1,
		Topic:       "Тема",
		Contact:     "+79001234567",
		BookingDate: time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
		StartTime:   "09:00",
		Status:      status,
	}
}

func TestGetByID_Access(t *testing.T) {
	repo := newFakeBookingRepo(ownBooking(domain.StatusPending))
	svc := newTestService(repo)

	t.Run("owner sees own booking", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 1, studentID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "pending", resp.Status)
	})

	t.Run("staff sees any booking", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 1, staffID)
		assert.NoError(t, err)
	})

	t.Run("other student is denied", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 1, otherID)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("missing booking", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 99, studentID)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestGetRequesterBookings_Access(t *testing.T) {
	repo := newFakeBookingRepo(ownBooking(domain.StatusApproved))
	svc := newTestService(repo)

	t.Run("own history", func(t *testing.T) {
		resp, err := svc.GetRequesterBookings(context.Background(), &models.GetRequesterBookingsRequest{
			RequesterID: studentID,
			UserID:      studentID,
		})
		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 1)
	})

	t.Run("staff reads any history", func(t *testing.T) {
		_, err := svc.GetRequesterBookings(context.Background(), &models.GetRequesterBookingsRequest{
			RequesterID: studentID,
			UserID:      staffID,
		})
		assert.NoError(t, err)
	})

	t.Run("foreign history is denied", func(t *testing.T) {
		_, err := svc.GetRequesterBookings(context.Background(), &models.GetRequesterBookingsRequest{
			RequesterID: studentID,
			UserID:      otherID,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("invalid status filter", func(t *testing.T) {
		_, err := svc.GetRequesterBookings(context.Background(), &models.GetRequesterBookingsRequest{
			RequesterID: studentID,
			UserID:      studentID,
			Status:      ptr.Ptr("declined"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestListBookings_StaffOnly(t *testing.T) {
	repo := newFakeBookingRepo(ownBooking(domain.StatusPending))
	svc := newTestService(repo)

	resp, err := svc.ListBookings(context.Background(), &models.ListBookingsRequest{
		UserID:      staffID,
		CounselorID: 1,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	_, err = svc.ListBookings(context.Background(), &models.ListBookingsRequest{
		UserID:      studentID,
		CounselorID: 1,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel(t *testing.T) {
	t.Run("owner cancels pending", func(t *testing.T) {
		repo := newFakeBookingRepo(ownBooking(domain.StatusPending))
		svc := newTestService(repo)

		err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
			UserID: studentID,
			Reason: " передумал ",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), repo.lastCancel.id)
		assert.Equal(t, "передумал", repo.lastCancel.reason)
	})

	t.Run("owner cancels approved and frees the slot", func(t *testing.T) {
		repo := newFakeBookingRepo(ownBooking(domain.StatusApproved))
		svc := newTestService(repo)

		err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: studentID})
		require.NoError(t, err)
		assert.False(t, repo.bookings[1].OccupiesSlot())
	})

	t.Run("not the owner", func(t *testing.T) {
		repo := newFakeBookingRepo(ownBooking(domain.StatusPending))
		svc := newTestService(repo)

		err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: otherID})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("already rejected", func(t *testing.T) {
		repo := newFakeBookingRepo(ownBooking(domain.StatusRejected))
		svc := newTestService(repo)

		err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: studentID})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("concurrent decision between read and cancel", func(t *testing.T) {
		repo := newFakeBookingRepo(ownBooking(domain.StatusPending))
		repo.cancelErr = bookingRepo.ErrNotCancellable
		svc := newTestService(repo)

		err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: studentID})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("reason too long", func(t *testing.T) {
		repo := newFakeBookingRepo(ownBooking(domain.StatusPending))
		svc := newTestService(repo)

		long := make([]byte, domain.MaxCancelReasonLength+1)
		for i := range long {
			long[i] = 'a'
		}

		err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
			UserID: studentID,
			Reason: string(long),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
