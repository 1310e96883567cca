package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/domain"
	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/integrations/identityservice"
	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeBookingRepo struct {
	approved []*domain.Booking
}

func (r *fakeBookingRepo) GetApprovedByDate(_ context.Context, _ int64, _ time.Time) ([]*domain.Booking, error) {
	return r.approved, nil
}

type fakeIdentity struct {
	names map[int64]string
	down  bool
}

func (c *fakeIdentity) GetStudentWithGracefulDegradation(_ context.Context, studentID int64) (*identityservice.Student, error) {
	if c.down {
		return nil, identityservice.ErrServiceDegraded
	}
	return &identityservice.Student{ID: studentID, FullName: c.names[studentID]}, nil
}

var testDate = time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)

func approvedBooking(id, requesterID int64, slot types.TimeString) *domain.Booking {
	return &domain.Booking{
		ID:          id,
		RequesterID: requesterID,
		CounselorID: 1,
		BookingDate: testDate,
		StartTime:   slot,
		Status:      domain.StatusApproved,
	}
}

func TestExecute_EmptyDay(t *testing.T) {
	uc := NewUseCase(domain.DefaultSlotTemplate(), &fakeBookingRepo{}, &fakeIdentity{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{CounselorID: 1, Date: testDate})
	require.NoError(t, err)

	assert.False(t, resp.IsFull)
	assert.Empty(t, resp.Occupied)
	assert.Equal(t, domain.DefaultSlotTemplate().Slots(), resp.Free)
}

func TestExecute_PartiallyOccupied(t *testing.T) {
	repo := &fakeBookingRepo{approved: []*domain.Booking{
		approvedBooking(10, 100, "09:00"),
		approvedBooking(11, 101, "14:00"),
	}}
	identity := &fakeIdentity{names: map[int64]string{100: "Иванов Иван", 101: "Петрова Анна"}}
	uc := NewUseCase(domain.DefaultSlotTemplate(), repo, identity, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{CounselorID: 1, Date: testDate})
	require.NoError(t, err)

	assert.False(t, resp.IsFull)
	require.Len(t, resp.Occupied, 2)
	assert.Equal(t, types.TimeString("09:00"), resp.Occupied[0].StartTime)
	assert.Equal(t, "Иванов Иван", resp.Occupied[0].RequesterName)
	assert.Equal(t, int64(10), resp.Occupied[0].BookingID)

	// Free и Occupied не пересекаются и в объединении дают шаблон
	slots := make(map[types.TimeString]bool)
	for _, s := range resp.Free {
		assert.False(t, slots[s])
		slots[s] = true
	}
	for _, o := range resp.Occupied {
		assert.False(t, slots[o.StartTime])
		slots[o.StartTime] = true
	}
	assert.Len(t, slots, domain.DefaultSlotTemplate().SlotCount())
}

func TestExecute_FullDay(t *testing.T) {
	template := domain.DefaultSlotTemplate()

	approved := make([]*domain.Booking, 0, template.SlotCount())
	for i, slot := range template.Slots() {
		approved = append(approved, approvedBooking(int64(i+1), int64(100+i), slot))
	}
	uc := NewUseCase(template, &fakeBookingRepo{approved: approved}, &fakeIdentity{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{CounselorID: 1, Date: testDate})
	require.NoError(t, err)

	assert.True(t, resp.IsFull)
	assert.Empty(t, resp.Free)
	assert.Len(t, resp.Occupied, template.SlotCount())
}

func TestExecute_IdentityServiceDown(t *testing.T) {
	repo := &fakeBookingRepo{approved: []*domain.Booking{approvedBooking(10, 100, "09:00")}}
	uc := NewUseCase(domain.DefaultSlotTemplate(), repo, &fakeIdentity{down: true}, nopLogger{})

	// Недоступность IdentityService не ломает календарь:
	// имя подменяется обезличенным
	resp, err := uc.Execute(context.Background(), &Request{CounselorID: 1, Date: testDate})
	require.NoError(t, err)

	require.Len(t, resp.Occupied, 1)
	assert.Equal(t, "Студент", resp.Occupied[0].RequesterName)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(domain.DefaultSlotTemplate(), &fakeBookingRepo{}, &fakeIdentity{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{CounselorID: 0, Date: testDate})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{CounselorID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
