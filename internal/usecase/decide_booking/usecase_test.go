package decide_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/domain"
	bookingRepo "github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/infra/storage/booking"
	policyRepo "github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/infra/storage/policy"
	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/integrations/identityservice"
	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// memBookingRepo потокобезопасный репозиторий в памяти
type memBookingRepo struct {
	mu       sync.Mutex
	bookings map[int64]*domain.Booking
}

func newMemBookingRepo(bookings ...*domain.Booking) *memBookingRepo {
	repo := &memBookingRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		clone := *b
		repo.bookings[b.ID] = &clone
	}
	return repo
}

func (r *memBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *memBookingRepo) GetWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if b.CounselorID != filter.CounselorID {
			continue
		}
		if filter.StartDate != nil && b.BookingDate.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && b.BookingDate.After(*filter.EndDate) {
			continue
		}
		if filter.StartTime != nil && b.StartTime != *filter.StartTime {
			continue
		}
		if !filter.IncludeInactive && !b.IsActive() {
			continue
		}
		clone := *b
		result = append(result, &clone)
	}
	return result, nil
}

func (r *memBookingRepo) UpdateDecision(_ context.Context, id int64, status domain.BookingStatus, deciderID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok || !b.IsPending() {
		return bookingRepo.ErrNotPending
	}

	now := time.Now()
	b.Status = status
	b.DecidedBy = &deciderID
	b.DecidedAt = &now
	return nil
}

func (r *memBookingRepo) RejectSiblings(_ context.Context, counselorID int64, date time.Time, startTime types.TimeString, approvedID, deciderID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	var rejected int64
	for _, b := range r.bookings {
		if b.ID == approvedID || b.CounselorID != counselorID || !b.IsPending() {
			continue
		}
		if !b.BookingDate.Equal(date) || b.StartTime != startTime {
			continue
		}
		b.Status = domain.StatusRejected
		b.DecidedBy = &deciderID
		b.DecidedAt = &now
		rejected++
	}
	return rejected, nil
}

type fakePolicyRepo struct {
	policy *domain.SchedulerPolicy
}

func (r *fakePolicyRepo) GetByCounselor(_ context.Context, _ int64) (*domain.SchedulerPolicy, error) {
	if r.policy == nil {
		return nil, policyRepo.ErrPolicyNotFound
	}
	return r.policy, nil
}

type fakeIdentity struct {
	student *identityservice.Student
	err     error
}

func (c *fakeIdentity) GetStudent(_ context.Context, _ int64) (*identityservice.Student, error) {
	return c.student, c.err
}

// serialTxManager сериализует транзакции мьютексом, имитируя
// сериализуемую изоляцию
type serialTxManager struct {
	mu sync.Mutex
}

func (m *serialTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

func staffDecider() *fakeIdentity {
	return &fakeIdentity{student: &identityservice.Student{ID: 900, FullName: "Сотрудник", IsStaff: true}}
}

var (
	testDate = time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
	testSlot = types.TimeString("09:00")
)

func pendingBooking(id, requesterID int64) *domain.Booking {
	return &domain.Booking{
		ID:          id,
		RequesterID: requesterID,
		CounselorID: 1,
		BookingDate: testDate,
		StartTime:   testSlot,
		Status:      domain.StatusPending,
	}
}

func newTestUseCase(repo *memBookingRepo, policy *fakePolicyRepo, identity *fakeIdentity) *UseCase {
	return NewUseCase(repo, policy, identity, &serialTxManager{}, nopLogger{})
}

func TestExecute_Approve(t *testing.T) {
	repo := newMemBookingRepo(pendingBooking(1, 100))
	uc := newTestUseCase(repo, &fakePolicyRepo{}, staffDecider())

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1, Outcome: OutcomeApproved, DeciderID: 900})
	require.NoError(t, err)

	assert.Equal(t, "approved", resp.Status)
	assert.Equal(t, int64(900), resp.DecidedBy)
	assert.Zero(t, resp.RejectedSiblings)

	stored, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, stored.OccupiesSlot())
}

func TestExecute_Reject(t *testing.T) {
	repo := newMemBookingRepo(pendingBooking(1, 100))
	uc := newTestUseCase(repo, &fakePolicyRepo{}, staffDecider())

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1, Outcome: OutcomeRejected, DeciderID: 900})
	require.NoError(t, err)

	assert.Equal(t, "rejected", resp.Status)

	stored, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, stored.OccupiesSlot())
}

func TestExecute_SlotConflict(t *testing.T) {
	approved := pendingBooking(1, 100)
	approved.Status = domain.StatusApproved
	repo := newMemBookingRepo(approved, pendingBooking(2, 101))
	uc := newTestUseCase(repo, &fakePolicyRepo{}, staffDecider())

	_, err := uc.Execute(context.Background(), &Request{BookingID: 2, Outcome: OutcomeApproved, DeciderID: 900})
	assert.ErrorIs(t, err, ErrSlotConflict)

	// Конфликтная заявка остается pending: оператор может выбрать
	// другой слот или отклонить её явно
	stored, err := repo.GetByID(context.Background(), 2)
	require.NoError(t, err)
	assert.True(t, stored.IsPending())
}

func TestExecute_RejectDespiteOccupiedSlot(t *testing.T) {
	approved := pendingBooking(1, 100)
	approved.Status = domain.StatusApproved
	repo := newMemBookingRepo(approved, pendingBooking(2, 101))
	uc := newTestUseCase(repo, &fakePolicyRepo{}, staffDecider())

	// Отклонение не конкурирует за слот и проходит всегда
	resp, err := uc.Execute(context.Background(), &Request{BookingID: 2, Outcome: OutcomeRejected, DeciderID: 900})
	require.NoError(t, err)
	assert.Equal(t, "rejected", resp.Status)
}

func TestExecute_AlreadyDecided(t *testing.T) {
	decided := pendingBooking(1, 100)
	decided.Status = domain.StatusRejected
	repo := newMemBookingRepo(decided)
	uc := newTestUseCase(repo, &fakePolicyRepo{}, staffDecider())

	for _, outcome := range []Outcome{OutcomeApproved, OutcomeRejected} {
		_, err := uc.Execute(context.Background(), &Request{BookingID: 1, Outcome: outcome, DeciderID: 900})
		assert.ErrorIs(t, err, ErrAlreadyDecided)
	}
}

func TestExecute_BookingNotFound(t *testing.T) {
	uc := newTestUseCase(newMemBookingRepo(), &fakePolicyRepo{}, staffDecider())

	_, err := uc.Execute(context.Background(), &Request{BookingID: 99, Outcome: OutcomeApproved, DeciderID: 900})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_DeciderNotAllowed(t *testing.T) {
	repo := newMemBookingRepo(pendingBooking(1, 100))

	t.Run("not staff", func(t *testing.T) {
		identity := &fakeIdentity{student: &identityservice.Student{ID: 100, IsStaff: false}}
		uc := newTestUseCase(repo, &fakePolicyRepo{}, identity)

		_, err := uc.Execute(context.Background(), &Request{BookingID: 1, Outcome: OutcomeApproved, DeciderID: 100})
		assert.ErrorIs(t, err, ErrDeciderNotAllowed)
	})

	t.Run("unknown decider", func(t *testing.T) {
		identity := &fakeIdentity{err: identityservice.ErrStudentNotFound}
		uc := newTestUseCase(repo, &fakePolicyRepo{}, identity)

		_, err := uc.Execute(context.Background(), &Request{BookingID: 1, Outcome: OutcomeApproved, DeciderID: 901})
		assert.ErrorIs(t, err, ErrDeciderNotAllowed)
	})
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(newMemBookingRepo(), &fakePolicyRepo{}, staffDecider())

	_, err := uc.Execute(context.Background(), &Request{BookingID: 0, Outcome: OutcomeApproved, DeciderID: 900})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{BookingID: 1, Outcome: "maybe", DeciderID: 900})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_AutoRejectSiblings(t *testing.T) {
	repo := newMemBookingRepo(
		pendingBooking(1, 100),
		pendingBooking(2, 101),
		pendingBooking(3, 102),
	)
	policy := &fakePolicyRepo{policy: &domain.SchedulerPolicy{
		CounselorID:        1,
		MaxActivePerDay:    1,
		AutoRejectSiblings: true,
	}}
	uc := newTestUseCase(repo, policy, staffDecider())

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 2, Outcome: OutcomeApproved, DeciderID: 900})
	require.NoError(t, err)

	assert.Equal(t, "approved", resp.Status)
	assert.Equal(t, int64(2), resp.RejectedSiblings)

	for _, tc := range []struct {
		id   int64
		want domain.BookingStatus
	}{
		{1, domain.StatusRejected},
		{2, domain.StatusApproved},
		{3, domain.StatusRejected},
	} {
		stored, err := repo.GetByID(context.Background(), tc.id)
		require.NoError(t, err)
		assert.Equal(t, tc.want, stored.Status)
	}
}

func TestExecute_ConcurrentApprovals(t *testing.T) {
	// Несколько pending-заявок на один слот одобряются одновременно:
	// одобрение должно пройти ровно у одной, остальные получают конфликт
	const contenders = 8

	bookings := make([]*domain.Booking, 0, contenders)
	for i := 0; i < contenders; i++ {
		bookings = append(bookings, pendingBooking(int64(i+1), int64(100+i)))
	}
	repo := newMemBookingRepo(bookings...)
	uc := newTestUseCase(repo, &fakePolicyRepo{}, staffDecider())

	var wg sync.WaitGroup
	wg.Add(contenders)
	results := make(chan error, contenders)

	for i := 0; i < contenders; i++ {
		go func(id int64) {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), &Request{
				BookingID: id,
				Outcome:   OutcomeApproved,
				DeciderID: 900,
			})
			results <- err
		}(int64(i + 1))
	}

	wg.Wait()
	close(results)

	approvals := 0
	conflicts := 0
	for err := range results {
		switch {
		case err == nil:
			approvals++
		case assert.ErrorIs(t, err, ErrSlotConflict):
			conflicts++
		}
	}

	assert.Equal(t, 1, approvals, "exactly one approval must win the slot")
	assert.Equal(t, contenders-1, conflicts)

	// В хранилище ровно одна approved-запись на слот
	stored, err := repo.GetWithFilter(context.Background(), domain.BookingsFilter{
		CounselorID:     1,
		StartDate:       &testDate,
		EndDate:         &testDate,
		StartTime:       &testSlot,
		IncludeInactive: true,
	})
	require.NoError(t, err)

	approvedCount := 0
	for _, b := range stored {
		if b.OccupiesSlot() {
			approvedCount++
		}
	}
	assert.Equal(t, 1, approvedCount)
}
