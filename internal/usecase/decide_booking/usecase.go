package decide_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/domain"
	bookingRepo "github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/infra/storage/booking"
	policyRepo "github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/infra/storage/policy"
	identityClient "github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/integrations/identityservice"
	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/pkg/ptr"
)

// UseCase use case решения по заявке (approval guard)
// Единственная точка, где заявки конкурируют за слот: одобрение двух
// заявок на один (дата, слот) невозможно. Решения по разным слотам
// не блокируют друг друга - глобальной блокировки нет
type UseCase struct {
	bookingRepo    BookingRepository
	policyRepo     PolicyRepository
	identityClient IdentityServiceClient
	txManager      TransactionManager
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	policyRepo PolicyRepository,
	identityClient IdentityServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		policyRepo:     policyRepo,
		identityClient: identityClient,
		txManager:      txManager,
		logger:         logger,
	}
}

// Execute выполняет use case решения по заявке
// Одобрение выполняется в сериализуемой транзакции с повторной проверкой
// занятости слота под блокировкой; отклонение конфликтов не проверяет -
// rejected-запись слот не занимает
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("DecideBooking: booking=%d, outcome=%s, decider=%d",
		req.BookingID, req.Outcome, req.DeciderID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("DecideBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Решение может принять только сотрудник
	decider, err := uc.identityClient.GetStudent(ctx, req.DeciderID)
	if err != nil {
		if errors.Is(err, identityClient.ErrStudentNotFound) {
			uc.logger.Warn("DecideBooking: decider id=%d not found", req.DeciderID)
			return nil, ErrDeciderNotAllowed
		}
		uc.logger.Error("DecideBooking: failed to get decider id=%d: %v", req.DeciderID, err)
		return nil, fmt.Errorf("%w: failed to get decider: %v", ErrInternal, err)
	}
	if !decider.IsStaff {
		uc.logger.Warn("DecideBooking: decider id=%d is not staff", req.DeciderID)
		return nil, ErrDeciderNotAllowed
	}

	// 3. Загружаем заявку
	b, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("DecideBooking: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("DecideBooking: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 4. Решение возможно только по pending-заявке
	if !b.IsPending() {
		uc.logger.Warn("DecideBooking: booking id=%d already has status %s", b.ID, b.Status)
		return nil, ErrAlreadyDecided
	}

	var rejectedSiblings int64

	switch req.Outcome {
	case OutcomeRejected:
		// Отклонение безусловное: rejected-запись не конкурирует за слот
		// CAS по статусу защищает от гонки с параллельным решением
		if err := uc.bookingRepo.UpdateDecision(ctx, b.ID, domain.StatusRejected, req.DeciderID); err != nil {
			if errors.Is(err, bookingRepo.ErrNotPending) {
				uc.logger.Warn("DecideBooking: booking id=%d was decided concurrently", b.ID)
				return nil, ErrAlreadyDecided
			}
			uc.logger.Error("DecideBooking: failed to reject booking id=%d: %v", b.ID, err)
			return nil, fmt.Errorf("%w: failed to reject booking: %v", ErrInternal, err)
		}

	case OutcomeApproved:
		rejectedSiblings, err = uc.approve(ctx, b, req.DeciderID)
		if err != nil {
			return nil, err
		}
	}

	// Перечитываем заявку, чтобы вернуть финальное состояние
	decided, err := uc.bookingRepo.GetByID(ctx, b.ID)
	if err != nil {
		uc.logger.Error("DecideBooking: failed to reload booking id=%d: %v", b.ID, err)
		return nil, fmt.Errorf("%w: failed to reload booking: %v", ErrInternal, err)
	}

	uc.logger.Info("DecideBooking: booking id=%d is now %s (decider=%d, auto-rejected=%d)",
		decided.ID, decided.Status, req.DeciderID, rejectedSiblings)

	decidedAt := time.Now()
	if decided.DecidedAt != nil {
		decidedAt = *decided.DecidedAt
	}

	return buildResponse(decided, req.DeciderID, decidedAt, rejectedSiblings), nil
}

// approve одобряет заявку в сериализуемой транзакции
// Шаги под транзакцией:
//  1. перечитать активные записи слота с блокировкой (FOR UPDATE)
//  2. если слот уже занят approved-записью - ErrSlotConflict,
//     заявка остается pending
//  3. CAS-переход pending -> approved
//  4. при включённой политике auto_reject_siblings отклонить остальные
//     pending-заявки слота
func (uc *UseCase) approve(ctx context.Context, b *domain.Booking, deciderID int64) (int64, error) {
	// Политику читаем до транзакции: она меняется редко
	// и не участвует в инварианте занятости
	policy, err := uc.policyRepo.GetByCounselor(ctx, b.CounselorID)
	if err != nil && !errors.Is(err, policyRepo.ErrPolicyNotFound) {
		uc.logger.Error("DecideBooking: failed to get policy: %v", err)
		return 0, fmt.Errorf("%w: failed to get policy: %v", ErrInternal, err)
	}
	if policy == nil {
		policy = domain.DefaultSchedulerPolicy(b.CounselorID)
	}

	var rejectedSiblings int64

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Перечитываем активные записи этого слота под блокировкой
		siblings, err := uc.bookingRepo.GetWithFilter(txCtx, domain.BookingsFilter{
			CounselorID: b.CounselorID,
			StartDate:   &b.BookingDate,
			EndDate:     &b.BookingDate,
			StartTime:   ptr.Ptr(b.StartTime),
		})
		if err != nil {
			uc.logger.Error("DecideBooking: failed to get slot bookings: %v", err)
			return fmt.Errorf("%w: failed to get slot bookings: %v", ErrInternal, err)
		}

		for _, sibling := range siblings {
			if sibling.ID != b.ID && sibling.OccupiesSlot() {
				uc.logger.Warn("DecideBooking: slot %s %s already taken by booking id=%d",
					b.BookingDate.Format(domain.DateFormat), b.StartTime, sibling.ID)
				return ErrSlotConflict
			}
		}

		// CAS-переход: параллельное решение по этой же заявке даст ErrNotPending
		if err := uc.bookingRepo.UpdateDecision(txCtx, b.ID, domain.StatusApproved, deciderID); err != nil {
			if errors.Is(err, bookingRepo.ErrNotPending) {
				return ErrAlreadyDecided
			}
			uc.logger.Error("DecideBooking: failed to approve booking id=%d: %v", b.ID, err)
			return fmt.Errorf("%w: failed to approve booking: %v", ErrInternal, err)
		}

		// Остальные pending-заявки слота по умолчанию остаются pending;
		// политика auto_reject_siblings отклоняет их в той же транзакции
		if policy.AutoRejectSiblings {
			rejectedSiblings, err = uc.bookingRepo.RejectSiblings(
				txCtx, b.CounselorID, b.BookingDate, b.StartTime, b.ID, deciderID)
			if err != nil {
				uc.logger.Error("DecideBooking: failed to reject siblings: %v", err)
				return fmt.Errorf("%w: failed to reject siblings: %v", ErrInternal, err)
			}
		}

		return nil
	})

	if err != nil {
		return 0, err
	}

	return rejectedSiblings, nil
}

func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.DeciderID <= 0 {
		return fmt.Errorf("%w: deciderID must be positive", ErrInvalidInput)
	}
	if _, ok := ParseOutcome(string(req.Outcome)); !ok {
		return fmt.Errorf("%w: outcome must be approved or rejected", ErrInvalidInput)
	}
	return nil
}
