package submit_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/domain"
	policyRepo "github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/infra/storage/policy"
	identityClient "github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/integrations/identityservice"
)

// UseCase use case подачи заявки на консультацию
// Подача всегда создает pending-запись и не конкурирует за слот:
// несколько студентов могут одновременно подать заявку на одно время,
// конфликт разрешается только на этапе одобрения
type UseCase struct {
	template       *domain.SlotTemplate
	bookingRepo    BookingRepository
	policyRepo     PolicyRepository
	identityClient IdentityServiceClient
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	template *domain.SlotTemplate,
	bookingRepo BookingRepository,
	policyRepo PolicyRepository,
	identityClient IdentityServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		template:       template,
		bookingRepo:    bookingRepo,
		policyRepo:     policyRepo,
		identityClient: identityClient,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case подачи заявки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitBooking: requester=%d, counselor=%d, date=%s, time=%s",
		req.RequesterID, req.CounselorID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SubmitBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Слот должен входить в шаблон
	if !uc.template.Contains(req.StartTime) {
		uc.logger.Warn("SubmitBooking: time %s is not a template slot", req.StartTime)
		return nil, ErrInvalidSlot
	}

	// 4. Календарные правила: не сегодня, не прошлое, не заблокированный день
	if !uc.template.IsBookableDate(req.Date, now) {
		uc.logger.Warn("SubmitBooking: date %s is not bookable", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 5. Проверяем студента и его допуск к записи
	student, err := uc.identityClient.GetStudent(ctx, req.RequesterID)
	if err != nil {
		if errors.Is(err, identityClient.ErrStudentNotFound) {
			uc.logger.Warn("SubmitBooking: requester id=%d not found", req.RequesterID)
			return nil, ErrRequesterNotFound
		}
		uc.logger.Error("SubmitBooking: failed to get requester id=%d: %v", req.RequesterID, err)
		return nil, fmt.Errorf("%w: failed to get requester: %v", ErrInternal, err)
	}

	if !student.IsEligible {
		uc.logger.Warn("SubmitBooking: requester id=%d is not eligible", req.RequesterID)
		return nil, ErrRequesterNotEligible
	}

	// 6. Получаем политику планировщика (дефолты, если записи нет)
	policy, err := uc.policyRepo.GetByCounselor(ctx, req.CounselorID)
	if err != nil && !errors.Is(err, policyRepo.ErrPolicyNotFound) {
		uc.logger.Error("SubmitBooking: failed to get policy: %v", err)
		return nil, fmt.Errorf("%w: failed to get policy: %v", ErrInternal, err)
	}
	if policy == nil {
		policy = domain.DefaultSchedulerPolicy(req.CounselorID)
	}

	// 7. Политика "максимум активных записей в день"
	if policy.LimitsRequester() {
		active, err := uc.bookingRepo.GetActiveByRequesterAndDate(ctx, req.RequesterID, req.Date)
		if err != nil {
			uc.logger.Error("SubmitBooking: failed to get active bookings: %v", err)
			return nil, fmt.Errorf("%w: failed to get active bookings: %v", ErrInternal, err)
		}

		if len(active) >= policy.MaxActivePerDay {
			uc.logger.Warn("SubmitBooking: requester id=%d already holds %d/%d active bookings on %s",
				req.RequesterID, len(active), policy.MaxActivePerDay, req.Date.Format(domain.DateFormat))
			return nil, ErrDailyLimitReached
		}
	}

	// 8. Создаем pending-запись
	booking := &domain.Booking{
		RequesterID: req.RequesterID,
		CounselorID: req.CounselorID,
		Topic:       strings.TrimSpace(req.Topic),
		Contact:     strings.TrimSpace(req.Contact),
		BookingDate: req.Date,
		StartTime:   req.StartTime,
		Status:      domain.StatusPending,
	}

	created, err := uc.bookingRepo.Create(ctx, booking)
	if err != nil {
		uc.logger.Error("SubmitBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	uc.logger.Info("SubmitBooking: successfully created booking id=%d", created.ID)

	return &Response{
		ID:          created.ID,
		RequesterID: created.RequesterID,
		CounselorID: created.CounselorID,
		Topic:       created.Topic,
		Contact:     created.Contact,
		Date:        created.BookingDate,
		StartTime:   created.StartTime,
		Status:      string(created.Status),
		CreatedAt:   created.CreatedAt,
	}, nil
}
