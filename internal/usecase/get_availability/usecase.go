package get_availability

import (
	"context"
	"fmt"

	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/domain"
)

// anonymousRequesterName подставляется, когда IdentityService недоступен
const anonymousRequesterName = "Студент"

// UseCase use case получения доступности слотов на дату
// Доступность - производное состояние: вычисляется на каждый запрос
// из шаблона и approved-записей, кэширование не используется,
// поэтому ответ всегда отражает последние решения approval guard'а
type UseCase struct {
	template       *domain.SlotTemplate
	bookingRepo    BookingRepository
	identityClient IdentityServiceClient
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	template *domain.SlotTemplate,
	bookingRepo BookingRepository,
	identityClient IdentityServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		template:       template,
		bookingRepo:    bookingRepo,
		identityClient: identityClient,
		logger:         logger,
	}
}

// Execute выполняет use case получения доступности
// Дата не проверяется календарными правилами: доступность можно
// смотреть на любую дату, включая прошедшие (исторический вид)
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: counselor=%d, date=%s",
		req.CounselorID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем approved-записи на дату
	approved, err := uc.bookingRepo.GetApprovedByDate(ctx, req.CounselorID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get approved bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get approved bookings: %v", ErrInternal, err)
	}

	// 3. Подтягиваем отображаемые имена студентов (с graceful degradation)
	names := uc.resolveNames(ctx, approved)

	// 4. Строим производный вид дня
	summary := domain.BuildDaySummary(uc.template, req.Date, approved, names)

	resp := &Response{
		Date:        summary.Date,
		CounselorID: req.CounselorID,
		Free:        summary.Free,
		Occupied:    make([]OccupiedSlot, 0, len(summary.Occupied)),
		IsFull:      summary.IsFull,
	}

	for _, occ := range summary.Occupied {
		resp.Occupied = append(resp.Occupied, OccupiedSlot{
			StartTime:     occ.StartTime,
			BookingID:     occ.BookingID,
			RequesterName: occ.RequesterName,
		})
	}

	uc.logger.Info("GetAvailability: date=%s free=%d occupied=%d full=%t",
		req.Date.Format(domain.DateFormat), len(resp.Free), len(resp.Occupied), resp.IsFull)

	return resp, nil
}

// resolveNames получает отображаемые имена студентов по уникальным ID
// При недоступности IdentityService подставляется обезличенное имя -
// календарь не должен падать из-за соседнего сервиса
func (uc *UseCase) resolveNames(ctx context.Context, bookings []*domain.Booking) map[int64]string {
	names := make(map[int64]string)

	for _, b := range bookings {
		if _, done := names[b.RequesterID]; done {
			continue
		}

		student, err := uc.identityClient.GetStudentWithGracefulDegradation(ctx, b.RequesterID)
		if err != nil {
			names[b.RequesterID] = anonymousRequesterName
			continue
		}
		names[b.RequesterID] = student.FullName
	}

	return names
}

func validateRequest(req *Request) error {
	if req.CounselorID <= 0 {
		return fmt.Errorf("%w: counselorID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}
