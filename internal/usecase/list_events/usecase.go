package list_events

import (
	"context"
	"fmt"
	"sort"

	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/domain"
	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/pkg/ptr"
)

const (
	// fullDayLabel подпись события полностью занятого дня
	fullDayLabel = "Все слоты заняты"

	// anonymousRequesterName подставляется, когда IdentityService недоступен
	anonymousRequesterName = "Студент"
)

// UseCase use case получения событий календаря за период
// Каждая approved-запись становится одним событием; полностью занятый
// день сворачивается в одно событие "день занят" для экономии UI
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

// Execute выполняет use case получения событий
// Проекция только читает состояние и отражает последние
// закоммиченные решения approval guard'а
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ListEvents: counselor=%d, period=%s to %s",
		req.CounselorID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ListEvents: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем approved-записи за период
	status := domain.StatusApproved
	approved, err := uc.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{
		CounselorID: req.CounselorID,
		StartDate:   &req.StartDate,
		EndDate:     &req.EndDate,
		Status:      &status,
	})
	if err != nil {
		uc.logger.Error("ListEvents: failed to get approved bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get approved bookings: %v", ErrInternal, err)
	}

	// 3. Группируем по дате
	byDate := make(map[string][]*domain.Booking)
	dates := make([]string, 0)
	for _, b := range approved {
		key := b.BookingDate.Format(domain.DateFormat)
		if _, seen := byDate[key]; !seen {
			dates = append(dates, key)
		}
		byDate[key] = append(byDate[key], b)
	}
	sort.Strings(dates)

	// 4. Подтягиваем отображаемые имена студентов
	names := uc.resolveNames(ctx, approved)

	// 5. Строим события: полный день сворачивается в одно событие
	events := make([]CalendarEvent, 0, len(approved))
	for _, key := range dates {
		dayBookings := byDate[key]
		date := dayBookings[0].BookingDate

		if len(dayBookings) >= uc.template.SlotCount() {
			events = append(events, CalendarEvent{
				Date:   date,
				Label:  fullDayLabel,
				IsFull: true,
			})
			continue
		}

		for _, b := range dayBookings {
			events = append(events, CalendarEvent{
				Date:      date,
				StartTime: ptr.Ptr(b.StartTime),
				Label:     names[b.RequesterID],
				BookingID: ptr.Ptr(b.ID),
			})
		}
	}

	uc.logger.Info("ListEvents: built %d events from %d approved bookings", len(events), len(approved))

	return &Response{
		CounselorID: req.CounselorID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Events:      events,
	}, nil
}

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
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidInput)
	}
	if req.EndDate.Before(req.StartDate) {
		return ErrInvalidRange
	}

	days := int(req.EndDate.Sub(req.StartDate).Hours()/24) + 1
	if days > domain.MaxCalendarRangeDays {
		return fmt.Errorf("%w: %d days exceeds the %d day limit", ErrRangeTooLarge, days, domain.MaxCalendarRangeDays)
	}

	return nil
}
