package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/domain"
	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/pkg/dbmetrics"
	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/pkg/psqlbuilder"
	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/pkg/types"
)

// bookingColumns полный набор колонок таблицы counseling_bookings
var bookingColumns = []string{
	"id",
	"requester_id",
	"counselor_id",
	"topic",
	"contact",
	"booking_date",
	"start_time",
	"status",
	"decided_by",
	"decided_at",
	"cancel_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями на консультацию
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись в статусе pending
// Если в контексте передана активная транзакция (через context.Value),
// использует её; иначе выполняет обычный запрос без транзакции
//
// Подача заявки не требует транзакции: несколько pending-заявок на один
// слот могут сосуществовать, конкуренция разрешается только при одобрении
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("counseling_bookings").
		Columns(
			"requester_id",
			"counselor_id",
			"topic",
			"contact",
			"booking_date",
			"start_time",
			"status",
		).
		Values(
			b.RequesterID,
			b.CounselorID,
			b.Topic,
			b.Contact,
			b.BookingDate,
			b.StartTime,
			b.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("counseling_bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return b, nil
}

// GetWithFilter получает записи консультанта с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, конкретному слоту, статусу
// и включению неактивных записей
//
// Если метод вызывается внутри транзакции и фильтр ограничен одной датой,
// выбранные строки блокируются (FOR UPDATE) - это путь approval guard'а
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("counseling_bookings").
		Where(squirrel.Eq{"counselor_id": filter.CounselorID})

	// Фильтрация по периоду
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}

	// Фильтрация по конкретному слоту
	if filter.StartTime != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"start_time": *filter.StartTime})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		// Если не указан конкретный статус и не нужны неактивные - исключаем их
		inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	// Для одной даты сортируем по слоту, для периода - по дате и слоту
	if isSingleDate(filter) {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date ASC, start_time ASC")
	}

	// Внутри транзакции блокируем строки конкретной даты,
	// чтобы конкурирующие одобрения сериализовались
	if dbmetrics.IsInTransaction(ctx) && isSingleDate(filter) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetApprovedByDate получает все approved-записи консультанта на дату
// Основной источник для расчёта занятости слотов
func (r *Repository) GetApprovedByDate(ctx context.Context, counselorID int64, date time.Time) ([]*domain.Booking, error) {
	status := domain.StatusApproved
	return r.GetWithFilter(ctx, domain.BookingsFilter{
		CounselorID: counselorID,
		StartDate:   &date,
		EndDate:     &date,
		Status:      &status,
	})
}

// GetActiveByRequesterAndDate получает активные (pending/approved) записи
// студента на дату; используется политикой "одна запись в день"
func (r *Repository) GetActiveByRequesterAndDate(ctx context.Context, requesterID int64, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	activeStatusStrings := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		activeStatusStrings[i] = string(s)
	}

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("counseling_bookings").
		Where(squirrel.Eq{
			"requester_id": requesterID,
			"booking_date": date,
			"status":       activeStatusStrings,
		}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByRequesterAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByRequesterAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByRequesterID получает историю записей студента
// Опционально фильтрует по статусу
func (r *Repository) GetByRequesterID(ctx context.Context, requesterID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("counseling_bookings").
		Where(squirrel.Eq{"requester_id": requesterID}).
		OrderBy("booking_date DESC, start_time DESC")

	// Фильтрация по статусу, если указан
	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRequesterID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRequesterID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateDecision переводит запись из pending в approved/rejected
// Условие status='pending' в WHERE делает переход compare-and-set:
// конкурирующее решение по той же записи получит ErrNotPending
func (r *Repository) UpdateDecision(ctx context.Context, id int64, status domain.BookingStatus, deciderID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("counseling_bookings").
		Set("status", status).
		Set("decided_by", deciderID).
		Set("decided_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":     id,
			"status": domain.StatusPending,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateDecision - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateDecision - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateDecision - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrNotPending
	}

	return nil
}

// RejectSiblings отклоняет все остальные pending-заявки на тот же слот
// Вызывается approval guard'ом при включённой политике auto_reject_siblings,
// всегда внутри той же транзакции, что и одобрение
func (r *Repository) RejectSiblings(ctx context.Context, counselorID int64, date time.Time, startTime types.TimeString, approvedID, deciderID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("counseling_bookings").
		Set("status", domain.StatusRejected).
		Set("decided_by", deciderID).
		Set("decided_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"counselor_id": counselorID,
			"booking_date": date,
			"start_time":   startTime,
			"status":       domain.StatusPending,
		}).
		Where(squirrel.NotEq{"id": approvedID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: RejectSiblings - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: RejectSiblings - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: RejectSiblings - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// Cancel отменяет запись по инициативе студента
// Отменить можно только pending- или approved-запись; отмена approved
// освобождает слот. Физическое удаление не используется
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	cancellableStatusStrings := []string{
		string(domain.StatusPending),
		string(domain.StatusApproved),
	}

	query, args, err := psqlbuilder.Update("counseling_bookings").
		Set("status", domain.StatusCancelled).
		Set("cancel_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":     id,
			"status": cancellableStatusStrings,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrNotCancellable
	}

	return nil
}

func isSingleDate(filter domain.BookingsFilter) bool {
	return filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate)
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку в модель записи
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.RequesterID,
		&b.CounselorID,
		&b.Topic,
		&b.Contact,
		&b.BookingDate,
		&b.StartTime,
		&b.Status,
		&b.DecidedBy,
		&b.DecidedAt,
		&b.CancelReason,
		&b.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс записей
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
