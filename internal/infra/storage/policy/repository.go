package policy

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/domain"
	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/pkg/dbmetrics"
	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/pkg/psqlbuilder"
)

// DBExecutor интерфейс выполнения запросов (см. dbmetrics)
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий политики планировщика
// Одна строка на консультанта; при отсутствии строки действуют дефолты
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория политики
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByCounselor получает политику консультанта
func (r *Repository) GetByCounselor(ctx context.Context, counselorID int64) (*domain.SchedulerPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"counselor_id",
		"max_active_per_day",
		"auto_reject_siblings",
		"created_at",
		"updated_at",
	).
		From("scheduler_policy").
		Where(squirrel.Eq{"counselor_id": counselorID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCounselor - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.SchedulerPolicy
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.CounselorID,
		&p.MaxActivePerDay,
		&p.AutoRejectSiblings,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCounselor - scan policy: %v", ErrScanRow, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}

// Upsert создает или обновляет политику консультанта
func (r *Repository) Upsert(ctx context.Context, p *domain.SchedulerPolicy) (*domain.SchedulerPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("scheduler_policy").
		Columns(
			"counselor_id",
			"max_active_per_day",
			"auto_reject_siblings",
		).
		Values(
			p.CounselorID,
			p.MaxActivePerDay,
			p.AutoRejectSiblings,
		).
		Suffix(`ON CONFLICT (counselor_id) DO UPDATE
			SET max_active_per_day = EXCLUDED.max_active_per_day,
			    auto_reject_siblings = EXCLUDED.auto_reject_siblings,
			    updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return p, nil
}
