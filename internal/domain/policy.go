package domain

import "time"

// SchedulerPolicy configurable approval/submission policy for one counselor
// Обе настройки - открытые вопросы продукта, поэтому хранятся в БД,
// а не зашиты в код
type SchedulerPolicy struct {
	ID          int64
	CounselorID int64

	// MaxActivePerDay сколько активных записей студент может держать
	// на одну дату; 0 = без ограничений
	MaxActivePerDay int

	// AutoRejectSiblings отклонять ли остальные pending-заявки на слот
	// при одобрении одной из них
	AutoRejectSiblings bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultSchedulerPolicy returns the policy used when no record exists
func DefaultSchedulerPolicy(counselorID int64) *SchedulerPolicy {
	return &SchedulerPolicy{
		CounselorID:        counselorID,
		MaxActivePerDay:    DefaultMaxActivePerDay,
		AutoRejectSiblings: DefaultAutoRejectSiblings,
	}
}

// LimitsRequester returns true if the per-day booking limit is enabled
func (p *SchedulerPolicy) LimitsRequester() bool {
	return p.MaxActivePerDay > 0
}
