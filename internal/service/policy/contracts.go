package policy

import (
	"context"

	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/domain"
	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/integrations/identityservice"
)

// PolicyRepository интерфейс репозитория политики планировщика
type PolicyRepository interface {
	GetByCounselor(ctx context.Context, counselorID int64) (*domain.SchedulerPolicy, error)
	Upsert(ctx context.Context, p *domain.SchedulerPolicy) (*domain.SchedulerPolicy, error)
}

// IdentityServiceClient интерфейс клиента для IdentityService
type IdentityServiceClient interface {
	GetStudent(ctx context.Context, studentID int64) (*identityservice.Student, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
