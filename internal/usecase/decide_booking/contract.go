package decide_booking

import (
	"context"
	"time"

	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/domain"
	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/integrations/identityservice"
	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/pkg/types"
)

// BookingRepository интерфейс репозитория записей
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	UpdateDecision(ctx context.Context, id int64, status domain.BookingStatus, deciderID int64) error
	RejectSiblings(ctx context.Context, counselorID int64, date time.Time, startTime types.TimeString, approvedID, deciderID int64) (int64, error)
}

// PolicyRepository интерфейс репозитория политики планировщика
type PolicyRepository interface {
	GetByCounselor(ctx context.Context, counselorID int64) (*domain.SchedulerPolicy, error)
}

// IdentityServiceClient интерфейс клиента для IdentityService
type IdentityServiceClient interface {
	GetStudent(ctx context.Context, studentID int64) (*identityservice.Student, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
