package get_availability

import (
	"context"
	"time"

	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/domain"
	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/integrations/identityservice"
)

// BookingRepository интерфейс репозитория записей
type BookingRepository interface {
	GetApprovedByDate(ctx context.Context, counselorID int64, date time.Time) ([]*domain.Booking, error)
}

// IdentityServiceClient интерфейс клиента для IdentityService
type IdentityServiceClient interface {
	GetStudentWithGracefulDegradation(ctx context.Context, studentID int64) (*identityservice.Student, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
