package get_policy

import (
	"context"

	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/service/policy/models"
)

type PolicyService interface {
	Get(ctx context.Context, counselorID int64) (*models.PolicyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
