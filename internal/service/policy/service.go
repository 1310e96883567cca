package policy

import (
	"context"
	"errors"
	"fmt"

	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/domain"
	policyRepo "github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/infra/storage/policy"
	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/service/policy/models"
)

// Service сервис управления политикой планировщика
type Service struct {
	policyRepo     PolicyRepository
	identityClient IdentityServiceClient
	logger         Logger
}

// NewService создает новый экземпляр сервиса политики
func NewService(
	policyRepo PolicyRepository,
	identityClient IdentityServiceClient,
	logger Logger,
) *Service {
	return &Service{
		policyRepo:     policyRepo,
		identityClient: identityClient,
		logger:         logger,
	}
}

// Get возвращает политику консультанта
// Если запись отсутствует, возвращаются значения по умолчанию
func (s *Service) Get(ctx context.Context, counselorID int64) (*models.PolicyResponse, error) {
	s.logger.Info("Get: fetching policy for counselor=%d", counselorID)

	p, err := s.policyRepo.GetByCounselor(ctx, counselorID)
	if err != nil {
		if errors.Is(err, policyRepo.ErrPolicyNotFound) {
			s.logger.Info("Get: no stored policy for counselor=%d, using defaults", counselorID)
			return models.FromDomainPolicy(domain.DefaultSchedulerPolicy(counselorID), true), nil
		}
		s.logger.Error("Get: repository error for counselor=%d: %v", counselorID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Get: successfully fetched policy for counselor=%d", counselorID)
	return models.FromDomainPolicy(p, false), nil
}

// Update сохраняет политику консультанта
// Доступно только сотрудникам отдела
func (s *Service) Update(ctx context.Context, req *models.UpdatePolicyRequest) (*models.PolicyResponse, error) {
	s.logger.Info("Update: user=%d updating policy for counselor=%d", req.UserID, req.CounselorID)

	if err := s.checkStaffAccess(ctx, req.UserID); err != nil {
		s.logger.Warn("Update: access denied for user=%d", req.UserID)
		return nil, err
	}

	if req.CounselorID <= 0 {
		return nil, fmt.Errorf("%w: counselorId must be positive", ErrInvalidInput)
	}
	if req.MaxActivePerDay < domain.MinMaxActivePerDay || req.MaxActivePerDay > domain.MaxMaxActivePerDay {
		return nil, fmt.Errorf("%w: maxActivePerDay must be between %d and %d",
			ErrInvalidInput, domain.MinMaxActivePerDay, domain.MaxMaxActivePerDay)
	}

	p, err := s.policyRepo.Upsert(ctx, &domain.SchedulerPolicy{
		CounselorID:        req.CounselorID,
		MaxActivePerDay:    req.MaxActivePerDay,
		AutoRejectSiblings: req.AutoRejectSiblings,
	})
	if err != nil {
		s.logger.Error("Update: repository error for counselor=%d: %v", req.CounselorID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated policy for counselor=%d", req.CounselorID)
	return models.FromDomainPolicy(p, false), nil
}

// checkStaffAccess проверяет, что пользователь - сотрудник отдела
func (s *Service) checkStaffAccess(ctx context.Context, userID int64) error {
	student, err := s.identityClient.GetStudent(ctx, userID)
	if err != nil {
		s.logger.Error("checkStaffAccess: failed to get user id=%d: %v", userID, err)
		return ErrAccessDenied
	}

	if !student.IsStaff {
		return ErrAccessDenied
	}

	return nil
}
