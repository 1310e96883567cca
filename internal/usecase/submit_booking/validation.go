package submit_booking

import (
	"fmt"
	"strings"

	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/domain"
)

// validateRequest валидирует форму входных данных
// Календарные правила и принадлежность слота шаблону проверяются отдельно
func validateRequest(req *Request) error {
	if req.RequesterID <= 0 {
		return fmt.Errorf("%w: requesterID must be positive", ErrInvalidInput)
	}

	if req.CounselorID <= 0 {
		return fmt.Errorf("%w: counselorID must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Topic) == "" {
		return fmt.Errorf("%w: topic is required", ErrInvalidInput)
	}
	if len(req.Topic) > domain.MaxTopicLength {
		return fmt.Errorf("%w: topic exceeds %d characters", ErrInvalidInput, domain.MaxTopicLength)
	}

	if err := validateContact(req.Contact); err != nil {
		return err
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateContact проверяет, что контакт похож на телефонный номер:
// цифры, пробелы и символы +-() допустимы
func validateContact(contact string) error {
	trimmed := strings.TrimSpace(contact)
	if trimmed == "" {
		return fmt.Errorf("%w: contact is required", ErrInvalidInput)
	}
	if len(trimmed) < domain.MinContactLength || len(trimmed) > domain.MaxContactLength {
		return fmt.Errorf("%w: contact must be %d-%d characters",
			ErrInvalidInput, domain.MinContactLength, domain.MaxContactLength)
	}

	digits := 0
	for _, r := range trimmed {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' || r == '-' || r == '(' || r == ')' || r == ' ':
			// Допустимые разделители
		default:
			return fmt.Errorf("%w: contact contains invalid character %q", ErrInvalidInput, r)
		}
	}

	if digits < domain.MinContactLength {
		return fmt.Errorf("%w: contact must contain at least %d digits", ErrInvalidInput, domain.MinContactLength)
	}

	return nil
}
