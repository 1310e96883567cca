package policy

import "errors"

var (
	// ErrAccessDenied возвращается при попытке изменить политику
	// пользователем без прав сотрудника
	ErrAccessDenied = errors.New("policy.service: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("policy.service: invalid input")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("policy.service: internal error")
)
