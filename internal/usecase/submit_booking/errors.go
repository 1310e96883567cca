package submit_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("submit_booking: invalid input data")

	// ErrInvalidDate возвращается, когда дата нарушает календарные правила:
	// сегодня, прошлое или заблокированный день недели
	ErrInvalidDate = errors.New("submit_booking: invalid booking date")

	// ErrInvalidSlot возвращается, когда время не входит в шаблон слотов
	ErrInvalidSlot = errors.New("submit_booking: time is not a template slot")

	// ErrRequesterNotFound возвращается, когда студент не найден
	ErrRequesterNotFound = errors.New("submit_booking: requester not found")

	// ErrRequesterNotEligible возвращается, когда студент не допущен к записи
	ErrRequesterNotEligible = errors.New("submit_booking: requester is not eligible to book")

	// ErrDailyLimitReached возвращается, когда студент уже держит максимум
	// активных записей на эту дату (политика max_active_per_day)
	ErrDailyLimitReached = errors.New("submit_booking: daily booking limit reached")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_booking: internal error")
)
