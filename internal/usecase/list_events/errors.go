package list_events

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("list_events: invalid input data")

	// ErrInvalidRange возвращается, когда конец периода раньше начала
	ErrInvalidRange = errors.New("list_events: range end is before range start")

	// ErrRangeTooLarge возвращается при слишком большом периоде
	ErrRangeTooLarge = errors.New("list_events: range is too large")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("list_events: internal error")
)
