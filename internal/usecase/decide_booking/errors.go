package decide_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("decide_booking: invalid input data")

	// ErrBookingNotFound возвращается, когда заявка не найдена
	ErrBookingNotFound = errors.New("decide_booking: booking not found")

	// ErrAlreadyDecided возвращается, когда заявка уже не в статусе pending
	// Ошибка вызывающей стороны, не повторяется
	ErrAlreadyDecided = errors.New("decide_booking: booking is already decided")

	// ErrSlotConflict возвращается, когда слот уже занят другой
	// approved-записью. Ожидаемый исход гонки: заявка остается pending,
	// оператор выбирает другую заявку или слот
	ErrSlotConflict = errors.New("decide_booking: slot is already taken by an approved booking")

	// ErrDeciderNotAllowed возвращается, когда решение принимает
	// пользователь без прав сотрудника
	ErrDeciderNotAllowed = errors.New("decide_booking: decider is not allowed to decide bookings")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("decide_booking: internal error")
)
