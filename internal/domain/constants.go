package domain

import "time"

// Default slot template values
// Расписание психолога фиксированное: восемь часовых слотов
// с перерывом на обед (12:00 намеренно отсутствует)
var DefaultSlotTimes = []string{
	"08:00", "09:00", "10:00", "11:00",
	"13:00", "14:00", "15:00", "16:00",
}

// Default calendar rules
const (
	// DefaultLeadDays минимальный срок записи: запись возможна
	// только начиная со следующего дня
	DefaultLeadDays = 1

	// DefaultBlockedWeekday день недели, в который запись не ведется
	DefaultBlockedWeekday = time.Sunday

	// DefaultCounselorID единственный консультант
	// Поле counselor_id - точка расширения на несколько консультантов
	DefaultCounselorID = 1
)

// Default scheduler policy values
const (
	// DefaultMaxActivePerDay сколько активных (pending/approved) записей
	// студент может держать на одну дату; 0 = без ограничений
	DefaultMaxActivePerDay = 1

	// DefaultAutoRejectSiblings отклонять ли автоматически остальные
	// pending-заявки на слот при одобрении одной из них
	DefaultAutoRejectSiblings = false
)

// Business validation constants
const (
	MinMaxActivePerDay    = 0
	MaxMaxActivePerDay    = 8
	MaxTopicLength        = 1000
	MaxContactLength      = 32
	MinContactLength      = 6
	MaxCancelReasonLength = 500
	MaxCalendarRangeDays  = 92
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, при которых запись участвует в политике
// "одна активная запись на дату"
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusApproved,
}

// InactiveStatuses статусы, исключаемые из расчёта занятости и лимитов
var InactiveStatuses = []BookingStatus{
	StatusRejected,
	StatusCancelled,
}
