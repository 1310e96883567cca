package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/pkg/types"
)

var (
	// ErrEmptyTemplate возвращается при создании шаблона без слотов
	ErrEmptyTemplate = errors.New("domain: slot template must contain at least one slot")

	// ErrDuplicateSlot возвращается при повторяющемся слоте в шаблоне
	ErrDuplicateSlot = errors.New("domain: slot template contains duplicate slot")

	// ErrUnorderedSlots возвращается, если слоты шаблона не упорядочены по времени
	ErrUnorderedSlots = errors.New("domain: slot template slots must be in ascending order")

	// ErrInvalidLeadDays возвращается при отрицательном сроке записи
	ErrInvalidLeadDays = errors.New("domain: lead days must be non-negative")
)

// SlotTemplate is the immutable daily catalogue of bookable time slots
// plus the calendar rules (lead time and the blocked weekday)
// Создается один раз при старте процесса и не изменяется
type SlotTemplate struct {
	slots          []types.TimeString
	blockedWeekday time.Weekday
	leadDays       int
}

// NewSlotTemplate validates the slot list and builds a template
// Слоты должны быть в формате HH:MM, без дубликатов, по возрастанию -
// порядок используется как порядок выбора по умолчанию
func NewSlotTemplate(slotTimes []string, blockedWeekday time.Weekday, leadDays int) (*SlotTemplate, error) {
	if len(slotTimes) == 0 {
		return nil, ErrEmptyTemplate
	}
	if leadDays < 0 {
		return nil, ErrInvalidLeadDays
	}

	slots := make([]types.TimeString, 0, len(slotTimes))
	for i, raw := range slotTimes {
		slot, err := types.NewTimeStringFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("domain: slot %d: %w", i, err)
		}

		if i > 0 {
			prev := slots[i-1]
			if slot == prev {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateSlot, slot)
			}
			if slot.IsBefore(prev) {
				return nil, fmt.Errorf("%w: %s after %s", ErrUnorderedSlots, slot, prev)
			}
		}

		slots = append(slots, slot)
	}

	return &SlotTemplate{
		slots:          slots,
		blockedWeekday: blockedWeekday,
		leadDays:       leadDays,
	}, nil
}

// DefaultSlotTemplate builds the template with the standard schedule:
// eight one-hour slots, Sunday blocked, bookable from tomorrow
func DefaultSlotTemplate() *SlotTemplate {
	template, err := NewSlotTemplate(DefaultSlotTimes, DefaultBlockedWeekday, DefaultLeadDays)
	if err != nil {
		// Дефолтные значения валидны по построению
		panic(err)
	}
	return template
}

// Slots returns the ordered slot catalogue (copy, callers may not mutate)
func (t *SlotTemplate) Slots() []types.TimeString {
	slots := make([]types.TimeString, len(t.slots))
	copy(slots, t.slots)
	return slots
}

// SlotCount returns the number of slots in the daily template
func (t *SlotTemplate) SlotCount() int {
	return len(t.slots)
}

// Contains returns true if the given time is one of the template slots
func (t *SlotTemplate) Contains(slot types.TimeString) bool {
	for _, s := range t.slots {
		if s == slot {
			return true
		}
	}
	return false
}

// BlockedWeekday returns the weekday on which bookings are never accepted
func (t *SlotTemplate) BlockedWeekday() time.Weekday {
	return t.blockedWeekday
}

// LeadDays returns the minimum lead time in days
func (t *SlotTemplate) LeadDays() int {
	return t.leadDays
}

// IsBookableDate reports whether date may be booked given "today"
// Правила: дата должна быть строго позже today + (leadDays - 1),
// т.е. при leadDays=1 самая ранняя дата - завтра; заблокированный
// день недели недоступен всегда
func (t *SlotTemplate) IsBookableDate(date, today time.Time) bool {
	if date.Weekday() == t.blockedWeekday {
		return false
	}

	earliest := truncateToDay(today).AddDate(0, 0, t.leadDays)
	return !truncateToDay(date).Before(earliest)
}

// truncateToDay приводит момент к календарной дате в UTC, чтобы
// сравнение дат не зависело от часового пояса сервера
func truncateToDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
