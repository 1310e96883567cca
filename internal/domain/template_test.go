package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/pkg/types"
)

func TestNewSlotTemplate(t *testing.T) {
	tests := []struct {
		name    string
		slots   []string
		lead    int
		wantErr error
	}{
		{name: "default schedule", slots: DefaultSlotTimes, lead: 1},
		{name: "single slot", slots: []string{"10:00"}, lead: 0},
		{name: "empty", slots: []string{}, lead: 1, wantErr: ErrEmptyTemplate},
		{name: "duplicate slot", slots: []string{"08:00", "08:00"}, lead: 1, wantErr: ErrDuplicateSlot},
		{name: "unordered slots", slots: []string{"09:00", "08:00"}, lead: 1, wantErr: ErrUnorderedSlots},
		{name: "negative lead days", slots: []string{"08:00"}, lead: -1, wantErr: ErrInvalidLeadDays},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			template, err := NewSlotTemplate(tt.slots, time.Sunday, tt.lead)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.slots), template.SlotCount())
		})
	}

	t.Run("invalid slot format", func(t *testing.T) {
		_, err := NewSlotTemplate([]string{"8am"}, time.Sunday, 1)
		assert.Error(t, err)
	})
}

func TestSlotTemplate_Contains(t *testing.T) {
	template := DefaultSlotTemplate()

	assert.True(t, template.Contains("08:00"))
	assert.True(t, template.Contains("16:00"))

	// Обеденный перерыв не входит в шаблон
	assert.False(t, template.Contains("12:00"))
	assert.False(t, template.Contains("08:30"))
	assert.False(t, template.Contains("17:00"))
}

func TestSlotTemplate_Slots_ReturnsCopy(t *testing.T) {
	template := DefaultSlotTemplate()

	slots := template.Slots()
	slots[0] = "00:00"

	assert.Equal(t, types.TimeString("08:00"), template.Slots()[0])
}

func TestSlotTemplate_IsBookableDate(t *testing.T) {
	template := DefaultSlotTemplate()

	// Вторник 2025-06-10, 15:00
	today := time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{name: "tomorrow is bookable", date: time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC), want: true},
		{name: "far future is bookable", date: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), want: true},
		{name: "today is not bookable", date: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), want: false},
		{name: "past is not bookable", date: time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), want: false},
		{name: "blocked sunday", date: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), want: false},
		{name: "next sunday also blocked", date: time.Date(2025, 6, 22, 0, 0, 0, 0, time.UTC), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, template.IsBookableDate(tt.date, today))
		})
	}
}

func TestSlotTemplate_IsBookableDate_ZeroLeadDays(t *testing.T) {
	template, err := NewSlotTemplate([]string{"10:00"}, time.Sunday, 0)
	require.NoError(t, err)

	today := time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)

	// При lead_days=0 запись на сегодня разрешена, прошлое - нет
	assert.True(t, template.IsBookableDate(today, today))
	assert.False(t, template.IsBookableDate(today.AddDate(0, 0, -1), today))
}

func TestSlotTemplate_IsBookableDate_LocalClock(t *testing.T) {
	template := DefaultSlotTemplate()

	// Дата заявки приходит из парсинга формы как полночь UTC,
	// а "сейчас" берется с локальных часов сервера. Сравнение
	// должно идти по календарным датам, а не по моментам времени
	west := time.FixedZone("UTC-5", -5*60*60)
	east := time.FixedZone("UTC+9", 9*60*60)

	tomorrow := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
	today := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		date time.Time
		now  time.Time
		want bool
	}{
		{name: "tomorrow with western clock", date: tomorrow, now: time.Date(2025, 6, 10, 15, 0, 0, 0, west), want: true},
		{name: "tomorrow with eastern clock", date: tomorrow, now: time.Date(2025, 6, 10, 15, 0, 0, 0, east), want: true},
		{name: "today with western clock", date: today, now: time.Date(2025, 6, 10, 15, 0, 0, 0, west), want: false},
		{name: "today with eastern clock", date: today, now: time.Date(2025, 6, 10, 15, 0, 0, 0, east), want: false},
		{name: "late western evening still allows tomorrow", date: tomorrow, now: time.Date(2025, 6, 10, 23, 30, 0, 0, west), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, template.IsBookableDate(tt.date, tt.now))
		})
	}
}

func TestBuildDaySummary(t *testing.T) {
	template := DefaultSlotTemplate()
	date := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)

	approved := []*Booking{
		{ID: 10, RequesterID: 100, StartTime: "09:00", Status: StatusApproved},
		{ID: 11, RequesterID: 101, StartTime: "14:00", Status: StatusApproved},
		// pending-заявка слот не занимает
		{ID: 12, RequesterID: 102, StartTime: "10:00", Status: StatusPending},
	}
	names := map[int64]string{100: "Иванов Иван", 101: "Петрова Анна"}

	summary := BuildDaySummary(template, date, approved, names)

	assert.False(t, summary.IsFull)
	assert.Len(t, summary.Occupied, 2)
	assert.Len(t, summary.Free, template.SlotCount()-2)

	// Занятые слоты идут в порядке шаблона
	assert.Equal(t, types.TimeString("09:00"), summary.Occupied[0].StartTime)
	assert.Equal(t, int64(10), summary.Occupied[0].BookingID)
	assert.Equal(t, "Иванов Иван", summary.Occupied[0].RequesterName)
	assert.Equal(t, types.TimeString("14:00"), summary.Occupied[1].StartTime)

	// Free и Occupied не пересекаются и вместе дают шаблон
	seen := make(map[types.TimeString]bool)
	for _, slot := range summary.Free {
		seen[slot] = true
	}
	for _, occ := range summary.Occupied {
		assert.False(t, seen[occ.StartTime], "slot %s is both free and occupied", occ.StartTime)
		seen[occ.StartTime] = true
	}
	assert.Len(t, seen, template.SlotCount())
}

func TestBuildDaySummary_FullDay(t *testing.T) {
	template := DefaultSlotTemplate()
	date := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)

	approved := make([]*Booking, 0, template.SlotCount())
	for i, slot := range template.Slots() {
		approved = append(approved, &Booking{
			ID:          int64(i + 1),
			RequesterID: int64(100 + i),
			StartTime:   slot,
			Status:      StatusApproved,
		})
	}

	summary := BuildDaySummary(template, date, approved, map[int64]string{})

	assert.True(t, summary.IsFull)
	assert.Empty(t, summary.Free)
	assert.Len(t, summary.Occupied, template.SlotCount())
}

func TestBuildDaySummary_EmptyDay(t *testing.T) {
	template := DefaultSlotTemplate()
	date := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)

	summary := BuildDaySummary(template, date, nil, nil)

	assert.False(t, summary.IsFull)
	assert.Empty(t, summary.Occupied)
	assert.Equal(t, template.Slots(), summary.Free)
}

func TestBooking_StatusPredicates(t *testing.T) {
	tests := []struct {
		status      BookingStatus
		active      bool
		occupies    bool
		decided     bool
		cancellable bool
	}{
		{StatusPending, true, false, false, true},
		{StatusApproved, true, true, true, true},
		{StatusRejected, false, false, true, false},
		{StatusCancelled, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			b := &Booking{Status: tt.status}
			assert.Equal(t, tt.active, b.IsActive())
			assert.Equal(t, tt.occupies, b.OccupiesSlot())
			assert.Equal(t, tt.decided, b.IsDecided())
			assert.Equal(t, tt.cancellable, b.CanBeCancelled())
		})
	}
}

func TestParseBookingStatus(t *testing.T) {
	for _, valid := range []string{"pending", "approved", "rejected", "cancelled"} {
		status, ok := ParseBookingStatus(valid)
		assert.True(t, ok)
		assert.Equal(t, BookingStatus(valid), status)
	}

	_, ok := ParseBookingStatus("declined")
	assert.False(t, ok)
}
