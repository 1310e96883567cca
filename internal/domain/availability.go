package domain

import (
	"time"

	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/pkg/types"
)

// OccupiedSlot describes one approved booking inside a day summary
type OccupiedSlot struct {
	StartTime     types.TimeString
	BookingID     int64
	RequesterID   int64
	RequesterName string
}

// DaySummary is the derived free/occupied view for one date
// Не хранится: вычисляется на каждый запрос из шаблона и
// approved-записей, чтобы не устаревать
type DaySummary struct {
	Date     time.Time
	Free     []types.TimeString
	Occupied []OccupiedSlot
	IsFull   bool
}

// BuildDaySummary derives the summary for a date from the template and
// the approved bookings of that date
// Свободные слоты сохраняют порядок шаблона; занятые упорядочены так же
// Инвариант: Free и слоты Occupied не пересекаются и в объединении
// дают ровно template.Slots()
func BuildDaySummary(template *SlotTemplate, date time.Time, approved []*Booking, names map[int64]string) DaySummary {
	occupiedByTime := make(map[types.TimeString]*Booking, len(approved))
	for _, b := range approved {
		if !b.OccupiesSlot() {
			continue
		}
		occupiedByTime[b.StartTime] = b
	}

	summary := DaySummary{
		Date:     date,
		Free:     make([]types.TimeString, 0, template.SlotCount()),
		Occupied: make([]OccupiedSlot, 0, len(occupiedByTime)),
	}

	for _, slot := range template.Slots() {
		b, taken := occupiedByTime[slot]
		if !taken {
			summary.Free = append(summary.Free, slot)
			continue
		}

		summary.Occupied = append(summary.Occupied, OccupiedSlot{
			StartTime:     slot,
			BookingID:     b.ID,
			RequesterID:   b.RequesterID,
			RequesterName: names[b.RequesterID],
		})
	}

	summary.IsFull = len(summary.Occupied) >= template.SlotCount()
	return summary
}
