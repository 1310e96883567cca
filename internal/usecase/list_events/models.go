package list_events

import (
	"time"

	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/pkg/types"
)

// Request модель запроса событий календаря за период
type Request struct {
	CounselorID int64     // ID консультанта
	StartDate   time.Time // Начало периода (включительно)
	EndDate     time.Time // Конец периода (включительно)
}

// Response модель ответа со списком событий
type Response struct {
	CounselorID int64           // ID консультанта
	StartDate   time.Time       // Начало периода
	EndDate     time.Time       // Конец периода
	Events      []CalendarEvent // События в хронологическом порядке
}

// CalendarEvent одно событие календаря
// Обычное событие - одна approved-запись; полностью занятый день
// сворачивается в одно событие с IsFull=true и без слота
type CalendarEvent struct {
	Date      time.Time         // Дата события
	StartTime *types.TimeString // Слот; nil для события "день занят"
	Label     string            // Подпись для отображения
	BookingID *int64            // ID записи; nil для события "день занят"
	IsFull    bool              // Признак полностью занятого дня
}
