package get_availability

import (
	"time"

	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/pkg/types"
)

// Request модель запроса доступности слотов на дату
type Request struct {
	CounselorID int64     // ID консультанта
	Date        time.Time // Дата (без времени)
}

// Response модель ответа с доступностью слотов
// Free и Occupied не пересекаются и вместе дают все слоты шаблона
type Response struct {
	Date        time.Time        // Дата, на которую запрашивалась доступность
	CounselorID int64            // ID консультанта
	Free        []types.TimeString // Свободные слоты в порядке шаблона
	Occupied    []OccupiedSlot     // Занятые слоты
	IsFull      bool               // Все ли слоты заняты
}

// OccupiedSlot занятый слот с отображаемой информацией о студенте
type OccupiedSlot struct {
	StartTime     types.TimeString // Слот
	BookingID     int64            // ID approved-записи
	RequesterName string           // Отображаемое имя студента
}
