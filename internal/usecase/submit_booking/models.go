package submit_booking

import (
	"time"

	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/pkg/types"
)

// Request модель запроса на подачу заявки
type Request struct {
	RequesterID int64            // ID студента
	CounselorID int64            // ID консультанта
	Topic       string           // Описание проблемы
	Contact     string           // Контактный телефон
	Date        time.Time        // Дата записи (без времени)
	StartTime   types.TimeString // Слот (например, "08:00")
}

// Response модель ответа с созданной заявкой
type Response struct {
	ID          int64            // ID созданной заявки
	RequesterID int64            // ID студента
	CounselorID int64            // ID консультанта
	Topic       string           // Описание проблемы
	Contact     string           // Контактный телефон
	Date        time.Time        // Дата записи
	StartTime   types.TimeString // Слот
	Status      string           // Всегда pending при создании

	CreatedAt time.Time // Время создания
}
