package get_available_slots

import (
	"time"

	"github.com/glamly/BSP-SchedulingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	UserID     int64     // ID пользователя (для логирования, не влияет на результат)
	ProviderID int64     // ID мастера
	ServiceID  int64     // ID услуги
	Date       time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time          // Дата, на которую запрашивались слоты
	ProviderID      int64              // ID мастера
	ServiceID       int64              // ID услуги
	DurationMinutes int                // Длительность услуги в минутах
	Slots           []types.TimeString // Свободные времена начала по возрастанию
}
