package get_available_slots

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ProviderID uuid.UUID // ID мастера
	ServiceID  uuid.UUID // ID услуги
	Date       time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            string    // Дата, на которую запрашивались слоты (YYYY-MM-DD)
	ProviderID      uuid.UUID // ID мастера
	ServiceID       uuid.UUID // ID услуги
	ServiceName     string    // Название услуги
	DurationMinutes int       // Эффективная длительность услуги у мастера
	Slots           []Slot    // Список доступных слотов
}

// Slot модель доступного слота
// Начало и конец — абсолютные моменты времени; Display — человекочитаемое
// время начала в таймзоне салона
type Slot struct {
	StartAt time.Time `json:"startAt"`
	EndAt   time.Time `json:"endAt"`
	Display string    `json:"display"`
}
