package get_available_dates

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на получение доступных дат месяца
type Request struct {
	ProviderID uuid.UUID // ID мастера
	ServiceID  uuid.UUID // ID услуги
	Month      time.Time // Первый день запрошенного месяца в таймзоне салона
}

// Response модель ответа со списком дат, на которые вероятно есть слоты
type Response struct {
	Month      string    // Запрошенный месяц (YYYY-MM)
	ProviderID uuid.UUID // ID мастера
	ServiceID  uuid.UUID // ID услуги
	Dates      []string  // Доступные даты в формате YYYY-MM-DD, по возрастанию
}
