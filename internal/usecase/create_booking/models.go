package create_booking

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на создание бронирования
// Клиент присылает только момент начала: конец всегда вычисляется сервером
// из актуальной длительности услуги
type Request struct {
	ProviderID  uuid.UUID // ID мастера
	ServiceID   uuid.UUID // ID услуги
	StartAt     time.Time // Запрошенный момент начала
	ClientName  string    // Имя клиента
	ClientEmail string    // Email клиента (идентификатор клиента)
	ClientPhone *string   // Телефон клиента (опционально)
	Notes       *string   // Заметки клиента (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID               uuid.UUID `json:"id"`
	ConfirmationCode string    `json:"confirmationCode"`
	ProviderID       uuid.UUID `json:"providerId"`
	ServiceID        uuid.UUID `json:"serviceId"`
	StartAt          time.Time `json:"startAt"`
	EndAt            time.Time `json:"endAt"`
	Status           string    `json:"status"`

	ServiceName     string  `json:"serviceName"`
	DurationMinutes int     `json:"durationMinutes"`
	ServicePrice    float64 `json:"servicePrice"`
	ProviderName    string  `json:"providerName"`
	ClientName      string  `json:"clientName"`
	ClientEmail     string  `json:"clientEmail"`
	ClientPhone     *string `json:"clientPhone,omitempty"`
	ClientNotes     *string `json:"clientNotes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
