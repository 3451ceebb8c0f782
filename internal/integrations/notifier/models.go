package notifier

import "time"

// BookingNotification данные бронирования для уведомления клиента
type BookingNotification struct {
	ConfirmationCode string    `json:"confirmation_code"`
	ClientName       string    `json:"client_name"`
	ClientEmail      string    `json:"client_email"`
	ProviderName     string    `json:"provider_name"`
	ServiceName      string    `json:"service_name"`
	StartAt          time.Time `json:"start_at"`
	EndAt            time.Time `json:"end_at"`
}

// CancellationNotification данные отмены для уведомления клиента
type CancellationNotification struct {
	ConfirmationCode string    `json:"confirmation_code"`
	ClientName       string    `json:"client_name"`
	ClientEmail      string    `json:"client_email"`
	ProviderName     string    `json:"provider_name"`
	ServiceName      string    `json:"service_name"`
	StartAt          time.Time `json:"start_at"`
	Reason           *string   `json:"reason,omitempty"`
}
