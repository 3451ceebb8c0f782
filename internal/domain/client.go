package domain

import "github.com/google/uuid"

// Client клиент салона, идентифицируется по email
// Запись создаётся или обновляется при оформлении бронирования
type Client struct {
	ID    uuid.UUID
	Email string
	Name  string
	Phone *string
}
