package create_booking

import (
	"time"

	"github.com/google/uuid"

	createBooking "github.com/m04kA/Salon-BookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
// Клиент присылает только startAt: конец вычисляется сервером из длительности услуги
type CreateBookingRequest struct {
	ProviderID  string  `json:"providerId"`
	ServiceID   string  `json:"serviceId"`
	StartAt     string  `json:"startAt"` // RFC3339, например "2026-09-14T14:00:00-04:00"
	ClientName  string  `json:"clientName"`
	ClientEmail string  `json:"clientEmail"`
	ClientPhone *string `json:"clientPhone,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID               string  `json:"id"`
	ConfirmationCode string  `json:"confirmationCode"`
	ProviderID       string  `json:"providerId"`
	ServiceID        string  `json:"serviceId"`
	StartAt          string  `json:"startAt"`
	EndAt            string  `json:"endAt"`
	Status           string  `json:"status"`
	ServiceName      string  `json:"serviceName"`
	DurationMinutes  int     `json:"durationMinutes"`
	ServicePrice     float64 `json:"servicePrice"`
	ProviderName     string  `json:"providerName"`
	ClientName       string  `json:"clientName"`
	ClientEmail      string  `json:"clientEmail"`
	ClientPhone      *string `json:"clientPhone,omitempty"`
	ClientNotes      *string `json:"clientNotes,omitempty"`
	CreatedAt        string  `json:"createdAt"`
	UpdatedAt        string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	providerID, err := uuid.Parse(r.ProviderID)
	if err != nil {
		return nil, err
	}

	serviceID, err := uuid.Parse(r.ServiceID)
	if err != nil {
		return nil, err
	}

	startAt, err := time.Parse(time.RFC3339, r.StartAt)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ProviderID:  providerID,
		ServiceID:   serviceID,
		StartAt:     startAt,
		ClientName:  r.ClientName,
		ClientEmail: r.ClientEmail,
		ClientPhone: r.ClientPhone,
		Notes:       r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:               resp.ID.String(),
		ConfirmationCode: resp.ConfirmationCode,
		ProviderID:       resp.ProviderID.String(),
		ServiceID:        resp.ServiceID.String(),
		StartAt:          resp.StartAt.Format(time.RFC3339),
		EndAt:            resp.EndAt.Format(time.RFC3339),
		Status:           resp.Status,
		ServiceName:      resp.ServiceName,
		DurationMinutes:  resp.DurationMinutes,
		ServicePrice:     resp.ServicePrice,
		ProviderName:     resp.ProviderName,
		ClientName:       resp.ClientName,
		ClientEmail:      resp.ClientEmail,
		ClientPhone:      resp.ClientPhone,
		ClientNotes:      resp.ClientNotes,
		CreatedAt:        resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        resp.UpdatedAt.Format(time.RFC3339),
	}
}
