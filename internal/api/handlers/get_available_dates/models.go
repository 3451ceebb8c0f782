package get_available_dates

import (
	getAvailableDates "github.com/m04kA/Salon-BookingService/internal/usecase/get_available_dates"
)

// AvailableDatesResponse HTTP response model
type AvailableDatesResponse struct {
	Month      string   `json:"month"`
	ProviderID string   `json:"providerId"`
	ServiceID  string   `json:"serviceId"`
	Dates      []string `json:"dates"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableDates.Response) *AvailableDatesResponse {
	return &AvailableDatesResponse{
		Month:      resp.Month,
		ProviderID: resp.ProviderID.String(),
		ServiceID:  resp.ServiceID.String(),
		Dates:      resp.Dates,
	}
}
