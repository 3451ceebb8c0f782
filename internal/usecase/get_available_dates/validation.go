package get_available_dates

import (
	"fmt"

	"github.com/google/uuid"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ProviderID == uuid.Nil {
		return fmt.Errorf("%w: providerID is required", ErrInvalidInput)
	}

	if req.ServiceID == uuid.Nil {
		return fmt.Errorf("%w: serviceID is required", ErrInvalidInput)
	}

	if req.Month.IsZero() {
		return fmt.Errorf("%w: month is required", ErrInvalidInput)
	}

	return nil
}
