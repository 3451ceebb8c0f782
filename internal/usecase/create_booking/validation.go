package create_booking

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/Salon-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ProviderID == uuid.Nil {
		return fmt.Errorf("%w: providerID is required", ErrInvalidInput)
	}

	if req.ServiceID == uuid.Nil {
		return fmt.Errorf("%w: serviceID is required", ErrInvalidInput)
	}

	if req.StartAt.IsZero() {
		return fmt.Errorf("%w: startAt is required", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.ClientName)
	if name == "" {
		return fmt.Errorf("%w: client name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxClientNameLength {
		return fmt.Errorf("%w: client name is too long", ErrInvalidInput)
	}

	if err := validateEmail(req.ClientEmail); err != nil {
		return err
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxClientNotesLength {
		return fmt.Errorf("%w: notes are too long", ErrInvalidInput)
	}

	return nil
}

// validateEmail грубая проверка формата email: непустой, с @ и точкой в домене
// Полная RFC-валидация не нужна, письмо с подтверждением всё равно финальный арбитр
func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("%w: client email is required", ErrInvalidInput)
	}

	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return fmt.Errorf("%w: invalid email format", ErrInvalidInput)
	}

	domainPart := email[at+1:]
	if !strings.Contains(domainPart, ".") || strings.Contains(email, " ") {
		return fmt.Errorf("%w: invalid email format", ErrInvalidInput)
	}

	return nil
}
