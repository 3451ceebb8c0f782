package get_available_dates

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/Salon-BookingService/internal/api/handlers"
	"github.com/m04kA/Salon-BookingService/internal/domain"
	getAvailableDates "github.com/m04kA/Salon-BookingService/internal/usecase/get_available_dates"
)

const (
	msgInvalidProviderID = "некорректный идентификатор мастера"
	msgInvalidServiceID  = "некорректный идентификатор услуги"
	msgInvalidMonth      = "некорректный формат месяца, ожидается YYYY-MM"
	msgProviderNotFound  = "мастер не найден"
	msgServiceNotFound   = "услуга не найдена"
)

type Handler struct {
	useCase GetAvailableDatesUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableDatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/services/{serviceId}/available-dates?month=YYYY-MM
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	providerID, err := uuid.Parse(vars["providerId"])
	if err != nil {
		h.logger.Warn("GET /available-dates - Invalid provider id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	serviceID, err := uuid.Parse(vars["serviceId"])
	if err != nil {
		h.logger.Warn("GET /available-dates - Invalid service id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	month, err := time.Parse(domain.MonthFormat, r.URL.Query().Get("month"))
	if err != nil {
		h.logger.Warn("GET /available-dates - Invalid month: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableDates.Request{
		ProviderID: providerID,
		ServiceID:  serviceID,
		Month:      month,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableDates.ErrProviderNotFound):
			h.logger.Warn("GET /available-dates - Provider not found: provider_id=%s", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, getAvailableDates.ErrServiceNotFound):
			h.logger.Warn("GET /available-dates - Service not found: service_id=%s", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableDates.ErrInvalidInput):
			h.logger.Warn("GET /available-dates - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidMonth)

		default:
			h.logger.Error("GET /available-dates - Failed: provider_id=%s, service_id=%s, error=%v",
				providerID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /available-dates - Returned %d dates: provider_id=%s, service_id=%s",
		len(result.Dates), providerID, serviceID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
