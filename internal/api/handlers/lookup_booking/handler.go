package lookup_booking

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/Salon-BookingService/internal/api/handlers"
	"github.com/m04kA/Salon-BookingService/internal/domain"
	bookingsService "github.com/m04kA/Salon-BookingService/internal/service/bookings"
)

const (
	msgInvalidCode     = "некорректный код подтверждения"
	msgBookingNotFound = "бронирование не найдено"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/lookup/{code}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(mux.Vars(r)["code"])
	if len(code) != domain.ConfirmationCodeLength {
		h.logger.Warn("GET /bookings/lookup - Invalid code format")
		handlers.RespondBadRequest(w, msgInvalidCode)
		return
	}

	result, err := h.service.LookupByCode(r.Context(), code)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/lookup - Booking not found: code=%s", code)
			handlers.RespondNotFound(w, msgBookingNotFound)

		default:
			h.logger.Error("GET /bookings/lookup - Failed: code=%s, error=%v", code, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/lookup - Booking found: booking_id=%s", result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
