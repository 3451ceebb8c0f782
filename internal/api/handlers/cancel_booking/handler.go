package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/Salon-BookingService/internal/api/handlers"
	bookingsService "github.com/m04kA/Salon-BookingService/internal/service/bookings"
	"github.com/m04kA/Salon-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBookingID   = "некорректный идентификатор бронирования"
	msgMissingCode        = "требуется код подтверждения"
	msgBookingNotFound    = "бронирование не найдено"
	msgCannotCancel       = "бронирование не может быть отменено"
	msgAccessDenied       = "доступ запрещён"
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

// Handle POST /api/v1/bookings/{bookingId}/cancel
// Публичный маршрут: клиент обязан предъявить код подтверждения в теле.
// Персонал (со служебным заголовком X-User-ID) отменяет без кода
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := uuid.Parse(mux.Vars(r)["bookingId"])
	if err != nil {
		h.logger.Warn("POST /bookings/cancel - Invalid booking id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Маршрут публичный (вне Auth middleware), поэтому персонал
	// определяется по наличию служебного заголовка
	isStaff := r.Header.Get("X-User-ID") != ""

	if !isStaff && req.ConfirmationCode == nil {
		h.logger.Warn("POST /bookings/cancel - Missing confirmation code: booking_id=%s", bookingID)
		handlers.RespondForbidden(w, msgMissingCode)
		return
	}

	serviceReq := &models.CancelBookingRequest{
		BookingID: &bookingID,
		Reason:    req.Reason,
	}
	if !isStaff {
		serviceReq.ConfirmationCode = req.ConfirmationCode
	}

	result, err := h.service.Cancel(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/cancel - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookingsService.ErrCannotCancel):
			h.logger.Warn("POST /bookings/cancel - Cannot cancel: booking_id=%s", bookingID)
			handlers.RespondBadRequest(w, msgCannotCancel)

		case errors.Is(err, bookingsService.ErrAccessDenied):
			h.logger.Warn("POST /bookings/cancel - Access denied: booking_id=%s", bookingID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookingsService.ErrInvalidInput):
			h.logger.Warn("POST /bookings/cancel - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings/cancel - Failed: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/cancel - Booking cancelled: booking_id=%s", bookingID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
