package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/Salon-BookingService/internal/api/handlers"
	createBooking "github.com/m04kA/Salon-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidStartAt      = "некорректный формат времени начала, ожидается RFC3339"
	msgProviderNotFound    = "мастер не найден"
	msgServiceNotFound     = "услуга не найдена"
	msgTooSoon             = "слишком поздно для бронирования этого времени"
	msgDateTooFar          = "дата бронирования слишком далеко в будущем"
	msgOutsideWorkingHours = "запрошенное время вне рабочих часов мастера"
	msgProviderUnavailable = "мастер недоступен в выбранное время"
	msgSlotConflict        = "выбранное время уже занято"
	msgConcurrencyConflict = "время было занято параллельным запросом, попробуйте ещё раз"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartAt)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot conflict: provider_id=%s, start_at=%s",
				req.ProviderID, req.StartAt)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, createBooking.ErrConcurrencyConflict):
			h.logger.Warn("POST /bookings - Concurrency conflict: provider_id=%s, start_at=%s",
				req.ProviderID, req.StartAt)
			handlers.RespondError(w, http.StatusConflict, msgConcurrencyConflict)

		case errors.Is(err, createBooking.ErrProviderNotFound):
			h.logger.Warn("POST /bookings - Provider not found: provider_id=%s", req.ProviderID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%s", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrTooSoon):
			h.logger.Warn("POST /bookings - Too soon: provider_id=%s, start_at=%s",
				req.ProviderID, req.StartAt)
			handlers.RespondBadRequest(w, msgTooSoon)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings - Date too far in future: provider_id=%s, start_at=%s",
				req.ProviderID, req.StartAt)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrOutsideWorkingHours):
			h.logger.Warn("POST /bookings - Outside working hours: provider_id=%s, start_at=%s",
				req.ProviderID, req.StartAt)
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, createBooking.ErrProviderUnavailable):
			h.logger.Warn("POST /bookings - Provider unavailable: provider_id=%s, start_at=%s",
				req.ProviderID, req.StartAt)
			handlers.RespondBadRequest(w, msgProviderUnavailable)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: provider_id=%s, error=%v",
				req.ProviderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, code=%s, provider_id=%s",
		result.ID, result.ConfirmationCode, req.ProviderID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
