package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/Salon-BookingService/internal/integrations/notifier"
	"github.com/m04kA/Salon-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями: чтение, отмена,
// переводы статусов персоналом. Допуск новых бронирований живёт
// отдельно в usecase/create_booking
type Service struct {
	bookingRepo BookingRepository
	notifier    NotifierClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	notifierClient NotifierClient,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		notifier:    notifierClient,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID (доступно только персоналу)
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// LookupByCode получает бронирование по коду подтверждения
// Публичная операция: код подтверждения сам по себе является секретом клиента
func (s *Service) LookupByCode(ctx context.Context, code string) (*models.BookingResponse, error) {
	s.logger.Info("LookupByCode: fetching booking code=%s", code)

	booking, err := s.bookingRepo.GetByConfirmationCode(ctx, code)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("LookupByCode: booking code=%s not found", code)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("LookupByCode: repository error for code=%s: %v", code, err)
		return nil, fmt.Errorf("%w: LookupByCode - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// List получает бронирования с гибкой фильтрацией (доступно только персоналу)
//
// Примеры использования:
// - Все активные бронирования мастера: указать ProviderID
// - Бронирования за период: StartDate и EndDate
// - Только подтверждённые: указать Status = "confirmed"
// - Включая отменённые: IncludeInactive = true
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := "List: fetching bookings"
	if req.ProviderID != nil {
		logMsg += fmt.Sprintf(", provider=%s", *req.ProviderID)
	}
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Клиент отменяет по коду подтверждения, персонал - по ID бронирования.
// Отменить можно только бронирования в статусах pending и confirmed;
// отменённое бронирование немедленно освобождает свой интервал времени
func (s *Service) Cancel(ctx context.Context, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	booking, err := s.resolveBooking(ctx, req)
	if err != nil {
		return nil, err
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%s cannot be cancelled, status=%s", booking.ID, booking.Status)
		return nil, ErrCannotCancel
	}

	var reason string
	if req.Reason != nil {
		if len(*req.Reason) > domain.MaxCancellationReasonLength {
			s.logger.Warn("Cancel: cancellation reason too long for booking id=%s", booking.ID)
			return nil, fmt.Errorf("%w: cancellation reason too long", ErrInvalidInput)
		}
		reason = *req.Reason
	}

	if err := s.bookingRepo.Cancel(ctx, booking.ID, reason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%s not found during cancellation", booking.ID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%s: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%s", booking.ID)

	// Уведомление fire-and-forget: сбой не влияет на результат отмены
	go func() {
		notifyCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s.notifier.SendCancellation(notifyCtx, notifier.CancellationNotification{
			ConfirmationCode: booking.ConfirmationCode,
			ClientName:       booking.ClientName,
			ClientEmail:      booking.ClientEmail,
			ProviderName:     booking.ProviderName,
			ServiceName:      booking.ServiceName,
			StartAt:          booking.StartAt,
			Reason:           req.Reason,
		})
	}()

	cancelled, err := s.bookingRepo.GetByID(ctx, booking.ID)
	if err != nil {
		// Отмена уже применена; отдаём снимок до отмены с обновлённым статусом
		s.logger.Warn("Cancel: failed to re-read booking id=%s after cancellation: %v", booking.ID, err)
		booking.Status = domain.StatusCancelled
		return models.FromDomainBooking(booking), nil
	}

	return models.FromDomainBooking(cancelled), nil
}

// UpdateStatus обновляет статус бронирования (доступно только персоналу)
// Переходы разрешены только из активных статусов pending и confirmed;
// завершённые, отменённые и no_show бронирования терминальны
func (s *Service) UpdateStatus(ctx context.Context, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%s to status=%s", req.BookingID, req.Status)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%s", req.Status, req.BookingID)
		return ErrInvalidStatus
	}

	// Отмена идёт через Cancel: там фиксируются причина и время отмены
	if newStatus == domain.StatusCancelled {
		s.logger.Warn("UpdateStatus: cancellation requested via status update for booking id=%s", req.BookingID)
		return ErrInvalidTransition
	}

	booking, err := s.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%s not found", req.BookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%s: %v", req.BookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if booking.IsTerminal() {
		s.logger.Warn("UpdateStatus: booking id=%s is terminal, status=%s", req.BookingID, booking.Status)
		return ErrInvalidTransition
	}

	if err := s.bookingRepo.UpdateStatus(ctx, req.BookingID, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%s not found during update", req.BookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%s: %v", req.BookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%s to status=%s", req.BookingID, newStatus)
	return nil
}

// resolveBooking находит бронирование по ID или коду подтверждения.
// Если заданы оба, код обязан принадлежать этому бронированию: так клиент
// без служебного заголовка не может отменить чужую запись по её ID
func (s *Service) resolveBooking(ctx context.Context, req *models.CancelBookingRequest) (*domain.Booking, error) {
	var (
		booking *domain.Booking
		err     error
	)

	switch {
	case req.BookingID != nil:
		s.logger.Info("Cancel: cancelling booking id=%s", *req.BookingID)
		booking, err = s.bookingRepo.GetByID(ctx, *req.BookingID)
	case req.ConfirmationCode != nil:
		s.logger.Info("Cancel: cancelling booking code=%s", *req.ConfirmationCode)
		booking, err = s.bookingRepo.GetByConfirmationCode(ctx, *req.ConfirmationCode)
	default:
		s.logger.Warn("Cancel: neither booking id nor confirmation code provided")
		return nil, fmt.Errorf("%w: booking id or confirmation code is required", ErrInvalidInput)
	}

	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking not found")
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error: %v", err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if req.BookingID != nil && req.ConfirmationCode != nil && booking.ConfirmationCode != *req.ConfirmationCode {
		s.logger.Warn("Cancel: confirmation code mismatch for booking id=%s", booking.ID)
		return nil, ErrAccessDenied
	}

	return booking, nil
}
