package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/catalog"
	"github.com/m04kA/Salon-BookingService/internal/integrations/notifier"
	"github.com/m04kA/Salon-BookingService/pkg/txmanager"
)

// Число попыток подобрать уникальный код подтверждения
const maxCodeAttempts = 5

// UseCase use case для создания бронирования
//
// Допуск выполняется в сериализуемой транзакции: все проверки (рабочие окна,
// time-off, пересечения с существующими бронированиями) повторяются внутри
// транзакции над актуальными данными, независимо от того, что клиент видел
// в списке слотов. Две конкурирующие заявки на пересекающиеся интервалы
// одного мастера не могут закоммититься обе: проигравшая получает ошибку
// сериализации и конвертируется в ErrConcurrencyConflict
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	catalogRepo  CatalogRepository
	policyRepo   PolicyRepository
	clientRepo   ClientRepository
	notifier     NotifierClient
	txManager    TransactionManager
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	catalogRepo CatalogRepository,
	policyRepo PolicyRepository,
	clientRepo ClientRepository,
	notifierClient NotifierClient,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		catalogRepo:  catalogRepo,
		policyRepo:   policyRepo,
		clientRepo:   clientRepo,
		notifier:     notifierClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		location:     location,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: provider=%s, service=%s, startAt=%s, email=%s",
		req.ProviderID, req.ServiceID, req.StartAt.Format(time.RFC3339), req.ClientEmail)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем мастера
	provider, err := uc.catalogRepo.GetProvider(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrProviderNotFound) {
			uc.logger.Warn("CreateBooking: provider id=%s not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("CreateBooking: failed to get provider id=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	// 4. Получаем услугу с применёнными переопределениями мастера
	// Длительность и цена фиксируются здесь и денормализуются в бронирование
	service, err := uc.catalogRepo.GetEffectiveService(ctx, req.ProviderID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 5. Вычисляем интервал бронирования: конец всегда считается сервером
	startAt := req.StartAt
	endAt := startAt.Add(time.Duration(service.DurationMinutes) * time.Minute)
	candidate := domain.Interval{Start: startAt, End: endAt}

	var result *domain.Booking

	// 6. Выполняем проверки и вставку в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Получаем политику бронирования
		policy, err := uc.policyRepo.GetBookingPolicy(txCtx)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get booking policy: %v", err)
			return fmt.Errorf("%w: failed to get booking policy: %v", ErrInternal, err)
		}

		// 6.2. Проверяем правила заблаговременного бронирования
		if startAt.Before(policy.MinBookingTime(now)) {
			uc.logger.Warn("CreateBooking: startAt=%s violates min advance of %d hours",
				startAt.Format(time.RFC3339), policy.MinAdvanceHours)
			return ErrTooSoon
		}

		if uc.dayStart(startAt).After(policy.MaxBookingDate(now, uc.location)) {
			uc.logger.Warn("CreateBooking: startAt=%s exceeds max advance of %d days",
				startAt.Format(time.RFC3339), policy.MaxAdvanceDays)
			return ErrDateTooFarInFuture
		}

		// 6.3. Интервал должен целиком помещаться в одно рабочее окно мастера
		if err := uc.checkWorkingHours(txCtx, req.ProviderID, candidate); err != nil {
			return err
		}

		// 6.4. Интервал не должен пересекаться с time-off мастера
		if err := uc.checkTimeOff(txCtx, req.ProviderID, candidate); err != nil {
			return err
		}

		// 6.5. Проверяем пересечения с существующими бронированиями (FOR UPDATE)
		// Диапазон выборки расширяется влево на буфер: бронирование,
		// закончившееся раньше кандидата, может дотянуться до него буфером
		if err := uc.checkConflicts(txCtx, req.ProviderID, candidate, policy.BufferMinutes); err != nil {
			return err
		}

		// 6.6. Находим или создаем клиента по email
		client, err := uc.clientRepo.FindOrCreateByEmail(txCtx, req.ClientEmail, req.ClientName, req.ClientPhone)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to find or create client email=%s: %v", req.ClientEmail, err)
			return fmt.Errorf("%w: failed to find or create client: %v", ErrInternal, err)
		}

		// 6.7. Вставляем бронирование с уникальным кодом подтверждения
		created, err := uc.insertWithCode(txCtx, &domain.Booking{
			ID:         uuid.New(),
			ClientID:   client.ID,
			ProviderID: req.ProviderID,
			ServiceID:  req.ServiceID,
			StartAt:    startAt,
			EndAt:      endAt,
			Status:     domain.StatusConfirmed,
			// Денормализация: снимок услуги, мастера и клиента на момент бронирования
			ServiceName:     service.Name,
			DurationMinutes: service.DurationMinutes,
			ServicePrice:    service.Price,
			ProviderName:    provider.Name,
			ClientName:      req.ClientName,
			ClientEmail:     client.Email,
			ClientPhone:     req.ClientPhone,
			ClientNotes:     req.Notes,
		})
		if err != nil {
			return err
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("CreateBooking: serialization failure for provider=%s, startAt=%s: %v",
				req.ProviderID, startAt.Format(time.RFC3339), err)
			return nil, ErrConcurrencyConflict
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s, code=%s",
		result.ID, result.ConfirmationCode)

	// 7. Уведомление fire-and-forget: отправляется после коммита,
	// сбой не влияет на результат допуска
	booking := result
	go func() {
		notifyCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		uc.notifier.SendBookingConfirmation(notifyCtx, notifier.BookingNotification{
			ConfirmationCode: booking.ConfirmationCode,
			ClientName:       booking.ClientName,
			ClientEmail:      booking.ClientEmail,
			ProviderName:     booking.ProviderName,
			ServiceName:      booking.ServiceName,
			StartAt:          booking.StartAt,
			EndAt:            booking.EndAt,
		})
	}()

	return uc.buildResponse(result), nil
}

// checkWorkingHours проверяет, что кандидат целиком лежит в одном рабочем окне
func (uc *UseCase) checkWorkingHours(ctx context.Context, providerID uuid.UUID, candidate domain.Interval) error {
	weeklyHours, err := uc.scheduleRepo.GetWeeklyHours(ctx, providerID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get weekly hours for provider id=%s: %v", providerID, err)
		return fmt.Errorf("%w: failed to get weekly hours: %v", ErrInternal, err)
	}

	weekday := int(candidate.Start.In(uc.location).Weekday())

	for _, wh := range weeklyHours {
		if wh.DayOfWeek != weekday {
			continue
		}
		window, err := wh.WindowOn(candidate.Start, uc.location)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to resolve window for provider id=%s: %v", providerID, err)
			return fmt.Errorf("%w: failed to resolve working window: %v", ErrInternal, err)
		}
		if window.Contains(candidate) {
			return nil
		}
	}

	uc.logger.Warn("CreateBooking: interval [%s, %s) is outside working hours of provider id=%s",
		candidate.Start.Format(time.RFC3339), candidate.End.Format(time.RFC3339), providerID)
	return ErrOutsideWorkingHours
}

// checkTimeOff проверяет, что кандидат не пересекается с time-off мастера
func (uc *UseCase) checkTimeOff(ctx context.Context, providerID uuid.UUID, candidate domain.Interval) error {
	timeOff, err := uc.scheduleRepo.GetTimeOff(ctx, providerID, candidate.Start, candidate.End)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get time off for provider id=%s: %v", providerID, err)
		return fmt.Errorf("%w: failed to get time off: %v", ErrInternal, err)
	}

	for _, t := range timeOff {
		if t.Interval().Overlaps(candidate) {
			uc.logger.Warn("CreateBooking: interval overlaps time off of provider id=%s", providerID)
			return ErrProviderUnavailable
		}
	}

	return nil
}

// checkConflicts проверяет пересечения кандидата с активными бронированиями,
// расширенными буфером после каждого. Буфер применяется только к существующим
// бронированиям: кандидат может начинаться ровно в момент окончания чужого буфера
func (uc *UseCase) checkConflicts(ctx context.Context, providerID uuid.UUID, candidate domain.Interval, bufferMinutes int) error {
	fetchFrom := candidate.Start.Add(-time.Duration(bufferMinutes) * time.Minute)

	bookings, err := uc.bookingRepo.GetActiveInRange(ctx, providerID, fetchFrom, candidate.End)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get bookings for provider id=%s: %v", providerID, err)
		return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		if b.Interval().WithBufferAfter(bufferMinutes).Overlaps(candidate) {
			uc.logger.Warn("CreateBooking: interval conflicts with booking id=%s of provider id=%s", b.ID, providerID)
			return ErrSlotConflict
		}
	}

	return nil
}

// insertWithCode вставляет бронирование, подбирая уникальный код подтверждения.
// Уникальность проверяется до вставки; ограничение уникальности в БД ловит
// гонку между проверкой и вставкой, тогда попытка повторяется с новым кодом
func (uc *UseCase) insertWithCode(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := generateConfirmationCode()
		if err != nil {
			uc.logger.Error("CreateBooking: failed to generate confirmation code: %v", err)
			return nil, err
		}

		exists, err := uc.bookingRepo.CodeExists(ctx, code)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to check confirmation code: %v", err)
			return nil, fmt.Errorf("%w: failed to check confirmation code: %v", ErrInternal, err)
		}
		if exists {
			uc.logger.Warn("CreateBooking: confirmation code collision, attempt %d", attempt+1)
			continue
		}

		booking.ConfirmationCode = code

		created, err := uc.bookingRepo.Create(ctx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrDuplicateCode) {
				uc.logger.Warn("CreateBooking: confirmation code race, attempt %d", attempt+1)
				continue
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		return created, nil
	}

	uc.logger.Error("CreateBooking: exhausted %d attempts to generate a unique confirmation code", maxCodeAttempts)
	return nil, ErrCodeGeneration
}

// dayStart возвращает полночь дня, на который приходится момент, в таймзоне салона
func (uc *UseCase) dayStart(t time.Time) time.Time {
	local := t.In(uc.location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, uc.location)
}

func (uc *UseCase) buildResponse(b *domain.Booking) *Response {
	return &Response{
		ID:               b.ID,
		ConfirmationCode: b.ConfirmationCode,
		ProviderID:       b.ProviderID,
		ServiceID:        b.ServiceID,
		StartAt:          b.StartAt,
		EndAt:            b.EndAt,
		Status:           string(b.Status),
		ServiceName:      b.ServiceName,
		DurationMinutes:  b.DurationMinutes,
		ServicePrice:     b.ServicePrice,
		ProviderName:     b.ProviderName,
		ClientName:       b.ClientName,
		ClientEmail:      b.ClientEmail,
		ClientPhone:      b.ClientPhone,
		ClientNotes:      b.ClientNotes,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}
