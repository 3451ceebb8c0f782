package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	catalogRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/catalog"
)

// UseCase use case для получения доступных слотов на указанную дату
// Слоты вычисляются на лету из расписания мастера, его time-off,
// активных бронирований и политики салона
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	catalogRepo  CatalogRepository
	policyRepo   PolicyRepository
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
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		catalogRepo:  catalogRepo,
		policyRepo:   policyRepo,
		timeProvider: &RealTimeProvider{},
		location:     location,
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: provider=%s, service=%s, date=%s",
		req.ProviderID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем мастера
	if _, err := uc.catalogRepo.GetProvider(ctx, req.ProviderID); err != nil {
		if errors.Is(err, catalogRepo.ErrProviderNotFound) {
			uc.logger.Warn("GetAvailableSlots: provider id=%s not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get provider id=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	// 4. Получаем услугу с применёнными переопределениями мастера
	service, err := uc.catalogRepo.GetEffectiveService(ctx, req.ProviderID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 5. Получаем политику бронирования
	policy, err := uc.policyRepo.GetBookingPolicy(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get booking policy: %v", err)
		return nil, fmt.Errorf("%w: failed to get booking policy: %v", ErrInternal, err)
	}

	// 6. Валидация даты с учетом политики
	if err := validateDate(req.Date, now, policy, uc.location); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 7. Получаем рабочие окна мастера на этот день недели
	weeklyHours, err := uc.scheduleRepo.GetWeeklyHours(ctx, req.ProviderID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get weekly hours for provider id=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get weekly hours: %v", ErrInternal, err)
	}

	windows, err := uc.windowsOn(weeklyHours, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to resolve windows for date=%s: %v",
			req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to resolve working windows: %v", ErrInternal, err)
	}

	if len(windows) == 0 {
		uc.logger.Info("GetAvailableSlots: provider id=%s does not work on %s",
			req.ProviderID, req.Date.Format(domain.DateFormat))
		return uc.emptyResponse(req, service), nil
	}

	// 8. Границы дня в таймзоне салона
	start := dayStart(req.Date, uc.location)
	end := start.AddDate(0, 0, 1)

	// 9. Получаем time-off и активные бронирования дня
	// Диапазон бронирований расширяется влево на буфер: бронирование,
	// закончившееся до начала дня, может буфером дотянуться до первых слотов
	timeOff, err := uc.scheduleRepo.GetTimeOff(ctx, req.ProviderID, start, end)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get time off for provider id=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get time off: %v", ErrInternal, err)
	}

	fetchFrom := start.Add(-time.Duration(policy.BufferMinutes) * time.Minute)
	bookings, err := uc.bookingRepo.GetActiveInRange(ctx, req.ProviderID, fetchFrom, end)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings for provider id=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 10. Генерируем слоты по каждому рабочему окну
	exclusions := buildExclusions(timeOff, bookings, policy.BufferMinutes)
	minStart := policy.MinBookingTime(now)

	slots := make([]domain.Slot, 0)
	for _, window := range windows {
		slots = append(slots, generateSlots(
			window,
			exclusions,
			service.DurationMinutes,
			policy.SlotGranularityMinutes,
			minStart,
		)...)
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartAt.Before(slots[j].StartAt)
	})

	uc.logger.Info("GetAvailableSlots: generated %d slots for provider=%s, service=%s, date=%s",
		len(slots), req.ProviderID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return uc.buildResponse(req, service, slots), nil
}

// windowsOn привязывает еженедельные окна к конкретной дате
func (uc *UseCase) windowsOn(weeklyHours []domain.WeeklyHours, date time.Time) ([]domain.Interval, error) {
	weekday := int(date.In(uc.location).Weekday())

	windows := make([]domain.Interval, 0)
	for _, wh := range weeklyHours {
		if wh.DayOfWeek != weekday {
			continue
		}
		window, err := wh.WindowOn(date, uc.location)
		if err != nil {
			return nil, err
		}
		windows = append(windows, window)
	}

	return windows, nil
}

func (uc *UseCase) emptyResponse(req *Request, service *domain.EffectiveService) *Response {
	return &Response{
		Date:            req.Date.Format(domain.DateFormat),
		ProviderID:      req.ProviderID,
		ServiceID:       req.ServiceID,
		ServiceName:     service.Name,
		DurationMinutes: service.DurationMinutes,
		Slots:           []Slot{},
	}
}

func (uc *UseCase) buildResponse(req *Request, service *domain.EffectiveService, slots []domain.Slot) *Response {
	out := make([]Slot, len(slots))
	for i, s := range slots {
		out[i] = Slot{
			StartAt: s.StartAt,
			EndAt:   s.EndAt,
			Display: s.Display(uc.location),
		}
	}

	return &Response{
		Date:            req.Date.Format(domain.DateFormat),
		ProviderID:      req.ProviderID,
		ServiceID:       req.ServiceID,
		ServiceName:     service.Name,
		DurationMinutes: service.DurationMinutes,
		Slots:           out,
	}
}
