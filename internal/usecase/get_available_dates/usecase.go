package get_available_dates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	catalogRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/catalog"
)

// UseCase use case для получения дат месяца, на которые вероятно есть слоты
//
// Проверка дат намеренно грубая: учитываются только рабочие окна мастера,
// time-off на весь день и правило минимального заблаговременного
// бронирования. Существующие бронирования НЕ вычитаются: день, полностью
// занятый бронированиями, всё равно попадёт в список и вернёт пустой список
// слотов при детальном запросе. Это дешёвая месячная выборка для календаря;
// точную доступность даёт только запрос слотов на конкретную дату
type UseCase struct {
	scheduleRepo ScheduleRepository
	catalogRepo  CatalogRepository
	policyRepo   PolicyRepository
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleRepo ScheduleRepository,
	catalogRepo CatalogRepository,
	policyRepo PolicyRepository,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo: scheduleRepo,
		catalogRepo:  catalogRepo,
		policyRepo:   policyRepo,
		timeProvider: &RealTimeProvider{},
		location:     location,
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных дат
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableDates: provider=%s, service=%s, month=%s",
		req.ProviderID, req.ServiceID, req.Month.Format(domain.MonthFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableDates: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем мастера
	if _, err := uc.catalogRepo.GetProvider(ctx, req.ProviderID); err != nil {
		if errors.Is(err, catalogRepo.ErrProviderNotFound) {
			uc.logger.Warn("GetAvailableDates: provider id=%s not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("GetAvailableDates: failed to get provider id=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	// 4. Проверяем, что мастер оказывает услугу
	if _, err := uc.catalogRepo.GetEffectiveService(ctx, req.ProviderID, req.ServiceID); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableDates: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableDates: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 5. Получаем политику бронирования
	policy, err := uc.policyRepo.GetBookingPolicy(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableDates: failed to get booking policy: %v", err)
		return nil, fmt.Errorf("%w: failed to get booking policy: %v", ErrInternal, err)
	}

	// 6. Пересекаем месяц с окном бронирования [сегодня, сегодня+maxAdvanceDays]
	// Обе границы включительны
	local := now.In(uc.location)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, uc.location)
	maxDate := policy.MaxBookingDate(now, uc.location)

	monthStart := time.Date(req.Month.Year(), req.Month.Month(), 1, 0, 0, 0, 0, uc.location)
	nextMonth := monthStart.AddDate(0, 1, 0)

	from := monthStart
	if from.Before(today) {
		from = today
	}
	to := nextMonth.AddDate(0, 0, -1)
	if to.After(maxDate) {
		to = maxDate
	}

	if from.After(to) {
		uc.logger.Info("GetAvailableDates: month %s is outside the booking window",
			req.Month.Format(domain.MonthFormat))
		return uc.buildResponse(req, []string{}), nil
	}

	// 7. Получаем рабочие окна и time-off на весь период
	weeklyHours, err := uc.scheduleRepo.GetWeeklyHours(ctx, req.ProviderID)
	if err != nil {
		uc.logger.Error("GetAvailableDates: failed to get weekly hours for provider id=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get weekly hours: %v", ErrInternal, err)
	}

	timeOff, err := uc.scheduleRepo.GetTimeOff(ctx, req.ProviderID, from, to.AddDate(0, 0, 1))
	if err != nil {
		uc.logger.Error("GetAvailableDates: failed to get time off for provider id=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get time off: %v", ErrInternal, err)
	}

	// 8. Проходим по датам периода
	minStart := policy.MinBookingTime(now)
	dates := make([]string, 0)

	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		available, err := uc.isDateAvailable(date, weeklyHours, timeOff, minStart)
		if err != nil {
			uc.logger.Error("GetAvailableDates: failed to check date %s: %v",
				date.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: failed to check date availability: %v", ErrInternal, err)
		}
		if available {
			dates = append(dates, date.Format(domain.DateFormat))
		}
	}

	uc.logger.Info("GetAvailableDates: found %d available dates for provider=%s, service=%s, month=%s",
		len(dates), req.ProviderID, req.ServiceID, req.Month.Format(domain.MonthFormat))

	return uc.buildResponse(req, dates), nil
}

// isDateAvailable грубо проверяет, что на дату вероятно есть слоты:
// у мастера есть рабочее окно в этот день недели, день не перекрыт
// time-off целиком, и хотя бы одно окно заканчивается позже минимального
// допустимого времени начала
func (uc *UseCase) isDateAvailable(
	date time.Time,
	weeklyHours []domain.WeeklyHours,
	timeOff []domain.TimeOff,
	minStart time.Time,
) (bool, error) {
	weekday := int(date.Weekday())

	day := domain.Interval{Start: date, End: date.AddDate(0, 0, 1)}
	for _, t := range timeOff {
		if t.CoversDay(day) {
			return false, nil
		}
	}

	for _, wh := range weeklyHours {
		if wh.DayOfWeek != weekday {
			continue
		}
		window, err := wh.WindowOn(date, uc.location)
		if err != nil {
			return false, err
		}
		if window.End.After(minStart) {
			return true, nil
		}
	}

	return false, nil
}

func (uc *UseCase) buildResponse(req *Request, dates []string) *Response {
	return &Response{
		Month:      req.Month.Format(domain.MonthFormat),
		ProviderID: req.ProviderID,
		ServiceID:  req.ServiceID,
		Dates:      dates,
	}
}
