package get_available_dates

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	catalogRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/catalog"
	"github.com/m04kA/Salon-BookingService/pkg/types"
)

type fakeScheduleRepo struct {
	weeklyHours []domain.WeeklyHours
	timeOff     []domain.TimeOff
}

func (f *fakeScheduleRepo) GetWeeklyHours(ctx context.Context, providerID uuid.UUID) ([]domain.WeeklyHours, error) {
	return f.weeklyHours, nil
}

func (f *fakeScheduleRepo) GetTimeOff(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]domain.TimeOff, error) {
	result := make([]domain.TimeOff, 0)
	for _, t := range f.timeOff {
		if t.StartAt.Before(to) && t.EndAt.After(from) {
			result = append(result, t)
		}
	}
	return result, nil
}

type fakeCatalogRepo struct {
	provider *domain.Provider
	service  *domain.EffectiveService
}

func (f *fakeCatalogRepo) GetProvider(ctx context.Context, providerID uuid.UUID) (*domain.Provider, error) {
	if f.provider == nil {
		return nil, catalogRepo.ErrProviderNotFound
	}
	return f.provider, nil
}

func (f *fakeCatalogRepo) GetEffectiveService(ctx context.Context, providerID, serviceID uuid.UUID) (*domain.EffectiveService, error) {
	if f.service == nil {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return f.service, nil
}

type fakePolicyRepo struct {
	policy *domain.BookingPolicy
}

func (f *fakePolicyRepo) GetBookingPolicy(ctx context.Context) (*domain.BookingPolicy, error) {
	return f.policy, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// fixture окружение теста: сегодня понедельник 2026-09-14, мастер работает
// только по понедельникам 09:00-17:00, бронировать можно на 28 дней вперед
// (дальняя граница — понедельник 2026-10-12)
type fixture struct {
	uc         *UseCase
	schedule   *fakeScheduleRepo
	catalog    *fakeCatalogRepo
	policy     *fakePolicyRepo
	loc        *time.Location
	providerID uuid.UUID
	serviceID  uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	providerID := uuid.New()
	serviceID := uuid.New()

	f := &fixture{
		schedule: &fakeScheduleRepo{
			weeklyHours: []domain.WeeklyHours{
				{
					ProviderID: providerID,
					DayOfWeek:  1, // понедельник
					StartTime:  types.TimeString("09:00"),
					EndTime:    types.TimeString("17:00"),
				},
			},
		},
		catalog: &fakeCatalogRepo{
			provider: &domain.Provider{ID: providerID, Name: "Anna", IsActive: true},
			service:  &domain.EffectiveService{ID: serviceID, Name: "Haircut", DurationMinutes: 60, Price: 50},
		},
		policy: &fakePolicyRepo{
			policy: &domain.BookingPolicy{
				BufferMinutes:          15,
				MinAdvanceHours:        2,
				MaxAdvanceDays:         28,
				SlotGranularityMinutes: 15,
			},
		},
		loc:        loc,
		providerID: providerID,
		serviceID:  serviceID,
	}

	f.uc = NewUseCase(f.schedule, f.catalog, f.policy, loc, nopLogger{})
	f.uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 9, 14, 10, 0, 0, 0, loc)}

	return f
}

func (f *fixture) request(year int, month time.Month) *Request {
	return &Request{
		ProviderID: f.providerID,
		ServiceID:  f.serviceID,
		Month:      time.Date(year, month, 1, 0, 0, 0, 0, f.loc),
	}
}

func TestExecute_CurrentMonth(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), f.request(2026, time.September))
	require.NoError(t, err)

	// Понедельники сентября начиная с сегодняшнего дня
	assert.Equal(t, []string{"2026-09-14", "2026-09-21", "2026-09-28"}, resp.Dates)
	assert.Equal(t, "2026-09", resp.Month)
}

func TestExecute_MaxAdvanceBoundary(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), f.request(2026, time.October))
	require.NoError(t, err)

	// Граница окна (сегодня + 28 дней = 2026-10-12) включительна:
	// понедельник 12-го ещё доступен, 19-го уже нет
	assert.Equal(t, []string{"2026-10-05", "2026-10-12"}, resp.Dates)
}

func TestExecute_MonthBeyondWindow(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), f.request(2026, time.December))
	require.NoError(t, err)
	assert.Empty(t, resp.Dates)
}

func TestExecute_MonthInPast(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), f.request(2026, time.August))
	require.NoError(t, err)
	assert.Empty(t, resp.Dates)
}

func TestExecute_FullDayTimeOffExcludesDate(t *testing.T) {
	f := newFixture(t)
	f.schedule.timeOff = []domain.TimeOff{
		{
			ProviderID: f.providerID,
			StartAt:    time.Date(2026, 9, 21, 0, 0, 0, 0, f.loc),
			EndAt:      time.Date(2026, 9, 22, 0, 0, 0, 0, f.loc),
		},
	}

	resp, err := f.uc.Execute(context.Background(), f.request(2026, time.September))
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-09-14", "2026-09-28"}, resp.Dates)
}

func TestExecute_PartialTimeOffKeepsDate(t *testing.T) {
	f := newFixture(t)
	f.schedule.timeOff = []domain.TimeOff{
		{
			ProviderID: f.providerID,
			StartAt:    time.Date(2026, 9, 21, 12, 0, 0, 0, f.loc),
			EndAt:      time.Date(2026, 9, 21, 14, 0, 0, 0, f.loc),
		},
	}

	// Частичный time-off не снимает дату: детальную картину даёт запрос слотов
	resp, err := f.uc.Execute(context.Background(), f.request(2026, time.September))
	require.NoError(t, err)
	assert.Contains(t, resp.Dates, "2026-09-21")
}

func TestExecute_TodayExcludedWhenWindowsAlreadyClosed(t *testing.T) {
	f := newFixture(t)

	// 16:30 + 2 часа = 18:30, позже конца окна 17:00: сегодня слотов не будет
	f.uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 9, 14, 16, 30, 0, 0, f.loc)}

	resp, err := f.uc.Execute(context.Background(), f.request(2026, time.September))
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-09-21", "2026-09-28"}, resp.Dates)
}

func TestExecute_NoWeeklyHours(t *testing.T) {
	f := newFixture(t)
	f.schedule.weeklyHours = nil

	resp, err := f.uc.Execute(context.Background(), f.request(2026, time.September))
	require.NoError(t, err)
	assert.Empty(t, resp.Dates)
}

func TestExecute_Errors(t *testing.T) {
	f := newFixture(t)

	t.Run("provider not found", func(t *testing.T) {
		provider := f.catalog.provider
		f.catalog.provider = nil
		defer func() { f.catalog.provider = provider }()

		_, err := f.uc.Execute(context.Background(), f.request(2026, time.September))
		assert.ErrorIs(t, err, ErrProviderNotFound)
	})

	t.Run("service not found", func(t *testing.T) {
		svc := f.catalog.service
		f.catalog.service = nil
		defer func() { f.catalog.service = svc }()

		_, err := f.uc.Execute(context.Background(), f.request(2026, time.September))
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("nil service id", func(t *testing.T) {
		req := f.request(2026, time.September)
		req.ServiceID = uuid.Nil

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
