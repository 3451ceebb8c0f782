package get_available_slots

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

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookingRepo) GetActiveInRange(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.StartAt.Before(to) && b.EndAt.After(from) {
			result = append(result, b)
		}
	}
	return result, nil
}

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

// fixture окружение теста: мастер работает по понедельникам 09:00-17:00,
// услуга 60 минут, буфер и шаг 15 минут, минимум 2 часа до начала
type fixture struct {
	uc          *UseCase
	bookingRepo *fakeBookingRepo
	schedule    *fakeScheduleRepo
	catalog     *fakeCatalogRepo
	policy      *fakePolicyRepo
	loc         *time.Location
	providerID  uuid.UUID
	serviceID   uuid.UUID
	monday      time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	providerID := uuid.New()
	serviceID := uuid.New()

	f := &fixture{
		bookingRepo: &fakeBookingRepo{},
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
				MaxAdvanceDays:         60,
				SlotGranularityMinutes: 15,
			},
		},
		loc:        loc,
		providerID: providerID,
		serviceID:  serviceID,
		monday:     time.Date(2026, 9, 14, 0, 0, 0, 0, loc),
	}

	f.uc = NewUseCase(f.bookingRepo, f.schedule, f.catalog, f.policy, loc, nopLogger{})
	// 06:00 того же дня: порог min advance (08:00) раньше открытия салона
	f.uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 9, 14, 6, 0, 0, 0, loc)}

	return f
}

func (f *fixture) request() *Request {
	return &Request{
		ProviderID: f.providerID,
		ServiceID:  f.serviceID,
		Date:       f.monday,
	}
}

func (f *fixture) slotAt(t *testing.T, hour, minute int) *domain.Booking {
	t.Helper()
	start := time.Date(2026, 9, 14, hour, minute, 0, 0, f.loc)
	return &domain.Booking{
		ID:         uuid.New(),
		ProviderID: f.providerID,
		ServiceID:  f.serviceID,
		StartAt:    start,
		EndAt:      start.Add(60 * time.Minute),
		Status:     domain.StatusConfirmed,
	}
}

func starts(resp *Response) []string {
	out := make([]string, len(resp.Slots))
	for i, s := range resp.Slots {
		out[i] = s.StartAt.Format("15:04")
	}
	return out
}

func TestExecute_EmptyBook(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)

	// Окно 09:00-17:00, услуга 60 минут, шаг 15: старты 09:00..16:00
	assert.Len(t, resp.Slots, 29)
	got := starts(resp)
	assert.Equal(t, "09:00", got[0])
	assert.Equal(t, "16:00", got[len(got)-1])
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, "Haircut", resp.ServiceName)

	// Слоты отсортированы и укладываются в окно целиком
	for i, s := range resp.Slots {
		assert.Equal(t, s.StartAt.Add(60*time.Minute), s.EndAt)
		if i > 0 {
			assert.True(t, resp.Slots[i-1].StartAt.Before(s.StartAt))
		}
	}
}

func TestExecute_ExistingBookingBlocksSlots(t *testing.T) {
	f := newFixture(t)
	f.bookingRepo.bookings = []*domain.Booking{f.slotAt(t, 10, 0)}

	resp, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)

	got := starts(resp)

	// Бронирование 10:00-11:00 + буфер 15 минут блокирует 10:00-11:15.
	// До него помещается только слот 09:00 (старты 09:15-09:45 наезжают),
	// первый слот после — ровно в конце буфера, 11:15
	assert.Contains(t, got, "09:00")
	assert.NotContains(t, got, "09:15")
	assert.NotContains(t, got, "09:30")
	assert.NotContains(t, got, "09:45")
	assert.NotContains(t, got, "10:00")
	assert.NotContains(t, got, "11:00")
	assert.Contains(t, got, "11:15")
	assert.Len(t, got, 21)
}

func TestExecute_CancelledBookingDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	cancelled := f.slotAt(t, 10, 0)
	cancelled.Status = domain.StatusCancelled
	f.bookingRepo.bookings = []*domain.Booking{cancelled}

	resp, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 29)
}

func TestExecute_BufferFromPreviousDayBooking(t *testing.T) {
	f := newFixture(t)

	// Бронирование заканчивается ровно в 09:00: его буфер тянется до 09:15
	early := f.slotAt(t, 8, 0)
	f.bookingRepo.bookings = []*domain.Booking{early}

	resp, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)

	got := starts(resp)
	assert.NotContains(t, got, "09:00")
	assert.Contains(t, got, "09:15")
}

func TestExecute_FullDayTimeOff(t *testing.T) {
	f := newFixture(t)
	f.schedule.timeOff = []domain.TimeOff{
		{
			ProviderID: f.providerID,
			StartAt:    f.monday,
			EndAt:      f.monday.AddDate(0, 0, 1),
		},
	}

	resp, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_PartialTimeOff(t *testing.T) {
	f := newFixture(t)
	f.schedule.timeOff = []domain.TimeOff{
		{
			ProviderID: f.providerID,
			StartAt:    time.Date(2026, 9, 14, 12, 0, 0, 0, f.loc),
			EndAt:      time.Date(2026, 9, 14, 14, 0, 0, 0, f.loc),
		},
	}

	resp, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)

	got := starts(resp)
	// Последний слот перед блоком — 11:00 (11:00-12:00), первый после — 14:00
	assert.Contains(t, got, "11:00")
	assert.NotContains(t, got, "11:15")
	assert.NotContains(t, got, "13:45")
	assert.Contains(t, got, "14:00")
}

func TestExecute_MinAdvanceBoundary(t *testing.T) {
	f := newFixture(t)

	// now + 2 часа = ровно 09:00: первый слот ещё допустим
	f.uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 9, 14, 7, 0, 0, 0, f.loc)}

	resp, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)
	assert.Equal(t, "09:00", starts(resp)[0])

	// Минутой позже порог сдвигается за 09:00 и слот отпадает
	f.uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 9, 14, 7, 1, 0, 0, f.loc)}

	resp, err = f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)
	assert.Equal(t, "09:15", starts(resp)[0])
}

func TestExecute_DayOff(t *testing.T) {
	f := newFixture(t)

	// Вторник: еженедельных окон нет
	req := f.request()
	req.Date = f.monday.AddDate(0, 0, 1)
	f.uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 9, 14, 6, 0, 0, 0, f.loc)}

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_Idempotent(t *testing.T) {
	f := newFixture(t)
	f.bookingRepo.bookings = []*domain.Booking{f.slotAt(t, 10, 0)}

	first, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)

	second, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExecute_ValidationErrors(t *testing.T) {
	f := newFixture(t)

	t.Run("provider not found", func(t *testing.T) {
		f.catalog.provider = nil
		defer func() { f.catalog.provider = &domain.Provider{ID: f.providerID, IsActive: true} }()

		_, err := f.uc.Execute(context.Background(), f.request())
		assert.ErrorIs(t, err, ErrProviderNotFound)
	})

	t.Run("service not found", func(t *testing.T) {
		svc := f.catalog.service
		f.catalog.service = nil
		defer func() { f.catalog.service = svc }()

		_, err := f.uc.Execute(context.Background(), f.request())
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("nil provider id", func(t *testing.T) {
		req := f.request()
		req.ProviderID = uuid.Nil

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("date in past", func(t *testing.T) {
		req := f.request()
		req.Date = f.monday.AddDate(0, 0, -7)

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("date beyond max advance", func(t *testing.T) {
		req := f.request()
		req.Date = f.monday.AddDate(0, 0, 61)

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrDateTooFarInFuture)
	})

	t.Run("max advance boundary date is allowed", func(t *testing.T) {
		req := f.request()
		req.Date = f.monday.AddDate(0, 0, 60)

		_, err := f.uc.Execute(context.Background(), req)
		assert.NoError(t, err)
	})
}
