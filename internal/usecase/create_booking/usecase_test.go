package create_booking

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/catalog"
	"github.com/m04kA/Salon-BookingService/internal/integrations/notifier"
	"github.com/m04kA/Salon-BookingService/pkg/ptr"
	"github.com/m04kA/Salon-BookingService/pkg/types"
)

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings []*domain.Booking

	// Управление сценариями коллизий кодов
	codeExistsHits int
	failCodeChecks int
	alwaysExists   bool
	dupOnCreate    int
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.dupOnCreate > 0 {
		f.dupOnCreate--
		return nil, bookingRepo.ErrDuplicateCode
	}

	for _, b := range f.bookings {
		if b.ConfirmationCode == booking.ConfirmationCode {
			return nil, bookingRepo.ErrDuplicateCode
		}
	}

	stored := *booking
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.bookings = append(f.bookings, &stored)

	return &stored, nil
}

func (f *fakeBookingRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.alwaysExists {
		return true, nil
	}
	if f.failCodeChecks > 0 {
		f.failCodeChecks--
		f.codeExistsHits++
		return true, nil
	}

	for _, b := range f.bookings {
		if b.ConfirmationCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBookingRepo) GetActiveInRange(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.ProviderID == providerID && b.IsActive() && b.StartAt.Before(to) && b.EndAt.After(from) {
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

type fakeClientRepo struct {
	mu      sync.Mutex
	clients map[string]*domain.Client
}

func (f *fakeClientRepo) FindOrCreateByEmail(ctx context.Context, email, name string, phone *string) (*domain.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.clients == nil {
		f.clients = make(map[string]*domain.Client)
	}
	if c, ok := f.clients[email]; ok {
		c.Name = name
		return c, nil
	}

	c := &domain.Client{ID: uuid.New(), Email: email, Name: name, Phone: phone}
	f.clients[email] = c
	return c, nil
}

type fakeNotifier struct {
	sent chan notifier.BookingNotification
}

func (f *fakeNotifier) SendBookingConfirmation(ctx context.Context, n notifier.BookingNotification) {
	select {
	case f.sent <- n:
	default:
	}
}

// fakeTxManager сериализует транзакции мьютексом: вторая заявка видит
// результат первой, как при сериализуемой изоляции в БД
type fakeTxManager struct {
	mu sync.Mutex
}

func (m *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

func (m *fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
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

// fixture окружение теста: сегодня понедельник 2026-09-14 06:00, мастер
// работает по понедельникам 09:00-17:00, услуга 60 минут, буфер 15 минут,
// минимум 2 часа до начала
type fixture struct {
	uc          *UseCase
	bookingRepo *fakeBookingRepo
	schedule    *fakeScheduleRepo
	catalog     *fakeCatalogRepo
	notifier    *fakeNotifier
	loc         *time.Location
	providerID  uuid.UUID
	serviceID   uuid.UUID
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
		notifier:   &fakeNotifier{sent: make(chan notifier.BookingNotification, 8)},
		loc:        loc,
		providerID: providerID,
		serviceID:  serviceID,
	}

	policyRepo := &fakePolicyRepo{
		policy: &domain.BookingPolicy{
			BufferMinutes:          15,
			MinAdvanceHours:        2,
			MaxAdvanceDays:         60,
			SlotGranularityMinutes: 15,
		},
	}

	f.uc = NewUseCase(
		f.bookingRepo,
		f.schedule,
		f.catalog,
		policyRepo,
		&fakeClientRepo{},
		f.notifier,
		&fakeTxManager{},
		loc,
		nopLogger{},
	)
	f.uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 9, 14, 6, 0, 0, 0, loc)}

	return f
}

func (f *fixture) request(hour, minute int) *Request {
	return &Request{
		ProviderID:  f.providerID,
		ServiceID:   f.serviceID,
		StartAt:     time.Date(2026, 9, 14, hour, minute, 0, 0, f.loc),
		ClientName:  "Jane Doe",
		ClientEmail: "jane@example.com",
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), f.request(10, 0))
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, time.Date(2026, 9, 14, 10, 0, 0, 0, f.loc), resp.StartAt)
	assert.Equal(t, time.Date(2026, 9, 14, 11, 0, 0, 0, f.loc), resp.EndAt)

	// Код подтверждения генерируется из ограниченного алфавита
	require.Len(t, resp.ConfirmationCode, domain.ConfirmationCodeLength)
	for _, r := range resp.ConfirmationCode {
		assert.Contains(t, domain.ConfirmationCodeAlphabet, string(r))
	}

	// Снимок услуги, мастера и клиента денормализован в бронирование
	assert.Equal(t, "Haircut", resp.ServiceName)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, 50.0, resp.ServicePrice)
	assert.Equal(t, "Anna", resp.ProviderName)
	assert.Equal(t, "Jane Doe", resp.ClientName)
	assert.Equal(t, "jane@example.com", resp.ClientEmail)

	// Подтверждение уходит после коммита
	select {
	case n := <-f.notifier.sent:
		assert.Equal(t, resp.ConfirmationCode, n.ConfirmationCode)
	case <-time.After(time.Second):
		t.Fatal("booking confirmation was not sent")
	}
}

func TestExecute_EndComputedFromEffectiveDuration(t *testing.T) {
	f := newFixture(t)
	f.catalog.service.DurationMinutes = 90

	resp, err := f.uc.Execute(context.Background(), f.request(10, 0))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 14, 11, 30, 0, 0, f.loc), resp.EndAt)
	assert.Equal(t, 90, resp.DurationMinutes)
}

func TestExecute_MinAdvanceBoundary(t *testing.T) {
	f := newFixture(t)

	// now + 2 часа = ровно 10:00
	f.uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 9, 14, 8, 0, 0, 0, f.loc)}

	_, err := f.uc.Execute(context.Background(), f.request(10, 0))
	assert.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), f.request(9, 59))
	assert.ErrorIs(t, err, ErrTooSoon)
}

func TestExecute_DateTooFarInFuture(t *testing.T) {
	f := newFixture(t)

	req := f.request(10, 0)
	req.StartAt = req.StartAt.AddDate(0, 0, 61)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	f := newFixture(t)

	t.Run("day off", func(t *testing.T) {
		req := f.request(10, 0)
		req.StartAt = req.StartAt.AddDate(0, 0, 1) // вторник

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrOutsideWorkingHours)
	})

	t.Run("interval sticks out of the window", func(t *testing.T) {
		_, err := f.uc.Execute(context.Background(), f.request(16, 30))
		assert.ErrorIs(t, err, ErrOutsideWorkingHours)
	})

	t.Run("interval ending exactly at close is allowed", func(t *testing.T) {
		_, err := f.uc.Execute(context.Background(), f.request(16, 0))
		assert.NoError(t, err)
	})
}

func TestExecute_TimeOffBlocksBooking(t *testing.T) {
	f := newFixture(t)
	f.schedule.timeOff = []domain.TimeOff{
		{
			ProviderID: f.providerID,
			StartAt:    time.Date(2026, 9, 14, 12, 0, 0, 0, f.loc),
			EndAt:      time.Date(2026, 9, 14, 14, 0, 0, 0, f.loc),
		},
	}

	_, err := f.uc.Execute(context.Background(), f.request(13, 0))
	assert.ErrorIs(t, err, ErrProviderUnavailable)

	// Граничащий интервал не пересекается с time-off
	_, err = f.uc.Execute(context.Background(), f.request(14, 0))
	assert.NoError(t, err)
}

func TestExecute_SlotConflictAndBuffer(t *testing.T) {
	f := newFixture(t)

	// Существующее бронирование 10:00-11:00, буфер тянется до 11:15
	_, err := f.uc.Execute(context.Background(), f.request(10, 0))
	require.NoError(t, err)

	t.Run("same slot", func(t *testing.T) {
		_, err := f.uc.Execute(context.Background(), f.request(10, 0))
		assert.ErrorIs(t, err, ErrSlotConflict)
	})

	t.Run("start inside the buffer", func(t *testing.T) {
		_, err := f.uc.Execute(context.Background(), f.request(11, 0))
		assert.ErrorIs(t, err, ErrSlotConflict)
	})

	t.Run("start exactly at buffer end", func(t *testing.T) {
		_, err := f.uc.Execute(context.Background(), f.request(11, 15))
		assert.NoError(t, err)
	})

	t.Run("candidate buffer does not extend candidate", func(t *testing.T) {
		// Кандидат 09:00-10:00 заканчивается ровно в начале существующего:
		// буфер применяется к существующим бронированиям, а не к кандидату
		_, err := f.uc.Execute(context.Background(), f.request(9, 0))
		assert.NoError(t, err)
	})
}

func TestExecute_CancelledBookingFreesSlot(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), f.request(10, 0))
	require.NoError(t, err)

	// Отмена существующего бронирования
	f.bookingRepo.mu.Lock()
	for _, b := range f.bookingRepo.bookings {
		if b.ID == resp.ID {
			b.Status = domain.StatusCancelled
		}
	}
	f.bookingRepo.mu.Unlock()

	// Тот же слот снова доступен для допуска
	_, err = f.uc.Execute(context.Background(), f.request(10, 0))
	assert.NoError(t, err)
}

func TestExecute_ConcurrentRequestsAdmitExactlyOne(t *testing.T) {
	f := newFixture(t)

	var wg sync.WaitGroup
	errs := make([]error, 2)

	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.uc.Execute(context.Background(), f.request(10, 0))
		}(i)
	}
	wg.Wait()

	var succeeded, conflicted int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errorIsAny(err, ErrSlotConflict, ErrConcurrencyConflict):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, succeeded, "exactly one request must be admitted")
	assert.Equal(t, 1, conflicted, "the other must be rejected")

	f.bookingRepo.mu.Lock()
	defer f.bookingRepo.mu.Unlock()
	assert.Len(t, f.bookingRepo.bookings, 1)
}

func errorIsAny(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func TestExecute_ConfirmationCodeRetries(t *testing.T) {
	t.Run("collision on pre-check", func(t *testing.T) {
		f := newFixture(t)
		f.bookingRepo.failCodeChecks = 2

		resp, err := f.uc.Execute(context.Background(), f.request(10, 0))
		require.NoError(t, err)
		assert.NotEmpty(t, resp.ConfirmationCode)
		assert.Equal(t, 2, f.bookingRepo.codeExistsHits)
	})

	t.Run("race caught by unique constraint", func(t *testing.T) {
		f := newFixture(t)
		f.bookingRepo.dupOnCreate = 1

		resp, err := f.uc.Execute(context.Background(), f.request(10, 0))
		require.NoError(t, err)
		assert.NotEmpty(t, resp.ConfirmationCode)
	})

	t.Run("attempts exhausted", func(t *testing.T) {
		f := newFixture(t)
		f.bookingRepo.alwaysExists = true

		_, err := f.uc.Execute(context.Background(), f.request(10, 0))
		assert.ErrorIs(t, err, ErrCodeGeneration)
	})
}

func TestExecute_ValidationErrors(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{
			name:   "nil provider id",
			mutate: func(r *Request) { r.ProviderID = uuid.Nil },
		},
		{
			name:   "nil service id",
			mutate: func(r *Request) { r.ServiceID = uuid.Nil },
		},
		{
			name:   "zero start",
			mutate: func(r *Request) { r.StartAt = time.Time{} },
		},
		{
			name:   "empty client name",
			mutate: func(r *Request) { r.ClientName = "   " },
		},
		{
			name:   "invalid email",
			mutate: func(r *Request) { r.ClientEmail = "not-an-email" },
		},
		{
			name: "name too long",
			mutate: func(r *Request) {
				r.ClientName = strings.Repeat("x", domain.MaxClientNameLength+1)
			},
		},
		{
			name: "notes too long",
			mutate: func(r *Request) {
				r.Notes = ptr.Ptr(strings.Repeat("x", domain.MaxClientNotesLength+1))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := f.request(10, 0)
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_NotFoundErrors(t *testing.T) {
	f := newFixture(t)

	t.Run("provider not found", func(t *testing.T) {
		provider := f.catalog.provider
		f.catalog.provider = nil
		defer func() { f.catalog.provider = provider }()

		_, err := f.uc.Execute(context.Background(), f.request(10, 0))
		assert.ErrorIs(t, err, ErrProviderNotFound)
	})

	t.Run("service not found", func(t *testing.T) {
		svc := f.catalog.service
		f.catalog.service = nil
		defer func() { f.catalog.service = svc }()

		_, err := f.uc.Execute(context.Background(), f.request(10, 0))
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})
}
