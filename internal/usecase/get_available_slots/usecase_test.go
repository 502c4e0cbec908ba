package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// -- Моки --

type mockAppointmentRepo struct {
	appointments []*domain.Appointment
	err          error
	calls        int
}

func (m *mockAppointmentRepo) GetByDate(_ context.Context, _ time.Time) ([]*domain.Appointment, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.appointments, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func testSchedule() domain.ClinicSchedule {
	return domain.ClinicSchedule{
		Windows: []domain.ScheduleWindow{
			{Open: "10:00", Close: "14:00"},
			{Open: "16:00", Close: "20:00"},
		},
		SlotDurationMinutes: 30,
	}
}

func newTestUseCase(repo *mockAppointmentRepo, now time.Time) *UseCase {
	uc := NewUseCase(testSchedule(), true, repo, noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func appointmentAt(startTime types.TimeString, date time.Time) *domain.Appointment {
	return &domain.Appointment{
		Date:        date,
		StartTime:   startTime,
		PatientName: "Ivan Petrov",
		Phone:       "+79990001122",
		Treatment:   "General Checkup",
		PatientType: domain.PatientTypeNew,
	}
}

// -- Тесты --

func TestExecute_FutureDateNoBookings(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	repo := &mockAppointmentRepo{}
	uc := newTestUseCase(repo, now)

	resp, err := uc.Execute(context.Background(), &Request{Date: date})

	require.NoError(t, err)
	assert.Len(t, resp.Slots, 16)
	assert.Equal(t, 30, resp.SlotDurationMinutes)
	require.Len(t, resp.Groups, 2)
	assert.Len(t, resp.Groups[0].Slots, 8)
	assert.Len(t, resp.Groups[1].Slots, 8)
}

func TestExecute_BookedSlotsExcluded(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	repo := &mockAppointmentRepo{appointments: []*domain.Appointment{
		appointmentAt("10:00", date),
		appointmentAt("16:30", date),
	}}
	uc := newTestUseCase(repo, now)

	resp, err := uc.Execute(context.Background(), &Request{Date: date})

	require.NoError(t, err)
	assert.Len(t, resp.Slots, 14)
	assert.NotContains(t, resp.Slots, types.TimeString("10:00"))
	assert.NotContains(t, resp.Slots, types.TimeString("16:30"))
	assert.Contains(t, resp.Slots, types.TimeString("10:30"))
}

func TestExecute_TodayPastSlotsExcluded(t *testing.T) {
	// Сейчас 13:00, политика slot <= now: слот 13:00 уже недоступен
	now := time.Date(2025, 6, 10, 13, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	repo := &mockAppointmentRepo{}
	uc := newTestUseCase(repo, now)

	resp, err := uc.Execute(context.Background(), &Request{Date: date})

	require.NoError(t, err)
	assert.NotContains(t, resp.Slots, types.TimeString("10:00"))
	assert.NotContains(t, resp.Slots, types.TimeString("12:30"))
	assert.NotContains(t, resp.Slots, types.TimeString("13:00"))
	assert.Contains(t, resp.Slots, types.TimeString("13:30"))
	assert.Contains(t, resp.Slots, types.TimeString("16:00"))
	assert.Len(t, resp.Slots, 9)
}

func TestExecute_TodayExclusiveBoundaryKeepsCurrentSlot(t *testing.T) {
	// Политика slot < now: слот, начинающийся ровно сейчас, ещё доступен
	now := time.Date(2025, 6, 10, 13, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	repo := &mockAppointmentRepo{}
	uc := NewUseCase(testSchedule(), false, repo, noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}

	resp, err := uc.Execute(context.Background(), &Request{Date: date})

	require.NoError(t, err)
	assert.Contains(t, resp.Slots, types.TimeString("13:00"))
	assert.NotContains(t, resp.Slots, types.TimeString("12:30"))
	assert.Len(t, resp.Slots, 10)
}

func TestExecute_PastDateReturnsEmpty(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	repo := &mockAppointmentRepo{}
	uc := newTestUseCase(repo, now)

	resp, err := uc.Execute(context.Background(), &Request{Date: date})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	// Для прошедшей даты репозиторий не вызывается
	assert.Zero(t, repo.calls)
}

func TestExecute_AllSlotsBooked(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	booked := make([]*domain.Appointment, 0, 16)
	for _, slot := range testSchedule().GenerateSlots() {
		booked = append(booked, appointmentAt(slot, date))
	}
	repo := &mockAppointmentRepo{appointments: booked}
	uc := newTestUseCase(repo, now)

	resp, err := uc.Execute(context.Background(), &Request{Date: date})

	// Пустой список слотов - валидный ответ, не ошибка
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	require.Len(t, resp.Groups, 2)
	assert.Empty(t, resp.Groups[0].Slots)
	assert.Empty(t, resp.Groups[1].Slots)
}

func TestExecute_ZeroDate(t *testing.T) {
	repo := &mockAppointmentRepo{}
	uc := newTestUseCase(repo, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), &Request{})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_RepositoryError(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	repo := &mockAppointmentRepo{err: errors.New("connection refused")}
	uc := newTestUseCase(repo, now)

	_, err := uc.Execute(context.Background(), &Request{Date: date})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)
}
