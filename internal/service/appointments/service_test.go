package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

// -- Моки --

type mockRepo struct {
	byID map[int64]*domain.Appointment
}

func newMockRepo(appointments ...*domain.Appointment) *mockRepo {
	m := &mockRepo{byID: make(map[int64]*domain.Appointment)}
	for _, appt := range appointments {
		m.byID[appt.ID] = appt
	}
	return m
}

func (m *mockRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := m.byID[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	copied := *appt
	copied.Reports = append(domain.ReportList{}, appt.Reports...)
	return &copied, nil
}

func (m *mockRepo) List(_ context.Context, date *time.Time) ([]*domain.Appointment, error) {
	var result []*domain.Appointment
	for _, appt := range m.byID {
		if date == nil || appt.Date.Equal(*date) {
			result = append(result, appt)
		}
	}
	return result, nil
}

func (m *mockRepo) UpdatePrescription(_ context.Context, id int64, prescription *string) error {
	appt, ok := m.byID[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	appt.Prescription = prescription
	return nil
}

func (m *mockRepo) UpdateReports(_ context.Context, id int64, reports domain.ReportList) error {
	appt, ok := m.byID[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	appt.Reports = reports
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.byID[id]; !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	delete(m.byID, id)
	return nil
}

type mockWatcher struct {
	ch chan []*domain.Appointment
}

func (m *mockWatcher) WatchByDate(_ context.Context, _ time.Time) (<-chan []*domain.Appointment, error) {
	return m.ch, nil
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

func testAppointment(id int64) *domain.Appointment {
	return &domain.Appointment{
		ID:          id,
		Date:        time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		StartTime:   "10:00",
		PatientName: "Ivan Petrov",
		Phone:       "+79990001122",
		Treatment:   "Root Canal",
		PatientType: domain.PatientTypeExisting,
		Reports:     domain.ReportList{},
		CreatedAt:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func newTestService(repo *mockRepo, watcher AppointmentWatcher) *Service {
	svc := NewService(repo, watcher, noopLogger{})
	svc.timeProvider = &fixedTimeProvider{now: time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)}
	return svc
}

// -- Тесты --

func TestService_GetByID(t *testing.T) {
	repo := newMockRepo(testAppointment(1))
	svc := newTestService(repo, nil)

	resp, err := svc.GetByID(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "2025-06-10", resp.Date)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "Existing Patient", resp.PatientType)
}

func TestService_GetByID_NotFound(t *testing.T) {
	svc := newTestService(newMockRepo(), nil)

	_, err := svc.GetByID(context.Background(), 404)

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestService_List_FilterByDate(t *testing.T) {
	other := testAppointment(2)
	other.Date = time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
	other.StartTime = "16:00"
	repo := newMockRepo(testAppointment(1), other)
	svc := newTestService(repo, nil)

	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	resp, err := svc.List(context.Background(), &models.ListAppointmentsRequest{Date: &date})

	require.NoError(t, err)
	require.Len(t, resp.Appointments, 1)
	assert.Equal(t, int64(1), resp.Appointments[0].ID)

	all, err := svc.List(context.Background(), &models.ListAppointmentsRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Appointments, 2)
}

func TestService_UpdatePrescription(t *testing.T) {
	repo := newMockRepo(testAppointment(1))
	svc := newTestService(repo, nil)

	err := svc.UpdatePrescription(context.Background(), 1, &models.UpdatePrescriptionRequest{
		Prescription: "Ibuprofen 400mg twice a day",
	})

	require.NoError(t, err)
	require.NotNil(t, repo.byID[1].Prescription)
	assert.Equal(t, "Ibuprofen 400mg twice a day", *repo.byID[1].Prescription)
}

func TestService_UpdatePrescription_EmptyClears(t *testing.T) {
	appt := testAppointment(1)
	appt.Prescription = ptr.Ptr("old notes")
	repo := newMockRepo(appt)
	svc := newTestService(repo, nil)

	err := svc.UpdatePrescription(context.Background(), 1, &models.UpdatePrescriptionRequest{
		Prescription: "   ",
	})

	require.NoError(t, err)
	assert.Nil(t, repo.byID[1].Prescription)
}

func TestService_UpdatePrescription_NotFound(t *testing.T) {
	svc := newTestService(newMockRepo(), nil)

	err := svc.UpdatePrescription(context.Background(), 404, &models.UpdatePrescriptionRequest{
		Prescription: "notes",
	})

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestService_AttachReport(t *testing.T) {
	repo := newMockRepo(testAppointment(1))
	svc := newTestService(repo, nil)

	resp, err := svc.AttachReport(context.Background(), 1, &models.AttachReportRequest{
		Name: "xray.pdf",
		URL:  "https://files.local/xray.pdf",
	})

	require.NoError(t, err)
	require.Len(t, resp.Reports, 1)
	assert.Equal(t, "xray.pdf", resp.Reports[0].Name)
	// UploadedAt проставляется провайдером времени сервиса
	assert.Equal(t, time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC), resp.Reports[0].UploadedAt)
	require.Len(t, repo.byID[1].Reports, 1)
}

func TestService_AttachReport_MissingFields(t *testing.T) {
	repo := newMockRepo(testAppointment(1))
	svc := newTestService(repo, nil)

	_, err := svc.AttachReport(context.Background(), 1, &models.AttachReportRequest{Name: "xray.pdf"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.AttachReport(context.Background(), 1, &models.AttachReportRequest{URL: "https://files.local/x"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Empty(t, repo.byID[1].Reports)
}

func TestService_RemoveReport(t *testing.T) {
	appt := testAppointment(1)
	appt.Reports = domain.ReportList{
		{Name: "first.pdf", URL: "https://files.local/1"},
		{Name: "second.pdf", URL: "https://files.local/2"},
	}
	repo := newMockRepo(appt)
	svc := newTestService(repo, nil)

	err := svc.RemoveReport(context.Background(), 1, 0)

	require.NoError(t, err)
	require.Len(t, repo.byID[1].Reports, 1)
	assert.Equal(t, "second.pdf", repo.byID[1].Reports[0].Name)
}

func TestService_RemoveReport_IndexOutOfRange(t *testing.T) {
	appt := testAppointment(1)
	appt.Reports = domain.ReportList{{Name: "only.pdf", URL: "https://files.local/1"}}
	repo := newMockRepo(appt)
	svc := newTestService(repo, nil)

	assert.ErrorIs(t, svc.RemoveReport(context.Background(), 1, 1), ErrReportNotFound)
	assert.ErrorIs(t, svc.RemoveReport(context.Background(), 1, -1), ErrReportNotFound)
	assert.Len(t, repo.byID[1].Reports, 1)
}

func TestService_Delete(t *testing.T) {
	repo := newMockRepo(testAppointment(1))
	svc := newTestService(repo, nil)

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.Empty(t, repo.byID)

	assert.ErrorIs(t, svc.Delete(context.Background(), 1), ErrAppointmentNotFound)
}

func TestService_WatchByDate(t *testing.T) {
	watcher := &mockWatcher{ch: make(chan []*domain.Appointment, 2)}
	svc := newTestService(newMockRepo(), watcher)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snapshots, err := svc.WatchByDate(ctx, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	watcher.ch <- []*domain.Appointment{testAppointment(1)}

	snapshot := <-snapshots
	require.Len(t, snapshot.Appointments, 1)
	assert.Equal(t, int64(1), snapshot.Appointments[0].ID)

	// Закрытие источника закрывает и выходной канал
	close(watcher.ch)
	_, open := <-snapshots
	assert.False(t, open)
}
