package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type stubUseCase struct {
	resp *getAvailableSlots.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, _ *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

func TestHandle_OK(t *testing.T) {
	uc := &stubUseCase{resp: &getAvailableSlots.Response{
		Date:                time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		SlotDurationMinutes: 30,
		Slots:               []types.TimeString{"10:00", "10:30", "16:00"},
		Groups: []getAvailableSlots.WindowSlots{
			{Open: "10:00", Close: "14:00", Slots: []types.TimeString{"10:00", "10:30"}},
			{Open: "16:00", Close: "20:00", Slots: []types.TimeString{"16:00"}},
		},
	}}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/slots?date=2025-06-10", nil)
	rec := httptest.NewRecorder()
	NewHandler(uc, noopLogger{}).Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2025-06-10", resp.Date)
	assert.Equal(t, 30, resp.SlotDurationMinutes)
	assert.Equal(t, []string{"10:00", "10:30", "16:00"}, resp.Slots)
	require.Len(t, resp.Groups, 2)
	assert.Equal(t, "14:00", resp.Groups[0].Close)
	assert.Equal(t, []string{"16:00"}, resp.Groups[1].Slots)
}

func TestHandle_MissingDate(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/slots", nil)
	rec := httptest.NewRecorder()
	NewHandler(&stubUseCase{}, noopLogger{}).Handle(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_MalformedDate(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/slots?date=June+10", nil)
	rec := httptest.NewRecorder()
	NewHandler(&stubUseCase{}, noopLogger{}).Handle(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
