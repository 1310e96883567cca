package get_availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getAvailability "github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/usecase/get_availability"
	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeUseCase struct {
	resp *getAvailability.Response
	err  error

	gotReq *getAvailability.Request
}

func (uc *fakeUseCase) Execute(_ context.Context, req *getAvailability.Request) (*getAvailability.Response, error) {
	uc.gotReq = req
	return uc.resp, uc.err
}

func TestHandle_OK(t *testing.T) {
	useCase := &fakeUseCase{resp: &getAvailability.Response{
		Date:        time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
		CounselorID: 1,
		Free:        []types.TimeString{"08:00", "10:00"},
		Occupied: []getAvailability.OccupiedSlot{
			{StartTime: "09:00", BookingID: 10, RequesterName: "Иванов Иван"},
		},
	}}
	handler := NewHandler(useCase, 1, nopLogger{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability?date=2025-06-11", nil)
	rec := httptest.NewRecorder()

	handler.Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "2025-06-11", resp.Date)
	assert.Equal(t, []string{"08:00", "10:00"}, resp.Free)
	require.Len(t, resp.Occupied, 1)
	assert.Equal(t, "09:00", resp.Occupied[0].StartTime)
	assert.Equal(t, int64(10), resp.Occupied[0].BookingID)
	assert.False(t, resp.IsFull)

	// Без counselorId подставляется консультант по умолчанию
	assert.Equal(t, int64(1), useCase.gotReq.CounselorID)
}

func TestHandle_ConfiguredDefaultCounselor(t *testing.T) {
	useCase := &fakeUseCase{resp: &getAvailability.Response{
		Date:        time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
		CounselorID: 2,
	}}
	handler := NewHandler(useCase, 2, nopLogger{})

	// Сконфигурированный консультант по умолчанию попадает в use case
	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability?date=2025-06-11", nil)
	rec := httptest.NewRecorder()

	handler.Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(2), useCase.gotReq.CounselorID)

	// Явный counselorId имеет приоритет над значением из конфигурации
	req = httptest.NewRequest(http.MethodGet, "/api/v1/availability?date=2025-06-11&counselorId=7", nil)
	rec = httptest.NewRecorder()

	handler.Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), useCase.gotReq.CounselorID)
}

func TestHandle_BadRequest(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{name: "missing date", target: "/api/v1/availability"},
		{name: "bad date format", target: "/api/v1/availability?date=11.06.2025"},
		{name: "bad counselor id", target: "/api/v1/availability?date=2025-06-11&counselorId=abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHandler(&fakeUseCase{}, 1, nopLogger{})

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			rec := httptest.NewRecorder()

			handler.Handle(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandle_InternalError(t *testing.T) {
	handler := NewHandler(&fakeUseCase{err: getAvailability.ErrInternal}, 1, nopLogger{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability?date=2025-06-11", nil)
	rec := httptest.NewRecorder()

	handler.Handle(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
