package get_booking_configs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/service/bookingconfig/models"
)

type fakeService struct {
	getAllCalls       int
	effectiveCalls    int
	effectiveEmployee *int64
	effectiveService  *int64
}

func (f *fakeService) GetAll(ctx context.Context) (*models.ConfigListResponse, error) {
	f.getAllCalls++
	return &models.ConfigListResponse{Configs: []models.ConfigResponse{{ID: 1, SlotGranularityMinutes: 30}}}, nil
}

func (f *fakeService) GetEffective(ctx context.Context, employeeID *int64, serviceID *int64) (*models.ResolvedConfigResponse, error) {
	f.effectiveCalls++
	f.effectiveEmployee = employeeID
	f.effectiveService = serviceID
	return &models.ResolvedConfigResponse{
		EmployeeID:             employeeID,
		ServiceID:              serviceID,
		SlotGranularityMinutes: 15,
		BufferMinutes:          10,
		AdvanceBookingDays:     14,
		MinNoticeMinutes:       60,
	}, nil
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func TestHandle_WithoutQueryReturnsFullList(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, noopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/booking-configs", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, svc.getAllCalls)
	assert.Equal(t, 0, svc.effectiveCalls)

	var resp models.ConfigListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Configs, 1)
	assert.Equal(t, int64(1), resp.Configs[0].ID)
}

func TestHandle_WithEmployeeQueryResolvesHierarchy(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, noopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/booking-configs?employeeId=5", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, svc.getAllCalls)
	require.Equal(t, 1, svc.effectiveCalls)
	require.NotNil(t, svc.effectiveEmployee)
	assert.Equal(t, int64(5), *svc.effectiveEmployee)
	assert.Nil(t, svc.effectiveService)

	var resp models.ResolvedConfigResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 15, resp.SlotGranularityMinutes)
}

func TestHandle_WithEmployeeAndServiceQuery(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, noopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/booking-configs?employeeId=5&serviceId=3", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, svc.effectiveCalls)
	require.NotNil(t, svc.effectiveEmployee)
	require.NotNil(t, svc.effectiveService)
	assert.Equal(t, int64(5), *svc.effectiveEmployee)
	assert.Equal(t, int64(3), *svc.effectiveService)
}

func TestHandle_InvalidQueryIDs(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"non-numeric employee", "?employeeId=abc"},
		{"zero employee", "?employeeId=0"},
		{"negative service", "?serviceId=-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{}
			h := NewHandler(svc, noopLogger{})

			rec := httptest.NewRecorder()
			h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/booking-configs"+tt.query, nil))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, 0, svc.getAllCalls)
			assert.Equal(t, 0, svc.effectiveCalls)
		})
	}
}
