package save

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"log/slog"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"paysage-backend/internal/storage"
)

type MockWorkLogSaver struct {
	mock.Mock
}

func (m *MockWorkLogSaver) SaveWorkLog(ctx context.Context, log storage.WorkLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func TestSaveWorkLog_AssignsIDAndRecomputesHours(t *testing.T) {
	mockStorage := new(MockWorkLogSaver)

	var saved storage.WorkLog
	mockStorage.On("SaveWorkLog", mock.Anything, mock.MatchedBy(func(l storage.WorkLog) bool {
		saved = l
		return true
	})).Return(nil)

	handler := SaveWorkLog(slog.Default(), mockStorage)

	body := `{
		"date": "2024-03-10T00:00:00Z",
		"personnel": ["Alice", "Bob"],
		"time_tracking": {
			"departure": "08:00", "arrival": "08:30", "end": "17:00",
			"break_time": "01:00", "travel_hours": 1,
			"total_hours": 999
		}
	}`

	req := httptest.NewRequest(http.MethodPost, "/api/worklogs", strings.NewReader(body))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp Response
	err := render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp)
	assert.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.ID)

	// stored totals are derived from the clock times, not the payload
	assert.InDelta(t, 8.0, saved.TimeTracking.TotalHours, 1e-9)
	assert.InDelta(t, 7.0, saved.TimeTracking.WorkHours, 1e-9)
	assert.Equal(t, resp.ID, saved.ID)

	mockStorage.AssertExpectations(t)
}

func TestSaveWorkLog_MissingDate(t *testing.T) {
	mockStorage := new(MockWorkLogSaver)
	handler := SaveWorkLog(slog.Default(), mockStorage)

	req := httptest.NewRequest(http.MethodPost, "/api/worklogs", strings.NewReader(`{"notes":"x"}`))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	mockStorage.AssertNotCalled(t, "SaveWorkLog")
}

func TestSaveWorkLog_InvalidJSON(t *testing.T) {
	mockStorage := new(MockWorkLogSaver)
	handler := SaveWorkLog(slog.Default(), mockStorage)

	req := httptest.NewRequest(http.MethodPost, "/api/worklogs", strings.NewReader(`{not json`))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestNormalize_NoTrackingIsNoop(t *testing.T) {
	log := storage.WorkLog{Notes: "sans horaires"}
	assert.NotPanics(t, func() { Normalize(&log) })
	assert.Nil(t, log.TimeTracking)
}
