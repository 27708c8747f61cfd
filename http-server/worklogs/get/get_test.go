package get

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"paysage-backend/internal/storage"
)

type MockWorkLogReader struct {
	mock.Mock
}

func (m *MockWorkLogReader) GetWorkLogs(ctx context.Context, filter storage.WorkLogFilter) ([]storage.WorkLog, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	logs, ok := args.Get(0).([]storage.WorkLog)
	if !ok {
		return nil, fmt.Errorf("expected []storage.WorkLog, got %T", args.Get(0))
	}
	return logs, args.Error(1)
}

func (m *MockWorkLogReader) GetWorkLog(ctx context.Context, id string) (*storage.WorkLog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.WorkLog), args.Error(1)
}

func sample() []storage.WorkLog {
	date, _ := time.Parse("2006-01-02", "2024-03-10")
	return []storage.WorkLog{
		{ID: "w1", Date: date, Notes: "taille des haies", Invoiced: true,
			TimeTracking: &storage.TimeTracking{TotalHours: 4}},
		{ID: "w2", Date: date.AddDate(0, 0, 5),
			TimeTracking: &storage.TimeTracking{TotalHours: 2}},
	}
}

func TestGetWorkLogs_YearFilterReachesStorage(t *testing.T) {
	mockStorage := new(MockWorkLogReader)
	mockStorage.On("GetWorkLogs", mock.Anything, storage.WorkLogFilter{Year: 2024}).
		Return(sample(), nil)

	handler := GetWorkLogs(slog.Default(), mockStorage)

	req := httptest.NewRequest(http.MethodGet, "/api/worklogs?year=2024", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp []storage.WorkLog
	err := render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp)
	assert.NoError(t, err)
	assert.Len(t, resp, 2)

	mockStorage.AssertExpectations(t)
}

func TestGetWorkLogs_AdvancedCriteriaAppliedInMemory(t *testing.T) {
	mockStorage := new(MockWorkLogReader)
	mockStorage.On("GetWorkLogs", mock.Anything, mock.Anything).Return(sample(), nil)

	handler := GetWorkLogs(slog.Default(), mockStorage)

	req := httptest.NewRequest(http.MethodGet, "/api/worklogs?invoice_status=pending", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp []storage.WorkLog
	err := render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp)
	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, "w2", resp[0].ID)
}

func TestGetWorkLogs_EmptyResultIsJSONArray(t *testing.T) {
	mockStorage := new(MockWorkLogReader)
	mockStorage.On("GetWorkLogs", mock.Anything, mock.Anything).Return([]storage.WorkLog{}, nil)

	handler := GetWorkLogs(slog.Default(), mockStorage)

	req := httptest.NewRequest(http.MethodGet, "/api/worklogs", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rr.Body.String()))
}

func TestGetWorkLogs_BadYearParam(t *testing.T) {
	mockStorage := new(MockWorkLogReader)
	handler := GetWorkLogs(slog.Default(), mockStorage)

	req := httptest.NewRequest(http.MethodGet, "/api/worklogs?year=abcd", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	mockStorage.AssertNotCalled(t, "GetWorkLogs")
}
