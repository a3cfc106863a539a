package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/core/internal/application/services"
	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/infrastructure/logger"
	"github.com/taskboard/core/internal/ports"
)

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

// stubTaskRepo serves GetByID for a single known task; anything else panics,
// which is fine because the tracking handler never goes further.
type stubTaskRepo struct {
	ports.TaskRepository
	task *entities.Task
}

func (r *stubTaskRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	if r.task != nil && r.task.ID == id {
		found := *r.task
		return &found, nil
	}
	return nil, entities.ErrTaskNotFound
}

type memIntervalRepo struct {
	mu        sync.Mutex
	intervals map[uuid.UUID]*entities.TimeInterval
}

func newMemIntervalRepo() *memIntervalRepo {
	return &memIntervalRepo{intervals: make(map[uuid.UUID]*entities.TimeInterval)}
}

func (r *memIntervalRepo) Create(ctx context.Context, interval *entities.TimeInterval) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.intervals {
		if existing.TaskID == interval.TaskID && existing.IsOpen() {
			return entities.ErrAlreadyTracking
		}
	}
	stored := *interval
	r.intervals[interval.ID] = &stored
	return nil
}

func (r *memIntervalRepo) GetOpenByTask(ctx context.Context, taskID uuid.UUID) (*entities.TimeInterval, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, interval := range r.intervals {
		if interval.TaskID == taskID && interval.IsOpen() {
			found := *interval
			return &found, nil
		}
	}
	return nil, entities.ErrNoActiveTracking
}

func (r *memIntervalRepo) CloseOpen(ctx context.Context, taskID uuid.UUID, endedAt time.Time) (*entities.TimeInterval, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, interval := range r.intervals {
		if interval.TaskID == taskID && interval.IsOpen() {
			end := endedAt
			interval.EndDate = &end
			closed := *interval
			return &closed, nil
		}
	}
	return nil, entities.ErrNoActiveTracking
}

func (r *memIntervalRepo) ListClosedByTask(ctx context.Context, taskID uuid.UUID) ([]*entities.TimeInterval, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := []*entities.TimeInterval{}
	for _, interval := range r.intervals {
		if interval.TaskID == taskID && !interval.IsOpen() {
			found := *interval
			result = append(result, &found)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartDate.After(result[j].StartDate)
	})
	return result, nil
}

func (r *memIntervalRepo) ListClosedSince(ctx context.Context, since time.Time) ([]*entities.TimeInterval, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := []*entities.TimeInterval{}
	for _, interval := range r.intervals {
		if !interval.IsOpen() && !interval.StartDate.Before(since) {
			found := *interval
			result = append(result, &found)
		}
	}
	return result, nil
}

func (r *memIntervalRepo) DeleteByTask(ctx context.Context, taskID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, interval := range r.intervals {
		if interval.TaskID == taskID {
			delete(r.intervals, id)
		}
	}
	return nil
}

type handlerFixture struct {
	e       *echo.Echo
	handler *TimeHandler
	taskID  uuid.UUID
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()

	task := &entities.Task{
		ID:          uuid.New(),
		Title:       "write report",
		Description: "quarterly numbers",
		Status:      entities.TaskStatusTodo,
	}

	svc := services.NewTimeTrackingService(newMemIntervalRepo(), &stubTaskRepo{task: task}, logger.NewNop())
	handler := NewTimeHandler(svc, logger.NewNop())

	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}

	return &handlerFixture{e: e, handler: handler, taskID: task.ID}
}

func (f *handlerFixture) request(method, body, taskID string) echo.Context {
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	c := f.e.NewContext(req, rec)
	c.SetParamNames("taskId")
	c.SetParamValues(taskID)
	return c
}

func recorder(c echo.Context) *httptest.ResponseRecorder {
	return c.Response().Writer.(*httptest.ResponseRecorder)
}

func TestStartTrackingHandler(t *testing.T) {
	f := newHandlerFixture(t)

	c := f.request(http.MethodPost, `{"timeZone":"Europe/Berlin"}`, f.taskID.String())
	require.NoError(t, f.handler.StartTracking(c))

	rec := recorder(c)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var interval entities.TimeInterval
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &interval))
	assert.Equal(t, f.taskID, interval.TaskID)
	assert.Equal(t, "Europe/Berlin", interval.TimeZone)
	assert.Nil(t, interval.EndDate)
}

func TestStartTrackingHandlerAlreadyTracking(t *testing.T) {
	f := newHandlerFixture(t)

	c := f.request(http.MethodPost, `{"timeZone":"UTC"}`, f.taskID.String())
	require.NoError(t, f.handler.StartTracking(c))
	require.Equal(t, http.StatusCreated, recorder(c).Code)

	c = f.request(http.MethodPost, `{"timeZone":"UTC"}`, f.taskID.String())
	require.NoError(t, f.handler.StartTracking(c))

	rec := recorder(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ports.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "already tracking time for this task", resp.Error)
}

func TestStartTrackingHandlerUnknownTask(t *testing.T) {
	f := newHandlerFixture(t)

	c := f.request(http.MethodPost, `{"timeZone":"UTC"}`, uuid.New().String())
	require.NoError(t, f.handler.StartTracking(c))
	assert.Equal(t, http.StatusNotFound, recorder(c).Code)
}

func TestStartTrackingHandlerMalformedID(t *testing.T) {
	f := newHandlerFixture(t)

	c := f.request(http.MethodPost, `{"timeZone":"UTC"}`, "not-a-uuid")
	require.NoError(t, f.handler.StartTracking(c))
	assert.Equal(t, http.StatusBadRequest, recorder(c).Code)
}

func TestStartTrackingHandlerMissingTimeZone(t *testing.T) {
	f := newHandlerFixture(t)

	c := f.request(http.MethodPost, `{}`, f.taskID.String())
	require.NoError(t, f.handler.StartTracking(c))
	assert.Equal(t, http.StatusBadRequest, recorder(c).Code)
}

func TestStopTrackingHandler(t *testing.T) {
	f := newHandlerFixture(t)

	c := f.request(http.MethodPost, `{"timeZone":"UTC"}`, f.taskID.String())
	require.NoError(t, f.handler.StartTracking(c))

	c = f.request(http.MethodPost, "", f.taskID.String())
	require.NoError(t, f.handler.StopTracking(c))

	rec := recorder(c)
	assert.Equal(t, http.StatusOK, rec.Code)

	var interval entities.TimeInterval
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &interval))
	require.NotNil(t, interval.EndDate)
}

func TestStopTrackingHandlerNoActive(t *testing.T) {
	f := newHandlerFixture(t)

	c := f.request(http.MethodPost, "", f.taskID.String())
	require.NoError(t, f.handler.StopTracking(c))

	rec := recorder(c)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp ports.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "no active time tracking found", resp.Error)
}

func TestGetHistoryHandler(t *testing.T) {
	f := newHandlerFixture(t)

	// one full start/stop cycle, then an open interval that must not appear
	c := f.request(http.MethodPost, `{"timeZone":"UTC"}`, f.taskID.String())
	require.NoError(t, f.handler.StartTracking(c))
	c = f.request(http.MethodPost, "", f.taskID.String())
	require.NoError(t, f.handler.StopTracking(c))
	c = f.request(http.MethodPost, `{"timeZone":"UTC"}`, f.taskID.String())
	require.NoError(t, f.handler.StartTracking(c))

	c = f.request(http.MethodGet, "", f.taskID.String())
	require.NoError(t, f.handler.GetHistory(c))

	rec := recorder(c)
	assert.Equal(t, http.StatusOK, rec.Code)

	var intervals []entities.TimeInterval
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &intervals))
	require.Len(t, intervals, 1)
	assert.NotNil(t, intervals[0].EndDate)
}

func TestGetActiveStatusHandler(t *testing.T) {
	f := newHandlerFixture(t)

	c := f.request(http.MethodGet, "", f.taskID.String())
	require.NoError(t, f.handler.GetActiveStatus(c))

	var status ports.TrackingStatus
	require.NoError(t, json.Unmarshal(recorder(c).Body.Bytes(), &status))
	assert.False(t, status.IsActive)

	c = f.request(http.MethodPost, `{"timeZone":"UTC"}`, f.taskID.String())
	require.NoError(t, f.handler.StartTracking(c))

	c = f.request(http.MethodGet, "", f.taskID.String())
	require.NoError(t, f.handler.GetActiveStatus(c))

	require.NoError(t, json.Unmarshal(recorder(c).Body.Bytes(), &status))
	assert.True(t, status.IsActive)
	require.NotNil(t, status.TrackingData)
	assert.Equal(t, f.taskID, status.TrackingData.TaskID)
}

func TestGetSummaryHandler(t *testing.T) {
	f := newHandlerFixture(t)

	c := f.request(http.MethodGet, "", "")
	require.NoError(t, f.handler.GetSummary(c))

	rec := recorder(c)
	assert.Equal(t, http.StatusOK, rec.Code)

	var summary ports.TrackingSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, "00:00", summary.DailyTotal)
	assert.Equal(t, "00:00", summary.MonthlyTotal)
}
