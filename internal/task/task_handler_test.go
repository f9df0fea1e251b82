package task_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-fieldtrack/internal/geo"
	"go-fieldtrack/internal/shared/apperror"
	"go-fieldtrack/internal/task"
	taskerrors "go-fieldtrack/internal/task/errors"
	taskMock "go-fieldtrack/internal/task/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setupRouter(h *task.Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	apperror.UseJSONFieldNames()
	r := gin.New()
	r.POST("/tasks", h.Assign)
	r.POST("/tasks/:id/complete", h.Complete)
	r.GET("/tasks", h.GetAll)
	r.GET("/tasks/mine", h.Mine)
	return r
}

func do(r *gin.Engine, method, target string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) (string, string) {
	t.Helper()
	var env struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env.Error.Code, env.Error.Message
}

func TestHandler_Assign(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := taskMock.NewMockService(ctrl)
	r := setupRouter(task.NewHandler(mockService))

	t.Run("created", func(t *testing.T) {
		req := task.AssignTaskRequest{AssignedTo: "u2", Title: "Visit"}
		mockService.EXPECT().Assign(gomock.Any(), req).Return(task.TaskResponse{ID: "01JT", Status: "PENDING"}, nil)

		w := do(r, http.MethodPost, "/tasks", req)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("missing title", func(t *testing.T) {
		w := do(r, http.MethodPost, "/tasks", map[string]string{"assigned_to": "u2"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		code, msg := errorBody(t, w)
		assert.Equal(t, apperror.CodeInvalidInput, code)
		assert.Equal(t, "Title is required", msg)
	})

	t.Run("assignee not found", func(t *testing.T) {
		mockService.EXPECT().Assign(gomock.Any(), gomock.Any()).Return(task.TaskResponse{}, taskerrors.ErrAssigneeNotFound)

		w := do(r, http.MethodPost, "/tasks", task.AssignTaskRequest{AssignedTo: "u9", Title: "Visit"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Complete(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := taskMock.NewMockService(ctrl)
	r := setupRouter(task.NewHandler(mockService))
	lat, lng := 12.97, 77.59

	t.Run("completed", func(t *testing.T) {
		mockService.EXPECT().
			Complete(gomock.Any(), "t1", task.ProofInput{Note: "done", Location: geo.Coordinate{Lat: lat, Lng: lng}}).
			Return(task.TaskResponse{ID: "t1", Status: "COMPLETED"}, nil)

		w := do(r, http.MethodPost, "/tasks/t1/complete", task.CompleteTaskRequest{Note: "done", Lat: &lat, Lng: &lng})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("already completed", func(t *testing.T) {
		mockService.EXPECT().Complete(gomock.Any(), "t1", gomock.Any()).Return(task.TaskResponse{}, taskerrors.ErrTaskAlreadyCompleted)

		w := do(r, http.MethodPost, "/tasks/t1/complete", task.CompleteTaskRequest{Lat: &lat, Lng: &lng})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("unknown task", func(t *testing.T) {
		mockService.EXPECT().Complete(gomock.Any(), "zz", gomock.Any()).Return(task.TaskResponse{}, taskerrors.ErrTaskNotFound)

		w := do(r, http.MethodPost, "/tasks/zz/complete", task.CompleteTaskRequest{Lat: &lat, Lng: &lng})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("no location", func(t *testing.T) {
		w := do(r, http.MethodPost, "/tasks/t1/complete", task.CompleteTaskRequest{LocationError: "denied"})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("bad photo url", func(t *testing.T) {
		w := do(r, http.MethodPost, "/tasks/t1/complete", map[string]any{"photo_url": "not a url", "lat": lat, "lng": lng})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Mine(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := taskMock.NewMockService(ctrl)
	r := setupRouter(task.NewHandler(mockService))

	mockService.EXPECT().Mine(gomock.Any()).Return(task.MyTasksResponse{
		Pending:   []task.TaskResponse{{ID: "t1"}},
		Completed: []task.TaskResponse{},
	}, nil)

	w := do(r, http.MethodGet, "/tasks/mine", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"completed":[]`)
}
