package attendance_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-fieldtrack/internal/attendance"
	attendanceerrors "go-fieldtrack/internal/attendance/errors"
	"go-fieldtrack/internal/geo"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	punchInFn  func(ctx context.Context, coord geo.Coordinate) (attendance.AttendanceResponse, error)
	punchOutFn func(ctx context.Context, coord geo.Coordinate) (attendance.AttendanceResponse, error)
	todayFn    func(ctx context.Context) (attendance.TodayResponse, error)
	listFn     func(ctx context.Context, filter attendance.ListFilter) ([]attendance.AttendanceResponse, error)
}

func (f *fakeService) PunchIn(ctx context.Context, coord geo.Coordinate) (attendance.AttendanceResponse, error) {
	return f.punchInFn(ctx, coord)
}
func (f *fakeService) PunchOut(ctx context.Context, coord geo.Coordinate) (attendance.AttendanceResponse, error) {
	return f.punchOutFn(ctx, coord)
}
func (f *fakeService) Today(ctx context.Context) (attendance.TodayResponse, error) {
	return f.todayFn(ctx)
}
func (f *fakeService) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.AttendanceResponse, error) {
	return f.listFn(ctx, filter)
}

func serve(h gin.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h(c)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error.Code
}

func TestHandler_PunchIn(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var got geo.Coordinate
	svc := &fakeService{
		punchInFn: func(ctx context.Context, coord geo.Coordinate) (attendance.AttendanceResponse, error) {
			got = coord
			return attendance.AttendanceResponse{ID: "01JREC", Status: "PRESENT"}, nil
		},
	}
	h := attendance.NewHandler(svc)

	t.Run("with a fix", func(t *testing.T) {
		w := serve(h.PunchIn, http.MethodPost, "/attendance/punch-in", `{"lat":12.97,"lng":77.59}`)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, geo.Coordinate{Lat: 12.97, Lng: 77.59}, got)
	})

	t.Run("location unavailable never reaches the service", func(t *testing.T) {
		got = geo.Coordinate{}
		w := serve(h.PunchIn, http.MethodPost, "/attendance/punch-in", `{"location_error":"timeout"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "LOCATION_UNAVAILABLE", errorCode(t, w))
		assert.Equal(t, geo.Coordinate{}, got)
	})

	t.Run("missing coordinates", func(t *testing.T) {
		w := serve(h.PunchIn, http.MethodPost, "/attendance/punch-in", `{}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		w := serve(h.PunchIn, http.MethodPost, "/attendance/punch-in", `{"lat":"north"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_PunchOut_Conflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeService{
		punchOutFn: func(ctx context.Context, coord geo.Coordinate) (attendance.AttendanceResponse, error) {
			return attendance.AttendanceResponse{}, attendanceerrors.ErrNotPunchedIn
		},
	}
	h := attendance.NewHandler(svc)

	w := serve(h.PunchOut, http.MethodPost, "/attendance/punch-out", `{"lat":1,"lng":2}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "INVALID_STATE", errorCode(t, w))
}

func TestHandler_GetAll_Paginates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeService{
		listFn: func(ctx context.Context, filter attendance.ListFilter) ([]attendance.AttendanceResponse, error) {
			assert.Equal(t, "2026-10-15", filter.Date)
			return []attendance.AttendanceResponse{{ID: "a"}, {ID: "b"}, {ID: "c"}}, nil
		},
	}
	h := attendance.NewHandler(svc)

	w := serve(h.GetAll, http.MethodGet, "/attendance?date=2026-10-15&page=2&page_size=2", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []attendance.AttendanceResponse `json:"data"`
		Meta struct {
			Total      int `json:"total"`
			TotalPages int `json:"totalPages"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "c", body.Data[0].ID)
	assert.Equal(t, 3, body.Meta.Total)
	assert.Equal(t, 2, body.Meta.TotalPages)
}

func TestHandler_Today(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeService{
		todayFn: func(ctx context.Context) (attendance.TodayResponse, error) {
			return attendance.TodayResponse{State: attendance.DayIdle, EntryTime: "--:--"}, nil
		},
	}
	h := attendance.NewHandler(svc)

	w := serve(h.Today, http.MethodGet, "/attendance/today", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"state":"IDLE"`)
}
