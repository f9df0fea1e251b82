package dashboard_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	autherrors "go-fieldtrack/internal/auth/errors"
	"go-fieldtrack/internal/dashboard"
	dashboardMock "go-fieldtrack/internal/dashboard/mock"
	"go-fieldtrack/internal/geo"
	"go-fieldtrack/internal/report"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setupRouter(h *dashboard.Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/overview", h.Overview)
	r.GET("/admin/map", h.Map)
	r.GET("/admin/attendance/export", h.ExportAttendance)
	r.GET("/app/home", h.Home)
	r.GET("/geo/options", h.GeoOptions)
	return r
}

func get(r *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHandler_Overview(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := dashboardMock.NewMockService(ctrl)
	r := setupRouter(dashboard.NewHandler(mockService))

	mockService.EXPECT().Overview(gomock.Any()).Return(dashboard.OverviewResponse{
		Date:  "2026-10-15",
		Stats: dashboard.StatsResponse{Total: 2, Active: 1},
	}, nil)

	w := get(r, "/admin/overview")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data dashboard.OverviewResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Data.Stats.Active)
}

func TestHandler_Map_Forbidden(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := dashboardMock.NewMockService(ctrl)
	r := setupRouter(dashboard.NewHandler(mockService))

	mockService.EXPECT().Map(gomock.Any()).Return(dashboard.MapResponse{}, autherrors.ErrForbidden)

	w := get(r, "/admin/map")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHandler_ExportAttendance(t *testing.T) {
	t.Run("attachment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockService := dashboardMock.NewMockService(ctrl)
		r := setupRouter(dashboard.NewHandler(mockService))

		mockService.EXPECT().ExportAttendance(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, w io.Writer) (string, error) {
				_, err := w.Write([]byte("PK"))
				return "attendance-2026-10-15.xlsx", err
			})

		w := get(r, "/admin/attendance/export")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, report.ContentTypeXLSX, w.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="attendance-2026-10-15.xlsx"`, w.Header().Get("Content-Disposition"))
		assert.Equal(t, "PK", w.Body.String())
	})

	t.Run("error stays json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockService := dashboardMock.NewMockService(ctrl)
		r := setupRouter(dashboard.NewHandler(mockService))

		mockService.EXPECT().ExportAttendance(gomock.Any(), gomock.Any()).Return("", autherrors.ErrNoSession)

		w := get(r, "/admin/attendance/export")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, w.Header().Get("Content-Disposition"))
	})
}

func TestHandler_GeoOptions(t *testing.T) {
	r := setupRouter(dashboard.NewHandler(nil))

	w := get(r, "/geo/options")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data geo.AcquireOptions `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, geo.DefaultAcquireOptions(), body.Data)
	assert.Contains(t, w.Body.String(), `"maximumAge":0`)
}
