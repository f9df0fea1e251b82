package dashboard

import (
	"bytes"
	"fmt"
	"net/http"

	"go-fieldtrack/internal/geo"
	"go-fieldtrack/internal/report"
	"go-fieldtrack/internal/shared/apperror"
	"go-fieldtrack/internal/shared/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/singleflight"
)

type Handler struct {
	service Service
	exports singleflight.Group
}

type export struct {
	filename string
	data     []byte
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Overview(c *gin.Context) {
	resp, err := h.service.Overview(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Map(c *gin.Context) {
	resp, err := h.service.Map(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Home(c *gin.Context) {
	resp, err := h.service.Home(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// ExportAttendance buffers the workbook so a failure can still be reported
// as JSON. Concurrent downloads share one render.
func (h *Handler) ExportAttendance(c *gin.Context) {
	v, err, _ := h.exports.Do("attendance", func() (any, error) {
		var buf bytes.Buffer
		filename, err := h.service.ExportAttendance(c.Request.Context(), &buf)
		if err != nil {
			return nil, err
		}
		return export{filename: filename, data: buf.Bytes()}, nil
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	out := v.(export)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.filename))
	c.Data(http.StatusOK, report.ContentTypeXLSX, out.data)
}

// GeoOptions tells clients how to acquire a position fix.
func (h *Handler) GeoOptions(c *gin.Context) {
	response.Success(c, http.StatusOK, geo.DefaultAcquireOptions(), nil)
}
