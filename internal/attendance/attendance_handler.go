package attendance

import (
	"net/http"
	"strconv"

	"go-fieldtrack/internal/geo"
	"go-fieldtrack/internal/shared/apperror"
	"go-fieldtrack/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func bindCoordinate(c *gin.Context) (geo.Coordinate, error) {
	var req PunchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return geo.Coordinate{}, apperror.MapValidationError(err)
	}
	return geo.FromReport(req.Lat, req.Lng, req.LocationError)
}

func (h *Handler) PunchIn(c *gin.Context) {
	coord, err := bindCoordinate(c)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp, err := h.service.PunchIn(c.Request.Context(), coord)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) PunchOut(c *gin.Context) {
	coord, err := bindCoordinate(c)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp, err := h.service.PunchOut(c.Request.Context(), coord)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Today(c *gin.Context) {
	resp, err := h.service.Today(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context(), ListFilter{
		Date:   c.Query("date"),
		UserID: c.Query("user_id"),
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 {
		pageSize = 10
	}

	start, end := response.Paginate(len(resp), page, pageSize)
	meta := response.NewPaginationMeta(int64(len(resp)), page, pageSize)
	response.Success(c, http.StatusOK, resp[start:end], &meta)
}
