package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"beanvault/internal/service"
)

// BeanHandler handles coffee bean catalog endpoints.
type BeanHandler struct {
	beanService service.BeanService
}

// NewBeanHandler creates a new BeanHandler.
func NewBeanHandler(beanService service.BeanService) *BeanHandler {
	return &BeanHandler{beanService: beanService}
}

// List handles GET /api/v1/beans
func (h *BeanHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	year, _ := strconv.Atoi(c.Query("year"))
	month, _ := strconv.Atoi(c.Query("month"))

	out, err := h.beanService.List(c.Request.Context(), service.BeanListInput{
		Provider:  c.Query("provider"),
		Country:   c.Query("country"),
		Type:      c.Query("type"),
		DataYear:  year,
		DataMonth: month,
		Page:      page,
		PageSize:  pageSize,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, out.Beans, NewPagMeta(out.Page, out.PageSize, out.Total))
}

// Trends handles GET /api/v1/beans/trends
func (h *BeanHandler) Trends(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "name query parameter is required")
		return
	}

	points, err := h.beanService.PriceTrends(c.Request.Context(), name)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, points)
}

// GetByKey handles GET /api/v1/beans/:provider/:year/:month/:code
func (h *BeanHandler) GetByKey(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "year must be an integer")
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "month must be an integer in 1..12")
		return
	}

	bean, err := h.beanService.GetByKey(c.Request.Context(), c.Param("provider"), year, month, c.Param("code"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, bean)
}

// Latest handles GET /api/v1/beans/latest
func (h *BeanHandler) Latest(c *gin.Context) {
	all, err := h.beanService.LatestAll(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, all)
}
