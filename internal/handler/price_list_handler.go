package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"beanvault/internal/service"
)

// PriceListHandler handles price list upload and queue endpoints.
type PriceListHandler struct {
	ingestService service.IngestService
	flavorService service.FlavorService
}

// NewPriceListHandler creates a new PriceListHandler.
func NewPriceListHandler(ingestService service.IngestService, flavorService service.FlavorService) *PriceListHandler {
	return &PriceListHandler{ingestService: ingestService, flavorService: flavorService}
}

// Upload handles POST /api/v1/price-lists
func (h *PriceListHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "multipart field 'file' is required")
		return
	}

	pageCount, _ := strconv.Atoi(c.PostForm("page_count"))

	file, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "cannot read uploaded file")
		return
	}
	defer func() { _ = file.Close() }()

	contentType := fileHeader.Header.Get("Content-Type")

	pl, err := h.ingestService.Upload(c.Request.Context(), service.UploadPriceListInput{
		FileName:    fileHeader.Filename,
		ContentType: contentType,
		SizeBytes:   fileHeader.Size,
		PageCount:   pageCount,
		Body:        file,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondAccepted(c, pl)
}

// List handles GET /api/v1/price-lists
func (h *PriceListHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	lists, total, page, pageSize, err := h.ingestService.ListPriceLists(c.Request.Context(), page, pageSize)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, lists, NewPagMeta(page, pageSize, total))
}

// GetByID handles GET /api/v1/price-lists/:id
func (h *PriceListHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid price list ID")
		return
	}

	pl, err := h.ingestService.GetPriceList(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, pl)
}

// Categorize handles POST /api/v1/price-lists/:id/flavors
func (h *PriceListHandler) Categorize(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid price list ID")
		return
	}

	pl, err := h.ingestService.GetPriceList(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	result, err := h.flavorService.CategorizeProvider(c.Request.Context(), pl.Provider, pl.DataYear, pl.DataMonth)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}
