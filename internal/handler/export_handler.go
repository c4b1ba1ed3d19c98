package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"beanvault/internal/export"
	"beanvault/internal/port"
)

// ExportHandler handles catalog export endpoints.
type ExportHandler struct {
	beanRepo port.BeanRepository
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(beanRepo port.BeanRepository) *ExportHandler {
	return &ExportHandler{beanRepo: beanRepo}
}

// CSV handles GET /api/v1/exports/beans.csv
func (h *ExportHandler) CSV(c *gin.Context) {
	beans, err := h.beanRepo.ListAll(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+export.BuildFilename("beans", "csv")+`"`)
	c.Status(http.StatusOK)

	if _, err := c.Writer.Write(export.BOM); err != nil {
		return
	}
	w := export.NewCSVWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		return
	}
	if err := w.WriteBeans(beans); err != nil {
		return
	}
	w.Flush()
}

// XLSX handles GET /api/v1/exports/beans.xlsx
func (h *ExportHandler) XLSX(c *gin.Context) {
	beans, err := h.beanRepo.ListAll(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="`+export.BuildFilename("beans", "xlsx")+`"`)
	c.Status(http.StatusOK)

	if err := export.WriteXLSX(c.Writer, beans); err != nil {
		// headers already sent
		_ = c.Error(err)
	}
}
