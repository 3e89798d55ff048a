package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/agripoulet/internal/service/reporting"
)

// ReportsHandler serves the financial summary endpoints.
type ReportsHandler struct {
	svc    *reporting.Service
	logger *zap.Logger
}

// NewReportsHandler constructs the HTTP handler adapter.
func NewReportsHandler(svc *reporting.Service, logger *zap.Logger) *ReportsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportsHandler{svc: svc, logger: logger}
}

// Summaries returns the financial summary of every stock batch.
func (h *ReportsHandler) Summaries(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Summaries())
}

// Summary returns the financial summary of one stock batch.
func (h *ReportsHandler) Summary(c *gin.Context) {
	sum, err := h.svc.Summary(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

// StatementPDF downloads the financial statement of one stock batch.
func (h *ReportsHandler) StatementPDF(c *gin.Context) {
	raw, err := h.svc.StatementPDF(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=bilan-%s.pdf", c.Param("id")))
	c.Data(http.StatusOK, "application/pdf", raw)
}

// Export appends every summary to the configured spreadsheet.
func (h *ReportsHandler) Export(c *gin.Context) {
	rows, err := h.svc.ExportToSheet(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exported": rows})
}
