package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/troopdesk/troopdesk-backend/internal/response"
	"github.com/troopdesk/troopdesk-backend/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler handles the aggregated reports.
type ReportHandler struct {
	reportService *service.ReportService
	log           zerolog.Logger
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService *service.ReportService, log zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		log:           log.With().Str("component", "report_handler").Logger(),
	}
}

// GetSummary godoc
// GET /api/v1/reports/summary
// Returns group, status, activity type and location counts plus the
// attendance tallies of the five most recent activities.
func (h *ReportHandler) GetSummary(c *gin.Context) {
	sum, err := h.reportService.Summary(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Report summary failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, sum)
}

// Export godoc
// GET /api/v1/reports/export
// Downloads the summary as an XLSX workbook.
func (h *ReportHandler) Export(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.reportService.Export(c.Request.Context(), &buf); err != nil {
		h.log.Error().Err(err).Msg("Report export failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	filename := fmt.Sprintf("troop-report-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
