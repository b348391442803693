package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	reportapp "github.com/niorc/backend/internal/application/report"
)

// ReportHandler handles analytics endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// SummaryRequest selects the reporting window
type SummaryRequest struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
}

// RegisterRoutes registers the report endpoints
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/reports/summary", h.Summary)
}

// Summary returns aggregated figures for a time window
func (h *ReportHandler) Summary(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		h.Unauthorized(c, "Missing vendor identity")
		return
	}

	var req SummaryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	from, err := parseWindowTime(req.From)
	if err != nil {
		h.BadRequest(c, "Invalid from, expected RFC3339 or YYYY-MM-DD")
		return
	}
	to, err := parseWindowTime(req.To)
	if err != nil {
		h.BadRequest(c, "Invalid to, expected RFC3339 or YYYY-MM-DD")
		return
	}

	summary, err := h.reportService.Summarize(c.Request.Context(), vendor, from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// parseWindowTime accepts RFC3339 timestamps or bare dates
func parseWindowTime(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
