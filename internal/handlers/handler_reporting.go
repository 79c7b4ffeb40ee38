package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	portssvc "github.com/zaminwale/crm_backend/internal/core/ports/services"
	"github.com/zaminwale/crm_backend/internal/dto"
	"github.com/zaminwale/crm_backend/internal/middleware"
)

// reportingHandler handles received-amount report requests.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// parseWindow parses the optional start/end query bounds. Dates come in as
// either plain dates or full timestamps.
func parseWindow(params dto.ReceivedWindowParams) (start, end *time.Time, err error) {
	parse := func(v string) (*time.Time, error) {
		if v == "" {
			return nil, nil
		}
		if t, perr := time.Parse("2006-01-02", v); perr == nil {
			return &t, nil
		}
		t, perr := time.Parse(time.RFC3339, v)
		if perr != nil {
			return nil, perr
		}
		return &t, nil
	}
	if start, err = parse(params.Start); err != nil {
		return nil, nil, err
	}
	if end, err = parse(params.End); err != nil {
		return nil, nil, err
	}
	return start, end, nil
}

// totalReceived godoc
// @Summary Total received amount report
// @Description Sums received installments across customers, optionally restricted to a creation window
// @Tags reports
// @Produce  json
// @Param   start query string false "Window start (YYYY-MM-DD)"
// @Param   end query string false "Window end (YYYY-MM-DD)"
// @Success 200 {object} dto.TotalReceivedResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Security BearerAuth
// @Router /customers/total-received [get]
func (h *reportingHandler) totalReceived(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ReceivedWindowParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	start, end, err := parseWindow(params)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date: " + err.Error()})
		return
	}

	res, err := h.reportingService.TotalReceived(c.Request.Context(), start, end)
	if err != nil {
		logger.Error("Failed to compute total received report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch received amounts"})
		return
	}

	c.JSON(http.StatusOK, res)
}

// monthlyReceived godoc
// @Summary Monthly received amounts
// @Description Buckets received amounts by customer creation month
// @Tags reports
// @Produce  json
// @Param   start query string false "Window start (YYYY-MM-DD)"
// @Param   end query string false "Window end (YYYY-MM-DD)"
// @Success 200 {array} dto.MonthlyReceived
// @Failure 400 {object} map[string]string "Invalid date"
// @Security BearerAuth
// @Router /customers/received/monthly [get]
func (h *reportingHandler) monthlyReceived(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ReceivedWindowParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	start, end, err := parseWindow(params)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date: " + err.Error()})
		return
	}

	res, err := h.reportingService.MonthlyReceived(c.Request.Context(), start, end)
	if err != nil {
		logger.Error("Failed to compute monthly received report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch monthly received amounts"})
		return
	}

	c.JSON(http.StatusOK, res)
}
