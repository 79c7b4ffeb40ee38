package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/zaminwale/crm_backend/internal/core/ports/services"
	"github.com/zaminwale/crm_backend/internal/dto"
	"github.com/zaminwale/crm_backend/internal/middleware"
)

// activityLogHandler serves the audit trail.
type activityLogHandler struct {
	logService portssvc.ActivityLogSvcFacade
}

func newActivityLogHandler(ls portssvc.ActivityLogSvcFacade) *activityLogHandler {
	return &activityLogHandler{logService: ls}
}

func registerActivityLogRoutes(rg *gin.RouterGroup, logService portssvc.ActivityLogSvcFacade) {
	h := newActivityLogHandler(logService)

	logs := rg.Group("/activity-logs")
	{
		logs.GET("", h.listLogs)
	}
}

// listLogs godoc
// @Summary List audit records
// @Description Retrieves audit records newest first
// @Tags activity-logs
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListActivityLogsResponse
// @Security BearerAuth
// @Router /activity-logs [get]
func (h *activityLogHandler) listLogs(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListActivityLogsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	logs, err := h.logService.ListLogs(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list activity logs", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch activity logs"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListActivityLogsResponse(logs))
}
