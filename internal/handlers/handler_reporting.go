package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/expensio/expensio_backend/internal/core/domain"
	portssvc "github.com/expensio/expensio_backend/internal/core/ports/services"
	"github.com/expensio/expensio_backend/internal/dto"
	"github.com/expensio/expensio_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for the aggregated report views.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers the report routes.
func registerReportingRoutes(rg *gin.RouterGroup, rs portssvc.ReportingSvcFacade) {
	h := newReportingHandler(rs)

	reports := rg.Group("/reports")
	{
		reports.GET("/overview", h.getOverview)
		reports.GET("/categories", h.getCategoryDistribution)
	}
}

// getOverview godoc
// @Summary Dashboard overview report
// @Description Returns sign-split totals, the signed pending total, cumulative period windows and the 12-month trend for the authenticated user.
// @Tags reports
// @Produce json
// @Success 200 {object} dto.OverviewResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/overview [get]
func (h *reportingHandler) getOverview(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	report, err := h.reportingService.Overview(c.Request.Context(), ownerID)
	if err != nil {
		logger.Error("Failed to generate overview report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}

	c.JSON(http.StatusOK, dto.ToOverviewResponse(report))
}

// getCategoryDistribution godoc
// @Summary Per-category distribution for one month
// @Description Returns per-category expense and income totals for a "YYYY-MM" month, optionally filtered by category-name substring and sorted by amount or name. Month defaults to the current month.
// @Tags reports
// @Produce json
// @Param month query string false "Month key, YYYY-MM; defaults to current month"
// @Param filter query string false "Case-insensitive category-name substring"
// @Param sort query string false "Sort mode: amount (default) or name"
// @Success 200 {object} dto.CategoryDistributionResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/categories [get]
func (h *reportingHandler) getCategoryDistribution(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.CategoryDistributionParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	monthKey := params.Month
	if monthKey == "" {
		monthKey = time.Now().Format("2006-01")
	}

	sortMode := domain.SortByAmount
	if params.Sort == "name" {
		sortMode = domain.SortByName
	}

	dist, err := h.reportingService.CategoryDistribution(c.Request.Context(), ownerID, monthKey, params.Filter, sortMode)
	if err != nil {
		logger.Error("Failed to generate category distribution", slog.String("error", err.Error()), slog.String("month", monthKey))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryDistributionResponse(dist))
}
