package api

import (
	"net/http"
	"strconv"
	"time"

	"retention-analytics/internal/analytics"
	"retention-analytics/internal/service"
	"retention-analytics/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

const monthLayout = "2006-01"

// Handler contains HTTP handlers
type Handler struct {
	analytics     *service.AnalyticsService
	minCohortSize int
	maxMonthIndex int
}

// NewHandler creates a new HTTP handler. minCohortSize and maxMonthIndex
// are the default presentation filters for the retention matrix; requests
// may override them per call.
func NewHandler(analytics *service.AnalyticsService, minCohortSize, maxMonthIndex int) *Handler {
	return &Handler{
		analytics:     analytics,
		minCohortSize: minCohortSize,
		maxMonthIndex: maxMonthIndex,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/reports/summary", h.getSummary)
		v1.GET("/reports/retention", h.getRetention)
		v1.POST("/reports/refresh", h.refreshReport)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

type monthlyRow struct {
	Month     string              `json:"month"`
	Orders    int                 `json:"orders"`
	Customers int                 `json:"customers"`
	Revenue   decimal.Decimal     `json:"revenue"`
	AOV       decimal.NullDecimal `json:"aov"`
}

// getSummary serves the KPI tables: monthly trend, repeat rate, category
// ranking and short-window retention. Undefined ratios serialize as null,
// never as zero.
func (h *Handler) getSummary(c *gin.Context) {
	report, err := h.analytics.GetReport(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to compute report",
			"details": err.Error(),
		})
		return
	}

	monthly := make([]monthlyRow, 0, len(report.Monthly))
	for _, m := range report.Monthly {
		monthly = append(monthly, monthlyRow{
			Month:     m.Month.Format(monthLayout),
			Orders:    m.Orders,
			Customers: m.Customers,
			Revenue:   m.Revenue,
			AOV:       m.AOV,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"run_id":                     report.RunID,
		"generated_at":               report.GeneratedAt,
		"monthly":                    monthly,
		"repeat_customer_pct":        report.RepeatPct,
		"top_categories":             report.TopCategories,
		"short_window_retention_pct": report.ShortWindowPct,
		"exclusions":                 report.Exclusions,
	})
}

type retentionRow struct {
	CohortMonth     string              `json:"cohort_month"`
	OrderMonth      string              `json:"order_month"`
	MonthIndex      int                 `json:"month_index"`
	ActiveCustomers int                 `json:"active_customers"`
	CohortSize      int                 `json:"cohort_size"`
	RetentionPct    decimal.NullDecimal `json:"retention_pct"`
}

// getRetention serves the cohort retention matrix. Small cohorts are
// filtered here, not in the engine, so the thresholds stay adjustable
// per request.
func (h *Handler) getRetention(c *gin.Context) {
	minSize, err := queryInt(c, "min_cohort_size", h.minCohortSize)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min_cohort_size"})
		return
	}
	maxIndex, err := queryInt(c, "max_month_index", h.maxMonthIndex)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid max_month_index"})
		return
	}

	report, err := h.analytics.GetReport(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to compute report",
			"details": err.Error(),
		})
		return
	}

	filtered := analytics.FilterRetention(report.Retention, minSize, maxIndex)
	rows := make([]retentionRow, 0, len(filtered))
	for _, r := range filtered {
		rows = append(rows, retentionRow{
			CohortMonth:     r.CohortMonth.Format(monthLayout),
			OrderMonth:      r.OrderMonth.Format(monthLayout),
			MonthIndex:      r.MonthIndex,
			ActiveCustomers: r.ActiveCustomers,
			CohortSize:      r.CohortSize,
			RetentionPct:    r.RetentionPct,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"run_id":          report.RunID,
		"min_cohort_size": minSize,
		"max_month_index": maxIndex,
		"rows":            rows,
	})
}

// refreshReport forces a recomputation, bypassing the cache
func (h *Handler) refreshReport(c *gin.Context) {
	report, err := h.analytics.RefreshReport(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to refresh report",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"run_id":           report.RunID,
		"generated_at":     report.GeneratedAt,
		"delivered_orders": report.DeliveredOrders(),
	})
}

func queryInt(c *gin.Context, name string, defaultVal int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(raw)
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
