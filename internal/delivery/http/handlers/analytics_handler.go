package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	analyticsResponse "github.com/IGIHOZO/egura-negotiation-service/internal/delivery/http/dto/analytics/response"
	"github.com/IGIHOZO/egura-negotiation-service/internal/domain"
	"github.com/IGIHOZO/egura-negotiation-service/internal/usecase"
)

type AnalyticsHandler struct {
	uc              usecase.AnalyticsUsecase
	defaultBaseline float64
}

func NewAnalyticsHandler(uc usecase.AnalyticsUsecase, defaultBaseline float64) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc, defaultBaseline: defaultBaseline}
}

// GetReport handles GET /negotiation/admin/analytics. The date range and SKU
// filter come from query params; baseline_rate overrides the configured
// non-negotiated conversion baseline used for the lift figure.
func (h *AnalyticsHandler) GetReport(c *gin.Context) {
	filter, err := h.parseFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	baseline := h.defaultBaseline
	if raw := c.Query("baseline_rate"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 || parsed > 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "baseline_rate must be a number in [0, 1]"})
			return
		}
		baseline = parsed
	}

	report, err := h.uc.GetReport(filter, baseline)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, analyticsResponse.FromReport(report))
}

// GetRealtime handles GET /negotiation/admin/analytics/realtime.
func (h *AnalyticsHandler) GetRealtime(c *gin.Context) {
	view, err := h.uc.GetRealtime()
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, analyticsResponse.FromRealtime(view))
}

// ExportCSV handles GET /negotiation/admin/analytics/export and streams the
// filtered rollup as a CSV attachment.
func (h *AnalyticsHandler) ExportCSV(c *gin.Context) {
	filter, err := h.parseFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	data, err := h.uc.ExportCSV(filter)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="negotiation_analytics.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}

func (h *AnalyticsHandler) parseFilter(c *gin.Context) (domain.AnalyticsFilter, error) {
	filter := domain.AnalyticsFilter{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
		SKU:       c.Query("sku"),
	}
	for _, date := range []string{filter.StartDate, filter.EndDate} {
		if date == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return domain.AnalyticsFilter{}, errInvalidDate
		}
	}
	return filter, nil
}

var errInvalidDate = errors.New("dates must use the YYYY-MM-DD format")
