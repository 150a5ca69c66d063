package handler

import (
	"net/http"
	"strconv"
	"time"

	"carhub/internal/apierror"
	"carhub/internal/dto"
	"carhub/internal/service"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct{ svc service.AnalyticsService }

func NewAnalyticsHandler(svc service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	summary, err := h.svc.DashboardSummary(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Revenue returns revenue, profit and sales count over ?from / ?to
// (RFC 3339 dates; defaults to the trailing 30 days).
func (h *AnalyticsHandler) Revenue(c *gin.Context) {
	from, to, err := parseWindow(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid date range"))
		return
	}
	revenue, err := h.svc.TotalRevenue(c.Request.Context(), from, to)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	profit, err := h.svc.TotalProfit(c.Request.Context(), from, to)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	count, err := h.svc.SalesCount(c.Request.Context(), from, to)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"from":    from,
		"to":      to,
		"revenue": revenue,
		"profit":  profit,
		"count":   count,
	})
}

func (h *AnalyticsHandler) MonthlyRevenue(c *gin.Context) {
	months := 6
	if q := c.Query("months"); q != "" {
		parsed, err := strconv.Atoi(q)
		if err != nil || parsed < 1 || parsed > 36 {
			c.JSON(http.StatusBadRequest, apierror.New("months must be between 1 and 36"))
			return
		}
		months = parsed
	}
	buckets, err := h.svc.MonthlyRevenue(c.Request.Context(), months)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, buckets)
}

func (h *AnalyticsHandler) RecentSales(c *gin.Context) {
	limit := 10
	if q := c.Query("limit"); q != "" {
		parsed, err := strconv.Atoi(q)
		if err != nil || parsed < 1 || parsed > 100 {
			c.JSON(http.StatusBadRequest, apierror.New("limit must be between 1 and 100"))
			return
		}
		limit = parsed
	}
	sales, err := h.svc.RecentSales(c.Request.Context(), limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp := make([]*dto.SaleResponse, len(sales))
	for i := range sales {
		resp[i] = dto.SaleToResponse(&sales[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AnalyticsHandler) PaymentMethods(c *gin.Context) {
	buckets, err := h.svc.SalesByPaymentMethod(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, buckets)
}

func parseWindow(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now()
	from, to := now.AddDate(0, 0, -30), now
	var err error
	if q := c.Query("from"); q != "" {
		if from, err = time.Parse("2006-01-02", q); err != nil {
			return from, to, err
		}
	}
	if q := c.Query("to"); q != "" {
		if to, err = time.Parse("2006-01-02", q); err != nil {
			return from, to, err
		}
		// Windows are inclusive of the end date.
		to = to.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return from, to, nil
}
