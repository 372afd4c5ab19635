// Package metrics exposes the platform's Prometheus instrumentation:
// request-level HTTP metrics plus counters for the investment and
// verification flows.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "proptoken_http_request_duration_seconds",
		Help:    "Duration of HTTP requests by method, route and status",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"method", "route", "status"})

	kycVerifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "proptoken_kyc_verifications_total",
		Help: "Total identity verification attempts by outcome",
	}, []string{"outcome"})

	investmentsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "proptoken_investments_total",
		Help: "Total successful token allocations",
	})

	investedAmount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "proptoken_invested_amount_total",
		Help: "Total gross invested amount in whole currency units",
	})

	analyticsReportDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "proptoken_analytics_report_duration_seconds",
		Help:    "Duration of full analytics report runs",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	})
)

// RecordKYCVerification records one verification attempt outcome.
func RecordKYCVerification(verified bool) {
	outcome := "rejected"
	if verified {
		outcome = "verified"
	}
	kycVerifications.WithLabelValues(outcome).Inc()
}

// RecordInvestment records one successful allocation and its gross amount.
func RecordInvestment(amount int64) {
	investmentsTotal.Inc()
	investedAmount.Add(float64(amount))
}

// ObserveAnalyticsReport records the duration of one report run. Call
// with time.Now() at the start of the run.
func ObserveAnalyticsReport(start time.Time) {
	analyticsReportDuration.Observe(time.Since(start).Seconds())
}

// Middleware records per-request duration labeled by route template, so
// parameterized paths do not explode cardinality.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the Prometheus scrape endpoint as a gin handler.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
