package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// AssessmentsCreated 按计算出的风险等级计数
	AssessmentsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "risk_assessments_created_total",
			Help: "Assessments stored, by computed risk level",
		},
		[]string{"risk_level"},
	)

	ValidationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "risk_assessment_validation_failures_total",
			Help: "Rejected assessment submissions, by offending field",
		},
		[]string{"field"},
	)

	InvariantViolations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "risk_assessment_invariant_violations_total",
			Help: "Records that could not be rebuilt through validation and scoring",
		},
	)

	ReportsRendered = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "risk_assessment_reports_total",
			Help: "Rendered assessment reports, by format",
		},
		[]string{"format"},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(AssessmentsCreated)
		prometheus.MustRegister(ValidationFailures)
		prometheus.MustRegister(InvariantViolations)
		prometheus.MustRegister(ReportsRendered)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
