package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
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
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 30},
		},
		[]string{"method", "endpoint"},
	)

	Registrations = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "skypath_registrations_total",
		Help: "Accounts created through registration",
	})

	Logins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skypath_logins_total",
			Help: "Login attempts by outcome",
		},
		[]string{"outcome"},
	)

	VideoUploads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skypath_video_uploads_total",
			Help: "Video uploads by outcome",
		},
		[]string{"outcome"},
	)

	UploadedBytes = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "skypath_video_uploaded_bytes_total",
		Help: "Bytes of video stored",
	})

	VideoViews = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "skypath_video_views_total",
		Help: "Video detail views",
	})

	ScoreEntries = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "skypath_score_entries_total",
		Help: "Score history entries recorded",
	})
)

var registerOnce sync.Once

// Init 注册所有指标，可重复调用
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			Registrations,
			Logins,
			VideoUploads,
			UploadedBytes,
			VideoViews,
			ScoreEntries,
		)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		// 未匹配路由统一归为一个标签，避免标签基数膨胀
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
