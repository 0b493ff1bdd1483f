package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ResponseTimeHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_time_seconds",
			Help:    "Histogram of response times",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	RewardRequestsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reward_requests_submitted_total",
			Help: "Reward requests submitted, by option",
		},
		[]string{"option"},
	)

	RewardRequestsDecided = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reward_requests_decided_total",
			Help: "Reward requests decided, by decision and option",
		},
		[]string{"decision", "option"},
	)

	RewardPayoutNet = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reward_payout_net_usdt_total",
		Help: "Net USDT recorded for approved airdrop payouts",
	})

	AccrualRecordsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reward_accrual_records_created_total",
		Help: "Daily reward records created by the accrual job",
	})
)

// GinMiddleware records request count and latency per route template.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		ResponseTimeHistogram.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
