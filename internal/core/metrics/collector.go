package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	pkgif "github.com/dep2p/go-srvconn/pkg/interfaces"
	"github.com/dep2p/go-srvconn/pkg/types"
)

// 确保实现接口
var (
	_ pkgif.ConnectObserver = (*Collector)(nil)
	_ pkgif.ConnectObserver = Nop{}
)

// 标签取值
const (
	resultOK        = "ok"
	resultEmpty     = "empty"
	resultError     = "error"
	resultTimeout   = "timeout"
	resultConnected = "connected"
	resultFailed    = "failed"
)

// Collector Prometheus 观察者
type Collector struct {
	gatherer prometheus.Gatherer

	srvLookups      *prometheus.CounterVec
	attempts        *prometheus.CounterVec
	attemptDuration *prometheus.HistogramVec
	outcomes        *prometheus.CounterVec
	attemptsPerConn prometheus.Histogram
}

// NewCollector 在 reg 上注册指标，reg 为 nil 时使用独立的 Registry
func NewCollector(namespace string, reg prometheus.Registerer) *Collector {
	var gatherer prometheus.Gatherer
	if reg == nil {
		r := prometheus.NewRegistry()
		reg, gatherer = r, r
	} else if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	factory := promauto.With(reg)
	return &Collector{
		gatherer: gatherer,
		srvLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "srv_lookups_total",
			Help:      "SRV lookups by result.",
		}, []string{"result"}),
		attempts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connect_attempts_total",
			Help:      "Per-candidate connection attempts by result.",
		}, []string{"result"}),
		attemptDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "connect_attempt_duration_seconds",
			Help:      "Duration of per-candidate connection attempts.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		}, []string{"result"}),
		outcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connects_total",
			Help:      "Terminal outcomes of Connect calls.",
		}, []string{"result"}),
		attemptsPerConn: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "attempts_per_connect",
			Help:      "Number of candidates tried per Connect call.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13},
		}),
	}
}

// Gatherer 返回可导出指标的 Gatherer，外部 Registerer 不支持时为 nil
func (c *Collector) Gatherer() prometheus.Gatherer {
	return c.gatherer
}

// ObserveSRVLookup 实现 ConnectObserver
func (c *Collector) ObserveSRVLookup(_ string, records int, err error) {
	switch {
	case err != nil:
		c.srvLookups.WithLabelValues(resultError).Inc()
	case records == 0:
		c.srvLookups.WithLabelValues(resultEmpty).Inc()
	default:
		c.srvLookups.WithLabelValues(resultOK).Inc()
	}
}

// ObserveAttempt 实现 ConnectObserver
//
// 地址不作为标签，避免基数膨胀。
func (c *Collector) ObserveAttempt(_ string, d time.Duration, err error) {
	result := resultOK
	switch {
	case errors.Is(err, types.ErrConnectTimeout):
		result = resultTimeout
	case err != nil:
		result = resultError
	}
	c.attempts.WithLabelValues(result).Inc()
	c.attemptDuration.WithLabelValues(result).Observe(d.Seconds())
}

// ObserveOutcome 实现 ConnectObserver
func (c *Collector) ObserveOutcome(connected bool, attempts int) {
	result := resultFailed
	if connected {
		result = resultConnected
	}
	c.outcomes.WithLabelValues(result).Inc()
	c.attemptsPerConn.Observe(float64(attempts))
}

// Nop 不做任何事的观察者
type Nop struct{}

// ObserveSRVLookup 实现 ConnectObserver
func (Nop) ObserveSRVLookup(string, int, error) {}

// ObserveAttempt 实现 ConnectObserver
func (Nop) ObserveAttempt(string, time.Duration, error) {}

// ObserveOutcome 实现 ConnectObserver
func (Nop) ObserveOutcome(bool, int) {}
