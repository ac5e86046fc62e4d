package utils

import (
	"strconv"
	"time"

	"github.com/iov-one/timedescrow"
	"github.com/iov-one/timedescrow/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is a decorator that counts processed transactions and measures
// how long they take, labeled by message path and result code.
type Metrics struct {
	processed *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

var _ timedescrow.Decorator = Metrics{}

// NewMetrics creates the collectors and registers them with given
// registerer. Use prometheus.DefaultRegisterer to expose them through the
// default handler.
func NewMetrics(reg prometheus.Registerer) (Metrics, error) {
	m := Metrics{
		processed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "escrowd",
			Name:      "tx_processed_total",
			Help:      "Number of processed transactions.",
		}, []string{"call", "path", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "escrowd",
			Name:      "tx_duration_seconds",
			Help:      "Time spent processing a transaction.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}, []string{"call", "path"}),
	}
	for _, c := range []prometheus.Collector{m.processed, m.duration} {
		if err := reg.Register(c); err != nil {
			return Metrics{}, errors.Wrapf(errors.ErrHuman, "cannot register metrics: %s", err)
		}
	}
	return m, nil
}

// Check records the outcome of a check call.
func (m Metrics) Check(ctx timedescrow.Context, store timedescrow.KVStore, tx timedescrow.Tx, next timedescrow.Checker) (*timedescrow.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	m.observe("check", tx, start, err)
	return res, err
}

// Deliver records the outcome of a deliver call.
func (m Metrics) Deliver(ctx timedescrow.Context, store timedescrow.KVStore, tx timedescrow.Tx, next timedescrow.Deliverer) (*timedescrow.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	m.observe("deliver", tx, start, err)
	return res, err
}

func (m Metrics) observe(call string, tx timedescrow.Tx, start time.Time, err error) {
	path := timedescrow.GetPath(tx)
	code, _ := errors.ABCIInfo(err, false)
	m.processed.WithLabelValues(call, path, strconv.FormatUint(uint64(code), 10)).Inc()
	m.duration.WithLabelValues(call, path).Observe(time.Since(start).Seconds())
}
