package dogs

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type metricsRepository struct {
	// RED metrics
	reqs *prometheus.CounterVec
	errs *prometheus.CounterVec
	durs *prometheus.HistogramVec

	next Repository
}

var _ Repository = (*metricsRepository)(nil)

// NewMetricsRepository envuelve un Repository con métricas de llamadas al store.
func NewMetricsRepository(reg prometheus.Registerer, next Repository) Repository {
	const namespace = "dogs"
	const subsystem = "store"

	reqs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "call_total",
		Help:      "Number of calls to the dog store",
	}, []string{"op"})

	errs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "error_total",
		Help:      "Number of errors returned by the dog store",
	}, []string{"op", "code"})

	durs := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "duration_seconds",
		Help:      "Duration of dog store calls",
		Buckets:   prometheus.DefBuckets,
	}, []string{"op"})

	reg.MustRegister(reqs, errs, durs)

	return &metricsRepository{
		reqs: reqs,
		errs: errs,
		durs: durs,
		next: next,
	}
}

func (m *metricsRepository) record(op string) func(error) {
	start := time.Now()
	m.reqs.WithLabelValues(op).Inc()
	return func(err error) {
		m.durs.WithLabelValues(op).Observe(time.Since(start).Seconds())
		if err != nil {
			m.errs.WithLabelValues(op, errorCode(err)).Inc()
		}
	}
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidInput):
		return "invalid"
	default:
		return "internal"
	}
}

func (m *metricsRepository) Create(ctx context.Context, in CreateInput) (Dog, error) {
	done := m.record("create")
	d, err := m.next.Create(ctx, in)
	done(err)
	return d, err
}

func (m *metricsRepository) List(ctx context.Context) ([]Dog, error) {
	done := m.record("list")
	items, err := m.next.List(ctx)
	done(err)
	return items, err
}

func (m *metricsRepository) GetByID(ctx context.Context, id int64) (Dog, error) {
	done := m.record("get_by_id")
	d, err := m.next.GetByID(ctx, id)
	done(err)
	return d, err
}

func (m *metricsRepository) Update(ctx context.Context, id int64, p Patch) (Dog, error) {
	done := m.record("update")
	d, err := m.next.Update(ctx, id, p)
	done(err)
	return d, err
}

func (m *metricsRepository) Delete(ctx context.Context, id int64) (Dog, error) {
	done := m.record("delete")
	d, err := m.next.Delete(ctx, id)
	done(err)
	return d, err
}
