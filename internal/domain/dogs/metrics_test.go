package dogs

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMetricsRepository_CountsCallsAndErrors(t *testing.T) {
	repo := new(mockRepository)
	repo.On("GetByID", mock.Anything, int64(1)).Return(Dog{ID: 1}, nil)
	repo.On("GetByID", mock.Anything, int64(2)).Return(Dog{}, ErrNotFound)
	repo.On("Delete", mock.Anything, int64(3)).Return(Dog{}, errors.New("boom"))

	reg := prometheus.NewRegistry()
	m := NewMetricsRepository(reg, repo).(*metricsRepository)
	ctx := context.Background()

	_, _ = m.GetByID(ctx, 1)
	_, _ = m.GetByID(ctx, 2)
	_, _ = m.Delete(ctx, 3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.reqs.WithLabelValues("get_by_id")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.errs.WithLabelValues("get_by_id", "not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.errs.WithLabelValues("delete", "internal")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.errs.WithLabelValues("create", "internal")))
}
