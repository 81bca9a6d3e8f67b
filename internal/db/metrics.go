package db

import (
	"context"
	"time"

	"github.com/feetracker-io/wallet-fee-tracker/internal/observability/metrics"
)

type DbWithMetrics struct {
	db KeyValueStore
}

func NewDbWithMetrics(db KeyValueStore) *DbWithMetrics {
	return &DbWithMetrics{db: db}
}

func (d *DbWithMetrics) Ping(ctx context.Context) error {
	return d.db.Ping(ctx)
}

func (d *DbWithMetrics) Get(ctx context.Context, key string) (result []byte, err error) {
	//nolint:errcheck
	d.run("Get", func() error {
		result, err = d.db.Get(ctx, key)
		return err
	})
	return
}

func (d *DbWithMetrics) Put(ctx context.Context, key string, value []byte) error {
	return d.run("Put", func() error {
		return d.db.Put(ctx, key, value)
	})
}

func (d *DbWithMetrics) Close(ctx context.Context) error {
	return d.db.Close(ctx)
}

// run records latency of f; a missing key is a successful lookup
func (d *DbWithMetrics) run(method string, f func() error) error {
	startTime := time.Now()
	err := f()
	duration := time.Since(startTime)

	metrics.RecordDbLatency(duration, method, err != nil && !IsNotFoundError(err))
	return err
}
