package poller

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPoller(t *testing.T) {
	t.Run("stops on context cancellation", func(t *testing.T) {
		var calls atomic.Int32
		ctx, cancel := context.WithCancel(context.Background())

		p := NewPoller("test", 5*time.Millisecond, func(context.Context) error {
			if calls.Add(1) == 3 {
				cancel()
			}
			return errors.New("keeps polling after errors")
		})

		done := make(chan struct{})
		go func() {
			p.Start(ctx)
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("poller did not stop")
		}
		assert.GreaterOrEqual(t, calls.Load(), int32(3))
	})

	t.Run("stops on Stop", func(t *testing.T) {
		var calls atomic.Int32
		p := NewPoller("test", time.Hour, func(context.Context) error {
			calls.Add(1)
			return nil
		})

		done := make(chan struct{})
		go func() {
			p.Start(context.Background())
			close(done)
		}()

		assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
		p.Stop()

		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("poller did not stop")
		}
	})
}
