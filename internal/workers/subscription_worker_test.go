package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type countingExpirer struct {
	calls atomic.Int32
	err   error
}

func (e *countingExpirer) ExpireOverdue(*gorm.DB) (int64, error) {
	e.calls.Add(1)
	return 2, e.err
}

func TestSubscriptionWorker_RunsOnEveryTick(t *testing.T) {
	expirer := &countingExpirer{}
	w := NewSubscriptionWorker(nil, expirer, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	assert.Eventually(t, func() bool { return expirer.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
}

func TestSubscriptionWorker_StopsOnCancel(t *testing.T) {
	expirer := &countingExpirer{err: errors.New("db down")}
	w := NewSubscriptionWorker(nil, expirer, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return expirer.calls.Load() >= 1 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}

func TestNewSubscriptionWorker_DefaultsInterval(t *testing.T) {
	w := NewSubscriptionWorker(nil, &countingExpirer{}, 0)
	assert.Equal(t, time.Hour, w.interval)
}
