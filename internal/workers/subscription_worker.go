package workers

import (
	"context"
	"time"

	"cinemarathi_backend/internal/logger"

	"gorm.io/gorm"
)

const subscriptionWorkerName = "subscription_expiry"

// SubscriptionExpirer deactivates subscriptions whose end date has passed.
type SubscriptionExpirer interface {
	ExpireOverdue(db *gorm.DB) (int64, error)
}

type SubscriptionWorker struct {
	db       *gorm.DB
	expirer  SubscriptionExpirer
	interval time.Duration
}

func NewSubscriptionWorker(db *gorm.DB, expirer SubscriptionExpirer, interval time.Duration) *SubscriptionWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &SubscriptionWorker{db: db, expirer: expirer, interval: interval}
}

// Start runs the expiry loop in its own goroutine until ctx is cancelled.
func (w *SubscriptionWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *SubscriptionWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Subscription worker stopped")
			return
		case <-ticker.C:
			w.expire()
		}
	}
}

func (w *SubscriptionWorker) expire() {
	affected, err := w.expirer.ExpireOverdue(w.db)
	if err != nil {
		logger.WorkerLog(subscriptionWorkerName, "expire", err)
		return
	}
	if affected > 0 {
		logger.WorkerLog(subscriptionWorkerName, "expire", nil, "expired", affected)
	}
}
