// Package scheduling computes a doctor's open time slots from recurring
// weekly availability windows minus existing appointments, and books
// slots atomically so that two patients can never take the same one.
package scheduling

import (
	"context"

	"go.uber.org/zap"
)

// DefaultSlotDuration is used when a caller does not ask for a specific
// slot length.
const DefaultSlotDuration = 30 // minutes

// Notifier delivers a notification to a user. Failures are best-effort:
// the engine logs them and never fails a booking or status change over a
// notification.
type Notifier interface {
	Notify(ctx context.Context, userID uint, title, message, category string, relatedID uint) error
}

// Engine is the availability and booking engine. It holds no mutable
// state between calls; all state lives behind the Store.
type Engine struct {
	store    Store
	notifier Notifier
	log      *zap.Logger
}

func New(store Store, notifier Notifier, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{store: store, notifier: notifier, log: log}
}

// notify sends a best-effort notification, swallowing and logging errors.
func (e *Engine) notify(ctx context.Context, userID uint, title, message, category string, relatedID uint) {
	if e.notifier == nil {
		return
	}
	if err := e.notifier.Notify(ctx, userID, title, message, category, relatedID); err != nil {
		e.log.Warn("notification delivery failed",
			zap.Uint("user_id", userID),
			zap.String("title", title),
			zap.Error(err))
	}
}
