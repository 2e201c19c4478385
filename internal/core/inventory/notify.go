package inventory

import (
	"sync"
	"time"

	"pantry-tracker/internal/pkg/common"

	"go.uber.org/zap"
)

// Scheduler schedules and cancels expiry reminders for food items. The
// device's notification surface sits behind this interface; the local
// implementation only keeps the bookkeeping.
type Scheduler interface {
	// Schedule registers a reminder for the item and returns its id.
	// ok is false when no reminder could be scheduled.
	Schedule(item FoodItem) (id string, ok bool)
	// Cancel removes a previously scheduled reminder. Unknown ids are a no-op.
	Cancel(id string)
}

// Reminders fire this many days before expiry, at reminderHour local time.
const (
	reminderLeadDays = 2
	reminderHour     = 9
)

// LocalScheduler is an in-process reminder registry.
type LocalScheduler struct {
	mu  sync.Mutex
	now func() time.Time

	pending map[string]time.Time
}

// NewLocalScheduler creates a scheduler using the wall clock.
func NewLocalScheduler() *LocalScheduler {
	return &LocalScheduler{
		now:     time.Now,
		pending: make(map[string]time.Time),
	}
}

// NewLocalSchedulerAt creates a scheduler with an injected clock.
func NewLocalSchedulerAt(now func() time.Time) *LocalScheduler {
	return &LocalScheduler{
		now:     now,
		pending: make(map[string]time.Time),
	}
}

// Schedule registers a reminder two days before the item expires. It
// declines when the item expires within a day or the reminder time has
// already passed.
func (s *LocalScheduler) Schedule(item FoodItem) (string, bool) {
	now := s.now()

	if item.ExpiryDate.DaysUntil(now) <= 1 {
		common.LogDebug("reminder declined, item expires too soon",
			zap.String("item", item.Name),
			zap.Int("days_until_expiry", item.ExpiryDate.DaysUntil(now)),
		)
		return "", false
	}

	expiry := item.ExpiryDate.Time
	reminderAt := time.Date(expiry.Year(), expiry.Month(), expiry.Day(), reminderHour, 0, 0, 0, time.Local).
		AddDate(0, 0, -reminderLeadDays)
	if !reminderAt.After(now) {
		common.LogDebug("reminder declined, reminder time already past",
			zap.String("item", item.Name),
			zap.Time("reminder_at", reminderAt),
		)
		return "", false
	}

	id := common.GenerateUUID()

	s.mu.Lock()
	s.pending[id] = reminderAt
	s.mu.Unlock()

	common.LogInfo("reminder scheduled",
		zap.String("item", item.Name),
		zap.Time("reminder_at", reminderAt),
	)

	return id, true
}

// Cancel removes a pending reminder.
func (s *LocalScheduler) Cancel(id string) {
	if id == "" {
		return
	}
	s.mu.Lock()
	delete(s.pending, id)
	s.mu.Unlock()
}

// Pending returns the number of registered reminders.
func (s *LocalScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
