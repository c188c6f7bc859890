// Package reminder finds subscriptions that are about to be charged and whose
// owners asked to be warned.
package reminder

import (
	"time"

	"subtrack/internal/models"
)

type Window time.Duration

const (
	Window48h = Window(48 * time.Hour)
	Window24h = Window(24 * time.Hour)
)

func (w Window) String() string {
	return time.Duration(w).String()
}

type Reminder struct {
	Subscription *models.Subscription
	Window       Window
	DueIn        time.Duration
}

// Due returns one reminder per enabled window that contains the next billing
// date. A window covers (now, now+window]. Charges already in the past are
// skipped.
func Due(subs []*models.Subscription, now time.Time) []Reminder {
	var out []Reminder
	for _, s := range subs {
		dueIn := s.NextBillingDate.Sub(now)
		if dueIn <= 0 {
			continue
		}
		if s.Remind48h && dueIn <= time.Duration(Window48h) {
			out = append(out, Reminder{Subscription: s, Window: Window48h, DueIn: dueIn})
		}
		if s.Remind24h && dueIn <= time.Duration(Window24h) {
			out = append(out, Reminder{Subscription: s, Window: Window24h, DueIn: dueIn})
		}
	}
	return out
}

// Opened narrows Due to the windows that opened in (since, now]. A window opens
// when the next billing date comes within that window of the clock, so sweeps
// over adjoining ranges report each window once.
func Opened(subs []*models.Subscription, since, now time.Time) []Reminder {
	var out []Reminder
	for _, r := range Due(subs, now) {
		opensAt := r.Subscription.NextBillingDate.Add(-time.Duration(r.Window))
		if opensAt.After(since) {
			out = append(out, r)
		}
	}
	return out
}
