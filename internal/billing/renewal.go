package billing

import (
	"time"

	"subtrack/internal/models"
)

// Renew moves the next billing date forward by one cycle.
func Renew(s models.Subscription) models.Subscription {
	s.NextBillingDate = NextBillingDate(s.NextBillingDate, s.BillingCycle)
	return s
}

func NextBillingDate(from time.Time, cycle models.BillingCycle) time.Time {
	if cycle == models.CycleYearly {
		return addMonths(from, 12)
	}
	return addMonths(from, 1)
}

// addMonths keeps the day of month, clamped to the last day of the target
// month, so Jan 31 renews on Feb 28/29 instead of rolling into March.
func addMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	if last := first.AddDate(0, 1, -1).Day(); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
