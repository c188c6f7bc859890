// Package billing normalises subscription costs to monthly and yearly figures
// and derives the aggregate views shown on the dashboard.
//
// All functions are pure. Inputs are expected to be validated with Validate
// first; a negative cost or unknown cycle produces meaningless output.
package billing

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"subtrack/internal/models"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCost       = errors.New("cost must be a non-negative number")
	ErrInvalidCycle      = errors.New("billing cycle must be monthly or yearly")
	ErrInvalidTransition = errors.New("invalid billing cycle transition")
)

var (
	monthsPerYear = decimal.NewFromInt(12)
	// Upgrading to yearly bills ten months: two months free.
	upgradeMultiplier = decimal.NewFromInt(10)
	hundred           = decimal.NewFromInt(100)
)

type CategoryTotal struct {
	Category string
	Amount   decimal.Decimal
}

func ParseCycle(s string) (models.BillingCycle, error) {
	switch models.BillingCycle(strings.ToLower(strings.TrimSpace(s))) {
	case models.CycleMonthly:
		return models.CycleMonthly, nil
	case models.CycleYearly:
		return models.CycleYearly, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidCycle, s)
	}
}

func Validate(s models.Subscription) error {
	if s.Cost.IsNegative() {
		return ErrInvalidCost
	}
	if s.BillingCycle != models.CycleMonthly && s.BillingCycle != models.CycleYearly {
		return fmt.Errorf("%w: %q", ErrInvalidCycle, s.BillingCycle)
	}
	return nil
}

// MonthlyEquivalent returns cost/12 for yearly subscriptions and the cost
// itself otherwise. No rounding is applied.
func MonthlyEquivalent(s models.Subscription) decimal.Decimal {
	if s.BillingCycle == models.CycleYearly {
		return s.Cost.Div(monthsPerYear)
	}
	return s.Cost
}

func TotalMonthly(subs []models.Subscription) decimal.Decimal {
	total := decimal.Zero
	for _, s := range subs {
		total = total.Add(MonthlyEquivalent(s))
	}
	return total
}

// CategoryBreakdown sums monthly equivalents per category label. Labels are
// compared as-is: "Music" and "music " are different categories.
func CategoryBreakdown(subs []models.Subscription) map[string]decimal.Decimal {
	breakdown := make(map[string]decimal.Decimal)
	for _, s := range subs {
		breakdown[s.Category] = breakdown[s.Category].Add(MonthlyEquivalent(s))
	}
	return breakdown
}

// SortedBreakdown orders a breakdown by amount descending, then by name.
func SortedBreakdown(breakdown map[string]decimal.Decimal) []CategoryTotal {
	totals := make([]CategoryTotal, 0, len(breakdown))
	for category, amount := range breakdown {
		totals = append(totals, CategoryTotal{Category: category, Amount: amount})
	}
	sort.Slice(totals, func(i, j int) bool {
		if c := totals[i].Amount.Cmp(totals[j].Amount); c != 0 {
			return c > 0
		}
		return totals[i].Category < totals[j].Category
	})
	return totals
}

// YearlyProjection is computed per item: yearly costs as billed, monthly
// costs times twelve.
func YearlyProjection(subs []models.Subscription) decimal.Decimal {
	total := decimal.Zero
	for _, s := range subs {
		if s.BillingCycle == models.CycleYearly {
			total = total.Add(s.Cost)
		} else {
			total = total.Add(s.Cost.Mul(monthsPerYear))
		}
	}
	return total
}

// BudgetUtilization returns spend as a percentage of limit. A zero or
// negative limit yields 0.
func BudgetUtilization(totalMonthly, limit decimal.Decimal) decimal.Decimal {
	if !limit.IsPositive() {
		return decimal.Zero
	}
	return totalMonthly.Mul(hundred).Div(limit)
}

// CategoryUtilization reports utilization for every category that has a limit.
func CategoryUtilization(breakdown, limits map[string]decimal.Decimal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(limits))
	for category, limit := range limits {
		out[category] = BudgetUtilization(breakdown[category], limit)
	}
	return out
}

// Upgrade switches a monthly subscription to yearly billing at ten times the
// monthly cost.
func Upgrade(s models.Subscription) (models.Subscription, error) {
	if s.BillingCycle != models.CycleMonthly {
		return s, fmt.Errorf("%w: upgrade requires a monthly subscription", ErrInvalidTransition)
	}
	s.Cost = s.Cost.Mul(upgradeMultiplier)
	s.BillingCycle = models.CycleYearly
	return s, nil
}

// Downgrade switches a yearly subscription to monthly billing at a twelfth of
// the yearly cost. It is not the inverse of Upgrade.
func Downgrade(s models.Subscription) (models.Subscription, error) {
	if s.BillingCycle != models.CycleYearly {
		return s, fmt.Errorf("%w: downgrade requires a yearly subscription", ErrInvalidTransition)
	}
	s.Cost = s.Cost.Div(monthsPerYear)
	s.BillingCycle = models.CycleMonthly
	return s, nil
}

func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
