// Package scoring ranks partner services for a user by blending four signals
// into a score between 0 and 100.
package scoring

import (
	"math"

	"github.com/google/uuid"
)

type ReasonKind string

const (
	ReasonCategoryMatch   ReasonKind = "category_match"
	ReasonPremiumDiscount ReasonKind = "premium_discount"
	ReasonAPIIntegration  ReasonKind = "api_integration"
	ReasonPopularity      ReasonKind = "popularity"
)

func (k ReasonKind) Valid() bool {
	switch k {
	case ReasonCategoryMatch, ReasonPremiumDiscount, ReasonAPIIntegration, ReasonPopularity:
		return true
	}
	return false
}

const (
	CategoryMatchWeight  = 30.0
	DiscountFactor       = 0.5
	APIIntegrationWeight = 20.0
	PopularityFactor     = 0.1
	PopularityCap        = 20.0
	MaxScore             = 100.0
)

type Reason struct {
	Type   ReasonKind `json:"type"`
	Weight float64    `json:"weight"`
}

type Candidate struct {
	ID              uuid.UUID
	Category        string
	PremiumDiscount float64 // percent, 0..100
	APIIntegration  bool
	Popularity      float64
}

type Result struct {
	CandidateID uuid.UUID
	Score       float64
	Reasons     []Reason
}

// CategorySet holds the distinct category labels of a user's subscriptions.
type CategorySet map[string]struct{}

func NewCategorySet(labels ...string) CategorySet {
	set := make(CategorySet, len(labels))
	for _, l := range labels {
		set[l] = struct{}{}
	}
	return set
}

// Has matches labels exactly, without case or whitespace folding.
func (s CategorySet) Has(label string) bool {
	_, ok := s[label]
	return ok
}

// Score evaluates the signals in a fixed order: category, discount, API,
// popularity. Signals that add nothing are left out of the reason list.
func Score(categories CategorySet, c Candidate) Result {
	res := Result{CandidateID: c.ID, Reasons: []Reason{}}

	// Non-finite weights are dropped so reasons stay JSON-encodable.
	add := func(kind ReasonKind, weight float64) {
		if !(weight > 0) || math.IsInf(weight, 1) {
			return
		}
		res.Score += weight
		res.Reasons = append(res.Reasons, Reason{Type: kind, Weight: weight})
	}

	if categories.Has(c.Category) {
		add(ReasonCategoryMatch, CategoryMatchWeight)
	}
	add(ReasonPremiumDiscount, c.PremiumDiscount*DiscountFactor)
	if c.APIIntegration {
		add(ReasonAPIIntegration, APIIntegrationWeight)
	}
	add(ReasonPopularity, math.Min(c.Popularity*PopularityFactor, PopularityCap))

	res.Score = clamp(res.Score)
	return res
}

// ScoreCatalog scores every candidate independently. An empty catalog gives
// an empty, non-nil result.
func ScoreCatalog(categories CategorySet, catalog []Candidate) []Result {
	results := make([]Result, 0, len(catalog))
	for _, c := range catalog {
		results = append(results, Score(categories, c))
	}
	return results
}

func clamp(score float64) float64 {
	if math.IsNaN(score) || score < 0 {
		return 0
	}
	return math.Min(score, MaxScore)
}
