// Package membership implements the mock subscription, the interstitial ad
// gate and the one-time review prompt. All state lives in models.Preferences;
// callers persist the returned value.
package membership

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/excusedex/internal/constants"
	"github.com/julianstephens/excusedex/internal/models"
)

// ErrUnknownPlan is returned when subscribing to a plan that is not in the catalogue.
var ErrUnknownPlan = errors.New("unknown subscription plan")

// Plan is one entry of the subscription catalogue. Prices are in KRW.
type Plan struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	PriceKRW int64  `json:"price_krw"`
	Period   string `json:"period"`
	Discount string `json:"discount,omitempty"`
	Best     bool   `json:"best"`
}

// Price formats the plan price with thousands separators, e.g. "13,900 KRW".
func (p Plan) Price() string {
	return humanize.Comma(p.PriceKRW) + " KRW"
}

var catalogue = []Plan{
	{ID: "1_month", Name: "Starter", PriceKRW: 2900, Period: "month"},
	{ID: "6_month", Name: "Value Pack", PriceKRW: 13900, Period: "6 months", Discount: "20% off"},
	{ID: "1_year", Name: "Best Value", PriceKRW: 23900, Period: "year", Discount: "31% off", Best: true},
}

// Plans returns a copy of the subscription catalogue.
func Plans() []Plan {
	out := make([]Plan, len(catalogue))
	copy(out, catalogue)
	return out
}

// FindPlan looks up a plan by id.
func FindPlan(id string) (Plan, bool) {
	for _, p := range catalogue {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}

// Subscribe activates premium on the given plan. Subscribing while already
// premium switches plans.
func Subscribe(prefs models.Preferences, planID string) (models.Preferences, error) {
	if _, ok := FindPlan(planID); !ok {
		return prefs, fmt.Errorf("%w: %q", ErrUnknownPlan, planID)
	}
	prefs.IsPremium = true
	prefs.PremiumPlan = planID
	return prefs, nil
}

// Cancel ends the subscription.
func Cancel(prefs models.Preferences) models.Preferences {
	prefs.IsPremium = false
	prefs.PremiumPlan = ""
	return prefs
}

// ShouldShowAd advances the save counter and reports whether an interstitial
// is due. Premium users never see ads and their counter is left alone.
func ShouldShowAd(prefs models.Preferences) (models.Preferences, bool) {
	if prefs.IsPremium {
		return prefs, false
	}
	prefs.SaveCount++
	if prefs.SaveCount >= constants.AdEverySaves {
		prefs.SaveCount = 0
		return prefs, true
	}
	return prefs, false
}

// IsAdSlot reports whether a sponsored row is shown at index of a day list.
func IsAdSlot(index int, premium bool) bool {
	if premium {
		return false
	}
	first := constants.AdListFirstSlot
	return index == first || (index > first && (index-first)%constants.AdListSlotInterval == 0)
}

// ShouldRequestReview reports whether to ask for a review. It fires once, the
// first time the total number of excuses reaches the threshold.
func ShouldRequestReview(prefs models.Preferences, total int) (models.Preferences, bool) {
	if prefs.ReviewRequested || total < constants.ReviewPromptThreshold {
		return prefs, false
	}
	prefs.ReviewRequested = true
	return prefs, true
}

// AchievementsUnlocked reports whether achievement details are visible.
func AchievementsUnlocked(prefs models.Preferences) bool {
	return prefs.IsPremium
}
