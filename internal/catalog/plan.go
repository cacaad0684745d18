package catalog

import "fmt"

// Plan is a pricing tier gating feature entitlements.
type Plan string

const (
	PlanBasic    Plan = "basic"
	PlanRomantic Plan = "romantic"
	PlanPremium  Plan = "premium"
)

// CurrencyINR is the currency every plan is priced in.
const CurrencyINR = "INR"

// Limits captures the entitlements of a plan.
type Limits struct {
	MaxPhotos          int  `json:"max_photos"`
	HasMusic           bool `json:"has_music"`
	HasAnimatedButtons bool `json:"has_animated_buttons"`
	HasConfetti        bool `json:"has_confetti"`
	HasSlideshow       bool `json:"has_slideshow"`
	HasCustomSlug      bool `json:"has_custom_slug"`
}

// Plans lists every plan from cheapest to most expensive.
func Plans() []Plan {
	return []Plan{PlanBasic, PlanRomantic, PlanPremium}
}

// ParsePlan validates raw input.
func ParsePlan(raw string) (Plan, error) {
	value := Plan(normalize(raw))
	if !value.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPlan, raw)
	}
	return value, nil
}

// Valid reports whether p is a known plan.
func (p Plan) Valid() bool {
	switch p {
	case PlanBasic, PlanRomantic, PlanPremium:
		return true
	default:
		return false
	}
}

// Limits returns the entitlement row for p. Unknown plans get no entitlements.
func (p Plan) Limits() Limits {
	switch p {
	case PlanBasic:
		return Limits{MaxPhotos: 3}
	case PlanRomantic:
		return Limits{
			MaxPhotos:          5,
			HasMusic:           true,
			HasAnimatedButtons: true,
			HasConfetti:        true,
		}
	case PlanPremium:
		return Limits{
			MaxPhotos:          10,
			HasMusic:           true,
			HasAnimatedButtons: true,
			HasConfetti:        true,
			HasSlideshow:       true,
			HasCustomSlug:      true,
		}
	default:
		return Limits{}
	}
}

// Name returns the display name of p.
func (p Plan) Name() string {
	switch p {
	case PlanBasic:
		return "Basic"
	case PlanRomantic:
		return "Romantic"
	case PlanPremium:
		return "Premium"
	default:
		return ""
	}
}

// Price returns the plan price in whole rupees.
func (p Plan) Price() int64 {
	switch p {
	case PlanBasic:
		return 39
	case PlanRomantic:
		return 69
	case PlanPremium:
		return 169
	default:
		return 0
	}
}

// Features returns the marketing feature list for p.
func (p Plan) Features() []string {
	switch p {
	case PlanBasic:
		return []string{"3 photos", "Simple message page", "Basic theme"}
	case PlanRomantic:
		return []string{"Animated YES/NO buttons", "5 photos", "Background music", "Confetti celebration"}
	case PlanPremium:
		return []string{"Memory gallery slideshow", "Beautiful animations", "Custom URL slug", "Premium romantic theme"}
	default:
		return nil
	}
}

// Popular reports whether p is the highlighted tier on the pricing page.
func (p Plan) Popular() bool {
	return p == PlanRomantic
}
