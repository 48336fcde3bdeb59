package material

import (
	"fmt"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/pkg/errs"
)

// PricingRule is a tiered settlement bonus for a material: orders whose
// actual weight reaches MinWeight earn BonusPercent on the post-deduction
// amount. When several rules match, only the highest-priority one applies.
type PricingRule struct {
	id           kernel.UUID
	materialID   kernel.UUID
	name         string
	minWeight    float64
	bonusPercent float64
	priority     int
}

// NewPricingRule creates a bonus rule for a material.
func NewPricingRule(
	id, materialID kernel.UUID,
	name string,
	minWeight, bonusPercent float64,
	priority int,
) (*PricingRule, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := materialID.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if minWeight < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("minWeight",
			fmt.Errorf("%v is negative", minWeight))
	}
	if bonusPercent < 0 || bonusPercent > 100 {
		return nil, errs.NewValueIsOutOfRangeError("bonusPercent", bonusPercent, 0, 100)
	}

	return &PricingRule{
		id:           id,
		materialID:   materialID,
		name:         name,
		minWeight:    minWeight,
		bonusPercent: bonusPercent,
		priority:     priority,
	}, nil
}

// ID returns the rule's unique identifier.
func (r *PricingRule) ID() kernel.UUID {
	return r.id
}

// MaterialID returns the material the rule belongs to.
func (r *PricingRule) MaterialID() kernel.UUID {
	return r.materialID
}

// Name returns the rule's display name.
func (r *PricingRule) Name() string {
	return r.name
}

// MinWeight returns the weight threshold for the bonus to apply.
func (r *PricingRule) MinWeight() float64 {
	return r.minWeight
}

// BonusPercent returns the bonus rate applied to the post-deduction amount.
func (r *PricingRule) BonusPercent() float64 {
	return r.bonusPercent
}

// Priority orders competing rules; the highest wins.
func (r *PricingRule) Priority() int {
	return r.priority
}

// AppliesTo reports whether the given actual weight reaches the threshold.
func (r *PricingRule) AppliesTo(weight float64) bool {
	return weight >= r.minWeight
}

// TopRule picks the applicable rule with the highest priority, or nil when
// none of the rules match the weight.
func TopRule(rules []*PricingRule, weight float64) *PricingRule {
	var top *PricingRule
	for _, r := range rules {
		if !r.AppliesTo(weight) {
			continue
		}
		if top == nil || r.priority > top.priority {
			top = r
		}
	}
	return top
}
