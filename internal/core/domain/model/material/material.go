// Package material contains the Material aggregate: a recyclable category
// with its current buy price, market reference price, and station inventory,
// plus the tiered PricingRule entities that grant settlement bonuses.
package material

import (
	"errors"
	"fmt"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/pkg/errs"
)

var (
	// ErrNameIsRequired is returned when a material has no name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCategoryIsRequired is returned when a material has no category.
	ErrCategoryIsRequired = errs.NewValueIsRequiredError("category")
	// ErrMaterialIsNotConstructed is returned for improperly initialized instances.
	ErrMaterialIsNotConstructed = errors.New("Material must be created via NewMaterial or RestoreMaterial")
)

// Material is the aggregate root for a recyclable material.
// CurrentPrice is what new orders snapshot as their unit price;
// InventoryWeight grows as completed orders deliver weight to the station.
type Material struct {
	id           kernel.UUID
	name         string
	category     string
	currentPrice float64
	marketPrice  float64
	trend        Trend
	unit         string

	inventoryWeight float64

	guard kernel.ConstructorGuard
}

// NewMaterial creates a material with an empty inventory.
func NewMaterial(id kernel.UUID, name, category string, currentPrice, marketPrice float64) (*Material, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, ErrNameIsRequired
	}
	if category == "" {
		return nil, ErrCategoryIsRequired
	}
	if currentPrice < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("currentPrice",
			fmt.Errorf("%v is negative", currentPrice))
	}
	if marketPrice < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("marketPrice",
			fmt.Errorf("%v is negative", marketPrice))
	}

	return &Material{
		id:           id,
		name:         name,
		category:     category,
		currentPrice: currentPrice,
		marketPrice:  marketPrice,
		trend:        TrendStable,
		unit:         "kg",
		guard:        kernel.NewConstructorGuard(),
	}, nil
}

// RestoreMaterial rehydrates a material from persistence.
func RestoreMaterial(
	id kernel.UUID,
	name, category string,
	currentPrice, marketPrice float64,
	trend Trend,
	unit string,
	inventoryWeight float64,
) (*Material, error) {
	if err := trend.Validate(); err != nil {
		return nil, err
	}
	if inventoryWeight < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("inventoryWeight",
			fmt.Errorf("%v is negative", inventoryWeight))
	}

	m, err := NewMaterial(id, name, category, currentPrice, marketPrice)
	if err != nil {
		return nil, err
	}

	m.trend = trend
	if unit != "" {
		m.unit = unit
	}
	m.inventoryWeight = inventoryWeight
	return m, nil
}

// Validate ensures the Material came through a constructor.
func (m *Material) Validate() error {
	if m == nil {
		return ErrMaterialIsNotConstructed
	}
	return m.guard.Validate(ErrMaterialIsNotConstructed)
}

// ID returns the material's unique identifier.
func (m *Material) ID() kernel.UUID {
	return m.id
}

// Name returns the display name.
func (m *Material) Name() string {
	return m.name
}

// Category returns the material category, e.g. "Paper" or "Metal".
func (m *Material) Category() string {
	return m.category
}

// CurrentPrice returns the price new orders snapshot per unit.
func (m *Material) CurrentPrice() float64 {
	return m.currentPrice
}

// MarketPrice returns the external reference price.
func (m *Material) MarketPrice() float64 {
	return m.marketPrice
}

// Trend returns the price movement against the previous quote.
func (m *Material) Trend() Trend {
	return m.trend
}

// Unit returns the measurement unit, "kg" unless restored otherwise.
func (m *Material) Unit() string {
	return m.unit
}

// InventoryWeight returns the station stock accumulated from completed orders.
func (m *Material) InventoryWeight() float64 {
	return m.inventoryWeight
}

// UpdatePrice sets a new buy price and derives the trend from the old one.
func (m *Material) UpdatePrice(price float64) error {
	if price < 0 {
		return errs.NewValueIsInvalidErrorWithCause("price",
			fmt.Errorf("%v is negative", price))
	}
	switch {
	case price > m.currentPrice:
		m.trend = TrendUp
	case price < m.currentPrice:
		m.trend = TrendDown
	default:
		m.trend = TrendStable
	}
	m.currentPrice = price
	return nil
}

// AddInventory records delivered weight from a completed order.
func (m *Material) AddInventory(weight float64) error {
	if weight <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight",
			fmt.Errorf("%v is not greater than 0", weight))
	}
	m.inventoryWeight = kernel.RoundCents(m.inventoryWeight + weight)
	return nil
}
