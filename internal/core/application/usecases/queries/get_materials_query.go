package queries

import (
	"time"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
)

// GetMaterialsQuery retrieves the recyclable materials price list. An empty
// category returns every material.
type GetMaterialsQuery struct {
	category string
}

// NewGetMaterialsQuery creates a price list query, optionally scoped to one
// category.
func NewGetMaterialsQuery(category string) GetMaterialsQuery {
	return GetMaterialsQuery{category: category}
}

// Category returns the category filter, empty when unscoped.
func (q GetMaterialsQuery) Category() string {
	return q.category
}

// GetMaterialsQueryResponse is the price list read model.
type GetMaterialsQueryResponse struct {
	ID              kernel.UUID
	Name            string
	Category        string
	CurrentPrice    float64
	MarketPrice     float64
	Trend           string
	Unit            string
	InventoryWeight float64
	UpdatedAt       time.Time
}
