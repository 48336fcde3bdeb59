// Package memory provides an in-memory implementation of the Unit of Work
// and its repositories. It backs the HTTP handler tests and local
// development, keeping the same transactional contract as the postgres
// adapter: a unit of work holds the store lock from Begin to Commit or
// Rollback, so transactions serialize and the claim arbitration stays
// first-write-wins.
package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type orderRecord struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	MaterialID        uuid.UUID
	CollectorID       *uuid.UUID
	Address           string
	Category          string
	ContactPhone      string
	UnitPriceSnapshot float64
	Status            string
	ActualWeight      *float64
	ImpurityPercent   *float64
	Bonus             *float64
	Amount            *float64
	CreatedAt         time.Time
}

type collectorRecord struct {
	ID        uuid.UUID
	AccountID *uuid.UUID
	Name      string
	Phone     string
	Balance   float64
	Rating    float64
	Active    bool
}

type accountRecord struct {
	ID      uuid.UUID
	OpenID  string
	Name    string
	Balance float64
	Points  int
}

type withdrawalRecord struct {
	ID           uuid.UUID
	AccountID    uuid.UUID
	CollectorID  *uuid.UUID
	OrderID      *uuid.UUID
	Amount       float64
	Channel      string
	Status       string
	RejectReason string
	RequestedAt  time.Time
}

type materialRecord struct {
	ID              uuid.UUID
	Name            string
	Category        string
	CurrentPrice    float64
	MarketPrice     float64
	Trend           string
	Unit            string
	InventoryWeight float64
}

type pricingRuleRecord struct {
	ID           uuid.UUID
	MaterialID   uuid.UUID
	Name         string
	MinWeight    float64
	BonusPercent float64
	Priority     int
}

type auditRecord struct {
	ID           uuid.UUID
	EntityType   string
	EntityID     uuid.UUID
	Action       string
	OldValue     string
	NewValue     string
	OperatorType string
	OperatorID   *uuid.UUID
	CreatedAt    time.Time
}

type notificationRecord struct {
	ID                uuid.UUID
	AccountID         uuid.UUID
	Title             string
	Content           string
	Kind              string
	RelatedEntityType string
	RelatedEntityID   *uuid.UUID
	Read              bool
	CreatedAt         time.Time
}

type tables struct {
	orders        map[uuid.UUID]orderRecord
	collectors    map[uuid.UUID]collectorRecord
	accounts      map[uuid.UUID]accountRecord
	withdrawals   map[uuid.UUID]withdrawalRecord
	materials     map[uuid.UUID]materialRecord
	pricingRules  map[uuid.UUID]pricingRuleRecord
	auditLog      []auditRecord
	notifications map[uuid.UUID]notificationRecord
	configs       map[string]string
}

func newTables() tables {
	return tables{
		orders:        make(map[uuid.UUID]orderRecord),
		collectors:    make(map[uuid.UUID]collectorRecord),
		accounts:      make(map[uuid.UUID]accountRecord),
		withdrawals:   make(map[uuid.UUID]withdrawalRecord),
		materials:     make(map[uuid.UUID]materialRecord),
		pricingRules:  make(map[uuid.UUID]pricingRuleRecord),
		auditLog:      make([]auditRecord, 0),
		notifications: make(map[uuid.UUID]notificationRecord),
		configs:       make(map[string]string),
	}
}

func (t tables) clone() tables {
	c := tables{
		orders:        make(map[uuid.UUID]orderRecord, len(t.orders)),
		collectors:    make(map[uuid.UUID]collectorRecord, len(t.collectors)),
		accounts:      make(map[uuid.UUID]accountRecord, len(t.accounts)),
		withdrawals:   make(map[uuid.UUID]withdrawalRecord, len(t.withdrawals)),
		materials:     make(map[uuid.UUID]materialRecord, len(t.materials)),
		pricingRules:  make(map[uuid.UUID]pricingRuleRecord, len(t.pricingRules)),
		auditLog:      make([]auditRecord, len(t.auditLog)),
		notifications: make(map[uuid.UUID]notificationRecord, len(t.notifications)),
		configs:       make(map[string]string, len(t.configs)),
	}
	for k, v := range t.orders {
		c.orders[k] = v
	}
	for k, v := range t.collectors {
		c.collectors[k] = v
	}
	for k, v := range t.accounts {
		c.accounts[k] = v
	}
	for k, v := range t.withdrawals {
		c.withdrawals[k] = v
	}
	for k, v := range t.materials {
		c.materials[k] = v
	}
	for k, v := range t.pricingRules {
		c.pricingRules[k] = v
	}
	copy(c.auditLog, t.auditLog)
	for k, v := range t.notifications {
		c.notifications[k] = v
	}
	for k, v := range t.configs {
		c.configs[k] = v
	}
	return c
}

// Store is the shared in-memory database. All units of work created from one
// store see the same data.
type Store struct {
	mu     sync.Mutex
	tables tables
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{tables: newTables()}
}

// SetConfig stores a raw configuration blob under a namespace, replacing
// the compiled-in default for it.
func (s *Store) SetConfig(namespace, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables.configs[namespace] = value
}
