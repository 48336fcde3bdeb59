package ecoloop

import (
	"context"
	"errors"
	"sync"
)

// Manager drives the order list lifecycle for one view: it holds the last
// known snapshot, funnels transitions through the API, and resynchronizes
// after every mutation instead of patching locally. The authoritative state
// lives server-side; a claim that failed must leave the order visible until
// a refetch says otherwise.
type Manager struct {
	client *Client
	filter ListFilter

	mu         sync.Mutex
	orders     []Order
	generation uint64
	inFlight   map[string]struct{}
	closed     bool
}

// NewManager creates a manager over the client for one list view.
func NewManager(client *Client, filter ListFilter) *Manager {
	return &Manager{
		client:   client,
		filter:   filter,
		inFlight: make(map[string]struct{}),
	}
}

// Orders returns the last applied snapshot. The slice is a copy.
func (m *Manager) Orders() []Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	snapshot := make([]Order, len(m.orders))
	copy(snapshot, m.orders)
	return snapshot
}

// Refresh fetches the list and applies it unless a newer fetch started in
// the meantime. Each fetch carries a generation number; a response from a
// superseded fetch is discarded, so out-of-order responses never clobber
// newer state.
func (m *Manager) Refresh(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrManagerClosed
	}
	m.generation++
	gen := m.generation
	m.mu.Unlock()

	orders, err := m.client.Orders(ctx, m.filter)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed || gen != m.generation {
		// Superseded or shut down; the newer state stands.
		return nil
	}
	m.orders = orders
	return nil
}

// Assign binds a collector to an order and resynchronizes.
func (m *Manager) Assign(ctx context.Context, orderID, collectorID string) error {
	return m.transition(ctx, "assign:"+orderID, func() error {
		return m.client.Assign(ctx, orderID, collectorID)
	})
}

// Claim self-assigns an order. Losing the race returns ErrConflict after
// the pool has been resynchronized; the order is never removed
// optimistically beforehand.
func (m *Manager) Claim(ctx context.Context, orderID string) error {
	return m.transition(ctx, "claim:"+orderID, func() error {
		return m.client.Claim(ctx, orderID)
	})
}

// Complete settles an order and resynchronizes.
func (m *Manager) Complete(ctx context.Context, orderID string, weight, impurityPercent float64) error {
	return m.transition(ctx, "complete:"+orderID, func() error {
		return m.client.Complete(ctx, orderID, weight, impurityPercent)
	})
}

// Cancel cancels an order and resynchronizes.
func (m *Manager) Cancel(ctx context.Context, orderID string) error {
	return m.transition(ctx, "cancel:"+orderID, func() error {
		return m.client.Cancel(ctx, orderID)
	})
}

// Timeline fetches one order's milestone track.
func (m *Manager) Timeline(ctx context.Context, orderID string) ([]TimelineStep, error) {
	return m.client.Timeline(ctx, orderID)
}

// Close stops the manager. In-flight responses are discarded and further
// operations fail with ErrManagerClosed.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
}

// transition runs one mutation under the single-flight guard. On success and
// on conflict the list is refetched: both outcomes mean the server state
// moved on from the local snapshot. The transition's own result wins over a
// refetch failure.
func (m *Manager) transition(ctx context.Context, key string, fn func() error) error {
	if err := m.begin(key); err != nil {
		return err
	}
	defer m.end(key)

	err := fn()
	if err == nil || errors.Is(err, ErrConflict) {
		if refreshErr := m.Refresh(ctx); refreshErr != nil && err == nil {
			return refreshErr
		}
	}
	return err
}

func (m *Manager) begin(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrManagerClosed
	}
	if _, dup := m.inFlight[key]; dup {
		return ErrRequestInFlight
	}
	m.inFlight[key] = struct{}{}
	return nil
}

func (m *Manager) end(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.inFlight, key)
}
