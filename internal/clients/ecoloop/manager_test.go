package ecoloop

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// poolServer simulates the claimable pool: a configurable order list and a
// claim endpoint whose outcome the test controls.
type poolServer struct {
	mu         sync.Mutex
	orders     []Order
	claimCode  int
	claimBody  string
	listCount  atomic.Int64
	claimCount atomic.Int64
}

func (p *poolServer) setOrders(orders []Order) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.orders = orders
}

func (p *poolServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodGet:
		p.listCount.Add(1)
		p.mu.Lock()
		orders := p.orders
		p.mu.Unlock()
		_ = json.NewEncoder(w).Encode(orders)
	case r.Method == http.MethodPut:
		p.claimCount.Add(1)
		p.mu.Lock()
		code, body := p.claimCode, p.claimBody
		p.mu.Unlock()
		if code == 0 {
			code = http.StatusNoContent
		}
		w.WriteHeader(code)
		if body != "" {
			_, _ = w.Write([]byte(body))
		}
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func pendingOrder(id string) Order {
	return Order{ID: id, Status: "pending"}
}

func TestManager_RefreshAppliesSnapshot(t *testing.T) {
	pool := &poolServer{}
	pool.setOrders([]Order{pendingOrder("ord-1"), pendingOrder("ord-2")})

	client, _, _ := newTestClient(t, pool)
	manager := NewManager(client, ListFilter{View: "open"})

	require.NoError(t, manager.Refresh(context.Background()))
	orders := manager.Orders()
	require.Len(t, orders, 2)
	assert.Equal(t, "ord-1", orders[0].ID)
}

func TestManager_LostClaimResyncsWithoutOptimisticRemoval(t *testing.T) {
	pool := &poolServer{
		claimCode: http.StatusBadRequest,
		claimBody: `{"code":400,"message":"already claimed"}`,
	}
	pool.setOrders([]Order{pendingOrder("ord-2")})

	client, _, _ := newTestClient(t, pool)
	manager := NewManager(client, ListFilter{View: "open"})
	require.NoError(t, manager.Refresh(context.Background()))
	require.Len(t, manager.Orders(), 1)

	// The winner took the order between our fetch and our claim.
	pool.setOrders([]Order{})

	err := manager.Claim(context.Background(), "ord-2")
	assert.ErrorIs(t, err, ErrConflict)

	// The conflict triggered a resync and only the resync removed the order.
	assert.Empty(t, manager.Orders())
	assert.Equal(t, int64(2), pool.listCount.Load())
}

func TestManager_SuccessfulClaimRefetches(t *testing.T) {
	pool := &poolServer{}
	pool.setOrders([]Order{pendingOrder("ord-1")})

	client, _, _ := newTestClient(t, pool)
	manager := NewManager(client, ListFilter{View: "open"})
	require.NoError(t, manager.Refresh(context.Background()))

	pool.setOrders([]Order{})
	require.NoError(t, manager.Claim(context.Background(), "ord-1"))
	assert.Empty(t, manager.Orders())
}

func TestManager_SecondSubmissionWhileInFlight(t *testing.T) {
	claimStarted := make(chan struct{})
	releaseClaim := make(chan struct{})

	mux := http.NewServeMux()
	mux.HandleFunc("PUT /api/v1/orders/ord-1/claim", func(w http.ResponseWriter, _ *http.Request) {
		close(claimStarted)
		<-releaseClaim
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /api/v1/orders", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})

	client, _, _ := newTestClient(t, mux)
	manager := NewManager(client, ListFilter{View: "open"})

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- manager.Claim(context.Background(), "ord-1")
	}()

	<-claimStarted
	err := manager.Claim(context.Background(), "ord-1")
	assert.ErrorIs(t, err, ErrRequestInFlight)

	close(releaseClaim)
	require.NoError(t, <-firstDone)
}

func TestManager_StaleRefreshIsDiscarded(t *testing.T) {
	firstArrived := make(chan struct{})
	releaseFirst := make(chan struct{})
	var requests atomic.Int64

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/orders", func(w http.ResponseWriter, _ *http.Request) {
		n := requests.Add(1)
		w.Header().Set("Content-Type", "application/json")
		if n == 1 {
			close(firstArrived)
			<-releaseFirst
			_, _ = w.Write([]byte(`[{"id":"stale","status":"pending"}]`))
			return
		}
		_, _ = w.Write([]byte(`[{"id":"fresh","status":"pending"}]`))
	})

	client, _, _ := newTestClient(t, mux)
	manager := NewManager(client, ListFilter{View: "open"})

	slowDone := make(chan error, 1)
	go func() {
		slowDone <- manager.Refresh(context.Background())
	}()
	<-firstArrived

	// A newer fetch completes while the first is still on the wire.
	require.NoError(t, manager.Refresh(context.Background()))

	close(releaseFirst)
	require.NoError(t, <-slowDone)

	orders := manager.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, "fresh", orders[0].ID)
}

func TestManager_ClosedAppliesNoUpdates(t *testing.T) {
	pool := &poolServer{}
	pool.setOrders([]Order{pendingOrder("ord-1")})

	client, _, _ := newTestClient(t, pool)
	manager := NewManager(client, ListFilter{View: "open"})
	manager.Close()

	assert.ErrorIs(t, manager.Refresh(context.Background()), ErrManagerClosed)
	assert.ErrorIs(t, manager.Claim(context.Background(), "ord-1"), ErrManagerClosed)
	assert.Empty(t, manager.Orders())
}
