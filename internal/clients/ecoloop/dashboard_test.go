package ecoloop

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard_FailedBranchDoesNotSuppressOthers(t *testing.T) {
	boom := errors.New("stats backend down")
	dashboard := NewDashboard(map[string]FetchFunc{
		"orders": func(context.Context) (any, error) {
			return []Order{pendingOrder("ord-1")}, nil
		},
		"stats": func(context.Context) (any, error) {
			return nil, boom
		},
	})

	dashboard.Load(context.Background())

	branches := dashboard.Branches()
	require.Len(t, branches, 2)
	assert.NoError(t, branches["orders"].Err)
	assert.NotNil(t, branches["orders"].Value)
	assert.ErrorIs(t, branches["stats"].Err, boom)
	assert.True(t, dashboard.Failed())
}

func TestDashboard_RetryReissuesOnlyFailedBranches(t *testing.T) {
	var ordersCalls, statsCalls atomic.Int64
	statsHealthy := atomic.Bool{}

	dashboard := NewDashboard(map[string]FetchFunc{
		"orders": func(context.Context) (any, error) {
			ordersCalls.Add(1)
			return []Order{}, nil
		},
		"stats": func(context.Context) (any, error) {
			statsCalls.Add(1)
			if !statsHealthy.Load() {
				return nil, errors.New("temporarily unavailable")
			}
			return Stats{TotalOrders: 7}, nil
		},
	})

	dashboard.Load(context.Background())
	require.True(t, dashboard.Failed())

	statsHealthy.Store(true)
	dashboard.Retry(context.Background())

	assert.Equal(t, int64(1), ordersCalls.Load())
	assert.Equal(t, int64(2), statsCalls.Load())
	assert.False(t, dashboard.Failed())

	stats, ok := dashboard.Branches()["stats"].Value.(Stats)
	require.True(t, ok)
	assert.Equal(t, int64(7), stats.TotalOrders)
}

func TestDashboard_RetryWithNothingFailedIsNoOp(t *testing.T) {
	var calls atomic.Int64
	dashboard := NewDashboard(map[string]FetchFunc{
		"materials": func(context.Context) (any, error) {
			calls.Add(1)
			return []Material{}, nil
		},
	})

	dashboard.Load(context.Background())
	dashboard.Retry(context.Background())

	assert.Equal(t, int64(1), calls.Load())
}
