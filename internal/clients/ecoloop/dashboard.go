package ecoloop

import (
	"context"
	"sync"
)

// FetchFunc is one independent dashboard fetch.
type FetchFunc func(ctx context.Context) (any, error)

// Branch is the recorded outcome of one fetch: a value or an error, never
// both.
type Branch struct {
	Value any
	Err   error
}

// Dashboard fans out independent fetches, joins them, and keeps each
// branch's value-or-error separately. One failed branch never suppresses
// the others, and Retry re-issues only the branches that failed.
type Dashboard struct {
	fetches map[string]FetchFunc

	mu       sync.Mutex
	branches map[string]Branch
}

// NewDashboard creates a dashboard over named fetches.
func NewDashboard(fetches map[string]FetchFunc) *Dashboard {
	return &Dashboard{
		fetches:  fetches,
		branches: make(map[string]Branch),
	}
}

// Load issues every fetch concurrently and waits for all of them.
func (d *Dashboard) Load(ctx context.Context) {
	names := make([]string, 0, len(d.fetches))
	for name := range d.fetches {
		names = append(names, name)
	}
	d.run(ctx, names)
}

// Retry re-issues only the branches whose last outcome was an error.
func (d *Dashboard) Retry(ctx context.Context) {
	d.mu.Lock()
	var failed []string
	for name, branch := range d.branches {
		if branch.Err != nil {
			failed = append(failed, name)
		}
	}
	d.mu.Unlock()

	d.run(ctx, failed)
}

// Branches returns a copy of the recorded outcomes.
func (d *Dashboard) Branches() map[string]Branch {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(map[string]Branch, len(d.branches))
	for name, branch := range d.branches {
		out[name] = branch
	}
	return out
}

// Failed reports whether any branch's last outcome was an error.
func (d *Dashboard) Failed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, branch := range d.branches {
		if branch.Err != nil {
			return true
		}
	}
	return false
}

func (d *Dashboard) run(ctx context.Context, names []string) {
	var wg sync.WaitGroup
	for _, name := range names {
		fetch, ok := d.fetches[name]
		if !ok {
			continue
		}
		wg.Add(1)
		go func(name string, fetch FetchFunc) {
			defer wg.Done()
			value, err := fetch(ctx)

			d.mu.Lock()
			if err != nil {
				d.branches[name] = Branch{Err: err}
			} else {
				d.branches[name] = Branch{Value: value}
			}
			d.mu.Unlock()
		}(name, fetch)
	}
	wg.Wait()
}
