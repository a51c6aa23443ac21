package client

import (
	"sync"
	"testing"
	"time"

	"edrina-resto/apperrors"
	"edrina-resto/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPollerRefreshAppliesSnapshot(t *testing.T) {
	t.Parallel()

	fetched := []models.Order{{Order_id: "o-1", Status: models.StatusInKitchen}}
	var applied []models.Order
	p := NewPoller(time.Hour,
		func() ([]models.Order, error) { return fetched, nil },
		func(orders []models.Order) { applied = orders },
	)

	require.NoError(t, p.Refresh())
	require.Len(t, applied, 1)
	assert.Equal(t, "o-1", applied[0].Order_id)
}

func TestPollerDiscardsStaleSnapshot(t *testing.T) {
	t.Parallel()

	fetchStarted := make(chan struct{})
	releaseFetch := make(chan struct{})

	var mu sync.Mutex
	var applied bool

	p := NewPoller(time.Hour,
		func() ([]models.Order, error) {
			close(fetchStarted)
			<-releaseFetch
			return []models.Order{{Order_id: "stale"}}, nil
		},
		func([]models.Order) {
			mu.Lock()
			applied = true
			mu.Unlock()
		},
	)

	done := make(chan error)
	go func() { done <- p.Refresh() }()

	<-fetchStarted
	// A mutation lands while the fetch is in flight.
	p.Bump()
	close(releaseFetch)

	require.NoError(t, <-done)
	mu.Lock()
	defer mu.Unlock()
	assert.False(t, applied, "stale snapshot must not overwrite the mutation's result")
}

func TestPollerRefreshPropagatesFetchError(t *testing.T) {
	t.Parallel()

	p := NewPoller(time.Hour,
		func() ([]models.Order, error) { return nil, apperrors.Transport("GET /api/orders", assert.AnError) },
		func([]models.Order) { t.Fatal("apply must not run on fetch failure") },
	)
	err := p.Refresh()
	assert.True(t, apperrors.IsTransport(err))
}

func TestPollerTicksAndStops(t *testing.T) {
	t.Parallel()

	ticks := make(chan struct{}, 16)
	p := NewPoller(5*time.Millisecond,
		func() ([]models.Order, error) { return nil, nil },
		func([]models.Order) {
			select {
			case ticks <- struct{}{}:
			default:
			}
		},
	)

	p.Start()
	select {
	case <-ticks:
	case <-time.After(2 * time.Second):
		t.Fatal("poller never ticked")
	}
	p.Stop()

	// Stop twice is fine, and nothing ticks afterwards.
	p.Stop()
	drain := len(ticks)
	time.Sleep(30 * time.Millisecond)
	assert.LessOrEqual(t, len(ticks), drain+1)
}

func TestPollerStartTwiceKeepsOneLoop(t *testing.T) {
	t.Parallel()

	p := NewPoller(time.Hour, func() ([]models.Order, error) { return nil, nil }, func([]models.Order) {})
	p.Start()
	p.Start()
	p.Stop()
}
