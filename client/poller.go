package client

import (
	"sync"
	"time"

	"edrina-resto/models"
)

// DefaultPollInterval matches the dashboard's background refresh rate.
const DefaultPollInterval = 30 * time.Second

// Poller refreshes a view's order list in the background. Every snapshot
// is stamped with the mutation sequence at fetch launch; if a local
// mutation lands while the fetch is in flight, the stale snapshot is
// dropped instead of overwriting the mutation's result.
type Poller struct {
	fetch    func() ([]models.Order, error)
	apply    func([]models.Order)
	interval time.Duration

	mu   sync.Mutex
	seq  uint64
	stop chan struct{}
	wg   sync.WaitGroup
}

func NewPoller(interval time.Duration, fetch func() ([]models.Order, error), apply func([]models.Order)) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{fetch: fetch, apply: apply, interval: interval}
}

func (p *Poller) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stop != nil {
		return
	}
	p.stop = make(chan struct{})
	p.wg.Add(1)
	go p.loop(p.stop)
}

// Stop cancels the timer on view teardown and waits for an in-flight
// refresh to finish.
func (p *Poller) Stop() {
	p.mu.Lock()
	stop := p.stop
	p.stop = nil
	p.mu.Unlock()
	if stop == nil {
		return
	}
	close(stop)
	p.wg.Wait()
}

// Bump records a local mutation. Any fetch launched before this call will
// have its snapshot discarded.
func (p *Poller) Bump() {
	p.mu.Lock()
	p.seq++
	p.mu.Unlock()
}

// Refresh runs one fetch/apply cycle immediately, for the manual refresh
// button and the initial load.
func (p *Poller) Refresh() error {
	p.mu.Lock()
	stamp := p.seq
	p.mu.Unlock()

	orders, err := p.fetch()
	if err != nil {
		// Transport errors are recoverable; the next tick retries.
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if stamp != p.seq {
		return nil
	}
	p.apply(orders)
	return nil
}

func (p *Poller) loop(stop chan struct{}) {
	defer p.wg.Done()
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.Refresh()
		case <-stop:
			return
		}
	}
}
