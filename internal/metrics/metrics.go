package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Registry groups the counters the domain services report into. A nil
// Registry is valid and drops every observation, so wiring metrics stays
// optional for tests.
type Registry struct {
	CheckoutsStarted   Counter
	CheckoutsCompleted Counter
	CheckoutsFailed    Counter
	OrdersCancelled    Counter
	StockRejections    Counter
	CascadeRuns        Counter
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) IncCheckoutStarted() {
	if r != nil {
		r.CheckoutsStarted.Inc()
	}
}

func (r *Registry) IncCheckoutCompleted() {
	if r != nil {
		r.CheckoutsCompleted.Inc()
	}
}

func (r *Registry) IncCheckoutFailed() {
	if r != nil {
		r.CheckoutsFailed.Inc()
	}
}

func (r *Registry) IncOrderCancelled() {
	if r != nil {
		r.OrdersCancelled.Inc()
	}
}

func (r *Registry) IncStockRejection() {
	if r != nil {
		r.StockRejections.Inc()
	}
}

func (r *Registry) IncCascadeRun() {
	if r != nil {
		r.CascadeRuns.Inc()
	}
}
