package metrics

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"ems/internal/platform/messaging"
)

type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	rateLimited     uint64
	totalDurationMs uint64
	eventsFailed    uint64

	mu     sync.Mutex
	events map[string]uint64
}

func New() *Collector {
	return &Collector{events: map[string]uint64{}}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	if status == 429 {
		atomic.AddUint64(&c.rateLimited, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) Event(eventType string, err error) {
	if err != nil {
		atomic.AddUint64(&c.eventsFailed, 1)
		return
	}
	c.mu.Lock()
	c.events[eventType]++
	c.mu.Unlock()
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	limited := atomic.LoadUint64(&c.rateLimited)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}

	c.mu.Lock()
	events := make(map[string]uint64, len(c.events))
	for k, v := range c.events {
		events[k] = v
	}
	c.mu.Unlock()

	return map[string]any{
		"requestsTotal":     total,
		"errorsTotal":       errs,
		"rateLimitedTotal":  limited,
		"avgDurationMs":     avg,
		"totalDurationMs":   totalMs,
		"eventsPublished":   events,
		"eventsFailedTotal": atomic.LoadUint64(&c.eventsFailed),
	}
}

// Publisher counts every event passing through to next.
func (c *Collector) Publisher(next messaging.Publisher) messaging.Publisher {
	return &countingPublisher{next: next, collector: c}
}

type countingPublisher struct {
	next      messaging.Publisher
	collector *Collector
}

func (p *countingPublisher) Publish(ctx context.Context, eventType, key string, payload any) error {
	err := p.next.Publish(ctx, eventType, key, payload)
	p.collector.Event(eventType, err)
	return err
}

func (p *countingPublisher) Close() error {
	return p.next.Close()
}
