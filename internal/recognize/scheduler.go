package recognize

import (
	"time"
)

// DefaultDisplayDelay is how long each result waits before surfacing.
const DefaultDisplayDelay = time.Second

// Scheduler surfaces recognition results after a fixed delay. Every result
// of a batch is scheduled independently at the same delay from the moment
// the batch arrives, so a multi-result response surfaces near-simultaneously
// rather than staggered. Scheduled deliveries are never cancelled; a reset
// racing a pending delivery simply sees it arrive on the fresh canvas.
type Scheduler struct {
	delay   time.Duration
	deliver func(Result)
}

// NewScheduler creates a scheduler that hands each due result to deliver.
// The callback runs on a timer goroutine; callers that require event-loop
// affinity forward it from there.
func NewScheduler(delay time.Duration, deliver func(Result)) *Scheduler {
	if delay < 0 {
		delay = DefaultDisplayDelay
	}
	return &Scheduler{delay: delay, deliver: deliver}
}

// Delay returns the fixed per-result display delay.
func (s *Scheduler) Delay() time.Duration { return s.delay }

// Schedule queues every result of a response batch.
func (s *Scheduler) Schedule(results []Result) {
	for _, r := range results {
		r := r
		time.AfterFunc(s.delay, func() { s.deliver(r) })
	}
}
