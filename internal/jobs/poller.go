package jobs

import (
	"context"
	"log"
	"time"
)

// QueueDrainer drains whatever is currently pending in the embedding
// queue. Implemented by EmbeddingWorker.
type QueueDrainer interface {
	DrainQueue(ctx context.Context) error
}

// Poller drives a QueueDrainer on a fixed interval. The API queues a job
// per processed page; the poller turns that backlog into stored summaries
// and vectors.
type Poller struct {
	drainer  QueueDrainer
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

func NewPoller(drainer QueueDrainer, interval time.Duration) *Poller {
	return &Poller{
		drainer:  drainer,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Run drains once immediately, then on every tick until the context is
// cancelled or Stop is called. The initial drain picks up pages queued
// while the daemon was down.
func (p *Poller) Run(ctx context.Context) {
	defer close(p.done)

	log.Printf("embedding poller: draining every %v", p.interval)
	p.drain(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("embedding poller: context cancelled")
			return
		case <-p.stop:
			log.Println("embedding poller: stopping")
			return
		case <-ticker.C:
			p.drain(ctx)
		}
	}
}

func (p *Poller) drain(ctx context.Context) {
	if err := p.drainer.DrainQueue(ctx); err != nil {
		log.Printf("embedding poller: drain failed: %v", err)
	}
}

// Stop signals the poller to finish and waits for Run to return.
func (p *Poller) Stop() {
	close(p.stop)
	<-p.done
	log.Println("embedding poller: shut down")
}
