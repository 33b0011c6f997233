package paint

import (
	"context"
	"sync"
)

// Driver executes action plans against a paint application. The trace
// driver below is the shipped implementation; OS-level input synthesis
// plugs in behind the same interface.
type Driver interface {
	OpenPaint(ctx context.Context) error
	Execute(ctx context.Context, plan Plan) error
}

// TraceDriver records every operation instead of performing it.
type TraceDriver struct {
	mu     sync.Mutex
	opened bool
	plans  []Plan
}

func NewTraceDriver() *TraceDriver {
	return &TraceDriver{}
}

func (d *TraceDriver) OpenPaint(_ context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.opened = true
	return nil
}

func (d *TraceDriver) Execute(_ context.Context, plan Plan) error {
	if err := plan.Validate(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.plans = append(d.plans, plan)
	return nil
}

// Opened reports whether OpenPaint has been called.
func (d *TraceDriver) Opened() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.opened
}

// Plans returns the executed plans in order.
func (d *TraceDriver) Plans() []Plan {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Plan, len(d.plans))
	copy(out, d.plans)
	return out
}
