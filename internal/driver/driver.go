package driver

import (
	"context"
	"fmt"
	"time"
)

const (
	DefaultTickLength = time.Second
)

// Manager is a simulation subsystem advanced once per tick. The driver is
// the only caller; managers never advance themselves.
type Manager interface {
	Tick(context.Context) error
}

// Driver owns the tick loop that drives every manager. It runs as a worker
// with an explicit start and stops when its context is cancelled.
type Driver struct {
	tickLength time.Duration
	managers   []Manager
}

func NewDriver(managers []Manager, opts ...DriverOpt) *Driver {
	d := &Driver{
		tickLength: DefaultTickLength,
		managers:   managers,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *Driver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			err := d.Tick(ctx)
			if err != nil {
				return err
			}
		}
	}
}

// Tick advances each manager in registration order. A manager error aborts
// the tick and stops the driver; nothing in the engines returns one in
// normal play.
func (d *Driver) Tick(ctx context.Context) error {
	for _, m := range d.managers {
		if err := m.Tick(ctx); err != nil {
			return fmt.Errorf("ticking manager: %w", err)
		}
	}
	return nil
}
