package refresh

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"minimalmon/internal/display"
	"minimalmon/internal/system"
)

// DefaultIndex selects the 5 second interval
const DefaultIndex = 1

var (
	intervals = []time.Duration{1 * time.Second, 5 * time.Second, 10 * time.Second, 30 * time.Second}
	labels    = []string{"1 sec", "5 sec", "10 sec", "30 sec"}

	ErrInvalidInterval = errors.New("invalid interval index")
)

// Intervals returns the selectable refresh periods
func Intervals() []time.Duration {
	return append([]time.Duration(nil), intervals...)
}

// Labels returns the selector label of each interval
func Labels() []string {
	return append([]string(nil), labels...)
}

// IntervalAt maps a selector index to its period
func IntervalAt(index int) (time.Duration, error) {
	if index < 0 || index >= len(intervals) {
		return 0, fmt.Errorf("%w: %d", ErrInvalidInterval, index)
	}
	return intervals[index], nil
}

// Sampler produces one snapshot per call
type Sampler interface {
	Sample(ctx context.Context) (*system.Snapshot, error)
}

// Ticker is the subset of time.Ticker the driver needs
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type timeTicker struct {
	t *time.Ticker
}

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

// NewTimeTicker wraps time.NewTicker
func NewTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

// Driver samples on a selectable interval and hands each snapshot to a display.
// All samples run on the Run goroutine, so two samples never overlap.
type Driver struct {
	sampler   Sampler
	display   display.Display
	logger    *slog.Logger
	newTicker func(time.Duration) Ticker

	mu      sync.Mutex
	index   int
	changed chan struct{}
}

// Option configures a Driver
type Option func(*Driver)

// WithTicker replaces the ticker constructor
func WithTicker(f func(time.Duration) Ticker) Option {
	return func(d *Driver) { d.newTicker = f }
}

// WithIndex sets the interval the driver starts with. An index outside the
// selector keeps the default.
func WithIndex(index int) Option {
	return func(d *Driver) {
		if _, err := IntervalAt(index); err == nil {
			d.index = index
		}
	}
}

// NewDriver creates a driver at the default interval
func NewDriver(sampler Sampler, disp display.Display, logger *slog.Logger, opts ...Option) *Driver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	d := &Driver{
		sampler:   sampler,
		display:   disp,
		logger:    logger,
		newTicker: NewTimeTicker,
		index:     DefaultIndex,
		changed:   make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Index returns the selected interval index
func (d *Driver) Index() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.index
}

// Interval returns the selected refresh period
func (d *Driver) Interval() time.Duration {
	return intervals[d.Index()]
}

// SelectInterval switches the refresh period. The running ticker is stopped
// before the new one starts. Safe to call from any goroutine, before or
// during Run.
func (d *Driver) SelectInterval(index int) error {
	if _, err := IntervalAt(index); err != nil {
		return err
	}

	d.mu.Lock()
	d.index = index
	d.mu.Unlock()

	select {
	case d.changed <- struct{}{}:
	default:
		// a change is already pending; the loop reads the latest index
	}
	return nil
}

// Run takes one sample immediately, then one per tick until ctx is done
func (d *Driver) Run(ctx context.Context) error {
	d.tick(ctx)

	interval := d.Interval()
	ticker := d.newTicker(interval)
	defer func() { ticker.Stop() }()
	d.logger.Info("refresh started", "interval", interval)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-d.changed:
			ticker.Stop()
			interval = d.Interval()
			ticker = d.newTicker(interval)
			d.logger.Info("refresh interval changed", "interval", interval)
		case <-ticker.C():
			d.tick(ctx)
		}
	}
}

func (d *Driver) tick(ctx context.Context) {
	snap, err := d.sampler.Sample(ctx)
	if err != nil {
		d.logger.Error("sample failed", "error", err)
		return
	}
	d.display.Show(snap)
}
