package service

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"time"

	"storefront-banners/internal/core/logger"
	"storefront-banners/internal/core/metrics"
	banners "storefront-banners/internal/features/banners/domain"
	"storefront-banners/internal/features/carousel/domain"

	"go.uber.org/zap"
)

// DefaultInterval is the auto-advance period.
const DefaultInterval = 6 * time.Second

// BannerLoader supplies the main banners shown by the carousel.
type BannerLoader interface {
	FetchMainBanners(ctx context.Context) ([]banners.Banner, error)
}

// Ticker is the subset of time.Ticker used by the carousel.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory creates a ticker firing every d.
type TickerFactory func(d time.Duration) Ticker

type realTicker struct{ *time.Ticker }

func (t realTicker) C() <-chan time.Time { return t.Ticker.C }

// NewRealTicker is the production TickerFactory.
func NewRealTicker(d time.Duration) Ticker {
	return realTicker{time.NewTicker(d)}
}

// Option configures a Carousel.
type Option func(*Carousel)

// WithInterval overrides the auto-advance period.
func WithInterval(d time.Duration) Option {
	return func(c *Carousel) { c.interval = d }
}

// WithTickerFactory replaces the ticker source (used by tests).
func WithTickerFactory(f TickerFactory) Option {
	return func(c *Carousel) { c.newTicker = f }
}

// WithMetrics records index changes.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Carousel) { c.metrics = m }
}

// Carousel holds the rotation index over the main banners and owns the auto-advance timer.
// At most one timer runs at a time; it is replaced whenever the banner list changes
// and stopped on Unmount.
type Carousel struct {
	mu       sync.Mutex
	loader   BannerLoader
	banners  []banners.Banner
	loaded   bool
	index    int
	mounted  bool
	interval time.Duration

	newTicker TickerFactory
	// timerGen identifies the live timer; ticks from older timers are dropped.
	timerGen  uint64
	timerStop chan struct{}
	timerDone chan struct{}

	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewCarousel creates a carousel in the loading state.
func NewCarousel(loader BannerLoader, opts ...Option) *Carousel {
	c := &Carousel{
		loader:    loader,
		interval:  DefaultInterval,
		newTicker: NewRealTicker,
		logger:    logger.Named("carousel"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Mount starts auto-advance when banners are available.
func (c *Carousel) Mount() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mounted {
		return
	}
	c.mounted = true
	c.restartTimerLocked()
}

// Unmount stops the timer. No state change happens after Unmount returns.
func (c *Carousel) Unmount() {
	c.mu.Lock()
	c.mounted = false
	done := c.stopTimerLocked()
	c.mu.Unlock()

	if done != nil {
		<-done
	}
}

// Refresh loads the main banners and applies them.
// On failure the previous state is kept (loading stays loading).
func (c *Carousel) Refresh(ctx context.Context) error {
	list, err := c.loader.FetchMainBanners(ctx)
	if err != nil {
		c.logger.Warn("Failed to load carousel banners", zap.Error(err))
		return fmt.Errorf("carousel: failed to load banners: %w", err)
	}
	c.SetBanners(list)
	return nil
}

// SetBanners replaces the banner list. The timer restarts only if the list changed.
func (c *Carousel) SetBanners(list []banners.Banner) {
	c.mu.Lock()
	defer c.mu.Unlock()

	changed := !c.loaded || !reflect.DeepEqual(c.banners, list)
	c.loaded = true
	if !changed {
		return
	}

	c.banners = append([]banners.Banner(nil), list...)
	if c.index >= len(c.banners) {
		c.index = 0
	}

	c.logger.Debug("Carousel banners updated", zap.Int("total", len(c.banners)))

	if c.mounted {
		c.restartTimerLocked()
	}
}

// Next shows the following banner, wrapping to the first.
func (c *Carousel) Next() domain.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.moveLocked(domain.NextIndex(c.index, len(c.banners)), domain.TriggerNext)
	return c.snapshotLocked()
}

// Prev shows the preceding banner, wrapping to the last.
func (c *Carousel) Prev() domain.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.moveLocked(domain.PrevIndex(c.index, len(c.banners)), domain.TriggerPrev)
	return c.snapshotLocked()
}

// Select jumps to index i.
func (c *Carousel) Select(i int) (domain.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i < 0 || i >= len(c.banners) {
		return c.snapshotLocked(), fmt.Errorf("%w: %d", domain.ErrIndexOutOfRange, i)
	}
	c.moveLocked(i, domain.TriggerSelect)
	return c.snapshotLocked(), nil
}

// Snapshot returns the current state.
func (c *Carousel) Snapshot() domain.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.snapshotLocked()
}

// Current returns the displayed banner, or nil while loading or empty.
func (c *Carousel) Current() *banners.Banner {
	return c.Snapshot().Current
}

// Banners returns a copy of the current list.
func (c *Carousel) Banners() []banners.Banner {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]banners.Banner(nil), c.banners...)
}

func (c *Carousel) moveLocked(i int, trigger domain.Trigger) {
	if i == c.index {
		return
	}
	c.index = i
	if c.metrics != nil {
		c.metrics.CarouselAdvances.WithLabelValues(string(trigger)).Inc()
	}
}

func (c *Carousel) snapshotLocked() domain.Snapshot {
	s := domain.Snapshot{
		Index: c.index,
		Total: len(c.banners),
	}

	switch {
	case !c.loaded:
		s.State = domain.StateLoading
	case len(c.banners) == 0:
		s.State = domain.StateEmpty
	default:
		s.State = domain.StateShowing
		current := c.banners[c.index]
		s.Current = &current
	}
	return s
}

// restartTimerLocked stops the running timer and starts a new one if there is something to rotate.
// It returns the done channel of the stopped timer, if any.
func (c *Carousel) restartTimerLocked() chan struct{} {
	done := c.stopTimerLocked()

	if !c.mounted || len(c.banners) == 0 {
		return done
	}

	c.timerGen++
	gen := c.timerGen
	stop := make(chan struct{})
	finished := make(chan struct{})
	c.timerStop, c.timerDone = stop, finished

	go c.run(c.newTicker(c.interval), gen, stop, finished)

	return done
}

// stopTimerLocked signals the live timer to exit and invalidates its pending ticks.
func (c *Carousel) stopTimerLocked() chan struct{} {
	c.timerGen++
	if c.timerStop == nil {
		return nil
	}

	close(c.timerStop)
	done := c.timerDone
	c.timerStop, c.timerDone = nil, nil
	return done
}

func (c *Carousel) run(t Ticker, gen uint64, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	defer t.Stop()

	for {
		select {
		case <-stop:
			return
		case <-t.C():
			c.tick(gen)
		}
	}
}

func (c *Carousel) tick(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.timerGen || len(c.banners) == 0 {
		return
	}
	c.moveLocked(domain.NextIndex(c.index, len(c.banners)), domain.TriggerTimer)
	c.logger.Debug("Carousel advanced", zap.Int("index", c.index))
}
