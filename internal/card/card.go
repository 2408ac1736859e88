package card

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/i474232898/weather-card/internal/metrics"
	"github.com/i474232898/weather-card/internal/store"
	"github.com/i474232898/weather-card/internal/weather"
)

// DefaultCity is used until the location lookup or a search says otherwise.
const DefaultCity = "Pune"

var (
	// ErrLocationLookupFailed marks a failed IP geolocation; the card keeps its city.
	ErrLocationLookupFailed = errors.New("location lookup failed")
	// ErrWeatherFetchFailed marks a failed weather fetch; the card keeps its snapshot.
	ErrWeatherFetchFailed = errors.New("weather fetch failed")
	// ErrEmptyCity is returned when a search has nothing but whitespace.
	ErrEmptyCity = errors.New("city is empty")
)

// Store is the current-snapshot cell the card writes to.
type Store interface {
	Save(snapshot weather.Snapshot, tod weather.TimeOfDay)
	Latest() (store.Entry, error)
}

// Options tunes a Card. Zero values fall back to defaults.
type Options struct {
	DefaultCity  string
	FetchTimeout time.Duration

	// StaleGuard drops a response that resolves after a newer one has been
	// applied. Off by default: the last response to arrive wins.
	StaleGuard bool

	Now     func() time.Time
	Logger  *zap.Logger
	Metrics *metrics.Metrics
}

// Card owns the active city, the search draft and the fetch pipeline feeding
// the current snapshot. Every write of the active city dispatches exactly one
// fetch; in-flight fetches are never cancelled when the city changes again.
type Card struct {
	provider weather.Provider
	locator  weather.Locator
	store    Store

	defaultCity  string
	fetchTimeout time.Duration
	staleGuard   bool
	now          func() time.Time
	log          *zap.Logger
	metrics      *metrics.Metrics

	mu      sync.Mutex
	ctx     context.Context
	city    string
	draft   string
	seq     uint64 // last dispatched
	applied uint64 // last saved

	startOnce sync.Once
	inflight  sync.WaitGroup
}

// New creates a Card. locator may be nil, in which case the default city is kept.
func New(provider weather.Provider, locator weather.Locator, st Store, opts Options) *Card {
	c := &Card{
		provider:     provider,
		locator:      locator,
		store:        st,
		defaultCity:  opts.DefaultCity,
		fetchTimeout: opts.FetchTimeout,
		staleGuard:   opts.StaleGuard,
		now:          opts.Now,
		log:          opts.Logger,
		metrics:      opts.Metrics,
		ctx:          context.Background(),
	}
	if c.defaultCity == "" {
		c.defaultCity = DefaultCity
	}
	if c.fetchTimeout <= 0 {
		c.fetchTimeout = 30 * time.Second
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	c.city = c.defaultCity
	return c
}

// Start dispatches the fetch for the current city and runs the location lookup
// once, concurrently. ctx bounds every later fetch. Subsequent calls do nothing.
func (c *Card) Start(ctx context.Context) {
	c.startOnce.Do(func() {
		c.mu.Lock()
		c.ctx = ctx
		c.dispatchLocked(c.city)
		c.mu.Unlock()

		if c.locator == nil {
			return
		}
		c.inflight.Add(1)
		go c.resolveLocation(ctx)
	})
}

// Search makes city the active city and dispatches a fetch for it, even if it
// is already active. It returns the trimmed city.
func (c *Card) Search(city string) (string, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return "", ErrEmptyCity
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.dispatchLocked(city)
	return city, nil
}

// SetDraft replaces the search box text.
func (c *Card) SetDraft(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = text
}

// Draft returns the search box text.
func (c *Card) Draft() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// SubmitDraft searches for the draft and clears it. A blank draft is left as is.
func (c *Card) SubmitDraft() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	city := strings.TrimSpace(c.draft)
	if city == "" {
		return "", ErrEmptyCity
	}
	c.draft = ""
	c.dispatchLocked(city)
	return city, nil
}

// Refresh re-fetches the active city.
func (c *Card) Refresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dispatchLocked(c.city)
}

// ActiveCity returns the city currently driving the card.
func (c *Card) ActiveCity() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.city
}

// Current returns the latest snapshot and its bucket; ok is false while loading.
func (c *Card) Current() (weather.Snapshot, weather.TimeOfDay, bool) {
	e, err := c.store.Latest()
	if err != nil {
		return weather.Snapshot{}, "", false
	}
	return e.Snapshot, e.TimeOfDay, true
}

// View builds the render model as of now.
func (c *Card) View(now time.Time) weather.View {
	draft := c.Draft()
	e, err := c.store.Latest()
	if err != nil {
		return weather.NewView(nil, "", draft, now)
	}
	return weather.NewView(&e.Snapshot, e.TimeOfDay, draft, now)
}

// Wait blocks until every dispatched fetch and the location lookup have finished.
func (c *Card) Wait() {
	c.inflight.Wait()
}

// dispatchLocked writes the active city and starts its fetch. c.mu must be held.
func (c *Card) dispatchLocked(city string) {
	c.city = city
	c.seq++
	seq := c.seq
	ctx := c.ctx

	c.inflight.Add(1)
	go c.fetch(ctx, seq, city)
}

func (c *Card) fetch(ctx context.Context, seq uint64, city string) {
	defer c.inflight.Done()

	log := c.log.With(
		zap.String("fetch_id", uuid.NewString()),
		zap.Uint64("seq", seq),
		zap.String("city", city),
	)
	log.Debug("fetching weather", zap.String("provider", c.provider.Name()))

	fctx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	snap, err := c.provider.Fetch(fctx, city)
	if err != nil {
		log.Error("keeping previous snapshot", zap.Error(fmt.Errorf("%w: %v", ErrWeatherFetchFailed, err)))
		c.metrics.Fetch(metrics.OutcomeFailed)
		return
	}

	tod := weather.ClassifyTimeOfDay(snap.Sunrise, snap.Sunset, c.now().Unix())

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.staleGuard && seq < c.applied {
		log.Debug("discarding stale response", zap.Uint64("applied_seq", c.applied))
		c.metrics.Fetch(metrics.OutcomeDiscarded)
		return
	}
	c.applied = seq
	c.store.Save(snap, tod)
	c.metrics.Fetch(metrics.OutcomeApplied)
	log.Debug("applied snapshot", zap.String("time_of_day", string(tod)))
}

func (c *Card) resolveLocation(ctx context.Context) {
	defer c.inflight.Done()

	lctx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	city, err := c.locator.Locate(lctx)
	if err != nil {
		c.log.Warn("using default city",
			zap.String("city", c.ActiveCity()),
			zap.Error(fmt.Errorf("%w: %v", ErrLocationLookupFailed, err)))
		c.metrics.Lookup(metrics.OutcomeFailed)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if city == "" || city == c.city {
		c.log.Info("location lookup did not change the city", zap.String("located", city), zap.String("city", c.city))
		c.metrics.Lookup(metrics.OutcomeUnchanged)
		return
	}
	c.log.Info("located city", zap.String("city", city))
	c.metrics.Lookup(metrics.OutcomeResolved)
	c.dispatchLocked(city)
}
