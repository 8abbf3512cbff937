// Package themectl owns the current theme selection: it loads and
// persists it, derives the CSS custom properties and writes them onto the
// root scope.
package themectl

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Dhanuzh/dbexplorer/internal/cssroot"
	"github.com/Dhanuzh/dbexplorer/internal/store"
	"github.com/Dhanuzh/dbexplorer/internal/theme"
)

// Controller errors.
var (
	ErrNotInitialized = errors.New("theme controller not initialized")
	ErrInvalidMode    = errors.New("invalid theme mode")
)

// State is the controller lifecycle state.
type State int

const (
	StateUninitialized State = iota
	StateReady
)

func (s State) String() string {
	if s == StateReady {
		return "ready"
	}
	return "uninitialized"
}

// Selection is the persisted user choice.
type Selection struct {
	ThemeKey string     `json:"themeKey"`
	Mode     theme.Mode `json:"mode"`
}

// modeClasses are the mutually exclusive root marker classes.
var modeClasses = []string{string(theme.ModeLight), string(theme.ModeDark)}

// Controller is the single writer of the root scope and the selection
// store. Operations are serialized, so a change is recomputed, applied and
// persisted before the next one starts.
type Controller struct {
	registry *theme.Registry
	store    store.Store
	root     *cssroot.Root
	logger   zerolog.Logger

	mu        sync.Mutex
	state     State
	selection Selection
	vars      Variables

	subMu sync.Mutex
	subs  map[string]chan Event
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// New creates an uninitialized controller.
func New(registry *theme.Registry, st store.Store, root *cssroot.Root, opts ...Option) *Controller {
	c := &Controller{
		registry: registry,
		store:    st,
		root:     root,
		logger:   zerolog.Nop(),
		subs:     make(map[string]chan Event),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Initialize loads the persisted selection, falling back to the first
// registered theme and dark mode for anything missing or unrecognized,
// then applies it. Calling it again reloads from the store.
func (c *Controller) Initialize(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	sel := Selection{
		ThemeKey: c.registry.Default().Key,
		Mode:     theme.DefaultMode,
	}

	if key, ok := c.read(ctx, store.KeyTheme); ok {
		if c.registry.Has(key) {
			sel.ThemeKey = key
		} else {
			c.logger.Warn().Str("theme", key).Msg("ignoring unknown persisted theme")
		}
	}
	if raw, ok := c.read(ctx, store.KeyMode); ok {
		if mode, valid := theme.ParseMode(raw); valid {
			sel.Mode = mode
		} else {
			c.logger.Warn().Str("mode", raw).Msg("ignoring unknown persisted mode")
		}
	}

	c.selection = sel
	c.vars = Compute(c.registry.Resolve(sel.ThemeKey), sel.Mode)
	c.apply(c.vars, sel.Mode)
	c.state = StateReady

	c.logger.Debug().
		Str("theme", sel.ThemeKey).
		Str("mode", string(sel.Mode)).
		Msg("theme initialized")

	c.publish(EventInitialized, sel)
	return nil
}

// read treats unreadable storage the same as an unset key.
func (c *Controller) read(ctx context.Context, key string) (string, bool) {
	v, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("failed to read theme setting")
		return "", false
	}
	return v, ok
}

// SetTheme selects the theme registered under key, falling back to the
// default theme for an unknown key.
func (c *Controller) SetTheme(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateReady {
		return ErrNotInitialized
	}
	def := c.registry.Resolve(key)
	if def.Key != key {
		c.logger.Warn().Str("theme", key).Str("fallback", def.Key).Msg("unknown theme requested")
	}
	sel := c.selection
	sel.ThemeKey = def.Key
	return c.commit(ctx, sel, def)
}

// SetMode switches between light and dark.
func (c *Controller) SetMode(ctx context.Context, mode theme.Mode) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateReady {
		return ErrNotInitialized
	}
	if !mode.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
	sel := c.selection
	sel.Mode = mode
	return c.commit(ctx, sel, c.registry.Resolve(sel.ThemeKey))
}

// ToggleMode flips the current mode and returns the new one.
func (c *Controller) ToggleMode(ctx context.Context) (theme.Mode, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateReady {
		return "", ErrNotInitialized
	}
	sel := c.selection
	sel.Mode = sel.Mode.Toggle()
	return sel.Mode, c.commit(ctx, sel, c.registry.Resolve(sel.ThemeKey))
}

// SetSelection commits a theme and a mode together, falling back to the
// default theme for an unknown key.
func (c *Controller) SetSelection(ctx context.Context, sel Selection) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateReady {
		return ErrNotInitialized
	}
	if !sel.Mode.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMode, sel.Mode)
	}
	def := c.registry.Resolve(sel.ThemeKey)
	sel.ThemeKey = def.Key
	return c.commit(ctx, sel, def)
}

// commit recomputes, applies and persists sel. The in-memory state and the
// root scope are updated even when persisting fails.
func (c *Controller) commit(ctx context.Context, sel Selection, def theme.Definition) error {
	c.selection = sel
	c.vars = Compute(def, sel.Mode)
	c.apply(c.vars, sel.Mode)
	c.publish(EventChanged, sel)

	if err := c.persist(ctx, sel); err != nil {
		c.logger.Error().Err(err).Msg("failed to persist theme selection")
		return fmt.Errorf("failed to persist theme selection: %w", err)
	}

	c.logger.Debug().
		Str("theme", sel.ThemeKey).
		Str("mode", string(sel.Mode)).
		Msg("theme selection changed")
	return nil
}

func (c *Controller) persist(ctx context.Context, sel Selection) error {
	if err := c.store.Set(ctx, store.KeyTheme, sel.ThemeKey); err != nil {
		return err
	}
	return c.store.Set(ctx, store.KeyMode, string(sel.Mode))
}

// ComputeVariables derives the variable set for sel without applying or
// persisting it. An unknown theme key resolves to the default theme.
func (c *Controller) ComputeVariables(sel Selection) Variables {
	mode := sel.Mode
	if !mode.Valid() {
		mode = theme.DefaultMode
	}
	return Compute(c.registry.Resolve(sel.ThemeKey), mode)
}

// Apply writes vars onto the root scope. Applying the same set twice
// leaves the root unchanged.
func (c *Controller) Apply(vars Variables) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateReady {
		return ErrNotInitialized
	}
	c.apply(vars, c.selection.Mode)
	return nil
}

// Preview applies sel to the root scope, marker class included, without
// changing or persisting the selection. Apply the committed variables, or
// Preview the committed selection, to undo it.
func (c *Controller) Preview(sel Selection) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateReady {
		return ErrNotInitialized
	}
	if !sel.Mode.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMode, sel.Mode)
	}
	c.apply(Compute(c.registry.Resolve(sel.ThemeKey), sel.Mode), sel.Mode)
	return nil
}

func (c *Controller) apply(vars Variables, mode theme.Mode) {
	c.root.ReplaceClass(modeClasses, string(mode))
	for name, v := range vars {
		c.root.SetProperty(name, v)
	}
}

// State returns the lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Selection returns the current selection.
func (c *Controller) Selection() (Selection, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateReady {
		return Selection{}, ErrNotInitialized
	}
	return c.selection, nil
}

// Variables returns a copy of the current derived variable set.
func (c *Controller) Variables() (Variables, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateReady {
		return nil, ErrNotInitialized
	}
	return c.vars.Clone(), nil
}

// Snapshot is a consistent view of the controller: the selection, its
// derived variables and the root scope as last applied.
type Snapshot struct {
	Selection Selection
	Variables Variables
	Root      cssroot.Snapshot
}

// Snapshot returns the selection, variables and root scope under one lock,
// so a concurrent change never pairs one theme with another's variables.
func (c *Controller) Snapshot() (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateReady {
		return Snapshot{}, ErrNotInitialized
	}
	return Snapshot{
		Selection: c.selection,
		Variables: c.vars.Clone(),
		Root:      c.root.Snapshot(),
	}, nil
}

// Registry returns the catalog the controller resolves against.
func (c *Controller) Registry() *theme.Registry {
	return c.registry
}

// Root returns the root scope the controller writes to.
func (c *Controller) Root() *cssroot.Root {
	return c.root
}

// EventType distinguishes controller notifications.
type EventType string

const (
	EventInitialized EventType = "initialized"
	EventChanged     EventType = "changed"
)

// Event reports a new selection.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Selection Selection `json:"selection"`
	Timestamp time.Time `json:"timestamp"`
}

const subscriberBuffer = 16

// Subscribe returns a channel receiving every later selection change and a
// function that cancels the subscription. Events are dropped for a
// subscriber whose buffer is full.
func (c *Controller) Subscribe() (<-chan Event, func()) {
	id := uuid.New().String()
	ch := make(chan Event, subscriberBuffer)

	c.subMu.Lock()
	c.subs[id] = ch
	c.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.subMu.Lock()
			delete(c.subs, id)
			c.subMu.Unlock()
			close(ch)
		})
	}
}

func (c *Controller) publish(typ EventType, sel Selection) {
	ev := Event{
		ID:        uuid.New().String(),
		Type:      typ,
		Selection: sel,
		Timestamp: time.Now().UTC(),
	}

	c.subMu.Lock()
	defer c.subMu.Unlock()
	for id, ch := range c.subs {
		select {
		case ch <- ev:
		default:
			c.logger.Warn().Str("subscriber", id).Msg("dropping theme event for slow subscriber")
		}
	}
}
