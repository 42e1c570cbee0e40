package checkin

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"
)

var ErrInvalidGoal = errors.New("goal must be a positive integer")

// Options configures a Controller.
type Options struct {
	Storage        Storage
	Key            string
	Goal           int
	GreetingTTL    time.Duration
	CelebrationTTL time.Duration
	Logger         *slog.Logger
	Now            func() time.Time
}

// Result describes the outcome of one submission.
type Result struct {
	Accepted   bool `json:"accepted"`
	Celebrated bool `json:"celebrated"`
	View       View `json:"view"`
}

// Controller runs the check-in workflow. It owns the in-memory state and is
// the only writer to its StateStore; submissions are serialized so each one
// validates, mutates, persists and renders without interleaving.
type Controller struct {
	store    *StateStore
	renderer *Renderer
	goal     int
	now      func() time.Time
	logger   *slog.Logger

	mu    sync.Mutex
	state State

	lmu       sync.Mutex
	listeners []func(View)
}

// NewController loads the stored state and fires the goal celebration if it
// was reached but never shown.
func NewController(ctx context.Context, opts Options) (*Controller, error) {
	if opts.Goal <= 0 {
		return nil, ErrInvalidGoal
	}
	if opts.Storage == nil {
		opts.Storage = NewMemoryStorage()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	c := &Controller{
		store:    NewStateStore(opts.Storage, opts.Key, opts.Logger),
		renderer: NewRenderer(opts.GreetingTTL, opts.CelebrationTTL, opts.Now),
		goal:     opts.Goal,
		now:      opts.Now,
		logger:   opts.Logger,
	}
	c.state = c.store.Load(ctx)
	c.renderer.OnNoticeHidden(func() { c.notify(c.View()) })

	c.EvaluateGoal(ctx)
	return c, nil
}

// Goal returns the configured attendance goal.
func (c *Controller) Goal() int { return c.goal }

// Submit handles one form submission. A blank name or team is ignored
// without error; the returned view then keeps the submitted values.
func (c *Controller) Submit(ctx context.Context, rawName, team string) Result {
	name := strings.TrimSpace(rawName)

	c.mu.Lock()
	if name == "" || team == "" {
		view := c.viewLocked(Form{Name: rawName, Team: team})
		c.mu.Unlock()
		return Result{View: view}
	}

	next, err := c.store.AddAttendee(ctx, c.state, name, team, c.now())
	if err != nil {
		c.logger.Warn("persisting check-in", "error", err)
	}
	c.state = next
	c.logger.Info("attendee checked in", "team", team, "total", next.Total)

	c.renderer.ShowGreeting(name, team)
	celebrated := c.evaluateGoalLocked(ctx)
	view := c.viewLocked(Form{})
	c.mu.Unlock()

	c.notify(view)
	return Result{Accepted: true, Celebrated: celebrated, View: view}
}

// EvaluateGoal shows the celebration once the goal is first reached and
// latches it. It reports whether the celebration fired.
func (c *Controller) EvaluateGoal(ctx context.Context) bool {
	c.mu.Lock()
	fired := c.evaluateGoalLocked(ctx)
	view := c.viewLocked(Form{})
	c.mu.Unlock()

	if fired {
		c.notify(view)
	}
	return fired
}

func (c *Controller) evaluateGoalLocked(ctx context.Context) bool {
	if !GoalReached(c.state, c.goal) {
		return false
	}

	text := CelebrationText(c.state.Teams)
	c.renderer.ShowCelebration(text)
	c.state = c.state.Celebrated()
	if err := c.store.Save(ctx, c.state); err != nil {
		c.logger.Warn("persisting goal celebration", "error", err)
	}
	c.logger.Info("attendance goal reached", "goal", c.goal, "total", c.state.Total)
	return true
}

// DismissCelebration hides the celebration banner.
func (c *Controller) DismissCelebration() {
	if c.renderer.DismissCelebration() {
		c.notify(c.View())
	}
}

// View renders the current state with an empty form.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked(Form{})
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

func (c *Controller) viewLocked(form Form) View {
	return c.renderer.Render(c.state, c.goal, form)
}

// OnChange registers fn to receive the view after every visible change.
// fn runs outside the controller lock and must not block.
func (c *Controller) OnChange(fn func(View)) {
	c.lmu.Lock()
	c.listeners = append(c.listeners, fn)
	c.lmu.Unlock()
}

func (c *Controller) notify(v View) {
	c.lmu.Lock()
	listeners := slices.Clone(c.listeners)
	c.lmu.Unlock()

	for _, fn := range listeners {
		fn(v)
	}
}
