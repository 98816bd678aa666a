package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-maze/audit"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/render"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrInvalidParams  = errors.New("invalid maze parameters")
	ErrInvalidSteps   = errors.New("steps must be positive")
)

// GeneratorConfig holds what a Generator is built from.
type GeneratorConfig struct {
	Defaults     i.Params      // Parameters of the first pass and of a reset
	WindowWidth  int           // Width of the area frames are centered in
	WindowHeight int           // Height of the area frames are centered in
	Tick         time.Duration // Interval between automatic advances
	Publisher    i.Publisher
	Logger       i.Logger
	Rand         *rand.Rand // Source for random origins and colors; seeded from the clock when nil
}

// Generator owns a single maze and the parameters it is carved and drawn
// with. The maze is advanced by Run on every tick, or manually by Advance.
type Generator struct {
	mu       sync.Mutex
	emitMu   sync.Mutex // held from the end of a change until its events are out
	maze     *maze.Maze
	params   i.Params
	defaults i.Params
	id       uuid.UUID
	report   *audit.Report
	rng      *rand.Rand

	windowW, windowH int
	tick             time.Duration
	publisher        i.Publisher
	logger           i.Logger
	now              func() time.Time

	subsMu  sync.Mutex
	subs    map[int]chan i.Snapshot
	nextSub int
}

// NewGenerator validates the defaults and starts the first pass.
func NewGenerator(ctx context.Context, c GeneratorConfig) (*Generator, error) {
	if err := validate(c.Defaults); err != nil {
		return nil, err
	}
	if c.Tick <= 0 {
		return nil, fmt.Errorf("%w: tick must be positive", ErrInvalidParams)
	}
	if c.Publisher == nil || c.Logger == nil {
		return nil, errors.New("generator needs a publisher and a logger")
	}

	rng := c.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	g := &Generator{
		maze:      maze.New(),
		params:    c.Defaults,
		defaults:  c.Defaults,
		rng:       rng,
		windowW:   c.WindowWidth,
		windowH:   c.WindowHeight,
		tick:      c.Tick,
		publisher: c.Publisher,
		logger:    c.Logger,
		now:       time.Now,
		subs:      make(map[int]chan i.Snapshot),
	}
	g.Restart(ctx)
	return g, nil
}

func validate(p i.Params) error {
	switch {
	case p.Width < 1 || p.Height < 1:
		return fmt.Errorf("%w: size %dx%d", ErrInvalidParams, p.Width, p.Height)
	case p.StepBudget < 1:
		return fmt.Errorf("%w: step budget %d", ErrInvalidParams, p.StepBudget)
	case p.CellSize < 1 || p.WallThickness < 1:
		return fmt.Errorf("%w: cell size %d, wall thickness %d", ErrInvalidParams, p.CellSize, p.WallThickness)
	}
	return nil
}

// Params returns the current parameters.
func (g *Generator) Params() i.Params {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.params
}

// Restart discards the current pass and begins a new one with the current
// parameters.
func (g *Generator) Restart(ctx context.Context) {
	g.mu.Lock()
	events := g.restartLocked()
	g.emitUnlock(ctx, events, g.snapshotLocked())
}

// Configure replaces every parameter and restarts. An origin outside the new
// size is moved to (0, 0).
func (g *Generator) Configure(ctx context.Context, p i.Params) error {
	if err := validate(p); err != nil {
		return err
	}
	if _, err := maze.ResolveOrigin(p.Origin, p.Width, p.Height); err != nil {
		p.Origin = maze.Coord{}
	}

	g.mu.Lock()
	g.params = p
	events := g.restartLocked()
	g.emitUnlock(ctx, events, g.snapshotLocked())
	return nil
}

// Apply performs one parameter edit. Edits to size, origin or geometry
// restart generation; visibility and color edits only change how the current
// maze is drawn.
func (g *Generator) Apply(ctx context.Context, cmd i.Command) error {
	g.mu.Lock()
	restart, err := g.applyLocked(cmd)
	if err != nil {
		g.mu.Unlock()
		return err
	}

	var events []i.GenerationEvent
	if restart {
		events = g.restartLocked()
	}
	g.emitUnlock(ctx, events, g.snapshotLocked())
	return nil
}

func (g *Generator) applyLocked(cmd i.Command) (bool, error) {
	p := &g.params
	switch cmd {
	case i.CmdRegenerate:
		return true, nil
	case i.CmdReset:
		palette, info := p.Palette, p.InfoVisible
		*p = g.defaults
		p.Palette, p.InfoVisible = palette, info
		return true, nil

	case i.CmdWidthUp:
		p.Width++
		return true, nil
	case i.CmdWidthDown:
		if p.Width <= 1 {
			return false, nil
		}
		p.Width--
		p.Origin.X = min(p.Origin.X, p.Width-1)
		return true, nil
	case i.CmdHeightUp:
		p.Height++
		return true, nil
	case i.CmdHeightDown:
		if p.Height <= 1 {
			return false, nil
		}
		p.Height--
		p.Origin.Y = min(p.Origin.Y, p.Height-1)
		return true, nil
	case i.CmdCellUp:
		p.CellSize++
		return true, nil
	case i.CmdCellDown:
		return shrink(&p.CellSize), nil
	case i.CmdWallUp:
		p.WallThickness++
		return true, nil
	case i.CmdWallDown:
		return shrink(&p.WallThickness), nil

	case i.CmdOriginLeft:
		return moveBack(&p.Origin.X), nil
	case i.CmdOriginRight:
		return moveForward(&p.Origin.X, p.Width-1), nil
	case i.CmdOriginUp:
		return moveBack(&p.Origin.Y), nil
	case i.CmdOriginDown:
		return moveForward(&p.Origin.Y, p.Height-1), nil
	case i.CmdOriginRandom:
		p.Origin = maze.Coord{X: g.rng.Intn(p.Width), Y: g.rng.Intn(p.Height)}
		return true, nil

	case i.CmdToggleWalls:
		p.WallsVisible = !p.WallsVisible
	case i.CmdToggleInfo:
		p.InfoVisible = !p.InfoVisible
	case i.CmdColorOriginRandom:
		p.Palette.Origin = render.RandomColor(g.rng)
	case i.CmdColorFarRandom:
		p.Palette.Far = render.RandomColor(g.rng)
	case i.CmdColorWallRandom:
		p.Palette.Wall = render.RandomColor(g.rng)
	case i.CmdColorWallBlack:
		p.Palette.Wall = render.Black

	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}
	return false, nil
}

// shrink lowers v while keeping it at least 1.
func shrink(v *int) bool {
	if *v <= 1 {
		return false
	}
	*v--
	return true
}

func moveBack(v *int) bool {
	if *v <= 0 {
		return false
	}
	*v--
	return true
}

func moveForward(v *int, limit int) bool {
	if *v >= limit {
		return false
	}
	*v++
	return true
}

func (g *Generator) restartLocked() []i.GenerationEvent {
	g.id = uuid.New()
	g.report = nil
	g.maze.Start(maze.Config{
		Origin:     g.params.Origin,
		Width:      g.params.Width,
		Height:     g.params.Height,
		StepBudget: g.params.StepBudget,
		Seed:       g.params.Seed,
	})
	g.logger.Info(fmt.Sprintf("generation %s started: %dx%d from %v, seed %d",
		g.id, g.params.Width, g.params.Height, g.maze.Origin(), g.maze.Seed()))

	events := []i.GenerationEvent{g.eventLocked(i.EventStarted)}
	if g.maze.State() == maze.Generated {
		events = append(events, g.finishLocked())
	}
	return events
}

// finishLocked audits the completed maze.
func (g *Generator) finishLocked() i.GenerationEvent {
	r := audit.Inspect(g.maze)
	g.report = &r
	if err := r.Err(); err != nil {
		g.logger.Error(fmt.Sprintf("generation %s is not a perfect maze: %v", g.id, err))
	} else {
		g.logger.Info(fmt.Sprintf("generation %s complete: %d walls removed, longest walk %d",
			g.id, g.maze.RemovedWallCount(), g.maze.LongestWalkDistance()))
	}
	return g.eventLocked(i.EventGenerated)
}

func (g *Generator) eventLocked(kind string) i.GenerationEvent {
	return i.GenerationEvent{
		GenerationID:        g.id,
		Kind:                kind,
		Width:               g.maze.Width(),
		Height:              g.maze.Height(),
		Origin:              g.maze.Origin(),
		Seed:                g.maze.Seed(),
		State:               g.maze.State(),
		LongestWalkDistance: g.maze.LongestWalkDistance(),
		RemovedWalls:        g.maze.RemovedWallCount(),
		At:                  g.now().UTC(),
	}
}

// Advance carves up to steps walls outside the tick loop and returns how many
// were removed. A maze that is not being generated is left alone.
func (g *Generator) Advance(ctx context.Context, steps int) (int, error) {
	if steps <= 0 {
		return 0, ErrInvalidSteps
	}

	g.mu.Lock()
	removed, events, changed := g.advanceLocked(steps)
	if !changed {
		g.mu.Unlock()
		return removed, nil
	}
	g.emitUnlock(ctx, events, g.snapshotLocked())
	return removed, nil
}

func (g *Generator) advanceLocked(steps int) (int, []i.GenerationEvent, bool) {
	if g.maze.State() != maze.BeingGenerated {
		return 0, nil, false
	}

	removed := g.maze.Advance(steps)
	var events []i.GenerationEvent
	if g.maze.State() == maze.Generated {
		events = append(events, g.finishLocked())
	}
	return removed, events, true
}

// Run advances the maze by the step budget on every tick until ctx is done.
func (g *Generator) Run(ctx context.Context) error {
	ticker := time.NewTicker(g.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			g.Tick(ctx)
		}
	}
}

// Tick performs one step-budgeted advance.
func (g *Generator) Tick(ctx context.Context) {
	g.mu.Lock()
	_, events, changed := g.advanceLocked(g.params.StepBudget)
	if !changed {
		g.mu.Unlock()
		return
	}
	g.emitUnlock(ctx, events, g.snapshotLocked())
}

// Snapshot returns a consistent copy of the current generation.
func (g *Generator) Snapshot() i.Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshotLocked()
}

func (g *Generator) snapshotLocked() i.Snapshot {
	s := i.Snapshot{
		GenerationID:        g.id,
		Params:              g.params,
		State:               g.maze.State(),
		Seed:                g.maze.Seed(),
		Cells:               g.maze.Cells(),
		Walls:               g.maze.Walls(),
		LongestWalkDistance: g.maze.LongestWalkDistance(),
		RemovedWalls:        g.maze.RemovedWallCount(),
	}
	if c, ok := g.maze.Current(); ok {
		s.Current = &c
	}
	if g.report != nil {
		r := *g.report
		s.Audit = &r
	}
	s.Frame = g.frameLocked()
	return s
}

// Frame lays out the current maze centered in the window.
func (g *Generator) Frame() render.Frame {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.frameLocked()
}

func (g *Generator) frameLocked() render.Frame {
	p := g.params
	layout := render.Centered(p.Width, p.Height, p.CellSize, p.WallThickness, g.windowW, g.windowH)
	return render.Compose(g.maze, layout, p.Palette, p.WallsVisible)
}

// ASCII draws the current maze as text.
func (g *Generator) ASCII() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return render.ASCII(g.maze)
}

// Subscribe returns a channel receiving a snapshot after every change and a
// function that cancels the subscription. A subscriber that falls behind only
// sees the latest snapshot.
func (g *Generator) Subscribe() (<-chan i.Snapshot, func()) {
	g.subsMu.Lock()
	defer g.subsMu.Unlock()

	id := g.nextSub
	g.nextSub++
	ch := make(chan i.Snapshot, 1)
	g.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			g.subsMu.Lock()
			defer g.subsMu.Unlock()
			delete(g.subs, id)
			close(ch)
		})
	}
}

// emitUnlock releases g.mu and then publishes events and snap. Changes are
// emitted in the order they were made, so the last event and snapshot out
// always describe the current generation. g.mu must be held.
func (g *Generator) emitUnlock(ctx context.Context, events []i.GenerationEvent, snap i.Snapshot) {
	g.emitMu.Lock()
	defer g.emitMu.Unlock()
	g.mu.Unlock()

	g.emit(ctx, events, snap)
}

func (g *Generator) emit(ctx context.Context, events []i.GenerationEvent, snap i.Snapshot) {
	for _, e := range events {
		if err := g.publisher.Publish(ctx, e); err != nil {
			g.logger.Warning(fmt.Sprintf("publishing %s event for generation %s: %v", e.Kind, e.GenerationID, err))
		}
	}
	g.broadcast(snap)
}

func (g *Generator) broadcast(snap i.Snapshot) {
	g.subsMu.Lock()
	defer g.subsMu.Unlock()

	for _, ch := range g.subs {
		select {
		case ch <- snap:
			continue
		default:
		}
		// Replace the stale snapshot nobody has read yet.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}
