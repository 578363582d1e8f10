package engine

import (
	"github.com/pyreframe/engine/internal/core/ecs"
	"github.com/pyreframe/engine/internal/core/system"
	"github.com/pyreframe/engine/internal/input"
	"go.uber.org/zap"
)

// Engine owns a World and the Schedule that drives it, one Tick per frame.
type Engine struct {
	world    *ecs.World
	schedule *system.Schedule
	frames   uint64
	log      *zap.Logger
}

type Option func(*Engine)

func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithWorld starts the engine on a prepared world instead of an empty one.
func WithWorld(w *ecs.World) Option {
	return func(e *Engine) {
		if w != nil {
			e.world = w
		}
	}
}

func WithSchedule(s *system.Schedule) Option {
	return func(e *Engine) {
		if s != nil {
			e.schedule = s
		}
	}
}

func New(opts ...Option) *Engine {
	e := &Engine{log: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	if e.world == nil {
		e.world = ecs.NewWorld(ecs.WithLogger(e.log.Named("world")))
	}
	if e.schedule == nil {
		e.schedule = system.NewSchedule(system.WithLogger(e.log.Named("schedule")))
	}
	return e
}

func (e *Engine) World() *ecs.World          { return e.world }
func (e *Engine) Schedule() *system.Schedule { return e.schedule }

func (e *Engine) AddSystem(sys system.System) {
	e.schedule.Add(sys)
}

// Frames returns the number of completed Ticks.
func (e *Engine) Frames() uint64 {
	return e.frames
}

// Run executes the schedule once without touching FrameDelta or producing
// output. For hosts that manage timing themselves. Render commands pushed
// during a Run are discarded so the next Tick only returns its own frame.
func (e *Engine) Run() {
	e.schedule.Run(e.world)
	if q, err := ecs.ResourceMut[RenderQueue](e.world); err == nil {
		if n := len(q.drain()); n > 0 {
			e.log.Debug("run discarded render commands", zap.Int("commands", n))
		}
	}
}

// Tick processes one frame: it replaces the FrameDelta and input resources,
// runs the schedule once, then drains the RenderQueue into the output.
// A panicking system aborts the frame and propagates to the caller.
func (e *Engine) Tick(in input.Snapshot, dt float32) FrameOutput {
	ecs.InsertResource(e.world, FrameDelta{Dt: dt})
	ecs.InsertResource(e.world, in)

	e.schedule.Run(e.world)

	var out FrameOutput
	if q, err := ecs.ResourceMut[RenderQueue](e.world); err == nil {
		out.Commands = q.drain()
	}
	if out.Commands == nil {
		out.Commands = []RenderCommand{}
	}
	e.frames++
	e.log.Debug("frame complete",
		zap.Uint64("frame", e.frames),
		zap.Float32("dt", dt),
		zap.Int("alive", e.world.AliveCount()),
		zap.Int("commands", len(out.Commands)))
	return out
}
