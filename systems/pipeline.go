package systems

// Updater is one stage of the pipeline.
type Updater interface {
	Update(dt float64)
}

// PhaseTimer receives per-system timing around each step. telemetry.PerfCollector
// satisfies it.
type PhaseTimer interface {
	StartTick()
	StartPhase(phase string)
	EndTick()
}

type stage struct {
	id string
	up Updater
}

// Pipeline runs the seven systems in their fixed order.
type Pipeline struct {
	ctx    *Context
	stages []stage
	timer  PhaseTimer
}

// NewPipeline wires every system to ctx.
func NewPipeline(ctx *Context) *Pipeline {
	return &Pipeline{
		ctx: ctx,
		stages: []stage{
			{IDSteering, NewSteeringSystem(ctx)},
			{IDForceField, NewForceFieldSystem(ctx)},
			{IDPhysics, NewPhysicsSystem(ctx)},
			{IDMetabolism, NewMetabolismSystem(ctx)},
			{IDEcology, NewEcologySystem(ctx)},
			{IDLifecycle, NewLifecycleSystem(ctx)},
			{IDRegime, NewRegimeSystem(ctx)},
		},
	}
}

// SetTimer installs a phase timer; nil disables timing.
func (p *Pipeline) SetTimer(t PhaseTimer) {
	p.timer = t
}

// Step advances the tick counter and runs every system once.
func (p *Pipeline) Step(dt float64) {
	p.ctx.Tick++
	if p.timer != nil {
		p.timer.StartTick()
		defer p.timer.EndTick()
	}
	for _, s := range p.stages {
		if p.timer != nil {
			p.timer.StartPhase(s.id)
		}
		s.up.Update(dt)
	}
}

// Order returns the system IDs in execution order.
func (p *Pipeline) Order() []string {
	ids := make([]string, len(p.stages))
	for i, s := range p.stages {
		ids[i] = s.id
	}
	return ids
}
