// Package game wires the ECS world, systems and telemetry into a headless
// kinematics simulation.
package game

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/planar/components"
	"github.com/pthm-cable/planar/config"
	"github.com/pthm-cable/planar/systems"
	"github.com/pthm-cable/planar/telemetry"
	"github.com/pthm-cable/planar/vector2"
)

// Options controls logging and output for a run.
type Options struct {
	LogStats  bool           // Log window stats via slog
	OutputDir string         // Directory for CSV logs and config snapshot (empty = disabled)
	Config    *config.Config // nil = config.Cfg()

	// StatsCallback is called with every flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the simulation state.
type Game struct {
	world *ecs.World

	bodyMapper *ecs.Map4[
		components.Position,
		components.Velocity,
		components.Body,
		components.Seeker,
	]
	bodyFilter ecs.Filter4[
		components.Position,
		components.Velocity,
		components.Body,
		components.Seeker,
	]

	steering  *systems.SteeringSystem
	physics   *systems.PhysicsSystem
	collision *systems.CollisionSystem // nil = collisions disabled

	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	statsCallback func(telemetry.WindowStats)
	logStats      bool

	tick        int32
	dt          float64
	sampleEvery int
	statsWindow int

	// Current stats window
	windowStart int32
	window      []telemetry.Sample
	latest      []telemetry.Sample
}

// NewGameWithOptions creates a game and spawns every configured body.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	world := ecs.NewWorld()
	bounds := systems.Bounds{Width: cfg.World.Width, Height: cfg.World.Height}

	g := &Game{
		world: world,
		bodyMapper: ecs.NewMap4[
			components.Position,
			components.Velocity,
			components.Body,
			components.Seeker,
		](world),
		bodyFilter: *ecs.NewFilter4[
			components.Position,
			components.Velocity,
			components.Body,
			components.Seeker,
		](world),
		steering:      systems.NewSteeringSystem(world),
		physics:       systems.NewPhysicsSystem(world, bounds, cfg.Physics.Friction, cfg.Physics.Restitution),
		perfCollector: telemetry.NewPerfCollector(),
		outputManager: om,
		statsCallback: opts.StatsCallback,
		logStats:      opts.LogStats,
		dt:            cfg.Physics.DT,
		sampleEvery:   cfg.Telemetry.SampleEvery,
		statsWindow:   cfg.Derived.StatsWindowTicks,
	}

	if cfg.Physics.Collide {
		g.collision = systems.NewCollisionSystem(world, bounds, cfg.Derived.CollisionCell, cfg.Physics.Restitution)
	}

	for i := range cfg.Bodies {
		g.spawnBody(uint32(i), &cfg.Bodies[i], cfg.Steering)
	}

	// Tick 0 sample so trajectories start at the spawn point
	g.recordSamples()

	return g, nil
}

// spawnBody creates one entity from its config.
func (g *Game) spawnBody(id uint32, bc *config.BodyConfig, steering config.SteeringConfig) ecs.Entity {
	pos := components.Position{Vector2: vector2.From(bc.Position)}
	vel := components.Velocity{Vector2: vector2.From(bc.Velocity)}
	body := components.BodyFromConfig(id, bc)
	seek := components.SeekerFromConfig(bc, steering)

	return g.bodyMapper.NewEntity(&pos, &vel, &body, &seek)
}

// SetStatsCallback registers a function called with every flushed stats window.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) {
	g.statsCallback = fn
}

// UpdateHeadless runs a single simulation tick.
func (g *Game) UpdateHeadless() {
	var work telemetry.TickWork
	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhaseSteering)
	work.Steered = g.steering.Update(g.dt)

	g.perfCollector.StartPhase(telemetry.PhasePhysics)
	work.Bodies = g.physics.Update(g.dt)

	if g.collision != nil {
		g.perfCollector.StartPhase(telemetry.PhaseCollision)
		work.Contacts = g.collision.Update()
	}

	g.tick++

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	if int(g.tick)%g.sampleEvery == 0 {
		g.recordSamples()
	}
	g.perfCollector.EndTick(work)

	// Flushed after EndTick so the window includes this tick.
	if int(g.tick-g.windowStart) >= g.statsWindow {
		g.flushTelemetry()
	}
}

// recordSamples samples every body into the current window and samples.csv.
func (g *Game) recordSamples() {
	samples := g.Samples()
	g.window = append(g.window, samples...)
	g.latest = samples

	if err := g.outputManager.WriteSamples(samples); err != nil {
		slog.Error("failed to write samples", "error", err)
	}
}

// flushTelemetry aggregates the current window and resets it.
func (g *Game) flushTelemetry() {
	if g.tick == g.windowStart {
		return
	}

	stats := telemetry.ComputeWindowStats(g.windowStart, g.tick, g.dt, g.window, g.latest)
	perfStats := g.perfCollector.Flush()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteStats(stats); err != nil {
		slog.Error("failed to write stats", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	g.windowStart = g.tick
	g.window = g.window[:0]
}

// Samples returns the current state of every body, ordered by body ID.
func (g *Game) Samples() []telemetry.Sample {
	type entry struct {
		id     uint32
		sample telemetry.Sample
	}
	var entries []entry

	query := g.bodyFilter.Query()
	for query.Next() {
		pos, vel, body, seek := query.Get()
		entries = append(entries, entry{
			id:     body.ID,
			sample: telemetry.NewSample(g.tick, body.Name, pos, vel, seek.Target, seek.Arrived),
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].id < entries[j].id })

	samples := make([]telemetry.Sample, len(entries))
	for i, e := range entries {
		samples[i] = e.sample
	}
	return samples
}

// Positions returns the position of every body keyed by name.
func (g *Game) Positions() map[string]vector2.Vector2 {
	positions := make(map[string]vector2.Vector2)
	query := g.bodyFilter.Query()
	for query.Next() {
		pos, _, body, _ := query.Get()
		positions[body.Name] = pos.Copy()
	}
	return positions
}

// Settled reports whether every non-orbiting body has arrived.
// Always false when all bodies orbit.
func (g *Game) Settled() bool {
	pending, seekers := 0, 0
	query := g.bodyFilter.Query()
	for query.Next() {
		_, _, _, seek := query.Get()
		if seek.Orbit {
			continue
		}
		seekers++
		if !seek.Arrived {
			pending++
		}
	}
	return seekers > 0 && pending == 0
}

// Unload flushes the partial stats window and closes output files.
func (g *Game) Unload() {
	g.flushTelemetry()
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}
