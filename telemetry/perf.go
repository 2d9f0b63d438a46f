package telemetry

import (
	"log/slog"
	"time"
)

// Phase identifies one stage of a simulation tick.
type Phase int

// Tick phases, in the order game.UpdateHeadless runs them.
const (
	PhaseSteering Phase = iota
	PhasePhysics
	PhaseCollision
	PhaseTelemetry
	numPhases
)

var phaseNames = [numPhases]string{"steering", "physics", "collision", "telemetry"}

func (p Phase) String() string {
	if p < 0 || p >= numPhases {
		return "unknown"
	}
	return phaseNames[p]
}

// TickWork counts what the systems did during one tick.
type TickWork struct {
	Bodies   int // integrated by physics
	Steered  int // seekers still steering toward their target
	Contacts int // overlapping pairs resolved by collision
}

// PerfCollector accumulates tick timing and work counts until Flush.
type PerfCollector struct {
	now func() time.Time

	ticks     int
	totalTick time.Duration
	maxTick   time.Duration
	phaseSum  [numPhases]time.Duration
	work      TickWork

	tickStart  time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool
}

// NewPerfCollector creates a collector timed by the wall clock.
func NewPerfCollector() *PerfCollector {
	return &PerfCollector{now: time.Now}
}

// StartTick begins timing a new simulation tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = p.now()
	p.inPhase = false
}

// StartPhase ends the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := p.now()
	p.endPhase(now)
	p.phase = phase
	p.phaseStart = now
	p.inPhase = true
}

func (p *PerfCollector) endPhase(now time.Time) {
	if p.inPhase {
		p.phaseSum[p.phase] += now.Sub(p.phaseStart)
		p.inPhase = false
	}
}

// EndTick closes the running phase and adds the tick to the current window.
func (p *PerfCollector) EndTick(work TickWork) {
	now := p.now()
	p.endPhase(now)

	d := now.Sub(p.tickStart)
	p.ticks++
	p.totalTick += d
	p.maxTick = max(p.maxTick, d)

	p.work.Bodies += work.Bodies
	p.work.Steered += work.Steered
	p.work.Contacts += work.Contacts
}

// Flush returns the stats of every tick since the last Flush and starts a new window.
func (p *PerfCollector) Flush() PerfStats {
	s := PerfStats{Ticks: p.ticks, MaxTick: p.maxTick}
	if p.ticks > 0 {
		n := float64(p.ticks)
		s.AvgTick = p.totalTick / time.Duration(p.ticks)
		for i, sum := range p.phaseSum {
			s.PhaseAvg[i] = sum / time.Duration(p.ticks)
		}
		s.BodiesPerTick = float64(p.work.Bodies) / n
		s.SteeredPerTick = float64(p.work.Steered) / n
		s.ContactsPerTick = float64(p.work.Contacts) / n
	}

	p.ticks = 0
	p.totalTick = 0
	p.maxTick = 0
	p.phaseSum = [numPhases]time.Duration{}
	p.work = TickWork{}
	return s
}

// PerfStats summarizes one window of ticks.
type PerfStats struct {
	Ticks    int
	AvgTick  time.Duration
	MaxTick  time.Duration
	PhaseAvg [numPhases]time.Duration

	BodiesPerTick   float64
	SteeredPerTick  float64
	ContactsPerTick float64
}

// PhasePct returns the share of the average tick spent in phase, in percent.
func (s PerfStats) PhasePct(phase Phase) float64 {
	if s.AvgTick <= 0 || phase < 0 || phase >= numPhases {
		return 0
	}
	return float64(s.PhaseAvg[phase]) / float64(s.AvgTick) * 100
}

// TicksPerSecond is the simulation throughput implied by the average tick.
func (s PerfStats) TicksPerSecond() float64 {
	if s.AvgTick <= 0 {
		return 0
	}
	return float64(time.Second) / float64(s.AvgTick)
}

// NsPerBody is the average tick cost divided across the bodies it moved.
func (s PerfStats) NsPerBody() float64 {
	if s.BodiesPerTick == 0 {
		return 0
	}
	return float64(s.AvgTick.Nanoseconds()) / s.BodiesPerTick
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("ticks", s.Ticks),
		slog.Int64("avg_tick_us", s.AvgTick.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTick.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond()),
		slog.Float64("steered_per_tick", s.SteeredPerTick),
		slog.Float64("contacts_per_tick", s.ContactsPerTick),
	}
	for phase := range numPhases {
		attrs = append(attrs, slog.Float64(phase.String()+"_pct", s.PhasePct(phase)))
	}
	return slog.GroupValue(attrs...)
}

// LogStats logs the window's performance using slog.
func (s PerfStats) LogStats() {
	slog.Info("perf", "perf", s)
}

// PerfStatsCSV is one row of perf.csv.
type PerfStatsCSV struct {
	WindowEnd       int32   `csv:"window_end"`
	Ticks           int     `csv:"ticks"`
	AvgTickUS       int64   `csv:"avg_tick_us"`
	MaxTickUS       int64   `csv:"max_tick_us"`
	TicksPerSec     float64 `csv:"ticks_per_sec"`
	SteeringPct     float64 `csv:"steering_pct"`
	PhysicsPct      float64 `csv:"physics_pct"`
	CollisionPct    float64 `csv:"collision_pct"`
	TelemetryPct    float64 `csv:"telemetry_pct"`
	SteeredPerTick  float64 `csv:"steered_per_tick"`
	ContactsPerTick float64 `csv:"contacts_per_tick"`
	NsPerBody       float64 `csv:"ns_per_body"`
}

// ToCSV flattens s into a perf.csv row.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:       windowEnd,
		Ticks:           s.Ticks,
		AvgTickUS:       s.AvgTick.Microseconds(),
		MaxTickUS:       s.MaxTick.Microseconds(),
		TicksPerSec:     s.TicksPerSecond(),
		SteeringPct:     s.PhasePct(PhaseSteering),
		PhysicsPct:      s.PhasePct(PhasePhysics),
		CollisionPct:    s.PhasePct(PhaseCollision),
		TelemetryPct:    s.PhasePct(PhaseTelemetry),
		SteeredPerTick:  s.SteeredPerTick,
		ContactsPerTick: s.ContactsPerTick,
		NsPerBody:       s.NsPerBody(),
	}
}
