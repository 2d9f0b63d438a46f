package main

import (
	"fmt"
	"math"
	"sync"

	"github.com/pthm-cable/planar/config"
	"github.com/pthm-cable/planar/game"
	"github.com/pthm-cable/planar/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int32
	configPath string

	mu          sync.Mutex
	bestFitness float64
	bestStats   []telemetry.WindowStats
	lastResult  runResult
}

// NewFitnessEvaluator creates a new evaluator. Every evaluation reloads the
// base config from configPath (empty = embedded defaults).
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, configPath string) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		configPath:  configPath,
		bestFitness: math.Inf(1),
	}
}

// runResult holds the results from a single simulation run.
type runResult struct {
	settled     bool
	ticks       int32   // ticks until every seeker arrived (or maxTicks)
	dt          float64
	residual    float64 // seconds still needed by unsettled seekers at max speed
	windowStats []telemetry.WindowStats
}

// BestStats returns the window stats of the best evaluation so far.
func (fe *FitnessEvaluator) BestStats() []telemetry.WindowStats {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestStats
}

// LastSettled reports whether the most recent evaluation settled, and after how many seconds.
func (fe *FitnessEvaluator) LastSettled() (bool, float64) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastResult.settled, float64(fe.lastResult.ticks) * fe.lastResult.dt
}

// Evaluate computes fitness for a parameter vector (lower = better).
// A run that fails to settle scores its full duration plus the residual.
func (fe *FitnessEvaluator) Evaluate(x []float64) (float64, error) {
	cfg, err := config.Load(fe.configPath)
	if err != nil {
		return 0, fmt.Errorf("loading base config: %w", err)
	}
	fe.params.ApplyToConfig(cfg, x)

	result, err := fe.runSimulation(cfg)
	if err != nil {
		return 0, err
	}
	fitness := computeFitness(result)

	fe.mu.Lock()
	if fitness < fe.bestFitness {
		fe.bestFitness = fitness
		fe.bestStats = result.windowStats
	}
	fe.lastResult = *result
	fe.mu.Unlock()

	return fitness, nil
}

// runSimulation executes a single headless simulation run.
// Runs until every seeker arrives or maxTicks, whichever comes first.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config) (*runResult, error) {
	result := &runResult{dt: cfg.Physics.DT}

	g, err := game.NewGameWithOptions(game.Options{
		Config: cfg,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("starting simulation: %w", err)
	}

	for g.Tick() < fe.maxTicks {
		g.UpdateHeadless()
		if g.Settled() {
			result.settled = true
			break
		}
	}
	result.ticks = g.Tick()

	if !result.settled {
		for _, s := range g.Samples() {
			bc := cfg.Bodies[cfg.Derived.BodyIndex[s.Body]]
			if bc.Orbit || s.Arrived {
				continue
			}
			result.residual += s.TargetDistance / bc.MaxSpeed
		}
	}

	g.Unload()
	return result, nil
}

// computeFitness calculates the scalar fitness in simulated seconds (lower = better).
func computeFitness(r *runResult) float64 {
	return float64(r.ticks)*r.dt + r.residual
}
