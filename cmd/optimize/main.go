// Package main provides CMA-ES tuning of steering and physics parameters
// so that seekers reach their targets as quickly as possible.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/planar/config"
)

// evalRecord is one row of optimize_log.csv. Parameter columns follow NewParamVector.
type evalRecord struct {
	Eval           int     `csv:"eval"`
	Fitness        float64 `csv:"fitness"`
	Settled        bool    `csv:"settled"`
	Responsiveness float64 `csv:"responsiveness"`
	ArriveRadius   float64 `csv:"arrive_radius"`
	MaxSpeed       float64 `csv:"max_speed"`
	Friction       float64 `csv:"friction"`
}

func newEvalRecord(eval int, fitness float64, settled bool, clamped []float64) evalRecord {
	return evalRecord{
		Eval:           eval,
		Fitness:        fitness,
		Settled:        settled,
		Responsiveness: clamped[0],
		ArriveRadius:   clamped[1],
		MaxSpeed:       clamped[2],
		Friction:       clamped[3],
	}
}

// defaultPopulation is the standard CMA-ES population size, 4 + floor(3*ln(n)).
func defaultPopulation(dim int) int {
	return 4 + int(math.Floor(3*math.Log(float64(dim))))
}

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	maxTicks := flag.Int("max-ticks", 6000, "Maximum simulation duration in ticks (cap)")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	// Fail fast on a bad base config; the evaluator reloads it per run.
	baseCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	seekers := baseCfg.Seekers()
	if seekers == 0 {
		log.Fatal("config has no seeking bodies to tune against")
	}

	params := NewParamVector()
	evaluator := NewFitnessEvaluator(params, int32(*maxTicks), *configPath)

	dim := params.Dim()
	initX := params.Normalize(params.ExtractFromConfig(baseCfg))

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0, // Sequential evaluation
	}

	popSize := *population
	if popSize == 0 {
		popSize = defaultPopulation(dim)
	}

	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}

	logPath := filepath.Join(*outputDir, "optimize_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	evalCount := 0
	bestFitness := 1e9
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Denormalize(x)
			clamped := params.Clamp(raw)

			fitness, err := evaluator.Evaluate(raw)
			if err != nil {
				log.Fatalf("evaluation failed: %v", err)
			}
			evalCount++

			if fitness < bestFitness {
				bestFitness = fitness
				bestParams = clamped
			}

			// Log clamped values (these are the values actually used)
			settled, settleSec := evaluator.LastSettled()
			rows := []evalRecord{newEvalRecord(evalCount, fitness, settled, clamped)}
			if evalCount == 1 {
				err = gocsv.Marshal(rows, logFile)
			} else {
				err = gocsv.MarshalWithoutHeaders(rows, logFile)
			}
			if err != nil {
				log.Printf("failed to write log row: %v", err)
			}

			elapsed := time.Since(startTime)
			avgPerEval := elapsed / time.Duration(evalCount)
			remaining := time.Duration(*maxEvals-evalCount) * avgPerEval

			fmt.Printf("Eval %d/%d: settled=%v after %.2fs fitness=%.3f (best=%.3f) | elapsed: %s, ETA: %s\n",
				evalCount, *maxEvals, settled, settleSec, fitness, bestFitness,
				formatDuration(elapsed), formatDuration(remaining))

			return fitness
		},
	}

	fmt.Printf("Starting CMA-ES optimization with %d parameters, population=%d, max_evals=%d\n",
		dim, popSize, *maxEvals)
	fmt.Printf("Seekers: %d, ticks per run: %d\n", seekers, *maxTicks)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}

	// Use best params found (may be from any evaluation, not just final)
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		log.Fatal("no evaluations completed")
	}

	totalTime := time.Since(startTime)
	fmt.Printf("\nOptimization complete after %d evaluations in %s\n", evalCount, formatDuration(totalTime))
	fmt.Printf("Best fitness: %.3f\n", bestFitness)

	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.6f\n", spec.Path, bestParams[i])
	}

	params.ApplyToConfig(baseCfg, bestParams)
	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := baseCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}

	// Save window stats from the best run
	if stats := evaluator.BestStats(); len(stats) > 0 {
		statsPath := filepath.Join(*outputDir, "best_stats.csv")
		f, err := os.Create(statsPath)
		if err != nil {
			log.Printf("failed to create best stats: %v", err)
			return
		}
		defer f.Close()
		if err := gocsv.MarshalFile(&stats, f); err != nil {
			log.Printf("failed to write best stats: %v", err)
		} else {
			fmt.Printf("Best run stats saved to: %s\n", statsPath)
		}
	}
}
