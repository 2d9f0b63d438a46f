package main

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestEvaluateDefaultsSettle(t *testing.T) {
	pv := NewParamVector()
	fe := NewFitnessEvaluator(pv, 6000, "")

	fitness, err := fe.Evaluate(pv.DefaultVector())
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	settled, sec := fe.LastSettled()
	if !settled {
		t.Fatalf("expected default scene to settle, fitness %f", fitness)
	}
	if fitness != sec {
		t.Errorf("expected fitness %f to equal settle time %f", fitness, sec)
	}
	// 400 units at no more than 120 units/s
	if fitness < 400.0/120.0 || fitness > 20 {
		t.Errorf("unexpected settle time %f", fitness)
	}
	if len(fe.BestStats()) == 0 {
		t.Error("expected window stats from the best run")
	}
}

func TestEvaluateUnsettledAddsResidual(t *testing.T) {
	pv := NewParamVector()
	fe := NewFitnessEvaluator(pv, 10, "")

	fitness, err := fe.Evaluate(pv.DefaultVector())
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if settled, _ := fe.LastSettled(); settled {
		t.Fatal("expected run capped at 10 ticks not to settle")
	}
	if fitness <= 10.0/60.0 {
		t.Errorf("expected residual on top of %f, got %f", 10.0/60.0, fitness)
	}
	if math.IsInf(fitness, 0) || math.IsNaN(fitness) {
		t.Errorf("expected finite fitness, got %f", fitness)
	}
}

func TestEvaluateBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("physics:\n  dt: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	fe := NewFitnessEvaluator(NewParamVector(), 10, path)
	if _, err := fe.Evaluate(NewParamVector().DefaultVector()); err == nil {
		t.Error("expected error for invalid config")
	}
}
