package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeDistribution(t *testing.T) {
	values := []float64{10, 1, 9, 2, 8, 3, 7, 4, 6, 5}
	mean, p10, p50, p90 := ComputeDistribution(values)

	if math.Abs(mean-5.5) > 0.001 {
		t.Errorf("mean = %v, want 5.5", mean)
	}
	if math.Abs(p10-1.9) > 0.001 {
		t.Errorf("p10 = %v, want 1.9", p10)
	}
	if math.Abs(p50-5.5) > 0.001 {
		t.Errorf("p50 = %v, want 5.5", p50)
	}
	if math.Abs(p90-9.1) > 0.001 {
		t.Errorf("p90 = %v, want 9.1", p90)
	}
	// Input must not be reordered
	if values[0] != 10 || values[1] != 1 {
		t.Error("ComputeDistribution sorted its input")
	}
}

func TestComputeDistributionEmpty(t *testing.T) {
	mean, p10, p50, p90 := ComputeDistribution([]float64{})

	if mean != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}
}

func TestComputeWindowStats(t *testing.T) {
	window := []Sample{
		{Body: "a", Speed: 2},
		{Body: "b", Speed: 6},
		{Body: "a", Speed: 4},
		{Body: "b", Speed: 0},
	}
	latest := []Sample{
		{Body: "a", Speed: 4, TargetDistance: 10},
		{Body: "b", Speed: 0, TargetDistance: 0, Arrived: true},
	}

	s := ComputeWindowStats(60, 120, 0.5, window, latest)

	if s.SimTimeSec != 60 {
		t.Errorf("sim time = %v, want 60", s.SimTimeSec)
	}
	if s.Bodies != 2 || s.Arrived != 1 {
		t.Errorf("bodies/arrived = %d/%d, want 2/1", s.Bodies, s.Arrived)
	}
	if s.SpeedMean != 3 || s.SpeedMax != 6 {
		t.Errorf("speed mean/max = %v/%v, want 3/6", s.SpeedMean, s.SpeedMax)
	}
	if s.TargetDistMean != 5 || s.TargetDistMax != 10 {
		t.Errorf("target dist mean/max = %v/%v, want 5/10", s.TargetDistMean, s.TargetDistMax)
	}
}
