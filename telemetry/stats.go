package telemetry

import (
	"log/slog"
	"sort"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	Bodies  int `csv:"bodies"`
	Arrived int `csv:"arrived"`

	// Speed distribution over every sample in the window
	SpeedMean float64 `csv:"speed_mean"`
	SpeedP10  float64 `csv:"speed_p10"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
	SpeedMax  float64 `csv:"speed_max"`

	// Distance to target at window end
	TargetDistMean float64 `csv:"target_dist_mean"`
	TargetDistMax  float64 `csv:"target_dist_max"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeDistribution calculates mean and percentiles from values.
func ComputeDistribution(values []float64) (mean, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(n)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, p10, p50, p90
}

// ComputeWindowStats aggregates the samples recorded between start and end.
// latest holds one sample per body taken at the window end.
func ComputeWindowStats(start, end int32, dt float64, window, latest []Sample) WindowStats {
	s := WindowStats{
		WindowStartTick: start,
		WindowEndTick:   end,
		SimTimeSec:      float64(end) * dt,
		Bodies:          len(latest),
	}

	speeds := make([]float64, len(window))
	for i, sample := range window {
		speeds[i] = sample.Speed
		if sample.Speed > s.SpeedMax {
			s.SpeedMax = sample.Speed
		}
	}
	s.SpeedMean, s.SpeedP10, s.SpeedP50, s.SpeedP90 = ComputeDistribution(speeds)

	var distSum float64
	for _, sample := range latest {
		if sample.Arrived {
			s.Arrived++
		}
		distSum += sample.TargetDistance
		if sample.TargetDistance > s.TargetDistMax {
			s.TargetDistMax = sample.TargetDistance
		}
	}
	if len(latest) > 0 {
		s.TargetDistMean = distSum / float64(len(latest))
	}

	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("bodies", s.Bodies),
		slog.Int("arrived", s.Arrived),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_p10", s.SpeedP10),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Float64("speed_max", s.SpeedMax),
		slog.Float64("target_dist_mean", s.TargetDistMean),
		slog.Float64("target_dist_max", s.TargetDistMax),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"bodies", s.Bodies,
		"arrived", s.Arrived,
		"speed_mean", s.SpeedMean,
		"speed_p50", s.SpeedP50,
		"speed_max", s.SpeedMax,
		"target_dist_mean", s.TargetDistMean,
	)
}
