package analysis

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"

	"github.com/agourakis82/darwin-scaffold-studio-sub000/internal/models"
	"github.com/agourakis82/darwin-scaffold-studio-sub000/pkg/connectivity"
	"github.com/agourakis82/darwin-scaffold-studio-sub000/pkg/fractal"
	"github.com/agourakis82/darwin-scaffold-studio-sub000/pkg/topology"
	"github.com/agourakis82/darwin-scaffold-studio-sub000/pkg/transport"
	"github.com/agourakis82/darwin-scaffold-studio-sub000/pkg/volume"
)

// VolumeMetrics is the full metric set extracted from one generated volume.
type VolumeMetrics struct {
	L        int
	P        float64
	Porosity float64

	Percolates bool

	Geodesic  transport.GeodesicResult
	Diffusive transport.DiffusiveResult
	Hydraulic transport.Result

	Betti topology.BettiNumbers
	Euler int

	BoxDimension   float64
	BoxDimensionR2 float64
}

// MetricStats is the mean/spread of one metric over the replicates of a
// condition.
type MetricStats struct {
	Mean   float64
	StdDev float64
	N      int
}

// record converts the stats into a SampleRecord at the given (L, x).
func (m MetricStats) record(l int, x float64) models.SampleRecord {
	return models.SampleRecord{L: l, X: x, Value: m.Mean, StdDev: m.StdDev, N: m.N}
}

// ConditionSummary aggregates all replicates of one (L, p) condition.
type ConditionSummary struct {
	L          int
	P          float64
	Replicates int

	// PercolatingCount and PercolationFraction tally how many replicates
	// produced a spanning cluster; non-percolating replicates are expected
	// near the threshold and simply skipped by the transport averages.
	PercolatingCount    int
	PercolationFraction float64

	MeanPorosity float64

	Geodesic  MetricStats
	Diffusive MetricStats
	Hydraulic MetricStats

	MeanBetti0 float64
	MeanBetti1 float64
	MeanBetti2 float64
	MeanEuler  float64

	BoxDimension MetricStats
}

// BatchResult is the structured output of one sweep: one summary per (L, p)
// condition, ordered by size then control parameter.
type BatchResult struct {
	Conditions []ConditionSummary
}

// task identifies one volume to generate and analyze.
type task struct {
	index     uint64
	sizeIdx   int
	pIdx      int
	replicate int
}

type taskResult struct {
	sizeIdx   int
	pIdx      int
	replicate int
	metrics   VolumeMetrics
	err       error
}

// splitmix64 derives a well-mixed 64-bit value from a task counter, so that
// consecutive task indices yield statistically independent seeds.
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// Run executes the sweep and returns per-condition summaries. Cancellation
// is checked at task boundaries: a canceled context stops workers from
// picking up new tasks and Run returns ctx.Err(). Individual tasks complete
// in bounded time proportional to L³, so no mid-task cancellation is needed.
func (a *Analyzer) Run(ctx context.Context) (*BatchResult, error) {
	if err := a.params.Validate(); err != nil {
		return nil, err
	}

	p := a.params
	total := len(p.Sizes) * len(p.PValues) * p.Replicates
	a.log.WithFields(logrus.Fields{
		"sizes":      len(p.Sizes),
		"pValues":    len(p.PValues),
		"replicates": p.Replicates,
		"tasks":      total,
		"workers":    p.workers(),
	}).Info("starting percolation sweep")

	tasks := make(chan task)
	results := make(chan taskResult, p.workers())

	var wg sync.WaitGroup
	for w := 0; w < p.workers(); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range tasks {
				m, err := a.analyzeOne(t)
				results <- taskResult{sizeIdx: t.sizeIdx, pIdx: t.pIdx, replicate: t.replicate, metrics: m, err: err}
			}
		}()
	}

	// Feed tasks, checking for cancellation between tasks.
	feedErr := make(chan error, 1)
	go func() {
		defer close(tasks)
		idx := uint64(0)
		for si := range p.Sizes {
			for pi := range p.PValues {
				for r := 0; r < p.Replicates; r++ {
					t := task{index: idx, sizeIdx: si, pIdx: pi, replicate: r}
					idx++
					select {
					case tasks <- t:
					case <-ctx.Done():
						feedErr <- ctx.Err()
						return
					}
				}
			}
		}
		feedErr <- nil
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	// Collect per-condition replicate metrics, slotted by replicate index so
	// that aggregation order (and thus floating-point summation) does not
	// depend on worker scheduling.
	buckets := make([][][]VolumeMetrics, len(p.Sizes))
	filled := make([][][]bool, len(p.Sizes))
	for si := range buckets {
		buckets[si] = make([][]VolumeMetrics, len(p.PValues))
		filled[si] = make([][]bool, len(p.PValues))
		for pi := range buckets[si] {
			buckets[si][pi] = make([]VolumeMetrics, p.Replicates)
			filled[si][pi] = make([]bool, p.Replicates)
		}
	}
	var firstErr error
	done := 0
	for res := range results {
		done++
		if res.err != nil && firstErr == nil {
			firstErr = res.err
		}
		if res.err == nil {
			buckets[res.sizeIdx][res.pIdx][res.replicate] = res.metrics
			filled[res.sizeIdx][res.pIdx][res.replicate] = true
		}
		if done%100 == 0 {
			a.log.WithFields(logrus.Fields{"done": done, "total": total}).Debug("sweep progress")
		}
	}

	if err := <-feedErr; err != nil {
		return nil, err
	}
	if firstErr != nil {
		return nil, firstErr
	}

	result := &BatchResult{}
	for si, l := range p.Sizes {
		for pi, pv := range p.PValues {
			// Keep only the replicates that actually completed (all of
			// them, unless the batch was aborted mid-sweep).
			reps := make([]VolumeMetrics, 0, p.Replicates)
			for r, ok := range filled[si][pi] {
				if ok {
					reps = append(reps, buckets[si][pi][r])
				}
			}
			result.Conditions = append(result.Conditions, summarize(l, pv, reps))
		}
	}
	a.log.WithFields(logrus.Fields{"conditions": len(result.Conditions)}).Info("sweep complete")
	return result, nil
}

// analyzeOne generates and fully analyzes a single volume.
func (a *Analyzer) analyzeOne(t task) (VolumeMetrics, error) {
	p := a.params
	l := p.Sizes[t.sizeIdx]
	pv := p.PValues[t.pIdx]
	rng := rand.New(rand.NewSource(splitmix64(p.Seed + t.index)))

	var (
		v   *volume.Volume
		err error
	)
	switch p.Kind {
	case Site:
		v, err = volume.GenerateSite(l, pv, rng)
	case Bond:
		v, err = volume.GenerateBond(l, pv, rng)
	case Correlated:
		v, err = volume.GenerateCorrelated(l, pv, p.CorrelationLength, rng)
	default:
		err = fmt.Errorf("%w: unknown generator kind %q", ErrInvalidConfig, p.Kind)
	}
	if err != nil {
		return VolumeMetrics{}, err
	}

	m := VolumeMetrics{L: l, P: pv, Porosity: v.Porosity()}

	lm, err := connectivity.LabelComponents(v, p.Connectivity)
	if err != nil {
		return VolumeMetrics{}, err
	}
	label, err := connectivity.PercolatingLabel(lm, p.Axis)
	if err != nil {
		return VolumeMetrics{}, err
	}
	m.Percolates = label != connectivity.NoLabel

	// Transport is only defined over the spanning cluster; non-percolating
	// replicates keep their NaN results and are tallied, not failed.
	m.Geodesic = transport.GeodesicTortuosity(v, lm, label, p.Axis)
	if p.Walkers > 0 {
		m.Diffusive = transport.DiffusiveTortuosity(v, lm, label, p.Axis, p.Walkers, rng)
	} else {
		m.Diffusive = transport.DiffusiveResult{Result: transport.Result{Tau: math.NaN()}}
	}
	m.Hydraulic = transport.HydraulicTortuosityProxy(v, p.Axis)

	if p.ComputeTopology {
		m.Betti, err = topology.Estimate(v)
		if err != nil {
			return VolumeMetrics{}, err
		}
		m.Euler = topology.EulerCharacteristic(v)
	}

	if p.ComputeFractal {
		boundary := fractal.BoundaryVoxels(v)
		m.BoxDimension, m.BoxDimensionR2 = fractal.BoxCountingDimension(boundary)
	} else {
		m.BoxDimension = math.NaN()
		m.BoxDimensionR2 = math.NaN()
	}

	return m, nil
}

// summarize aggregates the replicates of one condition.
func summarize(l int, pv float64, reps []VolumeMetrics) ConditionSummary {
	s := ConditionSummary{L: l, P: pv, Replicates: len(reps)}
	if len(reps) == 0 {
		return s
	}

	var porosities []float64
	var geo, dif, hyd, box []float64
	var b0, b1, b2, euler float64

	for _, m := range reps {
		porosities = append(porosities, m.Porosity)
		if m.Percolates {
			s.PercolatingCount++
		}
		if m.Geodesic.Percolating && !math.IsNaN(m.Geodesic.Tau) {
			geo = append(geo, m.Geodesic.Tau)
		}
		if m.Diffusive.Percolating && !math.IsNaN(m.Diffusive.Tau) {
			dif = append(dif, m.Diffusive.Tau)
		}
		if m.Hydraulic.Percolating && !math.IsNaN(m.Hydraulic.Tau) {
			hyd = append(hyd, m.Hydraulic.Tau)
		}
		if !math.IsNaN(m.BoxDimension) {
			box = append(box, m.BoxDimension)
		}
		b0 += float64(m.Betti.B0)
		b1 += float64(m.Betti.B1)
		b2 += float64(m.Betti.B2)
		euler += float64(m.Euler)
	}

	n := float64(len(reps))
	s.PercolationFraction = float64(s.PercolatingCount) / n
	s.MeanPorosity = stat.Mean(porosities, nil)
	s.Geodesic = metricStats(geo)
	s.Diffusive = metricStats(dif)
	s.Hydraulic = metricStats(hyd)
	s.BoxDimension = metricStats(box)
	s.MeanBetti0 = b0 / n
	s.MeanBetti1 = b1 / n
	s.MeanBetti2 = b2 / n
	s.MeanEuler = euler / n
	return s
}

func metricStats(values []float64) MetricStats {
	switch len(values) {
	case 0:
		return MetricStats{Mean: math.NaN(), StdDev: math.NaN()}
	case 1:
		return MetricStats{Mean: values[0], N: 1}
	default:
		return MetricStats{
			Mean:   stat.Mean(values, nil),
			StdDev: stat.StdDev(values, nil),
			N:      len(values),
		}
	}
}
