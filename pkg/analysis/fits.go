package analysis

import (
	"math"

	"github.com/agourakis82/darwin-scaffold-studio-sub000/internal/models"
	"github.com/agourakis82/darwin-scaffold-studio-sub000/pkg/scaling"
)

// PercolationRecords returns, for system size l, the percolation fraction
// versus control parameter as sample records ordered by p. This is the
// companion indicator used for critical-point estimation.
func (r *BatchResult) PercolationRecords(l int) []models.SampleRecord {
	var records []models.SampleRecord
	for _, c := range r.Conditions {
		if c.L != l {
			continue
		}
		records = append(records, models.SampleRecord{
			L: c.L, X: c.P, Value: c.PercolationFraction, N: c.Replicates,
		})
	}
	return records
}

// GeodesicRecords returns mean geodesic tortuosity versus control parameter
// for system size l. Conditions where no replicate percolated carry NaN
// values and are filtered out by the fit engine.
func (r *BatchResult) GeodesicRecords(l int) []models.SampleRecord {
	var records []models.SampleRecord
	for _, c := range r.Conditions {
		if c.L != l {
			continue
		}
		records = append(records, c.Geodesic.record(c.L, c.P))
	}
	return records
}

// CriticalPoint estimates the percolation threshold for system size l from
// the 0.5-crossing of the percolation fraction.
func (r *BatchResult) CriticalPoint(l int) (float64, bool) {
	return scaling.EstimateCriticalPoint(r.PercolationRecords(l))
}

// FitGeodesicDivergence fits the power-law divergence of geodesic tortuosity
// above the estimated threshold for system size l:
// τ(p) = A·(p − pc)^(−μ). When no threshold crossing exists in the sampled
// range the underdetermined sentinel is returned.
func (r *BatchResult) FitGeodesicDivergence(l int) models.FitResult {
	pc, ok := r.CriticalPoint(l)
	if !ok {
		return models.UnderdeterminedFit(math.NaN(), 0)
	}
	records := r.GeodesicRecords(l)
	xs := make([]float64, len(records))
	ys := make([]float64, len(records))
	for i, rec := range records {
		xs[i] = rec.X
		ys[i] = rec.Value
	}
	return scaling.FitPowerLaw(xs, ys, pc)
}

// FiniteSizeScaling chains the per-size divergence fits into a finite-size
// summary of the tortuosity exponent across every size in the batch.
func (r *BatchResult) FiniteSizeScaling(sizes []int) models.ScalingSummary {
	points := make([]scaling.SizePoint, 0, len(sizes))
	for _, l := range sizes {
		points = append(points, scaling.SizePoint{L: l, Fit: r.FitGeodesicDivergence(l)})
	}
	return scaling.FiniteSizeScaling(points)
}
