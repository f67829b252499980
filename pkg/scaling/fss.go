package scaling

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/agourakis82/darwin-scaffold-studio-sub000/internal/models"
)

// convergenceTolerance is the |Δμ| threshold between the two largest system
// sizes below which the exponent sequence is reported as converging when too
// few sizes exist for a gap comparison.
const convergenceTolerance = 0.1

// SizePoint pairs one system size with the exponent fitted at that size.
type SizePoint struct {
	L   int
	Fit models.FitResult
}

// FiniteSizeScaling reports how the fitted exponent μ(L) behaves across
// system sizes. Points with underdetermined fits are ignored.
//
// With at least 2 usable sizes the summary reports the trend: with 3 or more
// sizes the successive exponent gaps are compared directly (shrinking gaps ⇒
// converging), while with exactly 2 the |Δμ| tolerance rule decides. With 3
// or more sizes μ(∞) is additionally estimated by linear extrapolation of μ
// against 1/L, the standard first-order finite-size correction.
func FiniteSizeScaling(points []SizePoint) models.ScalingSummary {
	usable := make([]SizePoint, 0, len(points))
	for _, p := range points {
		if !p.Fit.Underdetermined() {
			usable = append(usable, p)
		}
	}
	sort.Slice(usable, func(i, j int) bool { return usable[i].L < usable[j].L })

	summary := models.ScalingSummary{
		Sizes:      len(usable),
		Trend:      models.TrendUnknown,
		DeltaMu:    math.NaN(),
		MuInfinity: math.NaN(),
	}
	if len(usable) < 2 {
		return summary
	}

	last := usable[len(usable)-1].Fit.Exponent
	prev := usable[len(usable)-2].Fit.Exponent
	summary.DeltaMu = last - prev

	if len(usable) >= 3 {
		first := usable[1].Fit.Exponent - usable[0].Fit.Exponent
		if math.Abs(summary.DeltaMu) <= math.Abs(first) {
			summary.Trend = models.TrendConverging
		} else {
			summary.Trend = models.TrendDiverging
		}

		invL := make([]float64, len(usable))
		mus := make([]float64, len(usable))
		for i, p := range usable {
			invL[i] = 1.0 / float64(p.L)
			mus[i] = p.Fit.Exponent
		}
		// μ(L) ≈ μ(∞) + c/L, so the intercept at 1/L → 0 is μ(∞).
		alpha, _ := stat.LinearRegression(invL, mus, nil, false)
		summary.MuInfinity = alpha
	} else {
		if math.Abs(summary.DeltaMu) < convergenceTolerance {
			summary.Trend = models.TrendConverging
		} else {
			summary.Trend = models.TrendDiverging
		}
	}

	return summary
}
