// Package scaling fits power laws to measured metrics, estimates critical
// points, and performs finite-size extrapolation of critical exponents.
//
// Near-threshold sweeps routinely produce too little usable data for a fit;
// that outcome is reported as a sentinel FitResult with NaN fields and a
// diagnostic point count, never as an error, so parameter-space sweeps can
// run to completion without special-casing sparse regions.
package scaling

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/agourakis82/darwin-scaffold-studio-sub000/internal/models"
)

// FitPowerLaw fits y = A·(x − x0)^(−μ) by ordinary least squares on
// log(y) versus log(x − x0), using only points with x > x0 and finite,
// positive y. The exponent is sign-flipped so that μ > 0 denotes divergence
// as x → x0⁺.
//
// Fewer than 3 usable points yields the underdetermined sentinel result.
func FitPowerLaw(xs, ys []float64, x0 float64) models.FitResult {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}

	var logX, logY []float64
	for i := 0; i < n; i++ {
		dx := xs[i] - x0
		if dx <= 0 || ys[i] <= 0 || math.IsNaN(ys[i]) || math.IsInf(ys[i], 0) {
			continue
		}
		logX = append(logX, math.Log(dx))
		logY = append(logY, math.Log(ys[i]))
	}

	if len(logX) < 3 {
		return models.UnderdeterminedFit(x0, len(logX))
	}

	alpha, beta := stat.LinearRegression(logX, logY, nil, false)
	r2 := stat.RSquared(logX, logY, nil, alpha, beta)

	return models.FitResult{
		X0:          x0,
		Exponent:    -beta,
		ExponentErr: slopeStdErr(logX, logY, alpha, beta),
		Amplitude:   math.Exp(alpha),
		R2:          r2,
		Points:      len(logX),
	}
}

// slopeStdErr is the standard error of the OLS slope:
// sqrt(Σr²/(n−2) / Σ(x−x̄)²).
func slopeStdErr(xs, ys []float64, alpha, beta float64) float64 {
	n := float64(len(xs))
	if n <= 2 {
		return math.NaN()
	}
	xMean := stat.Mean(xs, nil)
	var ssRes, ssX float64
	for i := range xs {
		r := ys[i] - (alpha + beta*xs[i])
		ssRes += r * r
		dx := xs[i] - xMean
		ssX += dx * dx
	}
	if ssX == 0 {
		return math.NaN()
	}
	return math.Sqrt(ssRes / (n - 2) / ssX)
}

// EstimateCriticalPoint locates the control-parameter value where a
// companion indicator (typically the percolation probability stored in
// Value) crosses 0.5, by linear interpolation between the first bracketing
// pair of records. Records must be ordered by X.
//
// The second return value is false when the indicator never crosses 0.5
// inside the sampled range; the estimate is then NaN.
func EstimateCriticalPoint(records []models.SampleRecord) (float64, bool) {
	const level = 0.5
	for i := 1; i < len(records); i++ {
		lo, hi := records[i-1], records[i]
		if (lo.Value-level)*(hi.Value-level) > 0 {
			continue
		}
		if hi.Value == lo.Value {
			return lo.X, true
		}
		t := (level - lo.Value) / (hi.Value - lo.Value)
		return lo.X + t*(hi.X-lo.X), true
	}
	return math.NaN(), false
}
