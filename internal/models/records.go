// Package models defines the structured result records exchanged between
// the analysis engine and its callers: per-condition sample records,
// power-law fit results, and finite-size-scaling summaries. All records are
// plain data, produced once and never mutated afterwards.
package models

import "math"

// SampleRecord aggregates one measured metric for one (system size, control
// parameter) condition. A sequence of SampleRecords ordered by X is the
// input of the Scaling/Fit Engine.
type SampleRecord struct {
	// L is the system size the condition was simulated at.
	L int

	// X is the independent variable value (porosity, occupation
	// probability, or system size, depending on the sweep).
	X float64

	// Value is the computed metric value (mean over replicates).
	Value float64

	// StdDev is the sample standard deviation over replicates (0 when
	// fewer than two replicates contributed).
	StdDev float64

	// N is the number of replicates that contributed to Value.
	N int
}

// FitResult is the immutable outcome of one power-law fit
// y = A·|x − x0|^(−μ).
type FitResult struct {
	// X0 is the critical point the fit was anchored at.
	X0 float64

	// Exponent is μ, sign-flipped so that μ > 0 denotes divergence as
	// x → x0⁺.
	Exponent float64

	// ExponentErr is the standard error of the exponent from the OLS
	// residuals.
	ExponentErr float64

	// Amplitude is the prefactor A derived from the fit intercept.
	Amplitude float64

	// R2 is the coefficient of determination of the log–log regression.
	R2 float64

	// Points is the number of data points that survived filtering and
	// entered the fit. Underdetermined fits (Points < 3) carry NaN in all
	// float fields; the count is the diagnostic.
	Points int
}

// Underdetermined reports whether the fit had too few points to be
// statistically meaningful. This is an expected outcome near sweep
// boundaries, represented as data rather than an error.
func (f FitResult) Underdetermined() bool {
	return f.Points < 3 || math.IsNaN(f.Exponent)
}

// UnderdeterminedFit returns the sentinel FitResult for n usable points.
func UnderdeterminedFit(x0 float64, n int) FitResult {
	nan := math.NaN()
	return FitResult{X0: x0, Exponent: nan, ExponentErr: nan, Amplitude: nan, R2: nan, Points: n}
}

// Trend classifies how the fitted exponent behaves as the system size grows.
type Trend string

const (
	TrendConverging Trend = "converging"
	TrendDiverging  Trend = "diverging"
	TrendUnknown    Trend = "unknown"
)

// ScalingSummary reports the finite-size behavior of a fitted exponent
// across system sizes.
type ScalingSummary struct {
	// Sizes is the number of system sizes that entered the analysis.
	Sizes int

	// Trend is the observed behavior of μ(L) with growing L.
	Trend Trend

	// DeltaMu is the exponent change between the two largest sizes.
	DeltaMu float64

	// MuInfinity is the linear extrapolation of μ against 1/L to the
	// infinite-system limit; NaN unless at least 3 sizes were available.
	MuInfinity float64
}
