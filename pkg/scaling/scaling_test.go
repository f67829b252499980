package scaling_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agourakis82/darwin-scaffold-studio-sub000/internal/models"
	"github.com/agourakis82/darwin-scaffold-studio-sub000/pkg/scaling"
)

// powerLaw samples y = a*(x-x0)^(-mu) at the given x values.
func powerLaw(xs []float64, x0, a, mu float64) []float64 {
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = a * math.Pow(x-x0, -mu)
	}
	return ys
}

func TestFitPowerLawExactRecovery(t *testing.T) {
	xs := []float64{0.35, 0.40, 0.45, 0.50, 0.60, 0.75}
	ys := powerLaw(xs, 0.30, 2.0, 0.7)

	fit := scaling.FitPowerLaw(xs, ys, 0.30)
	require.False(t, fit.Underdetermined())
	assert.Equal(t, 6, fit.Points)
	assert.InDelta(t, 0.7, fit.Exponent, 1e-9)
	assert.InDelta(t, 2.0, fit.Amplitude, 1e-9)
	assert.InDelta(t, 1.0, fit.R2, 1e-9)
	assert.InDelta(t, 0.0, fit.ExponentErr, 1e-6)
	assert.Equal(t, 0.30, fit.X0)
}

// Points at or below x0, and non-positive or non-finite y values, must be
// filtered before the fit.
func TestFitPowerLawFiltering(t *testing.T) {
	xs := []float64{0.10, 0.30, 0.40, 0.50, 0.60, 0.70, 0.80}
	ys := powerLaw(xs, 0.30, 1.0, 0.5)
	ys[0] = 5.0        // x below x0
	ys[1] = 7.0        // x exactly x0
	ys[2] = math.NaN() // invalid metric

	fit := scaling.FitPowerLaw(xs, ys, 0.30)
	require.False(t, fit.Underdetermined())
	assert.Equal(t, 4, fit.Points, "three samples must have been filtered")
	assert.InDelta(t, 0.5, fit.Exponent, 1e-9)
}

func TestFitPowerLawUnderdetermined(t *testing.T) {
	fit := scaling.FitPowerLaw([]float64{0.4, 0.5}, []float64{2.0, 1.5}, 0.3)
	assert.True(t, fit.Underdetermined())
	assert.Equal(t, 2, fit.Points)
	assert.True(t, math.IsNaN(fit.Exponent))
	assert.True(t, math.IsNaN(fit.Amplitude))
	assert.True(t, math.IsNaN(fit.R2))
}

func TestEstimateCriticalPoint(t *testing.T) {
	records := []models.SampleRecord{
		{X: 0.20, Value: 0.0},
		{X: 0.25, Value: 0.1},
		{X: 0.30, Value: 0.3},
		{X: 0.35, Value: 0.7},
		{X: 0.40, Value: 1.0},
	}

	pc, ok := scaling.EstimateCriticalPoint(records)
	require.True(t, ok)
	// The 0.5 crossing lies midway between 0.30 and 0.35.
	assert.InDelta(t, 0.325, pc, 1e-12)
}

func TestEstimateCriticalPointNoCrossing(t *testing.T) {
	records := []models.SampleRecord{
		{X: 0.1, Value: 0.0},
		{X: 0.2, Value: 0.1},
	}
	pc, ok := scaling.EstimateCriticalPoint(records)
	assert.False(t, ok)
	assert.True(t, math.IsNaN(pc))
}

// determinedFit builds a FitResult that passes the underdetermined check.
func determinedFit(mu float64) models.FitResult {
	return models.FitResult{Exponent: mu, R2: 0.99, Points: 8}
}

// A mu shift from 0.31 at L=32 to 0.30 at L=64 stays within the tolerance,
// so two sizes are enough to call the trend converging.
func TestFiniteSizeScalingTwoSizesConverging(t *testing.T) {
	summary := scaling.FiniteSizeScaling([]scaling.SizePoint{
		{L: 32, Fit: determinedFit(0.31)},
		{L: 64, Fit: determinedFit(0.30)},
	})

	assert.Equal(t, 2, summary.Sizes)
	assert.Equal(t, models.TrendConverging, summary.Trend)
	assert.Less(t, math.Abs(summary.DeltaMu), 0.1)
	assert.True(t, math.IsNaN(summary.MuInfinity), "two sizes cannot be extrapolated")
}

func TestFiniteSizeScalingTwoSizesDiverging(t *testing.T) {
	summary := scaling.FiniteSizeScaling([]scaling.SizePoint{
		{L: 32, Fit: determinedFit(0.30)},
		{L: 64, Fit: determinedFit(0.55)},
	})
	assert.Equal(t, models.TrendDiverging, summary.Trend)
}

// Three sizes on an exact mu(L) = mu_inf + c/L line must extrapolate to
// mu_inf.
func TestFiniteSizeScalingExtrapolation(t *testing.T) {
	muAt := func(l int) float64 { return 0.25 + 1.6/float64(l) }
	summary := scaling.FiniteSizeScaling([]scaling.SizePoint{
		{L: 16, Fit: determinedFit(muAt(16))},
		{L: 32, Fit: determinedFit(muAt(32))},
		{L: 64, Fit: determinedFit(muAt(64))},
	})

	assert.Equal(t, 3, summary.Sizes)
	assert.Equal(t, models.TrendConverging, summary.Trend)
	assert.InDelta(t, 0.25, summary.MuInfinity, 1e-9)
}

// Underdetermined per-size fits are excluded before the trend analysis.
func TestFiniteSizeScalingSkipsUnderdetermined(t *testing.T) {
	summary := scaling.FiniteSizeScaling([]scaling.SizePoint{
		{L: 16, Fit: models.UnderdeterminedFit(math.NaN(), 1)},
		{L: 32, Fit: determinedFit(0.31)},
		{L: 64, Fit: determinedFit(0.30)},
	})
	assert.Equal(t, 2, summary.Sizes)
	assert.Equal(t, models.TrendConverging, summary.Trend)
}

func TestFiniteSizeScalingTooFewSizes(t *testing.T) {
	summary := scaling.FiniteSizeScaling([]scaling.SizePoint{
		{L: 32, Fit: determinedFit(0.3)},
	})
	assert.Equal(t, 1, summary.Sizes)
	assert.Equal(t, models.TrendUnknown, summary.Trend)
	assert.True(t, math.IsNaN(summary.MuInfinity))
}
