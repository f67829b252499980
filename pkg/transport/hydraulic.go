package transport

import (
	"gonum.org/v1/gonum/stat"

	"github.com/agourakis82/darwin-scaffold-studio-sub000/pkg/connectivity"
	"github.com/agourakis82/darwin-scaffold-studio-sub000/pkg/volume"
)

// HydraulicTortuosityProxy returns 1 + (σ/μ)², where μ and σ are the mean
// and standard deviation of the pore cross-sectional area fraction over the
// layers perpendicular to axis.
//
// This is an explicit approximation of flow-resistance variability, not a
// solution of the Stokes or Darcy equations: constricted and bulging layers
// raise the layer-area spread and therefore the proxy. A layer with zero
// pore cross-section blocks axial flow entirely, so that case reports the
// same non-percolating result as the path-based estimators.
func HydraulicTortuosityProxy(v *volume.Volume, axis connectivity.Axis) Result {
	span := axisSpan(v, axis)
	if span < 2 {
		return Result{Tau: 1.0, Percolating: true}
	}
	fractions := make([]float64, span)

	area := v.Width * v.Height
	var layerCells int
	switch axis {
	case connectivity.X:
		layerCells = v.Height * v.Depth
	case connectivity.Y:
		layerCells = v.Width * v.Depth
	default:
		layerCells = area
	}

	for idx, pore := range v.Data {
		if !pore {
			continue
		}
		z := idx / area
		rem := idx % area
		y := rem / v.Width
		x := rem % v.Width
		fractions[axisCoord(axis, x, y, z)]++
	}
	for i := range fractions {
		fractions[i] /= float64(layerCells)
		if fractions[i] == 0 {
			return nonPercolating()
		}
	}

	mean := stat.Mean(fractions, nil)
	sd := stat.StdDev(fractions, nil)
	rel := sd / mean
	return Result{Tau: 1 + rel*rel, Percolating: true}
}
