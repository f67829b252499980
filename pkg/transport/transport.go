// Package transport estimates transport metrics through the pore space of a
// binary volume: geodesic (shortest-path) tortuosity via multi-source BFS,
// diffusive tortuosity via random-walk first passage, and a cheap hydraulic
// tortuosity proxy from layer-area variability.
//
// All estimators treat non-percolation as an expected outcome near the
// percolation threshold: they return a Result with Percolating=false and a
// NaN tortuosity instead of an error, so batch sweeps can tally failures and
// continue.
package transport

import (
	"math"

	"github.com/agourakis82/darwin-scaffold-studio-sub000/pkg/connectivity"
	"github.com/agourakis82/darwin-scaffold-studio-sub000/pkg/volume"
)

// Result is the common outcome of a tortuosity estimate.
type Result struct {
	// Tau is the tortuosity estimate; NaN when the volume does not support
	// transport along the requested axis.
	Tau float64

	// Percolating is false when no spanning pore path exists (or, for the
	// hydraulic proxy, when some layer has zero pore cross-section).
	Percolating bool
}

// nonPercolating is the shared "no spanning path" outcome.
func nonPercolating() Result {
	return Result{Tau: math.NaN(), Percolating: false}
}

// faceDeltas are the 6 orthogonal neighbor offsets used for BFS and walks.
var faceDeltas = [6][3]int{
	{1, 0, 0}, {-1, 0, 0},
	{0, 1, 0}, {0, -1, 0},
	{0, 0, 1}, {0, 0, -1},
}

// axisSpan returns the grid extent along the transport axis.
func axisSpan(v *volume.Volume, axis connectivity.Axis) int {
	switch axis {
	case connectivity.X:
		return v.Width
	case connectivity.Y:
		return v.Height
	default:
		return v.Depth
	}
}

// axisCoord extracts the coordinate along axis from (x, y, z).
func axisCoord(axis connectivity.Axis, x, y, z int) int {
	switch axis {
	case connectivity.X:
		return x
	case connectivity.Y:
		return y
	default:
		return z
	}
}

// clusterFaceCells returns the flat indices of all cells of the given
// component on the start face (coordinate 0) of axis.
func clusterFaceCells(lm *connectivity.LabelMap, label int32, axis connectivity.Axis) []int32 {
	var cells []int32
	area := lm.Width * lm.Height
	for idx, l := range lm.Labels {
		if l != label {
			continue
		}
		z := idx / area
		rem := idx % area
		y := rem / lm.Width
		x := rem % lm.Width
		if axisCoord(axis, x, y, z) == 0 {
			cells = append(cells, int32(idx))
		}
	}
	return cells
}
