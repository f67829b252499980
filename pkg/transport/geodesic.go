package transport

import (
	"github.com/agourakis82/darwin-scaffold-studio-sub000/pkg/connectivity"
	"github.com/agourakis82/darwin-scaffold-studio-sub000/pkg/volume"
)

// GeodesicResult carries the geodesic tortuosity plus BFS diagnostics.
type GeodesicResult struct {
	Result

	// PathLength is the minimal BFS step count from the start face to the
	// end face within the spanning cluster (-1 when no path was found).
	PathLength int

	// Visited is the number of cluster cells reached by the search before
	// it terminated; useful for diagnosing pruning behavior.
	Visited int
}

// GeodesicTortuosity computes the geometric tortuosity of the spanning
// cluster identified by label: a multi-source breadth-first search with unit
// edge weights over the 6-neighborhood starts from every cluster cell on the
// start face of axis and tracks the minimum distance to any cell on the end
// face. The tortuosity is that distance divided by the straight-line span
// (L-1).
//
// Once a candidate end-face distance is known, frontier entries at or beyond
// it are pruned: they cannot improve the minimum under unit weights.
//
// The label should come from connectivity.PercolatingLabel; if the component
// nevertheless fails to reach the end face, the result reports
// Percolating=false rather than panicking.
func GeodesicTortuosity(v *volume.Volume, lm *connectivity.LabelMap, label int32, axis connectivity.Axis) GeodesicResult {
	if label == connectivity.NoLabel {
		return GeodesicResult{Result: nonPercolating(), PathLength: -1}
	}

	span := axisSpan(v, axis)
	area := v.Width * v.Height

	dist := make([]int32, v.Len())
	for i := range dist {
		dist[i] = -1
	}

	queue := clusterFaceCells(lm, label, axis)
	for _, idx := range queue {
		dist[idx] = 0
	}
	if len(queue) == 0 {
		return GeodesicResult{Result: nonPercolating(), PathLength: -1}
	}

	best := int32(-1)
	visited := len(queue)

	for head := 0; head < len(queue); head++ {
		idx := int(queue[head])
		d := dist[idx]
		if best >= 0 && d >= best {
			// This branch can no longer beat the current minimum.
			continue
		}

		z := idx / area
		rem := idx % area
		y := rem / v.Width
		x := rem % v.Width

		for _, delta := range faceDeltas {
			nx, ny, nz := x+delta[0], y+delta[1], z+delta[2]
			if nx < 0 || nx >= v.Width || ny < 0 || ny >= v.Height || nz < 0 || nz >= v.Depth {
				continue
			}
			nIdx := nz*area + ny*v.Width + nx
			if lm.Labels[nIdx] != label || dist[nIdx] >= 0 {
				continue
			}
			dist[nIdx] = d + 1
			visited++
			if axisCoord(axis, nx, ny, nz) == span-1 {
				if best < 0 || d+1 < best {
					best = d + 1
				}
				// End-face cells terminate their branch.
				continue
			}
			queue = append(queue, int32(nIdx))
		}
	}

	if best < 0 {
		// Start face may itself be the end face on a degenerate 1-cell span.
		if span == 1 {
			return GeodesicResult{Result: Result{Tau: 1.0, Percolating: true}, PathLength: 0, Visited: visited}
		}
		return GeodesicResult{Result: nonPercolating(), PathLength: -1, Visited: visited}
	}

	tau := float64(best) / float64(span-1)
	return GeodesicResult{
		Result:     Result{Tau: tau, Percolating: true},
		PathLength: int(best),
		Visited:    visited,
	}
}
