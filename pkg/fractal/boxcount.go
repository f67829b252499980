// Package fractal extracts the pore/solid boundary of a binary volume and
// estimates its box-counting fractal dimension by log–log regression over a
// geometric range of box sizes.
package fractal

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/agourakis82/darwin-scaffold-studio-sub000/pkg/volume"
)

// minFitSizes is the minimum number of non-empty box sizes required for a
// meaningful dimension fit.
const minFitSizes = 3

// BoundaryVoxels returns a mask (same shape as v) marking the pore cells
// that form the pore/solid interface: pore cells with at least one solid
// 6-neighbor inside the grid. The volume exterior is not treated as solid
// here, so a uniform pore volume has an empty interface (there is no solid
// phase to border) and grid-edge pore cells qualify only through an in-grid
// solid neighbor.
func BoundaryVoxels(v *volume.Volume) *volume.Volume {
	mask := &volume.Volume{
		Data:   make([]bool, v.Len()),
		Width:  v.Width,
		Height: v.Height,
		Depth:  v.Depth,
	}
	for z := 0; z < v.Depth; z++ {
		for y := 0; y < v.Height; y++ {
			for x := 0; x < v.Width; x++ {
				if !v.At(x, y, z) {
					continue
				}
				if solidInside(v, x+1, y, z) || solidInside(v, x-1, y, z) ||
					solidInside(v, x, y+1, z) || solidInside(v, x, y-1, z) ||
					solidInside(v, x, y, z+1) || solidInside(v, x, y, z-1) {
					mask.Set(x, y, z, true)
				}
			}
		}
	}
	return mask
}

// solidInside reports whether (x, y, z) is a solid cell inside the grid.
func solidInside(v *volume.Volume, x, y, z int) bool {
	if x < 0 || x >= v.Width || y < 0 || y >= v.Height || z < 0 || z >= v.Depth {
		return false
	}
	return !v.Data[v.Index(x, y, z)]
}

// BoxCountingDimension estimates the fractal dimension D of the set marked
// in mask. For box sizes in a geometric sequence (powers of 2 from 2 up to
// half the minimum grid dimension) the volume is partitioned into
// non-overlapping boxes and the boxes containing at least one marked voxel
// are counted. Ordinary least squares on log(count) versus log(size) gives
// the slope −D; the returned R² measures the quality of the scaling law.
//
// When fewer than 3 box sizes yield non-zero counts (e.g. a uniform volume
// with no boundary at all) the estimate is underdetermined and (NaN, NaN)
// is returned instead of failing.
func BoxCountingDimension(mask *volume.Volume) (dim, r2 float64) {
	minDim := mask.Width
	if mask.Height < minDim {
		minDim = mask.Height
	}
	if mask.Depth < minDim {
		minDim = mask.Depth
	}

	var logSize, logCount []float64
	for size := 2; size <= minDim/2; size *= 2 {
		n := countOccupiedBoxes(mask, size)
		if n == 0 {
			continue
		}
		logSize = append(logSize, math.Log(float64(size)))
		logCount = append(logCount, math.Log(float64(n)))
	}

	if len(logSize) < minFitSizes {
		return math.NaN(), math.NaN()
	}

	alpha, beta := stat.LinearRegression(logSize, logCount, nil, false)
	r2 = stat.RSquared(logSize, logCount, nil, alpha, beta)
	return -beta, r2
}

// countOccupiedBoxes partitions the grid into non-overlapping size³ boxes
// (partial boxes at the far borders included) and counts how many contain at
// least one marked voxel.
func countOccupiedBoxes(mask *volume.Volume, size int) int {
	count := 0
	for bz := 0; bz < mask.Depth; bz += size {
		for by := 0; by < mask.Height; by += size {
			for bx := 0; bx < mask.Width; bx += size {
				if boxOccupied(mask, bx, by, bz, size) {
					count++
				}
			}
		}
	}
	return count
}

func boxOccupied(mask *volume.Volume, bx, by, bz, size int) bool {
	for z := bz; z < bz+size && z < mask.Depth; z++ {
		for y := by; y < by+size && y < mask.Height; y++ {
			for x := bx; x < bx+size && x < mask.Width; x++ {
				if mask.At(x, y, z) {
					return true
				}
			}
		}
	}
	return false
}
