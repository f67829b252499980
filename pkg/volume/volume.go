// Package volume represents and generates binary 3D occupancy grids
// (pore vs. solid) for percolation analysis. Volumes are generated by
// independent random filling (site percolation), probabilistic growth from a
// seed face (bond percolation), or quantile-thresholding of a smoothed random
// field (correlated percolation).
//
// A Volume is treated as immutable once generated: every downstream analyzer
// reads it without modification and derives its own arrays of identical shape.
package volume

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is returned when a generation parameter is malformed,
// e.g. a probability outside [0,1] or a non-positive size. Parameters are
// never silently clamped.
var ErrInvalidParameter = errors.New("volume: invalid parameter")

// Volume is a binary 3D occupancy grid. Data is stored as a flat array in
// row-major order, indexed z*Width*Height + y*Width + x, where true marks a
// pore cell and false a solid cell.
type Volume struct {
	// Data is the 3D occupancy data as a 1D array in row-major order.
	Data []bool

	// Width, Height, Depth are the dimensions of the volume in voxels.
	// Generators produce cubic volumes, but rectangular volumes are fully
	// supported by every consumer.
	Width, Height, Depth int
}

// New creates an all-solid volume with the given dimensions.
// It returns ErrInvalidParameter if any dimension is non-positive.
func New(width, height, depth int) (*Volume, error) {
	if width <= 0 || height <= 0 || depth <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%dx%d must be positive",
			ErrInvalidParameter, width, height, depth)
	}
	return &Volume{
		Data:   make([]bool, width*height*depth),
		Width:  width,
		Height: height,
		Depth:  depth,
	}, nil
}

// Len returns the total number of cells.
func (v *Volume) Len() int {
	return v.Width * v.Height * v.Depth
}

// Index returns the flat array index for the cell at (x, y, z).
// No bounds checking is performed beyond the slice access itself.
func (v *Volume) Index(x, y, z int) int {
	return z*v.Width*v.Height + y*v.Width + x
}

// At reports whether the cell at (x, y, z) is pore.
// Coordinates outside the grid are reported as solid, which lets boundary
// tests treat the exterior as solid material.
func (v *Volume) At(x, y, z int) bool {
	if x < 0 || x >= v.Width || y < 0 || y >= v.Height || z < 0 || z >= v.Depth {
		return false
	}
	return v.Data[v.Index(x, y, z)]
}

// Set marks the cell at (x, y, z) as pore (true) or solid (false).
// Intended for generators and test fixtures only; analysis code treats
// volumes as read-only.
func (v *Volume) Set(x, y, z int, pore bool) {
	v.Data[v.Index(x, y, z)] = pore
}

// PoreCount returns the number of pore cells.
func (v *Volume) PoreCount() int {
	n := 0
	for _, pore := range v.Data {
		if pore {
			n++
		}
	}
	return n
}

// Porosity returns the pore volume fraction in [0, 1].
func (v *Volume) Porosity() float64 {
	return float64(v.PoreCount()) / float64(v.Len())
}
