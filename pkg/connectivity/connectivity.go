// Package connectivity labels connected pore components of a binary volume
// and tests whether the pore phase percolates, i.e. spans the volume from one
// face to the opposite face along a chosen axis.
//
// Labeling uses an iterative flood fill with an explicit stack, never
// language-level recursion, so arbitrarily large single components cannot
// overflow the call stack.
package connectivity

import (
	"errors"
	"fmt"

	"github.com/agourakis82/darwin-scaffold-studio-sub000/pkg/volume"
)

// ErrUnknownConnectivity is returned when a neighborhood other than Face6 or
// Full26 is requested.
var ErrUnknownConnectivity = errors.New("connectivity: unknown neighborhood")

// ErrUnknownAxis is returned for an axis outside {X, Y, Z}.
var ErrUnknownAxis = errors.New("connectivity: unknown axis")

// Connectivity selects the voxel neighborhood used when deciding whether two
// pore cells belong to the same component.
type Connectivity int

const (
	// Face6 connects cells sharing a face (the 6 orthogonal neighbors).
	Face6 Connectivity = 6
	// Full26 connects cells sharing a face, edge, or corner (all 26 neighbors).
	Full26 Connectivity = 26
)

// Axis identifies a transport/percolation direction through the volume.
type Axis int

const (
	X Axis = iota
	Y
	Z
)

// String returns the lower-case axis name.
func (a Axis) String() string {
	switch a {
	case X:
		return "x"
	case Y:
		return "y"
	case Z:
		return "z"
	}
	return fmt.Sprintf("axis(%d)", int(a))
}

// NoLabel is the sentinel returned when no percolating component exists.
// Valid component labels are strictly positive.
const NoLabel int32 = 0

// LabelMap assigns a positive component label to every pore cell of a volume
// and 0 to every solid cell. It is created by LabelComponents and never
// mutated afterwards.
type LabelMap struct {
	// Labels holds the per-cell component label in the volume's flat
	// row-major order; 0 marks solid/background.
	Labels []int32

	// Width, Height, Depth mirror the labeled volume's dimensions.
	Width, Height, Depth int

	// Count is the number of distinct components, which equals the pore
	// phase's zeroth Betti number.
	Count int
}

// offsets returns the neighbor coordinate deltas for the neighborhood.
func (c Connectivity) offsets() ([][3]int, error) {
	switch c {
	case Face6:
		return [][3]int{
			{1, 0, 0}, {-1, 0, 0},
			{0, 1, 0}, {0, -1, 0},
			{0, 0, 1}, {0, 0, -1},
		}, nil
	case Full26:
		deltas := make([][3]int, 0, 26)
		for dz := -1; dz <= 1; dz++ {
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 && dz == 0 {
						continue
					}
					deltas = append(deltas, [3]int{dx, dy, dz})
				}
			}
		}
		return deltas, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownConnectivity, int(c))
	}
}

// LabelComponents partitions the pore phase of v into maximal connected
// components under the chosen neighborhood and assigns each a unique positive
// label in scan order.
//
// The partition (which cells group together) is independent of scan order;
// only the label identities depend on it. The traversal is an iterative
// flood fill over a preallocated stack of flat cell indices.
func LabelComponents(v *volume.Volume, conn Connectivity) (*LabelMap, error) {
	deltas, err := conn.offsets()
	if err != nil {
		return nil, err
	}

	lm := &LabelMap{
		Labels: make([]int32, v.Len()),
		Width:  v.Width,
		Height: v.Height,
		Depth:  v.Depth,
	}

	area := v.Width * v.Height
	stack := make([]int32, 0, 1024)
	next := int32(0)

	for seed, pore := range v.Data {
		if !pore || lm.Labels[seed] != 0 {
			continue
		}
		next++
		lm.Labels[seed] = next
		stack = append(stack[:0], int32(seed))

		for len(stack) > 0 {
			idx := int(stack[len(stack)-1])
			stack = stack[:len(stack)-1]

			z := idx / area
			rem := idx % area
			y := rem / v.Width
			x := rem % v.Width

			for _, d := range deltas {
				nx, ny, nz := x+d[0], y+d[1], z+d[2]
				if nx < 0 || nx >= v.Width || ny < 0 || ny >= v.Height || nz < 0 || nz >= v.Depth {
					continue
				}
				nIdx := nz*area + ny*v.Width + nx
				if v.Data[nIdx] && lm.Labels[nIdx] == 0 {
					lm.Labels[nIdx] = next
					stack = append(stack, int32(nIdx))
				}
			}
		}
	}

	lm.Count = int(next)
	return lm, nil
}

// faceLabels collects the set of component labels present on the start
// (coord=0) or end (coord=max) face perpendicular to axis.
func (lm *LabelMap) faceLabels(axis Axis, end bool) (map[int32]struct{}, error) {
	labels := make(map[int32]struct{})
	area := lm.Width * lm.Height

	visit := func(idx int) {
		if l := lm.Labels[idx]; l != NoLabel {
			labels[l] = struct{}{}
		}
	}

	switch axis {
	case X:
		x := 0
		if end {
			x = lm.Width - 1
		}
		for z := 0; z < lm.Depth; z++ {
			for y := 0; y < lm.Height; y++ {
				visit(z*area + y*lm.Width + x)
			}
		}
	case Y:
		y := 0
		if end {
			y = lm.Height - 1
		}
		for z := 0; z < lm.Depth; z++ {
			for x := 0; x < lm.Width; x++ {
				visit(z*area + y*lm.Width + x)
			}
		}
	case Z:
		z := 0
		if end {
			z = lm.Depth - 1
		}
		for y := 0; y < lm.Height; y++ {
			for x := 0; x < lm.Width; x++ {
				visit(z*area + y*lm.Width + x)
			}
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownAxis, int(axis))
	}
	return labels, nil
}

// Percolates reports whether any single component reaches both the start and
// the end face along the given axis. An empty pore phase on either face
// yields false, not an error. The result is invariant under any permutation
// of label identities.
func Percolates(lm *LabelMap, axis Axis) (bool, error) {
	l, err := PercolatingLabel(lm, axis)
	if err != nil {
		return false, err
	}
	return l != NoLabel, nil
}

// PercolatingLabel returns the first (lowest-numbered) label whose component
// spans the volume along axis, or NoLabel when none does. Downstream
// transport estimators use it to restrict analysis to the spanning cluster;
// non-spanning clusters are irrelevant to transport.
func PercolatingLabel(lm *LabelMap, axis Axis) (int32, error) {
	start, err := lm.faceLabels(axis, false)
	if err != nil {
		return NoLabel, err
	}
	end, err := lm.faceLabels(axis, true)
	if err != nil {
		return NoLabel, err
	}

	best := NoLabel
	for l := range start {
		if _, ok := end[l]; ok && (best == NoLabel || l < best) {
			best = l
		}
	}
	return best, nil
}
