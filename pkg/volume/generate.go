package volume

import (
	"fmt"
	"sort"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// validateCube checks the parameters shared by all cubic generators.
func validateCube(l int, p float64) error {
	if l <= 0 {
		return fmt.Errorf("%w: size %d must be positive", ErrInvalidParameter, l)
	}
	if p < 0 || p > 1 {
		return fmt.Errorf("%w: probability %g outside [0,1]", ErrInvalidParameter, p)
	}
	return nil
}

// GenerateSite builds an l×l×l site-percolation volume: each cell
// independently becomes pore with probability p.
//
// The generator is a pure function of the supplied random source, so two
// calls with identically seeded sources produce bit-identical volumes. There
// is no hidden global random state.
func GenerateSite(l int, p float64, rng *rand.Rand) (*Volume, error) {
	if err := validateCube(l, p); err != nil {
		return nil, err
	}
	v, err := New(l, l, l)
	if err != nil {
		return nil, err
	}
	for i := range v.Data {
		v.Data[i] = rng.Float64() < p
	}
	return v, nil
}

// GenerateBond builds an l×l×l bond-percolation volume by breadth-first
// growth: every cell of the z=0 face is seeded as pore, and from each visited
// pore cell each of the 6 face neighbors becomes pore (and is enqueued)
// independently with probability p.
//
// Unlike site percolation, the resulting pore set is connected to the seed
// face by construction; there are no disconnected pore pockets.
func GenerateBond(l int, p float64, rng *rand.Rand) (*Volume, error) {
	if err := validateCube(l, p); err != nil {
		return nil, err
	}
	v, err := New(l, l, l)
	if err != nil {
		return nil, err
	}

	// Seed the entire z=0 face and grow outward with an explicit queue.
	queue := make([]int32, 0, l*l)
	for y := 0; y < l; y++ {
		for x := 0; x < l; x++ {
			idx := v.Index(x, y, 0)
			v.Data[idx] = true
			queue = append(queue, int32(idx))
		}
	}

	area := l * l
	for len(queue) > 0 {
		idx := int(queue[0])
		queue = queue[1:]

		z := idx / area
		rem := idx % area
		y := rem / l
		x := rem % l

		for _, d := range [6][3]int{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}} {
			nx, ny, nz := x+d[0], y+d[1], z+d[2]
			if nx < 0 || nx >= l || ny < 0 || ny >= l || nz < 0 || nz >= l {
				continue
			}
			nIdx := v.Index(nx, ny, nz)
			if v.Data[nIdx] {
				continue
			}
			// Each untried neighbor bond opens independently with probability p.
			if rng.Float64() < p {
				v.Data[nIdx] = true
				queue = append(queue, int32(nIdx))
			}
		}
	}
	return v, nil
}

// GenerateCorrelated builds an l×l×l correlated-percolation volume. A
// standard normal field is sampled, smoothed by a cubic box filter of
// half-width corrLen to introduce spatial correlation, and thresholded at the
// p-th quantile of the smoothed field so that exactly round(p·l³) cells
// become pore. The result is visually clustered rather than salt-and-pepper.
//
// Ties in the smoothed field are broken by scan order, keeping the pore
// fraction exact and the output deterministic for a given source.
func GenerateCorrelated(l int, p float64, corrLen int, rng *rand.Rand) (*Volume, error) {
	if err := validateCube(l, p); err != nil {
		return nil, err
	}
	if corrLen < 1 {
		return nil, fmt.Errorf("%w: correlation length %d must be >= 1", ErrInvalidParameter, corrLen)
	}
	v, err := New(l, l, l)
	if err != nil {
		return nil, err
	}

	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: rng}
	field := make([]float64, v.Len())
	for i := range field {
		field[i] = normal.Rand()
	}

	smoothed := boxFilter(field, l, corrLen)

	// Rank cells by smoothed value and open the lowest p fraction as pore.
	// Argsorting gives an exact pore count regardless of value ties.
	nPore := int(p*float64(len(smoothed)) + 0.5)
	order := make([]int, len(smoothed))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return smoothed[order[a]] < smoothed[order[b]]
	})
	for _, idx := range order[:nPore] {
		v.Data[idx] = true
	}
	return v, nil
}

// boxFilter applies a cubic moving-average filter of half-width r to a flat
// l×l×l field. Windows are clipped at the grid border and normalized by the
// actual cell count, so border cells are averaged over smaller neighborhoods
// rather than padded.
func boxFilter(field []float64, l, r int) []float64 {
	out := make([]float64, len(field))
	area := l * l
	for z := 0; z < l; z++ {
		for y := 0; y < l; y++ {
			for x := 0; x < l; x++ {
				sum := 0.0
				count := 0
				for dz := -r; dz <= r; dz++ {
					nz := z + dz
					if nz < 0 || nz >= l {
						continue
					}
					for dy := -r; dy <= r; dy++ {
						ny := y + dy
						if ny < 0 || ny >= l {
							continue
						}
						for dx := -r; dx <= r; dx++ {
							nx := x + dx
							if nx < 0 || nx >= l {
								continue
							}
							sum += field[nz*area+ny*l+nx]
							count++
						}
					}
				}
				out[z*area+y*l+x] = sum / float64(count)
			}
		}
	}
	return out
}
