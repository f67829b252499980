package transport

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"

	"github.com/agourakis82/darwin-scaffold-studio-sub000/pkg/connectivity"
	"github.com/agourakis82/darwin-scaffold-studio-sub000/pkg/volume"
)

// walkBudgetFactor bounds each walker to walkBudgetFactor·L² steps.
const walkBudgetFactor = 100

// DiffusiveResult carries the diffusive tortuosity plus walker statistics.
type DiffusiveResult struct {
	Result

	// Completed is the number of walkers that reached the end face within
	// the step budget; Discarded is the number that exceeded it.
	Completed int
	Discarded int

	// MeanSteps is the average first-passage step count over completed
	// walkers (NaN when none completed).
	MeanSteps float64
}

// DiffusiveTortuosity estimates diffusion-dominated tortuosity from random
// walks. nWalkers independent unbiased walkers start from uniformly sampled
// cluster cells on the start face of axis; each steps to a uniformly chosen
// pore 6-neighbor until it reaches the end face or exceeds a budget of
// 100·L² steps, in which case it is discarded.
//
// The tortuosity is mean(first-passage steps) normalized by (L-1)²/6, the
// expected step count for unobstructed 3D lattice diffusion over the same
// span. This is structurally different from geodesic tortuosity and is
// expected to differ from it numerically.
//
// When every walker exhausts its budget the result keeps Percolating=true
// (the cluster does span) but Tau is NaN with Completed=0, so callers can
// distinguish a slow medium from a non-percolating one.
func DiffusiveTortuosity(v *volume.Volume, lm *connectivity.LabelMap, label int32, axis connectivity.Axis, nWalkers int, rng *rand.Rand) DiffusiveResult {
	if label == connectivity.NoLabel || nWalkers <= 0 {
		return DiffusiveResult{Result: nonPercolating(), MeanSteps: math.NaN()}
	}

	starts := clusterFaceCells(lm, label, axis)
	if len(starts) == 0 {
		return DiffusiveResult{Result: nonPercolating(), MeanSteps: math.NaN()}
	}

	span := axisSpan(v, axis)
	if span < 2 {
		return DiffusiveResult{
			Result:    Result{Tau: 1.0, Percolating: true},
			Completed: nWalkers,
			MeanSteps: 0,
		}
	}

	area := v.Width * v.Height
	budget := walkBudgetFactor * span * span

	var steps []float64
	discarded := 0

	// Scratch list of pore neighbors, reused across steps.
	var neighbors [6]int

	for w := 0; w < nWalkers; w++ {
		pos := int(starts[rng.Intn(len(starts))])
		reached := false

		for step := 1; step <= budget; step++ {
			z := pos / area
			rem := pos % area
			y := rem / v.Width
			x := rem % v.Width

			n := 0
			for _, delta := range faceDeltas {
				nx, ny, nz := x+delta[0], y+delta[1], z+delta[2]
				if nx < 0 || nx >= v.Width || ny < 0 || ny >= v.Height || nz < 0 || nz >= v.Depth {
					continue
				}
				nIdx := nz*area + ny*v.Width + nx
				if v.Data[nIdx] {
					neighbors[n] = nIdx
					n++
				}
			}
			if n == 0 {
				// Isolated cell; the walker has nowhere to go.
				break
			}
			pos = neighbors[rng.Intn(n)]

			nz := pos / area
			nRem := pos % area
			ny := nRem / v.Width
			nx := nRem % v.Width
			if axisCoord(axis, nx, ny, nz) == span-1 {
				steps = append(steps, float64(step))
				reached = true
				break
			}
		}
		if !reached {
			discarded++
		}
	}

	if len(steps) == 0 {
		return DiffusiveResult{
			Result:    Result{Tau: math.NaN(), Percolating: true},
			Discarded: discarded,
			MeanSteps: math.NaN(),
		}
	}

	mean := stat.Mean(steps, nil)
	free := float64(span-1) * float64(span-1) / 6.0
	return DiffusiveResult{
		Result:    Result{Tau: mean / free, Percolating: true},
		Completed: len(steps),
		Discarded: discarded,
		MeanSteps: mean,
	}
}
