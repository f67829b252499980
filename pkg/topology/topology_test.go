package topology_test

import (
	"testing"

	"golang.org/x/exp/rand"

	"github.com/agourakis82/darwin-scaffold-studio-sub000/pkg/connectivity"
	"github.com/agourakis82/darwin-scaffold-studio-sub000/pkg/topology"
	"github.com/agourakis82/darwin-scaffold-studio-sub000/pkg/volume"
)

func mustVolume(t *testing.T, w, h, d int) *volume.Volume {
	t.Helper()
	v, err := volume.New(w, h, d)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return v
}

// solidTorus builds a 1-voxel-thick square ring in the middle layer of a
// 5x5x3 volume. Topologically a solid torus: beta = (1, 1, 0), chi = 0.
func solidTorus(t *testing.T) *volume.Volume {
	v := mustVolume(t, 5, 5, 3)
	for y := 1; y <= 3; y++ {
		for x := 1; x <= 3; x++ {
			if x == 2 && y == 2 {
				continue
			}
			v.Set(x, y, 1, true)
		}
	}
	return v
}

// hollowShell builds a cubic shell (5^3 minus the inner 3^3) centered in a
// 7^3 volume. Topologically a thickened sphere: beta = (1, 0, 1), chi = 2.
func hollowShell(t *testing.T) *volume.Volume {
	v := mustVolume(t, 7, 7, 7)
	for z := 1; z <= 5; z++ {
		for y := 1; y <= 5; y++ {
			for x := 1; x <= 5; x++ {
				inner := x >= 2 && x <= 4 && y >= 2 && y <= 4 && z >= 2 && z <= 4
				if !inner {
					v.Set(x, y, z, true)
				}
			}
		}
	}
	return v
}

// TestSingleVoxelComplex verifies the cubical cell counts on one cube
func TestSingleVoxelComplex(t *testing.T) {
	v := mustVolume(t, 3, 3, 3)
	v.Set(1, 1, 1, true)

	c := topology.CellComplexCounts(v)
	if c.Vertices != 8 || c.Edges != 12 || c.Faces != 6 || c.Cubes != 1 {
		t.Fatalf("expected counts (8,12,6,1), got (%d,%d,%d,%d)",
			c.Vertices, c.Edges, c.Faces, c.Cubes)
	}
	if chi := c.Euler(); chi != 1 {
		t.Errorf("expected chi=1 for a single cube, got %d", chi)
	}
}

// TestFullSolid verifies the degenerate empty pore phase
func TestFullSolid(t *testing.T) {
	v := mustVolume(t, 4, 4, 4)

	b0, err := topology.Betti0(v)
	if err != nil {
		t.Fatalf("Betti0 failed: %v", err)
	}
	if b0 != 0 {
		t.Errorf("expected beta0=0 for a fully solid volume, got %d", b0)
	}
	if chi := topology.EulerCharacteristic(v); chi != 0 {
		t.Errorf("expected chi=0 for an empty complex, got %d", chi)
	}
}

// TestFullPoreCube verifies the contractible case: one component, no
// cavities, chi exactly 1
func TestFullPoreCube(t *testing.T) {
	v, err := volume.GenerateSite(4, 1.0, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("GenerateSite failed: %v", err)
	}

	b, err := topology.Estimate(v)
	if err != nil {
		t.Fatalf("Estimate failed: %v", err)
	}
	if b.B0 != 1 {
		t.Errorf("expected beta0=1, got %d", b.B0)
	}
	if b.B2 != 0 {
		t.Errorf("expected beta2=0, got %d", b.B2)
	}
	if !b.Approximate {
		t.Error("estimates must carry the approximation flag")
	}
	if chi := topology.EulerCharacteristic(v); chi != 1 {
		t.Errorf("expected exact chi=1 for a solid cube of pore, got %d", chi)
	}
	// The cycle-rank beta1 grossly overestimates here; only the exact chi is
	// authoritative.
}

// TestSolidTorus checks the torus fixture: exact chi must be 0
// and, on this minimal ring, the cycle rank recovers beta1 = 1 as well
func TestSolidTorus(t *testing.T) {
	v := solidTorus(t)

	b, err := topology.Estimate(v)
	if err != nil {
		t.Fatalf("Estimate failed: %v", err)
	}
	if b.B0 != 1 {
		t.Errorf("expected beta0=1, got %d", b.B0)
	}
	if b.B1 != 1 {
		t.Errorf("expected beta1=1 on the minimal ring, got %d", b.B1)
	}
	if b.B2 != 0 {
		t.Errorf("expected beta2=0, got %d", b.B2)
	}

	if chi := topology.EulerCharacteristic(v); chi != 0 {
		t.Errorf("expected exact chi=0 for a solid torus, got %d", chi)
	}
	if chi := topology.EulerFromBetti(b); chi != 0 {
		t.Errorf("expected beta-based chi=0, got %d", chi)
	}
}

// TestHollowShell checks the hollow-sphere fixture: exact chi
// must be 2 and the enclosed cavity must be detected
func TestHollowShell(t *testing.T) {
	v := hollowShell(t)

	b0, err := topology.Betti0(v)
	if err != nil {
		t.Fatalf("Betti0 failed: %v", err)
	}
	if b0 != 1 {
		t.Errorf("expected beta0=1, got %d", b0)
	}

	b2, err := topology.Betti2Approx(v)
	if err != nil {
		t.Fatalf("Betti2Approx failed: %v", err)
	}
	if b2 != 1 {
		t.Errorf("expected one enclosed cavity, got %d", b2)
	}

	if chi := topology.EulerCharacteristic(v); chi != 2 {
		t.Errorf("expected exact chi=2 for a hollow sphere, got %d", chi)
	}
}

// TestBetti2ExcludesBoundarySolid verifies that bulk solid touching the
// outer faces never counts as a cavity
func TestBetti2ExcludesBoundarySolid(t *testing.T) {
	// A single pore voxel: all remaining solid touches the boundary.
	v := mustVolume(t, 4, 4, 4)
	v.Set(1, 1, 1, true)

	b2, err := topology.Betti2Approx(v)
	if err != nil {
		t.Fatalf("Betti2Approx failed: %v", err)
	}
	if b2 != 0 {
		t.Errorf("expected no cavities, got %d", b2)
	}
}

// TestBetti0MatchesLabelMap verifies the flood-fill identity on a random
// volume: beta0 equals the component count of the Connectivity Analyzer
func TestBetti0MatchesLabelMap(t *testing.T) {
	v, err := volume.GenerateSite(10, 0.3, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("GenerateSite failed: %v", err)
	}

	b0, err := topology.Betti0(v)
	if err != nil {
		t.Fatalf("Betti0 failed: %v", err)
	}
	lm, err := connectivity.LabelComponents(v, connectivity.Face6)
	if err != nil {
		t.Fatalf("LabelComponents failed: %v", err)
	}
	if b0 != lm.Count {
		t.Errorf("beta0 %d must equal component count %d", b0, lm.Count)
	}
}

// TestBetti1NonNegative verifies the rank clamp on sparse dust (isolated
// cells have E - V + C = 0)
func TestBetti1NonNegative(t *testing.T) {
	v := mustVolume(t, 3, 3, 3)
	v.Set(0, 0, 0, true)
	v.Set(2, 2, 2, true)

	if rank := topology.Betti1Approx(v, 2); rank != 0 {
		t.Errorf("expected cycle rank 0 for isolated cells, got %d", rank)
	}
}
