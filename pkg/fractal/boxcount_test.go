package fractal_test

import (
	"math"
	"testing"

	"golang.org/x/exp/rand"

	"github.com/agourakis82/darwin-scaffold-studio-sub000/pkg/fractal"
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

// TestBoundaryVoxelsUniform verifies that uniform volumes have no pore/solid
// interface at all
func TestBoundaryVoxelsUniform(t *testing.T) {
	solid := mustVolume(t, 6, 6, 6)
	if n := fractal.BoundaryVoxels(solid).PoreCount(); n != 0 {
		t.Errorf("uniform solid: expected no boundary voxels, got %d", n)
	}

	pore, err := volume.GenerateSite(6, 1.0, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("GenerateSite failed: %v", err)
	}
	if n := fractal.BoundaryVoxels(pore).PoreCount(); n != 0 {
		t.Errorf("uniform pore: expected no boundary voxels, got %d", n)
	}
}

// TestBoundaryVoxelsInterface verifies the interface extraction on a
// half-filled volume
func TestBoundaryVoxelsInterface(t *testing.T) {
	// Pore occupies z < 3 of a 6^3 volume: the interface is the z=2 plane.
	v := mustVolume(t, 6, 6, 6)
	for z := 0; z < 3; z++ {
		for y := 0; y < 6; y++ {
			for x := 0; x < 6; x++ {
				v.Set(x, y, z, true)
			}
		}
	}

	mask := fractal.BoundaryVoxels(v)
	if n := mask.PoreCount(); n != 36 {
		t.Fatalf("expected the 36-cell interface plane, got %d boundary voxels", n)
	}
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			if !mask.At(x, y, 2) {
				t.Fatalf("expected boundary at (%d,%d,2)", x, y)
			}
		}
	}
}

// TestBoxCountingPlane verifies the dimension of an axis-aligned plane: the
// occupied-box count scales exactly as size^-2, so D=2 with R^2=1
func TestBoxCountingPlane(t *testing.T) {
	mask := mustVolume(t, 32, 32, 32)
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			mask.Set(x, y, 0, true)
		}
	}

	dim, r2 := fractal.BoxCountingDimension(mask)
	if math.Abs(dim-2.0) > 1e-9 {
		t.Errorf("expected D=2 for a plane, got %v", dim)
	}
	if math.Abs(r2-1.0) > 1e-9 {
		t.Errorf("expected a perfect fit, got R2=%v", r2)
	}
}

// TestBoxCountingLine verifies D=1 on an axis-aligned line
func TestBoxCountingLine(t *testing.T) {
	mask := mustVolume(t, 32, 32, 32)
	for x := 0; x < 32; x++ {
		mask.Set(x, 0, 0, true)
	}

	dim, r2 := fractal.BoxCountingDimension(mask)
	if math.Abs(dim-1.0) > 1e-9 {
		t.Errorf("expected D=1 for a line, got %v", dim)
	}
	if math.Abs(r2-1.0) > 1e-9 {
		t.Errorf("expected a perfect fit, got R2=%v", r2)
	}
}

// TestBoxCountingEmptyMask verifies the graceful NaN sentinel when no
// boundary exists
func TestBoxCountingEmptyMask(t *testing.T) {
	mask := mustVolume(t, 16, 16, 16)
	dim, r2 := fractal.BoxCountingDimension(mask)
	if !math.IsNaN(dim) || !math.IsNaN(r2) {
		t.Errorf("expected (NaN, NaN) for an empty mask, got (%v, %v)", dim, r2)
	}
}

// TestBoxCountingTooSmall verifies the sentinel when the grid supports fewer
// than 3 box sizes
func TestBoxCountingTooSmall(t *testing.T) {
	mask := mustVolume(t, 8, 8, 8) // sizes 2 and 4 only
	mask.Set(3, 3, 3, true)
	dim, r2 := fractal.BoxCountingDimension(mask)
	if !math.IsNaN(dim) || !math.IsNaN(r2) {
		t.Errorf("expected (NaN, NaN) with too few box sizes, got (%v, %v)", dim, r2)
	}
}

// TestBoxCountingPercolationVolume runs the estimator end to end on a
// realistic random boundary and sanity-checks the range
func TestBoxCountingPercolationVolume(t *testing.T) {
	v, err := volume.GenerateSite(32, 0.5, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("GenerateSite failed: %v", err)
	}
	mask := fractal.BoundaryVoxels(v)

	dim, r2 := fractal.BoxCountingDimension(mask)
	if math.IsNaN(dim) {
		t.Fatal("expected a determined fit on a dense random boundary")
	}
	if dim < 2.0 || dim > 3.0 {
		t.Errorf("boundary dimension %v outside the physical range [2,3]", dim)
	}
	if r2 < 0.9 {
		t.Errorf("expected a reasonable scaling fit, got R2=%v", r2)
	}
}
