package sat

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/dtholl/ballast/body"
)

func unitBox(position mgl64.Vec3, orientation mgl64.Quat) *body.Body {
	return body.New(position, orientation, body.NewBox(mgl64.Vec3{0.5, 0.5, 0.5}), 0.5, 0.5, 1)
}

func boxAt(position mgl64.Vec3, orientation mgl64.Quat, halfExtents mgl64.Vec3) *body.Body {
	return body.New(position, orientation, body.NewBox(halfExtents), 0.5, 0.5, 1)
}

// =============================================================================
// Overlap / Separation Tests
// =============================================================================

func TestIntersect_Separated(t *testing.T) {
	a := unitBox(mgl64.Vec3{0, 0, 0}, mgl64.QuatIdent())
	b := unitBox(mgl64.Vec3{2, 0, 0}, mgl64.QuatIdent())

	if _, ok := Intersect(a, b); ok {
		t.Error("separated boxes reported as intersecting")
	}
}

func TestIntersect_SeparatedDiagonally(t *testing.T) {
	// The projections overlap on all of a's face axes, but the rotated
	// box's own face axis along the diagonal separates the pair.
	a := unitBox(mgl64.Vec3{0, 0, 0}, mgl64.QuatIdent())
	b := unitBox(mgl64.Vec3{0.95, 0.95, 0}, mgl64.QuatRotate(math.Pi/4, mgl64.Vec3{0, 0, 1}))

	if _, ok := Intersect(a, b); ok {
		t.Error("diagonally separated boxes reported as intersecting")
	}
}

func TestIntersect_Overlapping(t *testing.T) {
	a := unitBox(mgl64.Vec3{0, 0, 0}, mgl64.QuatIdent())
	b := unitBox(mgl64.Vec3{0.8, 0, 0}, mgl64.QuatIdent())

	c, ok := Intersect(a, b)
	if !ok {
		t.Fatal("overlapping boxes reported as separated")
	}
	if !vec3AlmostEqual(c.Normal, mgl64.Vec3{1, 0, 0}, 1e-9) {
		t.Errorf("Normal = %v, want (1,0,0)", c.Normal)
	}
	if !almostEqual(c.Depth, 0.2, 1e-9) {
		t.Errorf("Depth = %v, want 0.2", c.Depth)
	}
	// The incident face of b is flat against a's +x face; the averaged
	// deepest vertices project to the face center.
	if !vec3AlmostEqual(c.Point, mgl64.Vec3{0.5, 0, 0}, 1e-9) {
		t.Errorf("Point = %v, want (0.5,0,0)", c.Point)
	}
}

func TestIntersect_Touching(t *testing.T) {
	a := unitBox(mgl64.Vec3{0, 0, 0}, mgl64.QuatIdent())
	b := unitBox(mgl64.Vec3{1, 0, 0}, mgl64.QuatIdent())

	if _, ok := Intersect(a, b); !ok {
		t.Error("exactly touching boxes should count as in contact")
	}
}

// =============================================================================
// Normal Orientation Tests
// =============================================================================

func TestIntersect_NormalPointsFromAToB(t *testing.T) {
	a := unitBox(mgl64.Vec3{0, 1, 0}, mgl64.QuatIdent())
	b := unitBox(mgl64.Vec3{0, 0.2, 0}, mgl64.QuatIdent())

	c, ok := Intersect(a, b)
	if !ok {
		t.Fatal("stacked boxes reported as separated")
	}
	if !vec3AlmostEqual(c.Normal, mgl64.Vec3{0, -1, 0}, 1e-9) {
		t.Errorf("Normal = %v, want (0,-1,0): b is below a", c.Normal)
	}

	// Swapping the arguments flips the normal.
	c2, ok := Intersect(b, a)
	if !ok {
		t.Fatal("swapped pair reported as separated")
	}
	if !vec3AlmostEqual(c2.Normal, mgl64.Vec3{0, 1, 0}, 1e-9) {
		t.Errorf("swapped Normal = %v, want (0,1,0)", c2.Normal)
	}
}

// =============================================================================
// Contact Feature Tests
// =============================================================================

func TestIntersect_MinimumOverlapAxis(t *testing.T) {
	// Deep overlap on x and z, shallow on y: the y face axis must win.
	a := boxAt(mgl64.Vec3{0, 0, 0}, mgl64.QuatIdent(), mgl64.Vec3{2, 0.5, 2})
	b := unitBox(mgl64.Vec3{0.3, 0.9, 0}, mgl64.QuatIdent())

	c, ok := Intersect(a, b)
	if !ok {
		t.Fatal("overlapping boxes reported as separated")
	}
	if !vec3AlmostEqual(c.Normal, mgl64.Vec3{0, 1, 0}, 1e-9) {
		t.Errorf("Normal = %v, want (0,1,0)", c.Normal)
	}
	if !almostEqual(c.Depth, 0.1, 1e-9) {
		t.Errorf("Depth = %v, want 0.1", c.Depth)
	}
	if !almostEqual(c.Point.Y(), 0.5, 1e-9) {
		t.Errorf("Point.Y = %v, want on the reference face y=0.5", c.Point.Y())
	}
}

func TestIntersect_TiltedBoxEdgeOnFace(t *testing.T) {
	// A 45°-tilted box resting its bottom edge on a slab. The deepest
	// feature is an edge; its two vertices are averaged onto the contact.
	slab := boxAt(mgl64.Vec3{0, 0, 0}, mgl64.QuatIdent(), mgl64.Vec3{5, 0.5, 5})
	tilted := unitBox(mgl64.Vec3{0, 0.5+math.Sqrt2/2-0.01, 0}, mgl64.QuatRotate(math.Pi/4, mgl64.Vec3{0, 0, 1}))

	c, ok := Intersect(slab, tilted)
	if !ok {
		t.Fatal("tilted box reported as separated")
	}
	if !vec3AlmostEqual(c.Normal, mgl64.Vec3{0, 1, 0}, 1e-9) {
		t.Errorf("Normal = %v, want (0,1,0)", c.Normal)
	}
	if !almostEqual(c.Point.X(), 0, 1e-6) || !almostEqual(c.Point.Z(), 0, 1e-6) {
		t.Errorf("Point = %v, want on the vertical through the center", c.Point)
	}
	if !almostEqual(c.Point.Y(), 0.5, 1e-9) {
		t.Errorf("Point.Y = %v, want on the slab face y=0.5", c.Point.Y())
	}
}

func TestIntersect_EdgeEdge(t *testing.T) {
	// Two 45°-rotated cubes crossing at skew edges: a's top edge runs
	// along x, b's bottom edge along z, overlapping by ~0.01 vertically.
	// The minimum axis is the edge-pair cross product, and the contact is
	// the midpoint of the shortest segment between the edges.
	a := unitBox(mgl64.Vec3{0, 0, 0}, mgl64.QuatRotate(math.Pi/4, mgl64.Vec3{1, 0, 0}))
	b := unitBox(mgl64.Vec3{0.3, 1.404, 0}, mgl64.QuatRotate(math.Pi/4, mgl64.Vec3{0, 0, 1}))

	c, ok := Intersect(a, b)
	if !ok {
		t.Fatal("crossing boxes reported as separated")
	}
	if !vec3AlmostEqual(c.Normal, mgl64.Vec3{0, 1, 0}, 1e-9) {
		t.Errorf("Normal = %v, want (0,1,0)", c.Normal)
	}
	wantDepth := math.Sqrt2 - 1.404
	if !almostEqual(c.Depth, wantDepth, 1e-9) {
		t.Errorf("Depth = %v, want %v", c.Depth, wantDepth)
	}
	if !almostEqual(c.Point.X(), 0.3, 1e-9) || !almostEqual(c.Point.Z(), 0, 1e-9) {
		t.Errorf("Point = %v, want above the edge crossing at (0.3, ·, 0)", c.Point)
	}
	// Midpoint between a's top edge (y = √2/2) and b's bottom edge
	// (y = 1.404 - √2/2).
	wantY := (math.Sqrt2/2 + (1.404 - math.Sqrt2/2)) / 2
	if !almostEqual(c.Point.Y(), wantY, 1e-9) {
		t.Errorf("Point.Y = %v, want %v", c.Point.Y(), wantY)
	}
}

func TestIntersect_ParallelEdgesSkipped(t *testing.T) {
	// Identical orientations make the three same-axis cross products
	// degenerate (the other six coincide with face axes); the test must
	// still find a face axis and not divide by zero.
	a := unitBox(mgl64.Vec3{0, 0, 0}, mgl64.QuatIdent())
	b := unitBox(mgl64.Vec3{0.6, 0.6, 0.6}, mgl64.QuatIdent())

	c, ok := Intersect(a, b)
	if !ok {
		t.Fatal("corner-overlapping boxes reported as separated")
	}
	for i := 0; i < 3; i++ {
		if math.IsNaN(c.Normal[i]) || math.IsNaN(c.Point[i]) {
			t.Fatalf("NaN in contact: %+v", c)
		}
	}
}

// =============================================================================
// Stability Tests
// =============================================================================

func TestIntersect_Deterministic(t *testing.T) {
	a := unitBox(mgl64.Vec3{0, 0, 0}, mgl64.QuatRotate(0.3, mgl64.Vec3{0, 1, 0}))
	b := unitBox(mgl64.Vec3{0.7, 0.2, 0.1}, mgl64.QuatRotate(0.7, mgl64.Vec3{0, 0, 1}))

	first, ok := Intersect(a, b)
	if !ok {
		t.Fatal("boxes reported as separated")
	}
	for i := 0; i < 100; i++ {
		c, ok := Intersect(a, b)
		if !ok || c != first {
			t.Fatalf("run %d: contact %+v differs from first %+v", i, c, first)
		}
	}
}

func TestIntersect_TieBreakPrefersFirstAxis(t *testing.T) {
	// A perfectly symmetric overlap ties every face axis; the first
	// candidate (a's x axis) must win.
	a := unitBox(mgl64.Vec3{0, 0, 0}, mgl64.QuatIdent())
	b := unitBox(mgl64.Vec3{0, 0, 0}, mgl64.QuatIdent())

	c, ok := Intersect(a, b)
	if !ok {
		t.Fatal("coincident boxes reported as separated")
	}
	if !vec3AlmostEqual(c.Normal, mgl64.Vec3{1, 0, 0}, 1e-12) {
		t.Errorf("Normal = %v, want (1,0,0) from the first candidate axis", c.Normal)
	}
}

// =============================================================================
// Helpers
// =============================================================================

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func vec3AlmostEqual(a, b mgl64.Vec3, epsilon float64) bool {
	return almostEqual(a.X(), b.X(), epsilon) &&
		almostEqual(a.Y(), b.Y(), epsilon) &&
		almostEqual(a.Z(), b.Z(), epsilon)
}
