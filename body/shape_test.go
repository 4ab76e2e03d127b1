package body

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// =============================================================================
// Box Geometry Tests
// =============================================================================

func TestBox_Vertices(t *testing.T) {
	box := NewBox(mgl64.Vec3{1, 2, 3})
	verts := box.Vertices()

	if len(verts) != 8 {
		t.Fatalf("len(Vertices) = %d, want 8", len(verts))
	}

	// Every sign combination must appear exactly once.
	seen := make(map[mgl64.Vec3]bool)
	for _, v := range verts {
		for i := 0; i < 3; i++ {
			if v[i] != box.HalfExtents[i] && v[i] != -box.HalfExtents[i] {
				t.Errorf("vertex %v component %d is not ±half-extent", v, i)
			}
		}
		seen[v] = true
	}
	if len(seen) != 8 {
		t.Errorf("vertices are not distinct: %d unique", len(seen))
	}
}

func TestBox_Size(t *testing.T) {
	box := NewBox(mgl64.Vec3{0.5, 1, 1.5})
	want := mgl64.Vec3{1, 2, 3}
	if box.Size() != want {
		t.Errorf("Size() = %v, want %v", box.Size(), want)
	}
}

func TestBox_Edges(t *testing.T) {
	box := NewBox(mgl64.Vec3{1, 1, 1})
	verts := box.Vertices()
	edges := box.Edges()

	if len(edges) != 12 {
		t.Fatalf("len(Edges) = %d, want 12", len(edges))
	}
	// Every edge must connect vertices differing in exactly one component.
	for _, e := range edges {
		a, b := verts[e[0]], verts[e[1]]
		diff := 0
		for i := 0; i < 3; i++ {
			if a[i] != b[i] {
				diff++
			}
		}
		if diff != 1 {
			t.Errorf("edge %v connects %v and %v, differing in %d components", e, a, b, diff)
		}
	}
}

func TestBox_Support(t *testing.T) {
	box := NewBox(mgl64.Vec3{1, 2, 3})

	tests := []struct {
		name      string
		direction mgl64.Vec3
		want      mgl64.Vec3
	}{
		{"all positive", mgl64.Vec3{1, 1, 1}, mgl64.Vec3{1, 2, 3}},
		{"all negative", mgl64.Vec3{-1, -1, -1}, mgl64.Vec3{-1, -2, -3}},
		{"mixed", mgl64.Vec3{1, -1, 1}, mgl64.Vec3{1, -2, 3}},
		{"zero resolves positive", mgl64.Vec3{0, 0, -1}, mgl64.Vec3{1, 2, -3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := box.Support(tt.direction)
			if got != tt.want {
				t.Errorf("Support(%v) = %v, want %v", tt.direction, got, tt.want)
			}
		})
	}
}

// =============================================================================
// Inertia Tests
// =============================================================================

func TestBox_InverseInertia(t *testing.T) {
	// Unit cube (half-extents 0.5), mass 2: I = m/3*(hy²+hz²) = 1/3,
	// inverse 3.
	box := NewBox(mgl64.Vec3{0.5, 0.5, 0.5})
	inv := box.InverseInertia(0.5)

	for i := 0; i < 3; i++ {
		if !almostEqual(inv.At(i, i), 3.0, 1e-12) {
			t.Errorf("InverseInertia[%d][%d] = %v, want 3", i, i, inv.At(i, i))
		}
	}

	// Off-diagonals are zero for a box in its own frame.
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if i != j && inv.At(i, j) != 0 {
				t.Errorf("InverseInertia[%d][%d] = %v, want 0", i, j, inv.At(i, j))
			}
		}
	}
}

func TestBox_InverseInertia_Asymmetric(t *testing.T) {
	box := NewBox(mgl64.Vec3{1, 2, 3})
	inv := box.InverseInertia(1)

	wants := [3]float64{
		3.0 / (4.0 + 9.0),
		3.0 / (1.0 + 9.0),
		3.0 / (1.0 + 4.0),
	}
	for i, want := range wants {
		if !almostEqual(inv.At(i, i), want, 1e-12) {
			t.Errorf("InverseInertia[%d][%d] = %v, want %v", i, i, inv.At(i, i), want)
		}
	}
}

func TestBox_InverseInertia_Immovable(t *testing.T) {
	box := NewBox(mgl64.Vec3{100, 100, 100})
	if box.InverseInertia(0) != (mgl64.Mat3{}) {
		t.Error("immovable inverse inertia should be the zero matrix")
	}
}
