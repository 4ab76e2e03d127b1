package body

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Box is an oriented box collision shape defined by its half-extents
// (half-width, half-height, half-depth) in the body frame.
type Box struct {
	HalfExtents mgl64.Vec3
}

// NewBox returns a box with the given half-extents.
func NewBox(halfExtents mgl64.Vec3) *Box {
	return &Box{HalfExtents: halfExtents}
}

// Size returns the full extents of the box.
func (b *Box) Size() mgl64.Vec3 {
	return b.HalfExtents.Mul(2)
}

// Vertices returns the 8 corners of the box in the body frame, every sign
// combination of the half-extents. The ordering is fixed: x varies fastest,
// then y, then z, starting from (-hx,-hy,-hz).
func (b *Box) Vertices() [8]mgl64.Vec3 {
	hx, hy, hz := b.HalfExtents.X(), b.HalfExtents.Y(), b.HalfExtents.Z()
	return [8]mgl64.Vec3{
		{-hx, -hy, -hz},
		{+hx, -hy, -hz},
		{-hx, +hy, -hz},
		{+hx, +hy, -hz},
		{-hx, -hy, +hz},
		{+hx, -hy, +hz},
		{-hx, +hy, +hz},
		{+hx, +hy, +hz},
	}
}

// FaceNormals returns the 3 distinct face normal directions in the body
// frame (the local axes; the opposite faces are their negations).
func (b *Box) FaceNormals() [3]mgl64.Vec3 {
	return [3]mgl64.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// Edges returns the 12 edges as index pairs into Vertices.
func (b *Box) Edges() [12][2]int {
	return [12][2]int{
		// along x
		{0, 1}, {2, 3}, {4, 5}, {6, 7},
		// along y
		{0, 2}, {1, 3}, {4, 6}, {5, 7},
		// along z
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}
}

// Support returns the vertex of the box furthest along direction in the body
// frame: the corner whose component signs match the direction. Zero
// components resolve to the positive half-extent.
func (b *Box) Support(direction mgl64.Vec3) mgl64.Vec3 {
	hx, hy, hz := b.HalfExtents.X(), b.HalfExtents.Y(), b.HalfExtents.Z()

	if direction.X() < 0 {
		hx = -hx
	}
	if direction.Y() < 0 {
		hy = -hy
	}
	if direction.Z() < 0 {
		hz = -hz
	}

	return mgl64.Vec3{hx, hy, hz}
}

// InverseInertia returns the inverse inertia tensor of a uniform box with
// the given inverse mass, in the body frame. For invMass == 0 the tensor is
// zero, so immovable bodies contribute nothing to impulse denominators.
func (b *Box) InverseInertia(invMass float64) mgl64.Mat3 {
	if invMass == 0 {
		return mgl64.Mat3{}
	}

	hx, hy, hz := b.HalfExtents.X(), b.HalfExtents.Y(), b.HalfExtents.Z()

	// Solid box of mass m: I_x = m/3 * (hy² + hz²), cyclic in x,y,z.
	ix := 3.0 * invMass / (hy*hy + hz*hz)
	iy := 3.0 * invMass / (hx*hx + hz*hz)
	iz := 3.0 * invMass / (hx*hx + hy*hy)

	return mgl64.Mat3{
		ix, 0, 0,
		0, iy, 0,
		0, 0, iz,
	}
}
