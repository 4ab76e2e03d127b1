// Package sat implements the narrow phase for oriented boxes: a separating
// axis test over the 15 candidate axes of a box pair, yielding a contact
// point and normal for the resolver.
package sat

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/dtholl/ballast/body"
)

const (
	// Tolerance widens the overlap test so that boxes touching within it
	// still count as in contact.
	Tolerance = 1e-6

	// parallelEps rejects cross-product axes of near-parallel edge pairs,
	// whose direction is numerically meaningless.
	parallelEps = 1e-12

	// vertexTieEps groups vertices whose penetration depths are equal to
	// within floating error. A flat face-on-face contact has four equally
	// deep corners; averaging them puts the contact point at the face
	// center instead of an arbitrary corner.
	vertexTieEps = 1e-8
)

// Contact describes a single representative contact between two boxes.
// Normal is unit length and points from the first box toward the second,
// i.e. the direction along which the second box must move to separate.
type Contact struct {
	Point  mgl64.Vec3
	Normal mgl64.Vec3
	Depth  float64
}

// Intersect tests two oriented boxes for overlap. It reports true iff the
// boxes overlap or touch within Tolerance, along with the contact geometry.
//
// The minimum-overlap axis is searched in a fixed order (A's face axes, B's
// face axes, then the 9 edge-pair cross products) with strict comparison, so
// ties resolve to the earliest candidate and repeated calls on the same
// configuration pick the same axis.
func Intersect(a, b *body.Body) (Contact, bool) {
	axesA := columns(a.R)
	axesB := columns(b.R)
	ha := a.Shape.HalfExtents
	hb := b.Shape.HalfExtents
	d := b.Position.Sub(a.Position)

	bestOverlap := math.Inf(1)
	bestAxis := -1
	var bestDir mgl64.Vec3

	test := func(index int, dir mgl64.Vec3) bool {
		overlap := extent(ha, axesA, dir) + extent(hb, axesB, dir) - math.Abs(d.Dot(dir))
		if overlap < -Tolerance {
			return false
		}
		if overlap < bestOverlap {
			bestOverlap = overlap
			bestAxis = index
			bestDir = dir
		}
		return true
	}

	for i := 0; i < 3; i++ {
		if !test(i, axesA[i]) {
			return Contact{}, false
		}
	}
	for j := 0; j < 3; j++ {
		if !test(3+j, axesB[j]) {
			return Contact{}, false
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			cross := axesA[i].Cross(axesB[j])
			len2 := cross.Dot(cross)
			if len2 < parallelEps {
				continue
			}
			if !test(6+3*i+j, cross.Mul(1/math.Sqrt(len2))) {
				return Contact{}, false
			}
		}
	}
	if bestAxis < 0 {
		return Contact{}, false
	}

	// Orient the normal from a toward b.
	normal := bestDir
	if normal.Dot(d) < 0 {
		normal = normal.Mul(-1)
	}

	c := Contact{Normal: normal, Depth: bestOverlap}
	switch {
	case bestAxis < 3:
		// Reference face on a, incident box b: deepest vertices of b
		// against the face, projected onto it.
		deep := deepestVertex(b, normal.Mul(-1))
		s := deep.Sub(a.Position).Dot(normal) - ha[bestAxis]
		c.Point = deep.Sub(normal.Mul(s))
	case bestAxis < 6:
		// Reference face on b, incident box a.
		deep := deepestVertex(a, normal)
		s := deep.Sub(b.Position).Dot(normal) + hb[bestAxis-3]
		c.Point = deep.Sub(normal.Mul(s))
	default:
		i := (bestAxis - 6) / 3
		j := (bestAxis - 6) % 3
		c.Point = edgeContact(a, b, axesA, axesB, i, j, normal)
	}
	return c, true
}

// columns extracts the world-space body axes from a rotation matrix.
func columns(r mgl64.Mat3) [3]mgl64.Vec3 {
	return [3]mgl64.Vec3{r.Col(0), r.Col(1), r.Col(2)}
}

// extent projects a box of half-extents h and world axes onto direction dir
// and returns the projection radius.
func extent(h mgl64.Vec3, axes [3]mgl64.Vec3, dir mgl64.Vec3) float64 {
	return h.X()*math.Abs(axes[0].Dot(dir)) +
		h.Y()*math.Abs(axes[1].Dot(dir)) +
		h.Z()*math.Abs(axes[2].Dot(dir))
}

// deepestVertex returns the vertex of b furthest along dir in world space.
// Vertices tied within vertexTieEps are averaged, so a face or an edge
// pressed flat against the reference face yields its centroid.
func deepestVertex(b *body.Body, dir mgl64.Vec3) mgl64.Vec3 {
	verts := b.Shape.Vertices()

	best := math.Inf(-1)
	depths := [8]float64{}
	world := [8]mgl64.Vec3{}
	for k, v := range verts {
		w := b.Position.Add(b.R.Mul3x1(v))
		world[k] = w
		depths[k] = w.Dot(dir)
		if depths[k] > best {
			best = depths[k]
		}
	}

	sum := mgl64.Vec3{}
	n := 0
	for k := range world {
		if depths[k] > best-vertexTieEps {
			sum = sum.Add(world[k])
			n++
		}
	}
	return sum.Mul(1 / float64(n))
}

// edgeContact returns the midpoint of the shortest segment between the
// supporting edge of a along its i-th axis and the supporting edge of b
// along its j-th axis.
func edgeContact(a, b *body.Body, axesA, axesB [3]mgl64.Vec3, i, j int, normal mgl64.Vec3) mgl64.Vec3 {
	pa := a.Position
	for k := 0; k < 3; k++ {
		if k == i {
			continue
		}
		pa = pa.Add(axesA[k].Mul(signOf(normal.Dot(axesA[k])) * a.Shape.HalfExtents[k]))
	}
	pb := b.Position
	for k := 0; k < 3; k++ {
		if k == j {
			continue
		}
		pb = pb.Add(axesB[k].Mul(signOf(-normal.Dot(axesB[k])) * b.Shape.HalfExtents[k]))
	}

	ea := axesA[i]
	eb := axesB[j]
	w0 := pa.Sub(pb)
	cosAB := ea.Dot(eb)
	denom := 1 - cosAB*cosAB
	if denom < parallelEps {
		return pa.Add(pb).Mul(0.5)
	}
	da := ea.Dot(w0)
	db := eb.Dot(w0)
	s := (cosAB*db - da) / denom
	t := (db - cosAB*da) / denom
	s = clamp(s, -a.Shape.HalfExtents[i], a.Shape.HalfExtents[i])
	t = clamp(t, -b.Shape.HalfExtents[j], b.Shape.HalfExtents[j])

	ca := pa.Add(ea.Mul(s))
	cb := pb.Add(eb.Mul(t))
	return ca.Add(cb).Mul(0.5)
}

func signOf(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
