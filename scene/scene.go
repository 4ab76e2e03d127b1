// Package scene builds the built-in demo worlds: a floor plus boxes arranged
// into piles, stacks, slides and ramps. Sizes are full extents; colors are
// cosmetic and passed through to the renderer.
package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/dtholl/ballast"
	"github.com/dtholl/ballast/body"
)

// Count is the number of built-in scenes.
const Count = 8

// Build returns the bodies of the built-in scene with the given index.
// Indices outside [0, Count) fall back to the small pile.
func Build(index int) []*body.Body {
	switch index {
	case 0:
		return singleBox()
	case 1:
		return slide()
	case 2:
		return smallPile()
	case 3:
		return highPile()
	case 4:
		return bigPile()
	case 5:
		return stack()
	case 6:
		return combo()
	case 7:
		return tallStack()
	default:
		return smallPile()
	}
}

func newBody(position mgl64.Vec3, orientation mgl64.Quat, size, color mgl64.Vec3, restitution, friction, invMass float64) *body.Body {
	b := body.New(position, orientation, body.NewBox(size.Mul(0.5)), restitution, friction, invMass)
	b.Color = color
	return b
}

func ident() mgl64.Quat {
	return mgl64.QuatIdent()
}

func aboutZ(angle float64) mgl64.Quat {
	return mgl64.QuatRotate(angle, mgl64.Vec3{0, 0, 1})
}

var (
	yellow = mgl64.Vec3{1, 1, 0.5}
	green  = mgl64.Vec3{0.1, 0.7, 0.1}
)

// singleBox drops one unit box onto a thin floor.
func singleBox() []*body.Body {
	return []*body.Body{
		newBody(mgl64.Vec3{0, -0.5, 0}, ident(), mgl64.Vec3{100, 1, 100}, yellow, 0.5, 0.5, 0),
		newBody(mgl64.Vec3{0, 5, 0}, ident(), mgl64.Vec3{1, 1, 1}, green, 1.0, 0.5, 1),
	}
}

// slide places a box high above a 30° incline. Friction holds it in place
// once it lands.
func slide() []*body.Body {
	const rotAng = math.Pi / 6.0
	sr, cr := math.Sin(rotAng), math.Cos(rotAng)
	center := mgl64.Vec3{0, -10, 0}

	boxPos := center.Add(mgl64.Vec3{
		10*(cr-sr) - 0.5*(sr+cr) + 1e7*ballast.Epsilon,
		10*(sr+cr) + 0.5*(cr-sr) + 1e7*ballast.Epsilon,
		0,
	})

	return []*body.Body{
		newBody(center, aboutZ(rotAng), mgl64.Vec3{20, 20, 20}, yellow, 1.0, 0.7, 0),
		newBody(boxPos, aboutZ(rotAng), mgl64.Vec3{1, 1, 1}, green, 1.0, 1.0, 1),
	}
}

// smallPile drops a handful of mixed boxes from staggered heights.
func smallPile() []*body.Body {
	return []*body.Body{
		newBody(mgl64.Vec3{0, -50, 0}, ident(), mgl64.Vec3{100, 100, 100}, yellow, 0.6, 0.5, 0),

		newBody(mgl64.Vec3{-4, 3, 0.5}, ident(), mgl64.Vec3{2, 1, 1}, green, 1.0, 0.5, 0.5),
		newBody(mgl64.Vec3{-2.2, 5.5, 1}, ident(), mgl64.Vec3{2, 1, 1}, green, 1.0, 0.5, 0.5),
		newBody(mgl64.Vec3{-1, 3, 0.5}, aboutZ(math.Pi/8), mgl64.Vec3{1, 1, 1}, green, 1.0, 0.5, 1),
		newBody(mgl64.Vec3{-1.5, 1.7, 0}, aboutZ(math.Pi/4), mgl64.Vec3{1, 1, 1}, green, 1.0, 0.5, 1),
		newBody(mgl64.Vec3{-5, 2, 2.5}, ident(), mgl64.Vec3{2, 1, 1}, green, 1.0, 0.5, 0.5),
		newBody(mgl64.Vec3{-3.2, 6.5, -1}, ident(), mgl64.Vec3{2, 1, 1}, green, 1.0, 0.5, 0.5),
		newBody(mgl64.Vec3{-2, 3, 1.5}, aboutZ(math.Pi/8), mgl64.Vec3{1, 1, 1}, green, 1.0, 0.5, 1),
		newBody(mgl64.Vec3{-3.5, 4.7, 0}, aboutZ(math.Pi/4), mgl64.Vec3{1, 1, 1}, green, 1.0, 0.5, 1),
	}
}

// highPile repeats the small pile's drop pattern over a grid of cells high
// above a huge floor.
func highPile() []*body.Body {
	bodies := []*body.Body{
		newBody(mgl64.Vec3{0, -500, 0}, ident(), mgl64.Vec3{1000, 1000, 1000}, yellow, 0.6, 0.5, 0),
	}

	const iter = 2
	for i := 0; i < iter; i++ {
		for k := 0; k < iter; k++ {
			for z := 0; z < iter; z++ {
				fi, fk, fz := float64(i), float64(k), float64(z)
				yBase := 18*iter + (fi-2)*18
				xBase := (fk - 2) * 7.5
				zBase := (fz - 2) * 15

				bodies = append(bodies,
					newBody(mgl64.Vec3{-(4 + xBase), 3 + yBase, 0.5 + zBase}, ident(), mgl64.Vec3{2, 1, 1}, green, 1.0, 0.5, 0.5),
					newBody(mgl64.Vec3{-(1.2 + xBase), 5 + yBase, zBase}, ident(), mgl64.Vec3{2, 1, 1}, green, 1.0, 0.5, 0.5),
					newBody(mgl64.Vec3{-xBase, 3 + yBase, 0.5 + zBase}, aboutZ(math.Pi/8), mgl64.Vec3{1, 1, 1}, green, 1.0, 0.5, 1),
					newBody(mgl64.Vec3{-(1.5 + xBase), 1.7 + yBase, zBase}, aboutZ(math.Pi/4), mgl64.Vec3{1, 1, 1}, green, 1.0, 0.5, 1),
					newBody(mgl64.Vec3{-(5 + xBase), 2 + yBase, 2.5 + zBase}, ident(), mgl64.Vec3{2, 1, 1}, green, 1.0, 0.5, 0.5),
					newBody(mgl64.Vec3{-(3.2 + xBase), 6.5 + yBase, zBase}, ident(), mgl64.Vec3{2, 1, 1}, green, 1.0, 0.5, 0.5),
					newBody(mgl64.Vec3{-(2 + xBase), 3 + yBase, 1.5 + zBase}, aboutZ(math.Pi/8), mgl64.Vec3{1, 1, 1}, green, 1.0, 0.5, 1),
					newBody(mgl64.Vec3{-(3.5 + xBase), 4.7 + yBase, zBase}, aboutZ(math.Pi/4), mgl64.Vec3{1, 1, 1}, green, 1.0, 0.5, 1),
				)
			}
		}
	}
	return bodies
}

// bigPile drops boxes of several sizes and masses onto each other.
func bigPile() []*body.Body {
	return []*body.Body{
		newBody(mgl64.Vec3{0, -50, 0}, ident(), mgl64.Vec3{100, 100, 100}, yellow, 0.3, 0.5, 0),

		newBody(mgl64.Vec3{2.5, 5, 1}, aboutZ(math.Pi/6), mgl64.Vec3{1, 1, 1}, mgl64.Vec3{0.1, 0.8, 0.7}, 0.7, 0.5, 1),
		newBody(mgl64.Vec3{2, 4.5, -1}, ident(), mgl64.Vec3{1, 1, 1}, mgl64.Vec3{0.7, 0, 0.4}, 0.7, 0.5, 1),
		newBody(mgl64.Vec3{3.3, 4.5, -0.5}, ident(), mgl64.Vec3{1, 1, 1}, mgl64.Vec3{1, 0.4, 0.1}, 0.7, 0.5, 1),
		newBody(mgl64.Vec3{2.5, 8, 1}, aboutZ(math.Pi/6), mgl64.Vec3{1, 1, 1}, mgl64.Vec3{0, 0.4, 0.2}, 0.7, 0.5, 1),
		newBody(mgl64.Vec3{2, 7, -1}, mgl64.QuatRotate(math.Pi/6, mgl64.Vec3{0, 1, 1}.Normalize()), mgl64.Vec3{1, 1, 1}, mgl64.Vec3{0, 0.1, 0.7}, 0.7, 0.5, 1),
		newBody(mgl64.Vec3{3.3, 7.5, -0.5}, ident(), mgl64.Vec3{1, 1, 1}, mgl64.Vec3{0.3, 0.3, 0.3}, 0.7, 0.5, 1),
		newBody(mgl64.Vec3{1, 3.5, 0}, ident(), mgl64.Vec3{2, 1, 3}, green, 0.7, 0.5, 1.0/6.0),
		newBody(mgl64.Vec3{2, 1.5, 0}, ident(), mgl64.Vec3{2, 2, 2}, green, 0.7, 0.5, 0.125),
		newBody(mgl64.Vec3{3, 6, 0}, aboutZ(math.Pi/2.5), mgl64.Vec3{1, 2, 2}, green, 0.7, 0.5, 0.25),
	}
}

// stack drops boxes onto a thin plank balanced on a tall column, with one
// heavy cube falling from high up.
func stack() []*body.Body {
	return []*body.Body{
		newBody(mgl64.Vec3{0, -100, 0}, ident(), mgl64.Vec3{200, 200, 200}, yellow, 0.3, 0.5, 0),

		newBody(mgl64.Vec3{2.5, 9.5, 2.5}, ident(), mgl64.Vec3{1, 1, 1}, mgl64.Vec3{0.1, 0.8, 0.7}, 0.4, 0.5, 1),
		newBody(mgl64.Vec3{2, 10.7, 1}, ident(), mgl64.Vec3{1, 1, 1}, mgl64.Vec3{0.7, 0, 0.4}, 0.4, 0.5, 1),
		newBody(mgl64.Vec3{2.3, 9.5, 1}, ident(), mgl64.Vec3{1, 1, 1}, mgl64.Vec3{1, 0.4, 0.1}, 0.4, 0.5, 1),
		newBody(mgl64.Vec3{1.2, 9.5, 1}, ident(), mgl64.Vec3{1, 1, 1}, mgl64.Vec3{0.6, 0.4, 0.4}, 0.4, 0.5, 1),
		newBody(mgl64.Vec3{2.5, 9.5, -1}, ident(), mgl64.Vec3{1.5, 1.5, 1.5}, mgl64.Vec3{0, 0.4, 0.2}, 0.7, 0.5, 1.0/3.375),
		newBody(mgl64.Vec3{2, 50, -4.5}, ident(), mgl64.Vec3{2, 2, 2}, mgl64.Vec3{0.3, 0.3, 0.3}, 0.7, 0.5, 0.125),
		newBody(mgl64.Vec3{2, 8.5, -1}, ident(), mgl64.Vec3{4, 0.3, 10}, green, 0.4, 0.5, 1.0/6.0),
		newBody(mgl64.Vec3{2, 4.1, 0}, ident(), mgl64.Vec3{2, 8, 2}, green, 0.4, 0.5, 1.0/32.0),
	}
}

// combo funnels two groups of boxes down opposing 45° ramps onto the floor.
func combo() []*body.Body {
	s2 := math.Sqrt2
	center := mgl64.Vec3{5, 10, 0}
	// The vertical spacing carries a tiny slack so stacked boxes start
	// separated rather than touching.
	yScale := 1 + 100*ballast.Epsilon

	at := func(y, x, z float64) mgl64.Vec3 {
		return center.Add(mgl64.Vec3{x, y * yScale, z})
	}

	right := mgl64.Vec3{0.1, 0.7, 0.1}
	left := mgl64.Vec3{1, 0.7, 0.1}
	rampY := -(3 + 5*s2 - 14.75/s2)
	lift := 5 * (s2 - 1)

	bodies := []*body.Body{
		newBody(at(-110, 0, 0), ident(), mgl64.Vec3{200, 200, 200}, yellow, 0.4, 0.5, 0),
		newBody(at(rampY, 3-4.75/s2, 0), aboutZ(math.Pi/4), mgl64.Vec3{10, 0.5, 10}, mgl64.Vec3{0.7, 0, 0}, 0.4, 0.5, 0),
		newBody(at(rampY, -(10 + 3.25/s2), 0), aboutZ(-math.Pi/4), mgl64.Vec3{10, 0.5, 10}, mgl64.Vec3{0, 0.2, 0.7}, 0.4, 0.5, 0),
	}

	rightBoxes := []struct {
		y, x, z float64
		size    mgl64.Vec3
	}{
		{lift + 2, -(0.5*s2 - 3), 2, mgl64.Vec3{1, 1, 1}},
		{lift + 0.7, -(0.5*s2 - 1.7), 1.5, mgl64.Vec3{1, 1, 1}},
		{lift + 1.7, -(0.5*s2 - 2.7), -2, mgl64.Vec3{1.7, 1, 1}},
		{lift + 0.5, -(0.5*s2 - 1.5), -1.5, mgl64.Vec3{1, 1, 1}},
		{lift + 2, -(0.5*s2 - 3), 0, mgl64.Vec3{1, 1, 1}},
		{lift + 1, -(0.5*s2 - 2), 0, mgl64.Vec3{1, 1, 1.5}},
		{lift + 2 + 3.5, -(0.5*s2 - 3), 2, mgl64.Vec3{1, 1, 1}},
		{lift + 1.7 + 3.5, -(0.5*s2 - 2.7), -2, mgl64.Vec3{1.7, 1, 1}},
		{lift + 2 + 3.5, -(0.5*s2 - 3), 0, mgl64.Vec3{1, 1, 1}},
	}
	for _, bx := range rightBoxes {
		bodies = append(bodies, newBody(at(bx.y, bx.x, bx.z), aboutZ(math.Pi/4), bx.size, right, 0.7, 0.5, 1))
	}

	leftBoxes := []struct {
		y, x, z float64
		size    mgl64.Vec3
	}{
		{lift + 2, -(3.5*s2 + 10), 2, mgl64.Vec3{1, 1, 1}},
		{lift + 1.5, -(3.5*s2 + 9.5), -1.5, mgl64.Vec3{1, 1, 1}},
		{lift + 0.8, -(3.5*s2 - 4.7 + 13.5), 2, mgl64.Vec3{1, 1.7, 1}},
		{lift + 0.5, -(3.5*s2 - 4.5 + 13), -1.5, mgl64.Vec3{1, 1, 1}},
		{lift + 2, -(3.5*s2 - 3 + 13), 0, mgl64.Vec3{1, 1, 1}},
		{lift + 1, -(3.5*s2 - 5 + 14), 0, mgl64.Vec3{1, 1, 1.5}},
		{lift + 1.5 + 3.5, -(3.5*s2 + 9.5), -1.5, mgl64.Vec3{1, 1, 1}},
		{lift + 0.8 + 3.5, -(3.5*s2 - 4.7 + 13.5), 2, mgl64.Vec3{1, 1.7, 1}},
		{lift + 1 + 3.5, -(3.5*s2 - 5 + 14), 0, mgl64.Vec3{1, 1, 1.5}},
	}
	for _, bx := range leftBoxes {
		bodies = append(bodies, newBody(at(bx.y, bx.x, bx.z), aboutZ(math.Pi/4), bx.size, left, 0.7, 0.5, 1))
	}

	return bodies
}

// tallStack stands three unit boxes on a thin floor with slight horizontal
// jitter and slack between them.
func tallStack() []*body.Body {
	bodies := []*body.Body{
		newBody(mgl64.Vec3{0, -0.5, 0}, ident(), mgl64.Vec3{200, 1, 200}, yellow, 0.3, 0.5, 0),
	}

	const boxHeight = 1.0
	slack := 10000 * ballast.Epsilon
	for i := 0; i < 3; i++ {
		fi := float64(i)
		y := (0.5+slack)*boxHeight + (boxHeight+slack)*fi
		x := float64(i%2) * 0.1
		color := mgl64.Vec3{
			float64(i%5)/15.0 + 0.67,
			float64(i%4)/12.0 + 0.67,
			float64(i%2)/6.0 + 0.67,
		}
		bodies = append(bodies, newBody(mgl64.Vec3{x, y, 0}, ident(), mgl64.Vec3{1, 1, 1}, color, 0.4, 0.5, 1))
	}
	return bodies
}
