// Package constraint applies contact impulses between rigid body pairs. The
// same routine serves the collision resolver (with restitution) and the
// resting-contact solver (restitution zero).
package constraint

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/dtholl/ballast/body"
)

const (
	// minDenominator drops impulses whose effective-mass denominator is
	// degenerate instead of dividing by a tiny value.
	minDenominator = 1e-12

	// minTangentSpeed is the smallest tangential speed worth applying
	// friction against.
	minTangentSpeed = 1e-9
)

// Restitution combines the restitution coefficients of a pair. The less
// bouncy material wins.
func Restitution(a, b *body.Body) float64 {
	return math.Min(a.Restitution, b.Restitution)
}

// Friction combines the friction coefficients of a pair. The slicker
// material wins.
func Friction(a, b *body.Body) float64 {
	return math.Min(a.Friction, b.Friction)
}

// Resolve applies a normal impulse with Coulomb friction at a single contact
// point between a and b. The normal must be unit length and point from a
// toward b. An impulse is applied only when the pair approaches faster than
// threshold along the normal.
//
// aFixed and bFixed temporarily treat a movable body as immovable for this
// resolution only (shock propagation); the body's InvMass is left untouched.
//
// Returns the total impulse applied to b (a receives the negation) and
// whether any impulse was applied.
func Resolve(a, b *body.Body, point, normal mgl64.Vec3, restitution, friction, threshold float64, aFixed, bFixed bool) (mgl64.Vec3, bool) {
	invMassA, invInertiaA := effectiveMass(a, aFixed)
	invMassB, invInertiaB := effectiveMass(b, bFixed)
	if invMassA == 0 && invMassB == 0 {
		return mgl64.Vec3{}, false
	}

	ra := point.Sub(a.Position)
	rb := point.Sub(b.Position)

	relVel := b.Velocity.Add(b.Omega.Cross(rb)).Sub(a.Velocity.Add(a.Omega.Cross(ra)))
	normalVel := relVel.Dot(normal)
	if normalVel >= -threshold {
		return mgl64.Vec3{}, false
	}

	denom := effectiveInertia(invMassA, invMassB, invInertiaA, invInertiaB, ra, rb, normal)
	if denom < minDenominator {
		return mgl64.Vec3{}, false
	}

	jn := -(1 + restitution) * normalVel / denom
	impulse := normal.Mul(jn)

	// Coulomb friction along the tangential component of the relative
	// velocity, clamped to the friction cone |jt| <= friction*jn.
	tangentVel := relVel.Sub(normal.Mul(normalVel))
	tangentSpeed := tangentVel.Len()
	if tangentSpeed > minTangentSpeed {
		tangent := tangentVel.Mul(1 / tangentSpeed)
		denomT := effectiveInertia(invMassA, invMassB, invInertiaA, invInertiaB, ra, rb, tangent)
		if denomT >= minDenominator {
			jt := -tangentSpeed / denomT
			if -jt > friction*jn {
				jt = -friction * jn
			}
			impulse = impulse.Add(tangent.Mul(jt))
		}
	}

	if !aFixed && a.InvMass != 0 {
		a.LinearMomentum = a.LinearMomentum.Sub(impulse)
		a.AngularMomentum = a.AngularMomentum.Sub(ra.Cross(impulse))
		a.SyncMomentum()
	}
	if !bFixed && b.InvMass != 0 {
		b.LinearMomentum = b.LinearMomentum.Add(impulse)
		b.AngularMomentum = b.AngularMomentum.Add(rb.Cross(impulse))
		b.SyncMomentum()
	}
	return impulse, true
}

// effectiveMass returns the inverse mass and world inverse inertia to use in
// the impulse denominator, zeroed for bodies treated as fixed.
func effectiveMass(b *body.Body, fixed bool) (float64, mgl64.Mat3) {
	if fixed || b.InvMass == 0 {
		return 0, mgl64.Mat3{}
	}
	return b.InvMass, b.InvInertiaWorld
}

// effectiveInertia is the scalar denominator of the impulse formula along
// direction dir:
//
//	invMassA + invMassB + dir·((Ia⁻¹(ra×dir))×ra + (Ib⁻¹(rb×dir))×rb)
func effectiveInertia(invMassA, invMassB float64, invInertiaA, invInertiaB mgl64.Mat3, ra, rb, dir mgl64.Vec3) float64 {
	angularA := invInertiaA.Mul3x1(ra.Cross(dir)).Cross(ra)
	angularB := invInertiaB.Mul3x1(rb.Cross(dir)).Cross(rb)
	return invMassA + invMassB + dir.Dot(angularA.Add(angularB))
}
