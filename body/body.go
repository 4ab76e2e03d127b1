package body

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Body represents one rigid body in the simulation. Position, Orientation,
// LinearMomentum and AngularMomentum are the primary state; R, Velocity,
// Omega and InvInertiaWorld are derived from them and refreshed after every
// state write (SyncPose / SyncMomentum).
//
// InvMass == 0 marks an immovable body (floor, walls). Immovable bodies
// ignore forces and impulses and keep zero velocity at all times.
type Body struct {
	// Stable identity, assigned once when the body joins a System.
	// The System's body slice is shuffled between ticks; ID is not.
	ID int

	// Primary state
	Position        mgl64.Vec3
	Orientation     mgl64.Quat
	LinearMomentum  mgl64.Vec3
	AngularMomentum mgl64.Vec3

	// Derived state
	R               mgl64.Mat3 // world-from-body rotation, computed from Orientation
	Velocity        mgl64.Vec3 // LinearMomentum * InvMass
	Omega           mgl64.Vec3 // InvInertiaWorld * AngularMomentum
	InvInertiaWorld mgl64.Mat3 // R * InvInertiaBody * Rᵀ

	InvMass        float64
	InvInertiaBody mgl64.Mat3

	// Material
	Restitution float64 // 0 = no rebound, 1 = perfect restitution
	Friction    float64 // Coulomb coefficient, >= 0

	// Accumulators, cleared each tick
	Force  mgl64.Vec3
	Torque mgl64.Vec3

	Shape *Box

	// Cosmetic color for the renderer, components in [0,1].
	Color mgl64.Vec3

	// Spawn state restored by Reset.
	constructPosition    mgl64.Vec3
	constructOrientation mgl64.Quat
	constructInvMass     float64

	// Contacts lists the supports this body rests upon. Rewritten from
	// scratch on every contact-graph build; owned by the System during a
	// tick.
	Contacts []ContactInfo

	// Tarjan scratch, reset at the start of each ordering pass.
	TarjanIndex int
	Lowlink     int
	OnStack     bool
	SCC         int
}

// New creates a body at the given pose. invMass == 0 makes the body
// immovable. The spawn pose and inverse mass are remembered for Reset.
func New(position mgl64.Vec3, orientation mgl64.Quat, shape *Box, restitution, friction, invMass float64) *Body {
	b := &Body{
		Position:             position,
		Orientation:          orientation.Normalize(),
		InvMass:              invMass,
		Restitution:          restitution,
		Friction:             friction,
		Shape:                shape,
		constructPosition:    position,
		constructOrientation: orientation.Normalize(),
		constructInvMass:     invMass,
	}
	b.InvInertiaBody = shape.InverseInertia(invMass)
	b.SyncPose()
	b.SyncMomentum()
	return b
}

// SyncPose refreshes R, InvInertiaWorld and Omega after a write to Position
// or Orientation. The orientation is renormalized so |q| stays 1.
func (b *Body) SyncPose() {
	b.Orientation = b.Orientation.Normalize()
	b.R = b.Orientation.Mat4().Mat3()
	b.InvInertiaWorld = b.R.Mul3(b.InvInertiaBody).Mul3(b.R.Transpose())
	b.Omega = b.InvInertiaWorld.Mul3x1(b.AngularMomentum)
}

// SyncMomentum refreshes Velocity and Omega after a write to the momenta.
func (b *Body) SyncMomentum() {
	b.Velocity = b.LinearMomentum.Mul(b.InvMass)
	b.Omega = b.InvInertiaWorld.Mul3x1(b.AngularMomentum)
}

// IntegrateVelocity advances the momenta by the accumulated force and torque
// over dt (semi-implicit Euler, velocity half). No-op for immovable bodies.
func (b *Body) IntegrateVelocity(dt float64) {
	if b.InvMass == 0 {
		return
	}
	b.LinearMomentum = b.LinearMomentum.Add(b.Force.Mul(dt))
	b.AngularMomentum = b.AngularMomentum.Add(b.Torque.Mul(dt))
	b.SyncMomentum()
}

// IntegratePosition advances the pose by the current velocities over dt
// (semi-implicit Euler, position half). The orientation follows the spinor
// ODE q̇ = ½ω·q and is renormalized. No-op for immovable bodies.
func (b *Body) IntegratePosition(dt float64) {
	if b.InvMass == 0 {
		return
	}
	b.Position = b.Position.Add(b.Velocity.Mul(dt))

	omegaQuat := mgl64.Quat{V: b.Omega, W: 0}
	qDot := omegaQuat.Mul(b.Orientation).Scale(0.5)
	b.Orientation = b.Orientation.Add(qDot.Scale(dt))
	b.SyncPose()
}

// ClearForces zeroes the force and torque accumulators.
func (b *Body) ClearForces() {
	b.Force = mgl64.Vec3{}
	b.Torque = mgl64.Vec3{}
}

// AddForce accumulates a force through the center of mass. Immovable bodies
// ignore it.
func (b *Body) AddForce(force mgl64.Vec3) {
	if b.InvMass == 0 {
		return
	}
	b.Force = b.Force.Add(force)
}

// VelocityAt returns the velocity of the body material at a world point.
func (b *Body) VelocityAt(point mgl64.Vec3) mgl64.Vec3 {
	return b.Velocity.Add(b.Omega.Cross(point.Sub(b.Position)))
}

// Mass returns the body mass, or 0 for immovable bodies (whose mass is
// effectively infinite but never enters any formula).
func (b *Body) Mass() float64 {
	if b.InvMass == 0 {
		return 0
	}
	return 1.0 / b.InvMass
}

// Reset restores the spawn pose and inverse mass, zeroes momenta, forces and
// contacts, and refreshes the derived state.
func (b *Body) Reset() {
	b.Position = b.constructPosition
	b.Orientation = b.constructOrientation
	b.InvMass = b.constructInvMass
	b.LinearMomentum = mgl64.Vec3{}
	b.AngularMomentum = mgl64.Vec3{}
	b.ClearForces()
	b.Contacts = b.Contacts[:0]
	b.SyncPose()
	b.SyncMomentum()
}
