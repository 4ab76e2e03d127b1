// Package ballast simulates piles and stacks of rigid boxes. A System owns a
// set of bodies and advances them tick by tick under gravity, resolving
// collisions with impulses and stabilizing resting contacts bottom-up along
// the rest-on graph.
package ballast

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/dtholl/ballast/body"
)

const (
	// MaxCollisionPasses bounds the per-tick collision resolve loop.
	MaxCollisionPasses = 5
	// MaxContactPasses bounds the per-tick resting-contact loop.
	MaxContactPasses = 10
	// MaxShockPasses bounds the shock-propagation passes run after the
	// contact loop saturates.
	MaxShockPasses = 1

	// DefaultDt is the fixed simulation timestep in seconds.
	DefaultDt = 0.005

	// Epsilon is the general geometric tolerance.
	Epsilon = 1e-6

	// collideThreshold is the approach speed above which a pair counts as
	// colliding and receives a restitution impulse.
	collideThreshold = 1e-3
	// contactThreshold is the approach speed above which a resting
	// contact is corrected.
	contactThreshold = 1e-4

	// shuffleSwaps is how many random swaps decorrelate the body order
	// between ticks.
	shuffleSwaps = 15
)

type pose struct {
	position    mgl64.Vec3
	orientation mgl64.Quat
}

type momentum struct {
	linear  mgl64.Vec3
	angular mgl64.Vec3
}

// System owns the bodies of one simulated world. All methods must be called
// from a single goroutine; a tick runs to completion before returning.
type System struct {
	bodies  []*body.Body
	Gravity mgl64.Vec3

	Events Events

	rng *rand.Rand

	// Tick scratch, reused across ticks.
	prevPose []pose
	prevMom  []momentum

	// Tarjan scratch.
	topSorted []*body.Body
	stack     []*body.Body
	nextIndex int
	sccCount  int
}

// NewSystem returns an empty system with standard gravity. The seed drives
// the between-tick body shuffle; a fixed seed makes runs reproducible.
func NewSystem(seed int64) *System {
	return &System{
		Gravity: mgl64.Vec3{0, -9.81, 0},
		Events:  newEvents(),
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// AddBody hands a body to the system. The system assigns its stable ID and
// owns it from then on.
func (s *System) AddBody(b *body.Body) {
	b.ID = len(s.bodies)
	s.bodies = append(s.bodies, b)
}

// Bodies returns the body slice for read-only iteration (rendering). The
// order changes between ticks.
func (s *System) Bodies() []*body.Body {
	return s.bodies
}

// NumBodies returns the number of bodies in the system.
func (s *System) NumBodies() int {
	return len(s.bodies)
}

// Reset restores every body to its spawn state and zeroes all momenta.
func (s *System) Reset() {
	for _, b := range s.bodies {
		b.Reset()
	}
}

// Step advances the world by dt:
//
//  1. shuffle a few body indices to decorrelate iteration order
//  2. snapshot pose and momentum
//  3. tentative integrate under gravity, then up to MaxCollisionPasses+1
//     passes of impulse resolution, rewinding the pose and re-integrating
//     after each of the first MaxCollisionPasses
//  4. rebuild the rest-on graph by per-body probing, order it bottom-up
//     (Tarjan), and run up to MaxContactPasses+1 passes of resting-contact
//     resolution, with one shock-propagation pass if the first
//     MaxContactPasses all applied impulses
//  5. final position integrate
func (s *System) Step(dt float64) {
	if len(s.bodies) == 0 {
		return
	}

	s.shuffle()
	s.savePose()
	s.saveMomentum()

	// Tentative advance to x', v'.
	s.zeroForces()
	s.addGravity()
	s.integrateVelocities(dt)
	s.integratePositions(dt)

	// Collision loop: impulses accumulate in the momentum snapshot while
	// the pose is rewound each pass.
	for count := 0; s.collisionDetect() && count < MaxCollisionPasses; count++ {
		s.restorePose()
		s.restoreMomentum()
		s.zeroForces()
		s.addGravity()
		s.integrateVelocities(dt)
		s.integratePositions(dt)
	}

	// Back to pre-tick pose; momenta now carry the collision impulses.
	s.restorePose()
	s.restoreMomentum()
	s.zeroForces()
	s.addGravity()

	// Contact loop over the rest-on graph.
	s.createContactGraph(dt, true)
	s.integrateVelocities(dt)

	count := 0
	for ; s.contactDetect(false) && count < MaxContactPasses; count++ {
		s.createContactGraph(dt, false)
	}
	s.createContactGraph(dt, false)
	if count == MaxContactPasses {
		for pass := 0; pass < MaxShockPasses; pass++ {
			if !s.contactDetect(true) {
				break
			}
			s.createContactGraph(dt, false)
		}
	}

	s.integratePositions(dt)

	s.Events.flush()
}

// shuffle swaps a handful of movable bodies in the iteration order so no
// pair is systematically resolved first. Contact lists are rebuilt after the
// shuffle, so stored indices stay valid.
func (s *System) shuffle() {
	n := len(s.bodies)
	for i := 0; i < shuffleSwaps; i++ {
		j := s.rng.Intn(n)
		k := s.rng.Intn(n)
		if s.bodies[j].InvMass > 0 && s.bodies[k].InvMass > 0 {
			s.bodies[j], s.bodies[k] = s.bodies[k], s.bodies[j]
		}
	}
}

func (s *System) zeroForces() {
	for _, b := range s.bodies {
		b.ClearForces()
	}
}

func (s *System) addGravity() {
	for _, b := range s.bodies {
		if b.InvMass == 0 {
			continue
		}
		b.AddForce(s.Gravity.Mul(b.Mass()))
	}
}

func (s *System) integrateVelocities(dt float64) {
	for _, b := range s.bodies {
		b.IntegrateVelocity(dt)
	}
}

func (s *System) integratePositions(dt float64) {
	for _, b := range s.bodies {
		b.IntegratePosition(dt)
	}
}

func (s *System) savePose() {
	s.prevPose = s.prevPose[:0]
	for _, b := range s.bodies {
		s.prevPose = append(s.prevPose, pose{b.Position, b.Orientation})
	}
}

func (s *System) restorePose() {
	for i, b := range s.bodies {
		b.Position = s.prevPose[i].position
		b.Orientation = s.prevPose[i].orientation
		b.SyncPose()
	}
}

func (s *System) saveMomentum() {
	s.prevMom = s.prevMom[:0]
	for _, b := range s.bodies {
		s.prevMom = append(s.prevMom, momentum{b.LinearMomentum, b.AngularMomentum})
	}
}

func (s *System) restoreMomentum() {
	for i, b := range s.bodies {
		b.LinearMomentum = s.prevMom[i].linear
		b.AngularMomentum = s.prevMom[i].angular
		b.SyncMomentum()
	}
}
