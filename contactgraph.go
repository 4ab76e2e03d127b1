package ballast

import (
	"github.com/dtholl/ballast/body"
	"github.com/dtholl/ballast/constraint"
	"github.com/dtholl/ballast/sat"
)

// createContactGraph rebuilds every body's support list and re-derives the
// bottom-up ordering.
//
// Each movable body is probed in isolation: it alone is advanced one
// timestep (including gravity when initial is true, i.e. before the tick's
// velocity integrate has run) while all other bodies stay put. Whatever it
// then intersects is a support — resting contacts are often sub-tolerance in
// the fully advanced world, but isolating one body's motion exposes them
// unambiguously. The probe state is discarded afterwards.
func (s *System) createContactGraph(dt float64, initial bool) {
	for _, b := range s.bodies {
		b.Contacts = b.Contacts[:0]
	}

	for i, b := range s.bodies {
		if b.InvMass == 0 {
			continue
		}

		savedPose := pose{b.Position, b.Orientation}
		savedMom := momentum{b.LinearMomentum, b.AngularMomentum}

		if initial {
			b.IntegrateVelocity(dt)
		}
		b.IntegratePosition(dt)

		for k, other := range s.bodies {
			if k == i {
				continue
			}
			if c, ok := sat.Intersect(other, b); ok {
				b.Contacts = append(b.Contacts, body.ContactInfo{
					Other:  k,
					Point:  c.Point,
					Normal: c.Normal,
				})
				s.Events.markPair(other, b)
			}
		}

		b.Position = savedPose.position
		b.Orientation = savedPose.orientation
		b.LinearMomentum = savedMom.linear
		b.AngularMomentum = savedMom.angular
		b.SyncPose()
		b.SyncMomentum()
	}

	s.topologicalTarjan()
}

// contactDetect walks the bodies bottom-up (supports before supportees) and
// cancels any remaining approach velocity at each support contact. Resting
// contacts never bounce, so restitution is zero here.
//
// With shock set, the body on the lower strongly-connected component of a
// pair is treated as immovable for that resolution, which stops force
// cycling inside tall stacks.
//
// Reports whether any impulse was applied.
func (s *System) contactDetect(shock bool) bool {
	applied := false
	for _, b := range s.topSorted {
		if b.InvMass == 0 {
			continue
		}
		for _, c := range b.Contacts {
			support := s.bodies[c.Other]
			supportFixed := shock && support.SCC < b.SCC
			_, ok := constraint.Resolve(support, b, c.Point, c.Normal,
				0, constraint.Friction(support, b),
				contactThreshold, supportFixed, false)
			if ok {
				applied = true
			}
		}
	}
	return applied
}

// MaxPenetration returns the deepest pairwise penetration in the current
// state, for diagnostics and tests.
func (s *System) MaxPenetration() float64 {
	worst := 0.0
	for i := 0; i < len(s.bodies); i++ {
		for j := i + 1; j < len(s.bodies); j++ {
			if c, ok := sat.Intersect(s.bodies[i], s.bodies[j]); ok && c.Depth > worst {
				worst = c.Depth
			}
		}
	}
	return worst
}
