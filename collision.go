package ballast

import (
	"github.com/dtholl/ballast/constraint"
	"github.com/dtholl/ballast/sat"
)

// collisionDetect scans all unordered pairs on the tentatively advanced
// state and applies restitution impulses to pairs approaching faster than
// the collide threshold. Each impulse is applied to the live momenta (so
// later pairs in the same pass see it) and mirrored into the pre-tick
// momentum snapshot, which the tick loop restores before re-integrating.
//
// Reports whether any impulse was applied.
func (s *System) collisionDetect() bool {
	applied := false
	for i := 0; i < len(s.bodies); i++ {
		for j := i + 1; j < len(s.bodies); j++ {
			a, b := s.bodies[i], s.bodies[j]
			if a.InvMass == 0 && b.InvMass == 0 {
				continue
			}
			c, ok := sat.Intersect(a, b)
			if !ok {
				continue
			}
			s.Events.markPair(a, b)

			impulse, ok := constraint.Resolve(a, b, c.Point, c.Normal,
				constraint.Restitution(a, b), constraint.Friction(a, b),
				collideThreshold, false, false)
			if !ok {
				continue
			}
			applied = true

			// Mirror into the snapshot so the post-loop rewind keeps
			// the impulse.
			ra := c.Point.Sub(a.Position)
			rb := c.Point.Sub(b.Position)
			if a.InvMass != 0 {
				s.prevMom[i].linear = s.prevMom[i].linear.Sub(impulse)
				s.prevMom[i].angular = s.prevMom[i].angular.Sub(ra.Cross(impulse))
			}
			if b.InvMass != 0 {
				s.prevMom[j].linear = s.prevMom[j].linear.Add(impulse)
				s.prevMom[j].angular = s.prevMom[j].angular.Add(rb.Cross(impulse))
			}
		}
	}
	return applied
}
