package ballast

import (
	"github.com/dtholl/ballast/body"
)

// topologicalTarjan orders the bodies bottom-up along the rest-on graph
// using Tarjan's strongly-connected-components algorithm. Every body ends up
// in topSorted after all supports it transitively rests upon; bodies of the
// same component are contiguous and share an SCC id. Components complete in
// dependency order, so supports always carry the smaller id.
func (s *System) topologicalTarjan() {
	for _, b := range s.bodies {
		b.TarjanIndex = -1
		b.Lowlink = 0
		b.OnStack = false
		b.SCC = -1
	}
	s.topSorted = s.topSorted[:0]
	s.stack = s.stack[:0]
	s.nextIndex = 0
	s.sccCount = 0

	for _, b := range s.bodies {
		if b.TarjanIndex < 0 {
			s.strongConnect(b)
		}
	}
}

func (s *System) strongConnect(v *body.Body) {
	v.TarjanIndex = s.nextIndex
	v.Lowlink = s.nextIndex
	s.nextIndex++
	s.stack = append(s.stack, v)
	v.OnStack = true

	for _, c := range v.Contacts {
		w := s.bodies[c.Other]
		if w.TarjanIndex < 0 {
			s.strongConnect(w)
			v.Lowlink = min(v.Lowlink, w.Lowlink)
		} else if w.OnStack {
			v.Lowlink = min(v.Lowlink, w.TarjanIndex)
		}
	}

	if v.Lowlink == v.TarjanIndex {
		for {
			w := s.stack[len(s.stack)-1]
			s.stack = s.stack[:len(s.stack)-1]
			w.OnStack = false
			w.SCC = s.sccCount
			s.topSorted = append(s.topSorted, w)
			if w == v {
				break
			}
		}
		s.sccCount++
	}
}
