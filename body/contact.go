package body

import (
	"github.com/go-gl/mathgl/mgl64"
)

// ContactInfo is one edge of the rest-on graph: the body holding it rests
// upon the body at index Other in the System's body slice. Storing the index
// rather than a pointer keeps the record valid across the between-tick
// shuffle, because contact lists are rebuilt after every reordering.
type ContactInfo struct {
	Other  int        // index of the supporting body
	Point  mgl64.Vec3 // contact location in world space
	Normal mgl64.Vec3 // unit normal, pointing from the support toward this body
}
