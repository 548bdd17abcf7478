package world

import "github.com/san-kum/rigid2d/internal/vmath"

// Manifold describes one resolved contact between bodies A and B, given as
// indices into the world's body list. Normal points from A toward B.
type Manifold struct {
	A, B         int
	Normal       vmath.Vector
	Depth        float64
	Contact1     vmath.Vector
	Contact2     vmath.Vector
	ContactCount int
}

// Contacts returns the active contact points. The returned slice is freshly
// allocated.
func (m Manifold) Contacts() []vmath.Vector {
	switch m.ContactCount {
	case 1:
		return []vmath.Vector{m.Contact1}
	case 2:
		return []vmath.Vector{m.Contact1, m.Contact2}
	}
	return nil
}
