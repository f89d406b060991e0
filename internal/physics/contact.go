package physics

import rl "github.com/gen2brain/raylib-go/raylib"

// Contact is a touching pair found by the narrow phase. Normal points from A to B.
// Restitution and Friction may be changed by collide listeners before the solve.
type Contact struct {
	A, B        *Body
	Normal      rl.Vector3
	Depth       float32
	Point       rl.Vector3
	Restitution float32
	Friction    float32
}

// CollideEvent is delivered to both bodies of a new contact.
type CollideEvent struct {
	Body    *Body
	Target  *Body
	Contact *Contact
}

// ContactMaterial holds the response parameters for a pair of materials.
type ContactMaterial struct {
	Restitution float32
	Friction    float32
}

type materialPair struct {
	a, b *Material
}

func makeMaterialPair(a, b *Material) materialPair {
	if b == nil || (a != nil && a.Name > b.Name) {
		a, b = b, a
	}
	return materialPair{a: a, b: b}
}

// CollisionPair identifies two bodies regardless of order.
type CollisionPair struct {
	A, B uint64
}

func makePair(a, b *Body) CollisionPair {
	if a.ID > b.ID {
		return CollisionPair{A: b.ID, B: a.ID}
	}
	return CollisionPair{A: a.ID, B: b.ID}
}
