package physics

import (
	"busic/internal/geom"
	"busic/internal/logging"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Spatial grid cell size - dynamic bodies within same or neighboring cells are checked
const CellSize = 5.0

// CellKey for spatial hashing
type CellKey struct {
	X, Y, Z int
}

func posToCell(pos rl.Vector3) CellKey {
	return CellKey{
		X: int(pos.X / CellSize),
		Y: int(pos.Y / CellSize),
		Z: int(pos.Z / CellSize),
	}
}

// Default world parameters.
const (
	DefaultTimeStep   = 1.0 / 60
	DefaultIterations = 10
)

type World struct {
	Gravity    rl.Vector3
	TimeStep   float32
	Iterations int

	// DefaultContact applies to material pairs without an explicit ContactMaterial.
	DefaultContact ContactMaterial

	Dynamics []*Body
	Statics  []*Body

	grid      map[CellKey][]*Body
	materials map[materialPair]ContactMaterial
	nextID    uint64

	// contact tracking so collide fires once per touch
	activeContacts  map[CollisionPair]bool
	currentContacts map[CollisionPair]bool
}

func NewWorld() *World {
	return &World{
		Gravity:         rl.Vector3{Y: -10},
		TimeStep:        DefaultTimeStep,
		Iterations:      DefaultIterations,
		DefaultContact:  ContactMaterial{Restitution: 0, Friction: 0.3},
		Dynamics:        make([]*Body, 0),
		Statics:         make([]*Body, 0),
		grid:            make(map[CellKey][]*Body),
		materials:       make(map[materialPair]ContactMaterial),
		activeContacts:  make(map[CollisionPair]bool),
		currentContacts: make(map[CollisionPair]bool),
	}
}

// AddContactMaterial registers the response used when bodies of materials a and b touch.
func (w *World) AddContactMaterial(a, b *Material, cm ContactMaterial) {
	w.materials[makeMaterialPair(a, b)] = cm
}

func (w *World) contactMaterial(a, b *Body) ContactMaterial {
	if cm, ok := w.materials[makeMaterialPair(a.Material, b.Material)]; ok {
		return cm
	}
	return w.DefaultContact
}

func (w *World) AddBody(b *Body) {
	if w.Contains(b) {
		return
	}
	w.nextID++
	b.ID = w.nextID
	if b.IsStatic() {
		w.Statics = append(w.Statics, b)
	} else {
		w.Dynamics = append(w.Dynamics, b)
	}
}

func (w *World) RemoveBody(b *Body) {
	w.Dynamics = removeBody(w.Dynamics, b)
	w.Statics = removeBody(w.Statics, b)
}

func (w *World) Contains(b *Body) bool {
	for _, list := range [][]*Body{w.Dynamics, w.Statics} {
		for _, other := range list {
			if other == b {
				return true
			}
		}
	}
	return false
}

func (w *World) BodyCount() int {
	return len(w.Dynamics) + len(w.Statics)
}

func removeBody(list []*Body, b *Body) []*Body {
	for i, other := range list {
		if other == b {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// reclassify moves bodies whose mass changed sign between the dynamic and static lists.
func (w *World) reclassify() {
	var moved []*Body
	dynamics := w.Dynamics[:0]
	for _, b := range w.Dynamics {
		if b.IsStatic() {
			moved = append(moved, b)
			continue
		}
		dynamics = append(dynamics, b)
	}
	statics := make([]*Body, 0, len(w.Statics)+len(moved))
	for _, b := range w.Statics {
		if !b.IsStatic() {
			dynamics = append(dynamics, b)
			continue
		}
		statics = append(statics, b)
	}
	w.Dynamics = dynamics
	w.Statics = append(statics, moved...)
}

// rebuildGrid clears and repopulates the spatial hash grid
func (w *World) rebuildGrid() {
	for k := range w.grid {
		delete(w.grid, k)
	}
	for _, b := range w.Dynamics {
		cell := posToCell(b.Position)
		w.grid[cell] = append(w.grid[cell], b)
	}
}

// neighbors returns all dynamic bodies in the same cell and the 26 neighboring cells
func (w *World) neighbors(b *Body) []*Body {
	cell := posToCell(b.Position)
	var result []*Body
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				key := CellKey{cell.X + dx, cell.Y + dy, cell.Z + dz}
				result = append(result, w.grid[key]...)
			}
		}
	}
	return result
}

// Step advances the simulation by one fixed time step.
func (w *World) Step() {
	dt := w.TimeStep
	w.reclassify()

	contacts := w.detect()
	w.dispatchCollide(contacts)

	// external forces
	for _, b := range w.Dynamics {
		invMass := 1 / b.Mass
		accel := rl.Vector3Add(w.Gravity, rl.Vector3Scale(b.Force, invMass))
		b.Velocity = rl.Vector3Add(b.Velocity, rl.Vector3Scale(accel, dt))
		b.AngularVelocity = rl.Vector3Add(b.AngularVelocity, rl.Vector3Scale(geom.Mul(b.Torque, invInertia(b)), dt))
	}

	for i := 0; i < w.Iterations; i++ {
		for _, c := range contacts {
			solveVelocity(c)
		}
	}

	for _, b := range w.Dynamics {
		b.Position = rl.Vector3Add(b.Position, rl.Vector3Scale(b.Velocity, dt))
		b.Quaternion = integrateRotation(b.Quaternion, b.AngularVelocity, dt)
		b.Force = rl.Vector3{}
		b.Torque = rl.Vector3{}
	}

	for _, c := range contacts {
		correctPosition(c)
	}
}

// detect runs the broad and narrow phases and returns every touching pair.
func (w *World) detect() []*Contact {
	w.currentContacts = make(map[CollisionPair]bool)
	w.rebuildGrid()

	var contacts []*Contact
	checked := make(map[CollisionPair]bool)
	for _, a := range w.Dynamics {
		for _, b := range w.neighbors(a) {
			if a == b {
				continue
			}
			pair := makePair(a, b)
			if checked[pair] {
				continue
			}
			checked[pair] = true
			if c, ok := collide(a, b); ok {
				contacts = append(contacts, c)
			}
		}
		for _, s := range w.Statics {
			if c, ok := collide(a, s); ok {
				contacts = append(contacts, c)
			}
		}
	}

	for _, c := range contacts {
		cm := w.contactMaterial(c.A, c.B)
		c.Restitution = cm.Restitution
		c.Friction = cm.Friction
	}
	return contacts
}

// dispatchCollide fires collide on both bodies of contacts that were not touching last step.
func (w *World) dispatchCollide(contacts []*Contact) {
	for _, c := range contacts {
		pair := makePair(c.A, c.B)
		w.currentContacts[pair] = true
		if w.activeContacts[pair] {
			continue
		}
		logging.L().WithField("a", c.A.ID).WithField("b", c.B.ID).Debug("physics: contact")
		c.A.collide.Invoke(&CollideEvent{Body: c.A, Target: c.B, Contact: c})
		c.B.collide.Invoke(&CollideEvent{Body: c.B, Target: c.A, Contact: c})
	}
	w.activeContacts = w.currentContacts
}

func invInertia(b *Body) rl.Vector3 {
	return geom.Inverse(b.Inertia)
}

// integrateRotation applies q' = q + 0.5*w*q*dt and renormalizes.
func integrateRotation(q rl.Quaternion, w rl.Vector3, dt float32) rl.Quaternion {
	if w == (rl.Vector3{}) {
		return q
	}
	spin := geom.Compose(rl.Quaternion{X: w.X, Y: w.Y, Z: w.Z}, q)
	half := dt / 2
	return rl.QuaternionNormalize(rl.Quaternion{
		X: q.X + spin.X*half,
		Y: q.Y + spin.Y*half,
		Z: q.Z + spin.Z*half,
		W: q.W + spin.W*half,
	})
}
