package physics

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	// fraction of the penetration removed per step
	correctionPercent = 0.8
	// penetration allowed before correction kicks in
	correctionSlop = 0.001
)

func invMass(b *Body) float32 {
	if b.IsStatic() {
		return 0
	}
	return 1 / b.Mass
}

// solveVelocity applies a normal impulse with the contact's restitution and a Coulomb friction
// impulse along the sliding direction.
func solveVelocity(c *Contact) {
	invA, invB := invMass(c.A), invMass(c.B)
	sum := invA + invB
	if sum == 0 {
		return
	}

	rel := rl.Vector3Subtract(c.B.Velocity, c.A.Velocity)
	vn := rl.Vector3DotProduct(rel, c.Normal)
	if vn > 0 {
		// separating
		return
	}

	j := -(1 + c.Restitution) * vn / sum
	impulse := rl.Vector3Scale(c.Normal, j)
	c.A.Velocity = rl.Vector3Subtract(c.A.Velocity, rl.Vector3Scale(impulse, invA))
	c.B.Velocity = rl.Vector3Add(c.B.Velocity, rl.Vector3Scale(impulse, invB))

	if c.Friction <= 0 {
		return
	}
	rel = rl.Vector3Subtract(c.B.Velocity, c.A.Velocity)
	tangent := rl.Vector3Subtract(rel, rl.Vector3Scale(c.Normal, rl.Vector3DotProduct(rel, c.Normal)))
	speed := rl.Vector3Length(tangent)
	if speed < 1e-6 {
		return
	}
	tangent = rl.Vector3Scale(tangent, 1/speed)
	jt := -speed / sum
	limit := c.Friction * j
	if jt < -limit {
		jt = -limit
	}
	friction := rl.Vector3Scale(tangent, jt)
	c.A.Velocity = rl.Vector3Subtract(c.A.Velocity, rl.Vector3Scale(friction, invA))
	c.B.Velocity = rl.Vector3Add(c.B.Velocity, rl.Vector3Scale(friction, invB))
}

// correctPosition pushes overlapping bodies apart in proportion to their inverse masses.
func correctPosition(c *Contact) {
	invA, invB := invMass(c.A), invMass(c.B)
	sum := invA + invB
	if sum == 0 {
		return
	}
	amount := float32(math.Max(float64(c.Depth-correctionSlop), 0)) / sum * correctionPercent
	correction := rl.Vector3Scale(c.Normal, amount)
	c.A.Position = rl.Vector3Subtract(c.A.Position, rl.Vector3Scale(correction, invA))
	c.B.Position = rl.Vector3Add(c.B.Position, rl.Vector3Scale(correction, invB))
}

func sqrtf(f float32) float32 {
	return float32(math.Sqrt(float64(f)))
}
