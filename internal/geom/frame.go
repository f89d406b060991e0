package geom

import rl "github.com/gen2brain/raylib-go/raylib"

// Frame is a rigid transform with non-uniform scale: world = Position + Rotation*(Scale*local).
type Frame struct {
	Position rl.Vector3
	Rotation rl.Quaternion
	Scale    rl.Vector3
}

// IdentityFrame has no translation, rotation or scale.
func IdentityFrame() Frame {
	return Frame{Rotation: Identity(), Scale: rl.Vector3One()}
}

// Degenerate reports whether any scale component is zero, making the frame non-invertible.
func (f Frame) Degenerate() bool {
	return f.Scale.X == 0 || f.Scale.Y == 0 || f.Scale.Z == 0
}

// PointToWorld maps a local point to world space.
func (f Frame) PointToWorld(p rl.Vector3) rl.Vector3 {
	return rl.Vector3Add(f.Position, RotateVector(Mul(f.Scale, p), f.Rotation))
}

// PointToLocal maps a world point to local space.
func (f Frame) PointToLocal(p rl.Vector3) rl.Vector3 {
	local := RotateVector(rl.Vector3Subtract(p, f.Position), Conjugate(f.Rotation))
	return Mul(local, Inverse(f.Scale))
}

// RayToLocal maps a world ray into local space. The direction is not renormalized, so a
// parameter t names the same point in both spaces.
func (f Frame) RayToLocal(ray rl.Ray) rl.Ray {
	inv := Conjugate(f.Rotation)
	invScale := Inverse(f.Scale)
	origin := RotateVector(rl.Vector3Subtract(ray.Position, f.Position), inv)
	dir := RotateVector(ray.Direction, inv)
	return rl.Ray{
		Position:  Mul(origin, invScale),
		Direction: Mul(dir, invScale),
	}
}
