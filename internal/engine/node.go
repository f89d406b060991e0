package engine

import (
	"busic/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Node is a render scene-graph entry. Position, Rotation and Scale are relative to the parent.
type Node struct {
	Name     string
	Position rl.Vector3
	Rotation rl.Quaternion
	Scale    rl.Vector3
	Visible  bool
	Color    rl.Color

	// Shape is the local hit volume used for picking. Nodes without one are never hit.
	Shape geom.Shape

	Parent   *Node
	Children []*Node
}

func NewNode(name string, shape geom.Shape) *Node {
	return &Node{
		Name:     name,
		Rotation: geom.Identity(),
		Scale:    rl.Vector3One(),
		Visible:  true,
		Color:    rl.White,
		Shape:    shape,
		Children: make([]*Node, 0),
	}
}

func (n *Node) AddChild(child *Node) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = n
	n.Children = append(n.Children, child)
}

func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

func (n *Node) WorldPosition() rl.Vector3 {
	if n.Parent == nil {
		return n.Position
	}
	parentPos := n.Parent.WorldPosition()
	parentRot := n.Parent.WorldRotation()
	parentScale := n.Parent.WorldScale()

	// Scale local position by parent's world scale, then rotate into the parent frame
	scaled := geom.Mul(n.Position, parentScale)
	return rl.Vector3Add(parentPos, geom.RotateVector(scaled, parentRot))
}

func (n *Node) WorldRotation() rl.Quaternion {
	if n.Parent == nil {
		return n.Rotation
	}
	return geom.Compose(n.Parent.WorldRotation(), n.Rotation)
}

func (n *Node) WorldScale() rl.Vector3 {
	if n.Parent == nil {
		return n.Scale
	}
	return geom.Mul(n.Parent.WorldScale(), n.Scale)
}

func (n *Node) WorldFrame() geom.Frame {
	return geom.Frame{
		Position: n.WorldPosition(),
		Rotation: n.WorldRotation(),
		Scale:    n.WorldScale(),
	}
}

// ParentFrame is the world frame of the parent, or the identity frame for a root node.
func (n *Node) ParentFrame() geom.Frame {
	if n.Parent == nil {
		return geom.IdentityFrame()
	}
	return n.Parent.WorldFrame()
}

// IntersectRay returns the world-space ray parameter of the nearest hit with the node's shape.
func (n *Node) IntersectRay(ray rl.Ray) (float32, bool) {
	if n == nil || n.Shape == nil || !n.Visible {
		return 0, false
	}
	frame := n.WorldFrame()
	if frame.Degenerate() {
		return 0, false
	}
	return n.Shape.IntersectRay(frame.RayToLocal(ray))
}

// BoundingRadius is the world-space radius of a sphere around WorldPosition enclosing the shape.
func (n *Node) BoundingRadius() float32 {
	if n.Shape == nil {
		return 0
	}
	s := n.WorldScale()
	max := geom.MaxComponent(rl.Vector3{X: abs(s.X), Y: abs(s.Y), Z: abs(s.Z)})
	return n.Shape.BoundingRadius() * max
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
