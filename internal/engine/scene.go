package engine

// Scene is the flat registry of root render nodes.
type Scene struct {
	Name  string
	Nodes []*Node
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:  name,
		Nodes: make([]*Node, 0),
	}
}

func (s *Scene) Add(n *Node) {
	for _, existing := range s.Nodes {
		if existing == n {
			return
		}
	}
	s.Nodes = append(s.Nodes, n)
}

func (s *Scene) Remove(n *Node) {
	for i, node := range s.Nodes {
		if node == n {
			s.Nodes = append(s.Nodes[:i], s.Nodes[i+1:]...)
			return
		}
	}
}

func (s *Scene) Contains(n *Node) bool {
	for _, node := range s.Nodes {
		if node == n {
			return true
		}
	}
	return false
}
