package picking

import (
	"busic/internal/camera"
	"busic/internal/geom"
	"busic/internal/input"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Candidate is anything a picking ray can hit. IntersectRay returns the ray parameter of the
// nearest hit.
type Candidate interface {
	IntersectRay(ray rl.Ray) (float32, bool)
}

type Hit struct {
	Candidate Candidate
	Point     rl.Vector3
	Distance  float32
}

// Service casts rays from viewport pixels through a camera.
type Service struct {
	camera   *camera.Camera
	viewport *input.Viewport
}

func NewService(cam *camera.Camera, viewport *input.Viewport) *Service {
	return &Service{camera: cam, viewport: viewport}
}

// Ray returns the world-space ray under window pixel (x, y). Pixels are normalized against
// the viewport rectangle, not the window.
func (s *Service) Ray(x, y float32) rl.Ray {
	return s.camera.Ray(s.viewport.NDC(x, y))
}

// Pick returns the nearest candidate under window pixel (x, y).
func (s *Service) Pick(x, y float32, candidates []Candidate) (Hit, bool) {
	if s.viewport.Width <= 0 || s.viewport.Height <= 0 {
		return Hit{}, false
	}
	return IntersectRay(s.Ray(x, y), candidates)
}

// IntersectRay returns the candidate hit closest to the ray origin. Nil candidates are skipped;
// a typed nil pointer must report a miss from its own IntersectRay.
func IntersectRay(ray rl.Ray, candidates []Candidate) (Hit, bool) {
	var best Hit
	found := false
	for _, c := range candidates {
		if c == nil {
			continue
		}
		t, ok := c.IntersectRay(ray)
		if !ok || t < 0 {
			continue
		}
		if !found || t < best.Distance {
			best = Hit{Candidate: c, Distance: t}
			found = true
		}
	}
	if !found {
		return Hit{}, false
	}
	best.Point = geom.PointAt(ray, best.Distance)
	best.Distance *= rl.Vector3Length(ray.Direction)
	return best, true
}
