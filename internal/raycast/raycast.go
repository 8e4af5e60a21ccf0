package raycast

import (
	"math"

	"Hollowmere/internal/behaviour"

	"github.com/go-gl/mathgl/mgl32"
)

// Ray represents a ray in 3D space
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Hit is the closest collider a cast passed through.
type Hit struct {
	Object   *behaviour.GameObject
	Distance float32
	Point    mgl32.Vec3
}

// Filter decides whether an object takes part in a cast.
type Filter func(obj *behaviour.GameObject) bool

// RayIntersectSphere tests if a ray intersects a sphere
// Returns: (intersected, distance, intersection point)
func RayIntersectSphere(ray Ray, sphereCenter mgl32.Vec3, radius float32) (bool, float32, mgl32.Vec3) {
	oc := ray.Origin.Sub(sphereCenter)

	a := ray.Direction.Dot(ray.Direction)
	b := 2.0 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - radius*radius

	discriminant := b*b - 4*a*c
	if a == 0 || discriminant < 0 {
		return false, 0, mgl32.Vec3{}
	}

	sqrtDisc := float32(math.Sqrt(float64(discriminant)))
	t1 := (-b - sqrtDisc) / (2 * a)
	t2 := (-b + sqrtDisc) / (2 * a)

	// Closest non-negative root; an origin inside the sphere hits the far side
	var t float32
	switch {
	case t1 >= 0:
		t = t1
	case t2 >= 0:
		t = t2
	default:
		return false, 0, mgl32.Vec3{}
	}

	return true, t, ray.At(t)
}

// RayIntersectTriangle tests if a ray intersects a triangle
// Returns: (intersected, distance, intersection point)
// Uses Möller-Trumbore algorithm
func RayIntersectTriangle(ray Ray, v0, v1, v2 mgl32.Vec3) (bool, float32, mgl32.Vec3) {
	const epsilon = 0.0000001

	edge1 := v1.Sub(v0)
	edge2 := v2.Sub(v0)
	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	if a > -epsilon && a < epsilon {
		return false, 0, mgl32.Vec3{} // Ray is parallel to triangle
	}

	f := 1.0 / a
	s := ray.Origin.Sub(v0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return false, 0, mgl32.Vec3{}
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return false, 0, mgl32.Vec3{}
	}

	t := f * edge2.Dot(q)
	if t > epsilon {
		return true, t, ray.At(t)
	}

	return false, 0, mgl32.Vec3{} // Line intersection but not ray intersection
}

// RayIntersectBox is the slab test against an axis-aligned box.
// Returns: (intersected, distance, intersection point)
func RayIntersectBox(ray Ray, center, halfExtents mgl32.Vec3) (bool, float32, mgl32.Vec3) {
	tMin := float32(math.Inf(-1))
	tMax := float32(math.Inf(1))

	for axis := 0; axis < 3; axis++ {
		lo := center[axis] - halfExtents[axis]
		hi := center[axis] + halfExtents[axis]
		o := ray.Origin[axis]
		d := ray.Direction[axis]

		if d == 0 {
			if o < lo || o > hi {
				return false, 0, mgl32.Vec3{}
			}
			continue
		}

		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tMin {
			tMin = t1
		}
		if t2 < tMax {
			tMax = t2
		}
		if tMin > tMax {
			return false, 0, mgl32.Vec3{}
		}
	}

	if tMax < 0 {
		return false, 0, mgl32.Vec3{}
	}
	t := tMin
	if t < 0 {
		t = tMax
	}
	return true, t, ray.At(t)
}

// Cast returns the closest hit among active objects carrying an enabled
// ColliderComponent. The direction is normalized so distances are in world
// units. maxDistance <= 0 means unlimited; a hit exactly at maxDistance counts.
func Cast(objects []*behaviour.GameObject, ray Ray, maxDistance float32, filter Filter) (Hit, bool) {
	if ray.Direction.Len() == 0 {
		return Hit{}, false
	}
	ray.Direction = ray.Direction.Normalize()

	var best Hit
	found := false
	for _, obj := range objects {
		if obj == nil || obj.Destroyed() || !obj.ActiveInHierarchy() {
			continue
		}
		col, ok := behaviour.ComponentOf[*behaviour.ColliderComponent](obj)
		if !ok || !col.GetEnabled() {
			continue
		}
		if filter != nil && !filter(obj) {
			continue
		}

		hit, dist, point := intersectCollider(ray, col)
		if !hit {
			continue
		}
		if maxDistance > 0 && dist > maxDistance {
			continue
		}
		if !found || dist < best.Distance {
			best = Hit{Object: obj, Distance: dist, Point: point}
			found = true
		}
	}
	return best, found
}

func intersectCollider(ray Ray, col *behaviour.ColliderComponent) (bool, float32, mgl32.Vec3) {
	scale := worldScale(col.GetGameObject())
	switch col.Shape {
	case behaviour.ColliderBox:
		half := mgl32.Vec3{
			col.HalfExtents.X() * scale.X(),
			col.HalfExtents.Y() * scale.Y(),
			col.HalfExtents.Z() * scale.Z(),
		}
		return RayIntersectBox(ray, col.Center(), half)
	default:
		r := col.Radius * maxComponent(scale)
		return RayIntersectSphere(ray, col.Center(), r)
	}
}

func worldScale(obj *behaviour.GameObject) mgl32.Vec3 {
	if obj == nil {
		return mgl32.Vec3{1, 1, 1}
	}
	m := obj.Transform.WorldMatrix()
	return mgl32.Vec3{m.Col(0).Vec3().Len(), m.Col(1).Vec3().Len(), m.Col(2).Vec3().Len()}
}

func maxComponent(v mgl32.Vec3) float32 {
	return float32(math.Max(float64(v.X()), math.Max(float64(v.Y()), float64(v.Z()))))
}
