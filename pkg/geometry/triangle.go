package geometry

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// parallelEpsilon rejects rays that are nearly parallel to the triangle plane.
// It is compared against the unnormalized face normal.
const parallelEpsilon = 1e-5

// Triangle represents a single flat-shaded triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 core.Vec3     // The three vertices
	Material   core.Material // Material of the triangle
	faceNormal core.Vec3     // Unnormalized cross(v1-v0, v2-v0)
	unitNormal core.Vec3     // Cached normal vector
	bbox       core.AABB     // Cached bounding box
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3, material core.Material) *Triangle {
	t := &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		Material: material,
	}

	// Precompute normal and bounding box for efficiency
	t.computeNormal()
	t.computeBoundingBox()

	return t
}

// computeNormal calculates and caches the triangle's normal vector
func (t *Triangle) computeNormal() {
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	t.faceNormal = edge1.Cross(edge2)
	t.unitNormal = t.faceNormal.Normalize()
}

// computeBoundingBox calculates and caches the triangle's bounding box
func (t *Triangle) computeBoundingBox() {
	t.bbox = core.NewAABBFromPoints(t.V0, t.V1, t.V2).Pad()
}

// Hit intersects the ray with the triangle's plane and then checks the hit
// point against the three edges.
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	n := t.faceNormal

	nDotDir := n.Dot(ray.Direction)
	if math.Abs(nDotDir) < parallelEpsilon {
		return nil, false
	}

	// Plane equation: dot(n, p) + d = 0
	d := -n.Dot(t.V0)
	tHit := -(n.Dot(ray.Origin) + d) / nDotDir
	if tHit < 0 || tHit < tMin || tHit > tMax {
		return nil, false
	}

	p := ray.At(tHit)

	// Inside-outside test: p must lie on the inner side of every edge
	if n.Dot(t.V1.Subtract(t.V0).Cross(p.Subtract(t.V0))) < 0 {
		return nil, false
	}
	if n.Dot(t.V2.Subtract(t.V1).Cross(p.Subtract(t.V1))) < 0 {
		return nil, false
	}
	if n.Dot(t.V0.Subtract(t.V2).Cross(p.Subtract(t.V2))) < 0 {
		return nil, false
	}

	hitRecord := &core.HitRecord{
		T:        tHit,
		Point:    p,
		Material: t.Material,
	}
	hitRecord.SetFaceNormal(ray, t.unitNormal)

	return hitRecord, true
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox() (core.AABB, bool) {
	return t.bbox, true
}

// Normal returns the triangle's unit normal following the v0, v1, v2 winding
func (t *Triangle) Normal() core.Vec3 {
	return t.unitNormal
}

// Centroid returns the average of the three vertices
func (t *Triangle) Centroid() core.Vec3 {
	return t.V0.Add(t.V1).Add(t.V2).Multiply(1.0 / 3.0)
}
