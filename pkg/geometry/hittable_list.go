package geometry

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// HittableList is an ordered collection of primitives tested by linear search
type HittableList struct {
	Objects []core.Primitive
}

// NewHittableList creates a list holding the given primitives
func NewHittableList(objects ...core.Primitive) *HittableList {
	return &HittableList{Objects: objects}
}

// Add appends a primitive to the list
func (l *HittableList) Add(object core.Primitive) {
	l.Objects = append(l.Objects, object)
}

// Hit returns the closest hit among all objects in the list
func (l *HittableList) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	return closestHit(l.Objects, ray, tMin, tMax)
}

// BoundingBox returns the union of all member boxes. An empty list, or a list
// holding an unbounded member, has no box.
func (l *HittableList) BoundingBox() (core.AABB, bool) {
	return unionBox(l.Objects)
}

// closestHit is the closest-hit reduction shared by every aggregate: each
// candidate is searched with the upper bound shrunk to the nearest hit so far.
func closestHit(objects []core.Primitive, ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	var closest *core.HitRecord
	hitAnything := false
	closestSoFar := tMax

	for _, object := range objects {
		if hit, isHit := object.Hit(ray, tMin, closestSoFar); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closest = hit
		}
	}

	return closest, hitAnything
}

// unionBox returns the box enclosing every object, or false if there are none
// or any object is unbounded
func unionBox(objects []core.Primitive) (core.AABB, bool) {
	if len(objects) == 0 {
		return core.AABB{}, false
	}

	box, ok := objects[0].BoundingBox()
	if !ok {
		return core.AABB{}, false
	}
	for _, object := range objects[1:] {
		next, ok := object.BoundingBox()
		if !ok {
			return core.AABB{}, false
		}
		box = core.SurroundingBox(box, next)
	}

	return box, true
}
