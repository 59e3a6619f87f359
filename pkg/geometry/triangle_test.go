package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

func TestTriangle_Hit(t *testing.T) {
	// Create a triangle in the XY plane
	v0 := core.NewVec3(0, 0, 0)
	v1 := core.NewVec3(1, 0, 0)
	v2 := core.NewVec3(0, 1, 0)
	triangle := NewTriangle(v0, v1, v2, nil)

	tests := []struct {
		name      string
		ray       core.Ray
		tMin      float64
		tMax      float64
		shouldHit bool
		expectedT float64
		front     bool
	}{
		{
			name: "Ray hits triangle center",
			ray: core.NewRay(
				core.NewVec3(0.25, 0.25, 1), // origin
				core.NewVec3(0, 0, -1),      // direction (toward -Z)
			),
			tMin:      0.001,
			tMax:      10.0,
			shouldHit: true,
			expectedT: 1.0,
			front:     true,
		},
		{
			name: "Ray hits triangle edge",
			ray: core.NewRay(
				core.NewVec3(0.5, 0, 1), // origin (on edge between v0 and v1)
				core.NewVec3(0, 0, -1),  // direction
			),
			tMin:      0.001,
			tMax:      10.0,
			shouldHit: true,
			expectedT: 1.0,
			front:     true,
		},
		{
			name: "Ray crosses the plane outside the triangle",
			ray: core.NewRay(
				core.NewVec3(1, 1, -1), // origin (outside triangle)
				core.NewVec3(0, 0, 1),  // direction (toward +Z)
			),
			tMin:      0.001,
			tMax:      10.0,
			shouldHit: false,
		},
		{
			name: "Ray parallel to triangle",
			ray: core.NewRay(
				core.NewVec3(0.25, 0.25, 0), // origin (in triangle plane)
				core.NewVec3(1, 0, 0),       // direction (parallel to plane)
			),
			tMin:      0.001,
			tMax:      10.0,
			shouldHit: false,
		},
		{
			name: "Ray hits from behind",
			ray: core.NewRay(
				core.NewVec3(0.25, 0.25, -1), // origin (behind triangle)
				core.NewVec3(0, 0, 1),        // direction (toward +Z)
			),
			tMin:      0.001,
			tMax:      10.0,
			shouldHit: true,
			expectedT: 1.0,
			front:     false,
		},
		{
			name: "Triangle behind the ray origin",
			ray: core.NewRay(
				core.NewVec3(0.25, 0.25, 1),
				core.NewVec3(0, 0, 1),
			),
			tMin:      0.001,
			tMax:      10.0,
			shouldHit: false,
		},
		{
			name: "Hit beyond tMax",
			ray: core.NewRay(
				core.NewVec3(0.25, 0.25, 5),
				core.NewVec3(0, 0, -1),
			),
			tMin:      0.001,
			tMax:      4.0,
			shouldHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := triangle.Hit(tt.ray, tt.tMin, tt.tMax)

			if isHit != tt.shouldHit {
				t.Errorf("Expected hit=%v, got hit=%v", tt.shouldHit, isHit)
				return
			}

			if tt.shouldHit {
				if hit == nil {
					t.Error("Expected hit record, got nil")
					return
				}

				if math.Abs(hit.T-tt.expectedT) > 1e-6 {
					t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
				}

				// Verify hit point is on the triangle plane
				expectedPoint := tt.ray.At(hit.T)
				if expectedPoint.Subtract(hit.Point).Length() > 1e-6 {
					t.Errorf("Hit point mismatch: expected %v, got %v", expectedPoint, hit.Point)
				}

				if hit.FrontFace != tt.front {
					t.Errorf("Expected front face %t, got %t", tt.front, hit.FrontFace)
				}
				if hit.Normal.Dot(tt.ray.Direction) >= 0 {
					t.Errorf("Expected normal %v to face against the ray", hit.Normal)
				}
			}
		})
	}
}

func TestTriangle_CentroidAlwaysHit(t *testing.T) {
	random := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		triangle := NewTriangle(
			core.RandomVec3(random, -5, 5),
			core.RandomVec3(random, -5, 5),
			core.RandomVec3(random, -5, 5),
			nil,
		)

		// Skip slivers whose face normal is too small to intersect reliably
		if triangle.faceNormal.Length() < 0.1 {
			continue
		}

		// Shoot along the normal through the centroid from either side
		centroid := triangle.Centroid()
		for _, sign := range []float64{1, -1} {
			normal := triangle.Normal().Multiply(sign)
			origin := centroid.Add(normal.Multiply(3))
			ray := core.NewRay(origin, normal.Negate())

			hit, isHit := triangle.Hit(ray, 0.001, math.Inf(1))
			if !isHit {
				t.Fatalf("Ray through centroid of %v missed", triangle)
			}
			if math.Abs(hit.T-3) > 1e-6 {
				t.Errorf("Expected t=3, got t=%f", hit.T)
			}
		}
	}
}

func TestTriangle_BoundingBox(t *testing.T) {
	v0 := core.NewVec3(0, 0, 0)
	v1 := core.NewVec3(2, 0, 0)
	v2 := core.NewVec3(1, 3, 0)
	triangle := NewTriangle(v0, v1, v2, nil)

	bbox, ok := triangle.BoundingBox()
	if !ok {
		t.Fatal("Expected triangle to have a bounding box")
	}

	// X and Y are exact; the flat Z axis is padded
	const tolerance = 1e-9
	if math.Abs(bbox.Min.X) > tolerance || math.Abs(bbox.Max.X-2) > tolerance {
		t.Errorf("Expected X extent [0, 2], got [%f, %f]", bbox.Min.X, bbox.Max.X)
	}
	if math.Abs(bbox.Min.Y) > tolerance || math.Abs(bbox.Max.Y-3) > tolerance {
		t.Errorf("Expected Y extent [0, 3], got [%f, %f]", bbox.Min.Y, bbox.Max.Y)
	}
	if bbox.Min.Z >= 0 || bbox.Max.Z <= 0 {
		t.Errorf("Expected padded Z extent around 0, got [%f, %f]", bbox.Min.Z, bbox.Max.Z)
	}
}

func TestTriangle_AxisAlignedInsideBVH(t *testing.T) {
	// A triangle lying in y=0 has a flat box that still has to pass the slab test
	triangle := NewTriangle(
		core.NewVec3(-1, 0, -1),
		core.NewVec3(1, 0, -1),
		core.NewVec3(0, 0, 1),
		nil,
	)
	other := NewSphere(core.NewVec3(10, 10, 10), 1, nil)

	bvh, err := NewBVH([]core.Primitive{triangle, other}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewBVH: %v", err)
	}

	ray := core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0))
	hit, isHit := bvh.Hit(ray, 0.001, math.Inf(1))
	if !isHit {
		t.Fatal("Expected BVH hit on axis-aligned triangle")
	}
	if math.Abs(hit.T-5) > 1e-9 {
		t.Errorf("Expected t=5, got t=%f", hit.T)
	}
}
