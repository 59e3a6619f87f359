package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"golang.org/x/xerrors"
)

// MockTriangleMaterial is a material that never scatters
type MockTriangleMaterial struct {
	name string
}

func (m *MockTriangleMaterial) Scatter(rayIn core.Ray, hit core.HitRecord, random *rand.Rand) (core.ScatterResult, bool) {
	return core.ScatterResult{}, false
}

func quadMesh(t *testing.T, options *TriangleMeshOptions) *TriangleMesh {
	t.Helper()

	// Create a simple quad mesh (2 triangles)
	vertices := []core.Vec3{
		core.NewVec3(0, 0, 0), // 0
		core.NewVec3(1, 0, 0), // 1
		core.NewVec3(1, 1, 0), // 2
		core.NewVec3(0, 1, 0), // 3
	}

	faces := []int{
		0, 1, 2, // first triangle
		0, 2, 3, // second triangle
	}

	mesh, err := NewTriangleMesh(vertices, faces, &MockTriangleMaterial{name: "default"}, options)
	if err != nil {
		t.Fatalf("NewTriangleMesh: %v", err)
	}
	return mesh
}

func TestTriangleMesh_Creation(t *testing.T) {
	mesh := quadMesh(t, nil)

	if mesh.TriangleCount() != 2 {
		t.Errorf("Expected 2 triangles, got %d", mesh.TriangleCount())
	}

	// Test bounding box
	bbox, ok := mesh.BoundingBox()
	if !ok {
		t.Fatal("Expected mesh to have a bounding box")
	}

	const tolerance = 1e-9
	if math.Abs(bbox.Min.X) > tolerance || math.Abs(bbox.Min.Y) > tolerance {
		t.Errorf("Expected min corner near origin, got %v", bbox.Min)
	}
	if math.Abs(bbox.Max.X-1) > tolerance || math.Abs(bbox.Max.Y-1) > tolerance {
		t.Errorf("Expected max corner near (1, 1), got %v", bbox.Max)
	}
}

func TestTriangleMesh_Hit(t *testing.T) {
	mesh := quadMesh(t, nil)

	tests := []struct {
		name      string
		ray       core.Ray
		shouldHit bool
	}{
		{
			name: "Ray hits center of quad",
			ray: core.NewRay(
				core.NewVec3(0.5, 0.5, -1), // origin
				core.NewVec3(0, 0, 1),      // direction
			),
			shouldHit: true,
		},
		{
			name: "Ray hits second triangle",
			ray: core.NewRay(
				core.NewVec3(0.2, 0.8, 1),
				core.NewVec3(0, 0, -1),
			),
			shouldHit: true,
		},
		{
			name: "Ray misses quad",
			ray: core.NewRay(
				core.NewVec3(2, 2, -1),
				core.NewVec3(0, 0, 1),
			),
			shouldHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := mesh.Hit(tt.ray, 0.001, 10.0)
			if isHit != tt.shouldHit {
				t.Fatalf("Expected hit=%v, got hit=%v", tt.shouldHit, isHit)
			}
			if isHit && math.Abs(hit.T-1.0) > 1e-9 {
				t.Errorf("Expected t=1, got t=%f", hit.T)
			}
		})
	}
}

func TestTriangleMesh_PerTriangleMaterials(t *testing.T) {
	first := &MockTriangleMaterial{name: "first"}
	second := &MockTriangleMaterial{name: "second"}
	mesh := quadMesh(t, &TriangleMeshOptions{Materials: []core.Material{first, second}})

	hit, isHit := mesh.Hit(core.NewRay(core.NewVec3(0.2, 0.8, 1), core.NewVec3(0, 0, -1)), 0.001, 10.0)
	if !isHit {
		t.Fatal("Expected hit")
	}
	if hit.Material != second {
		t.Errorf("Expected second triangle's material, got %v", hit.Material)
	}
}

func TestTriangleMesh_Offset(t *testing.T) {
	offset := core.NewVec3(0, 0, 5)
	mesh := quadMesh(t, &TriangleMeshOptions{Offset: &offset})

	hit, isHit := mesh.Hit(core.NewRay(core.NewVec3(0.5, 0.5, 0), core.NewVec3(0, 0, 1)), 0.001, 10.0)
	if !isHit {
		t.Fatal("Expected hit on offset mesh")
	}
	if math.Abs(hit.T-5) > 1e-9 {
		t.Errorf("Expected t=5, got t=%f", hit.T)
	}
}

func TestTriangleMesh_Errors(t *testing.T) {
	vertices := []core.Vec3{
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
	}

	tests := []struct {
		name     string
		faces    []int
		options  *TriangleMeshOptions
		expected error
	}{
		{
			name:     "Face count not a multiple of 3",
			faces:    []int{0, 1},
			expected: ErrFaceCount,
		},
		{
			name:     "Index out of range",
			faces:    []int{0, 1, 3},
			expected: ErrFaceIndex,
		},
		{
			name:     "Negative index",
			faces:    []int{0, -1, 2},
			expected: ErrFaceIndex,
		},
		{
			name:     "Material count mismatch",
			faces:    []int{0, 1, 2},
			options:  &TriangleMeshOptions{Materials: []core.Material{nil, nil}},
			expected: ErrMaterialCount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTriangleMesh(vertices, tt.faces, nil, tt.options)
			if !xerrors.Is(err, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, err)
			}
		})
	}
}

func TestTriangleMesh_EmptyHasNoBoundingBox(t *testing.T) {
	mesh, err := NewTriangleMesh(nil, nil, nil, nil)
	if err != nil {
		t.Fatalf("NewTriangleMesh: %v", err)
	}

	if _, ok := mesh.BoundingBox(); ok {
		t.Error("Expected empty mesh to have no bounding box")
	}

	_, err = NewBVH([]core.Primitive{mesh}, rand.New(rand.NewSource(1)))
	if !xerrors.Is(err, ErrNoBoundingBox) {
		t.Errorf("Expected ErrNoBoundingBox, got %v", err)
	}
}
