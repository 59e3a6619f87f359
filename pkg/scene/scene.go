package scene

import (
	"math/rand"
	"sort"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/renderer"
	"golang.org/x/xerrors"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name         string
	CameraConfig renderer.CameraConfig
	Shapes       []core.Primitive  // Objects in the scene
	BVH          *geometry.BVHNode // Acceleration structure built by Preprocess
}

// Config contains the parameters shared by the scene constructors
type Config struct {
	AspectRatio float64   // Width / height ratio of the output image
	Seed        int64     // Seed for scene generation and BVH axis choice
	MeshPath    string    // OBJ file used by the mesh scene
	MeshOffset  core.Vec3 // Translation applied to the loaded mesh
}

// DefaultConfig returns a 16:9 configuration with a fixed seed
func DefaultConfig() Config {
	return Config{
		AspectRatio: 16.0 / 9.0,
		Seed:        42,
	}
}

type builder struct {
	build       func(config Config) (*Scene, error)
	description string
}

var builders = map[string]builder{
	"random": {
		build:       NewRandomScene,
		description: "ground, a grid of small random spheres and three large spheres",
	},
	"spheres": {
		build:       NewSpheresScene,
		description: "diffuse, hollow glass and fuzzy metal spheres on a ground sphere",
	},
	"mesh": {
		build:       NewMeshScene,
		description: "triangles from a Wavefront OBJ file on a ground sphere",
	},
}

// Names returns the names accepted by New, sorted
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Description returns a one-line summary of the named scene, or an empty
// string for unknown names
func Description(name string) string {
	return builders[name].description
}

// New builds the named scene
func New(name string, config Config) (*Scene, error) {
	b, ok := builders[name]
	if !ok {
		return nil, xerrors.Errorf("%q: %w", name, ErrUnknownScene)
	}
	return b.build(config)
}

// Preprocess builds the BVH over the scene's shapes
func (s *Scene) Preprocess(random *rand.Rand) error {
	bvh, err := geometry.NewBVH(s.Shapes, random)
	if err != nil {
		return xerrors.Errorf("while building BVH for %s scene: %w", s.Name, err)
	}
	s.BVH = bvh
	return nil
}

// Camera creates the camera described by the scene's camera config
func (s *Scene) Camera() *renderer.Camera {
	return renderer.NewCamera(s.CameraConfig)
}

// PrimitiveCount returns the number of top-level primitives in the scene
func (s *Scene) PrimitiveCount() int {
	return len(s.Shapes)
}
