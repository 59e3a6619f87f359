package scene

import (
	"math/rand"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
	"github.com/df07/go-bvh-pathtracer/pkg/renderer"
)

const (
	gridExtent        = 11
	smallSphereRadius = 0.2
)

// Small spheres closer than this to the mirror sphere's footprint are skipped
var clearingCenter = core.NewVec3(4, 0.2, 0)

// NewRandomScene creates the final scene of "Ray Tracing in One Weekend": a
// large ground sphere, a grid of small spheres with random materials and three
// large spheres (glass bubble, diffuse, mirror).
func NewRandomScene(config Config) (*Scene, error) {
	random := rand.New(rand.NewSource(config.Seed))

	s := &Scene{
		Name: "random",
		CameraConfig: renderer.CameraConfig{
			LookFrom:    core.NewVec3(13, 2, 3),
			LookAt:      core.NewVec3(0, 0, 0),
			Up:          core.NewVec3(0, 1, 0),
			VFov:        20.0,
			AspectRatio: config.AspectRatio,
		},
	}

	ground := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	s.Shapes = append(s.Shapes, geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, ground))

	for a := -gridExtent; a < gridExtent; a++ {
		for b := -gridExtent; b < gridExtent; b++ {
			chooseMat := random.Float64()
			center := core.NewVec3(
				float64(a)+0.9*random.Float64(),
				smallSphereRadius,
				float64(b)+0.9*random.Float64(),
			)

			if center.Subtract(clearingCenter).Length() <= 0.9 {
				continue
			}

			var sphereMaterial core.Material
			switch {
			case chooseMat < 0.8:
				sphereMaterial = material.NewLambertian(core.RandomVec3(random, 0, 1))
			case chooseMat < 0.95:
				albedo := core.RandomVec3(random, 0, 1)
				sphereMaterial = material.NewMetal(albedo, random.Float64())
			default:
				sphereMaterial = material.NewTintedDielectric(core.RandomVec3(random, 0, 1), 1.5)
			}
			s.Shapes = append(s.Shapes, geometry.NewSphere(center, smallSphereRadius, sphereMaterial))
		}
	}

	// The glass sphere has a negative radius so it renders as a hollow bubble
	s.Shapes = append(s.Shapes,
		geometry.NewSphere(core.NewVec3(0, 1, 0), -1.0, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(1, 1, 1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(1, 1, 1), 0.0)),
	)

	if err := s.Preprocess(random); err != nil {
		return nil, err
	}
	return s, nil
}
