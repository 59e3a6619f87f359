package integrator

import (
	"math"
	"math/rand"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// shadowAcneEpsilon is the lower bound of every intersection search. Rays
// restarting on a surface would otherwise hit it again at t ~ 0.
const shadowAcneEpsilon = 0.001

var (
	skyZenith  = core.NewVec3(0.5, 0.7, 1.0)
	skyHorizon = core.NewVec3(1.0, 1.0, 1.0)
)

// PathTracingIntegrator implements unidirectional path tracing lit only by the sky
type PathTracingIntegrator struct {
	maxDepth int
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(maxDepth int) *PathTracingIntegrator {
	return &PathTracingIntegrator{maxDepth: maxDepth}
}

// RayColor computes the color for a single ray, bounded by the integrator's max depth
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world core.Primitive, random *rand.Rand) core.Vec3 {
	return RayColor(ray, world, pt.maxDepth, random)
}

// RayColor recursively traces ray through world. Each bounce multiplies by the
// material's attenuation; absorbed rays and exhausted depth return black and
// rays that escape return the sky gradient.
func RayColor(ray core.Ray, world core.Primitive, depth int, random *rand.Rand) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	hit, isHit := world.Hit(ray, shadowAcneEpsilon, math.Inf(1))
	if !isHit {
		return BackgroundGradient(ray)
	}

	if hit.Material == nil {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	scatter, didScatter := hit.Material.Scatter(ray, *hit, random)
	if !didScatter {
		// Material absorbed the ray
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	return scatter.Attenuation.MultiplyVec(RayColor(scatter.Scattered, world, depth-1, random))
}

// BackgroundGradient blends from white at the bottom to sky blue at the top
// based on the ray's normalized y direction
func BackgroundGradient(ray core.Ray) core.Vec3 {
	unitDirection := ray.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)
	return skyHorizon.Multiply(1.0 - t).Add(skyZenith.Multiply(t))
}
