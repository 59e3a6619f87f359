package renderer

import (
	"context"
	"image"
	"image/color"
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/integrator"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator
type TileRenderer struct {
	world      core.Primitive
	camera     *Camera
	integrator integrator.Integrator

	width, height   int
	samplesPerPixel int
}

// NewTileRenderer creates a new tile renderer for a width x height frame
func NewTileRenderer(world core.Primitive, camera *Camera, integratorInst integrator.Integrator, width, height, samplesPerPixel int) *TileRenderer {
	return &TileRenderer{
		world:           world,
		camera:          camera,
		integrator:      integratorInst,
		width:           width,
		height:          height,
		samplesPerPixel: samplesPerPixel,
	}
}

// RenderTile renders every pixel of tile into img and returns the number of
// samples taken. Tiles cover disjoint pixels so concurrent calls on distinct
// tiles may share img. The context is checked once per row.
func (tr *TileRenderer) RenderTile(ctx context.Context, tile *Tile, img *image.RGBA) (int, error) {
	samples := 0
	random := tile.Random

	// Viewport coordinates span [0, 1] from the first to the last pixel
	uScale := float64(max(1, tr.width-1))
	vScale := float64(max(1, tr.height-1))

	for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
		if err := ctx.Err(); err != nil {
			return samples, err
		}

		// Image rows run top to bottom, viewport rows bottom to top
		j := tr.height - 1 - y

		for i := tile.Bounds.Min.X; i < tile.Bounds.Max.X; i++ {
			colorAccum := core.Vec3{X: 0, Y: 0, Z: 0}

			for sample := 0; sample < tr.samplesPerPixel; sample++ {
				// Convert pixel coordinates to normalized coordinates with jitter
				s := (float64(i) + random.Float64()) / uScale
				t := (float64(j) + random.Float64()) / vScale

				ray := tr.camera.GetRay(s, t)
				colorAccum = colorAccum.Add(tr.integrator.RayColor(ray, tr.world, random))
			}
			samples += tr.samplesPerPixel

			// Average the accumulated colors
			img.SetRGBA(i, y, vec3ToColor(colorAccum.Multiply(1.0/float64(tr.samplesPerPixel))))
		}
	}

	return samples, nil
}

// vec3ToColor converts a linear color to RGBA with clamping and gamma correction
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	// Clamp first so negative components never reach the square root
	colorVec = colorVec.Clamp(0.0, 1.0).GammaCorrect()

	return color.RGBA{
		R: toByte(colorVec.X),
		G: toByte(colorVec.Y),
		B: toByte(colorVec.Z),
		A: 255,
	}
}

// toByte scales a [0, 1] channel to 8 bits; NaN maps to 0
func toByte(c float64) uint8 {
	if math.IsNaN(c) {
		return 0
	}
	return uint8(255 * c)
}
