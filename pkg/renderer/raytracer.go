package renderer

import (
	"context"
	"image"
	"sync/atomic"
	"time"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/integrator"
	"github.com/df07/go-bvh-pathtracer/pkg/log"
	"golang.org/x/xerrors"
)

// Raytracer renders a world through a camera into an RGBA image
type Raytracer struct {
	world      core.Primitive
	camera     *Camera
	integrator integrator.Integrator
	options    Options
	logger     log.Logger
}

// NewRaytracer creates a new raytracer. The world is shared read-only by
// every worker and must not be modified while rendering.
func NewRaytracer(world core.Primitive, camera *Camera, options Options) (*Raytracer, error) {
	if world == nil {
		return nil, ErrSceneNotDefined
	}
	if camera == nil {
		return nil, ErrCameraNotDefined
	}
	if err := options.Validate(); err != nil {
		return nil, err
	}

	return &Raytracer{
		world:      world,
		camera:     camera,
		integrator: integrator.NewPathTracingIntegrator(options.MaxDepth),
		options:    options,
		logger:     log.New("renderer"),
	}, nil
}

// Options returns the options the raytracer was created with
func (rt *Raytracer) Options() Options {
	return rt.options
}

// Render renders the full frame. Tiles are rendered in parallel, each with its
// own deterministic generator, so the output depends only on the options and
// the world. If ctx is cancelled the partial image is returned along with an
// error wrapping ErrInterrupted.
func (rt *Raytracer) Render(ctx context.Context) (*image.RGBA, RenderStats, error) {
	opts := rt.options
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	tiles := NewTileGrid(opts.Width, opts.Height, opts.TileSize, opts.Seed)
	pool := NewWorkerPool(opts.workerCount())
	tileRenderer := NewTileRenderer(rt.world, rt.camera, rt.integrator, opts.Width, opts.Height, opts.SamplesPerPixel)

	stats := RenderStats{
		Width:           opts.Width,
		Height:          opts.Height,
		SamplesPerPixel: opts.SamplesPerPixel,
		MaxDepth:        opts.MaxDepth,
		Tiles:           len(tiles),
		Workers:         pool.NumWorkers(),
	}
	if bvh, ok := rt.world.(*geometry.BVHNode); ok {
		bvhStats := bvh.Stats()
		stats.BVH = &bvhStats
		rt.logger.Debugf("BVH: %d nodes, %d leaves, max depth %d, avg leaf depth %.1f, %d primitives",
			bvhStats.TotalNodes, bvhStats.LeafNodes, bvhStats.MaxDepth, bvhStats.AvgDepth, bvhStats.TotalPrimitives)
	}

	rt.logger.Infof("rendering %dx%d frame (%d spp, depth %d) as %d tiles on %d workers",
		opts.Width, opts.Height, opts.SamplesPerPixel, opts.MaxDepth, len(tiles), pool.NumWorkers())

	var totalSamples, tilesDone, pixelsDone atomic.Int64
	start := time.Now()

	err := pool.Run(ctx, tiles, func(ctx context.Context, tile *Tile) error {
		samples, err := tileRenderer.RenderTile(ctx, tile, img)
		totalSamples.Add(int64(samples))
		if err != nil {
			return err
		}

		pixelsDone.Add(int64(tile.Bounds.Dx() * tile.Bounds.Dy()))
		if done := tilesDone.Add(1); done%int64(max(1, len(tiles)/10)) == 0 {
			rt.logger.Debugf("%d/%d tiles complete", done, len(tiles))
		}
		return nil
	})

	stats.RenderTime = time.Since(start)
	stats.TotalSamples = int(totalSamples.Load())
	stats.TotalPixels = int(pixelsDone.Load())
	stats.TilesCompleted = int(tilesDone.Load())

	if err != nil {
		if ctx.Err() != nil {
			return img, stats, xerrors.Errorf("after %d of %d tiles (%v): %w", stats.TilesCompleted, len(tiles), ctx.Err(), ErrInterrupted)
		}
		return img, stats, xerrors.Errorf("while rendering tiles: %w", err)
	}

	rt.logger.Infof("rendered %d samples in %s", stats.TotalSamples, stats.RenderTime)
	return img, stats, nil
}
