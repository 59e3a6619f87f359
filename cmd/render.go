package cmd

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/renderer"
	"github.com/df07/go-bvh-pathtracer/pkg/scene"
	"github.com/urfave/cli"
	"golang.org/x/xerrors"
)

// RenderFrame renders a still frame of the selected scene.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	opts := renderer.Options{
		Width:           ctx.Int("width"),
		Height:          ctx.Int("height"),
		SamplesPerPixel: ctx.Int("spp"),
		MaxDepth:        ctx.Int("depth"),
		TileSize:        ctx.Int("tile"),
		Workers:         ctx.Int("workers"),
		Seed:            ctx.Int64("seed"),
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	offset, err := parseVec3(ctx.String("offset"))
	if err != nil {
		return xerrors.Errorf("while parsing --offset: %w", err)
	}

	sceneConfig := scene.DefaultConfig()
	sceneConfig.AspectRatio = opts.AspectRatio()
	sceneConfig.Seed = opts.Seed
	sceneConfig.MeshPath = ctx.String("obj")
	sceneConfig.MeshOffset = offset

	sc, err := scene.New(ctx.String("scene"), sceneConfig)
	if err != nil {
		return err
	}
	logger.Infof("built %s scene with %d primitives", sc.Name, sc.PrimitiveCount())

	rt, err := renderer.NewRaytracer(sc.BVH, sc.Camera(), opts)
	if err != nil {
		return err
	}

	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	img, stats, renderErr := rt.Render(renderCtx)
	displayRenderStats(stats)
	if renderErr != nil && !xerrors.Is(renderErr, renderer.ErrInterrupted) {
		return renderErr
	}

	out := ctx.String("out")
	if err := createOutputDir(out); err != nil {
		return err
	}
	if err := renderer.SavePNG(out, img); err != nil {
		return err
	}

	if renderErr != nil {
		logger.Warningf("saved partial frame to %s", out)
		return renderErr
	}
	logger.Noticef("saved frame to %s", out)
	return nil
}

// Display render statistics.
func displayRenderStats(stats renderer.RenderStats) {
	logger.Noticef("render statistics\n%s", stats.Table())
}

// createOutputDir makes sure the directory holding path exists.
func createOutputDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return xerrors.Errorf("while creating output directory %s: %w", dir, err)
	}
	return nil
}

// parseVec3 parses an "x,y,z" triple.
func parseVec3(value string) (core.Vec3, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 3 {
		return core.Vec3{}, xerrors.Errorf("expected x,y,z; got %q", value)
	}

	var coords [3]float64
	for i, part := range parts {
		coord, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return core.Vec3{}, xerrors.Errorf("coordinate %d: %w", i, err)
		}
		coords[i] = coord
	}
	return core.NewVec3(coords[0], coords[1], coords[2]), nil
}
