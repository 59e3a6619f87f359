package renderer

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

func testCamera(aspectRatio float64) *Camera {
	return NewCamera(CameraConfig{
		LookFrom:    core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90.0,
		AspectRatio: aspectRatio,
	})
}

func testOptions(width, height int) Options {
	opts := DefaultOptions()
	opts.Width = width
	opts.Height = height
	opts.SamplesPerPixel = 4
	opts.MaxDepth = 10
	opts.TileSize = 8
	opts.Workers = 4
	return opts
}

func testWorld(t *testing.T) core.Primitive {
	t.Helper()

	primitives := []core.Primitive{
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)),
	}

	bvh, err := geometry.NewBVH(primitives, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewBVH: %v", err)
	}
	return bvh
}

func TestNewRaytracer_Errors(t *testing.T) {
	camera := testCamera(1)
	world := geometry.NewHittableList()

	if _, err := NewRaytracer(nil, camera, testOptions(4, 4)); !errors.Is(err, ErrSceneNotDefined) {
		t.Errorf("Expected ErrSceneNotDefined, got %v", err)
	}
	if _, err := NewRaytracer(world, nil, testOptions(4, 4)); !errors.Is(err, ErrCameraNotDefined) {
		t.Errorf("Expected ErrCameraNotDefined, got %v", err)
	}
	if _, err := NewRaytracer(world, camera, testOptions(0, 4)); !errors.Is(err, ErrInvalidOptions) {
		t.Errorf("Expected ErrInvalidOptions, got %v", err)
	}
}

func TestRaytracer_SkyOrientation(t *testing.T) {
	width, height := 16, 9
	rt, err := NewRaytracer(geometry.NewHittableList(), testCamera(16.0/9.0), testOptions(width, height))
	if err != nil {
		t.Fatalf("NewRaytracer: %v", err)
	}

	img, _, err := rt.Render(context.Background())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	// Row 0 is the top of the frame, which looks up into the blue sky
	top := img.RGBAAt(width/2, 0)
	bottom := img.RGBAAt(width/2, height-1)
	if top.R >= bottom.R {
		t.Errorf("Expected top row %v to be bluer than bottom row %v", top, bottom)
	}

	// The sky's blue channel is 1.0 everywhere, up to rounding
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if c := img.RGBAAt(x, y); c.B < 254 || c.A != 255 {
				t.Fatalf("Expected full blue and alpha at (%d,%d), got %v", x, y, c)
			}
		}
	}
}

func TestRaytracer_ZeroDepthIsBlack(t *testing.T) {
	opts := testOptions(8, 8)
	opts.MaxDepth = 0

	rt, err := NewRaytracer(testWorld(t), testCamera(1), opts)
	if err != nil {
		t.Fatalf("NewRaytracer: %v", err)
	}

	img, _, err := rt.Render(context.Background())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	black := color.RGBA{R: 0, G: 0, B: 0, A: 255}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if c := img.RGBAAt(x, y); c != black {
				t.Fatalf("Expected black at (%d,%d), got %v", x, y, c)
			}
		}
	}
}

func TestRaytracer_DeterministicAcrossWorkerCounts(t *testing.T) {
	world := testWorld(t)
	camera := testCamera(2)

	render := func(workers int) []byte {
		opts := testOptions(24, 12)
		opts.Workers = workers

		rt, err := NewRaytracer(world, camera, opts)
		if err != nil {
			t.Fatalf("NewRaytracer: %v", err)
		}
		img, _, err := rt.Render(context.Background())
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		return img.Pix
	}

	single := render(1)
	parallel := render(8)
	if !bytes.Equal(single, parallel) {
		t.Error("Expected identical images regardless of worker count")
	}
}

func TestRaytracer_Stats(t *testing.T) {
	width, height := 20, 10
	opts := testOptions(width, height)

	rt, err := NewRaytracer(testWorld(t), testCamera(2), opts)
	if err != nil {
		t.Fatalf("NewRaytracer: %v", err)
	}

	_, stats, err := rt.Render(context.Background())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if stats.TotalPixels != width*height {
		t.Errorf("Expected %d pixels, got %d", width*height, stats.TotalPixels)
	}
	if stats.TotalSamples != width*height*opts.SamplesPerPixel {
		t.Errorf("Expected %d samples, got %d", width*height*opts.SamplesPerPixel, stats.TotalSamples)
	}
	if stats.Tiles != 6 || stats.TilesCompleted != 6 {
		t.Errorf("Expected 6/6 tiles, got %d/%d", stats.TilesCompleted, stats.Tiles)
	}
	if stats.BVH == nil || stats.BVH.TotalPrimitives != 4 {
		t.Errorf("Expected BVH stats over 4 primitives, got %+v", stats.BVH)
	}

	table := stats.Table()
	for _, want := range []string{"Frame", "20x10", "BVH", "Samples", "TOTAL"} {
		if !strings.Contains(table, want) {
			t.Errorf("Expected stats table to contain %q:\n%s", want, table)
		}
	}
}

func TestRaytracer_Cancelled(t *testing.T) {
	rt, err := NewRaytracer(testWorld(t), testCamera(1), testOptions(32, 32))
	if err != nil {
		t.Fatalf("NewRaytracer: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, stats, err := rt.Render(ctx)
	if !errors.Is(err, ErrInterrupted) {
		t.Fatalf("Expected ErrInterrupted, got %v", err)
	}
	if stats.TilesCompleted == stats.Tiles {
		t.Errorf("Expected cancelled render to skip tiles, completed %d/%d", stats.TilesCompleted, stats.Tiles)
	}
}

func TestVec3ToColor(t *testing.T) {
	tests := []struct {
		name     string
		input    core.Vec3
		expected color.RGBA
	}{
		{"Black", core.NewVec3(0, 0, 0), color.RGBA{0, 0, 0, 255}},
		{"White", core.NewVec3(1, 1, 1), color.RGBA{255, 255, 255, 255}},
		{"Gamma", core.NewVec3(0.25, 0.25, 0.25), color.RGBA{127, 127, 127, 255}},
		{"Clamped", core.NewVec3(4, -1, 1), color.RGBA{255, 0, 255, 255}},
		{"NaN", core.NewVec3(math.NaN(), 1, 0), color.RGBA{0, 255, 0, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := vec3ToColor(tt.input); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}
