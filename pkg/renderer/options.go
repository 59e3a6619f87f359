package renderer

import (
	"runtime"

	"golang.org/x/xerrors"
)

type Options struct {
	// Frame dims.
	Width  int
	Height int

	// Number of jittered camera rays averaged into each pixel.
	SamplesPerPixel int

	// Maximum number of bounces per camera ray. Zero renders black.
	MaxDepth int

	// Edge length of the square tiles the frame is split into.
	TileSize int

	// Number of concurrent tile workers; zero or less uses every CPU.
	Workers int

	// Base seed for the per-tile random generators.
	Seed int64
}

// DefaultOptions returns sensible default values
func DefaultOptions() Options {
	return Options{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		TileSize:        32,
		Workers:         runtime.NumCPU(),
		Seed:            42,
	}
}

// AspectRatio returns width / height
func (o Options) AspectRatio() float64 {
	return float64(o.Width) / float64(o.Height)
}

// Validate checks that the options describe a renderable frame
func (o Options) Validate() error {
	switch {
	case o.Width <= 0 || o.Height <= 0:
		return xerrors.Errorf("frame size %dx%d: %w", o.Width, o.Height, ErrInvalidOptions)
	case o.SamplesPerPixel <= 0:
		return xerrors.Errorf("%d samples per pixel: %w", o.SamplesPerPixel, ErrInvalidOptions)
	case o.MaxDepth < 0:
		return xerrors.Errorf("max depth %d: %w", o.MaxDepth, ErrInvalidOptions)
	case o.TileSize <= 0:
		return xerrors.Errorf("tile size %d: %w", o.TileSize, ErrInvalidOptions)
	}
	return nil
}

// workerCount resolves the configured worker count
func (o Options) workerCount() int {
	if o.Workers <= 0 {
		return runtime.NumCPU()
	}
	return o.Workers
}
