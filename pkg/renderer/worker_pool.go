package renderer

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// tileFunc renders a single tile
type tileFunc func(ctx context.Context, tile *Tile) error

// WorkerPool runs tile tasks on a fixed number of goroutines. The first
// failing task cancels the rest.
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &WorkerPool{numWorkers: numWorkers}
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// Run feeds tiles to the workers in order and waits for all of them. No new
// tile is handed out once ctx is done.
func (wp *WorkerPool) Run(ctx context.Context, tiles []*Tile, fn tileFunc) error {
	g, gctx := errgroup.WithContext(ctx)
	taskQueue := make(chan *Tile)

	g.Go(func() error {
		defer close(taskQueue)
		for _, tile := range tiles {
			select {
			case taskQueue <- tile:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for i := 0; i < wp.numWorkers; i++ {
		g.Go(func() error {
			for tile := range taskQueue {
				if err := fn(gctx, tile); err != nil {
					return err
				}
			}
			return nil
		})
	}

	return g.Wait()
}
