package cmd

import (
	"github.com/df07/go-bvh-pathtracer/pkg/renderer"
	"github.com/urfave/cli"
)

// NewApp assembles the command line interface.
func NewApp() *cli.App {
	defaults := renderer.DefaultOptions()

	app := cli.NewApp()
	app.Name = "bvh-pathtracer"
	app.Usage = "render scenes with a BVH accelerated path tracer"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a single frame to a PNG file",
			Description: `
Build the selected scene, wrap it in a bounding volume hierarchy and path trace
it tile by tile on all workers. Interrupting the render (Ctrl+C) stops starting
new tiles and saves the partially rendered frame.`,
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Value: defaults.Width,
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: defaults.Height,
					Usage: "frame height",
				},
				cli.IntFlag{
					Name:  "spp",
					Value: defaults.SamplesPerPixel,
					Usage: "samples per pixel",
				},
				cli.IntFlag{
					Name:  "depth",
					Value: defaults.MaxDepth,
					Usage: "maximum number of bounces per camera ray",
				},
				cli.IntFlag{
					Name:  "tile",
					Value: defaults.TileSize,
					Usage: "tile edge length in pixels",
				},
				cli.IntFlag{
					Name:  "workers",
					Value: 0,
					Usage: "number of render workers; 0 uses every CPU",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: defaults.Seed,
					Usage: "seed for scene generation and sampling",
				},
				cli.StringFlag{
					Name:  "scene, s",
					Value: "random",
					Usage: "scene to render (see list-scenes)",
				},
				cli.StringFlag{
					Name:  "obj",
					Usage: "Wavefront OBJ file for the mesh scene",
				},
				cli.StringFlag{
					Name:  "offset",
					Value: "0,0,0",
					Usage: "x,y,z translation applied to the OBJ mesh",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "render.png",
					Usage: "image filename for the rendered frame",
				},
			},
			Action: RenderFrame,
		},
		{
			Name:   "list-scenes",
			Usage:  "list the built-in scenes",
			Action: ListScenes,
		},
	}

	return app
}
