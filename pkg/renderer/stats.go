package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/olekukonko/tablewriter"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width, Height   int
	SamplesPerPixel int
	MaxDepth        int

	TotalPixels    int // Pixels in completed tiles
	TotalSamples   int // Camera rays traced, including partially rendered tiles
	Tiles          int
	TilesCompleted int
	Workers        int

	RenderTime time.Duration

	// Acceleration structure shape; nil when the world is not a BVH.
	BVH *geometry.BVHStats
}

// SamplesPerSecond returns the camera ray throughput
func (s RenderStats) SamplesPerSecond() float64 {
	if s.RenderTime <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.RenderTime.Seconds()
}

// Table builds a tabular representation of the render statistics.
func (s RenderStats) Table() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Stage", "Metric", "Value"})

	table.Append([]string{"Frame", "Size", fmt.Sprintf("%dx%d", s.Width, s.Height)})
	table.Append([]string{"", "Samples per pixel", fmt.Sprintf("%d", s.SamplesPerPixel)})
	table.Append([]string{"", "Max depth", fmt.Sprintf("%d", s.MaxDepth)})
	table.Append([]string{" ", " ", " "})

	if s.BVH != nil {
		table.Append([]string{"BVH", "Primitives", fmt.Sprintf("%d", s.BVH.TotalPrimitives)})
		table.Append([]string{"", "Nodes", fmt.Sprintf("%d", s.BVH.TotalNodes)})
		table.Append([]string{"", "Leaves", fmt.Sprintf("%d", s.BVH.LeafNodes)})
		table.Append([]string{"", "Max depth", fmt.Sprintf("%d", s.BVH.MaxDepth)})
		table.Append([]string{"", "Avg leaf depth", fmt.Sprintf("%.1f", s.BVH.AvgDepth)})
		table.Append([]string{" ", " ", " "})
	}

	table.Append([]string{"Render", "Tiles", fmt.Sprintf("%d/%d", s.TilesCompleted, s.Tiles)})
	table.Append([]string{"", "Workers", fmt.Sprintf("%d", s.Workers)})
	table.Append([]string{"", "Pixels", fmt.Sprintf("%d", s.TotalPixels)})
	table.Append([]string{"", "Samples", fmt.Sprintf("%d", s.TotalSamples)})
	table.Append([]string{"", "Samples/sec", fmt.Sprintf("%.0f", s.SamplesPerSecond())})
	table.SetFooter([]string{"", "TOTAL", s.RenderTime.String()})

	table.Render()
	return buf.String()
}
