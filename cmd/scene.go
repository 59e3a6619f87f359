package cmd

import (
	"bytes"

	"github.com/df07/go-bvh-pathtracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// ListScenes displays the scenes accepted by the render command.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Description"})
	for _, name := range scene.Names() {
		table.Append([]string{name, scene.Description(name)})
	}
	table.Render()

	logger.Noticef("available scenes\n%s", buf.String())
	return nil
}
