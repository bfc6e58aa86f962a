package cmd

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/achilleasa/mizar/scene"
	"github.com/achilleasa/mizar/scene/io"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// SceneInfo prints a summary of a compiled scene file.
func SceneInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing scene file argument")
	}

	tree, camera, err := io.ReadScene(ctx.Args().First())
	if err != nil {
		return err
	}

	nodes, leaves := tree.Count()

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Property", "Value"})
	table.Append([]string{"Nodes", fmt.Sprintf("%d", nodes)})
	table.Append([]string{"Leaves", fmt.Sprintf("%d", leaves)})
	table.Append([]string{"Scene depth", fmt.Sprintf("%d", scene.Depth)})
	table.Append([]string{"Camera position", fmt.Sprintf("(%.0f, %.0f, %.0f)", camera.Position[0], camera.Position[1], camera.Position[2])})
	table.Append([]string{"Camera yaw/pitch", fmt.Sprintf("%.3f / %.3f", camera.Yaw, camera.Pitch)})
	table.Append([]string{"Frustum", camera.Frustum.String()})
	table.Render()

	logger.Noticef("scene info\n%s", buf.String())
	return nil
}
