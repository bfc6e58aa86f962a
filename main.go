package main

import (
	"os"

	"github.com/achilleasa/mizar/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "mizar"
	app.Usage = "render sparse voxel octree scenes without rasterization"
	app.Version = "0.0.1"
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

	cameraFlags := []cli.Flag{
		cli.StringFlag{
			Name:  "eye",
			Usage: "camera position as x,y,z in scene units (overrides the scene file)",
		},
		cli.Float64Flag{
			Name:  "yaw",
			Usage: "camera yaw in radians (overrides the scene file)",
		},
		cli.Float64Flag{
			Name:  "pitch",
			Usage: "camera pitch in radians (overrides the scene file)",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:  "build",
			Usage: "compile a voxel point list into a binary compressed scene",
			Description: `
Parse voxel samples from a text file (one "x y z rrggbb" entry per line),
build a sparse voxel octree with per-node average colors and package it in a
zip archive which can be supplied as an argument to the render command.`,
			ArgsUsage: "voxel_file.txt",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "depth, d",
					Value: 10,
					Usage: "octree subdivision depth of the voxel grid",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "scene.zip",
					Usage: "filename for the compiled scene",
				},
			},
			Action: cmd.BuildScene,
		},
		{
			Name:      "info",
			Usage:     "print a summary of a compiled scene",
			ArgsUsage: "scene.zip",
			Action:    cmd.SceneInfo,
		},
		{
			Name:  "render",
			Usage: "render scene",
			Subcommands: []cli.Command{
				{
					Name:  "frame",
					Usage: "render single frame",
					Description: `
Render the scene into the six faces of a cubemap, writing one png per
rendered face. With --planar a single cropped frame is produced using the
direction-agnostic traverser instead.`,
					ArgsUsage: "scene.zip",
					Flags: append([]cli.Flag{
						cli.IntFlag{
							Name:  "width",
							Value: 512,
							Usage: "frame width",
						},
						cli.IntFlag{
							Name:  "height",
							Value: 512,
							Usage: "frame height",
						},
						cli.BoolFlag{
							Name:  "planar",
							Usage: "render a single planar frame instead of a cubemap",
						},
						cli.StringFlag{
							Name:  "out, o",
							Value: "frame.png",
							Usage: "image filename for the rendered frame",
						},
					}, cameraFlags...),
					Action: cmd.RenderFrame,
				},
				{
					Name:        "interactive",
					Usage:       "render interactive view of the scene",
					Description: `Open a window and re-render the scene as the camera moves.`,
					ArgsUsage:   "scene.zip",
					Flags: append([]cli.Flag{
						cli.IntFlag{
							Name:  "width",
							Value: 512,
							Usage: "frame width",
						},
						cli.IntFlag{
							Name:  "height",
							Value: 512,
							Usage: "frame height",
						},
					}, cameraFlags...),
					Action: cmd.RenderInteractive,
				},
			},
		},
	}

	app.Run(os.Args)
}
