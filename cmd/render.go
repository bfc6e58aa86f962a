package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/achilleasa/mizar/renderer"
	"github.com/achilleasa/mizar/scene"
	"github.com/achilleasa/mizar/scene/io"
	"github.com/achilleasa/mizar/tracer"
	"github.com/achilleasa/mizar/types"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// RenderFrame renders a still frame. By default all six cubemap faces are
// written as separate images; with --planar a single cropped frame is
// produced instead.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	tree, camera, opts, err := setupRender(ctx)
	if err != nil {
		return err
	}

	var r renderer.Renderer
	if ctx.Bool("planar") {
		r, err = renderer.NewPlanar(tree, camera, opts)
	} else {
		r, err = renderer.NewCubemap(tree, camera, opts)
	}
	if err != nil {
		return err
	}
	defer r.Close()

	frames, err := r.Render()
	if err != nil {
		return err
	}

	outFile := ctx.String("out")
	for i, frame := range frames {
		if frame == nil {
			continue
		}
		name := outFile
		if len(frames) > 1 {
			name = faceFilename(outFile, tracer.Face(i))
		}
		if err = exportPNG(name, frame); err != nil {
			return err
		}
	}

	displayFrameStats(r.Stats())
	return nil
}

// RenderInteractive opens a window and re-renders the scene as the camera
// is moved with the keyboard and mouse.
func RenderInteractive(ctx *cli.Context) error {
	setupLogging(ctx)

	// glfw event handling must run on the main OS thread.
	runtime.LockOSThread()

	tree, camera, opts, err := setupRender(ctx)
	if err != nil {
		return err
	}

	r, err := renderer.NewInteractive(tree, camera, opts)
	if err != nil {
		return err
	}
	defer r.Close()

	_, err = r.Render()
	return err
}

// setupRender loads the scene and applies camera overrides from the cli
// flags.
func setupRender(ctx *cli.Context) (*scene.Tree, *scene.Camera, renderer.Options, error) {
	opts := renderer.DefaultOptions()
	opts.FrameW = uint32(ctx.Int("width"))
	opts.FrameH = uint32(ctx.Int("height"))

	if ctx.NArg() != 1 {
		return nil, nil, opts, errors.New("missing scene file argument")
	}

	tree, camera, err := io.ReadScene(ctx.Args().First())
	if err != nil {
		return nil, nil, opts, err
	}

	if ctx.IsSet("eye") {
		camera.Position, err = parseEye(ctx.String("eye"))
		if err != nil {
			return nil, nil, opts, err
		}
	}
	if ctx.IsSet("yaw") {
		camera.Yaw = ctx.Float64("yaw")
	}
	if ctx.IsSet("pitch") {
		camera.Pitch = ctx.Float64("pitch")
	}

	return tree, camera, opts, nil
}

func parseEye(spec string) (types.DVec3, error) {
	var pos types.DVec3
	fields := strings.Split(spec, ",")
	if len(fields) != 3 {
		return pos, fmt.Errorf("invalid eye position %q; expected x,y,z", spec)
	}
	for i, field := range fields {
		val, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return pos, fmt.Errorf("invalid eye position %q; expected x,y,z", spec)
		}
		pos[i] = val
	}
	return pos, nil
}

// faceFilename derives a per-face image name: frame.png -> frame_yp.png.
func faceFilename(outFile string, face tracer.Face) string {
	ext := filepath.Ext(outFile)
	suffix := strings.Replace(face.String(), "+", "p", 1)
	suffix = strings.Replace(suffix, "-", "n", 1)
	return fmt.Sprintf("%s_%s%s", strings.TrimSuffix(outFile, ext), suffix, ext)
}

func exportPNG(imgFile string, frame *image.RGBA) error {
	f, err := os.Create(imgFile)
	if err != nil {
		return err
	}
	defer f.Close()

	start := time.Now()
	if err = png.Encode(f, frame); err != nil {
		return err
	}
	logger.Noticef("wrote frame to %s in %d ms", imgFile, time.Since(start).Nanoseconds()/1e6)
	return nil
}

func displayFrameStats(stats renderer.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Face", "Rendered", "Prepare", "Query", "Transfer"})
	for _, stat := range stats.Faces {
		table.Append([]string{
			stat.Face,
			fmt.Sprintf("%t", stat.Rendered),
			fmt.Sprintf("%s", stat.Prepare),
			fmt.Sprintf("%s", stat.Query),
			fmt.Sprintf("%s", stat.Transfer),
		})
	}
	table.SetFooter([]string{"", "", "", "TOTAL", fmt.Sprintf("%s", stats.RenderTime)})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
