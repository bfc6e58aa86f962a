package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/achilleasa/mizar/scene"
	"github.com/achilleasa/mizar/scene/io"
	"github.com/urfave/cli"
)

// BuildScene compiles a voxel point list into a binary compressed scene.
// Each non-empty input line holds "x y z rrggbb" with grid coordinates in
// decimal and the color in hex.
func BuildScene(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing voxel file argument")
	}

	depth := ctx.Int("depth")
	start := time.Now()
	voxels, err := readVoxels(ctx.Args().First())
	if err != nil {
		return err
	}
	logger.Noticef("parsed %d voxels in %d ms", len(voxels), time.Since(start).Nanoseconds()/1e6)

	start = time.Now()
	tree, err := scene.Build(voxels, depth)
	if err != nil {
		return err
	}
	nodes, leaves := tree.Count()
	logger.Noticef("built octree with %d nodes and %d leaves in %d ms", nodes, leaves, time.Since(start).Nanoseconds()/1e6)

	return io.WriteScene(ctx.String("out"), tree, scene.NewCamera())
}

func readVoxels(voxelFile string) ([]scene.Voxel, error) {
	f, err := os.Open(voxelFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var voxels []scene.Voxel
	lineNum := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 4 {
			return nil, fmt.Errorf("%s: line %d: expected 4 fields; got %d", voxelFile, lineNum, len(fields))
		}

		var v scene.Voxel
		coords := [3]*uint32{&v.X, &v.Y, &v.Z}
		for i, dst := range coords {
			val, err := strconv.ParseUint(fields[i], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("%s: line %d: invalid coordinate %q", voxelFile, lineNum, fields[i])
			}
			*dst = uint32(val)
		}
		color, err := strconv.ParseUint(fields[3], 16, 32)
		if err != nil || color > 0xffffff {
			return nil, fmt.Errorf("%s: line %d: invalid color %q", voxelFile, lineNum, fields[3])
		}
		v.Color = uint32(color)

		voxels = append(voxels, v)
	}
	if err = scanner.Err(); err != nil {
		return nil, err
	}
	return voxels, nil
}
