package io

import (
	"archive/zip"
	"encoding/gob"
	"fmt"
	"os"
	"time"

	"github.com/achilleasa/mizar/log"
	"github.com/achilleasa/mizar/scene"
)

const (
	nodesFile  = "nodes.bin"
	cameraFile = "camera.bin"
)

var logger = log.New("io")

// WriteScene stores a compiled octree and its camera as a zip archive of
// gob streams.
func WriteScene(sceneFile string, tree *scene.Tree, camera *scene.Camera) error {
	logger.Infof("writing compressed scene to %s", sceneFile)
	start := time.Now()

	zipFile, err := os.Create(sceneFile)
	if err != nil {
		return err
	}
	defer zipFile.Close()

	zw := zip.NewWriter(zipFile)
	defer zw.Close()

	// Write octree nodes
	cw, err := zw.Create(nodesFile)
	if err != nil {
		return err
	}
	if err = gob.NewEncoder(cw).Encode(tree.Nodes); err != nil {
		return err
	}

	// Write camera data
	cw, err = zw.Create(cameraFile)
	if err != nil {
		return err
	}
	if err = gob.NewEncoder(cw).Encode(camera); err != nil {
		return err
	}

	logger.Infof("compressed scene in %d ms", time.Since(start).Nanoseconds()/1e6)
	return nil
}

// ReadScene loads a compiled octree and camera from a zip archive produced
// by WriteScene. The octree's structural invariants are validated before
// the scene is handed to a caller.
func ReadScene(sceneFile string) (*scene.Tree, *scene.Camera, error) {
	logger.Infof("parsing compiled scene from %s", sceneFile)
	start := time.Now()

	zr, err := zip.OpenReader(sceneFile)
	if err != nil {
		return nil, nil, err
	}
	defer zr.Close()

	tree := &scene.Tree{}
	camera := scene.NewCamera()
	var target interface{}
	for _, f := range zr.File {
		switch f.Name {
		case nodesFile:
			target = &tree.Nodes
		case cameraFile:
			target = camera
		default:
			logger.Warningf("unknown file %s in scene zip file; skipping", f.Name)
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, nil, err
		}
		err = gob.NewDecoder(rc).Decode(target)
		rc.Close()
		if err != nil {
			return nil, nil, fmt.Errorf("io: failed to load %s: %s", f.Name, err.Error())
		}
	}

	if err = tree.Validate(); err != nil {
		return nil, nil, err
	}

	logger.Infof("loaded scene in %d ms", time.Since(start).Nanoseconds()/1e6)
	return tree, camera, nil
}
