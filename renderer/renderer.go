// Package renderer wraps the traversal core into frame-producing renderers:
// an offline cubemap renderer, an offline planar renderer and an
// interactive opengl viewer.
package renderer

import "image"

type Renderer interface {
	// Render a frame and return its image buffers (6 for the cubemap
	// path, 1 for the planar path, none for the interactive path which
	// presents frames itself).
	Render() ([]*image.RGBA, error)

	// Shutdown renderer and release any attached resources.
	Close()

	// Get render statistics for the last rendered frame.
	Stats() FrameStats
}
