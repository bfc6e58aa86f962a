package renderer

import "time"

// Per-face statistics for one cubemap render call.
type FaceStat struct {
	// Face label.
	Face string

	// False when the face's view pyramid was empty and rendering was
	// skipped.
	Rendered bool

	// Time to rebuild the occlusion mask.
	Prepare time.Duration

	// Time spent traversing the octree.
	Query time.Duration

	// Time to convert and hand off the pixel buffer.
	Transfer time.Duration
}

type FrameStats struct {
	Faces []FaceStat

	// Total frame time.
	RenderTime time.Duration
}
