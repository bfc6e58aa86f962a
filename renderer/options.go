package renderer

type Options struct {
	// Frame dims. The planar renderer crops its output to these; cubemap
	// faces always span the full mask resolution.
	FrameW uint32
	FrameH uint32

	// Packed background color for pixels no voxel reaches.
	Background uint32
}

// DefaultOptions returns the options the command layer starts from.
func DefaultOptions() Options {
	return Options{
		FrameW:     512,
		FrameH:     512,
		Background: 0xc0c0c0c0,
	}
}
