package renderer

import (
	"image"
	"math"
	"time"

	"github.com/achilleasa/mizar/log"
	"github.com/achilleasa/mizar/scene"
	"github.com/achilleasa/mizar/tracer"
	"github.com/achilleasa/mizar/tracer/occlusion"
)

// Offline renderer producing the six faces of a cubemap around the camera.
type cubemapRenderer struct {
	logger log.Logger

	tree   *scene.Tree
	camera *scene.Camera
	opts   Options

	mask  *occlusion.Mask
	stats FrameStats
}

// NewCubemap creates a renderer that paints all six cubemap faces at the
// occlusion mask's resolution. The camera frustum must have a square
// cross-section and the requested frame dims may not exceed the mask
// resolution.
func NewCubemap(tree *scene.Tree, camera *scene.Camera, opts Options) (Renderer, error) {
	if tree == nil {
		return nil, ErrSceneNotDefined
	}
	if camera == nil {
		return nil, ErrCameraNotDefined
	}
	if opts.FrameW == 0 || opts.FrameH == 0 {
		return nil, ErrInvalidFrameDims
	}
	if opts.FrameW > occlusion.Size || opts.FrameH > occlusion.Size {
		return nil, ErrMaskResolution
	}
	if !camera.Frustum.Square() {
		return nil, ErrFrustumNotSquare
	}

	return &cubemapRenderer{
		logger: log.New("renderer"),
		tree:   tree,
		camera: camera,
		opts:   opts,
		mask:   occlusion.NewMask(),
	}, nil
}

func (r *cubemapRenderer) Render() ([]*image.RGBA, error) {
	start := time.Now()
	r.stats = FrameStats{Faces: make([]FaceStat, 0, tracer.NumFaces)}

	normals := r.camera.Normals()
	px := int64(math.Round(r.camera.Position[0]))
	py := int64(math.Round(r.camera.Position[1]))
	pz := int64(math.Round(r.camera.Position[2]))

	frames := make([]*image.RGBA, tracer.NumFaces)
	for face := tracer.Face(0); face < tracer.NumFaces; face++ {
		stat := FaceStat{Face: face.String()}

		tPrepare := time.Now()
		r.mask.Build(face.Normals(normals))
		stat.Prepare = time.Since(tPrepare)

		// Skip faces whose view pyramid never intersects the screen.
		if !r.mask.RootOpen() {
			r.stats.Faces = append(r.stats.Faces, stat)
			continue
		}

		tQuery := time.Now()
		r.mask.Clear(r.opts.Background)
		x, y, q := face.Project(px, py, pz)
		face.Render(r.tree, r.mask, x, y, q)
		stat.Query = time.Since(tQuery)

		tTransfer := time.Now()
		frames[face] = maskToImage(r.mask, occlusion.Size, occlusion.Size, false)
		stat.Transfer = time.Since(tTransfer)

		stat.Rendered = true
		r.stats.Faces = append(r.stats.Faces, stat)
	}
	r.stats.RenderTime = time.Since(start)

	var prepare, query, transfer time.Duration
	rendered := make([]byte, 0, tracer.NumFaces)
	for _, stat := range r.stats.Faces {
		prepare += stat.Prepare
		query += stat.Query
		transfer += stat.Transfer
		if stat.Rendered {
			rendered = append(rendered, stat.Face...)
		}
	}
	r.logger.Infof(
		"rendered frame in %d ms (prepare: %d ms, query: %d ms, transfer: %d ms, faces: %s)",
		r.stats.RenderTime.Nanoseconds()/1e6,
		prepare.Nanoseconds()/1e6, query.Nanoseconds()/1e6, transfer.Nanoseconds()/1e6,
		rendered,
	)

	return frames, nil
}

func (r *cubemapRenderer) Close() {}

func (r *cubemapRenderer) Stats() FrameStats {
	return r.stats
}

// maskToImage converts the mask's packed 0xRRGGBB pixels into an RGBA image
// of the given dims, optionally flipping rows so increasing image y runs
// top-down.
func maskToImage(mask *occlusion.Mask, w, h int, flipY bool) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		row := y
		if flipY {
			row = h - 1 - y
		}
		off := img.PixOffset(0, y)
		for x := 0; x < w; x++ {
			p := mask.At(x, row)
			img.Pix[off] = uint8(p >> 16)
			img.Pix[off+1] = uint8(p >> 8)
			img.Pix[off+2] = uint8(p)
			img.Pix[off+3] = 0xff
			off += 4
		}
	}
	return img
}
