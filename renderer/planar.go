package renderer

import (
	"image"
	"time"

	"github.com/achilleasa/mizar/log"
	"github.com/achilleasa/mizar/scene"
	"github.com/achilleasa/mizar/tracer"
	"github.com/achilleasa/mizar/tracer/occlusion"
)

// Offline renderer producing a single planar frame through the camera's
// view pyramid, using the direction-agnostic traverser.
type planarRenderer struct {
	logger log.Logger

	tree   *scene.Tree
	camera *scene.Camera
	opts   Options

	mask  *occlusion.Mask
	stats FrameStats
}

// NewPlanar creates a renderer that paints a single FrameW x FrameH target.
// The camera frustum spans the full mask square; frames smaller than the
// mask crop the view pyramid to the matching sub-rectangle. The frame dims
// may not exceed the occlusion mask resolution.
func NewPlanar(tree *scene.Tree, camera *scene.Camera, opts Options) (Renderer, error) {
	r, err := newPlanar(tree, camera, opts)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func newPlanar(tree *scene.Tree, camera *scene.Camera, opts Options) (*planarRenderer, error) {
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

	return &planarRenderer{
		logger: log.New("renderer"),
		tree:   tree,
		camera: camera,
		opts:   opts,
		mask:   occlusion.NewMask(),
	}, nil
}

func (r *planarRenderer) Render() ([]*image.RGBA, error) {
	start := time.Now()

	w, h := int(r.opts.FrameW), int(r.opts.FrameH)
	r.mask.BuildRect(w, h)
	r.mask.Clear(r.opts.Background)
	tracer.RenderView(r.tree, r.camera, r.mask)

	// Mask rows run bottom-up relative to the view pyramid; image rows run
	// top-down.
	frame := maskToImage(r.mask, w, h, true)

	r.stats = FrameStats{RenderTime: time.Since(start)}
	r.logger.Infof("rendered frame in %d ms", r.stats.RenderTime.Nanoseconds()/1e6)

	return []*image.RGBA{frame}, nil
}

func (r *planarRenderer) Close() {}

func (r *planarRenderer) Stats() FrameStats {
	return r.stats
}
