package renderer

import (
	"testing"

	"github.com/achilleasa/mizar/scene"
	"github.com/achilleasa/mizar/tracer"
	"github.com/achilleasa/mizar/tracer/occlusion"
)

func TestRendererOptionValidation(t *testing.T) {
	tree := scene.EmptyTree()
	camera := scene.NewCamera()
	opts := DefaultOptions()

	specs := []struct {
		descr  string
		tree   *scene.Tree
		camera *scene.Camera
		mutate func(*Options)
		want   error
	}{
		{descr: "no scene", camera: camera, want: ErrSceneNotDefined},
		{descr: "no camera", tree: tree, want: ErrCameraNotDefined},
		{
			descr: "zero frame dims", tree: tree, camera: camera,
			mutate: func(o *Options) { o.FrameW = 0 },
			want:   ErrInvalidFrameDims,
		},
		{
			descr: "frame exceeds mask", tree: tree, camera: camera,
			mutate: func(o *Options) { o.FrameH = occlusion.Size + 1 },
			want:   ErrMaskResolution,
		},
	}

	for _, spec := range specs {
		o := opts
		if spec.mutate != nil {
			spec.mutate(&o)
		}
		if _, err := NewCubemap(spec.tree, spec.camera, o); err != spec.want {
			t.Fatalf("%s: expected cubemap error %v; got %v", spec.descr, spec.want, err)
		}
		if _, err := NewPlanar(spec.tree, spec.camera, o); err != spec.want {
			t.Fatalf("%s: expected planar error %v; got %v", spec.descr, spec.want, err)
		}
	}

	squashed := scene.NewCamera()
	squashed.Frustum.Top = 0.5
	if _, err := NewCubemap(tree, squashed, opts); err != ErrFrustumNotSquare {
		t.Fatalf("expected non-square frustum error; got %v", err)
	}
}

func TestPlanarRenderBackground(t *testing.T) {
	opts := DefaultOptions()
	opts.FrameW, opts.FrameH = 32, 32

	r, err := NewPlanar(scene.EmptyTree(), scene.NewCamera(), opts)
	if err != nil {
		t.Fatalf("expected renderer setup to succeed; got %v", err)
	}
	defer r.Close()

	frames, err := r.Render()
	if err != nil {
		t.Fatalf("expected render to succeed; got %v", err)
	}
	if len(frames) != 1 {
		t.Fatalf("expected a single frame; got %d", len(frames))
	}

	frame := frames[0]
	if frame.Bounds().Dx() != 32 || frame.Bounds().Dy() != 32 {
		t.Fatalf("expected a 32x32 frame; got %v", frame.Bounds())
	}
	for i := 0; i < len(frame.Pix); i += 4 {
		if frame.Pix[i] != 0xc0 || frame.Pix[i+1] != 0xc0 || frame.Pix[i+2] != 0xc0 || frame.Pix[i+3] != 0xff {
			t.Fatalf("expected background pixel at offset %d; got %v", i, frame.Pix[i:i+4])
		}
	}
}

func TestPlanarRenderSolidScene(t *testing.T) {
	opts := DefaultOptions()
	opts.FrameW, opts.FrameH = 32, 32

	r, err := NewPlanar(solidTree(0x336699), scene.NewCamera(), opts)
	if err != nil {
		t.Fatalf("expected renderer setup to succeed; got %v", err)
	}
	defer r.Close()

	frames, err := r.Render()
	if err != nil {
		t.Fatalf("expected render to succeed; got %v", err)
	}

	frame := frames[0]
	for i := 0; i < len(frame.Pix); i += 4 {
		if frame.Pix[i] != 0x33 || frame.Pix[i+1] != 0x66 || frame.Pix[i+2] != 0x99 {
			t.Fatalf("expected solid pixel at offset %d; got %v", i, frame.Pix[i:i+4])
		}
	}
}

// With the default 90 degree frustum aimed down the +z axis exactly one
// cubemap face is visible; the other five report closed masks and produce
// no buffers.
func TestCubemapRenderSolidScene(t *testing.T) {
	r, err := NewCubemap(solidTree(0x336699), scene.NewCamera(), DefaultOptions())
	if err != nil {
		t.Fatalf("expected renderer setup to succeed; got %v", err)
	}
	defer r.Close()

	frames, err := r.Render()
	if err != nil {
		t.Fatalf("expected render to succeed; got %v", err)
	}
	if len(frames) != tracer.NumFaces {
		t.Fatalf("expected %d frame slots; got %d", tracer.NumFaces, len(frames))
	}

	for face, frame := range frames {
		if tracer.Face(face) == tracer.FaceZPos {
			if frame == nil {
				t.Fatalf("expected the z+ face to be rendered")
			}
			for i := 0; i < len(frame.Pix); i += 4 {
				if frame.Pix[i] != 0x33 || frame.Pix[i+1] != 0x66 || frame.Pix[i+2] != 0x99 {
					t.Fatalf("expected solid pixel at offset %d; got %v", i, frame.Pix[i:i+4])
				}
			}
			continue
		}
		if frame != nil {
			t.Fatalf("expected face %s to be skipped", tracer.Face(face))
		}
	}

	stats := r.Stats()
	if len(stats.Faces) != tracer.NumFaces {
		t.Fatalf("expected stats for %d faces; got %d", tracer.NumFaces, len(stats.Faces))
	}
	rendered := 0
	for _, stat := range stats.Faces {
		if stat.Rendered {
			rendered++
		}
	}
	if rendered != 1 {
		t.Fatalf("expected exactly one rendered face; got %d", rendered)
	}
}

func TestCubemapRenderIdempotent(t *testing.T) {
	voxels := []scene.Voxel{
		{X: 2, Y: 2, Z: 3, Color: 0xff0000},
		{X: 0, Y: 1, Z: 3, Color: 0x00ff00},
	}
	tree, err := scene.Build(voxels, 2)
	if err != nil {
		t.Fatalf("expected build to succeed; got %v", err)
	}

	r, err := NewCubemap(tree, scene.NewCamera(), DefaultOptions())
	if err != nil {
		t.Fatalf("expected renderer setup to succeed; got %v", err)
	}
	defer r.Close()

	first, err := r.Render()
	if err != nil {
		t.Fatalf("expected render to succeed; got %v", err)
	}
	second, err := r.Render()
	if err != nil {
		t.Fatalf("expected render to succeed; got %v", err)
	}

	for face := range first {
		if (first[face] == nil) != (second[face] == nil) {
			t.Fatalf("expected face %s to render identically across calls", tracer.Face(face))
		}
		if first[face] == nil {
			continue
		}
		for i := range first[face].Pix {
			if first[face].Pix[i] != second[face].Pix[i] {
				t.Fatalf("face %s: expected identical frames; byte %d differs", tracer.Face(face), i)
			}
		}
	}
}

func solidTree(color int32) *scene.Tree {
	tree := scene.EmptyTree()
	for i := 0; i < 8; i++ {
		tree.Nodes[0].Colors[i] = color
	}
	return tree
}
