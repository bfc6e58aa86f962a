package renderer

import "errors"

var (
	ErrSceneNotDefined  = errors.New("renderer: no scene defined")
	ErrCameraNotDefined = errors.New("renderer: no camera defined")
	ErrInvalidFrameDims = errors.New("renderer: frame dimensions must be non-zero")
	ErrMaskResolution   = errors.New("renderer: frame dimensions exceed the occlusion mask resolution")
	ErrFrustumNotSquare = errors.New("renderer: view frustum cross-section must be square")
)
