package renderer

import "errors"

var (
	ErrInvalidOptions   = errors.New("renderer: invalid render options")
	ErrSceneNotDefined  = errors.New("renderer: no scene defined")
	ErrCameraNotDefined = errors.New("renderer: no camera defined")
	ErrInterrupted      = errors.New("renderer: interrupted while rendering")
)
