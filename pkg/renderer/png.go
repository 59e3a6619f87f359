package renderer

import (
	"image"
	"image/png"
	"io"
	"os"

	"golang.org/x/xerrors"
)

// WritePNG encodes img as PNG to w
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return xerrors.Errorf("while encoding png: %w", err)
	}
	return nil
}

// SavePNG writes img to the file at path, replacing any existing file
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return xerrors.Errorf("while creating %s: %w", path, err)
	}

	if err := WritePNG(f, img); err != nil {
		_ = f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return xerrors.Errorf("while closing %s: %w", path, err)
	}
	return nil
}
