package vision

import (
	"fmt"
	"image"
	"image/png"
	"os"
)

// DecodePNG loads a template image from disk and normalizes it to an
// *image.RGBA anchored at the origin.
func DecodePNG(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening template %q: %w", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding template %q: %w", path, err)
	}
	return ToRGBA(img), nil
}

// EncodePNG writes a frame to disk, creating or truncating the file. Used
// for capture output and debug artifacts.
func EncodePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %q: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %q: %w", path, err)
	}
	return f.Close()
}
