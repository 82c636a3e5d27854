package imageio

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// ImageData is a decoded image in the renderer's buffer layout
type ImageData struct {
	Width  int
	Height int
	Pixels []byte // row-major RGB triples, top row first
}

// ToImage wraps a row-major RGB buffer in an opaque NRGBA image
func ToImage(pixels []byte, width, height int) (*image.NRGBA, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("invalid image size %dx%d", width, height)
	}
	if len(pixels) != width*height*3 {
		return nil, fmt.Errorf("pixel buffer has %d bytes, expected %d for %dx%d", len(pixels), width*height*3, width, height)
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			src := (y*width + x) * 3
			img.SetNRGBA(x, y, color.NRGBA{R: pixels[src], G: pixels[src+1], B: pixels[src+2], A: 255})
		}
	}
	return img, nil
}

// FromImage flattens any image into the renderer's buffer layout, dropping alpha
func FromImage(img image.Image) *ImageData {
	nrgba := imaging.Clone(img)
	bounds := nrgba.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	pixels := make([]byte, 0, width*height*3)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := nrgba.NRGBAAt(x, y)
			pixels = append(pixels, c.R, c.G, c.B)
		}
	}

	return &ImageData{Width: width, Height: height, Pixels: pixels}
}

// LoadImage loads any image format imaging can open (PNG, JPEG, GIF, TIFF, BMP)
func LoadImage(filename string) (*ImageData, error) {
	img, err := imaging.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	return FromImage(img), nil
}
