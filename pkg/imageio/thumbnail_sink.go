package imageio

import (
	"context"
	"image"

	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"github.com/nfnt/resize"
)

// Thumbnail shrinks img to fit within maxSize x maxSize, keeping the aspect ratio.
// Images already small enough are returned unchanged.
func Thumbnail(img image.Image, maxSize uint) image.Image {
	return resize.Thumbnail(maxSize, maxSize, img, resize.Lanczos3)
}

// ThumbnailSink downsizes the image before passing it on to another sink
type ThumbnailSink struct {
	MaxSize uint
	Next    renderer.ImageSink
}

// NewThumbnailSink creates a sink that forwards a thumbnail of at most maxSize pixels per side
func NewThumbnailSink(maxSize uint, next renderer.ImageSink) *ThumbnailSink {
	return &ThumbnailSink{MaxSize: maxSize, Next: next}
}

// WriteImage resizes the buffer and forwards it
func (s *ThumbnailSink) WriteImage(ctx context.Context, pixels []byte, width, height int) error {
	img, err := ToImage(pixels, width, height)
	if err != nil {
		return err
	}

	thumb := FromImage(Thumbnail(img, s.MaxSize))
	return s.Next.WriteImage(ctx, thumb.Pixels, thumb.Width, thumb.Height)
}
