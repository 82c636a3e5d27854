package renderer

import "context"

// ImageSink receives a finished image: a row-major buffer of width*height RGB
// triples, top row first. WriteImage is called exactly once per render.
type ImageSink interface {
	WriteImage(ctx context.Context, pixels []byte, width, height int) error
}

// ImageSinkFunc adapts a function to an ImageSink
type ImageSinkFunc func(ctx context.Context, pixels []byte, width, height int) error

// WriteImage calls f
func (f ImageSinkFunc) WriteImage(ctx context.Context, pixels []byte, width, height int) error {
	return f(ctx, pixels, width, height)
}
