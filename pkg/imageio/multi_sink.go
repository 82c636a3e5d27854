package imageio

import (
	"context"

	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// MultiSink hands the same image to several sinks in order, stopping at the first error
type MultiSink []renderer.ImageSink

// WriteImage writes to every sink
func (m MultiSink) WriteImage(ctx context.Context, pixels []byte, width, height int) error {
	for _, sink := range m {
		if err := sink.WriteImage(ctx, pixels, width, height); err != nil {
			return err
		}
	}
	return nil
}
