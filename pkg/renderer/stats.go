package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width          int           // Image width in pixels
	Height         int           // Image height in pixels
	TotalPixels    int           // Total number of pixels rendered
	TotalSamples   int           // Total number of camera samples taken
	AverageSamples float64       // Average samples per pixel
	NumWorkers     int           // Workers used for the render
	RenderTime     time.Duration // Wall clock time spent tracing
}

// add merges the counters of a single row into the totals
func (s *RenderStats) add(row RenderStats) {
	s.TotalPixels += row.TotalPixels
	s.TotalSamples += row.TotalSamples
}

// finish computes the derived fields once every row has been counted
func (s *RenderStats) finish(elapsed time.Duration) {
	s.RenderTime = elapsed
	if s.TotalPixels > 0 {
		s.AverageSamples = float64(s.TotalSamples) / float64(s.TotalPixels)
	}
}

// SamplesPerSecond reports the camera-ray throughput of the render
func (s RenderStats) SamplesPerSecond() float64 {
	if s.RenderTime <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.RenderTime.Seconds()
}
