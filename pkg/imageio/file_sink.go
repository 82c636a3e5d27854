package imageio

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileSink writes the image to a file, choosing the format from the extension
type FileSink struct {
	Path string
}

// NewFileSink validates the extension up front so a long render cannot end
// in an unsupported format
func NewFileSink(path string) (*FileSink, error) {
	if _, err := FormatFromFilename(path); err != nil {
		return nil, err
	}
	return &FileSink{Path: path}, nil
}

// WriteImage creates parent directories as needed and encodes the image
func (s *FileSink) WriteImage(ctx context.Context, pixels []byte, width, height int) error {
	format, err := FormatFromFilename(s.Path)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(s.Path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	if err := EncodePixels(writer, pixels, width, height, format); err != nil {
		return err
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.Path, err)
	}
	return file.Close()
}
