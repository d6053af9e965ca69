package compressors

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrUnsupportedCompression is returned when an unsupported compression type is requested
var ErrUnsupportedCompression = errors.New("unsupported compression type")

// Compressor defines the interface for compression handlers
type Compressor interface {
	// Compress compresses the input data
	Compress(data []byte, level int) ([]byte, error)

	// Decompress wraps a reader of compressed data with a decompressing reader
	Decompress(r io.Reader) (io.ReadCloser, error)

	// Extension returns the file extension for this compression (e.g., ".zst", ".lz4", ".gz")
	Extension() string

	// DefaultLevel returns the default compression level
	DefaultLevel() int
}

// GetCompressor returns the appropriate compressor based on the compression string
func GetCompressor(compression string) (Compressor, error) {
	switch compression {
	case "zstd":
		return NewZstdCompressor(), nil
	case "lz4":
		return NewLZ4Compressor(), nil
	case "gzip":
		return NewGzipCompressor(), nil
	case "none":
		return NewNoneCompressor(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCompression, compression)
	}
}

// ForPath returns the compressor matching a file path's extension, falling
// back to the no-op compressor for uncompressed files.
func ForPath(path string) Compressor {
	switch {
	case strings.HasSuffix(strings.ToLower(path), ".gz"):
		return NewGzipCompressor()
	case strings.HasSuffix(strings.ToLower(path), ".zst"):
		return NewZstdCompressor()
	case strings.HasSuffix(strings.ToLower(path), ".lz4"):
		return NewLZ4Compressor()
	default:
		return NewNoneCompressor()
	}
}
