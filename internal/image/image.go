// internal/image/image.go
package image

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrEmpty means the file exists but holds no bytes.
// An empty image is never a valid transfer candidate.
var ErrEmpty = errors.New("image: file is empty")

// Load reads the whole firmware image at path into memory.
// One attempt, no retries: open, stat and read failures propagate
// immediately. A short read is a hard failure, not silently tolerated.
func Load(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("image: open %s: %w", path, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("image: stat %s: %w", path, err)
	}
	if fi.Size() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmpty, path)
	}

	buf := make([]byte, fi.Size())
	if _, err := io.ReadFull(f, buf); err != nil {
		return nil, fmt.Errorf("image: read %s: %w", path, err)
	}

	return buf, nil
}
