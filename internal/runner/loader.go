package runner

import (
	"fmt"
	"image"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/BeBig007/Leaffliction/internal/pipeline"
)

// Loader provides thread-safe caching of decoded images so a run that
// derives several artifacts from the same photograph decodes it once.
//
// Loader is safe for concurrent use; the batch driver may process files
// from multiple goroutines. Cached images stay in memory until Clear is
// called, so long batch runs should clear between directories.
type Loader struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewLoader creates an empty, ready-to-use image loader.
func NewLoader() *Loader {
	return &Loader{images: make(map[string]image.Image)}
}

// Load returns the decoded image for path, reading and decoding it on the
// first call and serving the cached copy afterwards. JPEG EXIF orientation
// is applied during decode. Decoded images are validated before being
// cached: a degenerate (zero-dimension) file fails with
// pipeline.ErrInvalidImage.
func (l *Loader) Load(path string) (image.Image, error) {
	l.mu.RLock()
	if img, ok := l.images[path]; ok {
		l.mu.RUnlock()
		return img, nil
	}
	l.mu.RUnlock()

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	if img.Bounds().Dx() <= 0 || img.Bounds().Dy() <= 0 {
		return nil, fmt.Errorf("image %s: %w", path, pipeline.ErrInvalidImage)
	}

	l.mu.Lock()
	l.images[path] = img
	l.mu.Unlock()
	return img, nil
}

// Clear drops every cached image, freeing the associated memory.
func (l *Loader) Clear() {
	l.mu.Lock()
	l.images = make(map[string]image.Image)
	l.mu.Unlock()
}
