// Package assets reads texture images from disk.
package assets

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sync"

	"github.com/iburimskiy/solar-system/internal/errs"
)

// Loader decodes images relative to Root and remembers the outcome, including
// failures, so a missing file is only reported once.
type Loader struct {
	Root string

	mu    sync.Mutex
	cache map[string]result
}

type result struct {
	img image.Image
	err error
}

func NewLoader(root string) *Loader {
	return &Loader{Root: root, cache: make(map[string]result)}
}

// Load returns the decoded image. Errors are *errs.ResourceLoadError.
func (l *Loader) Load(path string) (image.Image, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if r, ok := l.cache[path]; ok {
		return r.img, r.err
	}
	img, err := l.decode(path)
	if err != nil {
		err = &errs.ResourceLoadError{Path: path, Err: err}
	}
	l.cache[path] = result{img: img, err: err}
	return img, err
}

func (l *Loader) decode(path string) (image.Image, error) {
	if path == "" {
		return nil, errors.New("empty path")
	}
	full := path
	if !filepath.IsAbs(full) {
		full = filepath.Join(l.Root, path)
	}
	f, err := os.Open(full)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("empty image %dx%d", b.Dx(), b.Dy())
	}
	return img, nil
}
