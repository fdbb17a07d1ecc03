package qr

import (
	"fmt"
	"os"
	"path/filepath"

	qrcode "github.com/skip2/go-qrcode"
)

// ImageSize is the side length in pixels of generated QR PNGs.
const ImageSize = 256

// Generator writes QR code PNGs into a fixed directory. The directory is
// injected so tests can point it at a temp dir instead of patching globals.
type Generator struct {
	dir string
}

// NewGenerator ensures dir exists and returns a generator writing into it.
func NewGenerator(dir string) (*Generator, error) {
	if dir == "" {
		return nil, fmt.Errorf("qr output dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %q: %w", dir, err)
	}
	return &Generator{dir: dir}, nil
}

// Dir returns the output directory.
func (g *Generator) Dir() string {
	return g.dir
}

// Generate encodes content into a PNG stored as filename inside the
// generator's directory.
func (g *Generator) Generate(content, filename string) error {
	if content == "" {
		return fmt.Errorf("qr content is required")
	}
	path := filepath.Join(g.dir, filepath.Base(filename))
	if err := qrcode.WriteFile(content, qrcode.Medium, ImageSize, path); err != nil {
		return fmt.Errorf("write qr image %q: %w", path, err)
	}
	return nil
}

// Remove deletes the named image, tolerating a file that is already gone.
func (g *Generator) Remove(filename string) error {
	path := filepath.Join(g.dir, filepath.Base(filename))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove qr image %q: %w", path, err)
	}
	return nil
}
