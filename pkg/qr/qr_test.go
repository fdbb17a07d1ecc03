package qr

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGenerateWritesPNG(t *testing.T) {
	gen, err := NewGenerator(t.TempDir())
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}

	if err := gen.Generate("/containers/7", "container_7.png"); err != nil {
		t.Fatalf("generate: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(gen.Dir(), "container_7.png"))
	if err != nil {
		t.Fatalf("read generated file: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected non-empty png")
	}
	// PNG signature
	if string(data[1:4]) != "PNG" {
		t.Fatalf("expected png header, got %q", data[:8])
	}
}

func TestGenerateRejectsEmptyContent(t *testing.T) {
	gen, err := NewGenerator(t.TempDir())
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	if err := gen.Generate("", "x.png"); err == nil {
		t.Fatalf("expected error for empty content")
	}
}

func TestRemoveToleratesMissingFile(t *testing.T) {
	gen, err := NewGenerator(t.TempDir())
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	if err := gen.Remove("never_written.png"); err != nil {
		t.Fatalf("remove of missing file should not error, got %v", err)
	}
}

func TestRemoveDeletesFile(t *testing.T) {
	gen, err := NewGenerator(t.TempDir())
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	if err := gen.Generate("/containers/9", "container_9.png"); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if err := gen.Remove("container_9.png"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(filepath.Join(gen.Dir(), "container_9.png")); !os.IsNotExist(err) {
		t.Fatalf("expected file to be gone, stat err=%v", err)
	}
}
