package runner

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/BeBig007/Leaffliction/internal/pipeline"
)

// writeLeafImage writes a synthetic leaf photo: a bright yellow-green block
// on a dark background, which the default blue-yellow channel separates.
func writeLeafImage(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 24, 24))
	for y := 0; y < 24; y++ {
		for x := 0; x < 24; x++ {
			if x >= 6 && x < 18 && y >= 6 && y < 18 {
				img.Set(x, y, color.RGBA{190, 210, 50, 255})
			} else {
				img.Set(x, y, color.RGBA{15, 15, 50, 255})
			}
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode %s: %v", path, err)
	}
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestRunner(t *testing.T) (*Runner, string) {
	t.Helper()
	out := t.TempDir()
	r := New(Options{OutputDir: out, Log: quietLogger()})
	return r, out
}

func TestProcessFile_SingleTransformation(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "leaf.png")
	writeLeafImage(t, src)
	r, out := newTestRunner(t)

	if err := r.ProcessFile(src, TransformMask); err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(out, "leaf_mask.png")); err != nil {
		t.Errorf("mask artifact missing: %v", err)
	}
}

func TestProcessFile_All(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "leaf.png")
	writeLeafImage(t, src)
	r, out := newTestRunner(t)

	if err := r.ProcessFile(src, TransformAll); err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}

	want := []string{
		"leaf_mask.png",
		"leaf_masked.png",
		"leaf_removeblack.png",
		"leaf_roi.png",
		"leaf_roi_crop.png",
		"leaf_analyze.png",
		"leaf_analyze.json",
		"leaf_landmarks.png",
		"leaf_histogram.png",
		"leaf_histogram.json",
	}
	for _, name := range want {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("artifact %s missing: %v", name, err)
		}
	}
}

func TestProcessFile_UnknownTransformation(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "leaf.png")
	writeLeafImage(t, src)
	r, out := newTestRunner(t)

	if err := r.ProcessFile(src, "sharpen"); err == nil {
		t.Fatal("unknown transformation should fail")
	}

	// All-or-nothing: nothing may have been written.
	entries, err := os.ReadDir(out)
	if err != nil {
		t.Fatalf("failed to read output dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("artifacts written despite failure: %d entries", len(entries))
	}
}

func TestProcessFile_MissingFile(t *testing.T) {
	r, _ := newTestRunner(t)

	if err := r.ProcessFile("/nonexistent/leaf.png", TransformMask); err == nil {
		t.Fatal("missing file should fail")
	}
}

func TestProcessDir_SkipsBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	writeLeafImage(t, filepath.Join(dir, "good1.png"))
	writeLeafImage(t, filepath.Join(dir, "good2.jpg"))
	// Not actually an image; must be skipped, not abort the run.
	if err := os.WriteFile(filepath.Join(dir, "broken.png"), []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	// Unrelated extension: ignored entirely.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("notes"), 0o644); err != nil {
		t.Fatal(err)
	}
	r, _ := newTestRunner(t)

	processed, failed, err := r.ProcessDir(dir, TransformMask)
	if err != nil {
		t.Fatalf("ProcessDir failed: %v", err)
	}
	if processed != 2 {
		t.Errorf("processed = %d, want 2", processed)
	}
	if failed != 1 {
		t.Errorf("failed = %d, want 1", failed)
	}
}

func TestProcessDir_MissingDirectory(t *testing.T) {
	r, _ := newTestRunner(t)

	if _, _, err := r.ProcessDir("/nonexistent", TransformMask); err == nil {
		t.Fatal("missing directory should fail")
	}
}

func TestLoader_CachesAndValidates(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "leaf.png")
	writeLeafImage(t, src)

	loader := NewLoader()
	first, err := loader.Load(src)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Second load is served from cache even after the file disappears.
	if err := os.Remove(src); err != nil {
		t.Fatal(err)
	}
	second, err := loader.Load(src)
	if err != nil {
		t.Fatalf("cached Load failed: %v", err)
	}
	if first != second {
		t.Error("cache returned a different image")
	}

	loader.Clear()
	if _, err := loader.Load(src); err == nil {
		t.Error("Load after Clear of a removed file should fail")
	}
}

func TestNew_Defaults(t *testing.T) {
	r := New(Options{OutputDir: t.TempDir()})
	if r.opts.Channel != pipeline.DefaultChannel {
		t.Errorf("default channel = %q, want %q", r.opts.Channel, pipeline.DefaultChannel)
	}
	if r.log == nil {
		t.Error("nil logger not defaulted")
	}
}
