// Package runner drives the transformation pipeline over image files: it
// loads photographs, extracts the plant mask once per file, fans the mask
// out to the requested consumers, and writes the resulting artifacts.
//
// The runner is the error boundary the core relies on: a failure on one
// image is logged and reported, never fatal, so sibling images in a
// directory run are unaffected. Artifacts for a file are rendered fully in
// memory before anything is written, keeping output all-or-nothing per
// image.
package runner

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"

	"github.com/BeBig007/Leaffliction/internal/pipeline"
	"github.com/BeBig007/Leaffliction/internal/transform"
)

// Transformation names accepted by Run and the CLI.
const (
	TransformMask        = "mask"        // the binary mask itself
	TransformMasked      = "masked"      // image with background whited out
	TransformRemoveBlack = "removeblack" // near-black pixels whited out
	TransformROI         = "roi"         // bounding-box overlay + cutout
	TransformAnalyze     = "analyze"     // size metrics + drawn overlay
	TransformLandmarks   = "landmarks"   // pseudolandmark markers
	TransformHistogram   = "histogram"   // color histogram plot + data
	TransformAll         = "all"         // every transformation above
)

// Transformations lists the accepted names in CLI presentation order.
var Transformations = []string{
	TransformMask, TransformMasked, TransformRemoveBlack, TransformROI,
	TransformAnalyze, TransformLandmarks, TransformHistogram, TransformAll,
}

// Options configures a Runner.
type Options struct {
	// OutputDir receives the artifacts. Created if missing.
	OutputDir string

	// Channel selects the projection channel for mask extraction.
	// Empty means pipeline.DefaultChannel.
	Channel pipeline.Channel

	// BlurRadius, when positive, smooths the projected grayscale before
	// thresholding.
	BlurRadius float64

	// Log receives progress and per-file failure messages. Nil means the
	// logrus standard logger.
	Log *logrus.Logger
}

// Runner executes named transformations over image files.
type Runner struct {
	loader *Loader
	opts   Options
	log    *logrus.Logger
}

// New creates a Runner with the given options.
func New(opts Options) *Runner {
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	if opts.Channel == "" {
		opts.Channel = pipeline.DefaultChannel
	}
	return &Runner{loader: NewLoader(), opts: opts, log: log}
}

// artifact is a rendered output waiting to be written.
type artifact struct {
	name  string
	image image.Image
	data  []byte // non-image payload (JSON); used when image is nil
}

// ProcessFile runs one named transformation (or "all") for a single image
// file and writes the artifacts into the output directory. Artifact files
// are named "<stem>_<transformation>.png" (or .json for data artifacts).
//
// Nothing is written unless every artifact of the requested transformation
// rendered successfully.
func (r *Runner) ProcessFile(path, transformation string) error {
	img, err := r.loader.Load(path)
	if err != nil {
		return err
	}

	names := []string{transformation}
	if transformation == TransformAll {
		names = Transformations[:len(Transformations)-1]
	}

	// RemoveBlack is the only transformation that does not consume the
	// extracted mask; skip extraction when it is the sole request.
	var mask *image.Gray
	if !(len(names) == 1 && names[0] == TransformRemoveBlack) {
		mask, err = pipeline.ExtractMask(img, r.opts.Channel, pipeline.WithBlur(r.opts.BlurRadius))
		if err != nil {
			var stage *pipeline.StageError
			if errors.As(err, &stage) {
				r.log.WithField("stage", stage.Stage).Error("mask extraction failed")
			}
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	var artifacts []artifact
	for _, name := range names {
		rendered, err := r.render(img, mask, name)
		if err != nil {
			return fmt.Errorf("%s: transformation %q: %w", path, name, err)
		}
		artifacts = append(artifacts, rendered...)
	}

	if err := os.MkdirAll(r.opts.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	for _, a := range artifacts {
		dst := filepath.Join(r.opts.OutputDir, stem+"_"+a.name)
		if a.image != nil {
			err = imaging.Save(a.image, dst)
		} else {
			err = os.WriteFile(dst, a.data, 0o644)
		}
		if err != nil {
			return fmt.Errorf("failed to save %s: %w", dst, err)
		}
		r.log.WithFields(logrus.Fields{"file": path, "artifact": dst}).Info("saved")
	}
	return nil
}

// render produces the artifacts of one transformation without touching the
// filesystem.
func (r *Runner) render(img image.Image, mask *image.Gray, name string) ([]artifact, error) {
	switch name {
	case TransformMask:
		return []artifact{{name: "mask.png", image: mask}}, nil

	case TransformMasked:
		return []artifact{{name: "masked.png", image: transform.ApplyMask(img, mask, transform.WhiteBackground)}}, nil

	case TransformRemoveBlack:
		return []artifact{{name: "removeblack.png", image: transform.RemoveBlack(img)}}, nil

	case TransformROI:
		overlay := transform.ROI(img, mask)
		arts := []artifact{{name: "roi.png", image: overlay}}
		if cutout, err := transform.CropROI(img, mask, 0, 1.0); err == nil {
			arts = append(arts, artifact{name: "roi_crop.png", image: cutout})
		}
		return arts, nil

	case TransformAnalyze:
		res := transform.AnalyzeSize(mask)
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return nil, err
		}
		return []artifact{
			{name: "analyze.png", image: transform.DrawAnalysis(img, mask)},
			{name: "analyze.json", data: data},
		}, nil

	case TransformLandmarks:
		return []artifact{{name: "landmarks.png", image: transform.DrawLandmarks(img, mask)}}, nil

	case TransformHistogram:
		hist := transform.ColorHistogram(img, mask)
		data, err := json.MarshalIndent(hist, "", "  ")
		if err != nil {
			return nil, err
		}
		return []artifact{
			{name: "histogram.png", image: transform.RenderHistogram(hist)},
			{name: "histogram.json", data: data},
		}, nil

	default:
		return nil, fmt.Errorf("unknown transformation %q", name)
	}
}

// ProcessDir runs a transformation over every jpg, jpeg, and png file
// directly inside dir. A failing file is logged and skipped; the return
// value reports how many files were processed and how many failed. Only an
// unreadable directory produces an error.
func (r *Runner) ProcessDir(dir, transformation string) (processed, failed int, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !isImageFile(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := r.ProcessFile(path, transformation); err != nil {
			r.log.WithError(err).WithField("file", path).Warn("skipping image")
			failed++
			continue
		}
		processed++
	}
	return processed, failed, nil
}

// isImageFile reports whether the file name carries a supported extension.
func isImageFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}
