package transform

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/BeBig007/Leaffliction/internal/pipeline"
)

// Overlay colors for the region-of-interest artifact.
var (
	roiHighlight = color.NRGBA{0, 255, 0, 255} // foreground fill
	roiBox       = color.NRGBA{255, 0, 0, 255} // bounding rectangle
)

const roiBoxWidth = 2 // rectangle line width in pixels

// BoundingBox returns the minimal axis-aligned rectangle enclosing all
// foreground cells of the mask, in the mask's coordinate space. The second
// return value is false when the mask has no foreground at all.
func BoundingBox(mask *image.Gray) (image.Rectangle, bool) {
	bounds := mask.Bounds()
	minX, minY := bounds.Max.X, bounds.Max.Y
	maxX, maxY := bounds.Min.X-1, bounds.Min.Y-1

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if mask.GrayAt(x, y).Y != pipeline.Foreground {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}

	if maxX < minX {
		return image.Rectangle{}, false
	}
	// Exclusive max edges, like image.Rectangle everywhere else.
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}

// ROI draws the region-of-interest overlay: a copy of the image with every
// foreground cell recolored green and a 2px red rectangle on the foreground
// bounding box. A mask with no foreground yields an unmodified copy.
func ROI(img image.Image, mask *image.Gray) *image.NRGBA {
	out := cloneNRGBA(img)
	box, ok := BoundingBox(mask)
	if !ok {
		return out
	}

	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if mask.GrayAt(x, y).Y == pipeline.Foreground {
				out.SetNRGBA(x, y, roiHighlight)
			}
		}
	}
	drawRect(out, box, roiBox, roiBoxWidth)
	return out
}

// CropROI cuts the foreground bounding box out of the image, expanded by
// pad pixels on every side (clamped to the image) and optionally rescaled.
// A scale of 1.0 or less than or equal to zero leaves the cutout at its
// natural size.
//
// Returns an error when the mask contains no foreground, since there is
// nothing to crop to.
func CropROI(img image.Image, mask *image.Gray, pad int, scale float64) (image.Image, error) {
	box, ok := BoundingBox(mask)
	if !ok {
		return nil, fmt.Errorf("cannot crop region of interest: mask has no foreground")
	}

	box = box.Inset(-pad).Intersect(img.Bounds())
	cropped := imaging.Crop(img, box)

	if scale > 0 && scale != 1.0 {
		w := int(float64(cropped.Bounds().Dx()) * scale)
		h := int(float64(cropped.Bounds().Dy()) * scale)
		cropped = imaging.Resize(cropped, w, h, imaging.Lanczos)
	}
	return cropped, nil
}

// drawRect draws the outline of a rectangle with the given line width,
// clamped to the destination bounds.
func drawRect(dst *image.NRGBA, rect image.Rectangle, c color.NRGBA, width int) {
	bounds := dst.Bounds()
	set := func(x, y int) {
		if (image.Point{x, y}).In(bounds) {
			dst.SetNRGBA(x, y, c)
		}
	}
	for w := 0; w < width; w++ {
		outer := rect.Inset(-w - 1)
		for x := outer.Min.X; x < outer.Max.X; x++ {
			set(x, outer.Min.Y)
			set(x, outer.Max.Y-1)
		}
		for y := outer.Min.Y; y < outer.Max.Y; y++ {
			set(outer.Min.X, y)
			set(outer.Max.X-1, y)
		}
	}
}
