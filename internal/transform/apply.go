package transform

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/BeBig007/Leaffliction/internal/pipeline"
)

// WhiteBackground is the default replacement color for masked-out pixels.
var WhiteBackground = color.NRGBA{255, 255, 255, 255}

// ApplyMask returns a copy of img where every background cell of the mask is
// overwritten with bg; foreground cells pass through unchanged. The mask
// must have the same bounds as the image.
func ApplyMask(img image.Image, mask *image.Gray, bg color.Color) *image.NRGBA {
	out := cloneNRGBA(img)
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if mask.GrayAt(x, y).Y == pipeline.Background {
				out.Set(x, y, bg)
			}
		}
	}
	return out
}

// RemoveBlack whitens the near-black pixels of an image: the grayscale
// luminance is thresholded at the fixed value 20 (light side is the object)
// and the resulting mask is applied with a white background. Useful for
// stripping dark scanner borders before analysis.
func RemoveBlack(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	draw.Draw(gray, bounds, img, bounds.Min, draw.Src)
	mask := pipeline.Threshold(gray, 20, pipeline.LightIsObject)
	return ApplyMask(img, mask, WhiteBackground)
}

// cloneNRGBA copies any image into a fresh NRGBA buffer for drawing.
func cloneNRGBA(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	out := image.NewNRGBA(bounds)
	draw.Draw(out, bounds, img, bounds.Min, draw.Src)
	return out
}
