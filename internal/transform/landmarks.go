package transform

import (
	"image"
	"image/color"
	"math"

	"github.com/BeBig007/Leaffliction/internal/pipeline"
)

// landmarkBins is how many vertical slices the foreground's horizontal
// extent is divided into; each non-empty slice contributes one top, one
// bottom, and one center landmark.
const landmarkBins = 20

// Marker colors: top row red, bottom row magenta, center row blue.
var (
	topColor    = color.NRGBA{255, 0, 0, 255}
	bottomColor = color.NRGBA{255, 0, 255, 255}
	centerColor = color.NRGBA{0, 0, 255, 255}
)

const landmarkRadius = 5

// Landmarks holds the pseudolandmark point rows computed along the
// foreground's horizontal axis. The three slices are index-aligned: entry i
// of each row comes from the same vertical slice. Slices with no foreground
// contribute no points, so the rows may hold fewer than 20 entries.
type Landmarks struct {
	Top    []image.Point `json:"top"`    // uppermost foreground per slice
	Bottom []image.Point `json:"bottom"` // lowermost foreground per slice
	Center []image.Point `json:"center"` // mean vertical position per slice
}

// Pseudolandmarks computes representative points along the foreground's
// horizontal extent: the bounding box is divided into 20 vertical slices,
// and each slice containing foreground yields the topmost, bottommost, and
// mean-height foreground positions at the slice's center column. An
// all-background mask yields empty rows.
func Pseudolandmarks(mask *image.Gray) Landmarks {
	var lm Landmarks
	box, ok := BoundingBox(mask)
	if !ok {
		return lm
	}

	bounds := mask.Bounds()
	step := float64(box.Dx()) / landmarkBins

	for bin := 0; bin < landmarkBins; bin++ {
		x0 := box.Min.X + int(math.Floor(float64(bin)*step))
		x1 := box.Min.X + int(math.Floor(float64(bin+1)*step))
		if bin == landmarkBins-1 {
			x1 = box.Max.X
		}
		if x1 <= x0 {
			x1 = x0 + 1
		}

		minY, maxY := bounds.Max.Y, bounds.Min.Y-1
		var sumY, n int
		for x := x0; x < x1 && x < box.Max.X; x++ {
			for y := box.Min.Y; y < box.Max.Y; y++ {
				if mask.GrayAt(x, y).Y != pipeline.Foreground {
					continue
				}
				if y < minY {
					minY = y
				}
				if y > maxY {
					maxY = y
				}
				sumY += y
				n++
			}
		}
		if n == 0 {
			continue
		}

		cx := (x0 + x1 - 1) / 2
		lm.Top = append(lm.Top, image.Point{X: cx, Y: minY})
		lm.Bottom = append(lm.Bottom, image.Point{X: cx, Y: maxY})
		lm.Center = append(lm.Center, image.Point{X: cx, Y: int(math.Round(float64(sumY) / float64(n)))})
	}
	return lm
}

// DrawLandmarks marks the pseudolandmarks on a copy of the image with
// radius-5 filled discs: top points red, bottom magenta, center blue.
func DrawLandmarks(img image.Image, mask *image.Gray) *image.NRGBA {
	out := cloneNRGBA(img)
	lm := Pseudolandmarks(mask)

	rows := []struct {
		points []image.Point
		color  color.NRGBA
	}{
		{lm.Top, topColor},
		{lm.Bottom, bottomColor},
		{lm.Center, centerColor},
	}
	for _, row := range rows {
		for _, p := range row.points {
			drawDisc(out, p, landmarkRadius, row.color)
		}
	}
	return out
}

// drawDisc fills the disc of the given radius around center, clamped to the
// destination bounds.
func drawDisc(dst *image.NRGBA, center image.Point, radius int, c color.NRGBA) {
	bounds := dst.Bounds()
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > radius*radius {
				continue
			}
			x, y := center.X+dx, center.Y+dy
			if (image.Point{x, y}).In(bounds) {
				dst.SetNRGBA(x, y, c)
			}
		}
	}
}
