package transform

import (
	"image"
	"math"

	"github.com/BeBig007/Leaffliction/internal/pipeline"
)

// SizeResult contains the scalar shape and size measurements of a mask's
// foreground.
type SizeResult struct {
	// Area is the number of foreground cells.
	Area int `json:"area"`

	// Perimeter counts foreground cells with at least one 4-connected
	// background neighbor (or lying on the image edge).
	Perimeter int `json:"perimeter"`

	// Width and Height are the extents of the foreground bounding box.
	Width  int `json:"width"`
	Height int `json:"height"`

	// BoundingBox is the minimal rectangle enclosing the foreground,
	// exclusive max edges. Zero when Area is 0.
	BoundingBox image.Rectangle `json:"-"`

	// CentroidX and CentroidY are the mean foreground coordinates.
	CentroidX float64 `json:"centroid_x"`
	CentroidY float64 `json:"centroid_y"`

	// AspectRatio is Width / Height (0 when the foreground is empty).
	AspectRatio float64 `json:"aspect_ratio"`

	// Extent is Area divided by the bounding box area: 1.0 for a perfect
	// rectangle, lower for ragged shapes.
	Extent float64 `json:"extent"`
}

// AnalyzeSize measures the foreground of a mask: area, perimeter, bounding
// geometry, centroid, aspect ratio and extent. An all-background mask
// yields the zero result.
func AnalyzeSize(mask *image.Gray) SizeResult {
	var result SizeResult
	box, ok := BoundingBox(mask)
	if !ok {
		return result
	}

	bounds := mask.Bounds()
	fg := func(x, y int) bool {
		if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
			return false
		}
		return mask.GrayAt(x, y).Y == pipeline.Foreground
	}

	var sumX, sumY float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if !fg(x, y) {
				continue
			}
			result.Area++
			sumX += float64(x)
			sumY += float64(y)
			if !fg(x-1, y) || !fg(x+1, y) || !fg(x, y-1) || !fg(x, y+1) {
				result.Perimeter++
			}
		}
	}

	result.BoundingBox = box
	result.Width = box.Dx()
	result.Height = box.Dy()
	result.CentroidX = sumX / float64(result.Area)
	result.CentroidY = sumY / float64(result.Area)
	result.AspectRatio = round2(float64(box.Dx()) / float64(box.Dy()))
	result.Extent = round2(float64(result.Area) / float64(box.Dx()*box.Dy()))
	return result
}

// DrawAnalysis renders the size analysis onto a copy of the image: the
// bounding box in red and a small blue disc at the centroid.
func DrawAnalysis(img image.Image, mask *image.Gray) *image.NRGBA {
	out := cloneNRGBA(img)
	res := AnalyzeSize(mask)
	if res.Area == 0 {
		return out
	}

	drawRect(out, res.BoundingBox, roiBox, roiBoxWidth)
	drawDisc(out, image.Point{
		X: int(math.Round(res.CentroidX)),
		Y: int(math.Round(res.CentroidY)),
	}, 3, centerColor)
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
