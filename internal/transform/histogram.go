package transform

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/BeBig007/Leaffliction/internal/pipeline"
)

// HistogramBins is the number of intensity bins per channel series.
const HistogramBins = 256

// ChannelSeries is one named frequency curve of the color histogram. Each
// bin holds the percentage of foreground pixels whose channel value falls in
// that bin, so the entries of Frequencies sum to ~100 for a non-empty mask.
type ChannelSeries struct {
	Name        string    `json:"name"`
	Frequencies []float64 `json:"frequencies"`
}

// HistogramResult aggregates the per-channel frequency distributions of the
// foreground pixels. Series order is fixed: blue, green, red, hue,
// saturation, value, lightness, green-magenta, blue-yellow.
type HistogramResult struct {
	Series []ChannelSeries `json:"series"`

	// ForegroundPixels is the number of mask cells the distributions were
	// computed over.
	ForegroundPixels int `json:"foreground_pixels"`
}

// histogramChannels defines the nine series, their plot colors, and how a
// pixel maps onto each. RGB channels read the pixel directly; the others go
// through the pipeline's channel projection so consumers and the mask core
// always agree on channel math.
var histogramChannels = []struct {
	name  string
	color color.NRGBA
	value func(r, g, b uint8) uint8
}{
	{"blue", color.NRGBA{0, 0, 255, 255}, func(r, g, b uint8) uint8 { return b }},
	{"green", color.NRGBA{0, 160, 0, 255}, func(r, g, b uint8) uint8 { return g }},
	{"red", color.NRGBA{255, 0, 0, 255}, func(r, g, b uint8) uint8 { return r }},
	{"hue", color.NRGBA{128, 0, 200, 255}, pipeline.ChannelHue.Value},
	{"saturation", color.NRGBA{0, 180, 200, 255}, pipeline.ChannelSaturation.Value},
	{"value", color.NRGBA{255, 140, 0, 255}, pipeline.ChannelValue.Value},
	{"lightness", color.NRGBA{110, 110, 110, 255}, pipeline.ChannelLightness.Value},
	{"green-magenta", color.NRGBA{200, 0, 160, 255}, pipeline.ChannelGreenMagenta.Value},
	{"blue-yellow", color.NRGBA{160, 140, 0, 255}, pipeline.ChannelBlueYellow.Value},
}

// ColorHistogram computes the normalized frequency distribution of nine
// color channels over the foreground cells of the mask: the RGB components
// plus HSV hue/saturation/value and Lab lightness/green-magenta/blue-yellow.
// Frequencies are percentages of the foreground pixel count.
//
// The result is returned as an explicit value; nothing is written to shared
// state. An all-background mask yields nine all-zero series.
func ColorHistogram(img image.Image, mask *image.Gray) HistogramResult {
	counts := make([][HistogramBins]int, len(histogramChannels))
	total := 0

	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if mask.GrayAt(x, y).Y != pipeline.Foreground {
				continue
			}
			r16, g16, b16, _ := img.At(x, y).RGBA()
			r, g, b := uint8(r16>>8), uint8(g16>>8), uint8(b16>>8)
			for i, ch := range histogramChannels {
				counts[i][ch.value(r, g, b)]++
			}
			total++
		}
	}

	result := HistogramResult{
		Series:           make([]ChannelSeries, len(histogramChannels)),
		ForegroundPixels: total,
	}
	for i, ch := range histogramChannels {
		freq := make([]float64, HistogramBins)
		if total > 0 {
			for bin, n := range counts[i] {
				freq[bin] = float64(n) / float64(total) * 100
			}
		}
		result.Series[i] = ChannelSeries{Name: ch.name, Frequencies: freq}
	}
	return result
}

// Plot geometry.
const (
	plotWidth    = 720
	plotHeight   = 480
	marginLeft   = 56
	marginRight  = 150 // room for the legend
	marginTop    = 24
	marginBottom = 40
)

// RenderHistogram draws the histogram curves as a line plot on a white
// canvas: one polyline per series in its plot color, black axes, and a
// legend naming each series. The returned image is ready to be encoded by
// the caller.
func RenderHistogram(result HistogramResult) *image.NRGBA {
	canvas := image.NewNRGBA(image.Rect(0, 0, plotWidth, plotHeight))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	inner := image.Rect(marginLeft, marginTop, plotWidth-marginRight, plotHeight-marginBottom)
	axis := color.NRGBA{0, 0, 0, 255}

	// Axes.
	for x := inner.Min.X; x <= inner.Max.X; x++ {
		canvas.SetNRGBA(x, inner.Max.Y, axis)
	}
	for y := inner.Min.Y; y <= inner.Max.Y; y++ {
		canvas.SetNRGBA(inner.Min.X, y, axis)
	}

	maxFreq := 0.0
	for _, s := range result.Series {
		for _, f := range s.Frequencies {
			if f > maxFreq {
				maxFreq = f
			}
		}
	}
	if maxFreq == 0 {
		maxFreq = 1
	}

	toX := func(bin int) int {
		return inner.Min.X + bin*(inner.Dx()-1)/(HistogramBins-1)
	}
	toY := func(freq float64) int {
		return inner.Max.Y - int(math.Round(freq/maxFreq*float64(inner.Dy()-1)))
	}

	for i, s := range result.Series {
		c := histogramChannels[i].color
		prevX, prevY := toX(0), toY(s.Frequencies[0])
		for bin := 1; bin < HistogramBins; bin++ {
			x, y := toX(bin), toY(s.Frequencies[bin])
			drawLine(canvas, prevX, prevY, x, y, c)
			prevX, prevY = x, y
		}
	}

	drawLegend(canvas, inner, result)
	drawString(canvas, inner.Min.X-44, inner.Min.Y+6, "pct", axis)
	drawString(canvas, (inner.Min.X+inner.Max.X)/2-40, inner.Max.Y+26, "pixel intensity", axis)
	return canvas
}

// drawLegend lists each series name next to a swatch of its plot color.
func drawLegend(canvas *image.NRGBA, inner image.Rectangle, result HistogramResult) {
	x := inner.Max.X + 12
	y := inner.Min.Y + 10
	for i, s := range result.Series {
		c := histogramChannels[i].color
		for dx := 0; dx < 16; dx++ {
			canvas.SetNRGBA(x+dx, y-4, c)
			canvas.SetNRGBA(x+dx, y-3, c)
		}
		drawString(canvas, x+22, y, s.Name, color.NRGBA{0, 0, 0, 255})
		y += 18
	}
}

// drawString renders text with the fixed 7x13 basicfont face.
func drawString(canvas *image.NRGBA, x, y int, s string, c color.NRGBA) {
	d := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// drawLine draws a straight segment between two points (Bresenham).
func drawLine(canvas *image.NRGBA, x0, y0, x1, y1 int, c color.NRGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		if (image.Point{x0, y0}).In(canvas.Bounds()) {
			canvas.SetNRGBA(x0, y0, c)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
