package pipeline

import "image"

// Polarity selects which side of the threshold counts as foreground.
type Polarity int

const (
	// LightIsObject labels pixels at or above the threshold as foreground.
	// This is the polarity the mask pipeline uses: the projected plant
	// channel is brighter than the background.
	LightIsObject Polarity = iota

	// DarkIsObject labels pixels below the threshold as foreground.
	DarkIsObject
)

// Foreground and background mask cell values. Masks never hold anything else.
const (
	Foreground uint8 = 255
	Background uint8 = 0
)

// Otsu binarizes a grayscale buffer with an automatically selected global
// threshold.
//
// The threshold t maximizes the between-class variance of the two intensity
// classes split at t (equivalently, minimizes intra-class variance) over the
// 256-bin histogram of gray. On ties the smallest such t wins, so the result
// is deterministic. With LightIsObject, pixels with intensity >= t become
// Foreground; with DarkIsObject the labeling is inverted.
//
// # Degenerate Input
//
// A uniform-intensity buffer has no two-class split; by policy every pixel
// is labeled Background in that case, regardless of polarity. No foreground
// was found, and callers can rely on that outcome instead of an undefined
// one.
func Otsu(gray *image.Gray, polarity Polarity) *image.Gray {
	var hist [256]int
	bounds := gray.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := (y - bounds.Min.Y) * gray.Stride
		for x := 0; x < bounds.Dx(); x++ {
			hist[gray.Pix[row+x]]++
		}
	}

	total := bounds.Dx() * bounds.Dy()
	var sumAll float64
	for i, n := range hist {
		sumAll += float64(i) * float64(n)
	}

	// Scan every split point [0..t-1] vs [t..255], tracking the best
	// between-class variance. A uniform image never produces two non-empty
	// classes, leaving found false.
	var (
		best     int
		bestVar  float64
		found    bool
		countLow int
		sumLow   float64
	)
	for t := 1; t < 256; t++ {
		countLow += hist[t-1]
		sumLow += float64(t-1) * float64(hist[t-1])
		countHigh := total - countLow
		if countLow == 0 {
			continue
		}
		if countHigh == 0 {
			break
		}
		meanLow := sumLow / float64(countLow)
		meanHigh := (sumAll - sumLow) / float64(countHigh)
		diff := meanLow - meanHigh
		variance := float64(countLow) * float64(countHigh) * diff * diff
		if !found || variance > bestVar {
			bestVar = variance
			best = t
			found = true
		}
	}

	if !found {
		// Uniform image: all background by policy.
		return image.NewGray(bounds)
	}
	return Threshold(gray, uint8(best), polarity)
}

// Threshold binarizes a grayscale buffer at a fixed threshold value.
//
// With LightIsObject, pixels with intensity >= t are labeled Foreground;
// with DarkIsObject, pixels with intensity < t are. The output has the same
// bounds as gray, and gray itself is never mutated.
func Threshold(gray *image.Gray, t uint8, polarity Polarity) *image.Gray {
	bounds := gray.Bounds()
	mask := image.NewGray(bounds)
	for y := 0; y < bounds.Dy(); y++ {
		src := y * gray.Stride
		dst := y * mask.Stride
		for x := 0; x < bounds.Dx(); x++ {
			light := gray.Pix[src+x] >= t
			if (polarity == LightIsObject) == light {
				mask.Pix[dst+x] = Foreground
			}
		}
	}
	return mask
}
