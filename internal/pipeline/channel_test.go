package pipeline

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

// solidImage creates an in-memory image filled with a single color.
func solidImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestChannelValid(t *testing.T) {
	valid := []Channel{"l", "a", "b", "h", "s", "v", "c", "m", "y", "k"}
	for _, ch := range valid {
		if !ch.Valid() {
			t.Errorf("Channel(%q).Valid() = false, want true", ch)
		}
	}

	invalid := []Channel{"", "z", "rgb", "L", "hsv"}
	for _, ch := range invalid {
		if ch.Valid() {
			t.Errorf("Channel(%q).Valid() = true, want false", ch)
		}
	}
}

func TestChannelValue_KnownColors(t *testing.T) {
	tests := []struct {
		name    string
		ch      Channel
		r, g, b uint8
		want    uint8
	}{
		{"lightness of white", ChannelLightness, 255, 255, 255, 255},
		{"lightness of black", ChannelLightness, 0, 0, 0, 0},
		{"a axis of gray is neutral", ChannelGreenMagenta, 128, 128, 128, 128},
		{"b axis of gray is neutral", ChannelBlueYellow, 128, 128, 128, 128},
		{"saturation of gray", ChannelSaturation, 128, 128, 128, 0},
		{"saturation of pure red", ChannelSaturation, 255, 0, 0, 255},
		{"value of black", ChannelValue, 0, 0, 0, 0},
		{"value of pure blue", ChannelValue, 0, 0, 255, 255},
		{"key of black", ChannelKey, 0, 0, 0, 255},
		{"key of white", ChannelKey, 255, 255, 255, 0},
		{"cyan of pure red", ChannelCyan, 255, 0, 0, 0},
		{"cyan of pure cyan", ChannelCyan, 0, 255, 255, 255},
		{"magenta of pure magenta", ChannelMagenta, 255, 0, 255, 255},
		{"yellow of pure yellow", ChannelYellow, 255, 255, 0, 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.ch.Value(tt.r, tt.g, tt.b)
			if got != tt.want {
				t.Errorf("Value(%d,%d,%d) = %d, want %d", tt.r, tt.g, tt.b, got, tt.want)
			}
		})
	}
}

func TestChannelValue_Ordering(t *testing.T) {
	// Yellow sits far above the neutral point on the Lab blue-yellow axis,
	// blue far below. The projector only needs ordering, not exact values.
	yellow := ChannelBlueYellow.Value(255, 255, 0)
	gray := ChannelBlueYellow.Value(128, 128, 128)
	blue := ChannelBlueYellow.Value(0, 0, 255)

	if !(blue < gray && gray < yellow) {
		t.Errorf("blue-yellow ordering broken: blue=%d gray=%d yellow=%d", blue, gray, yellow)
	}

	// Magenta above neutral on the green-magenta axis, green below.
	magenta := ChannelGreenMagenta.Value(255, 0, 255)
	green := ChannelGreenMagenta.Value(0, 255, 0)
	if !(green < 128 && magenta > 128) {
		t.Errorf("green-magenta ordering broken: green=%d magenta=%d", green, magenta)
	}
}

func TestProject_Dimensions(t *testing.T) {
	img := solidImage(7, 5, color.RGBA{40, 160, 90, 255})

	for _, ch := range []Channel{"l", "a", "b", "h", "s", "v", "c", "m", "y", "k"} {
		gray, err := Project(img, ch)
		if err != nil {
			t.Fatalf("Project(%q) failed: %v", ch, err)
		}
		if gray.Bounds() != img.Bounds() {
			t.Errorf("Project(%q) bounds = %v, want %v", ch, gray.Bounds(), img.Bounds())
		}
	}
}

func TestProject_InvalidChannel(t *testing.T) {
	images := []image.Image{
		solidImage(4, 4, color.RGBA{255, 255, 255, 255}),
		solidImage(1, 1, color.RGBA{0, 0, 0, 255}),
		solidImage(16, 9, color.RGBA{10, 200, 30, 255}),
	}

	for _, img := range images {
		_, err := Project(img, "z")
		if !errors.Is(err, ErrInvalidChannel) {
			t.Errorf("Project(img, \"z\") error = %v, want ErrInvalidChannel", err)
		}
	}
}

func TestProject_InvalidImage(t *testing.T) {
	tests := []struct {
		name string
		img  image.Image
	}{
		{"nil image", nil},
		{"zero width", image.NewRGBA(image.Rect(0, 0, 0, 10))},
		{"zero height", image.NewRGBA(image.Rect(0, 0, 10, 0))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Project(tt.img, DefaultChannel)
			if !errors.Is(err, ErrInvalidImage) {
				t.Errorf("error = %v, want ErrInvalidImage", err)
			}
		})
	}
}

func TestProject_UniformInput(t *testing.T) {
	img := solidImage(6, 6, color.RGBA{200, 180, 40, 255})

	gray, err := Project(img, ChannelBlueYellow)
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}

	first := gray.Pix[0]
	for i, v := range gray.Pix {
		if v != first {
			t.Fatalf("uniform input produced non-uniform projection at index %d: %d != %d", i, v, first)
		}
	}
}
