package colour

import (
	"image"
	"image/color"
	"math"
	"reflect"
	"testing"
)

// solidImage returns a width x height image filled with a single colour.
func solidImage(width, height int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// stripedImage returns a 10x10 image whose first "split" columns are
// painted with the first colour and the rest with the second.
func stripedImage(split int, first, second color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if x < split {
				img.Set(x, y, first)
			} else {
				img.Set(x, y, second)
			}
		}
	}
	return img
}

func TestKMeansExtractorValidation(t *testing.T) {
	extractor := NewKMeansExtractor()
	img := solidImage(4, 4, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	tests := []struct {
		name  string
		img   image.Image
		count int
	}{
		{
			name:  "nil image",
			img:   nil,
			count: 3,
		},
		{
			name:  "zero count",
			img:   img,
			count: 0,
		},
		{
			name:  "negative count",
			img:   img,
			count: -1,
		},
		{
			name:  "count too large",
			img:   img,
			count: 257,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := extractor.Extract(tt.img, tt.count); err == nil {
				t.Error("Extract() expected error, got nil")
			}
		})
	}
}

func TestKMeansExtractorSolidColour(t *testing.T) {
	extractor := NewKMeansExtractor()
	img := solidImage(8, 8, color.RGBA{R: 200, G: 30, B: 30, A: 255})

	palette, err := extractor.Extract(img, 3)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if palette.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", palette.Len())
	}
	if got := ToRGB(palette.Colors[0]); got != (RGB{R: 200, G: 30, B: 30}) {
		t.Errorf("Colors[0] = %v, want rgb(200, 30, 30)", got)
	}
	if palette.Weights[0] != 1.0 {
		t.Errorf("Weights[0] = %v, want 1.0", palette.Weights[0])
	}
}

func TestKMeansExtractorDistinctColourFrequencies(t *testing.T) {
	// 60 red pixels and 40 blue pixels; asking for two colours short
	// circuits clustering and reports the observed frequencies.
	img := stripedImage(6,
		color.RGBA{R: 255, G: 0, B: 0, A: 255},
		color.RGBA{R: 0, G: 0, B: 255, A: 255},
	)

	extractor := NewKMeansExtractor()
	palette, err := extractor.Extract(img, 2)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if palette.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", palette.Len())
	}
	if got := ToRGB(palette.Colors[0]); got != (RGB{R: 255, G: 0, B: 0}) {
		t.Errorf("Colors[0] = %v, want the majority red", got)
	}
	if math.Abs(palette.Weights[0]-0.6) > 1e-9 {
		t.Errorf("Weights[0] = %v, want 0.6", palette.Weights[0])
	}
	if math.Abs(palette.Weights[1]-0.4) > 1e-9 {
		t.Errorf("Weights[1] = %v, want 0.4", palette.Weights[1])
	}
}

func TestKMeansExtractorClusters(t *testing.T) {
	// Four distinct colours in two tight groups, reduced to two
	// clusters: a dark group of 40 pixels and a light group of 60.
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			switch {
			case x < 2:
				img.Set(x, y, color.RGBA{R: 0, G: 0, B: 0, A: 255})
			case x < 4:
				img.Set(x, y, color.RGBA{R: 10, G: 10, B: 10, A: 255})
			case x < 7:
				img.Set(x, y, color.RGBA{R: 240, G: 240, B: 240, A: 255})
			default:
				img.Set(x, y, color.RGBA{R: 250, G: 250, B: 250, A: 255})
			}
		}
	}

	extractor := NewKMeansExtractor()
	palette, err := extractor.Extract(img, 2)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if palette.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", palette.Len())
	}

	sum := 0.0
	for _, w := range palette.Weights {
		sum += w
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("weights sum to %v, want 1.0", sum)
	}
	if palette.Weights[0] < palette.Weights[1] {
		t.Errorf("weights not sorted: %v", palette.Weights)
	}

	// The light group is the bigger cluster.
	first := ToRGB(palette.Colors[0])
	if Brightness(first) < 128 {
		t.Errorf("Colors[0] = %v, want the light cluster first", first)
	}
}

func TestKMeansExtractorDeterministic(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 12, 12))
	for y := 0; y < 12; y++ {
		for x := 0; x < 12; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(x * 20),
				G: uint8(y * 20),
				B: uint8((x + y) * 10),
				A: 255,
			})
		}
	}

	first, err := NewKMeansExtractor().Extract(img, 4)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	second, err := NewKMeansExtractor().Extract(img, 4)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("repeated extraction produced different palettes")
	}
}

func TestSamplePixels(t *testing.T) {
	t.Run("small image samples everything", func(t *testing.T) {
		img := solidImage(10, 10, color.RGBA{R: 1, G: 2, B: 3, A: 255})
		pixels := samplePixels(img, 5000)
		if len(pixels) != 100 {
			t.Errorf("sampled %d pixels, want 100", len(pixels))
		}
	})

	t.Run("large image is capped", func(t *testing.T) {
		img := solidImage(200, 200, color.RGBA{R: 1, G: 2, B: 3, A: 255})
		pixels := samplePixels(img, 1000)
		if len(pixels) > 1000 {
			t.Errorf("sampled %d pixels, want at most 1000", len(pixels))
		}
		if len(pixels) == 0 {
			t.Error("sampled no pixels")
		}
	})
}
