package imageprep

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grayFrom(w, h int, pix ...uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	copy(img.Pix, pix)
	return img
}

func TestGrayscale(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	src.Set(1, 0, color.RGBA{A: 255})

	gray := Grayscale(src)

	assert.Equal(t, src.Bounds(), gray.Bounds())
	assert.Equal(t, []uint8{255, 0}, gray.Pix)
}

func TestContrast(t *testing.T) {
	tests := []struct {
		name     string
		src      *image.Gray
		factor   float64
		expected []uint8
	}{
		{
			name:     "factor two doubles distance from mean",
			src:      grayFrom(2, 1, 100, 200),
			factor:   2.0,
			expected: []uint8{50, 250},
		},
		{
			name:     "values are clipped",
			src:      grayFrom(2, 1, 0, 250),
			factor:   2.0,
			expected: []uint8{0, 255},
		},
		{
			name:     "factor one is identity",
			src:      grayFrom(3, 1, 7, 99, 240),
			factor:   1.0,
			expected: []uint8{7, 99, 240},
		},
		{
			name:     "uniform image is unchanged",
			src:      grayFrom(2, 2, 80, 80, 80, 80),
			factor:   2.0,
			expected: []uint8{80, 80, 80, 80},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Contrast(tt.src, tt.factor).Pix)
		})
	}
}

func TestSharpen(t *testing.T) {
	t.Run("uniform image is unchanged", func(t *testing.T) {
		src := grayFrom(3, 3, 90, 90, 90, 90, 90, 90, 90, 90, 90)
		assert.Equal(t, src.Pix, Sharpen(src).Pix)
	})

	t.Run("isolated bright pixel is amplified", func(t *testing.T) {
		src := grayFrom(3, 3,
			0, 0, 0,
			0, 100, 0,
			0, 0, 0)
		out := Sharpen(src)
		assert.Equal(t, uint8(200), out.GrayAt(1, 1).Y)
		assert.Equal(t, uint8(0), out.GrayAt(0, 0).Y, "border pixels are copied")
	})

	t.Run("dark pixel next to bright neighbours clips to zero", func(t *testing.T) {
		src := grayFrom(3, 3,
			255, 255, 255,
			255, 10, 255,
			255, 255, 255)
		assert.Equal(t, uint8(0), Sharpen(src).GrayAt(1, 1).Y)
	})

	t.Run("images smaller than the kernel are copied", func(t *testing.T) {
		src := grayFrom(2, 2, 1, 2, 3, 4)
		assert.Equal(t, src.Pix, Sharpen(src).Pix)
	})
}

func TestPreprocess_SingleChannelAndStable(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 16, 12))
	for y := 0; y < 12; y++ {
		for x := 0; x < 16; x++ {
			src.Set(x, y, color.RGBA{R: uint8(x * 15), G: uint8(y * 20), B: 128, A: 255})
		}
	}
	original := append([]uint8(nil), src.Pix...)

	once := Preprocess(src)
	require.NotNil(t, once)
	assert.Equal(t, src.Bounds(), once.Bounds())
	assert.Equal(t, color.GrayModel, once.ColorModel())

	twice := Preprocess(once)
	assert.Equal(t, once.Bounds(), twice.Bounds())
	assert.Equal(t, color.GrayModel, twice.ColorModel())

	assert.Equal(t, once.Pix, Preprocess(src).Pix, "same input yields same output")
	assert.Equal(t, original, src.Pix, "input must not be mutated")
}

func TestPreprocess_OffsetBounds(t *testing.T) {
	src := image.NewGray(image.Rect(10, 20, 15, 24))
	for i := range src.Pix {
		src.Pix[i] = uint8(i * 10)
	}

	out := Preprocess(src)
	assert.Equal(t, src.Bounds(), out.Bounds())
}

func TestPreprocess_Empty(t *testing.T) {
	out := Preprocess(image.NewGray(image.Rect(0, 0, 0, 0)))
	assert.True(t, out.Bounds().Empty())
}

func TestRoundDiv(t *testing.T) {
	assert.Equal(t, 2, roundDiv(24, 16))
	assert.Equal(t, 1, roundDiv(23, 16))
	assert.Equal(t, -2, roundDiv(-24, 16))
}
