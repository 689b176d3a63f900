// Package imageprep prepares rasterized pages for OCR: grayscale, contrast
// boost, sharpen. Preprocess is deterministic and never mutates its input.
package imageprep

import (
	"image"

	"golang.org/x/image/draw"
)

// ContrastFactor is the fixed contrast enhancement applied before sharpening.
const ContrastFactor = 2.0

// sharpenKernel is the 3x3 sharpen filter, applied with sharpenDivisor.
var sharpenKernel = [9]int{
	-2, -2, -2,
	-2, 32, -2,
	-2, -2, -2,
}

const sharpenDivisor = 16

// Preprocess converts img to single-channel grayscale, enhances its contrast by
// ContrastFactor and sharpens it. The result always has img's bounds.
func Preprocess(img image.Image) *image.Gray {
	gray := Grayscale(img)
	gray = Contrast(gray, ContrastFactor)
	return Sharpen(gray)
}

// Grayscale returns a new single-channel copy of img.
func Grayscale(img image.Image) *image.Gray {
	b := img.Bounds()
	gray := image.NewGray(b)
	draw.Draw(gray, b, img, b.Min, draw.Src)
	return gray
}

// Contrast scales every pixel's distance from the mean luminance by factor.
// factor 1 returns an identical copy, 0 a flat mean-gray image.
func Contrast(src *image.Gray, factor float64) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(b)
	if b.Empty() {
		return dst
	}

	mean := float64(meanLuminance(src))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		si := src.PixOffset(b.Min.X, y)
		di := dst.PixOffset(b.Min.X, y)
		for x := 0; x < b.Dx(); x++ {
			v := mean + factor*(float64(src.Pix[si+x])-mean)
			dst.Pix[di+x] = clip8(int(v))
		}
	}
	return dst
}

// Sharpen applies the 3x3 sharpen kernel. Border pixels, which lack a full
// neighbourhood, are copied unchanged.
func Sharpen(src *image.Gray) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		copy(dst.Pix[dst.PixOffset(b.Min.X, y):dst.PixOffset(b.Min.X, y)+b.Dx()],
			src.Pix[src.PixOffset(b.Min.X, y):src.PixOffset(b.Min.X, y)+b.Dx()])
	}
	if b.Dx() < 3 || b.Dy() < 3 {
		return dst
	}

	for y := b.Min.Y + 1; y < b.Max.Y-1; y++ {
		for x := b.Min.X + 1; x < b.Max.X-1; x++ {
			sum := 0
			k := 0
			for dy := -1; dy <= 1; dy++ {
				row := src.PixOffset(x-1, y+dy)
				for dx := 0; dx < 3; dx++ {
					sum += sharpenKernel[k] * int(src.Pix[row+dx])
					k++
				}
			}
			dst.Pix[dst.PixOffset(x, y)] = clip8(roundDiv(sum, sharpenDivisor))
		}
	}
	return dst
}

// meanLuminance returns the rounded mean pixel value.
func meanLuminance(img *image.Gray) int {
	b := img.Bounds()
	n := b.Dx() * b.Dy()
	if n == 0 {
		return 0
	}
	var total int
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := img.PixOffset(b.Min.X, y)
		for _, p := range img.Pix[off : off+b.Dx()] {
			total += int(p)
		}
	}
	return (total + n/2) / n
}

// roundDiv divides rounding to the nearest integer, halves away from zero.
func roundDiv(sum, div int) int {
	if sum < 0 {
		return -((-sum + div/2) / div)
	}
	return (sum + div/2) / div
}

func clip8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
