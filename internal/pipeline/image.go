package pipeline

import (
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"

	"github.com/nfnt/resize"

	"github.com/born-ml/tensorkit/internal/tensor"
)

// Decode reads a PNG or JPEG image.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// Shrink scales img down so neither side exceeds maxSide, keeping the aspect
// ratio. Images already within bounds, or maxSide 0, are returned unchanged.
func Shrink(img image.Image, maxSide int) image.Image {
	b := img.Bounds()
	if maxSide <= 0 || (b.Dx() <= maxSide && b.Dy() <= maxSide) {
		return img
	}
	return resize.Thumbnail(uint(maxSide), uint(maxSide), img, resize.Bicubic) //nolint:gosec // G115: maxSide > 0
}

// RGB copies img into a channel-last (H, W, 3) byte buffer. Alpha is dropped.
func RGB(img image.Image) (pixels []uint8, height, width int) {
	b := img.Bounds()
	height, width = b.Dy(), b.Dx()
	pixels = make([]uint8, 0, height*width*3)

	if rgba, ok := img.(*image.RGBA); ok {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			row := rgba.Pix[rgba.PixOffset(b.Min.X, y):]
			for x := 0; x < width; x++ {
				pixels = append(pixels, row[4*x], row[4*x+1], row[4*x+2])
			}
		}
		return pixels, height, width
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			pixels = append(pixels, uint8(r>>8), uint8(g>>8), uint8(bl>>8)) //nolint:gosec // G115: 16-bit to 8-bit
		}
	}
	return pixels, height, width
}

// ImageTensor wraps the RGB pixels of img as a (H, W, 3) Uint8 tensor.
// The tensor is a View over a buffer that it alone references.
func ImageTensor(img image.Image) (*tensor.Tensor, error) {
	pixels, h, w := RGB(img)
	return tensor.View(pixels, tensor.Shape{h, w, 3})
}
