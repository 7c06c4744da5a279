package mandel

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// ToRGBA copies a row-major frame buffer into a new w×h image.
func ToRGBA(data []color.RGBA, w, h int) (*image.RGBA, error) {
	if w < 1 || h < 1 || len(data) != w*h {
		return nil, fmt.Errorf("frame of %d pixels does not fit %dx%d", len(data), w, h)
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Pix = Pix(data)
	return img, nil
}

// Pix flattens a frame buffer into RGBA bytes, 4 per pixel.
func Pix(data []color.RGBA) []byte {
	pix := make([]byte, 0, len(data)*4)
	for _, c := range data {
		pix = append(pix, c.R, c.G, c.B, c.A)
	}
	return pix
}

// Upscale enlarges img by an integer factor with nearest neighbour sampling,
// keeping every escape band crisp.
func Upscale(img *image.RGBA, factor int) *image.RGBA {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
