package qrgenerator

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	qr "github.com/skip2/go-qrcode"
)

// logoFraction is the share of the code's side the composited logo takes.
// Kept small so the High error-correction level can recover the hidden
// modules.
const logoFraction = 5

type Generator struct {
	size int
	logo image.Image
}

// NewGenerator returns a Generator producing size x size pixel PNGs.
// logo may be nil, in which case codes are rendered without compositing.
func NewGenerator(size int, logo image.Image) *Generator {
	return &Generator{size: size, logo: logo}
}

// LoadLogo reads a PNG logo from disk for center compositing.
func LoadLogo(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open logo: %w", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode logo: %w", err)
	}
	return img, nil
}

func (g *Generator) Generate(payload string) ([]byte, error) {
	encoded, err := qr.Encode(payload, qr.High, g.size)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	if g.logo == nil {
		return encoded, nil
	}
	return g.composite(encoded)
}

// composite draws the logo over the center of the rendered code, on a white
// backing square so partially transparent logos stay readable.
func (g *Generator) composite(encoded []byte) ([]byte, error) {
	base, err := png.Decode(bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("decode qr: %w", err)
	}

	bounds := base.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, base, bounds.Min, draw.Src)

	side := bounds.Dx() / logoFraction
	logo := scale(g.logo, side, side)

	cx := bounds.Min.X + (bounds.Dx()-side)/2
	cy := bounds.Min.Y + (bounds.Dy()-side)/2

	pad := side / 10
	backing := image.Rect(cx-pad, cy-pad, cx+side+pad, cy+side+pad)
	draw.Draw(out, backing, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(out, image.Rect(cx, cy, cx+side, cy+side), logo, logo.Bounds().Min, draw.Over)

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// scale resizes src to w x h with nearest-neighbor sampling. Logos are small
// flat graphics, so no resampling filter is needed.
func scale(src image.Image, w, h int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	sb := src.Bounds()
	for y := 0; y < h; y++ {
		sy := sb.Min.Y + y*sb.Dy()/h
		for x := 0; x < w; x++ {
			sx := sb.Min.X + x*sb.Dx()/w
			dst.Set(x, y, src.At(sx, sy))
		}
	}
	return dst
}
