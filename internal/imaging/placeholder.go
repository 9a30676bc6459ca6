package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strconv"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const maxDimension = 4096

var backgrounds = []color.RGBA{
	{R: 0x1f, G: 0x2a, B: 0x44, A: 0xff},
	{R: 0x3b, G: 0x1f, B: 0x2b, A: 0xff},
	{R: 0x1e, G: 0x3d, B: 0x33, A: 0xff},
	{R: 0x40, G: 0x33, B: 0x1a, A: 0xff},
}

var accent = color.RGBA{R: 0xe0, G: 0x6c, B: 0x4c, A: 0xff}

// ParseSize parses a "WIDTHxHEIGHT" string such as "1024x1536".
func ParseSize(size string) (int, int, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(size)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q: expected WIDTHxHEIGHT", size)
	}
	width, err := strconv.Atoi(w)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid size %q: bad width", size)
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid size %q: bad height", size)
	}
	if width <= 0 || height <= 0 || width > maxDimension || height > maxDimension {
		return 0, 0, fmt.Errorf("invalid size %q: dimensions must be between 1 and %d", size, maxDimension)
	}
	return width, height, nil
}

// Placeholder renders image index of total (1-based) as a PNG: a solid
// background, a diagonal accent band and a "STUB i/n" label.
func Placeholder(width, height, index, total int) ([]byte, error) {
	if width <= 0 || height <= 0 || width > maxDimension || height > maxDimension {
		return nil, fmt.Errorf("invalid placeholder dimensions %dx%d", width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	bg := backgrounds[(index-1+len(backgrounds))%len(backgrounds)]
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	// Band runs from the top-left to the bottom-right corner.
	band := float64(min(width, height)) * 0.06
	for y := 0; y < height; y++ {
		diagX := float64(y) * float64(width) / float64(height)
		for x := 0; x < width; x++ {
			if d := float64(x) - diagX; d > -band && d < band {
				img.SetRGBA(x, y, accent)
			}
		}
	}

	drawLabel(img, fmt.Sprintf("STUB %d/%d", index, total))

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode placeholder: %w", err)
	}
	return buf.Bytes(), nil
}

// drawLabel renders text with the 7x13 bitmap face on a small canvas and
// scales it up to roughly 60% of the image width, centered.
func drawLabel(dst *image.RGBA, text string) {
	face := basicfont.Face7x13
	const pad = 2
	textWidth := font.MeasureString(face, text).Ceil()
	metrics := face.Metrics()
	textHeight := metrics.Height.Ceil()

	label := image.NewRGBA(image.Rect(0, 0, textWidth+2*pad, textHeight+2*pad))
	draw.Draw(label, label.Bounds(), image.NewUniform(color.RGBA{A: 0xc0}), image.Point{}, draw.Src)
	d := &font.Drawer{
		Dst:  label,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.P(pad, pad+metrics.Ascent.Ceil()),
	}
	d.DrawString(text)

	bounds := dst.Bounds()
	scale := max(1, bounds.Dx()*6/10/label.Bounds().Dx())
	w := label.Bounds().Dx() * scale
	h := label.Bounds().Dy() * scale
	x0 := (bounds.Dx() - w) / 2
	y0 := (bounds.Dy() - h) / 2
	draw.NearestNeighbor.Scale(dst, image.Rect(x0, y0, x0+w, y0+h), label, label.Bounds(), draw.Over, nil)
}
