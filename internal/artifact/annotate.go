// Package artifact post-processes diagnostic artifacts produced during a run.
package artifact

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const bannerHeight = 24

// AnnotateFailure stamps a banner with the failure label across the top of a
// screenshot PNG, rewriting the file in place.
func AnnotateFailure(path, label string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open screenshot: %w", err)
	}
	img, err := png.Decode(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("decode screenshot: %w", err)
	}

	annotated := Stamp(img, label)

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("rewrite screenshot: %w", err)
	}
	defer out.Close()
	if err := png.Encode(out, annotated); err != nil {
		return fmt.Errorf("encode screenshot: %w", err)
	}
	return nil
}

// Stamp draws a red banner with white label text across the top of an image.
func Stamp(img image.Image, label string) *image.RGBA {
	rgba := imageToRGBA(img)
	bounds := rgba.Bounds()

	bannerColor := color.RGBA{R: 200, G: 30, B: 30, A: 255}
	textColor := color.RGBA{R: 255, G: 255, B: 255, A: 255}

	h := bannerHeight
	if bounds.Dy() < h {
		h = bounds.Dy()
	}
	banner := image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Min.Y+h)
	draw.Draw(rgba, banner, image.NewUniform(bannerColor), image.Point{}, draw.Src)

	drawLabel(rgba, label, bounds.Min.X+6, bounds.Min.Y+h/2, textColor)
	return rgba
}

func imageToRGBA(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	return rgba
}

func drawLabel(img *image.RGBA, text string, x, y int, c color.Color) {
	// basicfont.Face7x13 is ~13 pixels tall; baseline sits below center
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(x * 64),
			Y: fixed.Int26_6((y + 4) * 64),
		},
	}
	d.DrawString(text)
}
