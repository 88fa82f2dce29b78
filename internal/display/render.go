package display

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// bandPages is the height of one text band in pages (16 pixels).
const bandPages = 2

// baseline of the 7x13 face inside a 16 pixel band.
const baseline = 12

// renderBand draws text centered in a full-width band and returns the
// bytes in SSD1306 page order.
func renderBand(text string) []byte {
	img := image1bit.NewVerticalLSB(image.Rect(0, 0, Width, bandPages*8))
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(image1bit.On),
		Face: basicfont.Face7x13,
	}
	x := (Width - d.MeasureString(text).Ceil()) / 2
	if x < 0 {
		x = 0
	}
	d.Dot = fixed.P(x, baseline)
	d.DrawString(text)
	return img.Pix
}
