package export

import(
	"image"

	"github.com/fogleman/gg"
)

// Annotate draws lines of text over the top left of img, and saves it as a PNG.
func Annotate(img image.Image, lines []string, filename string) error {
	dc := gg.NewContextForImage(img)

	// A dark shadow under the text keeps it readable on bright stars
	for i, line := range lines {
		y := 20.0 + 15.0*float64(i)
		dc.SetRGB(0, 0, 0)
		dc.DrawString(line, 11, y+1)
		dc.SetRGB(1, 0.2, 0.2)
		dc.DrawString(line, 10, y)
	}

	return dc.SavePNG(filename)
}
