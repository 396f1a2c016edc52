package export

import(
	"fmt"
	"image"
	"log"

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/tmo"
)

var(
	Tonemappers = []string{"drago03", "durand", "icam06", "linear", "reinhard05"}
)

func ListTonemappers() string {
	return fmt.Sprintf("%v", Tonemappers)
}

// NewTonemapper sets up the named operator. The defaults are tweaked for
// astro images, which are mostly dark sky with a few very bright stars; by
// default the operators push the sky up to mid gray.
func NewTonemapper(name string, img hdr.Image) (tmo.ToneMappingOperator, error) {
	switch name {
	case "drago03":
		op := tmo.NewDefaultDrago03(img)
		op.Bias = 1.0            // Keeps the sky dark
		return op, nil

	case "durand":
		return tmo.NewDefaultDurand(img), nil

	case "icam06":
		op := tmo.NewDefaultICam06(img)
		op.Contrast    = 0.65
		op.MaxClipping = 0.99999 // Otherwise the star cores blow out
		return op, nil

	case "linear":
		return tmo.NewLinear(img), nil

	case "reinhard05":
		op := tmo.NewDefaultReinhard05(img)
		op.Chromatic  = 0.005
		op.Light      = 0.005
		return op, nil
	}

	return nil, fmt.Errorf("tonemapper %q not recognized, wanted %s", name, ListTonemappers())
}

// Tonemap runs the named operator over img.
func Tonemap(name string, img hdr.Image) (image.Image, error) {
	op, err := NewTonemapper(name, img)
	if err != nil {
		return nil, err
	}

	log.Printf("Tonemapping: %s\n", name)
	return op.Perform(), nil
}
