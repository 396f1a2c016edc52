package main

import(
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pmcg31/qtfits-poc/pkg/fits"
	"github.com/pmcg31/qtfits-poc/pkg/stretch"
	"github.com/pmcg31/qtfits-poc/pkg/viewer"
)

var(
	Log *log.Logger

	fConfig string
	fLinked bool
	fShowConfig bool
)

func init() {
	flag.StringVar(&fConfig, "config", "", "yaml file with stretch parameters")
	flag.BoolVar(&fLinked, "linked", false, "use one set of stretch parameters for all color channels")
	flag.BoolVar(&fShowConfig, "showconfig", false, "print the stretch configuration as yaml")
	flag.Parse()

	Log = log.New(os.Stdout,"", 0)
}

func main() {
	files, err := viewer.FindFiles(flag.Args()...)
	if err != nil {
		log.Fatal(err)
	}

	cfg := stretch.DefaultConfig()
	if fConfig != "" {
		if cfg, err = stretch.LoadConfig(fConfig); err != nil {
			log.Fatal(err)
		}
	}
	if fLinked { cfg.Linked = true }

	if fShowConfig {
		Log.Printf("%s", cfg.AsYaml())
	}

	e := stretch.NewEngine(cfg)
	failed := 0
	for _, filename := range files.FITS {
		if err := describe(e, filename); err != nil {
			log.Printf("%v\n", err)
			failed++
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}

func describe(e *stretch.Engine, filename string) error {
	img, err := fits.Load(filename)
	if err != nil {
		return err
	}

	d := img.Descriptor()
	Log.Printf("%s\n", filename)
	Log.Printf("  %s\n", img.TypeLabel())
	Log.Printf("  %s\n", img.SizeAndColorLabel())
	Log.Printf("  axes %v, %d samples, encoding %s\n", d.AxisLengths[:d.AxisCount], d.PixelCount, img.Encoding())

	min, max := img.Range()
	Log.Printf("  normalized range [%f, %f]\n", min, max)

	all, err := e.Stats(img)
	if err != nil {
		return fmt.Errorf("%s: %v", filename, err)
	}
	p := e.ComputeParameters(img)

	for c, cs := range all {
		g, err := img.ChannelGrid(c)
		if err != nil {
			return err
		}
		lo, hi := g.Percentiles(0.01, 0.99)
		Log.Printf("  channel %d: %s, 1%%..99%% [%f, %f]\n", c, cs, lo, hi)
		Log.Printf("  channel %d: stretch %s\n", c, p.For(c))
	}

	return nil
}
