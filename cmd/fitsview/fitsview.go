package main

import(
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/pmcg31/qtfits-poc/pkg/export"
	"github.com/pmcg31/qtfits-poc/pkg/stretch"
	"github.com/pmcg31/qtfits-poc/pkg/viewer"
)

var(
	fVerbosity int
	fConfig string
	fOutDir string
	fStretchOnly bool
	fLinked bool
	fBGR bool
	fTargetBackground float64
	fTonemapper string
	fTIFF bool
	fHDR bool
)

func init() {
	flag.IntVar(&fVerbosity, "v", 0, "how verbose to get")
	flag.StringVar(&fConfig, "config", "", "yaml file with stretch parameters")
	flag.StringVar(&fOutDir, "outdir", ".", "where to write the output images")
	flag.BoolVar(&fStretchOnly, "stretchonly", false, "only render the stretched view, skip the linear one")
	flag.BoolVar(&fLinked, "linked", false, "use one set of stretch parameters for all color channels")
	flag.BoolVar(&fBGR, "bgr", false, "color channels are stored blue first")
	flag.Float64Var(&fTargetBackground, "target", 0, "where the background lands after stretching (0.0->1.0)")
	flag.StringVar(&fTonemapper, "tonemapper", "", "also tonemap the raw data, with one of "+export.ListTonemappers()+", or 'all'")
	flag.BoolVar(&fTIFF, "tiff", false, "also write TIFF output")
	flag.BoolVar(&fHDR, "hdr", false, "also write the raw data as a Radiance HDR file")
	flag.Parse()

	log.Printf("fitsview starting\n")
}

func main() {
	files, err := viewer.FindFiles(flag.Args()...)
	if err != nil {
		log.Fatal(err)
	}
	if len(files.FITS) == 0 {
		log.Fatalf("no FITS files found in %v\n", flag.Args())
	}

	cfg := stretch.DefaultConfig()
	configFile := fConfig
	if configFile == "" && len(files.Configs) > 0 {
		configFile = files.Configs[0]
	}
	if configFile != "" {
		if cfg, err = stretch.LoadConfig(configFile); err != nil {
			log.Fatal(err)
		}
		log.Printf("Loaded base configuration from %s\n", configFile)
	}

	// Override the config file with command line args, if relevant
	if fTargetBackground > 0.0 { cfg.TargetBackground = fTargetBackground }
	if fVerbosity > 0 { cfg.Verbosity = fVerbosity }
	if fLinked { cfg.Linked = true }
	if fBGR { cfg.BGR = true }
	if err := cfg.Finalize(); err != nil {
		log.Fatal(err)
	}

	if cfg.Verbosity > 0 {
		log.Printf("Final configuration:-\n\n%s\n", cfg.AsYaml())
	}

	v := viewer.New(cfg)
	for _, filename := range files.FITS {
		if err := v.SetFile(filename); err != nil {
			// The previous image stays loaded; carry on with the next file
			continue
		}
		if err := render(v, cfg); err != nil {
			log.Printf("%s: %v\n", filename, err)
		}
	}
}

func render(v *viewer.Viewer, cfg stretch.Config) error {
	img := v.Image()
	base := filepath.Join(fOutDir, strings.TrimSuffix(filepath.Base(img.Filename()), filepath.Ext(img.Filename())))

	modes := []viewer.Mode{viewer.Linear, viewer.Stretched}
	if fStretchOnly {
		modes = modes[1:]
	}

	for _, mode := range modes {
		v.SetStretched(mode == viewer.Stretched)
		disp := v.Display()

		if mode == viewer.Stretched {
			log.Printf("Stretch parameters: %s\n", v.Parameters())
		}
		log.Printf("Mean display color (%s): %s\n", mode, disp.MeanColor().Hex())

		filename := fmt.Sprintf("%s-%s.png", base, mode)
		if cfg.Verbosity > 0 {
			lines := []string{filepath.Base(img.Filename()), img.SizeAndColorLabel(), img.TypeLabel(), mode.String()}
			if err := export.Annotate(disp, lines, filename); err != nil {
				return err
			}
		} else if err := export.WritePNG(disp, filename); err != nil {
			return err
		}
		log.Printf("Output file written '%s'\n", filename)

		if fTIFF {
			filename = fmt.Sprintf("%s-%s.tif", base, mode)
			if err := export.WriteTIFF(disp, filename); err != nil {
				return err
			}
			log.Printf("Output file written '%s'\n", filename)
		}
	}

	if cfg.Verbosity > 1 {
		g, err := img.ChannelGrid(0)
		if err != nil {
			return err
		}
		log.Printf("Channel 0: %s\n", g.Stats())
		if err := g.ToImg(filepath.Base(img.Filename()), base+"-channel0.png"); err != nil {
			return err
		}
	}

	hi := export.NewHDRImage(img, cfg.BGR)
	if fHDR {
		if err := export.WriteHDR(hi, base+".hdr"); err != nil {
			return err
		}
	}

	tonemappers := []string{}
	if fTonemapper == "all" {
		tonemappers = export.Tonemappers
	} else if fTonemapper != "" {
		tonemappers = []string{fTonemapper}
	}
	for _, name := range tonemappers {
		out, err := export.Tonemap(name, hi)
		if err != nil {
			return err
		}
		if err := export.WritePNG(out, fmt.Sprintf("%s-tmo-%s.png", base, name)); err != nil {
			return err
		}
	}

	return nil
}
