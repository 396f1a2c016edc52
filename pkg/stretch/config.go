package stretch

import(
	"fmt"
	"io/ioutil"
	"log"

	"gopkg.in/yaml.v2"
)

/* Example config file ...

targetbackground: 0.25
shadowclip: -2.8
highlightpercentile: 99.98
maxsamples: 500000
mindispersion: 0.001
linked: false
bgr: false
verbosity: 0

*/

type Config struct {
	TargetBackground     float64  // where the median lands after stretching, in [0,1]
	ShadowClip           float64  // black point offset from the median, in units of dispersion
	HighlightPercentile  float64  // white point, as a percentile of the sampled values
	MaxSamples           int      // per channel
	MinDispersion        float64  // floor for the normalized MAD
	Linked               bool     // one set of parameters for all three channels
	BGR                  bool     // channel 0 is blue
	Verbosity            int
}

func DefaultConfig() Config {
	return Config{
		TargetBackground:    0.25,
		ShadowClip:          -2.8,
		HighlightPercentile: 99.98,
		MaxSamples:          500000,
		MinDispersion:       0.001,
	}
}

// LoadConfig overlays the yaml file onto the defaults.
func LoadConfig(filename string) (Config, error) {
	c := DefaultConfig()

	if contents,err := ioutil.ReadFile(filename); err != nil {
		return c, fmt.Errorf("read '%s': %v", filename, err)
	} else if err := yaml.Unmarshal(contents, &c); err != nil {
		return c, fmt.Errorf("parse '%s': %v", filename, err)
	}

	return c, c.Finalize()
}

func (c Config)AsYaml() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		log.Fatalf("Can't marshal config yaml: %v\n", err)
	}
	return string(b)
}

// Finalize does sanity checks
func (c *Config)Finalize() error {
	if c.TargetBackground <= 0 || c.TargetBackground >= 1 {
		return fmt.Errorf("targetbackground %f not inside (0,1)", c.TargetBackground)
	}
	if c.ShadowClip > 0 {
		return fmt.Errorf("shadowclip %f is positive; it would clip the background", c.ShadowClip)
	}
	if c.HighlightPercentile <= 0 || c.HighlightPercentile > 100 {
		return fmt.Errorf("highlightpercentile %f not inside (0,100]", c.HighlightPercentile)
	}
	if c.MaxSamples <= 0 {
		return fmt.Errorf("maxsamples %d must be positive", c.MaxSamples)
	}
	if c.MinDispersion <= 0 || c.MinDispersion >= 1 {
		return fmt.Errorf("mindispersion %f not inside (0,1)", c.MinDispersion)
	}
	return nil
}
