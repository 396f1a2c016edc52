package viewer

import(
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var FITSExtensions = []string{".fits", ".fit", ".fts"}

// Files are the inputs named on a command line, once directories have been
// walked.
type Files struct {
	FITS     []string
	Configs  []string  // .yaml files
}

func IsFITS(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range FITSExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// FindFiles recurses into directories; other file types are ignored.
func FindFiles(args ...string) (Files, error) {
	f := Files{}
	if err := f.add(args...); err != nil {
		return f, err
	}
	sort.Strings(f.FITS)
	return f, nil
}

func (f *Files)add(args ...string) error {
	for _, arg := range args {
		item, err := os.Stat(arg)

		switch {

		case err != nil:
			return fmt.Errorf("load %s: %v", arg, err)

		case item.IsDir():
			// Is a dir, recurse into contents
			contents, err := ioutil.ReadDir(arg)
			if err != nil {
				return fmt.Errorf("readdir %s: %v", arg, err)
			}
			for _, content := range contents {
				if err := f.add(filepath.Join(arg, content.Name())); err != nil {
					return fmt.Errorf("load %s: %v", arg, err)
				}
			}

		case IsFITS(arg):
			f.FITS = append(f.FITS, arg)

		case strings.ToLower(filepath.Ext(arg)) == ".yaml":
			f.Configs = append(f.Configs, arg)
		}
	}

	return nil
}
