package assets

import (
	"fmt"
	"os"
	"path/filepath"
)

// VerifyDir checks that dir contains every required file plus one style file
// per requested style (all default styles when styles is nil). It returns the
// relative paths that are missing; an empty slice means the tree is complete.
func VerifyDir(dir string, styles []string) ([]string, error) {
	var missing []string

	for _, rel := range AllFiles(styles) {
		p := filepath.Join(dir, filepath.FromSlash(rel))

		fi, err := os.Stat(p)
		if err != nil {
			if os.IsNotExist(err) {
				missing = append(missing, rel)
				continue
			}

			return nil, fmt.Errorf("stat %s: %w", p, err)
		}

		if fi.IsDir() {
			missing = append(missing, rel)
		}
	}

	return missing, nil
}
