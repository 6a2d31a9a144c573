package pkg

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// DirExists reports whether path is an existing directory. A path that
// exists but is not a directory is an error.
func DirExists(path string) (bool, error) {
	stat, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !stat.IsDir() {
		return false, fmt.Errorf("%s is not a directory", path)
	}
	return true, nil
}
