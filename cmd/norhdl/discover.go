package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/vic/norhdl/pkg/hdl"
)

// loadSource turns path — a single .hdl file or a directory — into a
// merged module list. pkg/query stays agnostic of multi-file discovery
// (see pkg/query/build.go); that policy lives here, at the driver edge.
func loadSource(path string) ([]*hdl.Module, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "stat %s", path)
	}

	var files []string
	if info.IsDir() {
		err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(p, ".hdl") {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "walking %s", path)
		}
	} else {
		files = []string{path}
	}

	var mods []*hdl.Module
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", f)
		}
		fileMods, err := hdl.ParseModules(string(data))
		if err != nil {
			return nil, errors.Wrapf(err, "parsing %s", f)
		}
		mods = append(mods, fileMods...)
	}
	return mods, nil
}
