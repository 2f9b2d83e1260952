package driver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"stylint/internal/config"
)

// ErrNoInput is returned when the resolved file set is empty.
var ErrNoInput = errors.New("no input files")

// Discover resolves files and directories into a sorted, de-duplicated file
// list. Directories are walked recursively and filtered by the include
// extensions and exclude globs; a file named explicitly is always kept, even
// when it does not exist (it becomes an io failure later).
func Discover(paths []string, s *config.Settings) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(p string) {
		p = filepath.Clean(p)
		if _, dup := seen[p]; dup {
			return
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			add(root)
			continue
		}
		err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel, relErr := filepath.Rel(root, p)
			if relErr != nil {
				rel = p
			}
			if d.IsDir() {
				if p != root && s.Excluded(rel) {
					return filepath.SkipDir
				}
				return nil
			}
			if s.Included(p) && !s.Excluded(rel) {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	if len(files) == 0 {
		return nil, ErrNoInput
	}
	// Сортируем для детерминированного порядка
	slices.Sort(files)
	return files, nil
}
