// Package source enumerates the documents a run converts.
package source

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/ivlev/alive2json/internal/system"
	"github.com/pkg/errors"
)

// Source is an ordered set of input documents.
type Source interface {
	Count() int
	Path(index int) string
	Read(index int) ([]byte, error)
}

// FileSource reads documents from the filesystem.
type FileSource struct {
	paths []string
}

// New expands each path: directories contribute their .json files in name order,
// files are taken as given.
func New(paths ...string) (*FileSource, error) {
	var out []string
	for _, path := range paths {
		fi, err := os.Stat(path)
		if err != nil {
			return nil, err
		}

		if !fi.IsDir() {
			out = append(out, path)
			continue
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		var found []string
		for _, entry := range entries {
			if !entry.IsDir() && system.IsSource(entry.Name()) {
				found = append(found, filepath.Join(path, entry.Name()))
			}
		}
		sort.Strings(found)
		out = append(out, found...)
	}

	return &FileSource{paths: out}, nil
}

func (s *FileSource) Count() int {
	return len(s.paths)
}

func (s *FileSource) Path(index int) string {
	return s.paths[index]
}

func (s *FileSource) Paths() []string {
	return append([]string(nil), s.paths...)
}

func (s *FileSource) Read(index int) ([]byte, error) {
	data, err := os.ReadFile(s.paths[index])
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", s.paths[index])
	}
	return data, nil
}
