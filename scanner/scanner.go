// Package scanner walks a directory tree and collects the source files a
// run should process, filtered by extension.
package scanner

import (
	"io/fs"
	"path/filepath"
)

// Scanner finds target files under a root directory.
type Scanner struct {
	rootDir    string
	extensions []string
}

// New creates a scanner for rootDir. With no extensions every file is a
// target.
func New(rootDir string, extensions ...string) *Scanner {
	return &Scanner{
		rootDir:    rootDir,
		extensions: extensions,
	}
}

// Scan walks the tree and returns the target files in walk order, so a run
// over a directory is deterministic.
func (s *Scanner) Scan() ([]string, error) {
	var files []string
	err := filepath.WalkDir(s.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if s.isTargetFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (s *Scanner) isTargetFile(path string) bool {
	if len(s.extensions) == 0 {
		return true
	}

	ext := filepath.Ext(path)
	for _, targetExt := range s.extensions {
		if ext == targetExt {
			return true
		}
	}
	return false
}
