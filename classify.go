package main

import (
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// Classified is the input file list split by kind. Relative order is kept
// within each partition.
type Classified struct {
	JSONFiles   []string
	HeaderFiles []string
}

// Classify partitions paths into capability descriptors and header files.
// The base name is matched against the JSON patterns first, then the header
// patterns. The first path matching neither aborts classification.
func Classify(paths []string, cfg *Config) (Classified, error) {
	var c Classified
	for _, path := range paths {
		base := filepath.Base(path)
		switch {
		case matchAny(cfg.JSONPatterns, base):
			c.JSONFiles = append(c.JSONFiles, path)
		case matchAny(cfg.HeaderPatterns, base):
			c.HeaderFiles = append(c.HeaderFiles, path)
		default:
			return Classified{}, &UnknownFileTypeError{Path: path}
		}
	}
	return c, nil
}

func matchAny(patterns []string, name string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
