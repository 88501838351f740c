package main

import (
	"fmt"
	"os"
	"strings"
)

// CapabilityDescriptor is one connector's resolved identity and its raw
// capability JSON.
type CapabilityDescriptor struct {
	Path       string // input file, for diagnostics
	BinaryName string // file stem; dispatch token in the combined binary
	Resolution
	Payload string // file content, trailing newlines removed
}

// LoadDescriptors reads and resolves every JSON file, in order. The first
// unreadable file or unrecognized stem aborts the whole load.
func LoadDescriptors(paths []string, resolver *Resolver) ([]CapabilityDescriptor, error) {
	descs := make([]CapabilityDescriptor, 0, len(paths))
	for _, path := range paths {
		d, err := loadDescriptor(path, resolver)
		if err != nil {
			return nil, err
		}
		descs = append(descs, d)
	}
	return descs, nil
}

func loadDescriptor(path string, resolver *Resolver) (CapabilityDescriptor, error) {
	stem := Stem(path)
	res, err := resolver.Resolve(stem)
	if err != nil {
		return CapabilityDescriptor{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return CapabilityDescriptor{}, fmt.Errorf("read descriptor: %w", err)
	}

	return CapabilityDescriptor{
		Path:       path,
		BinaryName: stem,
		Resolution: res,
		Payload:    TrimPayload(string(data)),
	}, nil
}

// TrimPayload strips trailing newline characters. Leading newlines and other
// whitespace are kept.
func TrimPayload(s string) string {
	return strings.TrimRight(s, "\n")
}
