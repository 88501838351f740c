package main

import (
	"regexp"

	"go.uber.org/zap"
)

// qualifiedIdent matches a C++ name such as RTMP or Mist::OutHTTPTS.
var qualifiedIdent = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(::[A-Za-z_][A-Za-z0-9_]*)*$`)

// DispatchTable maps dispatch tokens to descriptors. It is built once per run
// and decides what happens when two descriptors share a binary name, instead
// of leaving it to the order of the generated comparisons.
type DispatchTable struct {
	// Targets are the descriptors that get a dispatch branch and a capability
	// entry, in input order.
	Targets []CapabilityDescriptor

	byName   map[string]int // binary name → index into Targets
	reserved map[string]bool
}

// BuildDispatchTable checks descriptors against each other and against the
// built-in controller and session names, and checks that every class name can
// be spelled as a C++ template argument.
//
// Under PolicyReject any repeated name fails. Under PolicyFirstMatch the first
// descriptor keeps the name and later ones are dropped with a warning, from
// dispatch and from capability registration alike.
func BuildDispatchTable(descs []CapabilityDescriptor, cfg *Config, logger *zap.Logger) (*DispatchTable, error) {
	t := &DispatchTable{
		byName: make(map[string]int, len(descs)),
		reserved: map[string]bool{
			cfg.Entrypoint.ControllerName: true,
			cfg.Entrypoint.SessionName:    true,
		},
	}

	for _, d := range descs {
		if !qualifiedIdent.MatchString(d.ClassName) {
			return nil, &InvalidClassNameError{Name: d.BinaryName, Class: d.ClassName, Path: d.Path}
		}
		if t.reserved[d.BinaryName] {
			return nil, &ReservedBinaryNameError{Name: d.BinaryName, Path: d.Path}
		}

		if i, ok := t.byName[d.BinaryName]; ok {
			first := t.Targets[i]
			if cfg.DuplicatePolicy != PolicyFirstMatch {
				return nil, &DuplicateBinaryNameError{Name: d.BinaryName, First: first.Path, Second: d.Path}
			}
			logger.Warn("binary shadowed by an earlier descriptor",
				zap.String("binary", d.BinaryName),
				zap.String("kept", first.Path),
				zap.String("dropped", d.Path),
			)
			continue
		}

		t.byName[d.BinaryName] = len(t.Targets)
		t.Targets = append(t.Targets, d)
	}
	return t, nil
}

// Lookup returns the descriptor dispatched for name, if any.
func (t *DispatchTable) Lookup(name string) (CapabilityDescriptor, bool) {
	i, ok := t.byName[name]
	if !ok {
		return CapabilityDescriptor{}, false
	}
	return t.Targets[i], true
}
