package main

import (
	"path/filepath"
	"strings"
)

// Role tags a connector as an input or an output. Each role carries its own
// identifier rules, looked up once when a descriptor is built.
type Role int

const (
	RoleInput Role = iota + 1
	RoleOutput
)

func (r Role) String() string {
	switch r {
	case RoleInput:
		return "input"
	case RoleOutput:
		return "output"
	}
	return "unknown"
}

// Resolution is what a binary stem means under the naming convention.
type Resolution struct {
	Role          Role
	Category      string // capability map key: "inputs" or "connectors"
	ConnectorName string // stem without the role prefix
	ClassName     string // e.g. "Mist::InRTMP"
	FunctionName  string // e.g. "InputMain"
}

// Resolver maps binary stems to roles. Matching is an exact, case-sensitive
// prefix test; the input prefix is tried first.
type Resolver struct {
	rules []roleRule
}

type roleRule struct {
	role Role
	RoleConfig
}

// NewResolver creates a resolver for the roles in cfg.
func NewResolver(cfg *Config) *Resolver {
	return &Resolver{rules: []roleRule{
		{role: RoleInput, RoleConfig: cfg.Inputs},
		{role: RoleOutput, RoleConfig: cfg.Outputs},
	}}
}

// Resolve derives category, connector, class and entry function from a stem.
//
//	MistInRTMP → inputs/RTMP,     InputMain<Mist::InRTMP>
//	MistOutHLS → connectors/HLS,  OutputMain<Mist::OutHLS>
func (r *Resolver) Resolve(stem string) (Resolution, error) {
	for _, rule := range r.rules {
		connector, ok := strings.CutPrefix(stem, rule.Prefix)
		if !ok {
			continue
		}
		return Resolution{
			Role:          rule.role,
			Category:      rule.Category,
			ConnectorName: connector,
			ClassName:     rule.ClassPrefix + connector,
			FunctionName:  rule.Entry,
		}, nil
	}
	return Resolution{}, &UnrecognizedBinaryStemError{Stem: stem}
}

// Stem returns the file name without directory and final extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
