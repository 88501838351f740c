package main

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is checks against the typed errors below.
var (
	ErrUnknownFileType        = errors.New("unknown file type")
	ErrUnrecognizedBinaryStem = errors.New("unrecognized binary stem")
	ErrDuplicateBinaryName    = errors.New("duplicate binary name")
	ErrReservedBinaryName     = errors.New("reserved binary name")
	ErrInvalidClassName       = errors.New("invalid class name")
	ErrInvalidConfig          = errors.New("invalid config")
)

// UnknownFileTypeError is returned for an input path that is neither a
// capability descriptor nor a header file.
type UnknownFileTypeError struct {
	Path string
}

func (e *UnknownFileTypeError) Error() string {
	return fmt.Sprintf("unknown file type: %s", e.Path)
}

func (e *UnknownFileTypeError) Is(target error) bool {
	return target == ErrUnknownFileType
}

// UnrecognizedBinaryStemError is returned when a descriptor stem carries
// neither the input nor the output prefix.
type UnrecognizedBinaryStemError struct {
	Stem string
}

func (e *UnrecognizedBinaryStemError) Error() string {
	return fmt.Sprintf("unknown binary naming convention: %s", e.Stem)
}

func (e *UnrecognizedBinaryStemError) Is(target error) bool {
	return target == ErrUnrecognizedBinaryStem
}

// DuplicateBinaryNameError reports two descriptors competing for one dispatch token.
type DuplicateBinaryNameError struct {
	Name   string
	First  string // path of the descriptor that would win
	Second string // path of the shadowed descriptor
}

func (e *DuplicateBinaryNameError) Error() string {
	return fmt.Sprintf("binary %s declared twice:\n  1. %s\n  2. %s", e.Name, e.First, e.Second)
}

func (e *DuplicateBinaryNameError) Is(target error) bool {
	return target == ErrDuplicateBinaryName
}

// ReservedBinaryNameError reports a descriptor named like a built-in target.
type ReservedBinaryNameError struct {
	Name string
	Path string
}

func (e *ReservedBinaryNameError) Error() string {
	return fmt.Sprintf("binary %s (%s) collides with a built-in dispatch target", e.Name, e.Path)
}

func (e *ReservedBinaryNameError) Is(target error) bool {
	return target == ErrReservedBinaryName
}

// InvalidClassNameError reports a connector whose class name is not a C++
// identifier, e.g. the stem MistOutHTTP-TS.
type InvalidClassNameError struct {
	Name  string
	Class string
	Path  string
}

func (e *InvalidClassNameError) Error() string {
	return fmt.Sprintf("binary %s (%s): %q is not a valid class name", e.Name, e.Path, e.Class)
}

func (e *InvalidClassNameError) Is(target error) bool {
	return target == ErrInvalidClassName
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config validation failed for field '%s': %v", e.Field, e.Err)
	}
	return fmt.Sprintf("config validation failed: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}
