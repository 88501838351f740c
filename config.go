package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"
)

// Duplicate binary name policies.
const (
	PolicyReject     = "reject"      // fail generation on a repeated binary name
	PolicyFirstMatch = "first-match" // keep the first descriptor, drop later ones with the same name
)

// Config holds the naming policy and the literals written into the generated units.
// The zero value is not usable; start from DefaultConfig.
type Config struct {
	Inputs  RoleConfig `yaml:"inputs" json:"inputs" jsonschema:"description=Naming rules for input connectors"`
	Outputs RoleConfig `yaml:"outputs" json:"outputs" jsonschema:"description=Naming rules for output connectors"`

	JSONPatterns   []string `yaml:"json_patterns" json:"json_patterns" validate:"min=1,dive,required" jsonschema:"description=Base name globs classified as capability descriptors"`
	HeaderPatterns []string `yaml:"header_patterns" json:"header_patterns" validate:"min=1,dive,required" jsonschema:"description=Base name globs classified as literal header files"`

	Capabilities CapabilitiesConfig `yaml:"capabilities" json:"capabilities"`
	Entrypoint   EntrypointConfig   `yaml:"entrypoint" json:"entrypoint"`

	DuplicatePolicy string `yaml:"duplicate_policy" json:"duplicate_policy" validate:"oneof=reject first-match" jsonschema:"enum=reject,enum=first-match"`
}

// RoleConfig describes how one connector role is recognized and invoked.
type RoleConfig struct {
	Prefix      string `yaml:"prefix" json:"prefix" validate:"required" jsonschema:"example=MistIn"`
	Category    string `yaml:"category" json:"category" validate:"required" jsonschema:"example=inputs"`
	ClassPrefix string `yaml:"class_prefix" json:"class_prefix" validate:"required" jsonschema:"example=Mist::In"`
	Entry       string `yaml:"entry" json:"entry" validate:"required" jsonschema:"example=InputMain"`
}

// CapabilitiesConfig holds the fixed parts of the capability-registration unit.
type CapabilitiesConfig struct {
	Include   string `yaml:"include" json:"include" validate:"required"`
	Namespace string `yaml:"namespace" json:"namespace" validate:"required"`
	Function  string `yaml:"function" json:"function" validate:"required"`
	Parser    string `yaml:"parser" json:"parser" validate:"required"`
}

// EntrypointConfig holds the fixed parts of the dispatcher unit.
type EntrypointConfig struct {
	FrameworkIncludes []string `yaml:"framework_includes" json:"framework_includes" validate:"dive,required" jsonschema:"description=Include targets written verbatim after #include (keep the quotes or angle brackets)"`
	ControllerName    string   `yaml:"controller_name" json:"controller_name" validate:"required"`
	ControllerEntry   string   `yaml:"controller_entry" json:"controller_entry" validate:"required"`
	SessionName       string   `yaml:"session_name" json:"session_name" validate:"required"`
	SessionEntry      string   `yaml:"session_entry" json:"session_entry" validate:"required"`
	NotFoundCode      int      `yaml:"not_found_code" json:"not_found_code"`
}

// DefaultConfig returns the MistServer naming conventions.
func DefaultConfig() *Config {
	return &Config{
		Inputs: RoleConfig{
			Prefix:      "MistIn",
			Category:    "inputs",
			ClassPrefix: "Mist::In",
			Entry:       "InputMain",
		},
		Outputs: RoleConfig{
			Prefix:      "MistOut",
			Category:    "connectors",
			ClassPrefix: "Mist::Out",
			Entry:       "OutputMain",
		},
		JSONPatterns:   []string{"*.json"},
		HeaderPatterns: []string{"*.h"},
		Capabilities: CapabilitiesConfig{
			Include:   "src/controller/controller_capabilities_static.h",
			Namespace: "Controller",
			Function:  "addStaticCapabilities",
			Parser:    "JSON::fromString",
		},
		Entrypoint: EntrypointConfig{
			FrameworkIncludes: []string{
				"<mist/config.h>",
				"<mist/defines.h>",
				"<mist/socket.h>",
				"<mist/util.h>",
				"<mist/stream.h>",
				`"src/output/mist_out.cpp"`,
				`"src/output/output_rtmp.h"`,
				`"src/output/output_hls.h"`,
				`"src/output/output_http_internal.h"`,
				`"src/input/mist_in.cpp"`,
				`"src/input/input_buffer.h"`,
				`"src/session.cpp"`,
				`"src/controller/controller.cpp"`,
			},
			ControllerName:  "MistController",
			ControllerEntry: "ControllerMain",
			SessionName:     "MistSession",
			SessionEntry:    "SessionMain",
			NotFoundCode:    202,
		},
		DuplicatePolicy: PolicyReject,
	}
}

// LoadConfig reads a YAML config file on top of DefaultConfig.
// An empty path returns the defaults. Unknown keys are rejected.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, &ConfigError{Err: fmt.Errorf("parse %s: %w", path, err)}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report yaml key names instead of Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks field constraints and the cross-field rules the resolver depends on.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			field := strings.TrimPrefix(fe.Namespace(), "Config.")
			return &ConfigError{Field: field, Err: fmt.Errorf("failed on %q", fe.Tag())}
		}
		return &ConfigError{Err: err}
	}

	in, out := c.Inputs.Prefix, c.Outputs.Prefix
	if strings.HasPrefix(in, out) || strings.HasPrefix(out, in) {
		return &ConfigError{Field: "outputs.prefix", Err: fmt.Errorf("prefixes %q and %q overlap", in, out)}
	}
	if c.Inputs.Category == c.Outputs.Category {
		return &ConfigError{Field: "outputs.category", Err: fmt.Errorf("category %q used by both roles", c.Outputs.Category)}
	}
	if c.Entrypoint.ControllerName == c.Entrypoint.SessionName {
		return &ConfigError{Field: "entrypoint.session_name", Err: fmt.Errorf("%q is also the controller name", c.Entrypoint.SessionName)}
	}

	for _, group := range []struct {
		field    string
		patterns []string
	}{
		{"json_patterns", c.JSONPatterns},
		{"header_patterns", c.HeaderPatterns},
	} {
		for _, p := range group.patterns {
			if !doublestar.ValidatePattern(p) {
				return &ConfigError{Field: group.field, Err: fmt.Errorf("bad pattern %q", p)}
			}
		}
	}
	return nil
}

// ConfigSchema returns the JSON schema of the YAML config file.
func ConfigSchema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true,
		FieldNameTag:   "yaml",
	}
	schema := reflector.Reflect(&Config{})

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return data, nil
}
