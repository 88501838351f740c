package main

import (
	"fmt"
	"strings"
)

// EmitCapabilities renders the static capability-registration unit: one
// assignment per descriptor, in order, parsing the embedded JSON at startup.
// Payloads are passed through without validation.
func EmitCapabilities(descs []CapabilityDescriptor, cfg *Config) []byte {
	cc := cfg.Capabilities
	lines := []string{
		`#include "` + cc.Include + `"`,
		fmt.Sprintf("namespace %s{", cc.Namespace),
		fmt.Sprintf("  void %s(JSON::Value &capabilities) {", cc.Function),
	}

	for _, d := range descs {
		lines = append(lines, fmt.Sprintf("    capabilities[%s][%s] = %s(%s);",
			CLiteral(d.Category), CLiteral(d.ConnectorName), cc.Parser, CLiteral(d.Payload)))
	}

	lines = append(lines,
		"  }",
		"}",
	)
	return []byte(strings.Join(lines, "\n"))
}
