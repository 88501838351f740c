package main

import (
	"fmt"
	"strings"
)

// EmitEntrypoint renders the combined-binary main(). argv[1] selects the
// program: the controller, each dispatch target in table order, then the
// session. Anything else, and a missing argv[1], runs the controller with the
// original arguments.
func EmitEntrypoint(table *DispatchTable, headers []string, cfg *Config) []byte {
	ec := cfg.Entrypoint
	var lines []string

	for _, h := range headers {
		lines = append(lines, `#include "`+h+`"`)
	}
	for _, inc := range ec.FrameworkIncludes {
		lines = append(lines, "#include "+inc)
	}

	lines = append(lines,
		"int main(int argc, char *argv[]){",
		"  if (argc < 2) {",
		fmt.Sprintf("    return %s(argc, argv);", ec.ControllerEntry),
		"  }",
		"  // Create a new argv array without argv[1]",
		"  int new_argc = argc - 1;",
		"  char** new_argv = new char*[new_argc + 1];",
		"  for (int i = 0, j = 0; i < argc; ++i) {",
		"      if (i != 1) {",
		"          new_argv[j++] = argv[i];",
		"      }",
		"  }",
		"  new_argv[new_argc] = 0;",
	)

	lines = append(lines, branch("if", ec.ControllerName, ec.ControllerEntry)...)
	for _, d := range table.Targets {
		entry := fmt.Sprintf("%s<%s>", d.FunctionName, d.ClassName)
		lines = append(lines, branch("else if", d.BinaryName, entry)...)
	}
	lines = append(lines, branch("else if", ec.SessionName, ec.SessionEntry)...)

	// INFO_MSG and the return below it are unreachable: every else branch returns.
	lines = append(lines,
		"  else {",
		fmt.Sprintf("    return %s(argc, argv);", ec.ControllerEntry),
		"  }",
		`  INFO_MSG("binary not found: %s", argv[1]);`,
		fmt.Sprintf("  return %d;", ec.NotFoundCode),
		"}",
	)
	return []byte(strings.Join(lines, "\n"))
}

func branch(keyword, name, entry string) []string {
	return []string{
		fmt.Sprintf("  %s (strcmp(argv[1], %s) == 0) {", keyword, CLiteral(name)),
		fmt.Sprintf("    return %s(new_argc, new_argv);", entry),
		"  }",
	}
}
