// Package main implements onebinary, a build-time generator for the combined
// MistServer executable.
//
// Every input and output connector is built separately and dumps its
// capabilities as JSON, one file per binary (MistInRTMP.json,
// MistOutHLS.json, ...). onebinary fuses those files into two C++ units:
//
//   - a capability unit that registers every connector's JSON statically, so
//     the controller no longer has to exec each binary to ask for it;
//   - an entrypoint whose main() looks at argv[1] and runs the matching
//     connector's main, busybox style.
//
// Generation flow:
//
//  1. Classify inputs by base name → capability JSON / literal headers
//  2. Resolve each JSON stem by prefix → input or output role
//  3. Build the dispatch table, rejecting duplicate and reserved names
//  4. Render both units in memory
//  5. Write both units (or print them as a txtar archive with --dry-run)
//
// Usage:
//
//	onebinary --cap-header cap.cpp --entrypoint main.cpp MistInRTMP.json MistOutHLS.json
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type cliFlags struct {
	capHeader  string
	entrypoint string
	configPath string
	verbose    bool
	dryRun     bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(os.Stdout).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "onebinary: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	var (
		flags  cliFlags
		logger *zap.Logger
	)

	root := &cobra.Command{
		Use:   "onebinary --cap-header PATH --entrypoint PATH files...",
		Short: "Generate the static capabilities and multiplexing entrypoint for a combined binary",
		Long: `Reads connector capability JSON files (MistIn*.json, MistOut*.json) and
optional header files, in the order given, and writes:

  --cap-header   a unit registering every connector's capabilities
  --entrypoint   a main() dispatching on argv[1] to the named connector

Nothing is written if any input has an unknown type or naming convention.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			if flags.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			logger, err = config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, args, logger, stdout)
		},
	}

	root.Flags().StringVar(&flags.capHeader, "cap-header", "", "location of the generated capabilities unit")
	root.Flags().StringVar(&flags.entrypoint, "entrypoint", "", "location of the generated entrypoint unit")
	root.Flags().StringVar(&flags.configPath, "config", "", "YAML naming policy (defaults to the MistServer conventions)")
	root.Flags().BoolVar(&flags.dryRun, "dry-run", false, "print generated code without writing")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose logging")
	_ = root.MarkFlagRequired("cap-header")
	_ = root.MarkFlagRequired("entrypoint")

	root.AddCommand(newSchemaCmd(stdout))
	return root
}

func run(cmd *cobra.Command, flags cliFlags, files []string, logger *zap.Logger, stdout io.Writer) error {
	cfg, err := LoadConfig(flags.configPath)
	if err != nil {
		return err
	}

	gen := NewGenerator(cfg, logger)
	out, err := gen.Generate(cmd.Context(), Options{
		CapHeader:  flags.capHeader,
		Entrypoint: flags.entrypoint,
		Files:      files,
	})
	if err != nil {
		return err
	}

	if flags.dryRun {
		return PrintArchive(stdout, out)
	}

	for _, f := range out {
		logger.Debug("writing", zap.String("path", f.Name), zap.Int("bytes", len(f.Content)))
	}
	if err := WriteFiles(out); err != nil {
		return err
	}
	logger.Debug("generated files", zap.Int("count", len(out)))
	return nil
}

func newSchemaCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the --config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := ConfigSchema()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(stdout, "%s\n", data)
			return err
		},
	}
}
