package main

import (
	"context"

	"go.uber.org/zap"
)

// GeneratedFile is one rendered output artifact.
type GeneratedFile struct {
	Name    string // output path as given on the command line
	Content []byte
}

// Options names the inputs and outputs of one generation run.
type Options struct {
	CapHeader  string   // capability-registration unit output path
	Entrypoint string   // dispatcher unit output path
	Files      []string // input artifacts, in significant order
}

// Generator runs classification, resolution and both emitters in memory.
// Nothing is written until every input has resolved.
type Generator struct {
	cfg      *Config
	resolver *Resolver
	logger   *zap.Logger
}

// NewGenerator creates a generator for cfg.
func NewGenerator(cfg *Config, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		cfg:      cfg,
		resolver: NewResolver(cfg),
		logger:   logger,
	}
}

// Generate renders the capability unit and the entrypoint unit, in that order.
func (g *Generator) Generate(ctx context.Context, opts Options) ([]GeneratedFile, error) {
	// ── Pass 1: classify and resolve ──

	classified, err := Classify(opts.Files, g.cfg)
	if err != nil {
		return nil, err
	}
	g.logger.Debug("classified inputs",
		zap.Int("descriptors", len(classified.JSONFiles)),
		zap.Int("headers", len(classified.HeaderFiles)),
	)

	descs, err := LoadDescriptors(classified.JSONFiles, g.resolver)
	if err != nil {
		return nil, err
	}
	for _, d := range descs {
		g.logger.Debug("resolved descriptor",
			zap.String("binary", d.BinaryName),
			zap.Stringer("role", d.Role),
			zap.String("class", d.ClassName),
			zap.Int("payload_bytes", len(d.Payload)),
		)
	}

	table, err := BuildDispatchTable(descs, g.cfg, g.logger)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// ── Pass 2: emit ──

	return []GeneratedFile{
		{Name: opts.CapHeader, Content: EmitCapabilities(table.Targets, g.cfg)},
		{Name: opts.Entrypoint, Content: EmitEntrypoint(table, classified.HeaderFiles, g.cfg)},
	}, nil
}
