// Package generator runs one project generation: load the template bundle,
// project the configuration, drop excluded paths, render, filter stubs and
// hand each file to a sink.
package generator

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/company/fastapi-configurator/internal/bundle"
	"github.com/company/fastapi-configurator/internal/cookiecutter"
	"github.com/company/fastapi-configurator/internal/exclude"
	"github.com/company/fastapi-configurator/internal/output"
	"github.com/company/fastapi-configurator/internal/project"
	"github.com/company/fastapi-configurator/internal/render"
)

const tracerName = "github.com/company/fastapi-configurator/internal/generator"

// Sink receives rendered files. archive.Writer and filemanager.TreeWriter
// both satisfy it.
type Sink interface {
	Add(path string, content []byte) error
	Close() error
}

// Result describes what one run produced.
type Result struct {
	Root      string
	Written   []string
	Excluded  []string
	Stubs     []string
	Fallbacks []*render.SyntaxError
	Bytes     int64
	Rules     []string
}

// Generator turns configurations into projects using one template source.
type Generator struct {
	source bundle.Source
	tracer trace.Tracer
}

// New returns a generator reading templates from source.
func New(source bundle.Source) *Generator {
	return &Generator{
		source: source,
		tracer: otel.Tracer(tracerName),
	}
}

// Generate writes the project for cfg into sink and closes it. cfg is
// resolved first, so callers may pass an unresolved configuration; field
// validation is the caller's concern. Any error is terminal and the sink's
// partial output must be discarded.
func (g *Generator) Generate(ctx context.Context, cfg project.Config, sink Sink, progress ProgressFunc) (res *Result, err error) {
	ctx, span := g.tracer.Start(ctx, "generate")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	cfg = project.Resolve(cfg)

	t := newTracker(progress)
	t.report(ProgressStart)

	b, err := g.load(ctx)
	if err != nil {
		return nil, err
	}
	t.report(ProgressFetched)

	cctx := cookiecutter.Project(cfg)
	excluded := exclude.Resolve(cctx)
	renderer := render.New(cctx)
	slug, _ := cctx.Text(cookiecutter.KeyProjectSlug)

	res = &Result{Root: slug, Rules: exclude.Triggered(cctx)}
	span.SetAttributes(
		attribute.String("project.slug", slug),
		attribute.Int("bundle.files", b.Len()),
		attribute.Int("exclude.entries", excluded.Len()),
	)

	log := output.Stage("render")
	paths := b.Paths()
	for i, tplPath := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		processed := i + 1

		outPath := renderer.Path(tplPath)
		if excluded.Excluded(outPath) {
			res.Excluded = append(res.Excluded, outPath)
			t.file(processed, len(paths))
			continue
		}

		content, rerr := renderer.Content(outPath, b.Files[tplPath])
		if rerr != nil {
			var synErr *render.SyntaxError
			if !errors.As(rerr, &synErr) {
				return nil, rerr
			}
			log.Warn("template kept unrendered", "path", outPath, "err", synErr.Err)
			res.Fallbacks = append(res.Fallbacks, synErr)
		}

		if render.IsStub(outPath, content) {
			log.Debug("dropping stub module", "path", outPath)
			res.Stubs = append(res.Stubs, outPath)
			t.file(processed, len(paths))
			continue
		}

		if err := sink.Add(outPath, []byte(content)); err != nil {
			return nil, fmt.Errorf("writing %s: %w", outPath, err)
		}
		res.Written = append(res.Written, outPath)
		res.Bytes += int64(len(content))
		t.file(processed, len(paths))
	}
	t.report(ProgressRendered)

	span.SetAttributes(
		attribute.Int("files.written", len(res.Written)),
		attribute.Int("files.excluded", len(res.Excluded)),
		attribute.Int("files.stubs", len(res.Stubs)),
		attribute.Int("files.fallbacks", len(res.Fallbacks)),
	)

	_, closeSpan := g.tracer.Start(ctx, "sink.close")
	err = sink.Close()
	closeSpan.End()
	if err != nil {
		return nil, fmt.Errorf("finishing output: %w", err)
	}
	t.report(ProgressDone)

	output.Debug("generation finished",
		"root", res.Root,
		"written", len(res.Written),
		"excluded", len(res.Excluded),
		"stubs", len(res.Stubs),
		"fallbacks", len(res.Fallbacks),
	)
	return res, nil
}

func (g *Generator) load(ctx context.Context) (*bundle.Bundle, error) {
	ctx, span := g.tracer.Start(ctx, "bundle.load")
	defer span.End()

	b, err := g.source.Load(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return b, nil
}
