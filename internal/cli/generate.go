package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/company/fastapi-configurator/internal/archive"
	"github.com/company/fastapi-configurator/internal/config"
	"github.com/company/fastapi-configurator/internal/exitcodes"
	"github.com/company/fastapi-configurator/internal/filemanager"
	"github.com/company/fastapi-configurator/internal/generator"
	"github.com/company/fastapi-configurator/internal/output"
	"github.com/company/fastapi-configurator/internal/project"
	"github.com/company/fastapi-configurator/internal/ui"
)

// outputOptions are shared by new and generate.
type outputOptions struct {
	outDir  string
	extract bool
	force   bool
}

func (o *outputOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.outDir, "out", "o", "", "output directory (default from settings, usually the current directory)")
	cmd.Flags().BoolVar(&o.extract, "extract", false, "write the project as a directory instead of a ZIP archive")
	cmd.Flags().BoolVarP(&o.force, "force", "f", false, "replace an existing archive or project directory")
}

// configSource selects the starting configuration.
type configSource struct {
	preset  string
	answers string
	sets    []string
}

func (s *configSource) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.preset, "preset", "p", "", "start from a preset ("+strings.Join(project.PresetNames(), ", ")+")")
	cmd.Flags().StringVarP(&s.answers, "answers", "a", "", "load answers from a YAML file")
	cmd.Flags().StringArrayVar(&s.sets, "set", nil, "override one field, e.g. --set database=sqlite (repeatable)")
}

// session builds a resolved session from the preset or answers file and
// applies every --set override.
func (s *configSource) session() (*project.Session, error) {
	if s.preset != "" && s.answers != "" {
		return nil, &ExitError{Code: exitcodes.UsageError, Message: "--preset and --answers are mutually exclusive (put the preset in the answers file)"}
	}

	var sess *project.Session
	if s.answers != "" {
		a, err := config.LoadAnswers(s.answers)
		if err != nil {
			return nil, &ExitError{Code: exitcodes.ConfigError, Message: err.Error()}
		}
		sess = project.NewSessionFrom(a.Project)
	} else {
		var err error
		sess, err = project.NewSession(s.preset)
		if err != nil {
			return nil, classify(err)
		}
	}

	for _, kv := range s.sets {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return nil, &ExitError{Code: exitcodes.UsageError, Message: fmt.Sprintf("invalid --set %q (want key=value)", kv)}
		}
		if err := sess.Set(strings.TrimSpace(key), value); err != nil {
			return nil, classify(err)
		}
	}
	return sess, nil
}

func (a *App) newGenerateCmd() *cobra.Command {
	var (
		src  configSource
		opts outputOptions
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a project without prompts",
		Long: "Generate a project from the defaults, a preset or an answers file.\n" +
			"Individual fields can be overridden with --set key=value.",
		Example: "  fastapi-configurator generate --preset production --set project_name=shop_api\n" +
			"  fastapi-configurator generate --answers fastapi-configurator.yml --extract --out ./projects",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := src.session()
			if err != nil {
				return err
			}
			for _, fix := range sess.AutoFixed() {
				output.Debug("auto-resolved", "rule", fix)
			}
			cfg := sess.Snapshot()
			if err := cfg.Validate(); err != nil {
				a.reportValidation(err)
				return &ExitError{Code: exitcodes.ValidationError, Message: "configuration is invalid"}
			}
			return a.generate(cmd.Context(), cfg, opts)
		},
	}
	src.register(cmd)
	opts.register(cmd)
	return cmd
}

// generate runs the pipeline for an already validated configuration and
// writes either <slug>.zip or the <slug>/ directory.
func (a *App) generate(ctx context.Context, cfg project.Config, opts outputOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	outDir := opts.outDir
	if outDir == "" {
		outDir = a.settings.OutputDir
	}
	slug := project.Slug(cfg.ProjectName)

	src, err := a.openSource()
	if err != nil {
		return err
	}
	gen := generator.New(src)

	log := output.Stage("generate")
	progress := func(pct int) {
		log.Debug("progress", "percent", pct)
	}

	var (
		res    *generator.Result
		target string
		digest string
	)

	if opts.extract {
		tree, err := filemanager.NewTreeWriter(outDir, slug, opts.force)
		if err != nil {
			return &ExitError{Code: exitcodes.UsageError, Message: err.Error()}
		}
		target = tree.Path()
		err = ui.WithSpinner(ctx, "Generating "+slug+"...", func(ctx context.Context) error {
			var genErr error
			res, genErr = gen.Generate(ctx, cfg, tree, progress)
			return genErr
		})
		if err != nil {
			tree.Abort()
			return classify(err)
		}
		if digest, err = filemanager.HashTree(target); err != nil {
			return classify(err)
		}
	} else {
		target = filepath.Join(outDir, slug+".zip")
		if fileExists(target) && !opts.force {
			return &ExitError{Code: exitcodes.UsageError, Message: (&filemanager.ExistsError{Path: target}).Error()}
		}
		var buf bytes.Buffer
		err := ui.WithSpinner(ctx, "Generating "+slug+".zip...", func(ctx context.Context) error {
			var genErr error
			res, genErr = gen.Generate(ctx, cfg, archive.NewWriter(&buf, slug), progress)
			return genErr
		})
		if err != nil {
			return classify(err)
		}
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return classify(fmt.Errorf("creating %s: %w", outDir, err))
		}
		if err := filemanager.WriteFileAtomic(target, buf.Bytes(), 0644); err != nil {
			return classify(fmt.Errorf("writing archive: %w", err))
		}
		digest = filemanager.HashBytes(buf.Bytes())
		output.Debug("archive written", "path", target, "size", buf.Len())
	}

	a.report(res, target, digest)
	return nil
}

func (a *App) report(res *generator.Result, target, digest string) {
	for _, fb := range res.Fallbacks {
		a.output.Warning("%s copied unrendered: %v", fb.Path, fb.Err)
	}
	a.output.Success("Created %s (%d files, %s)", a.output.Noun(target), len(res.Written), ui.Size(res.Bytes))
	a.output.Println("  %s", a.output.Dim(digest))
	if len(res.Rules) > 0 {
		output.Debug("exclusion rules applied", "rules", strings.Join(res.Rules, ","), "excluded", len(res.Excluded), "stubs", len(res.Stubs))
	}
}
