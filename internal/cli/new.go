package cli

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/company/fastapi-configurator/internal/exitcodes"
	"github.com/company/fastapi-configurator/internal/project"
	"github.com/company/fastapi-configurator/internal/ui"
)

func (a *App) newNewCmd() *cobra.Command {
	var (
		preset     string
		opts       outputOptions
		accessible bool
		yes        bool
	)
	cmd := &cobra.Command{
		Use:   "new [project-name]",
		Short: "Configure a project interactively and generate it",
		Long: "Walk through every option of the project, review the result and generate it.\n" +
			"Options that do not apply to earlier answers are skipped.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.interactive() {
				return &ExitError{
					Code:    exitcodes.UsageError,
					Message: "new needs an interactive terminal; use 'fastapi-configurator generate' in scripts and CI",
				}
			}

			sess, err := project.NewSession(preset)
			if err != nil {
				return classify(err)
			}
			if len(args) == 1 {
				name := project.NormalizeName(args[0])
				if err := sess.Set("project_name", name); err != nil {
					return classify(err)
				}
			}

			start := sess.Snapshot()
			wiz := ui.NewWizard(start)
			wiz.SetAccessible(accessible)
			answers, err := wiz.Run(cmd.Context())
			if err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					return &ExitError{Code: exitcodes.GeneralError, Message: "aborted"}
				}
				return classify(err)
			}

			if verr := sess.Update(func(c *project.Config) { *c = answers }); verr != nil {
				a.reportValidation(verr)
				return &ExitError{Code: exitcodes.ValidationError, Message: "configuration is invalid"}
			}
			if fixed := sess.AutoFixed(); len(fixed) > 0 {
				a.output.Info("Adjusted dependent options: %s", strings.Join(fixed, ", "))
			}

			cfg := sess.Snapshot()
			a.output.Summary(ui.Summarize(cfg))
			if !sess.Changed(start) {
				a.output.Info("No options changed; the same project comes from: %s", replayHint(sess.Preset(), cfg))
			}

			if !yes {
				ok, err := ui.Confirm("Generate this project?")
				if err != nil || !ok {
					return &ExitError{Code: exitcodes.GeneralError, Message: "aborted"}
				}
			}
			return a.generate(cmd.Context(), cfg, opts)
		},
	}
	cmd.Flags().StringVarP(&preset, "preset", "p", "", "seed the wizard with a preset ("+strings.Join(project.PresetNames(), ", ")+")")
	cmd.Flags().BoolVar(&accessible, "accessible", false, "use the screen-reader friendly prompt mode")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the final confirmation")
	opts.register(cmd)
	return cmd
}

// replayHint is the non-interactive command that reproduces an unedited
// wizard session.
func replayHint(preset string, cfg project.Config) string {
	parts := []string{"fastapi-configurator generate"}
	if preset != "" {
		parts = append(parts, "--preset "+preset)
	}
	if base, err := project.WithPreset(preset); err == nil && base.ProjectName != cfg.ProjectName {
		parts = append(parts, "--set project_name="+cfg.ProjectName)
	}
	return strings.Join(parts, " ")
}
