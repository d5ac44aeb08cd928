package cli

import (
	"github.com/spf13/cobra"

	"github.com/company/fastapi-configurator/internal/config"
	"github.com/company/fastapi-configurator/internal/exitcodes"
	"github.com/company/fastapi-configurator/internal/filemanager"
	"github.com/company/fastapi-configurator/internal/ui"
)

func (a *App) newAnswersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "answers",
		Short: "Manage answers files",
	}
	cmd.AddCommand(a.newAnswersInitCmd(), a.newAnswersShowCmd())
	return cmd
}

func (a *App) newAnswersInitCmd() *cobra.Command {
	var (
		src   configSource
		force bool
	)
	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Write an answers file",
		Long: "Write the configuration to a YAML answers file for 'generate --answers'.\n" +
			"The derived context below the separator comment is regenerated on every save.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.AnswersFile
			if len(args) == 1 {
				path = args[0]
			}
			if src.answers != "" {
				return &ExitError{Code: exitcodes.UsageError, Message: "answers init does not read an answers file"}
			}
			if config.AnswersExists(path) && !force {
				return &ExitError{Code: exitcodes.UsageError, Message: (&filemanager.ExistsError{Path: path}).Error()}
			}

			sess, err := src.session()
			if err != nil {
				return err
			}
			if err := sess.Snapshot().Validate(); err != nil {
				a.reportValidation(err)
				return &ExitError{Code: exitcodes.ValidationError, Message: "configuration is invalid"}
			}
			if err := config.SaveAnswers(path, config.NewAnswers(src.preset, sess.Snapshot())); err != nil {
				return &ExitError{Code: exitcodes.ConfigError, Message: err.Error()}
			}
			a.output.Success("Wrote %s", a.output.Noun(path))
			return nil
		},
	}
	src.register(cmd)
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

func (a *App) newAnswersShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [file]",
		Short: "Validate an answers file and print its review summary",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.AnswersFile
			if len(args) == 1 {
				path = args[0]
			}
			ans, err := config.LoadAnswers(path)
			if err != nil {
				return &ExitError{Code: exitcodes.ConfigError, Message: err.Error()}
			}
			a.output.Summary(ui.Summarize(ans.Project))
			return nil
		},
	}
}
