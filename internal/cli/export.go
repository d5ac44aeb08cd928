package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/company/fastapi-configurator/internal/command"
	"github.com/company/fastapi-configurator/internal/cookiecutter"
	"github.com/company/fastapi-configurator/internal/exitcodes"
	"github.com/company/fastapi-configurator/internal/filemanager"
)

func (a *App) newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a configuration for other tools",
	}
	cmd.AddCommand(a.newExportCommandCmd(), a.newExportJSONCmd())
	return cmd
}

func (a *App) newExportCommandCmd() *cobra.Command {
	var (
		src     configSource
		oneLine bool
		copyCmd bool
	)
	cmd := &cobra.Command{
		Use:   "command",
		Short: "Print the equivalent fastapi-fullstack CLI command",
		Long: "Print the fastapi-fullstack invocation that produces the same project.\n" +
			"Only flags that differ from that CLI's own defaults are listed.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := src.session()
			if err != nil {
				return err
			}
			cfg := sess.Snapshot()

			text := command.MultiLine(cfg)
			if oneLine {
				text = command.OneLine(cfg)
			}
			fmt.Fprintln(a.output.Stdout(), text)

			if copyCmd {
				method, err := a.clipboard.Copy(command.OneLine(cfg))
				if err != nil {
					a.output.Warning("Could not copy the command: %v", err)
					return nil
				}
				a.output.Success("Copied to clipboard via %s", method)
			}
			return nil
		},
	}
	src.register(cmd)
	cmd.Flags().BoolVar(&oneLine, "one-line", false, "print the command on a single line")
	cmd.Flags().BoolVar(&copyCmd, "copy", false, "copy the one-line command to the clipboard")
	return cmd
}

func (a *App) newExportJSONCmd() *cobra.Command {
	var (
		src   configSource
		out   string
		force bool
	)
	cmd := &cobra.Command{
		Use:   "json",
		Short: "Write the cookiecutter.json context",
		Long: "Write the template context as JSON: every option plus the derived use_* flags,\n" +
			"in the format the upstream generator reads. Use --out - for stdout.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := src.session()
			if err != nil {
				return err
			}
			data, err := cookiecutter.Export(sess.Snapshot())
			if err != nil {
				return classify(err)
			}

			if out == "-" {
				_, err := a.output.Stdout().Write(data)
				return err
			}
			if out == "" {
				out = filepath.Join(a.settings.OutputDir, cookiecutter.FileName)
			}
			if fileExists(out) && !force {
				return &ExitError{Code: exitcodes.UsageError, Message: (&filemanager.ExistsError{Path: out}).Error()}
			}
			if dir := filepath.Dir(out); dir != "." {
				if err := os.MkdirAll(dir, 0755); err != nil {
					return classify(err)
				}
			}
			if err := filemanager.WriteFileAtomic(out, data, 0644); err != nil {
				return classify(err)
			}
			a.output.Success("Wrote %s", a.output.Noun(out))
			return nil
		},
	}
	src.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file, or - for stdout (default cookiecutter.json in the output directory)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}
