package cli

import (
	"github.com/spf13/cobra"

	"github.com/company/fastapi-configurator/internal/project"
	"github.com/company/fastapi-configurator/internal/ui"
)

func (a *App) newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets [name]",
		Short: "List presets, or show what one selects",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				cfg, err := project.WithPreset(args[0])
				if err != nil {
					return classify(err)
				}
				a.output.Summary(ui.Summarize(project.Resolve(cfg)))
				return nil
			}

			var rows [][]string
			for _, p := range project.Presets() {
				rows = append(rows, []string{p.Name, p.Label, p.Description})
			}
			a.output.Table([]string{"NAME", "LABEL", "DESCRIPTION"}, rows)
			return nil
		},
	}
}
