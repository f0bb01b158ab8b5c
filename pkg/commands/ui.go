package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/trip/pkg/commands/options"
	"tableflip.dev/trip/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	do := &options.DemoOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the trip board",
		Example: `
trip ui
trip ui --demo
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, cfg, err := loadService(do.Demo)
			if err != nil {
				return err
			}
			i := ui.UI{
				Service:  svc,
				LogFile:  cfg.LogFile,
				LogLevel: cfg.LogLevel,
			}
			return i.Do(cmd.Context())
		},
	}

	options.AddDemoArg(cmd, do)
	topLevel.AddCommand(cmd)
}
