package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/trip/pkg/commands/options"
	"tableflip.dev/trip/pkg/runner/report"
)

func addStats(topLevel *cobra.Command) {
	do := &options.DemoOptions{}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Money, transport and time spent per event type",
		Example: `
trip stats
trip stats --yaml
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			format, err := oo.Format()
			if err != nil {
				return oo.HandleError(err)
			}
			svc, _, err := loadService(do.Demo)
			if err != nil {
				return oo.HandleError(err)
			}
			r := report.Report{
				Service: svc,
				Format:  format,
				Out:     cmd.OutOrStdout(),
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddDemoArg(cmd, do)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
