package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/trip/pkg/runner/remove"
)

func addDelete(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "delete <id>...",
		Aliases: []string{"rm"},
		Short:   "Delete trip events",
		Example: `
trip delete 6b1d3c1e-0f5e-4a8e-9a57-0c7c0f0b8b1a
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 1 {
				return errors.New("requires an event id")
			}
			return nil
		},
		ValidArgsFunction: func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return eventCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := loadService(false)
			if err != nil {
				return oo.HandleError(err)
			}
			s := remove.Remove{
				IDs:     args,
				Service: svc,
				Out:     cmd.OutOrStdout(),
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
