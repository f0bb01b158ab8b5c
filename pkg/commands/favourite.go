package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/trip/pkg/runner/favourite"
)

func addFavourite(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "favourite <id>",
		Aliases: []string{"fav", "star"},
		Short:   "Toggle the favourite flag of an event",
		Example: `
trip favourite 6b1d3c1e-0f5e-4a8e-9a57-0c7c0f0b8b1a
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) != 1 {
				return errors.New("requires exactly one event id")
			}
			return nil
		},
		ValidArgsFunction: func(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return eventCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := loadService(false)
			if err != nil {
				return oo.HandleError(err)
			}
			s := favourite.Favourite{
				ID:      args[0],
				Service: svc,
				Out:     cmd.OutOrStdout(),
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
