package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/trip/pkg/commands/options"
	"tableflip.dev/trip/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	eo := &options.EventOptions{}
	io := &options.IDOptions{}
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:   "add [destination]",
		Short: "Add a trip event",
		Example: `
trip add --type flight --to Amsterdam --on "2026-3-18 08:10" --for 2h --price 160 --offer flight-luggage
trip add Geneva -t train --on "3/19 11:15" --for 7h25m
trip add -i
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) > 0 {
				if eo.Destination != "" {
					return errors.New("destination given twice, use either the argument or --to")
				}
				eo.Destination = strings.Join(args, " ")
			}
			if i.Interactive {
				return nil
			}
			if eo.Destination == "" {
				return errors.New("requires a destination")
			}
			if eo.OnString == "" {
				return errors.New("requires --on")
			}
			return nil
		},
		ValidArgsFunction: func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return destinationCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := oo.Format()
			if err != nil {
				return oo.HandleError(err)
			}
			svc, _, err := loadService(false)
			if err != nil {
				return oo.HandleError(err)
			}
			req, span, err := eo.Request(svc.Location(), svc.Clock())
			if err != nil {
				return oo.HandleError(err)
			}
			s := add.Add{
				Service:     svc,
				Request:     req,
				For:         span,
				Interactive: i.Interactive,
				Format:      format,
				ShowID:      io.ShowID,
				In:          cmd.InOrStdin(),
				Out:         cmd.OutOrStdout(),
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddEventArgs(cmd, eo)
	options.AddShowIDArgs(cmd, io)
	options.InteractiveArgs(cmd, i)
	options.AddOutputArg(cmd, oo)

	_ = cmd.RegisterFlagCompletionFunc("to", func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return destinationCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
	})

	topLevel.AddCommand(cmd)
}
