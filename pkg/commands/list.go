package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/trip/pkg/commands/options"
	"tableflip.dev/trip/pkg/runner/list"
)

func addList(topLevel *cobra.Command) {
	bo := &options.BoardOptions{}
	io := &options.IDOptions{}
	do := &options.DemoOptions{}
	calendar := false

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List trip events grouped by day",
		Example: `
trip list
trip list --filter future --sort price
trip list --calendar
trip list --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			filter, err := bo.Filter()
			if err != nil {
				return oo.HandleError(err)
			}
			sort, err := bo.Sort()
			if err != nil {
				return oo.HandleError(err)
			}
			format, err := oo.Format()
			if err != nil {
				return oo.HandleError(err)
			}
			svc, _, err := loadService(do.Demo)
			if err != nil {
				return oo.HandleError(err)
			}
			l := list.List{
				Service:  svc,
				Filter:   filter,
				Sort:     sort,
				Format:   format,
				ShowID:   io.ShowID,
				Calendar: calendar,
				Out:      cmd.OutOrStdout(),
			}
			return oo.HandleError(l.Do(cmd.Context()))
		},
	}

	options.AddBoardArgs(cmd, bo)
	options.AddShowIDArgs(cmd, io)
	options.AddDemoArg(cmd, do)
	options.AddOutputArg(cmd, oo)
	cmd.Flags().BoolVar(&calendar, "calendar", false, "Print a month calendar of the trip above the board.")

	topLevel.AddCommand(cmd)
}
