package commands

import (
	"context"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/trip/pkg/model"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(trip completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(trip completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(cmd.OutOrStdout())
		},
	}

	topLevel.AddCommand(cmd)
}

func eventCompletions(toComplete string) []string {
	svc, _, err := loadService(false)
	if err != nil {
		return nil
	}
	events, err := svc.Events(context.Background(), model.FilterEverything)
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(events))
	for _, e := range events {
		if strings.HasPrefix(e.ID, toComplete) {
			out = append(out, e.ID+"\t"+e.String())
		}
	}
	return out
}

func destinationCompletions(toComplete string) []string {
	svc, _, err := loadService(false)
	if err != nil {
		return nil
	}
	destinations, _, err := svc.Catalogs(context.Background())
	if err != nil {
		return nil
	}
	var out []string
	for _, name := range destinations.Names() {
		if strings.HasPrefix(strings.ToLower(name), strings.ToLower(toComplete)) {
			out = append(out, strconv.Quote(name))
		}
	}
	return out
}
