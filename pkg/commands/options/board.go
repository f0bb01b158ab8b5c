package options

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/trip/pkg/model"
	"tableflip.dev/trip/pkg/viewmodel"
)

// BoardOptions selects which events are shown and in what order.
type BoardOptions struct {
	FilterString string
	SortString   string
}

func AddBoardArgs(cmd *cobra.Command, o *BoardOptions) {
	AddFilterArg(cmd, o)
	cmd.Flags().StringVarP(&o.SortString, "sort", "s", string(viewmodel.SortEvent),
		Wrap80("Sort the board by "+join(viewmodel.SortTypes())+". Only event groups by day."))
	_ = cmd.RegisterFlagCompletionFunc("sort", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return names(viewmodel.SortTypes()), cobra.ShellCompDirectiveNoFileComp
	})
}

func AddFilterArg(cmd *cobra.Command, o *BoardOptions) {
	cmd.Flags().StringVarP(&o.FilterString, "filter", "f", string(model.FilterEverything),
		Wrap80("Filter events: "+join(model.FilterTypes())+"."))
	_ = cmd.RegisterFlagCompletionFunc("filter", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return names(model.FilterTypes()), cobra.ShellCompDirectiveNoFileComp
	})
}

func (o *BoardOptions) Filter() (model.FilterType, error) {
	return model.ParseFilterType(o.FilterString)
}

func (o *BoardOptions) Sort() (viewmodel.SortType, error) {
	return viewmodel.ParseSortType(o.SortString)
}

func names[T ~string](values []T) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, string(v))
	}
	return out
}

func join[T ~string](values []T) string {
	return strings.Join(names(values), ", ")
}
