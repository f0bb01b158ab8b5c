package commands

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/trip/pkg/commands/options"
	"tableflip.dev/trip/pkg/runner/export"
)

func addExport(topLevel *cobra.Command) {
	bo := &options.BoardOptions{}
	ics := false
	file := ""

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the trip as an iCalendar file",
		Example: `
trip export --ics > trip.ics
trip export --ics --filter future -o trip.ics
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			cmd.SilenceUsage = true
			if !ics {
				return errors.New("choose an export format, only --ics is supported")
			}
			filter, err := bo.Filter()
			if err != nil {
				return err
			}
			svc, _, err := loadService(false)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if file != "" {
				f, ferr := os.Create(file)
				if ferr != nil {
					return ferr
				}
				defer func() {
					if cerr := f.Close(); err == nil {
						err = cerr
					}
				}()
				out = f
			}

			e := export.Export{
				Service: svc,
				Filter:  filter,
				Out:     out,
			}
			return e.Do(cmd.Context())
		},
	}

	options.AddFilterArg(cmd, bo)
	cmd.Flags().BoolVar(&ics, "ics", false, "Write iCalendar (RFC 5545).")
	cmd.Flags().StringVarP(&file, "output", "o", "", "Write to a file instead of stdout.")

	topLevel.AddCommand(cmd)
}
