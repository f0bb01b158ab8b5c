package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/trip/pkg/runner/demo"
)

func addDemo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Seed the store with the default catalog and a sample trip",
		Example: `
trip demo
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, _, err := loadService(false)
			if err != nil {
				return err
			}
			d := demo.Demo{
				Service: svc,
				Out:     cmd.OutOrStdout(),
			}
			return d.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
