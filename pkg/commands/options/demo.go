package options

import (
	"github.com/spf13/cobra"
)

// DemoOptions
type DemoOptions struct {
	Demo bool
}

func AddDemoArg(cmd *cobra.Command, o *DemoOptions) {
	cmd.Flags().BoolVar(&o.Demo, "demo", false,
		Wrap80("Use an in-memory sample trip instead of the configured store. Nothing is saved."))
}
