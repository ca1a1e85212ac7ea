package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/axondata/metsysd"
)

func newRenderCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "render [flags] [command]",
		Short: "Print the generated service unit",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.load(args)
			if err != nil {
				return err
			}
			def, err := cfg.Definition()
			if err != nil {
				return err
			}
			_, err = def.WriteTo(cmd.OutOrStdout())
			return err
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the metsysd version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := metsysd.GetVersion()
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "metsysd %s (%s)\n", info.Version, info.UnitFormat)
			return err
		},
	}
}
