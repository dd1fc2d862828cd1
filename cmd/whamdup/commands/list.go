package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/walteh/whamdup/cmd/whamdup/opts"
)

// NewListCmd creates the list command
func NewListCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [pattern]",
		Short: "List the blueprints in the blueprint folder",
		Long: `List prints the blueprint folder names, sorted.
An optional glob pattern such as "Homing Missile *" narrows the list.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			lib, err := openLibrary(ctx, o)
			if err != nil {
				return quitOr(o, err)
			}

			var names []string
			if len(args) == 1 {
				names, err = lib.Match(ctx, args[0])
			} else {
				names, err = lib.List(ctx)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, name := range names {
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}

	return cmd
}
