package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/whamdup/cmd/whamdup/opts"
	"github.com/walteh/whamdup/pkg/blueprint"
)

// NewInspectCmd creates the inspect command
func NewInspectCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [blueprint]",
		Short: "Show the missile identity of a blueprint",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			lib, err := openLibrary(ctx, o)
			if err != nil {
				return quitOr(o, err)
			}

			var name string
			if len(args) == 1 {
				name = args[0]
			} else {
				names, err := lib.List(ctx)
				if err != nil {
					return err
				}
				i, err := o.Prompter.Choose(ctx, "Blueprint to inspect", names)
				if err != nil {
					return quitOr(o, err)
				}
				name = names[i]
			}

			bp, err := lib.Load(ctx, name)
			if err != nil {
				return err
			}
			rec, err := blueprint.ExtractIdentity(ctx, bp.Data)
			if err != nil {
				return errors.Errorf("reading identity of %q: %w", name, err)
			}

			table, err := pterm.DefaultTable.WithData(pterm.TableData{
				{"Folder", bp.Name},
				{"Missile number", strconv.Itoa(rec.NumericID())},
				{"Subtype", rec.SubtypeID()},
				{"Display name", rec.DisplayName()},
				{"Block group", rec.GroupName()},
				{"Blocks", strings.Join(rec.ItemNames(), "\n")},
			}).Srender()
			if err != nil {
				return errors.Errorf("rendering identity: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), table)

			if bp.Name != rec.DisplayName() {
				o.Console.Warningf("folder %q does not match the display name %q", bp.Name, rec.DisplayName())
			}
			return nil
		},
	}

	return cmd
}
