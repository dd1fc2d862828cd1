// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/walteh/whamdup/cmd/whamdup/commands"
	"github.com/walteh/whamdup/cmd/whamdup/opts"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}

// newRootCmd wires the command tree. Shared options are filled in before any
// subcommand runs, once flags are parsed.
func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	rootOpts := &opts.RootOpts{}

	rootCmd := &cobra.Command{
		Use:   "whamdup",
		Short: "Duplicate WHAM missile blueprints with new missile numbers",
		Long: `whamdup makes numbered copies of a Space Engineers WHAM missile blueprint.
Each copy gets the new number in its subtype, display name, block group,
block names and the WHAM custom data, so copies never talk to each other's blocks.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd.Context(), flags.debug)
			cmd.SetContext(ctx)
			return initRootOpts(ctx, cmd, flags, rootOpts)
		},
	}

	addRootFlags(rootCmd, flags)

	rootCmd.AddCommand(
		commands.NewDuplicateCmd(rootOpts),
		commands.NewInspectCmd(rootOpts),
		commands.NewListCmd(rootOpts),
		newVersionCmd(),
	)

	return rootCmd
}
