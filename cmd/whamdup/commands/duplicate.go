package commands

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/whamdup/cmd/whamdup/opts"
	"github.com/walteh/whamdup/pkg/operation"
	"github.com/walteh/whamdup/pkg/prompt"
)

// NewDuplicateCmd creates the duplicate command
func NewDuplicateCmd(o *opts.RootOpts) *cobra.Command {
	var (
		blueprint  string
		firstIndex int
		numCopies  int
		force      bool
		async      bool
		workers    int
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:     "duplicate",
		Aliases: []string{"dup"},
		Short:   "Write renumbered copies of a missile blueprint",
		Long: `Duplicate writes copies of a WHAM missile blueprint into the blueprint folder.
Values not given by flags, environment or config file are asked for:
1. The blueprint folder (the game's default is offered)
2. The blueprint to copy
3. The number of the first copy
4. How many copies to write
Existing copies are only replaced after confirmation or with --force.
Answer q at any question to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg := *o.Config
			flags := cmd.Flags()
			if flags.Changed("blueprint") {
				cfg.Blueprint = blueprint
			}
			if flags.Changed("first-index") {
				cfg.FirstIndex = firstIndex
			}
			if flags.Changed("num-copies") {
				cfg.NumCopies = numCopies
			}
			if flags.Changed("force") {
				cfg.Force = force
			}
			if flags.Changed("async") {
				cfg.Async = async
			}
			if flags.Changed("workers") {
				cfg.Workers = workers
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			o.Console.Header("duplicating WHAM missiles")

			lib, err := openLibrary(ctx, o)
			if err != nil {
				return quitOr(o, err)
			}

			plan, err := operation.ResolvePlan(ctx, o.Prompter, lib, &cfg)
			if err != nil {
				return quitOr(o, err)
			}

			if dryRun {
				return preview(cmd, o, plan)
			}

			res, err := operation.Duplicate(ctx, plan, operation.Options{
				Prompter: o.Prompter,
				Logger:   o.Console,
				Async:    cfg.Async,
				Workers:  cfg.Workers,
			})
			if err != nil {
				return quitOr(o, err)
			}

			o.Console.Successf("wrote %d copies of %q (missile %d)", res.Summary.Total(), plan.Blueprint, res.Identity.NumericID())
			return nil
		},
	}

	cmd.Flags().StringVarP(&blueprint, "blueprint", "b", "", "name of the blueprint folder to copy")
	cmd.Flags().IntVarP(&firstIndex, "first-index", "i", 0, "missile number of the first copy")
	cmd.Flags().IntVarP(&numCopies, "num-copies", "n", 0, "number of copies to write")
	cmd.Flags().BoolVar(&force, "force", false, "replace existing copies without asking")
	cmd.Flags().BoolVar(&async, "async", false, "write copies concurrently")
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent writers when --async is set")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show the changes of the first copy without writing anything")

	return cmd
}

func preview(cmd *cobra.Command, o *opts.RootOpts, plan operation.Plan) error {
	res, err := operation.Preview(cmd.Context(), plan)
	if err != nil {
		return err
	}

	o.Console.Infof("%s would be written as %q with %d changed lines", plan, res.Name, res.Changes)
	if res.Exists {
		o.Console.Warningf("%q already exists and would be replaced", res.Name)
	}

	out := cmd.OutOrStdout()
	for _, line := range strings.Split(strings.TrimRight(res.Diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+ "):
			fmt.Fprintln(out, color.GreenString(line))
		case strings.HasPrefix(line, "- "):
			fmt.Fprintln(out, color.RedString(line))
		default:
			fmt.Fprintln(out, line)
		}
	}
	return nil
}

// quitOr turns a quit answer into a clean exit.
func quitOr(o *opts.RootOpts, err error) error {
	if errors.Is(err, prompt.ErrQuit) {
		o.Console.Info("quit, nothing more was written")
		return nil
	}
	return err
}
