package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/nickng/cfgpath/balance"
	"github.com/nickng/cfgpath/converge"
	"github.com/nickng/cfgpath/graphfile"
	"github.com/nickng/cfgpath/mergeinfer"
	"github.com/nickng/cfgpath/paths"
	"github.com/nickng/cfgpath/ssa"
)

func newPathsCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "paths START",
		Short: "List the maximal simple paths from START to a leaf",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := loadInput(opts)
			if err != nil {
				return err
			}
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			n := 0
			paths.EnumerateFunc(in.graph, ids[0], func(p paths.Path) bool {
				fmt.Fprintln(cmd.OutOrStdout(), p)
				n++
				return opts.maxPaths <= 0 || n < opts.maxPaths
			})
			if opts.strict && n == 0 {
				return errors.Wrapf(converge.ErrNoPaths, "start block %d", ids[0])
			}
			return nil
		},
	}
}

func newConvergeCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "converge START",
		Short: "Find the block where all paths from START end",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := loadInput(opts)
			if err != nil {
				return err
			}
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			r, err := converge.Detector{Strict: opts.strict}.Find(in.graph, ids[0])
			if err != nil {
				return err
			}
			if r.Found {
				fmt.Fprintln(cmd.OutOrStdout(), color.GreenString(r.String()))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), color.YellowString(r.String()))
			for _, p := range r.Paths.Sorted() {
				fmt.Fprintf(cmd.OutOrStdout(), "  %v\n", p)
			}
			return nil
		},
	}
}

func newBalanceCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "balance START MERGE",
		Short: "Reconcile the stack balance of the paths from START into MERGE",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := loadInput(opts)
			if err != nil {
				return err
			}
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			set := converge.PathsTo(paths.Enumerate(in.graph, ids[0]), ids[1])
			r, err := balance.Reconcile(ids[1], set, in.graph)
			if err != nil {
				return err
			}
			for _, pb := range r.PerPath {
				fmt.Fprintf(cmd.OutOrStdout(), "%v %v\n", pb.Path, pb.Balance)
			}
			if r.Single {
				fmt.Fprintln(cmd.OutOrStdout(), color.GreenString(r.String()))
			}
			return r.Err()
		},
	}
}

func newAnalyseCommand(opts *options) *cobra.Command {
	var failAmbiguous bool
	cmd := &cobra.Command{
		Use:     "analyse [START...]",
		Aliases: []string{"analyze"},
		Short:   "Analyse every merge block reachable from the start blocks",
		Long:    "Analyse every merge block reachable from the start blocks. Without START, the blocks shared by several functions are analysed, or else the entry blocks.",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := loadInput(opts)
			if err != nil {
				return err
			}
			starts, err := parseIDs(args)
			if err != nil {
				return err
			}
			a := mergeinfer.New(in.graph,
				mergeinfer.WithStarts(starts...),
				mergeinfer.WithMembership(in.members),
				mergeinfer.WithStrict(opts.strict),
				mergeinfer.WithMaxPaths(opts.maxPaths),
				mergeinfer.WithLogger(opts.logger.Named("mergeinfer")))
			reports, err := a.Analyse()
			if err != nil {
				return err
			}
			if _, err := a.WriteTo(cmd.OutOrStdout()); err != nil {
				return err
			}
			if failAmbiguous {
				for _, r := range reports {
					if err := r.Err(); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&failAmbiguous, "fail", false, "Exit with an error on any unbalanced or invalid merge")
	return cmd
}

func newGraphCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "graph",
		Short: "Write the input graph as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := loadInput(opts)
			if err != nil {
				return err
			}
			return graphfile.FromGraph(in.graph).Encode(cmd.OutOrStdout())
		},
	}
}

func newSSACommand(opts *options) *cobra.Command {
	var (
		pkgPath string
		fnName  string
		dump    bool
	)
	cmd := &cobra.Command{
		Use:   "ssa FILE.go...",
		Short: "Analyse the functions of Go source files in SSA form",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := ssa.BuildFiles(pkgPath, args...)
			if err != nil {
				return err
			}
			if dump {
				_, err := info.WriteTo(cmd.OutOrStdout())
				return err
			}
			fns := info.Funcs()
			if fnName != "" {
				fn, err := info.Func(fnName)
				if err != nil {
					return err
				}
				fns = append(fns[:0], fn)
			}
			for _, fn := range fns {
				g, err := ssa.FromFunc(fn)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), color.New(color.Bold).Sprint(fn.String()))
				a := mergeinfer.New(g,
					mergeinfer.WithStarts(0),
					mergeinfer.WithMaxPaths(opts.maxPaths),
					mergeinfer.WithLogger(opts.logger.Named("ssa")))
				if _, err := a.Analyse(); err != nil {
					return err
				}
				if _, err := a.WriteTo(cmd.OutOrStdout()); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&pkgPath, "pkg", "main", "Package path of the source files")
	cmd.Flags().StringVar(&fnName, "func", "", "Only analyse this function")
	cmd.Flags().BoolVar(&dump, "dump", false, "Write the SSA IR instead of analysing it")
	return cmd
}
