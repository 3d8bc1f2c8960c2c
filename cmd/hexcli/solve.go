package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/pprof"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"crosswarped.com/hexword"
	"crosswarped.com/hexword/internal/puzzle"
)

type solveOptions struct {
	puzzleFile string
	builtin    string
	workers    int
	timeout    time.Duration
	crossCheck bool
	asJSON     bool
	cpuProfile string
}

// solveOutput is the --json form of a solve.
type solveOutput struct {
	Name    string               `json:"name"`
	Outcome string               `json:"outcome"`
	Lines   []hexword.LineResult `json:"lines"`
	Grid    []string             `json:"grid"`
}

func newSolveCmd(logger func(io.Writer) *slog.Logger) *cobra.Command {
	var opts solveOptions

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve a puzzle file or a built-in puzzle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd.Context(), cmd.OutOrStdout(), logger(cmd.ErrOrStderr()), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.puzzleFile, "puzzle", "p", "", "YAML or JSON puzzle file")
	flags.StringVarP(&opts.builtin, "builtin", "b", "", "Name of a built-in puzzle (see 'hexcli builtins')")
	flags.IntVarP(&opts.workers, "workers", "w", 0, "Cells propagated at once (0 means GOMAXPROCS)")
	flags.DurationVar(&opts.timeout, "timeout", time.Minute, "Give up after this long")
	flags.BoolVar(&opts.crossCheck, "cross-check", false, "Remove candidates the crossing lines disagree with")
	flags.BoolVar(&opts.asJSON, "json", false, "Print the result as JSON")
	flags.StringVar(&opts.cpuProfile, "cpuprofile", "", "Write a CPU profile to this file")
	cmd.MarkFlagsMutuallyExclusive("puzzle", "builtin")
	cmd.MarkFlagsOneRequired("puzzle", "builtin")

	return cmd
}

func loadPuzzle(opts solveOptions) (*puzzle.File, error) {
	if opts.builtin != "" {
		return puzzle.Builtin(opts.builtin)
	}
	return puzzle.Load(opts.puzzleFile)
}

func runSolve(ctx context.Context, out io.Writer, logger *slog.Logger, opts solveOptions) error {
	f, err := loadPuzzle(opts)
	if err != nil {
		return err
	}
	cw, err := f.Build()
	if err != nil {
		return fmt.Errorf("puzzle %s: %w", f.Name, err)
	}

	if opts.cpuProfile != "" {
		pf, err := os.Create(opts.cpuProfile)
		if err != nil {
			return fmt.Errorf("create profile: %w", err)
		}
		defer pf.Close()
		if err := pprof.StartCPUProfile(pf); err != nil {
			return fmt.Errorf("start profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	solver := hexword.NewSolver(hexword.WithWorkers(opts.workers), hexword.WithLogger(logger.With(slog.String("puzzle", f.Name))))
	result, err := solver.Solve(ctx, cw)
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("puzzle %s: no result within %v", f.Name, opts.timeout)
	}
	if err != nil {
		return fmt.Errorf("puzzle %s: %w", f.Name, err)
	}
	if opts.crossCheck {
		result = result.CrossCheck()
	}

	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(solveOutput{
			Name:    f.Name,
			Outcome: result.Outcome(),
			Lines:   slices.Collect(result.Lines()),
			Grid:    strings.Split(result.Repr(), "\n"),
		})
	}
	return printResult(out, f.Name, result)
}

func printResult(out io.Writer, name string, result *hexword.Result) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "LINE\tCONSTRAINT\tCANDIDATES\tREJECTED\n")
	for lr := range result.Lines() {
		fmt.Fprintf(tw, "%v\t%s\t%s\t%s\n", lr.Line, lr.Constraint, listOrDash(lr.Candidates), listOrDash(lr.Rejected))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, result.Repr())
	fmt.Fprintln(out)
	_, err := fmt.Fprintf(out, "%s: %s\n", name, result.Outcome())
	return err
}

func listOrDash(s []string) string {
	if len(s) == 0 {
		return "-"
	}
	return strings.Join(s, " ")
}
