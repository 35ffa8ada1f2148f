package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/lippinj/minisat-cubing/cubing"
	"github.com/lippinj/minisat-cubing/solver"
)

func main() {
	var (
		verbose      bool
		noCubify     bool
		kt           float64
		kc           float64
		maxCubify    int
		alwaysSearch bool
	)
	def := cubing.DefaultConfig()
	pflag.BoolVarP(&verbose, "verbose", "v", false, "sets verbose mode on")
	pflag.BoolVar(&noCubify, "no-cubify", false, "run plain interleaved search, without cubification")
	pflag.Float64Var(&kt, "k-t", def.KT, "density multiplier gating cube-search")
	pflag.Float64Var(&kc, "k-c", def.KC, "propagation-budget multiplier for cubification")
	pflag.IntVar(&maxCubify, "max-cubify", def.MaxCubifiableSize, "cube size cap fed into the path planner")
	pflag.BoolVar(&alwaysSearch, "always-search", def.AlwaysSearchCube, "run cube-search every restart, not just once cubification is exhausted")
	pflag.Parse()

	if pflag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Syntax: %s [options] file.cnf\n", os.Args[0])
		pflag.PrintDefaults()
		os.Exit(1)
	}
	path := pflag.Arg(0)

	cfg := def
	cfg.KT = kt
	cfg.KC = kc
	cfg.MaxCubifiableSize = maxCubify
	cfg.AlwaysSearchCube = alwaysSearch

	pb, err := parse(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not parse problem: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("c solving %s\n", path)
	if verbose {
		fmt.Printf("c | Number of clauses   : %9d\n", len(pb.Clauses))
		fmt.Printf("c | Number of variables : %9d\n", pb.NbVars)
	}

	engine := solver.New(pb)
	engine.Verbose = verbose

	if noCubify {
		is := cubing.NewInterleavedSolver(engine, cfg, nil)
		solveWith(is, nil, verbose)
		return
	}
	cs := cubing.NewCubifyingSolver(engine, cfg)
	is := cubing.NewInterleavedSolver(engine, cfg, cs.CubifyingSolverBase)
	solveWith(is, cs.CubifyingSolverBase, verbose)
}

func solveWith(is *cubing.InterleavedSolver, base *cubing.CubifyingSolverBase, verbose bool) {
	status := is.Solve()
	engine := is.Engine
	switch status {
	case solver.Sat:
		engine.OutputModel(false)
	case solver.Unsat:
		engine.OutputModel(true)
	default:
		engine.OutputModel(false)
	}
	if verbose {
		fmt.Printf("c nb conflicts: %d\nc nb restarts: %d\nc nb decisions: %d\n",
			engine.Stats.NbConflicts, engine.Stats.NbRestarts, engine.Stats.NbDecisions)
		fmt.Printf("c nb unit learned: %d\nc nb binary learned: %d\nc nb learned: %d\n",
			engine.Stats.NbUnitLearned, engine.Stats.NbBinaryLearned, engine.Stats.NbLearned)
		if base != nil {
			base.PrintStats(os.Stdout)
		}
	}
}

func parse(path string) (*solver.Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %q: %w", path, err)
	}
	defer f.Close()
	pb, err := solver.ParseCNF(f)
	if err != nil {
		return nil, fmt.Errorf("could not parse DIMACS file %q: %w", path, err)
	}
	return pb, nil
}
