package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/solverkit/cdcl/internal/dimacsio"
	"github.com/solverkit/cdcl/internal/portfolio"
	"github.com/solverkit/cdcl/internal/proof"
	"github.com/solverkit/cdcl/internal/sat"
)

var flagCPUProfile = flag.Bool(
	"cpuprof",
	false,
	"save pprof CPU profile in cpuprof",
)

var flagMemProfile = flag.Bool(
	"memprof",
	false,
	"save pprof memory profile in memprof",
)

var flagMaxConflict = flag.Int64(
	"max_conflicts",
	-1,
	"maximum number of conflicts allowed to solve the problem (-1 or 0 = no maximum)",
)

var flagWorkers = flag.Int(
	"workers",
	1,
	"number of diversified solver workers to run in a portfolio (1 disables portfolio mode)",
)

var flagTimeout = flag.Duration(
	"timeout",
	0,
	"wall-clock timeout for the whole run (0 = no timeout)",
)

var flagDRATOut = flag.String(
	"drat_out",
	"",
	"if set, write a DRAT proof trace to this path on UNSAT (single-worker mode only)",
)

var flagModelOut = flag.String(
	"model_out",
	"",
	"if set, write the satisfying model to this path on SAT",
)

func parseConfig() (*config, error) {
	flag.Parse()

	if flag.NArg() == 0 || flag.Arg(0) == "" {
		return nil, fmt.Errorf("missing instance file")
	}
	return &config{
		instanceFile: flag.Arg(0),
		memProfile:   *flagMemProfile,
		cpuProfile:   *flagCPUProfile,
		maxConflicts: *flagMaxConflict,
		workers:      *flagWorkers,
		timeout:      *flagTimeout,
		dratOut:      *flagDRATOut,
		modelOut:     *flagModelOut,
	}, nil
}

type config struct {
	instanceFile string
	memProfile   bool
	cpuProfile   bool
	maxConflicts int64
	workers      int
	timeout      time.Duration
	dratOut      string
	modelOut     string
}

func solverOptions(cfg *config) sat.Options {
	options := sat.DefaultOptions
	if cfg.maxConflicts >= 0 {
		options.MaxConflicts = cfg.maxConflicts
	}
	options.Timeout = cfg.timeout
	return options
}

func runSingle(cfg *config) (sat.Status, []bool, error) {
	s := sat.NewSolver(solverOptions(cfg))

	var pw *proof.Writer
	if cfg.dratOut != "" {
		f, err := os.Create(cfg.dratOut)
		if err != nil {
			return sat.StatusUnknown, nil, fmt.Errorf("could not create DRAT output: %w", err)
		}
		defer f.Close()
		pw = proof.NewWriter(f)
		defer pw.Close()
		s.SetProofHooks(pw.Hooks())
	}

	header, err := dimacsio.LoadDIMACS(cfg.instanceFile, false, s)
	if err != nil {
		return sat.StatusUnknown, nil, fmt.Errorf("could not parse instance: %w", err)
	}
	fmt.Printf("c variables:  %d\n", header.Variables)
	fmt.Printf("c clauses:    %d\n", header.Clauses)

	status := s.Solve(nil)

	var model []bool
	if status == sat.StatusSAT && len(s.Models) > 0 {
		model = s.Models[len(s.Models)-1]
	}
	return status, model, nil
}

func runPortfolio(cfg *config) (sat.Status, []bool, error) {
	opts := portfolio.Options{
		Workers: cfg.workers,
		Base:    solverOptions(cfg),
		Timeout: cfg.timeout,
	}
	res, err := portfolio.Run(cfg.instanceFile, opts)
	if err != nil {
		return sat.StatusUnknown, nil, err
	}
	if res.Status != sat.StatusUnknown {
		fmt.Printf("c winning worker: %d\n", res.WorkerID)
	}
	return res.Status, res.Model, nil
}

func run(cfg *config) error {
	t := time.Now()

	var status sat.Status
	var model []bool
	var err error
	if cfg.workers > 1 {
		status, model, err = runPortfolio(cfg)
	} else {
		status, model, err = runSingle(cfg)
	}
	if err != nil {
		return err
	}

	elapsed := time.Since(t)
	fmt.Printf("c time (sec): %f\n", elapsed.Seconds())
	fmt.Printf("c status:     %s\n", status.String())

	if status == sat.StatusSAT && cfg.modelOut != "" {
		f, err := os.Create(cfg.modelOut)
		if err != nil {
			return fmt.Errorf("could not create model output: %w", err)
		}
		defer f.Close()
		if err := dimacsio.WriteModel(f, model); err != nil {
			return fmt.Errorf("could not write model: %w", err)
		}
	}

	return nil
}

func main() {
	cfg, err := parseConfig()
	if err != nil {
		log.Fatal(err)
	}

	if cfg.cpuProfile {
		f, err := os.Create("cpuprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}

	if cfg.memProfile {
		f, err := os.Create("memprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.WriteHeapProfile(f)
		f.Close()
		return
	}
}
