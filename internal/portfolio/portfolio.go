// Package portfolio runs several diversified solvers over the same instance
// concurrently and races them, exchanging learned clauses through per-worker
// inboxes. It plays the role painless's Working Strategies and a farm
// scheduler play in the examples, but in-process: one Go process, one
// goroutine per worker, no gRPC and no database, since nothing here needs to
// survive past the calling process.
package portfolio

import (
	"sync"
	"time"

	"github.com/solverkit/cdcl/internal/dimacsio"
	"github.com/solverkit/cdcl/internal/sat"
)

// Options configures a portfolio run.
type Options struct {
	Workers       int           // number of concurrent solvers, at least 1
	Base          sat.Options   // options every worker starts from before diversification
	QueueCapacity int           // per-worker inbox capacity before exports are dropped
	Timeout       time.Duration // 0 means no portfolio-wide timeout
}

// DefaultOptions mirrors sat.DefaultOptions, run with four diversified
// workers and a modest exchange inbox.
var DefaultOptions = Options{
	Workers:       4,
	Base:          sat.DefaultOptions,
	QueueCapacity: 256,
}

// Result is the outcome of the first worker to finish, plus which worker won.
type Result struct {
	Status   sat.Status
	Model    []bool
	WorkerID int
}

// Run loads filename into Workers diversified solvers and returns as soon as
// any of them reaches SAT or UNSAT, terminating the rest.
func Run(filename string, opts Options) (Result, error) {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.QueueCapacity <= 0 {
		opts.QueueCapacity = 256
	}

	h := newHub(opts.Workers, opts.QueueCapacity)
	solvers := make([]*sat.Solver, opts.Workers)

	for id := 0; id < opts.Workers; id++ {
		o := diversify(opts.Base, id)
		s := sat.NewSolver(o)
		if _, err := dimacsio.LoadDIMACS(filename, false, s); err != nil {
			return Result{}, err
		}
		s.SetSharing(id, h.exportClause, h.importUnit, h.importClause)
		solvers[id] = s
	}

	if opts.Timeout > 0 {
		timer := time.AfterFunc(opts.Timeout, func() {
			for _, s := range solvers {
				s.Terminate()
			}
		})
		defer timer.Stop()
	}

	results := make(chan Result, opts.Workers)
	var wg sync.WaitGroup
	wg.Add(opts.Workers)
	for id, s := range solvers {
		go func(id int, s *sat.Solver) {
			defer wg.Done()
			status := s.Solve(nil)
			if status == sat.StatusUnknown {
				return
			}
			var model []bool
			if status == sat.StatusSAT && len(s.Models) > 0 {
				model = s.Models[len(s.Models)-1]
			}
			results <- Result{Status: status, Model: model, WorkerID: id}
		}(id, s)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	best, ok := <-results
	if !ok {
		return Result{Status: sat.StatusUnknown}, nil
	}
	for _, s := range solvers {
		s.Terminate()
	}
	return best, nil
}

// diversify returns base adapted for worker id, the Go analogue of
// painless's Kissat::diversify: alternate the initial branching heuristic by
// id parity, and nudge the decay rates so workers don't all resolve
// conflicts identically.
func diversify(base sat.Options, id int) sat.Options {
	o := base
	if id%2 == 0 {
		o.InitialHeuristic = sat.HeuristicVSIDS
	} else {
		o.InitialHeuristic = sat.HeuristicCHB
	}
	o.EnableBandit = id%4 == 0
	if id > 0 {
		o.VariableDecay = 1 - (1-base.VariableDecay)*(1+float64(id%3)*0.25)
	}
	return o
}
