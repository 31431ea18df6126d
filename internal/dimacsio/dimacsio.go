// Package dimacsio loads DIMACS CNF instances into a solver and writes back
// the models it finds, entirely on top of github.com/rhartert/dimacs instead
// of a hand-rolled scanner.
package dimacsio

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rhartert/dimacs"

	"github.com/solverkit/cdcl/internal/sat"
)

// Solver is the subset of *sat.Solver needed to load an instance.
type Solver interface {
	AddVariable() int
	AddClause([]sat.Literal) error
}

func open(filename string, gzipped bool) (io.ReadCloser, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	rc := io.ReadCloser(file)
	if gzipped || strings.HasSuffix(filename, ".gz") {
		rc, err = gzip.NewReader(rc)
		if err != nil {
			return nil, err
		}
	}
	return rc, nil
}

// Header holds the variable and clause counts declared on a DIMACS problem
// line.
type Header struct {
	Variables int
	Clauses   int
}

// LoadDIMACS parses the DIMACS CNF file at filename and loads its formula
// into solver, returning the declared instance size.
func LoadDIMACS(filename string, gzipped bool, solver Solver) (Header, error) {
	r, err := open(filename, gzipped)
	if err != nil {
		return Header{}, fmt.Errorf("dimacsio: open %q: %w", filename, err)
	}
	defer r.Close()

	b := &builder{solver: solver}
	if err := dimacs.ReadBuilder(r, b); err != nil {
		return Header{}, fmt.Errorf("dimacsio: parse %q: %w", filename, err)
	}
	return b.header, nil
}

// builder adapts a Solver to the dimacs.Builder interface.
type builder struct {
	solver Solver
	header Header
}

func (b *builder) Problem(problem string, nVars int, nClauses int) error {
	if problem != "cnf" {
		return fmt.Errorf("dimacsio: unsupported problem type %q", problem)
	}
	b.header = Header{Variables: nVars, Clauses: nClauses}
	for i := 0; i < nVars; i++ {
		b.solver.AddVariable()
	}
	return nil
}

func (b *builder) Clause(tmp []int) error {
	clause := make([]sat.Literal, len(tmp))
	for i, l := range tmp {
		if l < 0 {
			clause[i] = sat.NegativeLiteral(-l - 1)
		} else {
			clause[i] = sat.PositiveLiteral(l - 1)
		}
	}
	return b.solver.AddClause(clause)
}

func (b *builder) Comment(_ string) error {
	return nil
}

// ReadModels returns the models stored in a models file, one boolean slice
// per line, in the same variable order as the DIMACS instance it refers to.
func ReadModels(filename string) ([][]bool, error) {
	r, err := open(filename, false)
	if err != nil {
		return nil, fmt.Errorf("dimacsio: open %q: %w", filename, err)
	}
	defer r.Close()

	b := &modelBuilder{}
	if err := dimacs.ReadBuilder(r, b); err != nil {
		return nil, fmt.Errorf("dimacsio: parse models %q: %w", filename, err)
	}
	return b.models, nil
}

type modelBuilder struct {
	models [][]bool
}

func (b *modelBuilder) Problem(problem string, nVars int, nClauses int) error {
	return fmt.Errorf("dimacsio: models file should not carry a problem line")
}

func (b *modelBuilder) Comment(_ string) error {
	return nil
}

func (b *modelBuilder) Clause(tmp []int) error {
	model := make([]bool, len(tmp))
	for i, l := range tmp {
		model[i] = l > 0
	}
	b.models = append(b.models, model)
	return nil
}

// WriteModel writes model as one DIMACS-style line of signed literals
// terminated by 0, the conventional format for a SAT competition model file.
func WriteModel(w io.Writer, model []bool) error {
	sb := strings.Builder{}
	for i, b := range model {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if b {
			sb.WriteString(strconv.Itoa(i + 1))
		} else {
			sb.WriteString(strconv.Itoa(-(i + 1)))
		}
	}
	sb.WriteString(" 0\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// ReadHeader reads only the "p cnf <vars> <clauses>" line, without loading
// clauses into a solver.
func ReadHeader(filename string) (Header, error) {
	r, err := open(filename, false)
	if err != nil {
		return Header{}, fmt.Errorf("dimacsio: open %q: %w", filename, err)
	}
	defer r.Close()

	b := &headerOnlyBuilder{}
	err = dimacs.ReadBuilder(r, b)
	if err != nil && !b.got {
		return Header{}, fmt.Errorf("dimacsio: parse header %q: %w", filename, err)
	}
	return b.header, nil
}

var errStopAfterHeader = fmt.Errorf("dimacsio: header read complete")

type headerOnlyBuilder struct {
	header Header
	got    bool
}

func (b *headerOnlyBuilder) Problem(problem string, nVars int, nClauses int) error {
	b.header = Header{Variables: nVars, Clauses: nClauses}
	b.got = true
	return errStopAfterHeader
}

func (b *headerOnlyBuilder) Comment(_ string) error { return nil }

func (b *headerOnlyBuilder) Clause(_ []int) error { return nil }
