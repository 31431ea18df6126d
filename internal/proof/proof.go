// Package proof writes DRAT proof traces for UNSAT runs and hands them to an
// external drat-trim binary for verification, the same boundary
// adenizgelir0-satfarm/internal/sat/drat.go uses: this module never
// re-implements proof checking, it only produces a trace and shells out to
// check it.
package proof

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Writer accumulates a DRAT trace in plain text format:
// one line per learned clause, and a "d "-prefixed line per deleted clause.
type Writer struct {
	w   *bufio.Writer
	err error
}

// NewWriter wraps w. Learn/Delete are meant to be passed directly to
// sat.Solver.SetProofHooks.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

func (p *Writer) writeLits(prefix string, lits []int) {
	if p.err != nil {
		return
	}
	if prefix != "" {
		if _, err := p.w.WriteString(prefix); err != nil {
			p.err = err
			return
		}
	}
	sb := strings.Builder{}
	for _, l := range lits {
		sb.WriteString(strconv.Itoa(l))
		sb.WriteByte(' ')
	}
	sb.WriteString("0\n")
	if _, err := p.w.WriteString(sb.String()); err != nil {
		p.err = err
	}
}

// Learn records a learned clause addition line.
func (p *Writer) Learn(lits []int) { p.writeLits("", lits) }

// Delete records a clause deletion line.
func (p *Writer) Delete(lits []int) { p.writeLits("d ", lits) }

// Close flushes the buffered trace and returns the first write error
// encountered, if any.
func (p *Writer) Close() error {
	if err := p.w.Flush(); err != nil && p.err == nil {
		p.err = err
	}
	return p.err
}

// Hooks returns the learn/delete function pair for sat.Solver.SetProofHooks.
func (p *Writer) Hooks() (learn, del func([]int)) {
	return p.Learn, p.Delete
}

// dratTrimPath resolves the drat-trim binary, honoring DRAT_TRIM_PATH like
// the reference verifier does.
func dratTrimPath() string {
	if path := os.Getenv("DRAT_TRIM_PATH"); path != "" {
		return path
	}
	return "drat-trim"
}

// Verify runs `drat-trim <cnfPath> <dratPath>` and returns an error,
// including its combined output, if the proof is rejected.
func Verify(cnfPath, dratPath string) error {
	cmd := exec.Command(dratTrimPath(), cnfPath, dratPath)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("proof: drat-trim rejected proof: %w; output: %s", err, string(out))
	}
	return nil
}
