package sat

import (
	"fmt"
	"io"
	"os"
	"time"
)

// StatsSink receives the solver's progress output. The default sink writes
// the same "c "-prefixed DIMACS-comment lines the teacher solver printed
// directly to stdout (printSearchHeader/printSearchStats); tests substitute
// an io.Writer over a bytes.Buffer instead of asserting on stdout.
type StatsSink struct {
	w io.Writer
}

// NewStatsSink returns a sink writing to w.
func NewStatsSink(w io.Writer) *StatsSink {
	return &StatsSink{w: w}
}

// DefaultStatsSink writes to os.Stdout.
func DefaultStatsSink() *StatsSink {
	return NewStatsSink(os.Stdout)
}

func (s *StatsSink) header() {
	fmt.Fprintf(s.w, "c %10s %10s %10s %10s %6s\n", "conflicts", "restarts", "learnts", "reduced", "mode")
}

func (s *StatsSink) row(conflicts, restarts, learnts, reduced int, mode string) {
	fmt.Fprintf(s.w, "c %10d %10d %10d %10d %6s\n", conflicts, restarts, learnts, reduced, mode)
}

func (s *StatsSink) separator() {
	fmt.Fprintln(s.w, "c "+string(make([]byte, 0)))
}

func (s *StatsSink) result(status Status, elapsed time.Duration) {
	fmt.Fprintf(s.w, "c solve took %s\n", elapsed)
	switch status {
	case StatusSAT:
		fmt.Fprintln(s.w, "s SATISFIABLE")
	case StatusUNSAT:
		fmt.Fprintln(s.w, "s UNSATISFIABLE")
	default:
		fmt.Fprintln(s.w, "s UNKNOWN")
	}
}
