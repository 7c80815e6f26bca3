// Package report implements the progress recorders a solver run reports
// through: an appending CSV log, periodic console output, a convergence
// plot, and fan-out over combinations of them.  Every recording failure
// wraps IOErr.
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	pso "github.com/RodrigoJC20/PSO-Rastrigin"
)

// IOErr is wrapped by every reporting failure.  Reporting failures are fatal
// to a run: the driver stops at the sweep that failed, with the in-memory
// swarm state left intact.
var IOErr = errors.New("progress reporting i/o failure")

// CSV appends one unlabeled "iteration,fitness" record per sweep to the file
// at path.  The file is created if absent and appended to otherwise, so
// repeated runs accumulate rows in the same log; no header row is ever
// written.
type CSV struct {
	f *os.File
	w *csv.Writer
}

func NewCSV(path string) (*CSV, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening progress log: %w: %w", IOErr, err)
	}
	return &CSV{f: f, w: csv.NewWriter(f)}, nil
}

// Record writes and flushes one record so that a failed write surfaces at
// the sweep that caused it.
func (c *CSV) Record(iter int, best pso.Point) error {
	rec := []string{
		strconv.Itoa(iter),
		strconv.FormatFloat(best.Val, 'g', -1, 64),
	}
	if err := c.w.Write(rec); err != nil {
		return fmt.Errorf("writing progress log: %w: %w", IOErr, err)
	}
	c.w.Flush()
	if err := c.w.Error(); err != nil {
		return fmt.Errorf("writing progress log: %w: %w", IOErr, err)
	}
	return nil
}

func (c *CSV) Close() error {
	if err := c.f.Close(); err != nil {
		return fmt.Errorf("closing progress log: %w: %w", IOErr, err)
	}
	return nil
}

// Console prints "Iteration: i, gbest: v" for every period-th sweep,
// starting with sweep zero.
type Console struct {
	W      io.Writer
	Period int
}

func NewConsole(w io.Writer, period int) *Console {
	if w == nil {
		w = os.Stdout
	}
	if period <= 0 {
		period = 1
	}
	return &Console{W: w, Period: period}
}

func (c *Console) Record(iter int, best pso.Point) error {
	if iter%c.Period != 0 {
		return nil
	}
	if _, err := fmt.Fprintf(c.W, "Iteration: %v, gbest: %v\n", iter, best.Val); err != nil {
		return fmt.Errorf("writing console progress: %w: %w", IOErr, err)
	}
	return nil
}

// Multi fans each record out to every recorder in order, stopping at the
// first failure.
type Multi []pso.Recorder

func (m Multi) Record(iter int, best pso.Point) error {
	for _, r := range m {
		if err := r.Record(iter, best); err != nil {
			return err
		}
	}
	return nil
}
