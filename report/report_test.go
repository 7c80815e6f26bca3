package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pso "github.com/RodrigoJC20/PSO-Rastrigin"
)

func TestCSVAppendsAcrossRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.csv")

	c, err := NewCSV(path)
	require.NoError(t, err)
	require.NoError(t, c.Record(0, pso.NewPoint([]float64{0}, 28.5)))
	require.NoError(t, c.Record(1, pso.NewPoint([]float64{0}, 12.25)))
	require.NoError(t, c.Close())

	// a second run against the same path must append, not truncate
	c, err = NewCSV(path)
	require.NoError(t, err)
	require.NoError(t, c.Record(0, pso.NewPoint([]float64{0}, 30.125)))
	require.NoError(t, c.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "0,28.5", lines[0])
	assert.Equal(t, "1,12.25", lines[1])
	assert.Equal(t, "0,30.125", lines[2])
}

func TestCSVOpenFailure(t *testing.T) {
	_, err := NewCSV(filepath.Join(t.TempDir(), "missing", "progress.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, IOErr)
}

func TestCSVWriteFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.csv")
	c, err := NewCSV(path)
	require.NoError(t, err)
	require.NoError(t, c.Close())

	err = c.Record(0, pso.NewPoint([]float64{0}, 1))
	require.Error(t, err)
	assert.ErrorIs(t, err, IOErr)
}

func TestConsolePeriod(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, 2)

	for i := 0; i < 5; i++ {
		require.NoError(t, c.Record(i, pso.NewPoint([]float64{0}, float64(10-i))))
	}

	want := "Iteration: 0, gbest: 10\n" +
		"Iteration: 2, gbest: 8\n" +
		"Iteration: 4, gbest: 6\n"
	assert.Equal(t, want, buf.String())
}

func TestConsoleDefaults(t *testing.T) {
	c := NewConsole(nil, 0)
	assert.Equal(t, os.Stdout, c.W)
	assert.Equal(t, 1, c.Period)
}

type countRec struct{ n int }

func (r *countRec) Record(iter int, best pso.Point) error {
	r.n++
	return nil
}

type errRec struct{ err error }

func (r *errRec) Record(iter int, best pso.Point) error { return r.err }

func TestMultiStopsAtFirstFailure(t *testing.T) {
	boom := errors.New("boom")
	first := &countRec{}
	last := &countRec{}
	m := Multi{first, &errRec{err: boom}, last}

	err := m.Record(0, pso.NewPoint([]float64{0}, 1))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, first.n)
	assert.Equal(t, 0, last.n, "recorders after the failing one must not run")

	require.NoError(t, Multi{first, last}.Record(1, pso.NewPoint([]float64{0}, 1)))
	assert.Equal(t, 2, first.n)
	assert.Equal(t, 1, last.n)
}
