package main

import (
	"bytes"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RodrigoJC20/PSO-Rastrigin/config"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Particles = 5
	cfg.Dims = 2
	cfg.Iterations = 10
	cfg.Seed = 42
	cfg.LogEvery = 5
	cfg.CSVPath = filepath.Join(t.TempDir(), "progress.csv")
	return cfg
}

func TestRunWritesProgressAndSummary(t *testing.T) {
	cfg := testConfig(t)
	dir := filepath.Dir(cfg.CSVPath)
	cfg.DBPath = filepath.Join(dir, "history.db")
	cfg.PlotPath = filepath.Join(dir, "convergence.png")

	var out bytes.Buffer
	require.NoError(t, run(cfg, &out))

	text := out.String()
	assert.Contains(t, text, "Rastrigin using Particle Swarm Optimization")
	assert.Contains(t, text, "  Number of particles: 5")
	assert.Contains(t, text, "  Lower and Upper bounds: [-1, 1]")
	assert.Contains(t, text, "Iteration: 0, gbest: ")
	assert.Contains(t, text, "Iteration: 5, gbest: ")
	assert.Contains(t, text, "Best solution found at: fitness = ")
	assert.Contains(t, text, "x1: ")
	assert.Contains(t, text, "x2: ")
	assert.NotContains(t, text, "x3: ")

	data, err := os.ReadFile(cfg.CSVPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, cfg.Iterations)
	assert.True(t, strings.HasPrefix(lines[0], "0,"))

	db, err := sql.Open("sqlite3", cfg.DBPath)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM swarmbest").Scan(&n))
	assert.Equal(t, cfg.Iterations, n)
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM swarmparticles").Scan(&n))
	assert.Equal(t, cfg.Iterations*cfg.Particles, n)

	info, err := os.Stat(cfg.PlotPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func bestLine(s string) string {
	for _, ln := range strings.Split(s, "\n") {
		if strings.HasPrefix(ln, "Best solution found at:") {
			return ln
		}
	}
	return ""
}

func TestRunSeedReproducible(t *testing.T) {
	cfg := testConfig(t)

	var a bytes.Buffer
	require.NoError(t, run(cfg, &a))

	cfg.CSVPath = filepath.Join(t.TempDir(), "second.csv")
	var b bytes.Buffer
	require.NoError(t, run(cfg, &b))

	require.NotEmpty(t, bestLine(a.String()))
	assert.Equal(t, bestLine(a.String()), bestLine(b.String()))
}

func TestRootCmdFlagOverrides(t *testing.T) {
	cfg := config.Default()
	csv := filepath.Join(t.TempDir(), "cli.csv")

	cmd := newRootCmd(&cfg)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{
		"--particles", "4",
		"--dimensions", "2",
		"--iterations", "3",
		"--seed", "1",
		"--csv", csv,
	})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, 4, cfg.Particles)
	assert.Contains(t, out.String(), "  Number of particles: 4")

	data, err := os.ReadFile(csv)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 3)
}

func TestRootCmdRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	csv := filepath.Join(t.TempDir(), "cli.csv")

	cmd := newRootCmd(&cfg)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--particles", "0", "--csv", csv})
	require.Error(t, cmd.Execute())

	_, err := os.Stat(csv)
	assert.True(t, os.IsNotExist(err), "an invalid run must not open the progress log")
}

func TestSuiteCmd(t *testing.T) {
	dir := t.TempDir()
	apath := filepath.Join(dir, "a.csv")
	bpath := filepath.Join(dir, "b.csv")
	suite := fmt.Sprintf(`runs:
  - name: a
    dimensions: 2
    particles: 4
    iterations: 2
    seed: 5
    csv: %v
  - name: b
    dimensions: 2
    particles: 4
    iterations: 3
    seed: 6
    csv: %v
`, apath, bpath)
	spath := filepath.Join(dir, "suite.yaml")
	require.NoError(t, os.WriteFile(spath, []byte(suite), 0644))

	cfg := config.Default()
	cmd := newRootCmd(&cfg)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"suite", spath})
	require.NoError(t, cmd.Execute())

	adata, err := os.ReadFile(apath)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(adata)), "\n"), 2)

	bdata, err := os.ReadFile(bpath)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(bdata)), "\n"), 3)
}
