package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with args, isolated from any config file in
// the working directory or home.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("benchmark:\n  seed: 42\n"), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestParseMetricValues(t *testing.T) {
	got, err := parseMetricValues([]string{"profit_margin=0.09", "revenue_per_employee=175000"})
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"profit_margin": 0.09, "revenue_per_employee": 175000}, got)

	for _, bad := range []string{"profit_margin", "=1", "profit_margin=high"} {
		_, err := parseMetricValues([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestIndustriesCommand(t *testing.T) {
	out, err := run(t, "industries")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 10)
	assert.Equal(t, "retail", lines[0])
}

func TestMetricsCommandUnknownIndustry(t *testing.T) {
	_, err := run(t, "metrics", "spaceflight")
	assert.ErrorContains(t, err, "spaceflight")
}

func TestSeriesCommand(t *testing.T) {
	out, err := run(t, "series", "retail", "profit_margin",
		"--size", "medium", "--region", "west",
		"--start", "2024-01-01", "--end", "2024-06-01", "--frequency", "quarterly")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "metric\tperiod"))
	assert.True(t, strings.HasPrefix(lines[1], "profit_margin\t2024-01-01\t"))
	assert.True(t, strings.HasPrefix(lines[2], "profit_margin\t2024-04-01\t"))
}

func TestSeriesCommandRejectsBadSize(t *testing.T) {
	_, err := run(t, "series", "retail", "--size", "huge")
	assert.ErrorContains(t, err, "huge")
}

func TestCompareCommand(t *testing.T) {
	out, err := run(t, "compare", "retail", "profit_margin=0.09", "bogus=1")
	require.NoError(t, err)
	assert.Contains(t, out, "profit_margin\t0.09\t")
	assert.Contains(t, out, "bogus\tskipped\tvalidation\t")
}

func TestCompareCommandNothingCompared(t *testing.T) {
	_, err := run(t, "compare", "retail", "bogus=1")
	assert.ErrorContains(t, err, "no metric could be compared")
}

func TestConfigCommand(t *testing.T) {
	out, err := run(t, "--seed", "7", "config")
	require.NoError(t, err)
	assert.Contains(t, out, "# loaded from ")
	assert.Contains(t, out, "seed: 7")
}

func TestConfigInitCommand(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "config.yaml")
	out, err := run(t, "config", "init", target)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+target)
	assert.FileExists(t, target)

	_, err = run(t, "config", "init", target)
	assert.ErrorContains(t, err, "already exists")
}
