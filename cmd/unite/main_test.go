package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/distuv"
	"gopkg.in/yaml.v3"

	"github.com/Gilah-EnE/unite/dataset"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// rangeCSV holds the single column 0, 1, ..., n-1 under a header.
func rangeCSV(t *testing.T, n int) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("x\n")
	for i := range n {
		fmt.Fprintf(&b, "%d\n", i)
	}
	return writeFile(t, "range.csv", b.String())
}

func normalCSV(t *testing.T, n int) string {
	t.Helper()
	var b strings.Builder
	for i := range n {
		fmt.Fprintf(&b, "%v\n", distuv.UnitNormal.Quantile((float64(i)+0.5)/float64(n)))
	}
	return writeFile(t, "normal.csv", b.String())
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(&out)
	root.SetArgs(args)
	root.SetErr(&bytes.Buffer{})
	err := root.Execute()
	return out.String(), err
}

func TestBinsCommand(t *testing.T) {
	out, err := run(t, "bins", "--output", "json", rangeCSV(t, 100))
	require.NoError(t, err)

	var r binsReport
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, []int{8}, r.Counts["sturges"])
	assert.Len(t, r.Edges["sturges"], 1)
	assert.Len(t, r.Edges["sturges"][0], 9)
	for _, rule := range []string{"scott", "fd", "sturges"} {
		require.Len(t, r.Counts[rule], 1, rule)
		assert.Equal(t, len(r.Edges[rule][0])-1, r.Counts[rule][0], rule)
	}
}

func TestHistCommand(t *testing.T) {
	out, err := run(t, "hist", "--bins", "10", rangeCSV(t, 1000))
	require.NoError(t, err)

	var r histReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &r))
	assert.Equal(t, "10", r.Bins)
	assert.InDelta(t, math.Log(10), r.Entropy, 1e-12)
	assert.InDelta(t, r.Entropy+r.Correction, r.Differential, 1e-12)
	// Ten equal bins over [0, 999] hold 100 samples each: the estimate is
	// the differential entropy ln(999) of the uniform law on that range.
	assert.InDelta(t, math.Log(999), r.Differential, 1e-9)
}

func TestHistCommand_TextOutput(t *testing.T) {
	out, err := run(t, "hist", "-o", "text", "--bins", "sturges", rangeCSV(t, 100))
	require.NoError(t, err)
	assert.Contains(t, out, "bins: sturges\n")
	assert.Contains(t, out, "nats")
}

func TestEnvironmentOverridesDefaults(t *testing.T) {
	t.Setenv("UNITE_BINS", "5")
	t.Setenv("UNITE_OUTPUT", "json")
	file := rangeCSV(t, 100)

	out, err := run(t, "hist", file)
	require.NoError(t, err)
	var r histReport
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, "5", r.Bins)
	assert.InDelta(t, math.Log(5), r.Entropy, 1e-12)

	// Flags win over the environment.
	out, err = run(t, "hist", "--bins", "4", file)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, "4", r.Bins)
}

func TestConfigFile(t *testing.T) {
	config := writeFile(t, "unite.yaml", "output: json\nbandwidth: silverman\nrel_tol: 1e-6\n")

	out, err := run(t, "kde", "--config", config, normalCSV(t, 200))
	require.NoError(t, err)

	var r kdeReport
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, "silverman", r.Bandwidth)
	assert.InDelta(t, 0.5*math.Log(2*math.Pi*math.E), r.Entropy, 0.15)
}

func TestKLDCommand(t *testing.T) {
	file := normalCSV(t, 300)
	out, err := run(t, "kld", "-o", "json", file, file)
	require.NoError(t, err)

	var r kldReport
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, "scott", r.Bandwidth)
	assert.InDelta(t, 0.0, r.Divergence, 1e-12)
}

func TestAllCommand(t *testing.T) {
	file := normalCSV(t, 300)

	out, err := run(t, "all", "-o", "json", file)
	require.NoError(t, err)
	var r allReport
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, "fd", r.Bins)
	assert.Len(t, r.Counts, 3)
	assert.Nil(t, r.Divergence)
	assert.InDelta(t, r.Entropy+r.Correction, r.Differential, 1e-12)

	out, err = run(t, "all", "-o", "json", file, file)
	require.NoError(t, err)
	r = allReport{}
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	require.NotNil(t, r.Divergence)
	assert.InDelta(t, 0.0, *r.Divergence, 1e-12)
}

func TestCommandErrors(t *testing.T) {
	file := rangeCSV(t, 10)

	_, err := run(t, "hist", "--output", "xml", file)
	assert.ErrorIs(t, err, dataset.ErrConfiguration)

	_, err = run(t, "kde", "--bandwidth", "wide", file)
	assert.ErrorIs(t, err, dataset.ErrConfiguration)

	_, err = run(t, "kde", "--limit", "0", file)
	assert.ErrorIs(t, err, dataset.ErrConfiguration)

	_, err = run(t, "kde", "--config", filepath.Join(t.TempDir(), "missing.yaml"), file)
	assert.ErrorIs(t, err, dataset.ErrConfiguration)

	wide := writeFile(t, "wide.csv", "1,2\n2,1\n3,5\n")
	_, err = run(t, "kld", file, wide)
	assert.ErrorIs(t, err, dataset.ErrShape)

	_, err = run(t, "kld", file)
	assert.Error(t, err)
}
