package dataset_test

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gilah-EnE/unite/dataset"
)

func TestFromRows_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		rows [][]float64
	}{
		{"empty", nil},
		{"no columns", [][]float64{{}}},
		{"ragged", [][]float64{{1, 2}, {3}}},
		{"nan", [][]float64{{1}, {math.NaN()}}},
		{"inf", [][]float64{{math.Inf(1)}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := dataset.FromRows(tc.rows)
			assert.ErrorIs(t, err, dataset.ErrShape)
		})
	}
}

func TestFromRows_Shape(t *testing.T) {
	t.Parallel()

	x, err := dataset.FromRows([][]float64{{1, 2}, {3, 4}, {5, 6}})
	require.NoError(t, err)
	r, c := x.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, []float64{2, 4, 6}, dataset.Column(x, 1))
}

func TestSameWidth(t *testing.T) {
	t.Parallel()

	p, _ := dataset.FromRows([][]float64{{1, 2}})
	q, _ := dataset.FromRows([][]float64{{1}, {2}})

	_, err := dataset.SameWidth(p, q)
	assert.ErrorIs(t, err, dataset.ErrShape)

	d, err := dataset.SameWidth(p, p)
	require.NoError(t, err)
	assert.Equal(t, 2, d)
}

func TestValidate_Nil(t *testing.T) {
	t.Parallel()

	_, _, err := dataset.Validate(nil)
	assert.ErrorIs(t, err, dataset.ErrShape)
}

func TestBounds(t *testing.T) {
	t.Parallel()

	x, _ := dataset.FromRows([][]float64{{1, -2}, {-3, 4}, {5, 0}})
	assert.Equal(t, [][2]float64{{-3, 5}, {-2, 4}}, dataset.Bounds(x))
}

func TestDegenerateIsNumerical(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, dataset.ErrDegenerate, dataset.ErrNumerical)
}

func TestReadCSV_HeaderAndComments(t *testing.T) {
	t.Parallel()

	in := "x,y\n# a comment\n1, 2\n3,4\n"
	x, err := dataset.ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	r, c := x.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, 4.0, x.At(1, 1))
}

func TestReadCSV_HeaderWidthDiffers(t *testing.T) {
	t.Parallel()

	x, err := dataset.ReadCSV(strings.NewReader("x,y,label\n1,2\n3,4\n5,6\n"))
	require.NoError(t, err)
	r, c := x.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, []float64{2, 4, 6}, dataset.Column(x, 1))

	_, err = dataset.ReadCSV(strings.NewReader("x,y\n1,2\n3\n"))
	assert.ErrorIs(t, err, dataset.ErrShape)
}

func TestReadCSV_BadValue(t *testing.T) {
	t.Parallel()

	_, err := dataset.ReadCSV(strings.NewReader("1,2\n3,oops\n"))
	assert.ErrorIs(t, err, dataset.ErrShape)
}

func TestLoadCSV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "samples.csv")
	require.NoError(t, os.WriteFile(path, []byte("0.5\n1.5\n2.5\n"), 0o644))

	x, err := dataset.LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 1.5, 2.5}, dataset.Column(x, 0))

	_, err = dataset.LoadCSV(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
