package binning_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/Gilah-EnE/unite/binning"
	"github.com/Gilah-EnE/unite/dataset"
)

func uniformSample(t *testing.T, n, d int, lo, hi float64, seed uint64) *mat.Dense {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, seed+1))
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, d)
		for j := range rows[i] {
			rows[i][j] = lo + (hi-lo)*rng.Float64()
		}
	}
	x, err := dataset.FromRows(rows)
	require.NoError(t, err)
	return x
}

func TestEntropy_UniformRecoversAnalytic(t *testing.T) {
	t.Parallel()

	x := uniformSample(t, 10000, 1, 0, 1, 7)
	edges := floats.Span(make([]float64, 11), 0, 1)

	h, cf, err := binning.Entropy(x, binning.Edges(edges))
	require.NoError(t, err)
	assert.InDelta(t, math.Log(10), h, 0.01)
	assert.InDelta(t, math.Log(0.1), cf, 1e-9)
	assert.InDelta(t, 0.0, h+cf, 0.01, "uniform on [0,1) has zero differential entropy")
}

func TestEntropy_HandComputedGrid(t *testing.T) {
	t.Parallel()

	x, err := dataset.FromRows([][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}})
	require.NoError(t, err)

	hist, err := binning.NewHistogram(x, binning.Uniform(2))
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, hist.Shape)
	assert.Equal(t, []int{1, 1, 1, 1}, hist.Counts)
	assert.Equal(t, 4, hist.Total)

	h, cf, err := hist.Entropy()
	require.NoError(t, err)
	assert.InDelta(t, math.Log(4), h, 1e-12)
	assert.InDelta(t, math.Log(0.25), cf, 1e-12)

	diff, err := hist.Differential()
	require.NoError(t, err)
	assert.InDelta(t, h+cf, diff, 1e-12)
	assert.InDelta(t, 0.0, diff, 1e-12, "uniform grid on [0,1]² has zero differential entropy")
}

func TestHistogram_RowMajorLayout(t *testing.T) {
	t.Parallel()

	x, err := dataset.FromRows([][]float64{{0.5, 1.5}})
	require.NoError(t, err)

	hist, err := binning.NewHistogram(x, binning.Edges([]float64{0, 1, 2}, []float64{0, 1, 2}))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 0, 0}, hist.Counts)
}

func TestHistogram_LastEdgeIsClosed(t *testing.T) {
	t.Parallel()

	x, err := dataset.FromColumn([]float64{0, 0.5, 1, 1.5})
	require.NoError(t, err)

	hist, err := binning.NewHistogram(x, binning.Edges([]float64{0, 0.5, 1}))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, hist.Counts)
	assert.Equal(t, 3, hist.Total, "1.5 lies outside the edges")
}

func TestHistogram_Volumes(t *testing.T) {
	t.Parallel()

	x, err := dataset.FromRows([][]float64{{0.5, 1}})
	require.NoError(t, err)

	hist, err := binning.NewHistogram(x, binning.Edges([]float64{0, 1, 3}, []float64{0, 2}))
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 4}, hist.Volumes())
}

func TestHistogram_ProbabilitiesNormalized(t *testing.T) {
	t.Parallel()

	x := uniformSample(t, 500, 2, -3, 3, 11)
	specs := []binning.Bins{
		binning.Uniform(5),
		binning.Counts(3, 7),
		binning.ByRule(binning.Scott),
		binning.ByRule(binning.FreedmanDiaconis),
		binning.ByRule(binning.Sturges),
		binning.Edges([]float64{-1, 0, 1}, []float64{-2, 2}),
	}
	for _, spec := range specs {
		t.Run(spec.String(), func(t *testing.T) {
			hist, err := binning.NewHistogram(x, spec)
			require.NoError(t, err)
			assert.InDelta(t, 1.0, floats.Sum(hist.Probabilities()), 1e-12)

			h, _, err := hist.Entropy()
			require.NoError(t, err)
			assert.GreaterOrEqual(t, h, 0.0)
		})
	}
}

func TestEntropy_SingleBinIsZero(t *testing.T) {
	t.Parallel()

	x := uniformSample(t, 50, 1, 0, 1, 3)
	h, cf, err := binning.Entropy(x, binning.Uniform(1))
	require.NoError(t, err)
	assert.Equal(t, 0.0, h)
	assert.InDelta(t, math.Log(dataset.Bounds(x)[0][1]-dataset.Bounds(x)[0][0]), cf, 1e-12)
}

func TestEntropy_Errors(t *testing.T) {
	t.Parallel()

	x := uniformSample(t, 20, 2, 0, 1, 5)
	cases := []struct {
		name string
		bins binning.Bins
		want error
	}{
		{"nil spec", nil, dataset.ErrConfiguration},
		{"counts length", binning.Counts(3), dataset.ErrConfiguration},
		{"zero bins", binning.Uniform(0), dataset.ErrConfiguration},
		{"edges length", binning.Edges([]float64{0, 1}), dataset.ErrConfiguration},
		{"not increasing", binning.Edges([]float64{0, 0.5, 0.5, 1}, []float64{0, 1}), binning.ErrInvalidBins},
		{"decreasing", binning.Edges([]float64{1, 0}, []float64{0, 1}), binning.ErrInvalidBins},
		{"single edge", binning.Edges([]float64{0}, []float64{0, 1}), binning.ErrInvalidBins},
		{"non-finite", binning.Edges([]float64{0, math.Inf(1)}, []float64{0, 1}), binning.ErrInvalidBins},
		{"outside data", binning.Edges([]float64{5, 6}, []float64{5, 6}), binning.ErrInvalidBins},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := binning.Entropy(x, tc.bins)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, _, err := binning.Entropy(nil, binning.Uniform(2))
	assert.ErrorIs(t, err, dataset.ErrShape)
}

func TestEntropy_DegenerateColumn(t *testing.T) {
	t.Parallel()

	x, err := dataset.FromRows([][]float64{{1, 3}, {2, 3}, {3, 3}})
	require.NoError(t, err)

	for _, spec := range []binning.Bins{binning.Uniform(4), binning.ByRule(binning.Sturges)} {
		_, _, err := binning.Entropy(x, spec)
		assert.ErrorIs(t, err, dataset.ErrDegenerate)
		assert.ErrorIs(t, err, dataset.ErrNumerical)
	}

	// Explicit edges stay usable on constant data.
	h, _, err := binning.Entropy(x, binning.Edges([]float64{0, 2, 4}, []float64{2, 4}))
	require.NoError(t, err)
	assert.InDelta(t, -(1.0/3)*math.Log(1.0/3)-(2.0/3)*math.Log(2.0/3), h, 1e-12)
}

func TestIdealBins_Sturges(t *testing.T) {
	t.Parallel()

	x := uniformSample(t, 100, 1, 0, 100, 42)
	counts, err := binning.IdealBinCounts(x)
	require.NoError(t, err)
	assert.Equal(t, []int{8}, counts[binning.Sturges])
}

func TestIdealBins_ShapeOfResult(t *testing.T) {
	t.Parallel()

	x := uniformSample(t, 300, 3, 0, 1, 9)
	edges, err := binning.IdealBinEdges(x)
	require.NoError(t, err)
	counts, err := binning.IdealBinCounts(x)
	require.NoError(t, err)

	require.Len(t, edges, 3)
	require.Len(t, counts, 3)
	assert.Equal(t, counts, binning.BinCounts(edges))
	for _, rule := range binning.Rules() {
		require.Len(t, edges[rule], 3, rule.String())
		require.Len(t, counts[rule], 3, rule.String())
		for j := range edges[rule] {
			assert.Equal(t, len(edges[rule][j])-1, counts[rule][j])
			box := dataset.Bounds(x)[j]
			assert.Equal(t, box[0], edges[rule][j][0])
			assert.InDelta(t, box[1], edges[rule][j][len(edges[rule][j])-1], 1e-12)
		}
	}
}

func TestIdealBins_CountsFeedBack(t *testing.T) {
	t.Parallel()

	x := uniformSample(t, 400, 2, -1, 1, 13)
	counts, err := binning.IdealBinCounts(x)
	require.NoError(t, err)
	for rule, perDim := range counts {
		_, _, err := binning.Entropy(x, binning.Counts(perDim...))
		assert.NoError(t, err, rule.String())
	}
}

func TestIdealBins_Degenerate(t *testing.T) {
	t.Parallel()

	x, err := dataset.FromRows([][]float64{{1, 5}, {2, 5}, {4, 5}})
	require.NoError(t, err)
	_, err = binning.IdealBinCounts(x)
	assert.ErrorIs(t, err, dataset.ErrDegenerate)
}

func TestRuleEdges_KnownWidths(t *testing.T) {
	t.Parallel()

	// 0..999: σ ≈ 288.67, so Scott width ≈ 3.49·288.67/10 ≈ 100.7 → 10 bins.
	values := make([]float64, 1000)
	for i := range values {
		values[i] = float64(i)
	}
	edges, err := binning.RuleEdges(values, binning.Scott)
	require.NoError(t, err)
	assert.Len(t, edges, 11)

	edges, err = binning.RuleEdges(values, binning.Sturges)
	require.NoError(t, err)
	assert.Len(t, edges, 12, "ceil(log2(1000)+1) = 11 bins")

	_, err = binning.RuleEdges(nil, binning.Scott)
	assert.ErrorIs(t, err, dataset.ErrShape)

	_, err = binning.RuleEdges(values, binning.Rule(42))
	assert.ErrorIs(t, err, dataset.ErrConfiguration)
}

func TestRuleEdges_ZeroIQRFallsBackToOneBin(t *testing.T) {
	t.Parallel()

	values := []float64{0, 0, 0, 0, 0, 0, 0, 10}
	edges, err := binning.RuleEdges(values, binning.FreedmanDiaconis)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 10}, edges)
}

func TestRuleEdges_OutlierCountIsBounded(t *testing.T) {
	t.Parallel()

	values := make([]float64, 0, 101)
	for i := range 100 {
		values = append(values, distuv.UnitNormal.Quantile((float64(i)+0.5)/100))
	}
	values = append(values, 1e9)

	_, err := binning.RuleEdges(values, binning.FreedmanDiaconis)
	assert.ErrorIs(t, err, dataset.ErrConfiguration)

	x, err := dataset.FromColumn(values)
	require.NoError(t, err)
	_, err = binning.IdealBinCounts(x)
	assert.ErrorIs(t, err, dataset.ErrConfiguration)
	_, _, err = binning.Entropy(x, binning.ByRule(binning.FreedmanDiaconis))
	assert.ErrorIs(t, err, dataset.ErrConfiguration)

	// Sturges does not depend on the spread and stays usable.
	edges, err := binning.RuleEdges(values, binning.Sturges)
	require.NoError(t, err)
	assert.Len(t, edges, 9)
}

func TestRuleEdges_VanishingWidthIsRejected(t *testing.T) {
	t.Parallel()

	// The quartiles sit within 1e-29 of each other while the range is 1e3,
	// so the width ratio overflows any integer bin count.
	values := []float64{0, 1e-30, 2e-30, 3e-30, 4e-30, 5e-30, 6e-30, 1e3}
	_, err := binning.RuleEdges(values, binning.FreedmanDiaconis)
	assert.ErrorIs(t, err, dataset.ErrConfiguration)
}

func TestEntropy_GridLimit(t *testing.T) {
	t.Parallel()

	x := uniformSample(t, 10, 2, 0, 1, 17)
	for _, bins := range []binning.Bins{
		binning.Uniform(1 << 27),
		binning.Counts(1<<14, 1<<14),
	} {
		_, _, err := binning.Entropy(x, bins)
		assert.ErrorIs(t, err, dataset.ErrConfiguration, bins.String())
	}
}

func TestParseRule(t *testing.T) {
	t.Parallel()

	for text, want := range map[string]binning.Rule{
		"scott":             binning.Scott,
		"FD":                binning.FreedmanDiaconis,
		"freedman-diaconis": binning.FreedmanDiaconis,
		" Sturges ":         binning.Sturges,
	} {
		got, err := binning.ParseRule(text)
		require.NoError(t, err, text)
		assert.Equal(t, want, got, text)
	}

	_, err := binning.ParseRule("auto")
	assert.ErrorIs(t, err, dataset.ErrConfiguration)

	text, err := binning.FreedmanDiaconis.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "fd", string(text))

	var r binning.Rule
	require.NoError(t, r.UnmarshalText([]byte("sturges")))
	assert.Equal(t, binning.Sturges, r)
}
