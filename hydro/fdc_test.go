package hydro

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// newSeries builds a single-site table from parallel date/value slices.
func newSeries(site string, dates []time.Time, values []float64) *Series {
	return &Series{
		Dates: dates,
		Sites: map[string][]float64{site: values},
	}
}

func TestFlowDurationCurve_TwoDayScenario(t *testing.T) {
	// Jan 1 is always 10 cfs, Jan 2 always 5 cfs, for 1969-1971.
	var dates []time.Time
	var values []float64
	for _, y := range []int{1969, 1970, 1971} {
		dates = append(dates, day(y, time.January, 1), day(y, time.January, 2))
		values = append(values, 10, 5)
	}
	s := newSeries("SITE1", dates, values)

	curve, err := FlowDurationCurve(s, "SITE1", 1900, 2020, 1)
	require.NoError(t, err)

	require.Len(t, curve.Discharge, 2)
	require.Len(t, curve.Probability, 2)
	assert.Equal(t, []float64{5, 10}, curve.Discharge)
	assert.InDelta(t, 2.0/3.0, curve.Probability[0], 1e-12)
	assert.InDelta(t, 1.0/3.0, curve.Probability[1], 1e-12)
}

func TestFlowDurationCurve_AveragesAcrossYears(t *testing.T) {
	s := newSeries("S",
		[]time.Time{day(1969, time.January, 5), day(1970, time.January, 5)},
		[]float64{10, 20},
	)

	curve, err := FlowDurationCurve(s, "S", 1900, 2020, 1)
	require.NoError(t, err)
	require.Len(t, curve.Discharge, 1)
	assert.InDelta(t, 15, curve.Discharge[0], 1e-12)
	assert.InDelta(t, 0.5, curve.Probability[0], 1e-12)
}

func TestFlowDurationCurve_WindowBoundsAreExclusive(t *testing.T) {
	s := newSeries("S",
		[]time.Time{day(1900, time.January, 1), day(1900, time.January, 2), day(2020, time.January, 1)},
		[]float64{99, 7, 42},
	)

	curve, err := FlowDurationCurve(s, "S", 1900, 2020, 1)
	require.NoError(t, err)

	// Both January 1 boundary days fall outside the open window.
	require.Len(t, curve.Discharge, 1)
	assert.Equal(t, 7.0, curve.Discharge[0])
	assert.InDelta(t, 0.5, curve.Probability[0], 1e-12)
}

func TestFlowDurationCurve_EmptyWindow(t *testing.T) {
	s := newSeries("S",
		[]time.Time{day(1969, time.June, 1), day(1970, time.June, 1)},
		[]float64{1, 2},
	)

	tests := []struct {
		name       string
		begin, end int
	}{
		{"window after record", 1980, 1990},
		{"window before record", 1900, 1950},
		{"inverted window", 2020, 1900},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			curve, err := FlowDurationCurve(s, "S", tt.begin, tt.end, 1)
			require.NoError(t, err)
			assert.NotNil(t, curve.Probability)
			assert.NotNil(t, curve.Discharge)
			assert.Empty(t, curve.Probability)
			assert.Empty(t, curve.Discharge)
		})
	}
}

func TestFlowDurationCurve_UnknownSite(t *testing.T) {
	s := newSeries("SITE1",
		[]time.Time{day(1970, time.January, 2)},
		[]float64{5},
	)

	_, err := FlowDurationCurve(s, "NOSUCHSITE", 1900, 2020, 1)
	assert.ErrorIs(t, err, ErrUnknownSite)
	assert.ErrorContains(t, err, "NOSUCHSITE")
}

func TestFlowDurationCurve_BadNormalizer(t *testing.T) {
	s := newSeries("S",
		[]time.Time{day(1970, time.January, 2)},
		[]float64{5},
	)

	for _, normalizer := range []float64{0, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := FlowDurationCurve(s, "S", 1900, 2020, normalizer)
		assert.ErrorIs(t, err, ErrBadNormalizer)
	}
}

func TestFlowDurationCurve_MissingValuesDropped(t *testing.T) {
	s := newSeries("S",
		[]time.Time{
			day(1970, time.March, 1),
			day(1970, time.March, 2),
			day(1971, time.March, 1),
		},
		[]float64{math.NaN(), 4, 8},
	)

	curve, err := FlowDurationCurve(s, "S", 1900, 2020, 1)
	require.NoError(t, err)

	// The NaN on 1970-03-01 is dropped, so that day of year averages to 8.
	require.Len(t, curve.Discharge, 2)
	assert.Equal(t, []float64{4, 8}, curve.Discharge)
}

func TestFlowDurationCurve_TiedValuesShareAverageRank(t *testing.T) {
	s := newSeries("S",
		[]time.Time{
			day(1970, time.January, 1),
			day(1970, time.January, 2),
			day(1970, time.January, 3),
		},
		[]float64{5, 5, 10},
	)

	curve, err := FlowDurationCurve(s, "S", 1900, 2020, 1)
	require.NoError(t, err)

	// Ascending ranks are [1.5, 1.5, 3]; reversed [3, 1.5, 1.5]; N+1 = 4.
	require.Equal(t, []float64{5, 5, 10}, curve.Discharge)
	assert.InDelta(t, 0.75, curve.Probability[0], 1e-12)
	assert.InDelta(t, 0.375, curve.Probability[1], 1e-12)
	assert.InDelta(t, 0.375, curve.Probability[2], 1e-12)
}

func TestFlowDurationCurve_NormalizerScalesDischargeOnly(t *testing.T) {
	s := syntheticSeries()

	base, err := FlowDurationCurve(s, "A", 1960, 1980, 1)
	require.NoError(t, err)
	scaled, err := FlowDurationCurve(s, "A", 1960, 1980, 4)
	require.NoError(t, err)

	require.Len(t, scaled.Discharge, len(base.Discharge))
	for i := range base.Discharge {
		assert.InDelta(t, base.Discharge[i]/4, scaled.Discharge[i], 1e-12)
	}
	assert.Equal(t, base.Probability, scaled.Probability)
}

func TestFlowDurationCurve_CurveProperties(t *testing.T) {
	s := syntheticSeries()

	curve, err := FlowDurationCurve(s, "A", 1960, 1980, 1)
	require.NoError(t, err)
	require.NotEmpty(t, curve.Discharge)

	assert.Len(t, curve.Probability, len(curve.Discharge))
	for i, p := range curve.Probability {
		assert.Greater(t, p, 0.0, "probability %d", i)
		assert.Less(t, p, 1.0, "probability %d", i)
	}
	for i := 1; i < len(curve.Discharge); i++ {
		assert.LessOrEqual(t, curve.Discharge[i-1], curve.Discharge[i])
	}

	// Pure function: identical inputs give identical output.
	again, err := FlowDurationCurve(s, "A", 1960, 1980, 1)
	require.NoError(t, err)
	assert.Equal(t, curve, again)
}

func TestFlowDurationCurve_CallsDoNotInterfere(t *testing.T) {
	s := syntheticSeries()

	wantA, err := FlowDurationCurve(s, "A", 1960, 1980, 1)
	require.NoError(t, err)
	wantB, err := FlowDurationCurve(s, "B", 1960, 1970, 1)
	require.NoError(t, err)

	// Interleave windows and sites over the shared table, as the plot
	// orchestration does, and check nothing drifts.
	for i := 0; i < 3; i++ {
		_, err = FlowDurationCurve(s, "B", 1970, 1980, 1)
		require.NoError(t, err)
		gotA, err := FlowDurationCurve(s, "A", 1960, 1980, 1)
		require.NoError(t, err)
		assert.Equal(t, wantA, gotA)
		gotB, err := FlowDurationCurve(s, "B", 1960, 1970, 1)
		require.NoError(t, err)
		assert.Equal(t, wantB, gotB)
	}
}

func TestFlowDurationCurve_AtMost366Points(t *testing.T) {
	s := syntheticSeries()
	curve, err := FlowDurationCurve(s, "A", 1960, 1980, 1)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(curve.Discharge), 366)
}

// syntheticSeries builds a deterministic two-site table covering 1960-1975
// with daily values and a sprinkling of missing observations.
func syntheticSeries() *Series {
	start := day(1960, time.January, 1)
	const days = 15 * 366

	dates := make([]time.Time, 0, days)
	a := make([]float64, 0, days)
	b := make([]float64, 0, days)
	for i := 0; i < days; i++ {
		d := start.AddDate(0, 0, i)
		dates = append(dates, d)

		va := float64(i%37) + 1.5
		vb := float64(i%53)*2 + 0.25
		if i%11 == 0 {
			va = math.NaN()
		}
		if i%17 == 0 {
			vb = math.NaN()
		}
		a = append(a, va)
		b = append(b, vb)
	}
	return &Series{Dates: dates, Sites: map[string][]float64{"A": a, "B": b}}
}
