// Package hydro computes flow duration curves from daily discharge records.
package hydro

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrUnknownSite is returned when the requested site has no column in
	// the discharge table.
	ErrUnknownSite = errors.New("unknown site")

	// ErrBadNormalizer is returned for a zero or non-finite normalizer.
	ErrBadNormalizer = errors.New("normalizer must be a non-zero finite number")
)

// Curve is a flow duration curve: two parallel sequences of equal length.
// Discharge is ascending; Probability[i] is the Weibull plotting-position
// exceedance probability of Discharge[i].
type Curve struct {
	Probability []float64 `json:"probability"`
	Discharge   []float64 `json:"discharge"`
}

// FlowDurationCurve builds the exceedance-probability curve for one site
// over the open year window (beginYear-01-01, endYear-01-01).
//
// Observations inside the window are averaged per day of year (1-366,
// leap-aware) across all years, sorted ascending, divided by normalizer,
// and ranked smallest-to-largest with ties receiving their average rank.
// The rank order is then reversed so rank 1 is the largest discharge, and
// each probability is reversedRank/(N+1).
//
// A window containing no observations yields two empty sequences and a nil
// error. The input table is never modified.
func FlowDurationCurve(s *Series, site string, beginYear, endYear int, normalizer float64) (Curve, error) {
	if normalizer == 0 || math.IsNaN(normalizer) || math.IsInf(normalizer, 0) {
		return Curve{}, fmt.Errorf("%w: got %v", ErrBadNormalizer, normalizer)
	}

	col, ok := s.Sites[site]
	if !ok {
		return Curve{}, fmt.Errorf("%w: %q", ErrUnknownSite, site)
	}

	begin := time.Date(beginYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(endYear, time.January, 1, 0, 0, 0, 0, time.UTC)

	// Bucket in-window observations by day of year. Both January 1
	// boundaries are excluded.
	byDay := make(map[int][]float64)
	for i := 0; i < len(s.Dates) && i < len(col); i++ {
		v := col[i]
		if math.IsNaN(v) {
			continue
		}
		d := s.Dates[i]
		if !d.After(begin) || !d.Before(end) {
			continue
		}
		doy := d.YearDay()
		byDay[doy] = append(byDay[doy], v)
	}

	discharge := make([]float64, 0, len(byDay))
	for _, obs := range byDay {
		discharge = append(discharge, stat.Mean(obs, nil))
	}
	sort.Float64s(discharge)
	floats.Scale(1/normalizer, discharge)

	ranks := averageRanks(discharge)
	n := float64(len(discharge))
	probability := make([]float64, len(discharge))
	for i := range probability {
		probability[i] = ranks[len(ranks)-1-i] / (n + 1)
	}

	return Curve{Probability: probability, Discharge: discharge}, nil
}

// averageRanks assigns 1-based ascending ranks to sorted values. Tied runs
// receive the mean of the ranks they span.
func averageRanks(sorted []float64) []float64 {
	ranks := make([]float64, len(sorted))
	for i := 0; i < len(sorted); {
		j := i + 1
		for j < len(sorted) && sorted[j] == sorted[i] {
			j++
		}
		// Mean of ranks i+1 .. j.
		avg := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			ranks[k] = avg
		}
		i = j
	}
	return ranks
}
