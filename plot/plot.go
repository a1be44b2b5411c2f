// Package plot shapes flow-duration-curve results for the front-end renderer.
package plot

import (
	"fmt"

	"github.com/awra-tools/nwis-flow-viewer/hydro"
)

// Series is one named trace: parallel x (probability) and y (discharge).
type Series struct {
	X    []float64 `json:"x"`
	Y    []float64 `json:"y"`
	Name string    `json:"name"`
}

// Axis carries the axis options the renderer recognizes.
type Axis struct {
	Title string  `json:"title,omitempty"`
	DTick float64 `json:"dtick,omitempty"`
	Type  string  `json:"type,omitempty"`
}

// Layout is the axis configuration for a figure.
type Layout struct {
	XAxis Axis `json:"xaxis"`
	YAxis Axis `json:"yaxis"`
}

// Figure is a complete plot: title, traces, and layout.
type Figure struct {
	Title  string   `json:"title"`
	Data   []Series `json:"data"`
	Layout Layout   `json:"layout"`
}

// FDCFigure builds the three-window flow duration curve figure for a site:
// the full window plus the periods before and after the split year, each
// computed independently over the shared table with no normalization.
func FDCFigure(s *hydro.Series, siteNo string, beginYear, splitYear, endYear int) (Figure, error) {
	windows := [][2]int{
		{beginYear, endYear},
		{beginYear, splitYear},
		{splitYear, endYear},
	}

	data := make([]Series, 0, len(windows))
	for _, w := range windows {
		curve, err := hydro.FlowDurationCurve(s, siteNo, w[0], w[1], 1)
		if err != nil {
			return Figure{}, err
		}
		data = append(data, Series{
			X:    curve.Probability,
			Y:    curve.Discharge,
			Name: fmt.Sprintf("%s %d-%d", siteNo, w[0], w[1]),
		})
	}

	return Figure{
		Title: fmt.Sprintf("Flow Duration Curve for %s", siteNo),
		Data:  data,
		Layout: Layout{
			XAxis: Axis{Title: "probability", DTick: 0.05},
			YAxis: Axis{Title: "discharge (cfs)", Type: "log"},
		},
	}, nil
}
