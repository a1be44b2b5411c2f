package hydro

import "time"

// Series is a daily discharge table: one row per date, one column per
// monitored site. Dates are normalized to UTC midnight and unique; every
// column has the same length as Dates. Missing observations are NaN.
type Series struct {
	Dates []time.Time
	Sites map[string][]float64
}

// Column returns the discharge column for a site, if present.
func (s *Series) Column(site string) ([]float64, bool) {
	col, ok := s.Sites[site]
	return col, ok
}

// SiteIDs returns the site identifiers present in the table.
func (s *Series) SiteIDs() []string {
	ids := make([]string, 0, len(s.Sites))
	for id := range s.Sites {
		ids = append(ids, id)
	}
	return ids
}
