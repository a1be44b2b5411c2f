// Package store loads the pre-staged NWIS data files and serves them to
// request handlers. The store is populated once at startup and never
// mutated afterwards, so handlers may share it freely.
package store

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/awra-tools/nwis-flow-viewer/hydro"
)

// File names expected inside the data directory.
const (
	SiteInfoFile = "USGS_Site_Info.geojson"
	SiteDataFile = "USGS_Site_Data.csv"
)

// dateLayouts are accepted formats for the CSV dates column. Sub-day
// precision is truncated to the calendar day.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// Site is the metadata for one monitoring site, extracted from the site
// info GeoJSON.
type Site struct {
	SiteNo     string         `json:"site_no"`
	Name       string         `json:"name,omitempty"`
	Lon        float64        `json:"lon"`
	Lat        float64        `json:"lat"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Store holds the loaded site metadata and discharge table.
type Store struct {
	sites        []Site
	siteIndex    map[string]int
	sitesGeoJSON []byte
	series       *hydro.Series
}

// Load reads the site info GeoJSON and the discharge CSV from dataDir.
func Load(dataDir string, logger *zap.Logger) (*Store, error) {
	raw, err := os.ReadFile(filepath.Join(dataDir, SiteInfoFile))
	if err != nil {
		return nil, fmt.Errorf("reading site info: %w", err)
	}
	sites, err := parseSiteInfo(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", SiteInfoFile, err)
	}

	f, err := os.Open(filepath.Join(dataDir, SiteDataFile))
	if err != nil {
		return nil, fmt.Errorf("reading site data: %w", err)
	}
	defer f.Close()

	series, err := parseSiteData(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", SiteDataFile, err)
	}

	st := &Store{
		sites:        sites,
		siteIndex:    make(map[string]int, len(sites)),
		sitesGeoJSON: raw,
		series:       series,
	}
	for i, site := range st.sites {
		st.siteIndex[site.SiteNo] = i
		if _, ok := series.Sites[site.SiteNo]; !ok {
			logger.Warn("site has no discharge column", zap.String("site_no", site.SiteNo))
		}
	}
	for id := range series.Sites {
		if _, ok := st.siteIndex[id]; !ok {
			logger.Warn("discharge column has no site metadata", zap.String("site_no", id))
		}
	}

	logger.Info("data loaded",
		zap.Int("sites", len(st.sites)),
		zap.Int("days", len(series.Dates)),
		zap.Int("columns", len(series.Sites)),
	)
	return st, nil
}

// Sites returns all site metadata in file order.
func (s *Store) Sites() []Site {
	return s.sites
}

// Site returns the metadata for one site.
func (s *Store) Site(siteNo string) (Site, bool) {
	i, ok := s.siteIndex[siteNo]
	if !ok {
		return Site{}, false
	}
	return s.sites[i], true
}

// SitesGeoJSON returns the verbatim site info FeatureCollection bytes.
func (s *Store) SitesGeoJSON() []byte {
	return s.sitesGeoJSON
}

// Discharge returns the shared read-only discharge table.
func (s *Store) Discharge() *hydro.Series {
	return s.series
}

type geoFeature struct {
	Geometry struct {
		Type        string    `json:"type"`
		Coordinates []float64 `json:"coordinates"`
	} `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

type geoCollection struct {
	Type     string       `json:"type"`
	Features []geoFeature `json:"features"`
}

// parseSiteInfo extracts site metadata from a point FeatureCollection.
func parseSiteInfo(raw []byte) ([]Site, error) {
	var fc geoCollection
	if err := json.Unmarshal(raw, &fc); err != nil {
		return nil, err
	}
	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("expected FeatureCollection, got %q", fc.Type)
	}

	sites := make([]Site, 0, len(fc.Features))
	for i, feat := range fc.Features {
		if feat.Geometry.Type != "Point" || len(feat.Geometry.Coordinates) < 2 {
			return nil, fmt.Errorf("feature %d: expected point geometry", i)
		}
		siteNo := propString(feat.Properties, "site_no")
		if siteNo == "" {
			return nil, fmt.Errorf("feature %d: missing site_no property", i)
		}
		name := propString(feat.Properties, "station_nm")
		if name == "" {
			name = propString(feat.Properties, "name")
		}
		sites = append(sites, Site{
			SiteNo:     siteNo,
			Name:       name,
			Lon:        feat.Geometry.Coordinates[0],
			Lat:        feat.Geometry.Coordinates[1],
			Properties: feat.Properties,
		})
	}
	return sites, nil
}

// propString reads a property that may be encoded as a JSON string or number.
func propString(props map[string]any, key string) string {
	switch v := props[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// parseSiteData reads the discharge CSV: a dates column plus one column per
// site. Empty and NA cells become NaN.
func parseSiteData(r io.Reader) (*hydro.Series, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	dateCol := -1
	cols := make([]string, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "dates" {
			if dateCol >= 0 {
				return nil, errors.New(`duplicate "dates" column`)
			}
			dateCol = i
			continue
		}
		cols[i] = name
	}
	if dateCol < 0 {
		return nil, errors.New(`missing "dates" column`)
	}

	series := &hydro.Series{Sites: make(map[string][]float64, len(header)-1)}
	for i, id := range cols {
		if i == dateCol {
			continue
		}
		if _, ok := series.Sites[id]; ok {
			return nil, fmt.Errorf("duplicate site column %q", id)
		}
		series.Sites[id] = []float64{}
	}

	seen := make(map[time.Time]struct{})
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		d, err := parseDate(rec[dateCol])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if _, dup := seen[d]; dup {
			return nil, fmt.Errorf("line %d: duplicate date %s", line, d.Format("2006-01-02"))
		}
		seen[d] = struct{}{}
		series.Dates = append(series.Dates, d)

		for i, id := range cols {
			if i == dateCol {
				continue
			}
			v, err := parseValue(rec[i])
			if err != nil {
				return nil, fmt.Errorf("line %d, column %q: %w", line, id, err)
			}
			series.Sites[id] = append(series.Sites[id], v)
		}
	}

	return series, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

func parseValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "na") || strings.EqualFold(s, "nan") {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}
