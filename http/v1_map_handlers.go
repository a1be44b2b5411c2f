package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Map view constants for the NWIS sites map.
var initialMapExtent = []float64{-112.1, 38, -111, 41}

// handleV1MapConfig returns the map view composition: title, extent, and
// the layer groups the front end should build.
// GET /api/v1/map/config
func (s *Server) handleV1MapConfig(c *gin.Context) {
	sitesLayer := gin.H{
		"name":       "nwis-sites",
		"title":      "NWIS Sites",
		"variable":   "reference",
		"selectable": true,
		"visible":    true,
		"plottable":  true,
		"extent":     initialMapExtent,
		"data_url":   "/api/v1/map/layers/nwis-sites",
	}

	c.JSON(http.StatusOK, gin.H{
		"title":          "AWRA Map",
		"subtitle":       "NWIS Sites",
		"initial_extent": initialMapExtent,
		"min_zoom":       2,
		"max_zoom":       15,
		"layer_groups": []gin.H{
			{
				"id":            "nwis-layers",
				"display_name":  "Gages",
				"layer_control": "radio",
				"layers":        []gin.H{sitesLayer},
			},
		},
	})
}

// handleV1SitesLayer serves the site info FeatureCollection verbatim.
// GET /api/v1/map/layers/nwis-sites
func (s *Server) handleV1SitesLayer(c *gin.Context) {
	c.Data(http.StatusOK, "application/geo+json", s.store.SitesGeoJSON())
}
