package http

// registerV1Routes sets up the v1 API structure.
// Groups: /api/v1/core, /api/v1/map, /api/v1/plots
func (s *Server) registerV1Routes() {
	v1 := s.engine.Group("/api/v1")
	v1.Use(apiVersionMiddleware())

	// Core endpoints - site metadata
	core := v1.Group("/core")
	{
		core.GET("/sites", s.handleV1ListSites)
		core.GET("/sites/:site_no", s.handleV1GetSite)
	}

	// Map endpoints - view composition and layer data
	mapGroup := v1.Group("/map")
	{
		mapGroup.GET("/config", s.handleV1MapConfig)
		mapGroup.GET("/layers/nwis-sites", s.handleV1SitesLayer)
	}

	// Plot endpoints - feature-click plot data
	plots := v1.Group("/plots")
	{
		plots.GET("/fdc/:site_no", s.handleV1FDCPlot)
	}
}
