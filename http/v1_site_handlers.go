package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleV1ListSites returns all monitoring sites
// GET /api/v1/core/sites
func (s *Server) handleV1ListSites(c *gin.Context) {
	sites := s.store.Sites()

	c.JSON(http.StatusOK, gin.H{
		"data": sites,
		"meta": gin.H{
			"count": len(sites),
		},
	})
}

// handleV1GetSite returns details for a specific site
// GET /api/v1/core/sites/:site_no
func (s *Server) handleV1GetSite(c *gin.Context) {
	siteNo := c.Param("site_no")
	if siteNo == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "site_no is required"})
		return
	}

	site, ok := s.store.Site(siteNo)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "site not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": site,
	})
}
