package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/awra-tools/nwis-flow-viewer/hydro"
	"github.com/awra-tools/nwis-flow-viewer/plot"
)

// handleV1FDCPlot returns the flow duration curve figure for a site.
// GET /api/v1/plots/fdc/:site_no?begin=1900&split=1970&end=2020
//
// The three traces cover (begin,end), (begin,split), and (split,end); the
// year parameters default to the configured windows. Windows with no
// qualifying record yield empty traces, not errors.
func (s *Server) handleV1FDCPlot(c *gin.Context) {
	siteNo := c.Param("site_no")
	if siteNo == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "site_no is required"})
		return
	}

	begin := s.cfg.BeginYear
	split := s.cfg.SplitYear
	end := s.cfg.EndYear
	for _, p := range []struct {
		name string
		dest *int
	}{
		{"begin", &begin},
		{"split", &split},
		{"end", &end},
	} {
		if v := c.Query(p.name); v != "" {
			year, err := strconv.Atoi(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + p.name + " year"})
				return
			}
			*p.dest = year
		}
	}

	figure, err := plot.FDCFigure(s.store.Discharge(), siteNo, begin, split, end)
	if err != nil {
		switch {
		case errors.Is(err, hydro.ErrUnknownSite):
			c.JSON(http.StatusNotFound, gin.H{"error": "no discharge record for site " + siteNo})
		case errors.Is(err, hydro.ErrBadNormalizer):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, figure)
}
