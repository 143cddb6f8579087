package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wasteeasy/api/server/response"
)

func (s *Server) handleGetImpactStats() gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := s.StatsService.GetImpactStats()
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "", http.StatusOK, stats, nil)
	}
}
