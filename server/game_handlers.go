package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	errs "github.com/wasteeasy/api/errors"
	"github.com/wasteeasy/api/server/response"
)

type gameResultRequest struct {
	Score int `json:"score" binding:"min=0"`
}

func (s *Server) handleGameResult() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		var req gameResultRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		result, err := s.GameService.RecordGameResult(c.Request.Context(), userID, req.Score)
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "Game result recorded", http.StatusOK, result, nil)
	}
}

func (s *Server) handleGetHighScore() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}
		highScore, err := s.GameService.GetHighScore(c.Request.Context(), userID)
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "", http.StatusOK, gin.H{"high_score": highScore}, nil)
	}
}
