package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	errs "github.com/wasteeasy/api/errors"
	"github.com/wasteeasy/api/server/response"
)

func (s *Server) handleGetAvailableRewards() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}
		rewards, err := s.RewardService.GetAvailableRewards(userID)
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "", http.StatusOK, rewards, nil)
	}
}

func (s *Server) handleGetRewardBalance() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}
		data, err := s.RewardService.GetUserRewardData(userID)
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "", http.StatusOK, data, nil)
	}
}

func (s *Server) handleRedeemReward() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		rewardID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("invalid reward id", http.StatusBadRequest))
			return
		}

		entry, apiErr := s.RewardService.RedeemReward(userID, uint(rewardID))
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Reward redeemed successfully", http.StatusOK, entry, nil)
	}
}

func (s *Server) handleGetLeaderboard() gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := s.RewardService.GetLeaderboard()
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "", http.StatusOK, entries, nil)
	}
}
