package server

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	errs "github.com/wasteeasy/api/errors"
	"github.com/wasteeasy/api/models"
	"github.com/wasteeasy/api/server/response"
)

func reportIDParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func (s *Server) handleCreateReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		var req models.CreateReportRequest
		var imageURL string
		if strings.HasPrefix(c.ContentType(), "multipart/") {
			if err := c.ShouldBind(&req); err != nil {
				response.JSON(c, "", http.StatusBadRequest, nil, err)
				return
			}
			if err := models.ConformInput(&req); err != nil {
				response.JSON(c, "", http.StatusBadRequest, nil, err)
				return
			}
			if file, err := c.FormFile("image"); err == nil {
				feedURL, _, err := s.MediaService.UploadReportImageFile(c.Request.Context(), file, userID)
				if err != nil {
					log.Printf("error uploading report image: %v", err)
					response.JSON(c, "", http.StatusInternalServerError, nil, err)
					return
				}
				imageURL = feedURL
			}
		} else {
			if err := decode(c, &req); err != nil {
				response.JSON(c, "", http.StatusBadRequest, nil, err)
				return
			}
			if req.ImageData != "" {
				imageBytes, err := s.MediaService.DecodeDataURL(req.ImageData)
				if err != nil {
					response.JSON(c, "", http.StatusBadRequest, nil, err)
					return
				}
				feedURL, _, err := s.MediaService.UploadReportImage(c.Request.Context(), imageBytes, userID)
				if err != nil {
					log.Printf("error uploading report image: %v", err)
					response.JSON(c, "", http.StatusInternalServerError, nil, err)
					return
				}
				imageURL = feedURL
			}
		}

		report, apiErr := s.ReportService.SubmitReport(userID, &req, imageURL)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Report submitted successfully", http.StatusCreated, report, nil)
	}
}

func (s *Server) handleGetRecentReports() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		reports, err := s.ReportService.GetRecentReports(limit)
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "", http.StatusOK, reports, nil)
	}
}

func (s *Server) handleGetCollectionTasks() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		tasks, err := s.ReportService.GetCollectionTasks(limit)
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "", http.StatusOK, tasks, nil)
	}
}

func (s *Server) handleUpdateReportStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		reportID, err := reportIDParam(c)
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("invalid report id", http.StatusBadRequest))
			return
		}

		var req models.UpdateStatusRequest
		if err := decode(c, &req); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		report, apiErr := s.ReportService.UpdateStatus(reportID, &req)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Report status updated", http.StatusOK, report, nil)
	}
}

func (s *Server) handleCollectWaste() gin.HandlerFunc {
	return func(c *gin.Context) {
		collectorID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		reportID, err := reportIDParam(c)
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("invalid report id", http.StatusBadRequest))
			return
		}

		collected, apiErr := s.ReportService.CollectWaste(collectorID, reportID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Waste collection recorded", http.StatusCreated, collected, nil)
	}
}
