package server

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	errs "github.com/wasteeasy/api/errors"
	"github.com/wasteeasy/api/gemini"
	"github.com/wasteeasy/api/server/response"
)

// readImageUpload reads the multipart "image" field and returns its bytes and
// content type.
func readImageUpload(c *gin.Context) ([]byte, string, error) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	imageBytes, err := io.ReadAll(file)
	if err != nil {
		return nil, "", err
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(imageBytes)
	}
	return imageBytes, mimeType, nil
}

func classifyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gemini.ErrParse):
		response.JSON(c, "classifier returned an unreadable result, try a clearer photo", http.StatusUnprocessableEntity, nil, err)
	case errors.Is(err, gemini.ErrService):
		response.JSON(c, "classification service unavailable", http.StatusBadGateway, nil, err)
	default:
		log.Printf("classification error: %v", err)
		response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
	}
}

func (s *Server) handleClassifyWaste() gin.HandlerFunc {
	return func(c *gin.Context) {
		imageBytes, mimeType, err := readImageUpload(c)
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("missing or invalid image file", http.StatusBadRequest))
			return
		}

		result, err := s.GeminiClient.Classify(c.Request.Context(), imageBytes, mimeType)
		if err != nil {
			classifyError(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, result, nil)
	}
}

func (s *Server) handleClassifyContamination() gin.HandlerFunc {
	return func(c *gin.Context) {
		imageBytes, mimeType, err := readImageUpload(c)
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("missing or invalid image file", http.StatusBadRequest))
			return
		}

		targetBin := c.PostForm("target_bin")
		if targetBin == "" {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("target_bin is required", http.StatusBadRequest))
			return
		}

		result, err := s.GeminiClient.ClassifyContamination(c.Request.Context(), imageBytes, mimeType, targetBin)
		if err != nil {
			classifyError(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, result, nil)
	}
}
