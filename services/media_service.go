package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	fig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/nfnt/resize"
	"github.com/wasteeasy/api/config"
)

const MaxImageFileSize = 10 * 1024 * 1024 // 10 MB

// MediaService uploads report photos. Each photo is stored twice: a
// feed-sized square crop and a small thumbnail.
type MediaService interface {
	UploadReportImage(ctx context.Context, imageBytes []byte, userID uint) (string, string, error)
	UploadReportImageFile(ctx context.Context, mediaFile *multipart.FileHeader, userID uint) (string, string, error)
	DecodeDataURL(dataURL string) ([]byte, error)
}

type mediaService struct {
	Config *config.Config
}

func NewMediaService(conf *config.Config) MediaService {
	return &mediaService{Config: conf}
}

// DecodeDataURL strips an optional "data:image/...;base64," prefix and decodes
// the payload.
func (m *mediaService) DecodeDataURL(dataURL string) ([]byte, error) {
	payload := dataURL
	if strings.HasPrefix(payload, "data:") {
		idx := strings.Index(payload, ",")
		if idx < 0 {
			return nil, fmt.Errorf("malformed data URL")
		}
		payload = payload[idx+1:]
	}
	imageBytes, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image data: %v", err)
	}
	return imageBytes, nil
}

// UploadReportImageFile reads a multipart upload and stores it like
// UploadReportImage.
func (m *mediaService) UploadReportImageFile(ctx context.Context, mediaFile *multipart.FileHeader, userID uint) (string, string, error) {
	if mediaFile.Size > MaxImageFileSize {
		return "", "", fmt.Errorf("image file size exceeds limit")
	}

	file, err := mediaFile.Open()
	if err != nil {
		return "", "", fmt.Errorf("unable to open media file: %v", err)
	}
	defer file.Close()

	imageBytes, err := io.ReadAll(file)
	if err != nil {
		return "", "", fmt.Errorf("failed to read file: %v", err)
	}

	return m.UploadReportImage(ctx, imageBytes, userID)
}

// UploadReportImage validates, resizes and uploads one photo, returning the
// feed URL and thumbnail URL.
func (m *mediaService) UploadReportImage(ctx context.Context, imageBytes []byte, userID uint) (string, string, error) {
	if len(imageBytes) > MaxImageFileSize {
		return "", "", fmt.Errorf("image file size exceeds limit")
	}
	contentType := http.DetectContentType(imageBytes)
	if !strings.HasPrefix(contentType, "image") {
		return "", "", fmt.Errorf("unsupported file type: %s", contentType)
	}

	img, _, err := image.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return "", "", fmt.Errorf("failed to decode image: %v", err)
	}

	feedImg := imaging.Fill(img, 1080, 1080, imaging.Center, imaging.Lanczos)
	thumbnailImg := resize.Resize(200, 0, img, resize.Lanczos3)

	var feedBuf, thumbnailBuf bytes.Buffer
	if err := jpeg.Encode(&feedBuf, feedImg, nil); err != nil {
		return "", "", fmt.Errorf("failed to encode feed image: %v", err)
	}
	if err := jpeg.Encode(&thumbnailBuf, thumbnailImg, nil); err != nil {
		return "", "", fmt.Errorf("failed to encode thumbnail image: %v", err)
	}

	uniqueID := fmt.Sprintf("%s_%d", uuid.New().String(), time.Now().UnixNano())
	feedKey := fmt.Sprintf("media/%d_%s.jpg", userID, uniqueID)
	thumbnailKey := fmt.Sprintf("media/%d_%s_thumbnail.jpg", userID, uniqueID)

	feedURL, err := m.putObject(ctx, feedKey, feedBuf.Bytes())
	if err != nil {
		return "", "", fmt.Errorf("failed to upload feed image: %v", err)
	}
	thumbnailURL, err := m.putObject(ctx, thumbnailKey, thumbnailBuf.Bytes())
	if err != nil {
		return "", "", fmt.Errorf("failed to upload thumbnail: %v", err)
	}

	log.Printf("Successfully stored images: feed=%s, thumbnail=%s", feedURL, thumbnailURL)
	return feedURL, thumbnailURL, nil
}

func (m *mediaService) putObject(ctx context.Context, fileKey string, body []byte) (string, error) {
	bucketName := m.Config.AwsBucket
	if bucketName == "" {
		return "", fmt.Errorf("S3 bucket name is not configured")
	}

	cfg, err := fig.LoadDefaultConfig(ctx,
		fig.WithRegion(m.Config.AwsRegion),
		fig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(os.Getenv("AWS_ACCESS_KEY_ID"), os.Getenv("AWS_SECRET_ACCESS_KEY"), ""),
		),
	)
	if err != nil {
		return "", fmt.Errorf("unable to load AWS config: %v", err)
	}

	svc := s3.NewFromConfig(cfg)
	_, err = svc.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucketName),
		Key:         aws.String(fileKey),
		Body:        bytes.NewReader(body),
		ACL:         "public-read",
		ContentType: aws.String("image/jpeg"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %v", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucketName, m.Config.AwsRegion, fileKey), nil
}
