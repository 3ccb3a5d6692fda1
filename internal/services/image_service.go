package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"qrdine/internal/common"
	"qrdine/internal/logger"

	"github.com/google/uuid"
)

const MaxImageSize = 5 << 20

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ImageService stores menu images and hands back a public URL
type ImageService interface {
	Upload(ctx context.Context, restaurantID int64, data []byte) (string, error)
}

type imageService struct {
	storage MinioService
	bucket  string
	baseURL string
	log     *logger.Logger
}

// NewImageService takes the public URL under which the bucket's objects are served
func NewImageService(storage MinioService, bucket, publicBaseURL string, log *logger.Logger) ImageService {
	if log == nil {
		log = logger.Nop()
	}
	return &imageService{
		storage: storage,
		bucket:  bucket,
		baseURL: strings.TrimRight(publicBaseURL, "/"),
		log:     log,
	}
}

// Upload sniffs the content type rather than trusting the client's header
func (s *imageService) Upload(ctx context.Context, restaurantID int64, data []byte) (string, error) {
	if len(data) == 0 || len(data) > MaxImageSize {
		return "", fmt.Errorf("%w: size must be between 1 byte and %d bytes", common.ErrInvalidImage, MaxImageSize)
	}
	contentType := http.DetectContentType(data)
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", fmt.Errorf("%w: unsupported content type %s", common.ErrInvalidImage, contentType)
	}

	objectName := fmt.Sprintf("restaurants/%d/%s%s", restaurantID, uuid.New().String(), ext)
	if err := s.storage.UploadObject(ctx, s.bucket, objectName, contentType, bytes.NewReader(data), int64(len(data))); err != nil {
		return "", common.SecureErrorMessage("upload image", err)
	}

	s.log.Info("image_uploaded", common.GetRequestIDFromContext(ctx), "image stored",
		slog.Int64("restaurant_id", restaurantID), slog.String("object", objectName))
	return s.baseURL + "/" + objectName, nil
}
