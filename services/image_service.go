package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/kendall-kelly/stock-api/utils"
)

// ImageService stores product images
type ImageService interface {
	// UploadProductImage validates and stores an image for a product and returns its storage key
	UploadProductImage(ctx context.Context, productID uint, fileHeader *multipart.FileHeader) (string, error)

	// GetImageURL returns a URL the image can be fetched from
	GetImageURL(ctx context.Context, imageKey string) (string, error)

	// DeleteImage removes an image; an empty key is a no-op
	DeleteImage(ctx context.Context, imageKey string) error
}

// ObjectImageService implements ImageService on top of an ObjectStore
type ObjectImageService struct {
	store ObjectStore
}

// NewImageService creates an image service writing to store
func NewImageService(store ObjectStore) *ObjectImageService {
	return &ObjectImageService{store: store}
}

// UploadProductImage stores the file under products/<id>/<uuid>.png
func (s *ObjectImageService) UploadProductImage(ctx context.Context, productID uint, fileHeader *multipart.FileHeader) (string, error) {
	if err := utils.ValidateImageFile(fileHeader); err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	key := fmt.Sprintf("products/%d/%s%s", productID, uuid.NewString(), utils.AllowedImageFormat)
	if err := s.store.PutObject(ctx, key, file, utils.ImageContentType); err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return key, nil
}

// GetImageURL generates a presigned URL for an image
func (s *ObjectImageService) GetImageURL(ctx context.Context, imageKey string) (string, error) {
	if imageKey == "" {
		return "", nil
	}

	url, err := s.store.PresignGet(ctx, imageKey)
	if err != nil {
		return "", fmt.Errorf("failed to generate image URL: %w", err)
	}

	return url, nil
}

func (s *ObjectImageService) DeleteImage(ctx context.Context, imageKey string) error {
	if imageKey == "" {
		return nil
	}

	if err := s.store.DeleteObject(ctx, imageKey); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}

	return nil
}
