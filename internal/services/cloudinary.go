package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"

	"github.com/Shubham-7300/Portfolio-Backend/internal/models"
)

type CloudinaryService struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryService(cloudName, apiKey, apiSecret string) (*CloudinaryService, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}

	return &CloudinaryService{
		cld: cld,
	}, nil
}

// UploadFile stores a file under folder and returns its public id and URL.
func (s *CloudinaryService) UploadFile(ctx context.Context, file multipart.File, folder string) (models.MediaRef, error) {
	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return models.MediaRef{}, fmt.Errorf("failed to read file: %w", err)
	}

	uploadResult, err := s.cld.Upload.Upload(ctx, fileBytes, uploader.UploadParams{
		Folder:       folder,
		PublicID:     uuid.NewString(),
		ResourceType: "auto", // Automatically detect image, video, or raw
	})
	if err != nil {
		return models.MediaRef{}, fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}

	return models.MediaRef{
		PublicID: uploadResult.PublicID,
		URL:      uploadResult.SecureURL,
	}, nil
}

// UploadFileFromHeader opens the multipart part and uploads it.
func (s *CloudinaryService) UploadFileFromHeader(ctx context.Context, fileHeader *multipart.FileHeader, folder string) (models.MediaRef, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return models.MediaRef{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return s.UploadFile(ctx, file, folder)
}

// Destroy removes a previously uploaded object by public id.
func (s *CloudinaryService) Destroy(ctx context.Context, publicID string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("failed to destroy Cloudinary asset %s: %w", publicID, err)
	}
	return nil
}
