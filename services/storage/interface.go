package storage

import (
	"context"

	"github.com/cloudinary/cloudinary-go/v2"
)

// StorageService accepts uploaded documents and returns stable references.
type StorageService interface {
	// UploadFile uploads a local file into the destination folder and
	// returns its permanent identifier.
	UploadFile(ctx context.Context, localFilePath, destFolder string) (string, error)
	// DeleteFile removes a previously uploaded file.
	DeleteFile(ctx context.Context, publicID string) error
}

// StorageServiceImpl implements StorageService using Cloudinary.
type StorageServiceImpl struct {
	cld *cloudinary.Cloudinary
}
