package proof

import (
	"context"
	"io"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	cldcfg "github.com/cloudinary/cloudinary-go/v2/config"
	"github.com/google/uuid"
)

const proofFolder = "fundilink/funding-proofs"

// CloudinaryStore uploads proof images to Cloudinary and returns the secure URL.
type CloudinaryStore struct {
	uploader *uploader.API
}

// NewCloudinaryStore builds a store from Cloudinary credentials.
func NewCloudinaryStore(cloudName, apiKey, apiSecret string) (*CloudinaryStore, error) {
	cfg, err := cldcfg.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	up, err := uploader.NewWithConfiguration(cfg)
	if err != nil {
		return nil, err
	}
	return &CloudinaryStore{uploader: up}, nil
}

// Save uploads the image under a per-owner folder with a random public ID.
func (s *CloudinaryStore) Save(ctx context.Context, ownerID, _ string, r io.Reader) (string, error) {
	publicID := "proof_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	result, err := s.uploader.Upload(ctx, r, uploader.UploadParams{
		Folder:   proofFolder + "/" + ownerID,
		PublicID: publicID,
	})
	if err != nil {
		return "", err
	}
	return result.SecureURL, nil
}
