package helper

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

func (c CloudinaryConfig) Enabled() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

// ImageUploader stores an image and returns its public URL.
type ImageUploader interface {
	Upload(ctx context.Context, file io.Reader, folder, publicID string) (string, error)
}

type CloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

func InitCloudinary(cfg CloudinaryConfig) (*CloudinaryUploader, error) {
	if !cfg.Enabled() {
		return nil, ErrUploadNotConfigured
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &CloudinaryUploader{cld: cld}, nil
}

func (u *CloudinaryUploader) Upload(ctx context.Context, file io.Reader, folder, publicID string) (string, error) {
	result, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       folder,
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	return result.SecureURL, nil
}

type UploadSignature struct {
	Signature string `json:"signature"`
	Timestamp int64  `json:"timestamp"`
	APIKey    string `json:"apiKey"`
	CloudName string `json:"cloudName"`
	Folder    string `json:"folder"`
	PublicID  string `json:"publicId,omitempty"`
}

// SignUpload signs folder, public_id and timestamp for a direct browser upload.
func SignUpload(cfg CloudinaryConfig, folder, publicID string, now time.Time) (UploadSignature, error) {
	if !cfg.Enabled() {
		return UploadSignature{}, ErrUploadNotConfigured
	}
	timestamp := now.Unix()

	params := url.Values{}
	params.Set("timestamp", strconv.FormatInt(timestamp, 10))
	if folder != "" {
		params.Set("folder", folder)
	}
	if publicID != "" {
		params.Set("public_id", publicID)
	}
	signature, err := api.SignParameters(params, cfg.APISecret)
	if err != nil {
		return UploadSignature{}, fmt.Errorf("cloudinary sign: %w", err)
	}

	return UploadSignature{
		Signature: signature,
		Timestamp: timestamp,
		APIKey:    cfg.APIKey,
		CloudName: cfg.CloudName,
		Folder:    folder,
		PublicID:  publicID,
	}, nil
}

// RestaurantMediaFolder keeps each tenant's uploads apart.
func RestaurantMediaFolder(restaurantID uint, kind string) string {
	return fmt.Sprintf("restaurants/%d/%s", restaurantID, kind)
}
