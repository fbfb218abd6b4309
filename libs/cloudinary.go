package libs

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// UploadResult carries the media host's serving URL and the identifier
// needed to delete the remote copy.
type UploadResult struct {
	URL      string
	PublicID string
}

// Uploader is the media host surface the product pipeline depends on.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, folder string) (*UploadResult, error)
	Destroy(ctx context.Context, publicID string) error
}

type CloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryUploader() (*CloudinaryUploader, error) {
	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")

	if cloudName == "" || apiKey == "" || apiSecret == "" {
		cldURL := os.Getenv("CLOUDINARY_URL")
		if cldURL == "" {
			return nil, fmt.Errorf("cloudinary environment variables not set")
		}

		cld, err := cloudinary.NewFromURL(cldURL)
		if err != nil {
			return nil, fmt.Errorf("cloudinary init from URL fail: %w", err)
		}
		return &CloudinaryUploader{cld: cld}, nil
	}

	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init from params fail: %w", err)
	}
	return &CloudinaryUploader{cld: cld}, nil
}

func (u *CloudinaryUploader) Upload(ctx context.Context, file io.Reader, folder string) (*UploadResult, error) {
	resp, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID: fmt.Sprintf("product_%d", time.Now().UnixNano()),
		Folder:   folder,
	})
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, fmt.Errorf("cloudinary response is nil")
	}

	url := resp.SecureURL
	if url == "" {
		url = resp.URL
	}
	if url == "" {
		return nil, fmt.Errorf("cloudinary returned no URL for %s", resp.PublicID)
	}

	return &UploadResult{URL: url, PublicID: resp.PublicID}, nil
}

func (u *CloudinaryUploader) Destroy(ctx context.Context, publicID string) error {
	result, err := u.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID: publicID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete from Cloudinary: %w", err)
	}

	if result.Result != "ok" {
		return fmt.Errorf("cloudinary deletion failed: %s", result.Result)
	}

	return nil
}
