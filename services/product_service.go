package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"dorpon-store/config"
	"dorpon-store/libs"
	"dorpon-store/logger"
	"dorpon-store/models"
	"dorpon-store/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type ProductCreateInput struct {
	SellerID    string
	Name        string
	Description string
	Category    string
	Price       float64
	OfferPrice  *float64
}

type ProductService struct {
	products repositories.ProductStore
	uploader libs.Uploader
}

func NewProductService(products repositories.ProductStore, uploader libs.Uploader) *ProductService {
	return &ProductService{products: products, uploader: uploader}
}

// CreateProduct uploads every image to the media host concurrently, then
// persists the product referencing them in submission order. If any step
// fails after images reached the host, the remote copies are deleted
// best-effort and the original failure is reported.
func (s *ProductService) CreateProduct(ctx context.Context, in ProductCreateInput, images []*multipart.FileHeader) (*models.Product, error) {
	uploaded := make([]models.ProductImage, len(images))

	g, gctx := errgroup.WithContext(ctx)
	for i, header := range images {
		g.Go(func() error {
			file, err := header.Open()
			if err != nil {
				return fmt.Errorf("open image %s: %w", header.Filename, err)
			}
			defer file.Close()

			result, err := s.uploader.Upload(gctx, file, config.AppConfig.MediaFolder)
			if err != nil {
				return fmt.Errorf("upload image %s: %w", header.Filename, err)
			}

			uploaded[i] = models.ProductImage{URL: result.URL, PublicID: result.PublicID}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.deleteUploaded(uploaded)
		return nil, err
	}

	product := &models.Product{
		ID:          uuid.NewString(),
		SellerID:    in.SellerID,
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Price:       in.Price,
		OfferPrice:  in.OfferPrice,
		Images:      uploaded,
		CreatedAt:   time.Now(),
	}

	if err := s.products.Create(ctx, product); err != nil {
		s.deleteUploaded(uploaded)
		return nil, err
	}

	return product, nil
}

// deleteUploaded removes remote images left behind by a failed create.
// Runs on a fresh context so a canceled request cannot skip the cleanup.
func (s *ProductService) deleteUploaded(images []models.ProductImage) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, img := range images {
		if img.PublicID == "" {
			continue
		}
		if err := s.uploader.Destroy(ctx, img.PublicID); err != nil {
			logger.Log.Warn("Failed to delete uploaded image",
				zap.String("public_id", img.PublicID),
				zap.Error(err))
		}
	}
}
