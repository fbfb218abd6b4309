package controllers

import (
	"context"
	"encoding/json"
	"math"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"dorpon-store/config"
	"dorpon-store/models"
	"dorpon-store/repositories"
	"dorpon-store/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const productListCacheKey = "product_list"

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// productCreator is what AddProduct needs from the service layer.
type productCreator interface {
	CreateProduct(ctx context.Context, in services.ProductCreateInput, images []*multipart.FileHeader) (*models.Product, error)
}

type ProductController struct {
	creator  productCreator
	products repositories.ProductStore
	cache    *redis.Client
}

func NewProductController(creator productCreator, products repositories.ProductStore, cache *redis.Client) *ProductController {
	return &ProductController{creator: creator, products: products, cache: cache}
}

func (ctrl *ProductController) invalidateProductCache() {
	if ctrl.cache == nil {
		return
	}
	ctrl.cache.Del(context.Background(), productListCacheKey)
}

// @Summary Add product
// @Description Upload a new product with images (Seller)
// @Tags Products
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Product name"
// @Param description formData string true "Product description"
// @Param category formData string true "Product category"
// @Param price formData number true "Product price"
// @Param offerPrice formData number false "Discounted price"
// @Param images formData file true "Product images (at least one)"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /product/add [post]
func (ctrl *ProductController) AddProduct(c *gin.Context) {
	sellerID := c.GetString("user_id")

	name := strings.TrimSpace(c.PostForm("name"))
	description := strings.TrimSpace(c.PostForm("description"))
	category := strings.TrimSpace(c.PostForm("category"))
	priceStr := c.PostForm("price")
	offerPriceStr := c.PostForm("offerPrice")

	if name == "" || description == "" || category == "" || priceStr == "" {
		c.JSON(400, gin.H{"success": false, "message": "Missing required fields"})
		return
	}

	if !models.IsValidCategory(category) {
		c.JSON(400, gin.H{"success": false, "message": "Unknown category: " + category})
		return
	}

	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		c.JSON(400, gin.H{"success": false, "message": "Invalid price value"})
		return
	}

	var offerPrice *float64
	if offerPriceStr != "" {
		parsed, err := strconv.ParseFloat(offerPriceStr, 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) || parsed < 0 {
			c.JSON(400, gin.H{"success": false, "message": "Invalid offer price value"})
			return
		}
		if parsed > price {
			c.JSON(400, gin.H{"success": false, "message": "Offer price cannot exceed price"})
			return
		}
		offerPrice = &parsed
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid multipart form"})
		return
	}

	images := form.File["images"]
	if len(images) == 0 {
		c.JSON(400, gin.H{"success": false, "message": "Please upload at least one image"})
		return
	}

	for _, header := range images {
		if !allowedImageTypes[header.Header.Get("Content-Type")] {
			c.JSON(400, gin.H{"success": false, "message": "Only JPEG, PNG, and GIF images are allowed"})
			return
		}
		if header.Size > config.AppConfig.MaxUploadSize {
			c.JSON(400, gin.H{"success": false, "message": "File size must be less than 5MB"})
			return
		}
	}

	product, err := ctrl.creator.CreateProduct(c.Request.Context(), services.ProductCreateInput{
		SellerID:    sellerID,
		Name:        name,
		Description: description,
		Category:    category,
		Price:       price,
		OfferPrice:  offerPrice,
	}, images)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to create product: " + err.Error()})
		return
	}

	ctrl.invalidateProductCache()

	c.JSON(201, gin.H{"success": true, "message": "Product uploaded successfully", "data": product})
}

// @Summary List seller products
// @Description Get all products owned by the authenticated seller
// @Tags Products
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /product/seller-list [get]
func (ctrl *ProductController) SellerProducts(c *gin.Context) {
	sellerID := c.GetString("user_id")

	products, err := ctrl.products.FindBySeller(c.Request.Context(), sellerID)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to retrieve products"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Products retrieved", "data": products})
}

// @Summary List products
// @Description Get the public product catalog
// @Tags Products
// @Produce json
// @Success 200 {object} models.Response
// @Router /product/list [get]
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	ctx := c.Request.Context()

	if ctrl.cache != nil {
		cached, err := ctrl.cache.Get(ctx, productListCacheKey).Result()
		if err == nil {
			c.Data(200, "application/json", []byte(cached))
			return
		}
	}

	products, err := ctrl.products.FindAll(ctx)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to retrieve products"})
		return
	}

	response := gin.H{"success": true, "message": "Products retrieved", "data": products}

	if ctrl.cache != nil {
		jsonData, _ := json.Marshal(response)
		ctrl.cache.Set(ctx, productListCacheKey, string(jsonData), 5*time.Minute)
	}

	c.JSON(200, response)
}
