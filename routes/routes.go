package routes

import (
	"dorpon-store/controllers"
	"dorpon-store/libs"
	"dorpon-store/logger"
	"dorpon-store/middleware"
	"dorpon-store/models"
	"dorpon-store/repositories"
	"dorpon-store/services"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

func SetupRoutes(router *gin.Engine) {
	users := repositories.NewUserRepository(models.DB)
	products := repositories.NewProductRepository(models.DB)

	uploader, err := libs.NewCloudinaryUploader()
	if err != nil {
		logger.Log.Fatal("Cloudinary init failed", zap.Error(err))
	}

	productSvc := services.NewProductService(products, uploader)

	productCtrl := controllers.NewProductController(productSvc, products, models.RedisClient)
	cartCtrl := controllers.NewCartController(users)
	userCtrl := controllers.NewUserController(users)
	webhookCtrl := controllers.NewWebhookController(users)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	router.GET("/product/list", productCtrl.ListProducts)
	router.POST("/webhooks/identity", webhookCtrl.HandleIdentityEvent)

	auth := router.Group("/")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.GET("/user/data", userCtrl.GetUserData)
		auth.GET("/cart", cartCtrl.GetCart)
		auth.POST("/cart/update", cartCtrl.UpdateCart)
		auth.POST("/cart/add", cartCtrl.AddItem)
		auth.POST("/cart/item", cartCtrl.SetItem)
	}

	seller := router.Group("/product")
	seller.Use(middleware.AuthMiddleware(), middleware.SellerMiddleware())
	{
		seller.POST("/add", productCtrl.AddProduct)
		seller.GET("/seller-list", productCtrl.SellerProducts)
	}
}
