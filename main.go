// @title DORPON Store API
// @version 1.0
// @description E-commerce storefront backend: catalog, cart, seller uploads, identity sync.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"dorpon-store/config"
	_ "dorpon-store/docs"
	"dorpon-store/logger"
	"dorpon-store/middleware"
	"dorpon-store/models"
	"dorpon-store/routes"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger.Initialize(config.AppConfig.AppEnv)
	defer logger.Log.Sync()

	if config.AppConfig.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	models.InitDB()
	defer models.CloseDB()

	models.InitRedis()
	defer models.CloseRedis()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.RequestLogger())
	router.Use(middleware.CORSMiddleware())
	routes.SetupRoutes(router)

	port := ":" + config.AppConfig.Port
	logger.Log.Info("Server starting",
		zap.String("port", config.AppConfig.Port),
		zap.String("env", config.AppConfig.AppEnv))

	if err := router.Run(port); err != nil {
		logger.Log.Fatal("Failed to start server", zap.Error(err))
	}
}
