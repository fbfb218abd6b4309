package api

import (
	"net/http"
	"sync"

	"dorpon-store/config"
	"dorpon-store/logger"
	"dorpon-store/middleware"
	"dorpon-store/models"
	"dorpon-store/routes"

	"github.com/gin-gonic/gin"
)

var (
	router *gin.Engine
	once   sync.Once
)

func initApp() {
	once.Do(func() {
		gin.SetMode(gin.ReleaseMode)

		config.LoadConfig()
		logger.Initialize(config.AppConfig.AppEnv)

		models.InitDB()
		models.InitRedis()

		router = gin.New()
		router.Use(gin.Recovery())
		router.Use(logger.RequestLogger())
		router.Use(middleware.CORSMiddleware())

		routes.SetupRoutes(router)
	})
}

func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	router.ServeHTTP(w, r)
}
