package catalog

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRoutes регистрирует маршруты каталога.
func SetupRoutes(r *gin.RouterGroup, src ChannelSource, log *zap.Logger) {
	h := NewHandler(src, log)
	r.GET("", h.GetPage)
	r.GET("/categories", h.GetCategories)
	r.GET("/category/:name", h.GetCategory)
}
