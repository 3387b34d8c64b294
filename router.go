package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapi "tgcatalog/internal/catalog"
	"tgcatalog/internal/middleware"
	parserapi "tgcatalog/internal/parser"
	profileapi "tgcatalog/internal/profile"
	"tgcatalog/models"
	"tgcatalog/pkg/storage"
)

// routerDeps — зависимости маршрутов. DB и Parser могут отсутствовать.
type routerDeps struct {
	DB     *storage.DB
	Parser *parserapi.Service
	Token  string
	Log    *zap.Logger
}

// Настройка маршрутов
func setupRouter(d routerDeps) *gin.Engine {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.AccessLog(d.Log.Named("http")), gin.Recovery())

	// nil-указатель на DB нельзя передавать в интерфейсы: обработчики проверяют именно nil
	var (
		channels catalogapi.ChannelSource
		users    middleware.UserLookup
		profiles profileapi.Store
	)
	if d.DB != nil {
		channels, users, profiles = d.DB, d.DB, d.DB
	}

	catalogapi.SetupRoutes(r.Group("/channels"), channels, d.Log.Named("catalog"))

	userGroup := r.Group("/users", middleware.AuthRequired(d.Token, users, d.Log.Named("auth")))
	profileapi.SetupRoutes(userGroup, profiles, d.Log.Named("profile"))

	parserGroup := r.Group("/parser",
		middleware.AuthRequired(d.Token, users, d.Log.Named("auth")),
		middleware.RoleRequired(models.RolePartner),
	)
	parserapi.SetupRoutes(parserGroup, d.Parser, d.Log.Named("parser"))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "database": d.DB != nil, "parser": d.Parser != nil})
	})

	for _, route := range r.Routes() {
		d.Log.Debug("маршрут", zap.String("method", route.Method), zap.String("path", route.Path))
	}
	return r
}
