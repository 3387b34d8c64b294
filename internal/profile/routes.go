package profile

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRoutes регистрирует маршруты профиля. Группа должна быть закрыта AuthRequired.
func SetupRoutes(r *gin.RouterGroup, store Store, log *zap.Logger) {
	h := NewHandler(store, log)
	r.GET("/:username", h.GetProfile)
	r.POST("/:username/update", h.UpdateProfile)
}
