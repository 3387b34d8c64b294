package parser

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRoutes регистрирует маршруты парсера. Группа должна быть закрыта AuthRequired и RoleRequired.
func SetupRoutes(r *gin.RouterGroup, svc *Service, log *zap.Logger) {
	h := NewHandler(svc, log)
	r.POST("/parse", h.Parse)
}
