package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RespondError отправляет сообщение об ошибке в едином формате и прекращает обработку запроса.
// Используем AbortWithStatusJSON, чтобы последующие обработчики не выполнялись, даже если забыли вернуть управление.
func RespondError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// RespondFieldErrors возвращает ошибки полей формы со статусом 422.
func RespondFieldErrors(c *gin.Context, errs map[string]string) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
}

// RespondNoDB сообщает, что операции нужна база данных, а она не подключена.
func RespondNoDB(c *gin.Context) {
	RespondError(c, http.StatusServiceUnavailable, "База данных не подключена")
}
