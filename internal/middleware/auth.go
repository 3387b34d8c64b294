package middleware

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tgcatalog/internal/httputil"
	"tgcatalog/models"
	"tgcatalog/pkg/storage"
)

// UsernameHeader — заголовок, которым клиент с токеном представляется пользователем.
const UsernameHeader = "X-Username"

const userKey = "user"

// UserLookup ищет пользователя по username.
type UserLookup interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// AuthRequired проверяет статичный Bearer-токен и загружает пользователя из X-Username.
// Пустой токен в конфигурации закрывает все защищённые маршруты.
func AuthRequired(token string, users UserLookup, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	expected := []byte("Bearer " + token)
	return func(c *gin.Context) {
		got := []byte(c.GetHeader("Authorization"))
		if token == "" || subtle.ConstantTimeCompare(got, expected) != 1 {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		username := strings.TrimSpace(c.GetHeader(UsernameHeader))
		if username == "" || users == nil {
			c.Next()
			return
		}
		u, err := users.GetUserByUsername(c.Request.Context(), username)
		if errors.Is(err, storage.ErrNotFound) {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		if err != nil {
			log.Error("не удалось загрузить пользователя", zap.String("username", username), zap.Error(err))
			httputil.RespondError(c, http.StatusInternalServerError, "db error")
			return
		}
		c.Set(userKey, u)
		c.Next()
	}
}

// CurrentUser возвращает пользователя, загруженного AuthRequired.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*models.User)
	return u, ok && u != nil
}

// Role возвращает роль текущего запроса: guest без пользователя.
func Role(c *gin.Context) string {
	u, ok := CurrentUser(c)
	if !ok {
		return models.RoleGuest
	}
	return u.EffectiveRole()
}

// RoleRequired пропускает только пользователей с одной из ролей. Суперпользователь проходит всегда.
func RoleRequired(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if u, ok := CurrentUser(c); ok && u.IsSuperuser {
			c.Next()
			return
		}
		role := Role(c)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		httputil.RespondError(c, http.StatusForbidden, "Доступ запрещён")
	}
}
