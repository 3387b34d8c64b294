package profile

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tgcatalog/internal/httputil"
	"tgcatalog/internal/middleware"
	"tgcatalog/models"
	"tgcatalog/pkg/profile"
	"tgcatalog/pkg/storage"
)

// Handler обслуживает форму «Информация о профиле».
type Handler struct {
	Store Store
	Log   *zap.Logger
}

func NewHandler(store Store, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{Store: store, Log: log}
}

type profileResponse struct {
	Username    string       `json:"username"`
	Role        string       `json:"role"`
	AvatarImage string       `json:"avatar_image"`
	Bio         string       `json:"bio"`
	Form        profile.Form `json:"form"`
}

func newProfileResponse(u *models.User) profileResponse {
	return profileResponse{
		Username:    u.Username,
		Role:        u.EffectiveRole(),
		AvatarImage: u.AvatarImage,
		Bio:         u.Bio,
		Form:        profile.FormFromUser(*u),
	}
}

// GetProfile возвращает текущие значения формы профиля.
func (h *Handler) GetProfile(c *gin.Context) {
	username, ok := h.authorize(c)
	if !ok {
		return
	}
	u, err := h.Store.GetUserByUsername(c.Request.Context(), username)
	if errors.Is(err, storage.ErrNotFound) {
		httputil.RespondError(c, http.StatusNotFound, "Пользователь не найден")
		return
	}
	if err != nil {
		h.Log.Error("не удалось загрузить профиль", zap.String("username", username), zap.Error(err))
		httputil.RespondError(c, http.StatusInternalServerError, "db error")
		return
	}
	c.JSON(http.StatusOK, newProfileResponse(u))
}

// UpdateProfile проверяет и сохраняет форму. Ошибки полей возвращаются с кодом 422.
func (h *Handler) UpdateProfile(c *gin.Context) {
	username, ok := h.authorize(c)
	if !ok {
		return
	}
	var form profile.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "invalid data")
		return
	}

	editor := profile.NewEditor(username, form)
	err := editor.Submit(c.Request.Context(), storeSaver{store: h.Store})
	var verr *profile.ValidationError
	switch {
	case errors.As(err, &verr):
		httputil.RespondFieldErrors(c, editor.Errors)
		return
	case errors.Is(err, storage.ErrNotFound):
		httputil.RespondError(c, http.StatusNotFound, "Пользователь не найден")
		return
	case err != nil:
		h.Log.Error("не удалось сохранить профиль", zap.String("username", username), zap.Error(err))
		httputil.RespondError(c, http.StatusInternalServerError, "db error")
		return
	}

	h.Log.Info("профиль обновлён", zap.String("username", username))
	c.JSON(http.StatusOK, gin.H{"status": editor.State.String(), "form": editor.Form})
}

// authorize разрешает доступ к профилю только его владельцу и суперпользователю.
func (h *Handler) authorize(c *gin.Context) (string, bool) {
	if h.Store == nil {
		httputil.RespondNoDB(c)
		return "", false
	}
	username := c.Param("username")
	u, ok := middleware.CurrentUser(c)
	if !ok || (u.Username != username && !u.IsSuperuser) {
		httputil.RespondError(c, http.StatusForbidden, "Доступ запрещён")
		return "", false
	}
	return username, true
}
