package models

// Роли пользователя. Партнёр определяется активным партнёрским профилем.
const (
	RoleGuest   = "guest"
	RoleUser    = "user"
	RolePartner = "partner"
)

// Статусы партнёрского профиля.
const (
	PartnerActive    = "active"
	PartnerPending   = "pending"
	PartnerRejected  = "rejected"
	PartnerSuspended = "suspended"
)

type User struct {
	ID            int64  `json:"id"`
	Username      string `json:"username"`
	FirstName     string `json:"first_name"`
	Email         string `json:"email"`
	Company       string `json:"company"`
	Role          string `json:"role"`
	AvatarImage   string `json:"avatar_image"`
	Bio           string `json:"bio"`
	IsSuperuser   bool   `json:"is_superuser"`
	PartnerStatus string `json:"partner_status"`
}

// EffectiveRole возвращает роль авторизованного пользователя:
// партнёр при активном партнёрском профиле, иначе обычный пользователь.
func (u User) EffectiveRole() string {
	if u.PartnerStatus == PartnerActive {
		return RolePartner
	}
	return RoleUser
}
