package models

// Group — подборка каналов. Автоподборки создаются по одной на категорию.
type Group struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	IsEditorial bool   `json:"is_editorial"`
	Order       int    `json:"order"`
	OwnerID     int64  `json:"owner_id"`
}

// AutoGroupRule связывает автоподборку с категорией каналов.
type AutoGroupRule struct {
	ID       int    `json:"id"`
	GroupID  int    `json:"group_id"`
	Category string `json:"category"`
}
