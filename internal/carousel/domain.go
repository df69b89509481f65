package carousel

import "time"

// Image is a carousel slide whose file lives on the media CDN.
type Image struct {
	ID        int64     `json:"id"`
	Image     string    `json:"image"`
	PublicID  string    `json:"public_id"`
	Title     string    `json:"title"`
	Caption   string    `json:"caption"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateRequest registers an already uploaded image.
type CreateRequest struct {
	Image    string `json:"image" validate:"required,url"`
	PublicID string `json:"public_id" validate:"max=255"`
	Title    string `json:"title" validate:"max=255"`
	Caption  string `json:"caption" validate:"max=1000"`
}
