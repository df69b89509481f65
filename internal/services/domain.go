package services

// Service is a guidance service with its step-by-step content.
type Service struct {
	ID           int64  `json:"service_id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Description2 string `json:"description2"`
	Video        string `json:"video"`
	Content      string `json:"content,omitempty"`
}

// CreateRequest is the payload for adding a service.
type CreateRequest struct {
	Name         string  `json:"name" validate:"required,max=255"`
	Description  string  `json:"description"`
	Description2 string  `json:"description2"`
	Video        string  `json:"video" validate:"omitempty,url"`
	Content      Content `json:"content"`
}

// UpdateRequest is the payload for editing a service.
type UpdateRequest struct {
	Name         string  `json:"name" validate:"required,max=255"`
	Description  string  `json:"description"`
	Description2 string  `json:"description2"`
	Content      Content `json:"content"`
}
