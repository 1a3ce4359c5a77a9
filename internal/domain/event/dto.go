package event

import "time"

// CreateRequest is the admin payload for creating an event
type CreateRequest struct {
	ID            string    `json:"id" validate:"required,slug,max=64"`
	Title         string    `json:"title" validate:"required,max=200"`
	Description   string    `json:"description" validate:"max=2000"`
	Date          time.Time `json:"date" validate:"required"`
	CoverImageURL string    `json:"cover_image_url" validate:"omitempty,url"`
	TemplateID    string    `json:"template_id" validate:"template"`
	FolderName    string    `json:"folder_name" validate:"omitempty,max=128"`
}

// UpdateRequest is the admin payload for updating an event
type UpdateRequest struct {
	Title         string    `json:"title" validate:"required,max=200"`
	Description   string    `json:"description" validate:"max=2000"`
	Date          time.Time `json:"date" validate:"required"`
	CoverImageURL string    `json:"cover_image_url" validate:"omitempty,url"`
	TemplateID    string    `json:"template_id" validate:"template"`
	FolderName    string    `json:"folder_name" validate:"omitempty,max=128"`
}
