package event

import (
	"time"
)

// Template identifiers form a closed set; anything else falls back to
// the baseline template at render time.
const (
	TemplateClassic   = "classic"
	TemplateEditorial = "editorial"
	TemplateNoir      = "noir"
)

// Event represents one wedding event (a tenant). ID doubles as the
// URL slug.
type Event struct {
	ID            string    `db:"id" json:"id"`
	Title         string    `db:"title" json:"title"`
	Description   string    `db:"description" json:"description"`
	Date          time.Time `db:"date" json:"date"`
	CoverImageURL string    `db:"cover_image_url" json:"cover_image_url"`
	TemplateID    string    `db:"template_id" json:"template_id"`
	FolderName    string    `db:"folder_name" json:"folder_name"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// Folder returns the media store folder for this event, defaulting to
// the event id when no explicit folder is set.
func (e *Event) Folder() string {
	if e.FolderName != "" {
		return e.FolderName
	}
	return e.ID
}
