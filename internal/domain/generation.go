package domain

import "time"

// GenerationStatus represents the outcome of a generation attempt.
// Values include GenerationStatusSuccess and GenerationStatusFailed.
type GenerationStatus string

const (
	GenerationStatusSuccess GenerationStatus = "success"
	GenerationStatusFailed  GenerationStatus = "failed"
)

// Generation is the audit record persisted for every meme generation attempt,
// whether triggered directly or via a model tool call.
type Generation struct {
	ID           string           `gorm:"type:text;primaryKey" json:"id"`
	TemplateName string           `gorm:"type:text;not null;index:idx_generations_template" json:"template_name"`
	TopText      string           `gorm:"type:text" json:"top_text"`
	BottomText   string           `gorm:"type:text" json:"bottom_text,omitempty"`
	FontSize     int              `json:"font_size"`
	Prompt       string           `gorm:"type:text" json:"prompt,omitempty"`
	Provider     string           `gorm:"type:text" json:"provider,omitempty"`
	Filename     string           `gorm:"type:text" json:"filename,omitempty"`
	StorageKey   string           `gorm:"type:text" json:"storage_key,omitempty"`
	Status       GenerationStatus `gorm:"type:text;index:idx_generations_status" json:"status"`
	ErrorMessage string           `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// TableName returns the database table name for Generation.
// Parameters: none.
// Returns:
//   - string: table name for GORM mapping.
func (Generation) TableName() string {
	return "generations"
}
