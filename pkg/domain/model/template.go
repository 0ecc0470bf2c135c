package model

import "time"

// Template is a user-editable release note layout containing {{TOKEN}} markers
type Template struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Content     string    `json:"content"`
	UpdatedAt   time.Time `json:"updatedAt"`
	IsDefault   bool      `json:"isDefault,omitempty"`
}

// Copy returns a shallow copy of the template
func (t *Template) Copy() *Template {
	c := *t
	return &c
}
