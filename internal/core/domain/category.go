package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Category is a node in the catalog tree. A nil ParentID marks a root.
type Category struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	ParentID    *string      `json:"-"`
	Parent      *CategoryRef `json:"parentCategory"`
	IsActive    bool         `json:"isActive"`
	DeletedAt   *time.Time   `json:"deletedAt"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// CategoryRef is the populated view of a referenced category.
type CategoryRef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// NormalizeName trims and lowercases catalog names so that uniqueness is
// case-insensitive.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Validate checks field bounds after normalization.
func (c *Category) Validate() error {
	n := utf8.RuneCountInString(c.Name)
	if n == 0 {
		return ErrCategoryNameRequired
	}
	if n > 50 {
		return ErrCategoryNameLength
	}
	return validateDescription(c.Description)
}

func validateDescription(desc string) error {
	n := utf8.RuneCountInString(desc)
	if n == 0 {
		return ErrDescriptionRequired
	}
	if n < 5 || n > 250 {
		return ErrDescriptionLength
	}
	return nil
}
