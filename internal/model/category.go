package model

import (
	"errors"
	"strings"
)

var ErrEmptyCategoryLabel = errors.New("model: category label is required")

// Category groups tasks. Color tokens are presentation hints; the icon
// name comes from a fixed symbolic set.
type Category struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Icon   string `json:"icon"`
	Color  string `json:"color"`
	Bg     string `json:"bg"`
	Border string `json:"border"`
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Label) == "" {
		return ErrEmptyCategoryLabel
	}
	return nil
}

// ColorOption is a named presentation token triple for category creation.
type ColorOption struct {
	Name   string
	Color  string
	Bg     string
	Border string
}

// DefaultCategories is the seed set every fresh installation starts with.
func DefaultCategories() []Category {
	return []Category{
		{ID: "work", Label: "Work", Icon: "briefcase", Color: "blue", Bg: "blue-subtle", Border: "blue-border"},
		{ID: "personal", Label: "Personal", Icon: "user", Color: "purple", Bg: "purple-subtle", Border: "purple-border"},
		{ID: "home", Label: "Home", Icon: "home", Color: "emerald", Bg: "emerald-subtle", Border: "emerald-border"},
		{ID: "shopping", Label: "Shopping", Icon: "shopping", Color: "pink", Bg: "pink-subtle", Border: "pink-border"},
	}
}

// ColorOptions is the palette offered when creating a category.
func ColorOptions() []ColorOption {
	names := []string{"Blue", "Purple", "Emerald", "Pink", "Orange", "Indigo", "Red", "Yellow", "Cyan", "Gray"}
	out := make([]ColorOption, 0, len(names))
	for _, name := range names {
		tone := strings.ToLower(name)
		out = append(out, ColorOption{
			Name:   name,
			Color:  tone,
			Bg:     tone + "-subtle",
			Border: tone + "-border",
		})
	}
	return out
}
