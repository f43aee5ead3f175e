package types

import (
	"errors"
	"strings"
)

// Category validation errors.
var (
	ErrPrefixEmpty      = errors.New("category prefix must not be empty")
	ErrNameEmpty        = errors.New("category name must not be empty")
	ErrCategoryNotFound = errors.New("category not found")
)

// Category classifies inventory items by barcode prefix. The prefix is the
// lookup key and is always stored uppercase; Name is the human-readable label
// and may contain non-ASCII characters. Description and Color are display
// metadata only.
type Category struct {
	Name        string `json:"name" yaml:"name"`
	Prefix      string `json:"prefix" yaml:"prefix"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Color       string `json:"color,omitempty" yaml:"color,omitempty"`
}

// Validate checks that the category is well-formed. It returns a sentinel
// error from this package on failure.
func (c Category) Validate() error {
	if strings.TrimSpace(c.Prefix) == "" {
		return ErrPrefixEmpty
	}
	if strings.TrimSpace(c.Name) == "" {
		return ErrNameEmpty
	}
	return nil
}

// DefaultCategories returns the category set seeded on first run: the eight
// surgical instrument departments the tracker ships with.
func DefaultCategories() []Category {
	return []Category{
		{Name: "Käkkirurgi", Prefix: "KÄKX", Description: "Käkkirurgiska instrument", Color: "#3B82F6"},
		{Name: "Ortopedi", Prefix: "ORTO", Description: "Ortopediska instrument", Color: "#10B981"},
		{Name: "Kardio", Prefix: "CARD", Description: "Kardiovaskulära instrument", Color: "#EF4444"},
		{Name: "Neuro", Prefix: "NEUR", Description: "Neurokirurgiska instrument", Color: "#8B5CF6"},
		{Name: "Allmän Kirurgi", Prefix: "ALLM", Description: "Allmänkirurgiska instrument", Color: "#F59E0B"},
		{Name: "Plastik", Prefix: "PLAS", Description: "Plastikkirurgiska instrument", Color: "#EC4899"},
		{Name: "Urologi", Prefix: "UROL", Description: "Urologiska instrument", Color: "#06B6D4"},
		{Name: "Gynekologi", Prefix: "GYNE", Description: "Gynekologiska instrument", Color: "#84CC16"},
	}
}

// DefaultTriggers returns the trigger codes seeded on first run.
func DefaultTriggers() []string {
	return []string{"SCAN_START", "ACTIVATE", "TRIGGER", "START_SCAN"}
}
