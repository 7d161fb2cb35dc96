package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Category is one selectable tag
type Category struct {
	Key   string `mapstructure:"key" yaml:"key"`
	Label string `mapstructure:"label" yaml:"label"`
}

// CategorySet is the fixed, ordered enumeration of categories.
// The zero value is empty; build one with NewCategorySet.
type CategorySet struct {
	items []Category
}

// DefaultCategories is the category list used when no config overrides it
var DefaultCategories = []Category{
	{Key: "street", Label: "Street"},
	{Key: "nature", Label: "Nature"},
	{Key: "conceptual", Label: "Conceptual"},
	{Key: "monochrome", Label: "Monochrome"},
}

// NewCategorySet copies items into an immutable set. Keys must be non-empty and unique.
func NewCategorySet(items []Category) (CategorySet, error) {
	seen := make(map[string]bool, len(items))
	copied := make([]Category, 0, len(items))
	for i, c := range items {
		if c.Key == "" {
			return CategorySet{}, fmt.Errorf("category %d has an empty key", i)
		}
		if seen[c.Key] {
			return CategorySet{}, fmt.Errorf("duplicate category key: %s", c.Key)
		}
		seen[c.Key] = true
		if c.Label == "" {
			c.Label = c.Key
		}
		copied = append(copied, c)
	}
	return CategorySet{items: copied}, nil
}

// MustCategorySet is NewCategorySet for static lists
func MustCategorySet(items []Category) CategorySet {
	set, err := NewCategorySet(items)
	if err != nil {
		panic(err)
	}
	return set
}

// Len returns the number of categories
func (s CategorySet) Len() int {
	return len(s.items)
}

// At returns the category at index i
func (s CategorySet) At(i int) (Category, bool) {
	if i < 0 || i >= len(s.items) {
		return Category{}, false
	}
	return s.items[i], true
}

// All returns a copy of the categories in index order
func (s CategorySet) All() []Category {
	out := make([]Category, len(s.items))
	copy(out, s.items)
	return out
}

// IndexOf returns the index of the category with the given key, or -1
func (s CategorySet) IndexOf(key string) int {
	for i, c := range s.items {
		if c.Key == key {
			return i
		}
	}
	return -1
}

// ParseIndices turns a comma-separated index list into tag keys.
// Non-numeric and out-of-range tokens are dropped one by one; input order
// and duplicates are kept. The result is never nil.
func (s CategorySet) ParseIndices(entry string) []string {
	tags := make([]string, 0)
	if strings.TrimSpace(entry) == "" {
		return tags
	}
	for _, token := range strings.Split(entry, ",") {
		idx, err := strconv.Atoi(strings.TrimSpace(token))
		if err != nil {
			continue
		}
		if c, ok := s.At(idx); ok {
			tags = append(tags, c.Key)
		}
	}
	return tags
}

// FormatIndices is the inverse of ParseIndices: known tags become their
// indices joined with ",", unknown tags are skipped.
func (s CategorySet) FormatIndices(tags []string) string {
	indices := make([]string, 0, len(tags))
	for _, tag := range tags {
		if i := s.IndexOf(tag); i >= 0 {
			indices = append(indices, strconv.Itoa(i))
		}
	}
	return strings.Join(indices, ",")
}
