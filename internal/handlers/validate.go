package handlers

import (
	"strings"
	"unicode/utf8"

	"blogsphere/internal/models"
)

// Validation limits for post and category fields.
const (
	minCategoryNameLen = 3
	maxCategoryNameLen = 100
	maxCategoryDescLen = 500
	maxPostTitleLen    = 255
	minReadingTime     = 1
	maxReadingTime     = 999
	maxListLimit       = 100
)

// validateCategoryName checks a (trimmed) category name and returns the
// first error found.
func validateCategoryName(name string) string {
	if utf8.RuneCountInString(name) < minCategoryNameLen {
		return "Category name must be at least 3 characters"
	}
	if utf8.RuneCountInString(name) > maxCategoryNameLen {
		return "Category name must not exceed 100 characters"
	}
	return ""
}

// validateCategoryDescription checks an optional description.
func validateCategoryDescription(desc string) string {
	if utf8.RuneCountInString(desc) > maxCategoryDescLen {
		return "Description must not exceed 500 characters"
	}
	return ""
}

// validatePostTitle checks a (trimmed) post title.
func validatePostTitle(title string) string {
	if title == "" {
		return "Title is required"
	}
	if utf8.RuneCountInString(title) > maxPostTitleLen {
		return "Title must not exceed 255 characters"
	}
	return ""
}

// validatePostContent checks (trimmed) post content.
func validatePostContent(content string) string {
	if content == "" {
		return "Content is required"
	}
	return ""
}

// validatePostStatus checks a storable status value.
func validatePostStatus(status models.PostStatus) string {
	if !status.Valid() {
		return "Status must be DRAFT or PUBLISHED"
	}
	return ""
}

// validateReadingTime checks an explicitly supplied reading time.
func validateReadingTime(mins int) string {
	if mins < minReadingTime {
		return "Reading time must be at least 1 minute"
	}
	if mins > maxReadingTime {
		return "Reading time must not exceed 999 minutes"
	}
	return ""
}

// validateCategoryIDs checks that every association id is positive.
func validateCategoryIDs(ids []int64) string {
	for _, id := range ids {
		if id <= 0 {
			return "Category IDs must be positive integers"
		}
	}
	return ""
}

// trimmed returns s with surrounding whitespace removed, mirroring the
// coercion the request schemas apply before validation.
func trimmed(s string) string {
	return strings.TrimSpace(s)
}
