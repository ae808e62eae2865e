// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Category groups posts by topic. Posts and categories are many-to-many
// through the post_categories association table.
type Category struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`

	// PostCount is the live number of associated posts, populated by
	// store methods.
	PostCount int `json:"postCount"`
}

// CategorySummary is the compact category shape embedded in post
// payloads. Description is only filled on the single-post-by-slug path.
type CategorySummary struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description,omitempty"`
}
