// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// PostStatus represents the publishing state of a post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "DRAFT"
	PostStatusPublished PostStatus = "PUBLISHED"
)

// Valid reports whether s is a storable status value.
func (s PostStatus) Valid() bool {
	return s == PostStatusDraft || s == PostStatusPublished
}

// StatusFilterAll is accepted by list filters to disable status filtering.
// It is never stored.
const StatusFilterAll = "ALL"

// Post is a blog post. WordCount is derived from the content on every
// write; ReadingTimeMins is whatever the author supplied (or the flat
// default), not a derived value.
type Post struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	Content         string     `json:"content"`
	Slug            string     `json:"slug"`
	Status          PostStatus `json:"status"`
	WordCount       int        `json:"wordCount"`
	ReadingTimeMins int        `json:"readingTimeMins"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`

	// ContentHTML carries the rendered markdown for single-post payloads.
	// Empty on list responses.
	ContentHTML string `json:"contentHtml,omitempty"`

	// Categories is populated by store methods that hydrate associations.
	Categories []CategorySummary `json:"categories,omitempty"`
}

// IsPublished returns true if the post is publicly visible.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// Pagination describes one page of a filtered post listing.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Stats holds the dashboard counters. The four counts are taken with
// independent queries, not one snapshot.
type Stats struct {
	TotalPosts      int `json:"totalPosts"`
	PublishedPosts  int `json:"publishedPosts"`
	DraftPosts      int `json:"draftPosts"`
	TotalCategories int `json:"totalCategories"`
}
