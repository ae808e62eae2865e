// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"blogsphere/internal/markdown"
	"blogsphere/internal/models"
	"blogsphere/internal/readingtime"
	"blogsphere/internal/slug"
	"blogsphere/internal/store"
)

// postListResponse pairs one page of posts with its pagination metadata.
type postListResponse struct {
	Posts      []models.Post     `json:"posts"`
	Pagination models.Pagination `json:"pagination"`
}

// PostsList returns a filtered, paginated page of posts. Defaults:
// page 1, limit 10, PUBLISHED only.
func (a *API) PostsList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := store.PostFilter{
		CategorySlug: q.Get("categorySlug"),
		SearchQuery:  q.Get("searchQuery"),
		Page:         1,
		Limit:        10,
		Status:       string(models.PostStatusPublished),
	}

	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			badRequest(w, "Page must be a positive integer")
			return
		}
		filter.Page = n
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxListLimit {
			badRequest(w, "Limit must be between 1 and 100")
			return
		}
		filter.Limit = n
	}
	if raw := q.Get("status"); raw != "" {
		if raw != models.StatusFilterAll && !models.PostStatus(raw).Valid() {
			badRequest(w, "Status must be DRAFT, PUBLISHED, or ALL")
			return
		}
		filter.Status = raw
	}

	posts, pagination, err := a.posts.List(filter)
	if err != nil {
		internalError(w, "list posts failed", err)
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}

	writeJSON(w, http.StatusOK, postListResponse{Posts: posts, Pagination: pagination})
}

// PostsDashboard returns every post regardless of status, newest first.
// No pagination — the dashboard shows the whole table.
func (a *API) PostsDashboard(w http.ResponseWriter, r *http.Request) {
	posts, err := a.posts.ListAll()
	if err != nil {
		internalError(w, "list dashboard posts failed", err)
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}
	writeJSON(w, http.StatusOK, posts)
}

// PostBySlug returns one post by slug regardless of status, with
// category descriptions. Serves internal and preview contexts, so no
// publication gate applies.
func (a *API) PostBySlug(w http.ResponseWriter, r *http.Request) {
	s := chi.URLParam(r, "slug")
	if s == "" {
		badRequest(w, "Slug is required")
		return
	}

	post, err := a.posts.FindBySlug(s)
	if err != nil {
		internalError(w, "find post by slug failed", err)
		return
	}
	if post == nil {
		writeError(w, http.StatusNotFound, codeNotFound, "Post not found")
		return
	}

	renderContent(post)
	writeJSON(w, http.StatusOK, post)
}

// PostByID returns one published post by id. A draft answers NOT_FOUND,
// indistinguishable from an absent row — that's the publication gate.
func (a *API) PostByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	post, err := a.posts.FindByID(id, false)
	if err != nil {
		internalError(w, "find post by id failed", err)
		return
	}
	if post == nil {
		writeError(w, http.StatusNotFound, codeNotFound, "Post not found or not published yet")
		return
	}

	renderContent(post)
	writeJSON(w, http.StatusOK, post)
}

// PostPreview returns one post by id including drafts, bypassing the
// publication gate for editing and preview contexts.
func (a *API) PostPreview(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	post, err := a.posts.FindByID(id, true)
	if err != nil {
		internalError(w, "find post preview failed", err)
		return
	}
	if post == nil {
		writeError(w, http.StatusNotFound, codeNotFound, "Post not found")
		return
	}

	renderContent(post)
	writeJSON(w, http.StatusOK, post)
}

type createPostRequest struct {
	Title           string  `json:"title"`
	Content         string  `json:"content"`
	Status          string  `json:"status"`
	ReadingTimeMins *int    `json:"readingTimeMins"`
	CategoryIDs     []int64 `json:"categoryIds"`
}

// PostCreate creates a post. The slug derives from the title and the
// word count from the content. The stored reading time is the caller's
// value, or a flat 1 minute when omitted — it is never derived from the
// word count.
func (a *API) PostCreate(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if !decodeBody(w, r, &req) {
		return
	}

	req.Title = trimmed(req.Title)
	req.Content = trimmed(req.Content)
	if msg := validatePostTitle(req.Title); msg != "" {
		badRequest(w, msg)
		return
	}
	if msg := validatePostContent(req.Content); msg != "" {
		badRequest(w, msg)
		return
	}

	status := models.PostStatus(req.Status)
	if req.Status == "" {
		status = models.PostStatusDraft
	}
	if msg := validatePostStatus(status); msg != "" {
		badRequest(w, msg)
		return
	}

	readingTimeMins := 1
	if req.ReadingTimeMins != nil {
		if msg := validateReadingTime(*req.ReadingTimeMins); msg != "" {
			badRequest(w, msg)
			return
		}
		readingTimeMins = *req.ReadingTimeMins
	}

	if msg := validateCategoryIDs(req.CategoryIDs); msg != "" {
		badRequest(w, msg)
		return
	}

	stats := readingtime.Calculate(req.Content, 0)

	post, err := a.posts.Create(&models.Post{
		Title:           req.Title,
		Content:         req.Content,
		Slug:            slug.Generate(req.Title),
		Status:          status,
		WordCount:       stats.WordCount,
		ReadingTimeMins: readingTimeMins,
	}, req.CategoryIDs)
	if errors.Is(err, store.ErrSlugTaken) {
		writeError(w, http.StatusConflict, codeConflict, "A post with this title already exists")
		return
	}
	if errors.Is(err, store.ErrUnknownCategory) {
		badRequest(w, "One or more category IDs do not exist")
		return
	}
	if err != nil {
		internalError(w, "create post failed", err)
		return
	}

	writeJSON(w, http.StatusCreated, post)
}

type updatePostRequest struct {
	Title           *string  `json:"title"`
	Content         *string  `json:"content"`
	Status          *string  `json:"status"`
	ReadingTimeMins *int     `json:"readingTimeMins"`
	CategoryIDs     *[]int64 `json:"categoryIds"`
}

// PostUpdate applies a partial update. A changed title regenerates the
// slug; changed content recomputes the word count but never the reading
// time. A supplied categoryIds — even empty — replaces the whole
// association set; an omitted one leaves it alone.
func (a *API) PostUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	var req updatePostRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var update store.PostUpdate
	if req.Title != nil {
		title := trimmed(*req.Title)
		if msg := validatePostTitle(title); msg != "" {
			badRequest(w, msg)
			return
		}
		newSlug := slug.Generate(title)
		update.Title = &title
		update.Slug = &newSlug
	}
	if req.Content != nil {
		content := trimmed(*req.Content)
		if msg := validatePostContent(content); msg != "" {
			badRequest(w, msg)
			return
		}
		stats := readingtime.Calculate(content, 0)
		update.Content = &content
		update.WordCount = &stats.WordCount
	}
	if req.Status != nil {
		status := models.PostStatus(*req.Status)
		if msg := validatePostStatus(status); msg != "" {
			badRequest(w, msg)
			return
		}
		update.Status = &status
	}
	if req.ReadingTimeMins != nil {
		if msg := validateReadingTime(*req.ReadingTimeMins); msg != "" {
			badRequest(w, msg)
			return
		}
		update.ReadingTimeMins = req.ReadingTimeMins
	}
	if req.CategoryIDs != nil {
		if msg := validateCategoryIDs(*req.CategoryIDs); msg != "" {
			badRequest(w, msg)
			return
		}
		update.CategoryIDs = req.CategoryIDs
	}

	post, err := a.posts.Update(id, update)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, codeNotFound, "Post not found")
		return
	}
	if errors.Is(err, store.ErrSlugTaken) {
		writeError(w, http.StatusConflict, codeConflict, "A post with this title already exists")
		return
	}
	if errors.Is(err, store.ErrUnknownCategory) {
		badRequest(w, "One or more category IDs do not exist")
		return
	}
	if err != nil {
		internalError(w, "update post failed", err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

// PostDelete removes a post. The association rows cascade away at the
// storage layer.
func (a *API) PostDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	err := a.posts.Delete(id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, codeNotFound, "Post not found")
		return
	}
	if err != nil {
		internalError(w, "delete post failed", err)
		return
	}

	writeJSON(w, http.StatusOK, deleteResponse{Success: true, Message: "Post deleted successfully"})
}

// Stats returns the dashboard counters.
func (a *API) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := a.posts.Stats()
	if err != nil {
		internalError(w, "load stats failed", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// renderContent attaches the rendered HTML form of the post content for
// single-post payloads. Rendering problems are logged, not fatal — the
// raw content still ships.
func renderContent(p *models.Post) {
	html, err := markdown.ToHTML(p.Content)
	if err != nil {
		slog.Warn("render post content failed", "post_id", p.ID, "error", err)
		return
	}
	p.ContentHTML = html
}
