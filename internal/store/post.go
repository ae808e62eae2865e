// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"math"
	"strings"

	"blogsphere/internal/models"
)

// PostStore handles all post-related database operations, including the
// post_categories association table.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

const postColumns = `id, title, content, slug, status, word_count, reading_time_mins, created_at, updated_at`

// scanPost scans a row into a Post struct.
func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Content, &p.Slug, &p.Status,
		&p.WordCount, &p.ReadingTimeMins, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// PostFilter narrows a List call. Status is DRAFT, PUBLISHED, or
// models.StatusFilterAll; Page starts at 1.
type PostFilter struct {
	CategorySlug string
	SearchQuery  string
	Page         int
	Limit        int
	Status       string
}

// List returns one page of posts matching the filter, newest first, each
// hydrated with its categories, plus pagination metadata.
//
// The category restriction only narrows the page itself: the total keeps
// counting across all categories, matching the behavior the dashboard
// was built against.
func (s *PostStore) List(f PostFilter) ([]models.Post, models.Pagination, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}
	offset := (f.Page - 1) * f.Limit

	var conds []string
	var args []any
	if f.Status != models.StatusFilterAll {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("p.status = $%d", len(args)))
	}
	if f.SearchQuery != "" {
		pattern := "%" + f.SearchQuery + "%"
		args = append(args, pattern, pattern)
		conds = append(conds, fmt.Sprintf("(p.title LIKE $%d OR p.content LIKE $%d)", len(args)-1, len(args)))
	}

	countQuery := `SELECT COUNT(*) FROM posts p`
	if len(conds) > 0 {
		countQuery += " WHERE " + strings.Join(conds, " AND ")
	}
	var total int
	if err := s.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, models.Pagination{}, fmt.Errorf("count posts: %w", err)
	}

	pageConds := append([]string(nil), conds...)
	pageArgs := append([]any(nil), args...)

	query := `SELECT p.` + strings.ReplaceAll(postColumns, ", ", ", p.") + ` FROM posts p`
	if f.CategorySlug != "" {
		query += `
			JOIN post_categories pc ON pc.post_id = p.id
			JOIN categories c ON c.id = pc.category_id`
		pageArgs = append(pageArgs, f.CategorySlug)
		pageConds = append(pageConds, fmt.Sprintf("c.slug = $%d", len(pageArgs)))
	}
	if len(pageConds) > 0 {
		query += " WHERE " + strings.Join(pageConds, " AND ")
	}
	pageArgs = append(pageArgs, f.Limit, offset)
	query += fmt.Sprintf(" ORDER BY p.created_at DESC LIMIT $%d OFFSET $%d", len(pageArgs)-1, len(pageArgs))

	rows, err := s.db.Query(query, pageArgs...)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, models.Pagination{}, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, models.Pagination{}, err
	}

	if err := s.hydrateCategories(posts, false); err != nil {
		return nil, models.Pagination{}, err
	}

	pagination := models.Pagination{
		Page:       f.Page,
		Limit:      f.Limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(f.Limit))),
	}
	return posts, pagination, nil
}

// ListAll returns every post regardless of status, newest first, each
// hydrated with its categories. Used by the dashboard.
func (s *PostStore) ListAll() ([]models.Post, error) {
	rows, err := s.db.Query(`SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list all posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.hydrateCategories(posts, false); err != nil {
		return nil, err
	}
	return posts, nil
}

// FindBySlug retrieves a post by its slug regardless of status, with its
// categories including descriptions. Returns nil if not found. Used by
// internal and preview contexts — no publication gate.
func (s *PostStore) FindBySlug(slug string) (*models.Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = $1`, slug)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by slug: %w", err)
	}

	cats, err := s.categoriesFor([]int64{p.ID}, true)
	if err != nil {
		return nil, err
	}
	p.Categories = cats[p.ID]
	return p, nil
}

// FindByID retrieves a post by id. Unless includeDrafts is set, only
// PUBLISHED posts are visible — an existing draft is indistinguishable
// from an absent row. Returns nil if not found.
func (s *PostStore) FindByID(id int64, includeDrafts bool) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	if !includeDrafts {
		query += ` AND status = 'PUBLISHED'`
	}

	row := s.db.QueryRow(query, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}

	cats, err := s.categoriesFor([]int64{p.ID}, false)
	if err != nil {
		return nil, err
	}
	p.Categories = cats[p.ID]
	return p, nil
}

// Create inserts a new post and its category associations in one
// transaction. A slug collision returns ErrSlugTaken; an unknown
// category id returns ErrUnknownCategory. The returned post carries no
// categories — callers re-fetch when they need them.
func (s *PostStore) Create(p *models.Post, categoryIDs []int64) (*models.Post, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRow(`
		INSERT INTO posts (title, content, slug, status, word_count, reading_time_mins)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+postColumns,
		p.Title, p.Content, p.Slug, p.Status, p.WordCount, p.ReadingTimeMins,
	)
	result, err := scanPost(row)
	if isUniqueViolation(err) {
		return nil, ErrSlugTaken
	}
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	if err := insertAssociations(tx, result.ID, categoryIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create post: %w", err)
	}
	return result, nil
}

// PostUpdate carries the fields of a partial post update. Nil means
// "leave unchanged". CategoryIDs nil leaves associations untouched; a
// non-nil (even empty) slice replaces the whole association set.
type PostUpdate struct {
	Title           *string
	Slug            *string
	Content         *string
	WordCount       *int
	Status          *models.PostStatus
	ReadingTimeMins *int
	CategoryIDs     *[]int64
}

// Update applies a partial update and the association replacement as one
// transaction, so a crash can't leave the row and its category set out
// of step. The updated_at timestamp always refreshes. Returns
// ErrNotFound when the post doesn't exist and ErrSlugTaken when a
// renamed slug collides with another post.
func (s *PostStore) Update(id int64, u PostUpdate) (*models.Post, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	set := []string{"updated_at = NOW()"}
	var args []any
	add := func(col string, val any) {
		args = append(args, val)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if u.Title != nil {
		add("title", *u.Title)
	}
	if u.Slug != nil {
		add("slug", *u.Slug)
	}
	if u.Content != nil {
		add("content", *u.Content)
	}
	if u.WordCount != nil {
		add("word_count", *u.WordCount)
	}
	if u.Status != nil {
		add("status", *u.Status)
	}
	if u.ReadingTimeMins != nil {
		add("reading_time_mins", *u.ReadingTimeMins)
	}

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE posts SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(set, ", "), len(args), postColumns,
	)

	post, err := scanPost(tx.QueryRow(query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if isUniqueViolation(err) {
		return nil, ErrSlugTaken
	}
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}

	if u.CategoryIDs != nil {
		if _, err := tx.Exec(`DELETE FROM post_categories WHERE post_id = $1`, id); err != nil {
			return nil, fmt.Errorf("clear post categories: %w", err)
		}
		if err := insertAssociations(tx, id, *u.CategoryIDs); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update post: %w", err)
	}
	return post, nil
}

// insertAssociations links a post to each category id within tx.
func insertAssociations(tx *sql.Tx, postID int64, categoryIDs []int64) error {
	if len(categoryIDs) == 0 {
		return nil
	}

	stmt, err := tx.Prepare(`INSERT INTO post_categories (post_id, category_id) VALUES ($1, $2)`)
	if err != nil {
		return fmt.Errorf("prepare associations: %w", err)
	}
	defer stmt.Close()

	for _, catID := range categoryIDs {
		if _, err := stmt.Exec(postID, catID); err != nil {
			if isForeignKeyViolation(err) {
				return ErrUnknownCategory
			}
			return fmt.Errorf("associate post %d with category %d: %w", postID, catID, err)
		}
	}
	return nil
}

// Delete removes a post. Association rows go with it via ON DELETE
// CASCADE. Returns ErrNotFound if the post doesn't exist.
func (s *PostStore) Delete(id int64) error {
	res, err := s.db.Exec(`DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete post rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats returns the dashboard counters. Each count is its own query —
// consistent with storage at the moment it runs, but the four are not
// one atomic snapshot.
func (s *PostStore) Stats() (*models.Stats, error) {
	stats := &models.Stats{}

	counts := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM posts`, &stats.TotalPosts},
		{`SELECT COUNT(*) FROM posts WHERE status = 'PUBLISHED'`, &stats.PublishedPosts},
		{`SELECT COUNT(*) FROM posts WHERE status = 'DRAFT'`, &stats.DraftPosts},
		{`SELECT COUNT(*) FROM categories`, &stats.TotalCategories},
	}
	for _, c := range counts {
		if err := s.db.QueryRow(c.query).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("stats count: %w", err)
		}
	}
	return stats, nil
}

// hydrateCategories fills Categories on each post with one batched query.
func (s *PostStore) hydrateCategories(posts []models.Post, withDescription bool) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]int64, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}

	byPost, err := s.categoriesFor(ids, withDescription)
	if err != nil {
		return err
	}
	for i := range posts {
		posts[i].Categories = byPost[posts[i].ID]
	}
	return nil
}

// categoriesFor returns the categories of each given post id, keyed by
// post id. One query regardless of how many posts are passed.
func (s *PostStore) categoriesFor(postIDs []int64, withDescription bool) (map[int64][]models.CategorySummary, error) {
	if len(postIDs) == 0 {
		return map[int64][]models.CategorySummary{}, nil
	}

	cols := `pc.post_id, c.id, c.name, c.slug`
	if withDescription {
		cols += `, c.description`
	}

	placeholders := make([]string, len(postIDs))
	args := make([]any, len(postIDs))
	for i, id := range postIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := `SELECT ` + cols + `
		FROM post_categories pc
		JOIN categories c ON c.id = pc.category_id
		WHERE pc.post_id IN (` + strings.Join(placeholders, ", ") + `)
		ORDER BY c.name`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("post categories: %w", err)
	}
	defer rows.Close()

	result := make(map[int64][]models.CategorySummary, len(postIDs))
	for rows.Next() {
		var postID int64
		var c models.CategorySummary
		if withDescription {
			err = rows.Scan(&postID, &c.ID, &c.Name, &c.Slug, &c.Description)
		} else {
			err = rows.Scan(&postID, &c.ID, &c.Name, &c.Slug)
		}
		if err != nil {
			return nil, fmt.Errorf("scan post category: %w", err)
		}
		result[postID] = append(result[postID], c)
	}
	return result, rows.Err()
}
