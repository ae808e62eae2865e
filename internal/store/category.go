// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"

	"blogsphere/internal/models"
)

// CategoryStore manages categories in the database.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

// categoryWithCount selects category rows with their live post counts in
// a single aggregated join instead of one count query per category.
const categoryWithCount = `
	SELECT c.id, c.name, c.slug, c.description, COUNT(pc.post_id) AS post_count
	FROM categories c
	LEFT JOIN post_categories pc ON pc.category_id = c.id`

// scanCategory scans a row produced by categoryWithCount.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.PostCount)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all categories with their post counts, ordered by name.
func (s *CategoryStore) List() ([]models.Category, error) {
	rows, err := s.db.Query(categoryWithCount + `
		GROUP BY c.id
		ORDER BY c.name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// FindBySlug retrieves a category by slug with its post count. Returns
// nil if not found.
func (s *CategoryStore) FindBySlug(slug string) (*models.Category, error) {
	row := s.db.QueryRow(categoryWithCount+`
		WHERE c.slug = $1
		GROUP BY c.id`, slug)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by slug: %w", err)
	}
	return c, nil
}

// FindByID retrieves a category by id with its post count. Returns nil
// if not found.
func (s *CategoryStore) FindByID(id int64) (*models.Category, error) {
	row := s.db.QueryRow(categoryWithCount+`
		WHERE c.id = $1
		GROUP BY c.id`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// Create inserts a new category and returns it. A name or slug collision
// returns ErrSlugTaken.
func (s *CategoryStore) Create(c *models.Category) (*models.Category, error) {
	result := &models.Category{}
	err := s.db.QueryRow(`
		INSERT INTO categories (name, slug, description)
		VALUES ($1, $2, $3)
		RETURNING id, name, slug, description
	`, c.Name, c.Slug, c.Description).Scan(
		&result.ID, &result.Name, &result.Slug, &result.Description,
	)
	if isUniqueViolation(err) {
		return nil, ErrSlugTaken
	}
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return result, nil
}

// CategoryUpdate carries the fields of a partial category update. Nil
// means "leave unchanged".
type CategoryUpdate struct {
	Name        *string
	Slug        *string
	Description *string
}

// Update applies a partial update. Returns ErrNotFound when the category
// doesn't exist and ErrSlugTaken when the new name or slug collides with
// a different category.
func (s *CategoryStore) Update(id int64, u CategoryUpdate) (*models.Category, error) {
	var set []string
	var args []any
	add := func(col string, val any) {
		args = append(args, val)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if u.Name != nil {
		add("name", *u.Name)
	}
	if u.Slug != nil {
		add("slug", *u.Slug)
	}
	if u.Description != nil {
		add("description", *u.Description)
	}
	if len(set) == 0 {
		// Nothing to change — degrade to a lookup so the caller still
		// gets NOT_FOUND for a missing id.
		c, err := s.FindByID(id)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, ErrNotFound
		}
		return c, nil
	}

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE categories SET %s WHERE id = $%d RETURNING id, name, slug, description`,
		strings.Join(set, ", "), len(args),
	)

	result := &models.Category{}
	err := s.db.QueryRow(query, args...).Scan(
		&result.ID, &result.Name, &result.Slug, &result.Description,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if isUniqueViolation(err) {
		return nil, ErrSlugTaken
	}
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return result, nil
}

// Delete removes a category. Callers must check PostCount first —
// deletion is guarded, never cascaded, in this direction. Returns
// ErrNotFound if the category doesn't exist.
func (s *CategoryStore) Delete(id int64) error {
	res, err := s.db.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete category rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// PostCount returns the number of posts currently associated with the
// category.
func (s *CategoryStore) PostCount(id int64) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM post_categories WHERE category_id = $1`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count category posts: %w", err)
	}
	return count, nil
}
