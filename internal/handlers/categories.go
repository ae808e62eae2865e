// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"blogsphere/internal/models"
	"blogsphere/internal/slug"
	"blogsphere/internal/store"
)

// CategoriesList returns every category with its live post count.
func (a *API) CategoriesList(w http.ResponseWriter, r *http.Request) {
	categories, err := a.categories.List()
	if err != nil {
		internalError(w, "list categories failed", err)
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	writeJSON(w, http.StatusOK, categories)
}

// CategoryBySlug returns one category by slug.
func (a *API) CategoryBySlug(w http.ResponseWriter, r *http.Request) {
	s := chi.URLParam(r, "slug")
	if s == "" {
		badRequest(w, "Slug is required")
		return
	}

	category, err := a.categories.FindBySlug(s)
	if err != nil {
		internalError(w, "find category by slug failed", err)
		return
	}
	if category == nil {
		writeError(w, http.StatusNotFound, codeNotFound, "Category not found")
		return
	}
	writeJSON(w, http.StatusOK, category)
}

// CategoryByID returns one category by id.
func (a *API) CategoryByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	category, err := a.categories.FindByID(id)
	if err != nil {
		internalError(w, "find category by id failed", err)
		return
	}
	if category == nil {
		writeError(w, http.StatusNotFound, codeNotFound, "Category not found")
		return
	}
	writeJSON(w, http.StatusOK, category)
}

type createCategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// CategoryCreate creates a category, deriving its slug from the name.
func (a *API) CategoryCreate(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	req.Name = trimmed(req.Name)
	if msg := validateCategoryName(req.Name); msg != "" {
		badRequest(w, msg)
		return
	}
	if req.Description != nil {
		d := trimmed(*req.Description)
		req.Description = &d
		if msg := validateCategoryDescription(d); msg != "" {
			badRequest(w, msg)
			return
		}
	}

	category, err := a.categories.Create(&models.Category{
		Name:        req.Name,
		Slug:        slug.Generate(req.Name),
		Description: req.Description,
	})
	if errors.Is(err, store.ErrSlugTaken) {
		writeError(w, http.StatusConflict, codeConflict, "A category with this name already exists")
		return
	}
	if err != nil {
		internalError(w, "create category failed", err)
		return
	}

	writeJSON(w, http.StatusCreated, category)
}

type updateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// CategoryUpdate applies a partial update, regenerating the slug when
// the name changes.
func (a *API) CategoryUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	var req updateCategoryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var update store.CategoryUpdate
	if req.Name != nil {
		name := trimmed(*req.Name)
		if msg := validateCategoryName(name); msg != "" {
			badRequest(w, msg)
			return
		}
		newSlug := slug.Generate(name)
		update.Name = &name
		update.Slug = &newSlug
	}
	if req.Description != nil {
		desc := trimmed(*req.Description)
		if msg := validateCategoryDescription(desc); msg != "" {
			badRequest(w, msg)
			return
		}
		update.Description = &desc
	}

	category, err := a.categories.Update(id, update)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, codeNotFound, "Category not found")
		return
	}
	if errors.Is(err, store.ErrSlugTaken) {
		writeError(w, http.StatusConflict, codeConflict, "A category with this name already exists")
		return
	}
	if err != nil {
		internalError(w, "update category failed", err)
		return
	}

	writeJSON(w, http.StatusOK, category)
}

// deleteResponse is the success body of delete operations.
type deleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// CategoryDelete removes an unused category. Deletion is refused while
// any post still references it.
func (a *API) CategoryDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	category, err := a.categories.FindByID(id)
	if err != nil {
		internalError(w, "find category failed", err)
		return
	}
	if category == nil {
		writeError(w, http.StatusNotFound, codeNotFound, "Category not found")
		return
	}

	count, err := a.categories.PostCount(id)
	if err != nil {
		internalError(w, "count category posts failed", err)
		return
	}
	if count > 0 {
		writeError(w, http.StatusPreconditionFailed, codePreconditionFailed,
			fmt.Sprintf("Cannot delete category. It is associated with %d post(s).", count))
		return
	}

	if err := a.categories.Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, codeNotFound, "Category not found")
			return
		}
		internalError(w, "delete category failed", err)
		return
	}

	writeJSON(w, http.StatusOK, deleteResponse{Success: true, Message: "Category deleted successfully"})
}
