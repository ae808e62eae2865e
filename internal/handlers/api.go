// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the JSON API handlers for BlogSphere.
// Handlers validate their input, call into the stores, and translate
// store failures into the API's error taxonomy.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"blogsphere/internal/store"
)

// Failure codes surfaced to API clients.
const (
	codeBadRequest         = "BAD_REQUEST"
	codeNotFound           = "NOT_FOUND"
	codeConflict           = "CONFLICT"
	codePreconditionFailed = "PRECONDITION_FAILED"
	codeInternal           = "INTERNAL_SERVER_ERROR"
)

// API groups all JSON API handlers and their store dependencies.
type API struct {
	posts      *store.PostStore
	categories *store.CategoryStore
}

// NewAPI creates a new API handler group with the given stores.
func NewAPI(posts *store.PostStore, categories *store.CategoryStore) *API {
	return &API{posts: posts, categories: categories}
}

// errorBody is the JSON shape of every failure response.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// writeJSON serializes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

// writeError writes a failure response in the API's error taxonomy.
func writeError(w http.ResponseWriter, status int, code, message string) {
	var body errorBody
	body.Error.Code = code
	body.Error.Message = message
	writeJSON(w, status, body)
}

// badRequest reports a validation failure.
func badRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, codeBadRequest, message)
}

// internalError logs the cause and reports an opaque 500.
func internalError(w http.ResponseWriter, op string, err error) {
	slog.Error(op, "error", err)
	writeError(w, http.StatusInternalServerError, codeInternal, "Something went wrong")
}

// decodeBody parses the request body into dst, reporting BAD_REQUEST on
// malformed JSON. Returns false if the response has been written.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		badRequest(w, "Invalid request body")
		return false
	}
	return true
}

// idParam extracts a positive integer id from the route. Returns false
// (response written) for anything else.
func idParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		badRequest(w, "ID must be a positive integer")
		return 0, false
	}
	return id, true
}
