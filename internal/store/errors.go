// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store contains the database access layer for posts and
// categories. Writes lean on the storage constraints instead of
// check-then-act: a slug collision surfaces as ErrSlugTaken from the
// unique index, which stays correct under concurrent writers.
package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned by mutations whose target row is absent.
	// Lookup methods return a nil result instead.
	ErrNotFound = errors.New("not found")

	// ErrSlugTaken is returned when an insert or rename collides with an
	// existing slug (or unique name), mapped from the unique constraint.
	ErrSlugTaken = errors.New("slug already taken")

	// ErrUnknownCategory is returned when an association references a
	// category id that does not exist.
	ErrUnknownCategory = errors.New("unknown category id")
)

// PostgreSQL error codes. See https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}
