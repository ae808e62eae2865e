// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings.
package slug

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// whitespaceRuns matches runs of whitespace and underscores, which all
	// become a single hyphen.
	whitespaceRuns = regexp.MustCompile(`[\s_]+`)
	// nonWord matches anything that isn't an ASCII word character or hyphen.
	nonWord = regexp.MustCompile(`[^\w\-]+`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Hello, World! 2026" → "hello-world-2026"
//
// Generate is idempotent: feeding a slug back in returns it unchanged.
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = whitespaceRuns.ReplaceAllString(result, "-")
	result = nonWord.ReplaceAllString(result, "")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}

// Unique slugifies the input and, if the result is already present in
// existing, appends an incrementing numeric suffix until a free candidate
// is found. The live create/update paths reject colliding slugs outright;
// Unique serves callers that need collision-free bulk inserts, such as
// the development seeder.
func Unique(s string, existing []string) string {
	base := Generate(s)

	taken := make(map[string]struct{}, len(existing))
	for _, e := range existing {
		taken[e] = struct{}{}
	}

	if _, ok := taken[base]; !ok {
		return base
	}

	for counter := 1; ; counter++ {
		candidate := fmt.Sprintf("%s-%d", base, counter)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}
