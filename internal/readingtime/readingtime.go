// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package readingtime derives word counts and reading-time estimates from
// post content. Markdown and HTML syntax is stripped before counting so
// that code fences, tags, and link targets don't inflate the numbers.
package readingtime

import (
	"math"
	"regexp"
	"strings"
)

// DefaultWordsPerMinute is the assumed reading speed when the caller
// passes a non-positive value.
const DefaultWordsPerMinute = 200

var (
	codeBlocks  = regexp.MustCompile("(?s)```.*?```")
	inlineCode  = regexp.MustCompile("`[^`]*`")
	headings    = regexp.MustCompile(`#+\s`)
	emphasis    = regexp.MustCompile(`[*_~]`)
	links       = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	images      = regexp.MustCompile(`!\[([^\]]*)\]\([^)]+\)`)
	htmlTags    = regexp.MustCompile(`<[^>]+>`)
	whitespaces = regexp.MustCompile(`\s+`)
)

// Stats holds the derived text metrics for a piece of content.
type Stats struct {
	WordCount       int
	ReadingTimeMins int
}

// Calculate strips markdown and HTML syntax from content, counts the
// remaining words, and estimates reading time at wordsPerMinute (pass 0
// for the default of 200). Non-empty content always reads as at least
// one minute; empty or whitespace-only content yields zero for both.
func Calculate(content string, wordsPerMinute int) Stats {
	if wordsPerMinute <= 0 {
		wordsPerMinute = DefaultWordsPerMinute
	}

	if strings.TrimSpace(content) == "" {
		return Stats{}
	}

	// Strip syntax in the same order the editor's preview does. Link text
	// survives, link targets don't. The link rule runs before the image
	// rule, so an image's alt text survives with its leading "!".
	clean := codeBlocks.ReplaceAllString(content, "")
	clean = inlineCode.ReplaceAllString(clean, "")
	clean = headings.ReplaceAllString(clean, "")
	clean = emphasis.ReplaceAllString(clean, "")
	clean = links.ReplaceAllString(clean, "$1")
	clean = images.ReplaceAllString(clean, "")
	clean = htmlTags.ReplaceAllString(clean, "")
	clean = strings.TrimSpace(clean)

	var wordCount int
	for _, token := range whitespaces.Split(clean, -1) {
		if token != "" {
			wordCount++
		}
	}

	if wordCount == 0 {
		return Stats{}
	}

	mins := int(math.Ceil(float64(wordCount) / float64(wordsPerMinute)))
	if mins < 1 {
		mins = 1
	}

	return Stats{WordCount: wordCount, ReadingTimeMins: mins}
}
