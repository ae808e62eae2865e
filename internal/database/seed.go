package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"blogsphere/internal/models"
	"blogsphere/internal/readingtime"
	"blogsphere/internal/slug"
)

// Seed populates the database with sample categories and posts for
// development. It is a no-op if any categories already exist.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return fmt.Errorf("seed check categories: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	categories := []struct {
		name        string
		description string
	}{
		{"Science", "Scientific discoveries, research, and innovations"},
		{"Technology", "Technology trends, programming, and software development"},
		{"Health", "Health, wellness, fitness, and medical topics"},
		{"Education", "Learning, teaching, and educational resources"},
		{"Entertainment", "Movies, music, games, and pop culture"},
		{"Travel", "Travel guides, destinations, and adventure stories"},
		{"Business", "Business strategies, entrepreneurship, and career advice"},
	}

	// The suffixing resolver keeps the batch collision-free without
	// round-tripping to the unique constraint.
	var usedSlugs []string
	categoryIDs := make(map[string]int64)

	for _, c := range categories {
		s := slug.Unique(c.name, usedSlugs)
		usedSlugs = append(usedSlugs, s)

		var id int64
		err := db.QueryRow(`
			INSERT INTO categories (name, slug, description)
			VALUES ($1, $2, $3)
			RETURNING id
		`, c.name, s, c.description).Scan(&id)
		if err != nil {
			return fmt.Errorf("seed insert category %q: %w", c.name, err)
		}
		categoryIDs[c.name] = id
	}

	posts := []struct {
		title      string
		content    string
		status     models.PostStatus
		categories []string
	}{
		{
			title: "Welcome to BlogSphere",
			content: "## Hello\n\nThis is your new blogging platform. " +
				"Write posts in **markdown**, organize them with categories, " +
				"and publish when ready.",
			status:     models.PostStatusPublished,
			categories: []string{"Technology"},
		},
		{
			title: "Getting Started with the Editor",
			content: "The editor supports headings, *emphasis*, `inline code`, " +
				"and fenced code blocks:\n\n```go\nfmt.Println(\"hello\")\n```\n\n" +
				"Drafts stay private until you publish them.",
			status:     models.PostStatusPublished,
			categories: []string{"Technology", "Education"},
		},
		{
			title:      "Ideas for Future Posts",
			content:    "A scratchpad of topics to cover later. Not ready yet.",
			status:     models.PostStatusDraft,
			categories: nil,
		},
	}

	var usedPostSlugs []string
	for _, p := range posts {
		s := slug.Unique(p.title, usedPostSlugs)
		usedPostSlugs = append(usedPostSlugs, s)

		stats := readingtime.Calculate(p.content, 0)

		var id int64
		err := db.QueryRow(`
			INSERT INTO posts (title, content, slug, status, word_count, reading_time_mins)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`, p.title, p.content, s, p.status, stats.WordCount, stats.ReadingTimeMins).Scan(&id)
		if err != nil {
			return fmt.Errorf("seed insert post %q: %w", p.title, err)
		}

		for _, name := range p.categories {
			catID, ok := categoryIDs[name]
			if !ok {
				continue
			}
			if _, err := db.Exec(`
				INSERT INTO post_categories (post_id, category_id)
				VALUES ($1, $2)
			`, id, catID); err != nil {
				return fmt.Errorf("seed associate post %q with %q: %w", p.title, name, err)
			}
		}
	}

	slog.Info("database seeded with sample data",
		"categories", len(categories),
		"posts", len(posts),
	)

	return nil
}
