package store

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"

	"blogsphere/internal/models"
	"blogsphere/internal/slug"
)

// makeCategory inserts a category for association tests and registers
// its cleanup.
func makeCategory(t *testing.T, db *sql.DB, name string) *models.Category {
	t.Helper()

	s := NewCategoryStore(db)
	created, err := s.Create(&models.Category{Name: name, Slug: slug.Generate(name)})
	if err != nil {
		t.Fatalf("create category %q: %v", name, err)
	}
	t.Cleanup(func() { cleanCategories(t, db, created.Slug) })
	return created
}

// makePost inserts a post and registers its cleanup.
func makePost(t *testing.T, db *sql.DB, title, content string, status models.PostStatus, categoryIDs []int64) *models.Post {
	t.Helper()

	s := NewPostStore(db)
	created, err := s.Create(&models.Post{
		Title:           title,
		Content:         content,
		Slug:            slug.Generate(title),
		Status:          status,
		WordCount:       3,
		ReadingTimeMins: 1,
	}, categoryIDs)
	if err != nil {
		t.Fatalf("create post %q: %v", title, err)
	}
	t.Cleanup(func() { cleanPosts(t, db, created.Slug) })
	return created
}

func TestPostStoreCreateAndFind(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)

	sfx := uuid.NewString()[:8]
	cat := makeCategory(t, db, "Find Cat "+sfx)
	created := makePost(t, db, "Test Create "+sfx, "some draft words", models.PostStatusDraft, []int64{cat.ID})

	if created.ID == 0 {
		t.Error("expected non-zero id")
	}
	if created.Slug != "test-create-"+sfx {
		t.Errorf("slug: got %q", created.Slug)
	}
	if created.Status != models.PostStatusDraft {
		t.Errorf("status: got %q", created.Status)
	}
	// Create returns the bare row — no categories.
	if created.Categories != nil {
		t.Errorf("expected no categories on create result, got %v", created.Categories)
	}

	// The publication gate: the draft is invisible to the public lookup.
	public, err := s.FindByID(created.ID, false)
	if err != nil {
		t.Fatalf("FindByID public: %v", err)
	}
	if public != nil {
		t.Error("draft should not be visible through the public lookup")
	}

	// The preview lookup bypasses the gate.
	preview, err := s.FindByID(created.ID, true)
	if err != nil {
		t.Fatalf("FindByID preview: %v", err)
	}
	if preview == nil {
		t.Fatal("expected post from preview lookup")
	}
	if len(preview.Categories) != 1 || preview.Categories[0].ID != cat.ID {
		t.Errorf("categories: got %v", preview.Categories)
	}

	// Slug lookup ignores status too.
	bySlug, err := s.FindBySlug(created.Slug)
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if bySlug == nil || bySlug.ID != created.ID {
		t.Fatalf("FindBySlug: got %v", bySlug)
	}
}

func TestPostStoreCreateSlugConflict(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)

	sfx := uuid.NewString()[:8]
	first := makePost(t, db, "Conflict "+sfx, "body", models.PostStatusPublished, nil)

	_, err := s.Create(&models.Post{
		Title:   "Different Title",
		Content: "body",
		Slug:    first.Slug,
		Status:  models.PostStatusDraft,
	}, nil)
	if !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken, got %v", err)
	}
}

func TestPostStoreListPagination(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)

	// A unique search token keeps the totals deterministic on a shared
	// database.
	token := "paging" + uuid.NewString()[:8]
	for _, title := range []string{"First " + token, "Second " + token, "Third " + token} {
		makePost(t, db, title, "content about "+token, models.PostStatusPublished, nil)
	}

	posts, pagination, err := s.List(PostFilter{
		SearchQuery: token,
		Page:        1,
		Limit:       2,
		Status:      string(models.PostStatusPublished),
	})
	if err != nil {
		t.Fatalf("List page 1: %v", err)
	}
	if len(posts) != 2 {
		t.Errorf("page 1 size: got %d, want 2", len(posts))
	}
	if pagination.Total != 3 {
		t.Errorf("total: got %d, want 3", pagination.Total)
	}
	if pagination.TotalPages != 2 {
		t.Errorf("totalPages: got %d, want 2", pagination.TotalPages)
	}

	posts, _, err = s.List(PostFilter{
		SearchQuery: token,
		Page:        2,
		Limit:       2,
		Status:      string(models.PostStatusPublished),
	})
	if err != nil {
		t.Fatalf("List page 2: %v", err)
	}
	if len(posts) != 1 {
		t.Errorf("page 2 size: got %d, want 1", len(posts))
	}
}

func TestPostStoreListStatusFilter(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)

	token := "statusf" + uuid.NewString()[:8]
	makePost(t, db, "Pub "+token, "x", models.PostStatusPublished, nil)
	makePost(t, db, "Draft "+token, "x", models.PostStatusDraft, nil)

	published, pg, err := s.List(PostFilter{SearchQuery: token, Page: 1, Limit: 10, Status: string(models.PostStatusPublished)})
	if err != nil {
		t.Fatalf("List published: %v", err)
	}
	if pg.Total != 1 || len(published) != 1 {
		t.Errorf("published: got %d posts, total %d", len(published), pg.Total)
	}

	all, pg, err := s.List(PostFilter{SearchQuery: token, Page: 1, Limit: 10, Status: models.StatusFilterAll})
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	if pg.Total != 2 || len(all) != 2 {
		t.Errorf("all: got %d posts, total %d", len(all), pg.Total)
	}
}

func TestPostStoreListByCategory(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)

	sfx := uuid.NewString()[:8]
	cat := makeCategory(t, db, "List Cat "+sfx)
	other := makeCategory(t, db, "Other Cat "+sfx)

	inCat := makePost(t, db, "In Cat "+sfx, "x", models.PostStatusPublished, []int64{cat.ID})
	makePost(t, db, "Elsewhere "+sfx, "x", models.PostStatusPublished, []int64{other.ID})

	posts, _, err := s.List(PostFilter{
		CategorySlug: cat.Slug,
		SearchQuery:  sfx,
		Page:         1,
		Limit:        10,
		Status:       string(models.PostStatusPublished),
	})
	if err != nil {
		t.Fatalf("List by category: %v", err)
	}
	if len(posts) != 1 || posts[0].ID != inCat.ID {
		t.Fatalf("expected only the associated post, got %v", posts)
	}
	if len(posts[0].Categories) != 1 || posts[0].Categories[0].Slug != cat.Slug {
		t.Errorf("hydrated categories: got %v", posts[0].Categories)
	}
}

func TestPostStoreUpdate(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)

	sfx := uuid.NewString()[:8]
	catA := makeCategory(t, db, "Upd A "+sfx)
	catB := makeCategory(t, db, "Upd B "+sfx)
	post := makePost(t, db, "Update Me "+sfx, "original words here", models.PostStatusDraft, []int64{catA.ID})

	// Content change updates word count but leaves reading time alone.
	newContent := "entirely new content"
	newWordCount := 3
	updated, err := s.Update(post.ID, PostUpdate{
		Content:   &newContent,
		WordCount: &newWordCount,
	})
	if err != nil {
		t.Fatalf("Update content: %v", err)
	}
	if updated.WordCount != newWordCount {
		t.Errorf("word count: got %d, want %d", updated.WordCount, newWordCount)
	}
	if updated.ReadingTimeMins != post.ReadingTimeMins {
		t.Errorf("reading time changed: got %d, want %d", updated.ReadingTimeMins, post.ReadingTimeMins)
	}
	if !updated.UpdatedAt.After(post.UpdatedAt) {
		t.Error("updated_at should refresh")
	}

	// Title change carries a new slug.
	newTitle := "Renamed Post " + sfx
	newSlug := slug.Generate(newTitle)
	t.Cleanup(func() { cleanPosts(t, db, newSlug) })
	updated, err = s.Update(post.ID, PostUpdate{Title: &newTitle, Slug: &newSlug})
	if err != nil {
		t.Fatalf("Update title: %v", err)
	}
	if updated.Slug != newSlug {
		t.Errorf("slug: got %q, want %q", updated.Slug, newSlug)
	}

	// Supplied category ids replace the association set wholesale.
	newCats := []int64{catB.ID}
	if _, err := s.Update(post.ID, PostUpdate{CategoryIDs: &newCats}); err != nil {
		t.Fatalf("Update categories: %v", err)
	}
	found, err := s.FindByID(post.ID, true)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if len(found.Categories) != 1 || found.Categories[0].ID != catB.ID {
		t.Errorf("replaced categories: got %v", found.Categories)
	}

	// An empty (non-nil) set clears all associations.
	empty := []int64{}
	if _, err := s.Update(post.ID, PostUpdate{CategoryIDs: &empty}); err != nil {
		t.Fatalf("Update clear categories: %v", err)
	}
	found, _ = s.FindByID(post.ID, true)
	if len(found.Categories) != 0 {
		t.Errorf("expected no categories, got %v", found.Categories)
	}
}

func TestPostStoreUpdateSlugConflict(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)

	sfx := uuid.NewString()[:8]
	first := makePost(t, db, "Original "+sfx, "x", models.PostStatusPublished, nil)
	second := makePost(t, db, "Second "+sfx, "x", models.PostStatusPublished, nil)

	// Renaming second to collide with first must fail and leave its
	// slug untouched.
	_, err := s.Update(second.ID, PostUpdate{Title: &first.Title, Slug: &first.Slug})
	if !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken, got %v", err)
	}

	found, err := s.FindByID(second.ID, true)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found.Slug != second.Slug {
		t.Errorf("slug changed after failed rename: got %q, want %q", found.Slug, second.Slug)
	}
}

func TestPostStoreUpdateNotFound(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)

	title := "Ghost"
	_, err := s.Update(999999999, PostUpdate{Title: &title})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostStoreDeleteCascadesAssociations(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)

	sfx := uuid.NewString()[:8]
	cat := makeCategory(t, db, "Cascade "+sfx)
	post := makePost(t, db, "Doomed "+sfx, "x", models.PostStatusPublished, []int64{cat.ID})

	if err := s.Delete(post.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var remaining int
	if err := db.QueryRow("SELECT COUNT(*) FROM post_categories WHERE post_id = $1", post.ID).Scan(&remaining); err != nil {
		t.Fatalf("count associations: %v", err)
	}
	if remaining != 0 {
		t.Errorf("expected zero association rows after delete, got %d", remaining)
	}

	// Second delete reports the row as gone.
	if err := s.Delete(post.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostStoreStats(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)

	before, err := s.Stats()
	if err != nil {
		t.Fatalf("Stats before: %v", err)
	}

	sfx := uuid.NewString()[:8]
	makePost(t, db, "Stat Pub "+sfx, "x", models.PostStatusPublished, nil)
	makePost(t, db, "Stat Draft "+sfx, "x", models.PostStatusDraft, nil)
	makeCategory(t, db, "Stat Cat "+sfx)

	after, err := s.Stats()
	if err != nil {
		t.Fatalf("Stats after: %v", err)
	}

	if got := after.TotalPosts - before.TotalPosts; got != 2 {
		t.Errorf("total posts delta: got %d, want 2", got)
	}
	if got := after.PublishedPosts - before.PublishedPosts; got != 1 {
		t.Errorf("published delta: got %d, want 1", got)
	}
	if got := after.DraftPosts - before.DraftPosts; got != 1 {
		t.Errorf("draft delta: got %d, want 1", got)
	}
	if got := after.TotalCategories - before.TotalCategories; got != 1 {
		t.Errorf("categories delta: got %d, want 1", got)
	}
}
