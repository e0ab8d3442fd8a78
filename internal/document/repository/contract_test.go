package repository

import (
	"context"
	"testing"
	"time"

	"github.com/gogotex/docstore/internal/document"
	"github.com/stretchr/testify/require"
)

// runRepositoryContract checks the behaviour every Repository must share.
func runRepositoryContract(t *testing.T, newRepo func(t *testing.T) Repository) {
	ctx := context.Background()

	t.Run("GeneratesDistinctIDs", func(t *testing.T) {
		r := newRepo(t)
		a, err := r.Save(ctx, &document.Document{Title: "a"})
		require.NoError(t, err)
		b, err := r.Save(ctx, &document.Document{Title: "b"})
		require.NoError(t, err)
		require.NotEmpty(t, a.ID)
		require.NotEmpty(t, b.ID)
		require.NotEqual(t, a.ID, b.ID)
		require.False(t, a.Created.IsZero())
	})

	t.Run("KeepsCallerIDAndCreated", func(t *testing.T) {
		r := newRepo(t)
		created := time.Date(2020, 5, 1, 10, 0, 0, 0, time.UTC)
		d := &document.Document{ID: "fixed", Title: "t", Created: created}
		saved, err := r.Save(ctx, d)
		require.NoError(t, err)
		require.Equal(t, "fixed", saved.ID)
		require.True(t, created.Equal(saved.Created))
	})

	t.Run("CreatedIsImmutable", func(t *testing.T) {
		r := newRepo(t)
		first, err := r.Save(ctx, &document.Document{Title: "v1", Content: "one"})
		require.NoError(t, err)

		later := first.Created.Add(48 * time.Hour)
		second, err := r.Save(ctx, &document.Document{ID: first.ID, Title: "v2", Content: "two", Created: later})
		require.NoError(t, err)
		require.True(t, first.Created.Equal(second.Created))

		got, err := r.FindByID(ctx, first.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Equal(t, "v2", got.Title)
		require.Equal(t, "two", got.Content)
		require.True(t, first.Created.Equal(got.Created))
	})

	t.Run("SaveUpdatesCallerDocument", func(t *testing.T) {
		r := newRepo(t)
		d := &document.Document{Title: "in place"}
		saved, err := r.Save(ctx, d)
		require.NoError(t, err)
		require.Equal(t, saved.ID, d.ID)
		require.True(t, saved.Created.Equal(d.Created))
	})

	t.Run("RoundTrip", func(t *testing.T) {
		r := newRepo(t)
		saved, err := r.Save(ctx, &document.Document{
			Title:   "Round",
			Content: "trip",
			Author:  document.Author{ID: "a1", Name: "Ann"},
		})
		require.NoError(t, err)
		got, err := r.FindByID(ctx, saved.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Equal(t, saved.ID, got.ID)
		require.Equal(t, saved.Title, got.Title)
		require.Equal(t, saved.Content, got.Content)
		require.Equal(t, saved.Author, got.Author)
		require.True(t, saved.Created.Equal(got.Created))
	})

	t.Run("NilDocument", func(t *testing.T) {
		r := newRepo(t)
		_, err := r.Save(ctx, nil)
		require.ErrorIs(t, err, ErrInvalidDocument)
		all, err := r.Search(ctx, document.SearchRequest{})
		require.NoError(t, err)
		require.Empty(t, all)
	})

	t.Run("MissingID", func(t *testing.T) {
		r := newRepo(t)
		got, err := r.FindByID(ctx, "nonexistent")
		require.NoError(t, err)
		require.Nil(t, got)
	})

	t.Run("Search", func(t *testing.T) {
		r := newRepo(t)
		t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		t2 := t1.Add(24 * time.Hour)
		d1, err := r.Save(ctx, &document.Document{Title: "Hello", Content: "greeting", Author: document.Author{ID: "A1"}, Created: t1})
		require.NoError(t, err)
		d2, err := r.Save(ctx, &document.Document{Title: "World", Content: "planet", Author: document.Author{ID: "A2"}, Created: t2})
		require.NoError(t, err)

		got, err := r.Search(ctx, document.SearchRequest{TitlePrefixes: []string{"He"}, AuthorIDs: []string{"A1"}})
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, d1.ID, got[0].ID)

		all, err := r.Search(ctx, document.SearchRequest{})
		require.NoError(t, err)
		require.Len(t, all, 2)
		require.Equal(t, d1.ID, all[0].ID)
		require.Equal(t, d2.ID, all[1].ID)

		got, err = r.Search(ctx, document.SearchRequest{ContainsContents: []string{"lane"}})
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, d2.ID, got[0].ID)

		got, err = r.Search(ctx, document.SearchRequest{CreatedFrom: &t1, CreatedTo: &t1})
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, d1.ID, got[0].ID)

		before := t1.Add(-time.Second)
		got, err = r.Search(ctx, document.SearchRequest{CreatedTo: &before})
		require.NoError(t, err)
		require.Empty(t, got)
	})
}
