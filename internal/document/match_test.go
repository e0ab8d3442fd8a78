package document

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSearchRequestMatches(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	d := &Document{
		ID:      "d1",
		Title:   "Hello world",
		Content: "the quick brown fox",
		Author:  Author{ID: "a1", Name: "Ann"},
		Created: created,
	}
	before := created.Add(-time.Hour)
	after := created.Add(time.Hour)

	cases := []struct {
		name string
		req  SearchRequest
		want bool
	}{
		{"empty request", SearchRequest{}, true},
		{"empty slices", SearchRequest{TitlePrefixes: []string{}, AuthorIDs: []string{}}, true},
		{"title prefix", SearchRequest{TitlePrefixes: []string{"Wor", "Hel"}}, true},
		{"title prefix miss", SearchRequest{TitlePrefixes: []string{"world"}}, false},
		{"content substring", SearchRequest{ContainsContents: []string{"brown"}}, true},
		{"content miss", SearchRequest{ContainsContents: []string{"lazy", "dog"}}, false},
		{"author", SearchRequest{AuthorIDs: []string{"a2", "a1"}}, true},
		{"author miss", SearchRequest{AuthorIDs: []string{"a2"}}, false},
		{"bounds inclusive", SearchRequest{CreatedFrom: &created, CreatedTo: &created}, true},
		{"open range", SearchRequest{CreatedFrom: &before, CreatedTo: &after}, true},
		{"from after created", SearchRequest{CreatedFrom: &after}, false},
		{"to before created", SearchRequest{CreatedTo: &before}, false},
		{"conjunction miss", SearchRequest{TitlePrefixes: []string{"He"}, AuthorIDs: []string{"a2"}}, false},
		{"conjunction hit", SearchRequest{TitlePrefixes: []string{"He"}, AuthorIDs: []string{"a1"}}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.req.Matches(d))
		})
	}
}

func TestMatchesNilDocument(t *testing.T) {
	require.False(t, SearchRequest{}.Matches(nil))
}

func TestFilterSortsByCreatedThenID(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	docs := []*Document{
		{ID: "c", Title: "x", Created: t0.Add(time.Minute)},
		{ID: "b", Title: "x", Created: t0},
		{ID: "a", Title: "x", Created: t0},
		{ID: "z", Title: "y", Created: t0},
	}
	got := Filter(docs, SearchRequest{TitlePrefixes: []string{"x"}})
	require.Len(t, got, 3)
	require.Equal(t, "a", got[0].ID)
	require.Equal(t, "b", got[1].ID)
	require.Equal(t, "c", got[2].ID)
}

func TestCloneIsIndependent(t *testing.T) {
	d := &Document{ID: "d1", Title: "t", Author: Author{ID: "a"}}
	c := d.Clone()
	c.Title = "changed"
	c.Author.ID = "b"
	require.Equal(t, "t", d.Title)
	require.Equal(t, "a", d.Author.ID)
	require.Nil(t, (*Document)(nil).Clone())
}
