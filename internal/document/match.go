package document

import (
	"sort"
	"strings"
)

// Matches reports whether d satisfies every dimension of the request.
// Within a dimension any listed value is enough.
func (r SearchRequest) Matches(d *Document) bool {
	if d == nil {
		return false
	}
	return matchTitle(d.Title, r.TitlePrefixes) &&
		matchContent(d.Content, r.ContainsContents) &&
		matchAuthor(d.Author.ID, r.AuthorIDs) &&
		r.matchCreated(d)
}

func matchTitle(title string, prefixes []string) bool {
	if len(prefixes) == 0 {
		return true
	}
	for _, p := range prefixes {
		if strings.HasPrefix(title, p) {
			return true
		}
	}
	return false
}

func matchContent(content string, parts []string) bool {
	if len(parts) == 0 {
		return true
	}
	for _, p := range parts {
		if strings.Contains(content, p) {
			return true
		}
	}
	return false
}

func matchAuthor(authorID string, ids []string) bool {
	if len(ids) == 0 {
		return true
	}
	for _, id := range ids {
		if id == authorID {
			return true
		}
	}
	return false
}

// bounds are inclusive on both ends
func (r SearchRequest) matchCreated(d *Document) bool {
	if r.CreatedFrom != nil && d.Created.Before(*r.CreatedFrom) {
		return false
	}
	if r.CreatedTo != nil && d.Created.After(*r.CreatedTo) {
		return false
	}
	return true
}

// Filter returns the documents in docs that match r, sorted with Sort.
func Filter(docs []*Document, r SearchRequest) []*Document {
	out := make([]*Document, 0, len(docs))
	for _, d := range docs {
		if r.Matches(d) {
			out = append(out, d)
		}
	}
	Sort(out)
	return out
}

// Sort orders documents by creation time, oldest first, then by ID so that
// search results are stable across map iteration orders.
func Sort(docs []*Document) {
	sort.Slice(docs, func(i, j int) bool {
		a, b := docs[i], docs[j]
		if !a.Created.Equal(b.Created) {
			return a.Created.Before(b.Created)
		}
		return a.ID < b.ID
	})
}
