package document

import "time"

// Author identifies who wrote a document. It has no lifecycle of its own.
type Author struct {
	ID   string `json:"id" bson:"id"`
	Name string `json:"name" bson:"name"`
}

// Document is the stored record. An empty ID is generated on save and a
// zero Created is filled in at first insert; after that Created never changes.
type Document struct {
	ID      string    `json:"id" bson:"_id"`
	Title   string    `json:"title" bson:"title"`
	Content string    `json:"content" bson:"content"`
	Author  Author    `json:"author" bson:"author"`
	Created time.Time `json:"created" bson:"created"`
}

// Clone returns a copy of d. Document holds no reference fields, so a value
// copy is enough.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

// SearchRequest filters documents. Every field is optional; a nil or empty
// field places no constraint on its dimension.
type SearchRequest struct {
	TitlePrefixes    []string   `json:"titlePrefixes,omitempty"`
	ContainsContents []string   `json:"containsContents,omitempty"`
	AuthorIDs        []string   `json:"authorIds,omitempty"`
	CreatedFrom      *time.Time `json:"createdFrom,omitempty"`
	CreatedTo        *time.Time `json:"createdTo,omitempty"`
}
