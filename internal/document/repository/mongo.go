package repository

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/gogotex/docstore/internal/document"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo implements Repository on a MongoDB collection. The document id
// is stored as _id, so lookups and upserts use the primary index.
type MongoRepo struct {
	col *mongo.Collection
}

const indexTimeout = 5 * time.Second

// NewMongoRepo ensures the secondary indexes and returns the repository.
func NewMongoRepo(ctx context.Context, col *mongo.Collection) (*MongoRepo, error) {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()
	// created and author.id back the range and author filters
	idx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created", Value: 1}}},
		{Keys: bson.D{{Key: "author.id", Value: 1}}},
	}
	if _, err := col.Indexes().CreateMany(ctx, idx); err != nil {
		return nil, fmt.Errorf("mongo create indexes: %w", err)
	}
	return &MongoRepo{col: col}, nil
}

// Save upserts in a single round trip: created is only written on insert,
// so an existing created value survives every later save.
func (m *MongoRepo) Save(ctx context.Context, doc *document.Document) (*document.Document, error) {
	if doc == nil {
		return nil, ErrInvalidDocument
	}
	if doc.ID == "" {
		doc.ID = newID()
	}
	created := doc.Created
	if created.IsZero() {
		created = time.Now().UTC()
	}
	update := bson.M{
		"$set": bson.M{
			"title":   doc.Title,
			"content": doc.Content,
			"author":  doc.Author,
		},
		"$setOnInsert": bson.M{"created": created},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var stored document.Document
	if err := m.col.FindOneAndUpdate(ctx, bson.M{"_id": doc.ID}, update, opts).Decode(&stored); err != nil {
		return nil, fmt.Errorf("mongo save %s: %w", doc.ID, err)
	}
	doc.Created = stored.Created
	return &stored, nil
}

func (m *MongoRepo) Search(ctx context.Context, req document.SearchRequest) ([]*document.Document, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := m.col.Find(ctx, searchFilter(req), opts)
	if err != nil {
		return nil, fmt.Errorf("mongo search: %w", err)
	}
	defer cur.Close(ctx)
	out := []*document.Document{}
	for cur.Next(ctx) {
		var d document.Document
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, &d)
	}
	return out, cur.Err()
}

func (m *MongoRepo) FindByID(ctx context.Context, id string) (*document.Document, error) {
	var d document.Document
	err := m.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("mongo get %s: %w", id, err)
	}
	return &d, nil
}

func (m *MongoRepo) Ping(ctx context.Context) error {
	return m.col.Database().Client().Ping(ctx, nil)
}

// searchFilter translates a SearchRequest into a query document. Prefixes
// and substrings are regex-quoted so user input is matched literally.
func searchFilter(req document.SearchRequest) bson.M {
	var and bson.A
	if len(req.TitlePrefixes) > 0 {
		and = append(and, anyRegex("title", req.TitlePrefixes, "^"))
	}
	if len(req.ContainsContents) > 0 {
		and = append(and, anyRegex("content", req.ContainsContents, ""))
	}
	if len(req.AuthorIDs) > 0 {
		and = append(and, bson.M{"author.id": bson.M{"$in": req.AuthorIDs}})
	}
	created := bson.M{}
	if req.CreatedFrom != nil {
		created["$gte"] = *req.CreatedFrom
	}
	if req.CreatedTo != nil {
		created["$lte"] = *req.CreatedTo
	}
	if len(created) > 0 {
		and = append(and, bson.M{"created": created})
	}
	if len(and) == 0 {
		return bson.M{}
	}
	return bson.M{"$and": and}
}

func anyRegex(field string, values []string, anchor string) bson.M {
	or := make(bson.A, 0, len(values))
	for _, v := range values {
		or = append(or, bson.M{field: bson.M{"$regex": anchor + regexp.QuoteMeta(v)}})
	}
	return bson.M{"$or": or}
}
